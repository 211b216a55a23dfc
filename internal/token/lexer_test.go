package token

import "testing"

func TestScanKeywordsAndPunctuation(t *testing.T) {
	src := `cast Start() >> set :x(i32) = 10; <<`
	toks := Scan(src)
	want := []Kind{
		KwCast, Identifier, LParen, RParen, BlockOpen,
		KwSet, Colon, Identifier, LParen, Identifier, RParen, Assign, Integer, Semicolon,
		BlockClose, EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s (%v)", i, toks[i].Kind, k, toks[i])
		}
	}
}

func TestScanComparisonOperators(t *testing.T) {
	src := `== != < > <= >=`
	toks := Scan(src)
	want := []Kind{Eq, Neq, Lt, Gt, Le, Ge, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestScanLineComment(t *testing.T) {
	src := "?? this is ignored\nset"
	toks := Scan(src)
	if len(toks) != 2 || toks[0].Kind != KwSet || toks[1].Kind != EOF {
		t.Fatalf("comment was not skipped: %v", toks)
	}
	if toks[0].Line != 2 {
		t.Errorf("got line %d, want 2", toks[0].Line)
	}
}

func TestScanStringLiteralWithEscapes(t *testing.T) {
	src := `"hello\n\"world\""`
	toks := Scan(src)
	if len(toks) != 2 || toks[0].Kind != String {
		t.Fatalf("unexpected tokens: %v", toks)
	}
	if toks[0].Text != `hello\n\"world\"` {
		t.Errorf("got %q", toks[0].Text)
	}
}

func TestScanUnclosedStringIsError(t *testing.T) {
	toks := Scan(`"unterminated`)
	if len(toks) == 0 || toks[len(toks)-1].Kind != Error {
		t.Fatalf("expected trailing Error token, got %v", toks)
	}
}

func TestScanBooleanLiterals(t *testing.T) {
	toks := Scan(`yes no`)
	if len(toks) != 3 || toks[0].Kind != Bool || toks[1].Kind != Bool {
		t.Fatalf("unexpected tokens: %v", toks)
	}
}

func TestScanFloatVersusInteger(t *testing.T) {
	toks := Scan(`10 10.5`)
	if len(toks) != 3 {
		t.Fatalf("got %d tokens: %v", len(toks), toks)
	}
	if toks[0].Kind != Integer || toks[1].Kind != Float {
		t.Errorf("got kinds %s, %s", toks[0].Kind, toks[1].Kind)
	}
}
