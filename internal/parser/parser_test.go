package parser

import (
	"testing"

	"axonscript/internal/ast"
	"axonscript/internal/diag"
	"axonscript/internal/token"
)

func parseSrc(t *testing.T, src string) (*ast.Node, []diag.Diagnostic) {
	t.Helper()
	toks := token.Scan(src)
	return Parse(toks, src)
}

func TestParseSimpleFunction(t *testing.T) {
	root, errs := parseSrc(t, `cast Start() >> out("hello"); <<`)
	for _, e := range errs {
		if e.Severity == diag.Error {
			t.Fatalf("unexpected error: %v", e)
		}
	}
	if len(root.Children) != 1 || root.Children[0].Kind != ast.Function {
		t.Fatalf("expected one Function node, got %+v", root.Children)
	}
	fd := root.Children[0].Data.(ast.FunctionData)
	if fd.Name != "Start" || !fd.IsStart {
		t.Errorf("got %+v", fd)
	}
	if len(root.Children[0].Children) != 1 || root.Children[0].Children[0].Kind != ast.Print {
		t.Fatalf("expected one Print statement in body, got %+v", root.Children[0].Children)
	}
}

func TestParseVariableDeclarationMutable(t *testing.T) {
	root, errs := parseSrc(t, `set :x(i32) = 10;`)
	for _, e := range errs {
		if e.Severity == diag.Error {
			t.Fatalf("unexpected error: %v", e)
		}
	}
	if len(root.Children) != 1 || root.Children[0].Kind != ast.Assignment {
		t.Fatalf("got %+v", root.Children)
	}
	ad := root.Children[0].Data.(ast.AssignmentData)
	if !ad.Mutable || ad.Name != "x" || ad.DeclaredType != "i32" {
		t.Errorf("got %+v", ad)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	root, _ := parseSrc(t, `math([1 + 2 * 3], r);`)
	if len(root.Children) != 1 {
		t.Fatalf("got %+v", root.Children)
	}
	expr := root.Children[0].Children[0]
	if expr.Kind != ast.BinaryOp {
		t.Fatalf("expected top-level BinaryOp, got %s", expr.Kind)
	}
	bd := expr.Data.(ast.BinaryOpData)
	if bd.Op != "+" {
		t.Fatalf("expected '+' at top level (lowest precedence wins outermost), got %q", bd.Op)
	}
	right := expr.Children[1]
	if right.Kind != ast.BinaryOp || right.Data.(ast.BinaryOpData).Op != "*" {
		t.Fatalf("expected nested '*' on the right, got %+v", right)
	}
}

func TestParseIfElse(t *testing.T) {
	root, errs := parseSrc(t, `if (x > 0) >> out(x); << else >> out("neg"); <<`)
	for _, e := range errs {
		if e.Severity == diag.Error {
			t.Fatalf("unexpected error: %v", e)
		}
	}
	n := root.Children[0]
	if n.Kind != ast.If {
		t.Fatalf("got %s", n.Kind)
	}
	id := n.Data.(ast.IfData)
	if id.Op != ">" || id.ThenCount != 1 {
		t.Fatalf("got %+v", id)
	}
	// Children: [left, right, then..., else...]
	if len(n.Children) != 2+1+1 {
		t.Fatalf("got %d children", len(n.Children))
	}
}

func TestParseBareIdentifierSuggestsSet(t *testing.T) {
	_, errs := parseSrc(t, `x;`)
	found := false
	for _, e := range errs {
		if e.Code == diag.ErrSynExpectedStmt {
			found = true
			if e.Suggestion == "" {
				t.Errorf("expected a suggestion on bare identifier error")
			}
		}
	}
	if !found {
		t.Fatalf("expected ERR-SYN diagnostic for bare identifier, got %v", errs)
	}
}

func TestParseEmptyVectorIsWarningNotError(t *testing.T) {
	root, errs := parseSrc(t, `set :v(vec) = [];`)
	for _, e := range errs {
		if e.Severity == diag.Error {
			t.Fatalf("empty vector literal must not be a hard error, got %v", e)
		}
	}
	hasWarn := false
	for _, e := range errs {
		if e.Code == diag.WarnSynEmptyVector {
			hasWarn = true
		}
	}
	if !hasWarn {
		t.Fatalf("expected a warning diagnostic for empty vector literal")
	}
	vec := root.Children[0].Children[0]
	if vec.Kind != ast.VectorLit || len(vec.Children) != 0 {
		t.Fatalf("got %+v", vec)
	}
}

func TestParseRecoversAfterBadStatement(t *testing.T) {
	root, errs := parseSrc(t, `bogus !!!; set x(i32) = 1;`)
	if !diag.HasErrors(errs) {
		t.Fatalf("expected at least one error diagnostic")
	}
	foundAssignment := false
	for _, c := range root.Children {
		if c.Kind == ast.Assignment {
			foundAssignment = true
		}
	}
	if !foundAssignment {
		t.Fatalf("parser should recover and still parse the trailing assignment, got %+v", root.Children)
	}
}

func TestParseMathErrSuffix(t *testing.T) {
	root, errs := parseSrc(t, `math([1/0], r).Err("div by zero");`)
	for _, e := range errs {
		if e.Severity == diag.Error {
			t.Fatalf("unexpected error: %v", e)
		}
	}
	md := root.Children[0].Data.(ast.MathData)
	if !md.HasErrMsg || md.ErrMsg != "div by zero" {
		t.Fatalf("got %+v", md)
	}
}

func TestParseInputErrSuffix(t *testing.T) {
	root, errs := parseSrc(t, `in(x).Err("bad input");`)
	for _, e := range errs {
		if e.Severity == diag.Error {
			t.Fatalf("unexpected error: %v", e)
		}
	}
	id := root.Children[0].Data.(ast.InputData)
	if !id.HasErrMsg || id.ErrMsg != "bad input" || id.Target != "x" {
		t.Fatalf("got %+v", id)
	}
}
