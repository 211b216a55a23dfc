package sema

import (
	"testing"

	"axonscript/internal/diag"
	"axonscript/internal/hir"
	"axonscript/internal/parser"
	"axonscript/internal/token"
	"axonscript/internal/types"
)

func analyzeSrc(t *testing.T, src string) (*hir.Node, map[string]bool, []diag.Diagnostic) {
	t.Helper()
	toks := token.Scan(src)
	root, perrs := parser.Parse(toks, src)
	if diag.HasErrors(perrs) {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	h, mutable, errs := Analyze(root, src)
	return h, mutable, append(perrs, errs...)
}

func hasCode(errs []diag.Diagnostic, code string) bool {
	for _, e := range errs {
		if e.Code == code {
			return true
		}
	}
	return false
}

func TestAnalyzeMissingStartIsError(t *testing.T) {
	_, _, errs := analyzeSrc(t, `cast Helper() >> out("hi"); <<`)
	if !hasCode(errs, diag.ErrSemStartCount) {
		t.Fatalf("expected ERR-SEM-301, got %v", errs)
	}
}

func TestAnalyzeTwoStartFunctionsIsError(t *testing.T) {
	_, _, errs := analyzeSrc(t, `cast Start() >> out("a"); << cast Start() >> out("b"); <<`)
	if !hasCode(errs, diag.ErrSemStartCount) {
		t.Fatalf("expected ERR-SEM-301, got %v", errs)
	}
}

func TestAnalyzeSingleStartRenamedMain(t *testing.T) {
	h, _, errs := analyzeSrc(t, `cast Start() >> out("hi"); <<`)
	if diag.HasErrors(errs) {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var found *hir.Node
	for _, c := range h.Children {
		if c.Kind == hir.Function {
			found = c
		}
	}
	if found == nil {
		t.Fatalf("expected a Function node in %+v", h.Children)
	}
	fd := found.Data.(hir.FunctionData)
	if fd.Name != "main" || !fd.IsStart {
		t.Errorf("got %+v", fd)
	}
}

func TestAnalyzeBreakOutsideLoopIsError(t *testing.T) {
	_, _, errs := analyzeSrc(t, `cast Start() >> break; <<`)
	if !hasCode(errs, diag.ErrSemBreakOutsideLoop) {
		t.Fatalf("expected ERR-SEM-310, got %v", errs)
	}
}

func TestAnalyzeBreakInsideLoopIsFine(t *testing.T) {
	_, _, errs := analyzeSrc(t, `cast Start() >> loop >> break; << <<`)
	if hasCode(errs, diag.ErrSemBreakOutsideLoop) {
		t.Fatalf("unexpected ERR-SEM-310: %v", errs)
	}
}

func TestAnalyzeDivisionByKnownZeroConstantIsError(t *testing.T) {
	_, _, errs := analyzeSrc(t, `set z(i32) = 0; cast Start() >> math([10 / z], r); <<`)
	if !hasCode(errs, diag.ErrSemDivByZero) {
		t.Fatalf("expected ERR-SEM-550, got %v", errs)
	}
}

func TestAnalyzeDivisionByKnownNonzeroConstantIsFine(t *testing.T) {
	_, _, errs := analyzeSrc(t, `set z(i32) = 2; cast Start() >> math([10 / z], r); <<`)
	if hasCode(errs, diag.ErrSemDivByZero) {
		t.Fatalf("unexpected ERR-SEM-550: %v", errs)
	}
}

func TestAnalyzeDivisionByReassignedNonLiteralClearsConstant(t *testing.T) {
	_, _, errs := analyzeSrc(t, `set z(i32) = 0; set z(i32) = 1 + 1; cast Start() >> math([10 / z], r); <<`)
	if hasCode(errs, diag.ErrSemDivByZero) {
		t.Fatalf("reassigning z to a non-literal should invalidate the known-zero fact: %v", errs)
	}
}

// A name that is not currently marked mutable cannot be rebound by a
// plain assignment: the reassignment error fires when the new assignment
// lacks the ':' marker and the name is already bound and NOT currently
// marked mutable.
func TestAnalyzePlainReassignmentWithoutMutableMarkerIsError(t *testing.T) {
	_, _, errs := analyzeSrc(t, `set x(i32) = 1; set x(i32) = 2;`)
	if !hasCode(errs, diag.ErrSemReassignImmutable) {
		t.Fatalf("expected ERR-SEM-560, got %v", errs)
	}
}

func TestAnalyzeReassigningMutableWithoutMarkerIsFine(t *testing.T) {
	_, _, errs := analyzeSrc(t, `set :x(i32) = 1; set x(i32) = 2;`)
	if hasCode(errs, diag.ErrSemReassignImmutable) {
		t.Fatalf("unexpected ERR-SEM-560: %v", errs)
	}
}

func TestAnalyzeMutableReassignmentIsFine(t *testing.T) {
	_, _, errs := analyzeSrc(t, `set :x(i32) = 1; set :x(i32) = 2;`)
	if hasCode(errs, diag.ErrSemReassignImmutable) {
		t.Fatalf("unexpected ERR-SEM-560: %v", errs)
	}
}

func TestAnalyzeUnboundIdentifierIsError(t *testing.T) {
	_, _, errs := analyzeSrc(t, `math([y + 1], r);`)
	if !hasCode(errs, diag.ErrSemUnboundIdentifier) {
		t.Fatalf("expected ERR-SEM-500, got %v", errs)
	}
}

func TestAnalyzeCoercesMixedIntFloatToF64(t *testing.T) {
	h, _, errs := analyzeSrc(t, `set x(i32) = 1; set y(f64) = 2.5; cast Start() >> math([x + y], r); <<`)
	if diag.HasErrors(errs) {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var assign *hir.Node
	for _, c := range h.Children {
		if c.Kind == hir.Function {
			assign = c.Children[0]
		}
	}
	if assign == nil || assign.Kind != hir.Assignment {
		t.Fatalf("expected an Assignment in Start body, got %+v", h.Children)
	}
	binop := assign.Children[0]
	if binop.Kind != hir.BinaryOp {
		t.Fatalf("expected BinaryOp, got %s", binop.Kind)
	}
	left := binop.Children[0]
	if left.Kind != hir.Coerce {
		t.Fatalf("expected the I32 operand to be wrapped in Coerce, got %s", left.Kind)
	}
}

func TestAnalyzeMutableVarsReturned(t *testing.T) {
	_, mutable, errs := analyzeSrc(t, `set :x(i32) = 1; set y(i32) = 2; cast Start() >> <<`)
	if diag.HasErrors(errs) {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !mutable["x"] {
		t.Errorf("expected 'x' to be reported mutable")
	}
	if mutable["y"] {
		t.Errorf("did not expect 'y' to be reported mutable")
	}
}

func TestAnalyzeVectorLiteralRejected(t *testing.T) {
	_, _, errs := analyzeSrc(t, `set :v(vec) = []; math([v], r);`)
	if !hasCode(errs, diag.ErrSemVectorUnsupported) {
		t.Fatalf("expected ERR-SEM-230, got %v", errs)
	}
}

func TestAnalyzeIfConditionAlwaysBool(t *testing.T) {
	h, _, errs := analyzeSrc(t, `set x(i32) = 1; cast Start() >> if (x > 0) >> out(x); << <<`)
	if diag.HasErrors(errs) {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var ifNode *hir.Node
	for _, c := range h.Children {
		if c.Kind == hir.Function {
			ifNode = c.Children[0]
		}
	}
	if ifNode == nil || ifNode.Kind != hir.If {
		t.Fatalf("expected If node, got %+v", h.Children)
	}
	cond := ifNode.Children[0]
	if cond.Type != types.Bool {
		t.Fatalf("expected If condition to be Bool, got %s", cond.Type)
	}
}
