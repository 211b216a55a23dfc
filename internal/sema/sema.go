// Package sema implements the semantic analyzer: name resolution,
// mutability enforcement, numeric type coercion, and constant-propagated
// division-by-zero detection (spec §4.2). It lowers the surface AST into
// typed HIR.
//
// Grounded directly on
// _examples/original_source/src/semantic/semantic_analysis.rs — the
// SemanticContext/coerce_types/statement_to_hir/expr_to_hir shape is
// carried over nearly one-to-one, adapted from Rust's owned-value
// recursion into Go's pointer-tree idiom, and with Type inference folded
// into node construction instead of a separate infer_expr_type pass
// (every hir.Node already carries its resolved Type when built, so a
// second walk isn't needed).
package sema

import (
	"fmt"

	"axonscript/internal/ast"
	"axonscript/internal/diag"
	"axonscript/internal/hir"
	"axonscript/internal/token"
	"axonscript/internal/types"
)

// context mirrors the teacher/original's SemanticContext: a single flat
// scope (spec §4.2 "a single flat mapping"), a known-constant-integer
// map for division-by-zero detection, the currently-mutable name set,
// and the loop-depth/start-count counters for invariant checks.
type context struct {
	variables   map[string]types.Type
	constValues map[string]int64
	mutableVars map[string]bool
	startCount  int
	loopDepth   int
}

type sema struct {
	ctx  *context
	src  string
	errs []diag.Diagnostic
}

// Analyze lowers the surface AST into typed HIR, returning the resulting
// tree, the set of variable names recorded as mutable, and the
// accumulated diagnostics (spec §4.2's contract).
func Analyze(root *ast.Node, src string) (*hir.Node, map[string]bool, []diag.Diagnostic) {
	s := &sema{
		ctx: &context{
			variables:   make(map[string]types.Type),
			constValues: make(map[string]int64),
			mutableVars: make(map[string]bool),
		},
		src: src,
	}

	var stmts []*hir.Node
	for _, child := range root.Children {
		stmts = append(stmts, s.lowerStatement(child)...)
	}

	// Prepend the synthetic Result variable (spec §4.2 "Top-level
	// invariant"), matching the original's post-hoc insertion: this
	// happens after the whole program has been walked, so a user
	// program that reads Result only resolves it because an earlier
	// math(..., Result) already bound it during the walk above.
	resultLit := &hir.Node{Kind: hir.IntLit, Type: types.I32, Data: hir.IntLitData{Value: 0}}
	resultAssign := &hir.Node{
		Kind: hir.Assignment, Type: types.I32,
		Data:     hir.AssignmentData{Name: "Result", Mutable: true},
		Children: []*hir.Node{resultLit},
	}
	stmts = append([]*hir.Node{resultAssign}, stmts...)

	if s.ctx.startCount != 1 {
		s.errs = append(s.errs, diag.New(diag.Semantic, diag.ErrSemStartCount,
			fmt.Sprintf("program must have exactly one 'cast Start() >> << ' function, found %d", s.ctx.startCount),
			token.Span{}))
	}

	program := &hir.Node{Kind: hir.Program, Children: stmts}
	return program, s.ctx.mutableVars, s.errs
}

func (s *sema) err(code, msg string, span token.Span) {
	s.errs = append(s.errs, diag.New(diag.Semantic, code, msg, span))
}

// lowerStatement lowers a single surface statement, possibly producing
// more than one HIR statement for the "Do" passthrough wrapper.
func (s *sema) lowerStatement(n *ast.Node) []*hir.Node {
	switch n.Kind {
	case ast.Do:
		return s.lowerStatement(n.Children[0])

	case ast.Assignment:
		data := n.Data.(ast.AssignmentData)
		// A reassignment without the mutable marker errors when the name
		// is already bound and is not currently marked mutable: once a
		// variable has been declared without ':', every later assignment
		// must add the marker to rebind it, or it's ERR-SEM-560. A name
		// currently marked mutable can always be rebound without it.
		_, alreadyBound := s.ctx.variables[data.Name]
		if !data.Mutable && alreadyBound && !s.ctx.mutableVars[data.Name] {
			s.err(diag.ErrSemReassignImmutable,
				fmt.Sprintf("cannot reassign to immutable variable '%s'", data.Name), n.Span)
		}
		value := s.lowerExpr(n.Children[0])
		switch value.Kind {
		case hir.IntLit, hir.Int64Lit:
			s.ctx.constValues[data.Name] = value.Data.(hir.IntLitData).Value
		default:
			delete(s.ctx.constValues, data.Name)
		}
		if data.DeclaredType != "" {
			s.ctx.variables[data.Name] = surfaceType(data.DeclaredType)
		}
		if data.Mutable {
			s.ctx.mutableVars[data.Name] = true
		} else {
			delete(s.ctx.mutableVars, data.Name)
		}
		resolvedType := value.Type
		if t, ok := s.ctx.variables[data.Name]; ok {
			resolvedType = t
		}
		return []*hir.Node{{
			Kind: hir.Assignment, Type: resolvedType, Span: n.Span,
			Data:     hir.AssignmentData{Name: data.Name, Mutable: data.Mutable},
			Children: []*hir.Node{value},
		}}

	case ast.Function:
		data := n.Data.(ast.FunctionData)
		if data.IsStart {
			s.ctx.startCount++
		}
		var params []string
		for _, p := range data.Params {
			s.ctx.variables[p] = types.Void
			params = append(params, p)
		}
		var body []*hir.Node
		for _, stmt := range n.Children {
			body = append(body, s.lowerStatement(stmt)...)
		}
		name := data.Name
		returnType := types.Void
		if data.IsStart {
			name = "main"
			returnType = types.I32
		}
		return []*hir.Node{{
			Kind: hir.Function, Span: n.Span,
			Data:     hir.FunctionData{Name: name, Params: params, IsStart: data.IsStart, ReturnType: returnType},
			Children: body,
		}}

	case ast.Print:
		var args []*hir.Node
		for _, a := range n.Children {
			args = append(args, s.lowerExpr(a))
		}
		return []*hir.Node{{Kind: hir.Print, Span: n.Span, Data: hir.PrintData{}, Children: args}}

	case ast.Math:
		data := n.Data.(ast.MathData)
		value := s.lowerExpr(n.Children[0])
		s.ctx.variables[data.Destination] = value.Type
		return []*hir.Node{{
			Kind: hir.Assignment, Type: value.Type, Span: n.Span,
			Data:     hir.AssignmentData{Name: data.Destination, Mutable: s.ctx.mutableVars[data.Destination]},
			Children: []*hir.Node{value},
		}}

	case ast.Input:
		data := n.Data.(ast.InputData)
		return []*hir.Node{{
			Kind: hir.Input, Span: n.Span,
			Data: hir.InputData{Target: data.Target},
		}}

	case ast.If:
		data := n.Data.(ast.IfData)
		left := s.lowerExpr(n.Children[0])
		right := s.lowerExpr(n.Children[1])
		cond := s.synthesizeComparison(left, right, data.Op, n.Span)
		thenStmts := n.Children[2 : 2+data.ThenCount]
		elseStmts := n.Children[2+data.ThenCount:]
		var thenBody []*hir.Node
		for _, st := range thenStmts {
			thenBody = append(thenBody, s.lowerStatement(st)...)
		}
		thenBlock := &hir.Node{Kind: hir.Block, Data: hir.BlockData{}, Children: thenBody}
		children := []*hir.Node{cond, thenBlock}
		if len(elseStmts) > 0 {
			var elseBody []*hir.Node
			for _, st := range elseStmts {
				elseBody = append(elseBody, s.lowerStatement(st)...)
			}
			elseBlock := &hir.Node{Kind: hir.Block, Data: hir.BlockData{}, Children: elseBody}
			children = append(children, elseBlock)
		}
		return []*hir.Node{{Kind: hir.If, Span: n.Span, Data: hir.IfData{}, Children: children}}

	case ast.Loop:
		s.ctx.loopDepth++
		var body []*hir.Node
		for _, st := range n.Children {
			body = append(body, s.lowerStatement(st)...)
		}
		s.ctx.loopDepth--
		return []*hir.Node{{Kind: hir.Loop, Span: n.Span, Data: hir.LoopData{}, Children: body}}

	case ast.While:
		data := n.Data.(ast.WhileData)
		left := s.lowerExpr(n.Children[0])
		right := s.lowerExpr(n.Children[1])
		cond := s.synthesizeComparison(left, right, data.Op, n.Span)
		s.ctx.loopDepth++
		var body []*hir.Node
		for _, st := range n.Children[2:] {
			body = append(body, s.lowerStatement(st)...)
		}
		s.ctx.loopDepth--
		children := append([]*hir.Node{cond}, body...)
		return []*hir.Node{{Kind: hir.While, Span: n.Span, Data: hir.WhileData{}, Children: children}}

	case ast.Break:
		if s.ctx.loopDepth == 0 {
			s.err(diag.ErrSemBreakOutsideLoop, "'break' used outside of a loop", n.Span)
			return nil
		}
		return []*hir.Node{{Kind: hir.Break, Span: n.Span}}

	default:
		return nil
	}
}

// synthesizeComparison builds the HIR BinaryOp condition node for If/While.
// The operands are coerced to their common type first; the node itself
// always has Bool type regardless of that common type (spec §3.4
// "comparison operators yield Bool").
func (s *sema) synthesizeComparison(left, right *hir.Node, op string, span token.Span) *hir.Node {
	newLeft, newRight, _, ok := coerce(left, right)
	if !ok {
		s.err(diag.ErrSemCannotCoerce,
			fmt.Sprintf("cannot coerce types %s and %s", left.Type, right.Type), span)
	}
	return &hir.Node{
		Kind: hir.BinaryOp, Type: types.Bool, Span: span,
		Data:     hir.BinaryOpData{Op: op},
		Children: []*hir.Node{newLeft, newRight},
	}
}

// lowerExpr lowers a surface expression into its typed HIR form.
func (s *sema) lowerExpr(n *ast.Node) *hir.Node {
	switch n.Kind {
	case ast.IntLit:
		d := n.Data.(ast.IntLitData)
		return &hir.Node{Kind: hir.IntLit, Type: types.I32, Span: n.Span, Data: hir.IntLitData{Value: d.Value}}
	case ast.Int64Lit:
		d := n.Data.(ast.IntLitData)
		return &hir.Node{Kind: hir.Int64Lit, Type: types.I64, Span: n.Span, Data: hir.IntLitData{Value: d.Value}}
	case ast.FloatLit:
		d := n.Data.(ast.FloatLitData)
		return &hir.Node{Kind: hir.FloatLit, Type: types.F32, Span: n.Span, Data: hir.FloatLitData{Value: d.Value}}
	case ast.Float64Lit:
		d := n.Data.(ast.FloatLitData)
		return &hir.Node{Kind: hir.Float64Lit, Type: types.F64, Span: n.Span, Data: hir.FloatLitData{Value: d.Value}}
	case ast.StringLit:
		d := n.Data.(ast.StringLitData)
		return &hir.Node{Kind: hir.StringLit, Type: types.String, Span: n.Span, Data: hir.StringLitData{Value: d.Value}}
	case ast.BoolLit:
		d := n.Data.(ast.BoolLitData)
		return &hir.Node{Kind: hir.BoolLit, Type: types.Bool, Span: n.Span, Data: hir.BoolLitData{Value: d.Value}}
	case ast.Identifier:
		d := n.Data.(ast.IdentifierData)
		t, ok := s.ctx.variables[d.Name]
		if !ok {
			s.err(diag.ErrSemUnboundIdentifier, fmt.Sprintf("variable '%s' used before declaration", d.Name), n.Span)
			t = types.Void
		}
		return &hir.Node{Kind: hir.Identifier, Type: t, Span: n.Span, Data: hir.IdentifierData{Name: d.Name}}
	case ast.BinaryOp:
		return s.lowerBinaryOp(n)
	case ast.VectorLit:
		s.err(diag.ErrSemVectorUnsupported, "vector literal expressions are not representable in HIR", n.Span)
		return &hir.Node{Kind: hir.IntLit, Type: types.I32, Span: n.Span, Data: hir.IntLitData{Value: 0}}
	default:
		s.err(diag.ErrSemUnboundIdentifier, "unsupported expression form", n.Span)
		return &hir.Node{Kind: hir.IntLit, Type: types.I32, Span: n.Span, Data: hir.IntLitData{Value: 0}}
	}
}

// lowerBinaryOp lowers an arithmetic BinaryOp, performing
// constant-propagated division-by-zero detection and numeric coercion.
func (s *sema) lowerBinaryOp(n *ast.Node) *hir.Node {
	data := n.Data.(ast.BinaryOpData)

	if data.Op == "/" {
		if rid, ok := rightIdentifierName(n.Children[1]); ok {
			if val, known := s.ctx.constValues[rid]; known && val == 0 {
				s.err(diag.ErrSemDivByZero,
					fmt.Sprintf("division by variable '%s' with known value 0", rid), n.Span)
			}
		}
	}

	left := s.lowerExpr(n.Children[0])
	right := s.lowerExpr(n.Children[1])
	newLeft, newRight, common, ok := coerce(left, right)
	if !ok {
		s.err(diag.ErrSemCannotCoerce,
			fmt.Sprintf("cannot coerce types %s and %s", left.Type, right.Type), n.Span)
		return &hir.Node{Kind: hir.IntLit, Type: types.I32, Span: n.Span, Data: hir.IntLitData{Value: 0}}
	}
	return &hir.Node{
		Kind: hir.BinaryOp, Type: common, Span: n.Span,
		Data:     hir.BinaryOpData{Op: data.Op},
		Children: []*hir.Node{newLeft, newRight},
	}
}

func rightIdentifierName(n *ast.Node) (string, bool) {
	if n.Kind != ast.Identifier {
		return "", false
	}
	return n.Data.(ast.IdentifierData).Name, true
}

// coerce widens left/right to their common type per the table in
// types.Coerce, wrapping a mismatched operand in a hir.Coerce node.
func coerce(left, right *hir.Node) (newLeft, newRight *hir.Node, common types.Type, ok bool) {
	common, ok = types.Coerce(left.Type, right.Type)
	if !ok {
		return left, right, types.Void, false
	}
	newLeft = left
	if left.Type != common {
		newLeft = &hir.Node{Kind: hir.Coerce, Type: common, Span: left.Span,
			Data: hir.CoerceData{From: left.Type}, Children: []*hir.Node{left}}
	}
	newRight = right
	if right.Type != common {
		newRight = &hir.Node{Kind: hir.Coerce, Type: common, Span: right.Span,
			Data: hir.CoerceData{From: right.Type}, Children: []*hir.Node{right}}
	}
	return newLeft, newRight, common, true
}

// surfaceType maps a surface type annotation (e.g. "i32") to its
// types.Type, or types.Void if absent/unrecognized — matching the
// original's treatment of an omitted declared type.
func surfaceType(name string) types.Type {
	switch name {
	case "i32":
		return types.I32
	case "i64":
		return types.I64
	case "f32":
		return types.F32
	case "f64":
		return types.F64
	case "bool":
		return types.Bool
	case "string":
		return types.String
	default:
		return types.Void
	}
}
