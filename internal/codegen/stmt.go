package codegen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"axonscript/internal/diag"
	"axonscript/internal/hir"
	"axonscript/internal/types"
)

// genStatements lowers a list of sibling statement nodes in order,
// mirroring the teacher's BLOCK case in gen() (transform.go).
func (bd *builder) genStatements(fun llvm.Value, nodes []*hir.Node) {
	for _, n := range nodes {
		bd.genStmt(fun, n)
	}
}

// genBlock pushes a fresh lexical scope, lowers a Block node's
// statements, and pops the scope again - used for If arms, which HIR
// represents as a Block grouping node (hir.BlockData).
func (bd *builder) genBlock(fun llvm.Value, n *hir.Node) {
	bd.scopes.Push(make(map[string]slot))
	bd.genStatements(fun, n.Children)
	bd.scopes.Pop()
}

func (bd *builder) genStmt(fun llvm.Value, n *hir.Node) {
	switch n.Kind {
	case hir.Assignment:
		bd.genAssign(fun, n)
	case hir.Print:
		bd.genPrint(fun, n)
	case hir.Input:
		bd.genInput(fun, n)
	case hir.If:
		bd.genIf(fun, n)
	case hir.While:
		bd.genWhile(fun, n)
	case hir.Loop:
		bd.genLoop(fun, n)
	case hir.Break:
		bd.genBreak(n)
	case hir.Block:
		bd.genBlock(fun, n)
	default:
		// An expression used as a statement (rare, but valid HIR shape);
		// lower it and discard the result.
		bd.genExpr(n)
	}
}

// genPrint lowers a Print statement into a single printf call, building
// the format string at compile time from each argument's static type
// (spec §4.3): %d for I32/Bool, %lld for I64, %f for F32/F64 (F32
// widened to F64 first, since printf's vararg promotion expects double),
// %s for String, space-separated, newline-terminated - grounded on the
// teacher's genPrint (transform.go).
func (bd *builder) genPrint(fun llvm.Value, n *hir.Node) {
	pf := bd.m.NamedFunction("printf")
	if pf.IsNil() {
		pf = bd.declarePrintf()
	}

	args := make([]llvm.Value, 0, len(n.Children)+1)
	format := ""
	for i, arg := range n.Children {
		if i > 0 {
			format += " "
		}
		v, ok := bd.genExpr(arg)
		if !ok {
			return
		}
		switch arg.Type {
		case types.I32, types.Bool:
			format += "%d"
		case types.I64:
			format += "%lld"
		case types.F32:
			v = bd.b.CreateFPExt(v, llvm.DoubleType(), "")
			format += "%f"
		case types.F64:
			format += "%f"
		case types.String:
			format += "%s"
		default:
			bd.addErr(diag.Codegen, diag.ErrSemAssignTypeMismatch,
				fmt.Sprintf("cannot print value of type %s", arg.Type), n)
			return
		}
		args = append(args, v)
	}
	format += "\n"

	frmt := bd.b.CreateGlobalStringPtr(format, "L_STR")
	call := append([]llvm.Value{frmt}, args...)
	bd.b.CreateCall(pf, call, "")
}

// genInput lowers an Input statement via scanf, grounded on the
// original's compiler_input_codegen.rs and the teacher's printf-style
// format dispatch in genPrint (transform.go). The target must resolve
// to a mutable local slot (ERR-SEM-548): a global or immutable target is
// rejected, since AxonScript's driver has no notion of a mutable global
// and reading into one would silently defeat the constant-propagation
// the semantic analyzer relies on for ERR-SEM-550.
func (bd *builder) genInput(fun llvm.Value, n *hir.Node) {
	data := n.Data.(hir.InputData)
	target, found := bd.lookupVar(data.Target)
	if !found {
		bd.addErr(diag.Codegen, diag.ErrSemUnboundIdentifier,
			fmt.Sprintf("input target %q is not declared", data.Target), n)
		return
	}
	if _, isGlobal := bd.globals[data.Target]; isGlobal || !bd.mutable[data.Target] {
		bd.addErr(diag.Codegen, diag.ErrSemInputIntoGlobal,
			fmt.Sprintf("input target %q must be a mutable local variable", data.Target), n)
		return
	}

	sf := bd.m.NamedFunction("scanf")
	if sf.IsNil() {
		sf = bd.declareScanf()
	}

	switch target.typ {
	case types.I32, types.Bool:
		tmp := bd.b.CreateAlloca(llvm.Int32Type(), "")
		format := bd.b.CreateGlobalStringPtr("%d", "L_STR")
		bd.b.CreateCall(sf, []llvm.Value{format, tmp}, "")
		v := bd.b.CreateLoad(tmp, "")
		if target.typ == types.Bool {
			v = bd.b.CreateTrunc(v, llvm.Int1Type(), "")
		}
		bd.b.CreateStore(v, target.ptr)
	case types.I64:
		tmp := bd.b.CreateAlloca(llvm.Int64Type(), "")
		format := bd.b.CreateGlobalStringPtr("%lld", "L_STR")
		bd.b.CreateCall(sf, []llvm.Value{format, tmp}, "")
		v := bd.b.CreateLoad(tmp, "")
		bd.b.CreateStore(v, target.ptr)
	case types.F32, types.F64:
		tmp := bd.b.CreateAlloca(llvm.DoubleType(), "")
		format := bd.b.CreateGlobalStringPtr("%lf", "L_STR")
		bd.b.CreateCall(sf, []llvm.Value{format, tmp}, "")
		v := bd.b.CreateLoad(tmp, "")
		if target.typ == types.F32 {
			v = bd.b.CreateFPTrunc(v, llvm.FloatType(), "")
		}
		bd.b.CreateStore(v, target.ptr)
	case types.String:
		mf := bd.m.NamedFunction("malloc")
		if mf.IsNil() {
			mf = bd.declareMalloc()
		}
		buf := bd.b.CreateCall(mf, []llvm.Value{llvm.ConstInt(llvm.Int64Type(), 1024, false)}, "")
		format := bd.b.CreateGlobalStringPtr("%1023s", "L_STR")
		bd.b.CreateCall(sf, []llvm.Value{format, buf}, "")
		bd.b.CreateStore(buf, target.ptr)
	default:
		bd.addErr(diag.Codegen, diag.ErrSemAssignTypeMismatch,
			fmt.Sprintf("cannot read input into value of type %s", target.typ), n)
	}
}

// genIf lowers an If node. Children[0] is the boolean condition,
// Children[1] the then-Block, and an optional Children[2] the else-Block
// (spec §3.3 hir.IfData). Converge-block construction and early-return
// skipping mirrors the teacher's genIf (transform.go).
func (bd *builder) genIf(fun llvm.Value, n *hir.Node) {
	cond, ok := bd.genExpr(n.Children[0])
	if !ok {
		return
	}
	if n.Children[0].Type != types.Bool {
		bd.addErr(diag.Codegen, diag.ErrSemConditionNotBool,
			"if condition must be Bool", n)
		return
	}

	thenBB := llvm.AddBasicBlock(fun, "")
	if len(n.Children) == 2 {
		convBB := llvm.AddBasicBlock(fun, "")
		bd.b.CreateCondBr(cond, thenBB, convBB)

		bd.b.SetInsertPointAtEnd(thenBB)
		bd.genBlock(fun, n.Children[1])
		if !bd.blockTerminated(bd.b.GetInsertBlock()) {
			bd.b.CreateBr(convBB)
		}

		bd.b.SetInsertPointAtEnd(convBB)
		return
	}

	elseBB := llvm.AddBasicBlock(fun, "")
	bd.b.CreateCondBr(cond, thenBB, elseBB)

	bd.b.SetInsertPointAtEnd(thenBB)
	bd.genBlock(fun, n.Children[1])
	thenEnd := bd.b.GetInsertBlock()
	thenTerminated := bd.blockTerminated(thenEnd)

	bd.b.SetInsertPointAtEnd(elseBB)
	bd.genBlock(fun, n.Children[2])
	elseEnd := bd.b.GetInsertBlock()
	elseTerminated := bd.blockTerminated(elseEnd)

	if thenTerminated && elseTerminated {
		// Both arms returned; no converge block is reachable.
		return
	}
	convBB := llvm.AddBasicBlock(fun, "")
	if !thenTerminated {
		bd.b.SetInsertPointAtEnd(thenEnd)
		bd.b.CreateBr(convBB)
	}
	if !elseTerminated {
		bd.b.SetInsertPointAtEnd(elseEnd)
		bd.b.CreateBr(convBB)
	}
	bd.b.SetInsertPointAtEnd(convBB)
}

// blockTerminated reports whether bb's last instruction is already a
// terminator (a break emitted inside an if-arm, say), so genIf doesn't
// add an unreachable unconditional branch after it. genIf passes the
// arm's final block, which differs from the arm's first block when the
// arm contains nested control flow.
func (bd *builder) blockTerminated(bb llvm.BasicBlock) bool {
	last := bb.LastInstruction()
	return !last.IsNil() && !last.IsATerminatorInst().IsNil()
}

// genWhile lowers a While node: Children[0] is the condition,
// Children[1:] are body statements (spec §3.3 hir.WhileData), following
// the teacher's head/body/conv basic-block construction (genWhile,
// transform.go). The conv (exit) block is pushed as the current loop's
// break target.
func (bd *builder) genWhile(fun llvm.Value, n *hir.Node) {
	head := llvm.AddBasicBlock(fun, "")
	body := llvm.AddBasicBlock(fun, "")
	conv := llvm.AddBasicBlock(fun, "")

	bd.b.CreateBr(head)
	bd.b.SetInsertPointAtEnd(head)
	cond, ok := bd.genExpr(n.Children[0])
	if !ok {
		return
	}
	if n.Children[0].Type != types.Bool {
		bd.addErr(diag.Codegen, diag.ErrSemConditionNotBool,
			"while condition must be Bool", n)
		return
	}
	bd.b.CreateCondBr(cond, body, conv)

	bd.breaks.Push(conv)
	bd.b.SetInsertPointAtEnd(body)
	bd.scopes.Push(make(map[string]slot))
	bd.genStatements(fun, n.Children[1:])
	bd.scopes.Pop()
	if !bd.blockTerminated(bd.b.GetInsertBlock()) {
		bd.b.CreateBr(head)
	}
	bd.breaks.Pop()

	bd.b.SetInsertPointAtEnd(conv)
}

// genLoop lowers an unconditional Loop node (spec §3.3 hir.LoopData): a
// body-only basic block that always branches back to itself, exited only
// via Break, mirroring while(true) in the teacher's idiom since vslc has
// no bare infinite-loop construct of its own.
func (bd *builder) genLoop(fun llvm.Value, n *hir.Node) {
	body := llvm.AddBasicBlock(fun, "")
	conv := llvm.AddBasicBlock(fun, "")

	bd.b.CreateBr(body)
	bd.b.SetInsertPointAtEnd(body)

	bd.breaks.Push(conv)
	bd.scopes.Push(make(map[string]slot))
	bd.genStatements(fun, n.Children)
	bd.scopes.Pop()
	if !bd.blockTerminated(bd.b.GetInsertBlock()) {
		bd.b.CreateBr(body)
	}
	bd.breaks.Pop()

	bd.b.SetInsertPointAtEnd(conv)
}

// genBreak branches to the innermost enclosing loop's converge block.
// The semantic analyzer already rejects a Break outside any loop
// (ERR-SEM-310), so an empty break stack here means codegen was handed
// HIR that bypassed that check (ERR-SEM-531).
func (bd *builder) genBreak(n *hir.Node) {
	top := bd.breaks.Peek()
	if top == nil {
		bd.addErr(diag.Codegen, diag.ErrSemBreakNoTerminator,
			"break outside of any loop", n)
		return
	}
	bd.b.CreateBr(top.(llvm.BasicBlock))
}
