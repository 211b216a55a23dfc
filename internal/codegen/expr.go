package codegen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"axonscript/internal/diag"
	"axonscript/internal/hir"
)

// genExpr lowers a single HIR expression node, following the operand
// dispatch in the teacher's genExpression/genRelation (transform.go)
// generalized across AxonScript's closed type set.
func (bd *builder) genExpr(n *hir.Node) (llvm.Value, bool) {
	switch n.Kind {
	case hir.IntLit, hir.Int64Lit:
		v := n.Data.(hir.IntLitData).Value
		return llvm.ConstInt(llvmType(n.Type), uint64(v), true), true
	case hir.FloatLit, hir.Float64Lit:
		v := n.Data.(hir.FloatLitData).Value
		return llvm.ConstFloat(llvmType(n.Type), v), true
	case hir.BoolLit:
		v := n.Data.(hir.BoolLitData).Value
		if v {
			return llvm.ConstInt(llvm.Int1Type(), 1, false), true
		}
		return llvm.ConstInt(llvm.Int1Type(), 0, false), true
	case hir.StringLit:
		v := n.Data.(hir.StringLitData).Value
		return bd.b.CreateGlobalStringPtr(v, "L_STR"), true
	case hir.Identifier:
		return bd.genIdentifier(n)
	case hir.BinaryOp:
		return bd.genBinaryOp(n)
	case hir.Coerce:
		return bd.genCoerce(n)
	case hir.FunctionCall:
		return bd.genCall(n)
	default:
		bd.addErr(diag.Codegen, diag.ErrSemAssignTypeMismatch,
			fmt.Sprintf("cannot generate code for expression of kind %s", n.Kind), n)
		return llvm.Value{}, false
	}
}

func (bd *builder) genIdentifier(n *hir.Node) (llvm.Value, bool) {
	data := n.Data.(hir.IdentifierData)
	s, found := bd.lookupVar(data.Name)
	if !found {
		bd.addErr(diag.Codegen, diag.ErrSemUnboundIdentifier,
			fmt.Sprintf("identifier %q is not declared", data.Name), n)
		return llvm.Value{}, false
	}
	return bd.b.CreateLoad(s.ptr, ""), true
}

// genCoerce emits the widening instruction the semantic analyzer picked
// a target type for (spec §4.2): sext for an integer widening, SIToFP
// for an integer-to-float promotion, FPExt for F32 to F64. Any other
// combination reaching codegen is an analyzer bug, not user error, so
// it's still reported rather than panicking (ERR-SEM-511).
func (bd *builder) genCoerce(n *hir.Node) (llvm.Value, bool) {
	inner, ok := bd.genExpr(n.Children[0])
	if !ok {
		return llvm.Value{}, false
	}
	data := n.Data.(hir.CoerceData)
	from, to := data.From, n.Type
	switch {
	case from.IsFloat() && to.IsFloat():
		return bd.b.CreateFPExt(inner, llvmType(to), ""), true
	case !from.IsFloat() && to.IsFloat():
		return bd.b.CreateSIToFP(inner, llvmType(to), ""), true
	case !from.IsFloat() && !to.IsFloat():
		return bd.b.CreateSExt(inner, llvmType(to), ""), true
	default:
		bd.addErr(diag.Codegen, diag.ErrSemBadCoercion,
			fmt.Sprintf("cannot coerce %s to %s", from, to), n)
		return llvm.Value{}, false
	}
}

// genBinaryOp lowers both arithmetic (+ - * /) and comparison
// (== != < > <= >=) operators, dispatching on whether the (already
// coerced-to-common-type) left operand is floating point, mirroring the
// teacher's genExpression/genRelation int-vs-float branches.
func (bd *builder) genBinaryOp(n *hir.Node) (llvm.Value, bool) {
	left, ok := bd.genExpr(n.Children[0])
	if !ok {
		return llvm.Value{}, false
	}
	right, ok := bd.genExpr(n.Children[1])
	if !ok {
		return llvm.Value{}, false
	}
	data := n.Data.(hir.BinaryOpData)
	isFloat := n.Children[0].Type.IsFloat()

	switch data.Op {
	case "+":
		if isFloat {
			return bd.b.CreateFAdd(left, right, ""), true
		}
		return bd.b.CreateAdd(left, right, ""), true
	case "-":
		if isFloat {
			return bd.b.CreateFSub(left, right, ""), true
		}
		return bd.b.CreateSub(left, right, ""), true
	case "*":
		if isFloat {
			return bd.b.CreateFMul(left, right, ""), true
		}
		return bd.b.CreateMul(left, right, ""), true
	case "/":
		if literalZero(n.Children[1]) {
			bd.addErr(diag.Codegen, diag.ErrSemDivByZero,
				"division by literal zero", n)
			return llvm.Value{}, false
		}
		if isFloat {
			return bd.b.CreateFDiv(left, right, ""), true
		}
		return bd.b.CreateSDiv(left, right, ""), true
	case "==":
		if isFloat {
			return bd.b.CreateFCmp(llvm.FloatOEQ, left, right, ""), true
		}
		return bd.b.CreateICmp(llvm.IntEQ, left, right, ""), true
	case "!=":
		if isFloat {
			return bd.b.CreateFCmp(llvm.FloatONE, left, right, ""), true
		}
		return bd.b.CreateICmp(llvm.IntNE, left, right, ""), true
	case "<":
		if isFloat {
			return bd.b.CreateFCmp(llvm.FloatOLT, left, right, ""), true
		}
		return bd.b.CreateICmp(llvm.IntSLT, left, right, ""), true
	case ">":
		if isFloat {
			return bd.b.CreateFCmp(llvm.FloatOGT, left, right, ""), true
		}
		return bd.b.CreateICmp(llvm.IntSGT, left, right, ""), true
	case "<=":
		if isFloat {
			return bd.b.CreateFCmp(llvm.FloatOLE, left, right, ""), true
		}
		return bd.b.CreateICmp(llvm.IntSLE, left, right, ""), true
	case ">=":
		if isFloat {
			return bd.b.CreateFCmp(llvm.FloatOGE, left, right, ""), true
		}
		return bd.b.CreateICmp(llvm.IntSGE, left, right, ""), true
	default:
		bd.addErr(diag.Codegen, diag.ErrSemAssignTypeMismatch,
			fmt.Sprintf("undefined binary operator %q", data.Op), n)
		return llvm.Value{}, false
	}
}

// literalZero reports whether n is a literal zero, looking through any
// Coerce wrapper the analyzer inserted to widen it to the division's
// common type. Mirrors original_source's compiler_math_codegen.rs match
// on HIRExpr::Int32(0)|Int64(0)|Float32(0.0)|Float64(0.0) (spec §4.2/4.3:
// literal zero is additionally caught at codegen time, not just when both
// operands are known constants).
func literalZero(n *hir.Node) bool {
	for n.Kind == hir.Coerce {
		n = n.Children[0]
	}
	switch n.Kind {
	case hir.IntLit, hir.Int64Lit:
		return n.Data.(hir.IntLitData).Value == 0
	case hir.FloatLit, hir.Float64Lit:
		return n.Data.(hir.FloatLitData).Value == 0
	default:
		return false
	}
}

// genCall lowers a FunctionCall. Every declared function takes zero
// parameters (Open Question decision 2: any parameter is rejected as
// Void-typed at header codegen), so a well-typed call always has zero
// argument expressions; anything else means the parser accepted a call
// syntax the rest of the pipeline can't back up.
func (bd *builder) genCall(n *hir.Node) (llvm.Value, bool) {
	data := n.Data.(hir.FunctionCallData)
	fun := bd.m.NamedFunction(data.Name)
	if fun.IsNil() {
		bd.addErr(diag.Codegen, diag.ErrSemUnboundIdentifier,
			fmt.Sprintf("function %q is not declared", data.Name), n)
		return llvm.Value{}, false
	}
	if len(n.Children) != 0 {
		bd.addErr(diag.Codegen, diag.ErrSemAssignTypeMismatch,
			fmt.Sprintf("function %q takes no arguments, got %d", data.Name, len(n.Children)), n)
		return llvm.Value{}, false
	}
	if fun.Type().ElementType().ReturnType() == llvm.VoidType() {
		bd.b.CreateCall(fun, nil, "")
		return llvm.Value{}, true
	}
	return bd.b.CreateCall(fun, nil, ""), true
}

// declarePrintf, declareScanf and declareMalloc lazily declare the libc
// glue genPrint/genInput need, mirroring the teacher's genPrintf
// (transform.go) generalized to the extra functions AxonScript's Print
// and Input statements pull in.
func (bd *builder) declarePrintf() llvm.Value {
	ftyp := llvm.FunctionType(llvm.Int32Type(), []llvm.Type{llvm.PointerType(llvm.Int8Type(), 0)}, true)
	return llvm.AddFunction(bd.m, "printf", ftyp)
}

func (bd *builder) declareScanf() llvm.Value {
	ftyp := llvm.FunctionType(llvm.Int32Type(), []llvm.Type{llvm.PointerType(llvm.Int8Type(), 0)}, true)
	return llvm.AddFunction(bd.m, "scanf", ftyp)
}

func (bd *builder) declareMalloc() llvm.Value {
	ftyp := llvm.FunctionType(llvm.PointerType(llvm.Int8Type(), 0), []llvm.Type{llvm.Int64Type()}, false)
	return llvm.AddFunction(bd.m, "malloc", ftyp)
}
