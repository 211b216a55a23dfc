package codegen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"axonscript/internal/diag"
	"axonscript/internal/hir"
	"axonscript/internal/types"
)

// genGlobalDeclaration handles a top-level Assignment.
//
// Open Question decision 1 (SPEC_FULL.md): a top-level initializer must
// be a compile-time constant. This mirrors a literal unreachability in
// the original codegen (compiler_variable_codegen.rs): outside of a
// function there is no basic block to insert a CreateLoad/CreateAdd/etc
// into, so any initializer that isn't already a constant can never
// actually be lowered there. Here that unreachability is made an
// explicit, reported error (ERR-SEM-513) instead of left as a latent
// crash.
func (bd *builder) genGlobalDeclaration(n *hir.Node) {
	data := n.Data.(hir.AssignmentData)
	name := data.Name

	if !bd.m.NamedFunction(name).IsNil() {
		bd.addErr(diag.Codegen, diag.ErrSemAssignTypeMismatch,
			fmt.Sprintf("duplicate declaration, identifier %q already declared as a function", name), n)
		return
	}
	value := n.Children[0]
	if existing, ok := bd.globals[name]; ok && existing.typ != value.Type {
		bd.addErr(diag.Codegen, diag.ErrSemAssignTypeMismatch,
			fmt.Sprintf("type mismatch: existing global %q is %s, new value is %s", name, existing.typ, value.Type), n)
		return
	}

	cnst, ok := bd.constExpr(value)
	if !ok {
		bd.addErr(diag.Codegen, diag.ErrSemNonConstGlobalInit,
			fmt.Sprintf("top-level variable %q must be initialized with a compile-time constant", name), n)
		return
	}

	typ := llvmType(value.Type)
	g := llvm.AddGlobal(bd.m, typ, name)
	g.SetInitializer(cnst)
	g.SetLinkage(llvm.ExternalLinkage)
	bd.globals[name] = slot{ptr: g, typ: value.Type}
}

// constExpr evaluates an HIR expression to an LLVM constant without
// emitting any instructions, for use in contexts with no insertion block
// (top-level global initializers). Only numeric and boolean literals,
// bare or Coerce-wrapped, qualify; a string literal is rejected, and
// anything else (an identifier load, a binary op, a call) requires the
// builder and so is rejected by the caller.
func (bd *builder) constExpr(n *hir.Node) (llvm.Value, bool) {
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
		// A constant string initializer still needs a global of its own;
		// out of scope for a top-level scalar slot, rejected like any
		// other non-scalar-constant case.
		return llvm.Value{}, false
	case hir.Coerce:
		inner, ok := bd.constExpr(n.Children[0])
		if !ok {
			return llvm.Value{}, false
		}
		return bd.constCoerce(inner, n.Children[0].Type, n.Type), true
	default:
		return llvm.Value{}, false
	}
}

// constCoerce applies a widening conversion to an already-constant LLVM
// value, used only by constExpr (top-level initializers).
func (bd *builder) constCoerce(v llvm.Value, from, to types.Type) llvm.Value {
	if from == to {
		return v
	}
	switch {
	case from.IsFloat() && to.IsFloat():
		return llvm.ConstFPExt(v, llvmType(to))
	case !from.IsFloat() && to.IsFloat():
		return llvm.ConstSIToFP(v, llvmType(to))
	case !from.IsFloat() && !to.IsFloat():
		return llvm.ConstSExt(v, llvmType(to))
	default:
		return v
	}
}

// genAssign lowers an Assignment appearing inside a function body: a
// local if the name isn't already bound in an enclosing scope or as a
// global, otherwise a store to the existing slot (ERR-SEM-510 on a type
// mismatch), mirroring the teacher's genAssign/genDeclaration split
// (transform.go) fused with the original's single codegen_assignment
// (compiler_variable_codegen.rs).
func (bd *builder) genAssign(fun llvm.Value, n *hir.Node) {
	data := n.Data.(hir.AssignmentData)
	name := data.Name

	value, ok := bd.genExpr(n.Children[0])
	if !ok {
		return
	}

	if existing, found := bd.lookupVar(name); found {
		if existing.typ != n.Children[0].Type {
			bd.addErr(diag.Codegen, diag.ErrSemAssignTypeMismatch,
				fmt.Sprintf("type mismatch: existing variable %q is %s, new value is %s", name, existing.typ, n.Children[0].Type), n)
			return
		}
		bd.b.CreateStore(value, existing.ptr)
		return
	}

	ptr := bd.b.CreateAlloca(llvmType(n.Children[0].Type), name)
	bd.b.CreateStore(value, ptr)
	frame := bd.scopes.Peek().(map[string]slot)
	frame[name] = slot{ptr: ptr, typ: n.Children[0].Type}
}

// lookupVar walks the scope stack top-down for a local, falling back to
// the global table, mirroring the teacher's genLoad/genStore lookup
// order (transform.go).
func (bd *builder) lookupVar(name string) (slot, bool) {
	for i := 1; i <= bd.scopes.Size(); i++ {
		frame := bd.scopes.Get(i).(map[string]slot)
		if s, ok := frame[name]; ok {
			return s, true
		}
	}
	if s, ok := bd.globals[name]; ok {
		return s, true
	}
	return slot{}, false
}
