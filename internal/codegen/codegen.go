// Package codegen lowers HIR into LLVM IR, mirroring the two-pass
// function handling and scope-stack discipline of the teacher's
// src/ir/llvm package but driven by AxonScript's HIR shape instead of
// vslc's ast.Node.
package codegen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"axonscript/internal/compiler"
	"axonscript/internal/diag"
	"axonscript/internal/hir"
	"axonscript/internal/token"
	"axonscript/internal/types"
)

// reservedFunctionNames may not be used as AxonScript function names since
// they collide with libc glue codegen emits itself.
var reservedFunctionNames = map[string]bool{
	"main":   true,
	"printf": true,
	"scanf":  true,
	"malloc": true,
	"atoi":   true,
	"atof":   true,
}

// slot tracks an allocated storage location (an alloca or a global) along
// with the AxonScript type it was created to hold, so loads and stores
// can decide whether a coercion is needed.
type slot struct {
	ptr llvm.Value
	typ types.Type
}

// builder holds everything one BuildModule call threads through the
// recursive gen* functions: the LLVM handles, the global symbol table,
// the lexical scope stack and break-target stack (both reusing
// compiler.Stack, as the teacher's transform.go reuses util.Stack), and
// the accumulated diagnostics.
type builder struct {
	b llvm.Builder
	m llvm.Module

	globals map[string]slot
	scopes  *compiler.Stack // each element is a map[string]slot
	breaks  *compiler.Stack // each element is an llvm.BasicBlock (loop exit)

	mutable map[string]bool
	errs    []diag.Diagnostic
}

// BuildModule lowers a full program's HIR into an owning LLVM module.
// mutable is the set of variable names the semantic analyzer reports as
// declared mutable (spec §3.3), needed to reject `in()` targets that
// resolve to an immutable or global slot (ERR-SEM-548).
//
// BuildModule's own builder is scratch: it's disposed before returning,
// since nothing after codegen needs an insertion point. What's handed
// back is the context and the module it owns (spec §5's single-owner
// resource hierarchy): a non-JIT caller disposes context+module
// together; a JIT caller hands the module to an execution engine (which
// takes ownership of it) and disposes only the context once the engine
// itself is disposed. On failure diagnostics are non-empty and the
// caller should still dispose ctx to reclaim the in-progress module.
func BuildModule(h *hir.Node, mutable map[string]bool, opt compiler.Options) (llvm.Context, llvm.Module, []diag.Diagnostic) {
	ctx := llvm.NewContext()
	b := ctx.NewBuilder()
	name := opt.Src
	if name == "" {
		name = "axonscript"
	}
	m := ctx.NewModule(name)

	bd := &builder{
		b:       b,
		m:       m,
		globals: make(map[string]slot, 16),
		scopes:  &compiler.Stack{},
		breaks:  &compiler.Stack{},
		mutable: mutable,
	}

	// Pass 1: pre-declare every function and create every top-level
	// global, so forward references (a function calling one declared
	// later in source order) resolve.
	var funcs []*hir.Node
	for _, top := range h.Children {
		switch top.Kind {
		case hir.Function:
			if _, err := bd.genFuncHeader(top); err != nil {
				continue
			}
			funcs = append(funcs, top)
		case hir.Assignment:
			bd.genGlobalDeclaration(top)
		default:
			bd.addErr(diag.Codegen, diag.ErrSemAssignTypeMismatch,
				fmt.Sprintf("unsupported top-level construct %s", top.Kind), top)
		}
	}

	if diag.HasErrors(bd.errs) {
		bd.b.Dispose()
		return ctx, m, bd.errs
	}

	// Pass 2: emit bodies now that every callee is resolvable.
	for _, fnNode := range funcs {
		data := fnNode.Data.(hir.FunctionData)
		fun := m.NamedFunction(data.Name)
		if fun.IsNil() {
			continue // header failed in pass 1; already reported
		}
		bd.genFuncBody(fun, fnNode)
	}

	bd.b.Dispose()
	return ctx, m, bd.errs
}

// addErr is the one place Diagnostic construction happens, since most
// call sites only have a *hir.Node (for its Span) rather than a bare
// token.Span.
func (bd *builder) addErr(kind diag.Kind, code, msg string, n *hir.Node) {
	var span token.Span
	if n != nil {
		span = n.Span
	}
	bd.errs = append(bd.errs, diag.New(kind, code, msg, span))
}

// genFuncHeader pre-declares a function's LLVM signature. AxonScript's
// HIR carries only parameter names (sema never resolves a declared
// parameter type, spec §3.3's FunctionData.Params), so every parameter
// slot is implicitly HIRType Void - a function with one or more
// parameters is therefore always rejected (ERR-SEM-512, Open Question
// decision 2) rather than silently mapped to some arbitrary LLVM type.
func (bd *builder) genFuncHeader(n *hir.Node) (llvm.Value, error) {
	data := n.Data.(hir.FunctionData)
	name := data.Name

	if reservedFunctionNames[name] && name != "main" {
		bd.addErr(diag.Codegen, diag.ErrSemAssignTypeMismatch,
			fmt.Sprintf("function name %q is reserved", name), n)
		return llvm.Value{}, fmt.Errorf("reserved name")
	}
	if !bd.m.NamedFunction(name).IsNil() {
		bd.addErr(diag.Codegen, diag.ErrSemAssignTypeMismatch,
			fmt.Sprintf("duplicate declaration, function %q already declared", name), n)
		return llvm.Value{}, fmt.Errorf("duplicate function")
	}
	if _, ok := bd.globals[name]; ok {
		bd.addErr(diag.Codegen, diag.ErrSemAssignTypeMismatch,
			fmt.Sprintf("duplicate declaration, identifier %q already declared as a global", name), n)
		return llvm.Value{}, fmt.Errorf("name clash with global")
	}

	if len(data.Params) > 0 {
		bd.addErr(diag.Codegen, diag.ErrSemVoidParameter,
			fmt.Sprintf("function %q declares %d parameter(s) of unsupported type Void", name, len(data.Params)), n)
		return llvm.Value{}, fmt.Errorf("void-typed parameter")
	}

	ret := llvmType(data.ReturnType)
	ftyp := llvm.FunctionType(ret, nil, false)
	fun := llvm.AddFunction(bd.m, name, ftyp)
	return fun, nil
}

// genFuncBody emits a function's entry block and statements, then fills
// in any basic block left without a terminator (spec §4.3): main's start
// function gets `ret i32 0`, a Void function gets `ret void`, anything
// else is ERR-SEM-580.
func (bd *builder) genFuncBody(fun llvm.Value, n *hir.Node) {
	data := n.Data.(hir.FunctionData)

	entry := llvm.AddBasicBlock(fun, "entry")
	bd.b.SetInsertPointAtEnd(entry)

	frame := make(map[string]slot)
	bd.scopes.Push(frame)
	bd.genStatements(fun, n.Children)
	bd.scopes.Pop()

	for bb := fun.FirstBasicBlock(); !bb.IsNil(); bb = llvm.NextBasicBlock(bb) {
		last := bb.LastInstruction()
		if !last.IsNil() && !last.IsATerminatorInst().IsNil() {
			continue // already terminated
		}
		bd.b.SetInsertPointAtEnd(bb)
		switch {
		case data.IsStart:
			bd.b.CreateRet(llvm.ConstInt(llvm.Int32Type(), 0, true))
		case data.ReturnType == types.Void:
			bd.b.CreateRetVoid()
		default:
			bd.addErr(diag.Codegen, diag.ErrSemMissingReturn,
				fmt.Sprintf("function %q is missing a return at the end of its body", data.Name), n)
		}
	}
}

// llvmType maps an AxonScript primitive type to its LLVM representation.
// String is represented as i8* (a pointer to a heap or constant buffer).
func llvmType(t types.Type) llvm.Type {
	switch t {
	case types.I32:
		return llvm.Int32Type()
	case types.I64:
		return llvm.Int64Type()
	case types.F32:
		return llvm.FloatType()
	case types.F64:
		return llvm.DoubleType()
	case types.Bool:
		return llvm.Int1Type()
	case types.String:
		return llvm.PointerType(llvm.Int8Type(), 0)
	default:
		return llvm.VoidType()
	}
}
