package driver

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"axonscript/internal/diag"
	"axonscript/internal/token"
)

// runJIT executes a verified module's main in-process, grounded on
// original_source/src/compiler_neuron/mod.rs::compile_and_run_jit:
// native target init, module verification, execution-engine creation
// (which takes ownership of the module), resolving and calling `main`,
// then disposing the engine (module) followed by the context. The
// builder is already disposed inside codegen.BuildModule, so there is no
// separate builder handle for the driver to release here.
func runJIT(ctx llvm.Context, m llvm.Module, opt Options) (int, []diag.Diagnostic) {
	llvm.InitializeNativeTarget()
	llvm.InitializeNativeAsmPrinter()
	llvm.InitializeNativeAsmParser()

	if errs := verify(m); errs != nil {
		ctx.Dispose()
		return -1, errs
	}

	if opt.Verbose {
		m.Dump()
	}

	engine, err := llvm.NewMCJITCompiler(m, llvm.NewMCJITCompilerOptions())
	if err != nil {
		// Engine creation failed before it could take ownership of m, so
		// disposing ctx here still reclaims the module (unlike the
		// success path below, where ctx.Dispose() must never be paired
		// with a direct m.Dispose()).
		ctx.Dispose()
		return -1, []diag.Diagnostic{diag.New(diag.Codegen, diag.ErrSemVerifyFailed,
			fmt.Sprintf("failed to create JIT execution engine: %v", err), token.Span{})}
	}

	mainFn := m.NamedFunction("main")
	if mainFn.IsNil() {
		engine.Dispose()
		ctx.Dispose()
		return -1, []diag.Diagnostic{diag.New(diag.Codegen, diag.ErrSemVerifyFailed,
			"no main function to execute", token.Span{})}
	}

	result := engine.RunFunction(mainFn, nil)
	code := int(result.Int(true))

	engine.Dispose() // takes the module down with it
	ctx.Dispose()

	var errs []diag.Diagnostic
	if code != 0 {
		errs = append(errs, diag.NewWarning(diag.Codegen, diag.WarnProgramExit,
			fmt.Sprintf("program exited with code %d", code), token.Span{}))
	}
	return code, errs
}
