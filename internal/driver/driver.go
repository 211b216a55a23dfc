// Package driver implements the backend driver (spec §4.4): it takes a
// built LLVM module and either JIT-executes it or emits an object file
// and hands it to the system linker. It owns the context/module
// lifecycle codegen hands back, per the two resource-ownership regimes
// in spec §5.
package driver

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"axonscript/internal/compiler"
	"axonscript/internal/diag"
	"axonscript/internal/hir"
	"axonscript/internal/token"

	"axonscript/internal/codegen"
)

// Options is re-exported from internal/compiler, which is where it
// actually lives (internal/codegen depends on it, and internal/driver
// depends on internal/codegen, so Options can't live here without
// creating an import cycle).
type Options = compiler.Options

// Result carries everything the caller (cmd/axonc) needs to report: the
// diagnostics accumulated across the whole driver run and, for a JIT
// run, the exit code the generated main returned.
type Result struct {
	Diagnostics []diag.Diagnostic
	ExitCode    int // only meaningful after a successful JIT run
}

// Build lowers HIR to LLVM IR and either runs it via the JIT or emits an
// object file and links it, depending on opt.JIT. mutable is the
// semantic analyzer's mutable-variable set (spec §3.3), threaded through
// to codegen.BuildModule.
func Build(h *hir.Node, mutable map[string]bool, opt Options) Result {
	ctx, m, errs := codegen.BuildModule(h, mutable, opt)
	if diag.HasErrors(errs) {
		ctx.Dispose()
		return Result{Diagnostics: errs}
	}

	if opt.JIT {
		code, jitErrs := runJIT(ctx, m, opt)
		return Result{Diagnostics: append(errs, jitErrs...), ExitCode: code}
	}

	objErrs := emitAndLink(ctx, m, opt)
	return Result{Diagnostics: append(errs, objErrs...)}
}

// verify runs the LLVM module verifier, mapping a failure into a
// Codegen diagnostic (spec §4.4, §7) instead of a panic.
func verify(m llvm.Module) []diag.Diagnostic {
	if err := llvm.VerifyModule(m, llvm.ReturnStatusAction); err != nil {
		return []diag.Diagnostic{diag.New(diag.Codegen, diag.ErrSemVerifyFailed,
			fmt.Sprintf("LLVM module verification failed: %v", err), token.Span{})}
	}
	return nil
}
