package driver

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"tinygo.org/x/go-llvm"

	"axonscript/internal/diag"
	"axonscript/internal/token"
)

// buildDir is where build outputs land, per spec §6.3 ("release/<name>[.exe]").
const buildDir = "release"

// emitAndLink is the object-file path (spec §4.4): verify, select a
// target from a triple (host default unless overridden), create a
// target machine with a generic CPU/empty features/Default optimization
// level/PIC relocation/Default code model, emit an object file, then
// invoke the system linker. Grounded on the teacher's GenLLVM tail
// (target init, CreateTargetMachine, EmitToMemoryBuffer) and on
// original_source/src/compiler_neuron/mod.rs::emit_object_file +
// src/main.rs::link_object_file for the PIC relocation choice and the
// linker dispatch/-static flag.
//
// Single-owner resource regime (spec §5): this path never hands the
// module to anything that takes ownership of it, so ctx.Dispose() at
// the end tears down context+module together; the builder was already
// disposed inside codegen.BuildModule.
func emitAndLink(ctx llvm.Context, m llvm.Module, opt Options) []diag.Diagnostic {
	defer ctx.Dispose()

	if errs := verify(m); errs != nil {
		return errs
	}

	if opt.Verbose {
		m.Dump()
	}

	llvm.InitializeAllTargetInfos()
	llvm.InitializeAllTargets()
	llvm.InitializeAllTargetMCs()
	llvm.InitializeAllAsmPrinters()

	triple := opt.Target
	if triple == "" {
		triple = llvm.DefaultTargetTriple()
	}

	target, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		return []diag.Diagnostic{diag.New(diag.Codegen, diag.ErrSemVerifyFailed,
			fmt.Sprintf("failed to get target from triple %q: %v", triple, err), token.Span{})}
	}

	tm := target.CreateTargetMachine(triple, "generic", "",
		llvm.CodeGenLevelDefault, llvm.RelocPIC, llvm.CodeModelDefault)
	defer tm.Dispose()

	m.SetTarget(triple)

	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return []diag.Diagnostic{diag.New(diag.Codegen, diag.ErrSemVerifyFailed,
			fmt.Sprintf("failed to create %q: %v", buildDir, err), token.Span{})}
	}
	objPath, exePath := outputPaths(opt, triple)

	buf, err := tm.EmitToMemoryBuffer(m, llvm.ObjectFile)
	if err != nil {
		return []diag.Diagnostic{diag.New(diag.Codegen, diag.ErrSemVerifyFailed,
			fmt.Sprintf("failed to emit object code: %v", err), token.Span{})}
	}
	if err := ioutil.WriteFile(objPath, buf.Bytes(), 0644); err != nil {
		return []diag.Diagnostic{diag.New(diag.Codegen, diag.ErrSemVerifyFailed,
			fmt.Sprintf("failed to write object file %q: %v", objPath, err), token.Span{})}
	}

	if err := link(objPath, exePath, triple); err != nil {
		return []diag.Diagnostic{diag.New(diag.Linker, diag.ErrLinkFailed, err.Error(), token.Span{})}
	}
	os.Remove(objPath)
	return nil
}

// outputPaths derives the object and executable paths for one build:
// release/<name>.<o|obj>, release/<name>[.exe] unless opt.Out overrides
// the executable path (spec §6.3, §6.4's --output flag).
func outputPaths(opt Options, triple string) (objPath, exePath string) {
	name := projectName(opt)
	objExt, exeExt := "o", ""
	if strings.Contains(triple, "windows") {
		objExt, exeExt = "obj", ".exe"
	}
	objPath = filepath.Join(buildDir, name+"."+objExt)
	if opt.Out != "" {
		exePath = opt.Out
	} else {
		exePath = filepath.Join(buildDir, name+exeExt)
	}
	return objPath, exePath
}

func projectName(opt Options) string {
	base := opt.Src
	if base == "" {
		base = "axonscript"
	}
	base = filepath.Base(base)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
