package compiler

// Options configures a single compile: source/output paths, the target
// triple, and backend mode. A generalization of the teacher's
// src/util.Options: the ARM/RISC-V-specific TargetArch/TargetVendor/
// TargetCPU/TargetOS enums collapse into a single LLVM target-triple
// string, since spec §4.4 works purely in terms of triples. Lives here
// rather than in internal/driver so internal/codegen can depend on it
// without codegen and driver importing each other.
type Options struct {
	Src     string // path to source file; empty reads from stdin
	Out     string // executable path for a build; empty uses release/<name>, unused for JIT
	Target  string // LLVM target triple; empty uses the host default
	Verbose bool   // dump generated LLVM IR to stdout
	JIT     bool   // run via the JIT instead of emitting an object file
}
