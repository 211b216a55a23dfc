// Command axonc is the AxonScript compiler's command-line entry point
// (spec §6.4): create project, run, check and build. Its pipeline
// wiring mirrors the teacher's src/main.go (ParseArgs, read source, run
// each stage, print diagnostics and set the exit code), generalized
// from vslc's single-file-only model to AxonScript's project-or-file
// model.
package main

import (
	"fmt"
	"os"

	"axonscript/internal/cliargs"
	"axonscript/internal/compiler"
	"axonscript/internal/diag"
	"axonscript/internal/driver"
	"axonscript/internal/parser"
	"axonscript/internal/project"
	"axonscript/internal/sema"
	"axonscript/internal/token"
)

func main() {
	args, err := cliargs.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("Command line argument error: %s\n", err)
		os.Exit(1)
	}

	switch args.Command {
	case cliargs.CommandCreateProject:
		if err := project.Create(args.ProjectName); err != nil {
			fmt.Printf("Error: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("Project %q created successfully.\n", args.ProjectName)
	case cliargs.CommandCheck:
		os.Exit(runCheck(args))
	case cliargs.CommandRun:
		os.Exit(runBuild(args, true))
	case cliargs.CommandBuild:
		os.Exit(runBuild(args, false))
	default:
		fmt.Println("expected a command: create, run, check or build")
		os.Exit(1)
	}
}

// resolveSrc returns the source path to compile: an explicit path from
// the command line, or the current directory's project entry point.
func resolveSrc(args cliargs.Args) (string, error) {
	if args.Src != "" {
		return args.Src, nil
	}
	if project.Exists(".") {
		return project.EntryPath("."), nil
	}
	return "", fmt.Errorf("no project found in the current directory, and no source file was given")
}

func runCheck(args cliargs.Args) int {
	src, err := resolveSrc(args)
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		return 1
	}
	code, err := compiler.ReadSource(src)
	if err != nil {
		fmt.Printf("Error: could not read source code: %s\n", err)
		return 1
	}

	toks := token.Scan(code)
	tree, diags := parser.Parse(toks, code)
	if diag.HasErrors(diags) {
		printDiagnostics(diags)
		return 1
	}

	_, _, semaDiags := sema.Analyze(tree, code)
	diags = append(diags, semaDiags...)
	printDiagnostics(diags)
	if diag.HasErrors(diags) {
		return 1
	}
	fmt.Println("No errors found.")
	return 0
}

func runBuild(args cliargs.Args, jit bool) int {
	src, err := resolveSrc(args)
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		return 1
	}
	code, err := compiler.ReadSource(src)
	if err != nil {
		fmt.Printf("Error: could not read source code: %s\n", err)
		return 1
	}

	toks := token.Scan(code)
	tree, diags := parser.Parse(toks, code)
	if diag.HasErrors(diags) {
		printDiagnostics(diags)
		return 1
	}

	h, mutable, semaDiags := sema.Analyze(tree, code)
	diags = append(diags, semaDiags...)
	if diag.HasErrors(diags) {
		printDiagnostics(diags)
		return 1
	}

	opt := compiler.Options{
		Src:     src,
		Out:     args.Out,
		Target:  args.Target,
		Verbose: args.Verbose,
		JIT:     jit,
	}

	result := driver.Build(h, mutable, opt)
	diags = append(diags, result.Diagnostics...)
	printDiagnostics(diags)
	if diag.HasErrors(diags) {
		return 1
	}
	if jit {
		return result.ExitCode
	}
	return 0
}

func printDiagnostics(diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Error())
	}
}
