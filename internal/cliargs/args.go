// Package cliargs parses the axonc command line, a direct generalization
// of the teacher's src/util.ParseArgs: a manual os.Args switch, no
// third-party flag/cobra/kong library.
package cliargs

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

const appVersion = "axonscript compiler 1.0"

// Command identifies which of axonc's subcommands was requested (spec
// §6.4: create project, run, check, build).
type Command int

const (
	CommandNone Command = iota
	CommandCreateProject
	CommandRun
	CommandCheck
	CommandBuild
)

// Args is the parsed result of one invocation.
type Args struct {
	Command     Command
	ProjectName string // "create project <name>"
	Src         string // path to source file; empty reads the current project's src/init.ax
	Out         string // --output
	Target      string // --target
	Verbose     bool
}

// Parse parses os.Args[1:]. Exits the process directly for -h/--help and
// -v/--version, matching the teacher's ParseArgs (printHelp/os.Exit
// inline rather than threaded back through an error).
func Parse(argv []string) (Args, error) {
	a := Args{}
	if len(argv) == 0 {
		return a, fmt.Errorf("expected a command: create, run, check or build")
	}

	switch argv[0] {
	case "-h", "--h", "-help", "--help":
		printHelp()
		os.Exit(0)
	case "-v", "--v", "-version", "--version":
		fmt.Println(appVersion)
		os.Exit(0)
	}

	switch argv[0] {
	case "create":
		if len(argv) < 3 || argv[1] != "project" {
			return a, fmt.Errorf("usage: axonc create project <name>")
		}
		a.Command = CommandCreateProject
		a.ProjectName = argv[2]
		return a, nil
	case "run":
		a.Command = CommandRun
	case "check":
		a.Command = CommandCheck
	case "build":
		a.Command = CommandBuild
	default:
		return a, fmt.Errorf("unexpected command: %s", argv[0])
	}

	rest := argv[1:]
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "--output", "-o":
			if i+1 >= len(rest) || strings.HasPrefix(rest[i+1], "-") {
				return a, fmt.Errorf("got flag %s but no argument", rest[i])
			}
			a.Out = rest[i+1]
			i++
		case "--target", "-target":
			if i+1 >= len(rest) || strings.HasPrefix(rest[i+1], "-") {
				return a, fmt.Errorf("got flag %s but no argument", rest[i])
			}
			a.Target = rest[i+1]
			i++
		case "-vb", "--verbose":
			a.Verbose = true
		default:
			if strings.HasPrefix(rest[i], "-") {
				return a, fmt.Errorf("unexpected flag: %s", rest[i])
			}
			a.Src = rest[i]
		}
	}
	return a, nil
}

// printHelp prints a helpful usage message to stdout.
func printHelp() {
	w := tabwriter.NewWriter(os.Stdout, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "create project <name>\tScaffold a new AxonScript project directory.")
	_, _ = fmt.Fprintln(w, "run [file]\tCompile and JIT-execute a source file or the current project.")
	_, _ = fmt.Fprintln(w, "check [file]\tParse and type-check without generating code.")
	_, _ = fmt.Fprintln(w, "build [file]\tCompile and link a native executable.")
	_, _ = fmt.Fprintln(w, "  --output, -o\tPath of the produced executable.")
	_, _ = fmt.Fprintln(w, "  --target, -target\tLLVM target triple. Defaults to the host triple.")
	_, _ = fmt.Fprintln(w, "-vb, --verbose\tPrint generated LLVM IR to stdout.")
	_, _ = fmt.Fprintln(w, "-h, -help, --h, --help\tPrints this help message and exits.")
	_, _ = fmt.Fprintln(w, "-v, -version, --v, --version\tPrints the compiler version and exits.")
	_ = w.Flush()
}
