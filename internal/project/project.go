// Package project handles AxonScript's on-disk project layout (spec
// §6.3): a project.asml manifest and a src/init.ax entry point, parsed
// with a small hand-rolled line scanner in the teacher's style. No
// third-party INI/TOML library appears anywhere in the retrieval pack
// for this domain, so this stays stdlib (see DESIGN.md).
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Manifest is the parsed content of a project.asml file.
type Manifest struct {
	Name    string
	Version string
}

const (
	manifestFile = "project.asml"
	srcDir       = "src"
	entryFile    = "init.ax"
	helloWorld   = "cast Start() >>\nout(\"Hello World!\");\n<<\n"
)

// Create scaffolds a new project directory: <name>/project.asml and
// <name>/src/init.ax, refusing to overwrite an existing path.
func Create(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if _, err := os.Stat(name); err == nil {
		return fmt.Errorf("project %q already exists", name)
	}

	if err := os.MkdirAll(filepath.Join(name, srcDir), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	manifest := fmt.Sprintf("__Project__\n_name_ = %q\n_version_ = \"0.1.0\"\n", name)
	if err := os.WriteFile(filepath.Join(name, manifestFile), []byte(manifest), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", manifestFile, err)
	}
	if err := os.WriteFile(filepath.Join(name, srcDir, entryFile), []byte(helloWorld), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", entryFile, err)
	}
	return nil
}

// Load reads and parses the project.asml in dir.
func Load(dir string) (Manifest, error) {
	b, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return Manifest{}, fmt.Errorf("no project found in %q: %w", dir, err)
	}

	var m Manifest
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "_name_"):
			m.Name = parseValue(line)
		case strings.HasPrefix(line, "_version_"):
			m.Version = parseValue(line)
		}
	}
	if m.Name == "" {
		return m, fmt.Errorf("%s is missing a _name_ entry", manifestFile)
	}
	return m, nil
}

// parseValue extracts the right-hand side of a `_key_ = "value"` line,
// trimmed of surrounding whitespace and double quotes; an unquoted value
// is returned as is, and a line with no `=` yields "".
func parseValue(line string) string {
	i := strings.Index(line, "=")
	if i < 0 {
		return ""
	}
	v := strings.TrimSpace(line[i+1:])
	return strings.Trim(v, "\"")
}

// EntryPath returns the path to dir's source entry point, src/init.ax.
func EntryPath(dir string) string {
	return filepath.Join(dir, srcDir, entryFile)
}

// Exists reports whether dir looks like an AxonScript project root.
func Exists(dir string) bool {
	_, errManifest := os.Stat(filepath.Join(dir, manifestFile))
	_, errEntry := os.Stat(EntryPath(dir))
	return errManifest == nil && errEntry == nil
}
