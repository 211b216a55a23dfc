package driver

import (
	"fmt"
	"os/exec"
	"strings"
)

// link invokes the host's system linker on an emitted object file,
// grounded on original_source/src/main.rs::link_object_file: the linker
// binary is chosen from a substring of the target triple, and the mingw
// case gets an extra -static so the produced binary doesn't depend on
// libgcc/libwinpthread DLLs being present at runtime.
func link(objPath, exePath, triple string) error {
	linker := "cc"
	args := []string{objPath, "-o", exePath}

	switch {
	case strings.Contains(triple, "windows-msvc"):
		linker = "link.exe"
	case strings.Contains(triple, "windows-gnu"):
		linker = "x86_64-w64-mingw32-gcc"
		args = append(args, "-static")
	}

	cmd := exec.Command(linker, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w\n%s", linker, err, out)
	}
	return nil
}
