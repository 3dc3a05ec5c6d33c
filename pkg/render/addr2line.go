package render

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/fabic/libcsdbg/pkg/logflags"
)

// Addr2Line invokes the addr2line(1) external tool to resolve offset
// within the object at path to a "file:line" string. Failure to spawn
// the subprocess, or a literal "??:0" (no debug info), both yield an
// empty string and a nil error: annotation is always best-effort.
func Addr2Line(path string, offset uintptr) (string, error) {
	cmd := exec.Command("addr2line", "-se", path, fmt.Sprintf("0x%x", offset))
	out, err := cmd.Output()
	if err != nil {
		if logflags.Render() {
			logflags.RenderLogger().WithError(err).WithField("module", path).Warn("addr2line failed")
		}
		return "", nil
	}

	line := firstLine(string(out))
	if line == "??:0" {
		return "", nil
	}
	return line, nil
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}
