package logflags

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// severityColors assigns a fixed 256-color ANSI code per header
// severity tag: "i" (info/debug), "w" (warning), anything else
// (error/fatal/panic).
var severityColors = map[string]int{
	"i": 61,
	"w": 60,
}

const errorTagColor = 9

// Stderr is stderr wrapped so ANSI escapes degrade gracefully on
// terminals that don't support them natively (e.g. legacy Windows
// consoles). Every subsystem logger writes here.
var Stderr io.Writer = colorable.NewColorableStderr()

// colorEnabled mirrors config.Config.Color: the user's opt-in to
// colored headers, gated by SetColor (called from tracer.Init). Off by
// default, matching the shipped default config file.
var colorEnabled = false

// SetColor enables or disables the ANSI coloring Header applies to the
// bracketed tag. Coloring still requires stderr to be a terminal.
func SetColor(enabled bool) {
	colorEnabled = enabled
}

// Header formats a tagged log-line prefix: "[tag] [pid, 0xtid (name)] ".
// tag is expected to be "i", "w", or any other string for an error-level
// line; when coloring is enabled and stderr is a terminal, the
// bracketed tag is colored accordingly. An empty name renders as
// "anon".
func Header(tag string, pid int, tid uint64, name string) string {
	if name == "" {
		name = "anon"
	}
	label := tag
	if colorEnabled && isatty.IsTerminal(os.Stderr.Fd()) {
		color, ok := severityColors[tag]
		if !ok {
			color = errorTagColor
		}
		label = fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", color, tag)
	}
	return fmt.Sprintf("[%s] [%d, %#x (%s)] ", label, pid, tid, name)
}

// severityTag maps a logrus level down to the "i"/"w"/"e" header tag.
func severityTag(level logrus.Level) string {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel, logrus.InfoLevel:
		return "i"
	case logrus.WarnLevel:
		return "w"
	default:
		return "e"
	}
}

// headerFormatter is a logrus.Formatter that renders Header as the line
// prefix, followed by the message and any structured fields (the
// subsystem's "layer"/"kind" tags among them) in "key=value" form.
type headerFormatter struct{}

func (headerFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Header(severityTag(e.Level), os.Getpid(), currentThreadID(), ""))
	buf.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&buf, " %s=%v", k, e.Data[k])
	}

	buf.WriteString("\r\n")
	return buf.Bytes(), nil
}
