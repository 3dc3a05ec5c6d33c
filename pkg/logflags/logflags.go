// Package logflags gates and shapes this library's own diagnostic
// logging: which subsystems log at all, and how their loggers are
// built.
package logflags

import (
	"errors"
	"io/ioutil"
	"log"
	"strings"

	"github.com/sirupsen/logrus"
)

var hooks = false
var namespaceFlag = false
var render = false
var lifecycle = false

func makeLogger(flag bool, fields logrus.Fields) *logrus.Entry {
	logger := logrus.New()
	logger.Out = Stderr
	logger.Formatter = headerFormatter{}
	logger.Level = logrus.DebugLevel
	if !flag {
		logger.Level = logrus.PanicLevel
	}
	return logger.WithFields(fields)
}

// Hooks returns true if the instrumentation entry/exit hooks (package
// tracer) should log plugin/filter dispatch activity.
func Hooks() bool {
	return hooks
}

// HooksLogger returns a logger for the instrumentation hook layer.
func HooksLogger() *logrus.Entry {
	return makeLogger(hooks, logrus.Fields{"layer": "tracer", "kind": "hooks"})
}

// Namespace returns true if module loading and symbol resolution
// (package namespace) should log.
func Namespace() bool {
	return namespaceFlag
}

// NamespaceLogger returns a logger for the symbol namespace.
func NamespaceLogger() *logrus.Entry {
	return makeLogger(namespaceFlag, logrus.Fields{"layer": "namespace"})
}

// Render returns true if the trace renderer (package render) should log
// recoverable errors, e.g. a failed addr2line invocation.
func Render() bool {
	return render
}

// RenderLogger returns a logger for the trace renderer.
func RenderLogger() *logrus.Entry {
	return makeLogger(render, logrus.Fields{"layer": "render"})
}

// Lifecycle returns true if library construction/teardown (executable
// discovery, DSO iteration) should log.
func Lifecycle() bool {
	return lifecycle
}

// LifecycleLogger returns a logger for library init/teardown.
func LifecycleLogger() *logrus.Entry {
	return makeLogger(lifecycle, logrus.Fields{"layer": "tracer", "kind": "lifecycle"})
}

var errLogstrWithoutLog = errors.New("--log-subsystems specified without --log")

// Setup sets this library's logging flags based on the contents of
// logstr, a comma-separated list of subsystem names. It gates the
// standard logger in addition to the per-subsystem logrus entries.
func Setup(logFlag bool, logstr string) error {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if !logFlag {
		log.SetOutput(ioutil.Discard)
		if logstr != "" {
			return errLogstrWithoutLog
		}
		return nil
	}
	if logstr == "" {
		logstr = "hooks"
	}
	for _, cmd := range strings.Split(logstr, ",") {
		switch cmd {
		case "hooks":
			hooks = true
		case "namespace":
			namespaceFlag = true
		case "render":
			render = true
		case "lifecycle":
			lifecycle = true
		}
	}
	return nil
}
