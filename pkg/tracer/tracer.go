// Package tracer glues the symbol namespace and shadow stack engine to
// the two instrumentation hook entry points, under a single
// goroutine-reentrant lock. It owns the process-wide Tracer singleton
// that everything else in this library is reached through.
package tracer

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fabic/libcsdbg/pkg/config"
	"github.com/fabic/libcsdbg/pkg/logflags"
	"github.com/fabic/libcsdbg/pkg/namespace"
	"github.com/fabic/libcsdbg/pkg/version"
)

// Tracer is the process-wide singleton: the symbol namespace plus the
// plugin/filter registries that the instrumentation hooks dispatch
// through.
type Tracer struct {
	mu recursiveMutex

	ns *namespace.Namespace

	plugins       []Plugin
	moduleFilters []Filter
	symbolFilters []Filter
}

var instance *Tracer

// Instance returns the process-wide Tracer, or nil if Init has not
// been called (or Shutdown has already run).
func Instance() *Tracer {
	return instance
}

// Init constructs the singleton tracer: it loads the main executable's
// symbol table at base 0 and, on platforms where DSO enumeration is
// supported, loads the symbol tables of every DSO that survives the
// CSDBG_LIBS filter (or, when that's unset, cfg.DefaultLibFilter).
// cfg.CacheCapacity of 0 selects the namespace's default lookup cache
// size. A nil cfg is equivalent to a zero Config.
func Init(cfg *config.Config) error {
	if cfg == nil {
		cfg = &config.Config{}
	}
	logflags.SetColor(cfg.Color)
	ns := namespace.New(cfg.CacheCapacity)

	exe, err := executablePath()
	if err != nil {
		return fmt.Errorf("tracer: locating executable: %w", err)
	}
	if err := ns.AddModule(exe, 0); err != nil {
		return fmt.Errorf("tracer: loading executable symbols: %w", err)
	}

	libsSet, libsValue := effectiveLibsSpec(cfg)
	filter, err := config.ParseLibFilter(libsSet, libsValue)
	if err != nil {
		return fmt.Errorf("tracer: parsing %s: %w", config.LibsEnvVar, err)
	}

	dsos, err := discoverDSOs()
	if err != nil {
		logLifecycle().WithError(err).Warn("DSO discovery failed, continuing with the executable only")
		dsos = nil
	}
	for _, d := range dsos {
		if d.Path == exe || !filter.Allows(d.Path) {
			continue
		}
		if err := ns.AddModule(d.Path, d.Base); err != nil {
			logLifecycle().WithError(err).WithField("module", d.Path).Warn("skipping module")
			continue
		}
	}

	instance = &Tracer{ns: ns}
	logLifecycle().Infof("libcsdbg.%s.%s initialized", version.LibraryVersion.Major, version.LibraryVersion.Minor)
	return nil
}

// Shutdown drops the singleton tracer. Instrumentation hooks become
// no-ops after this returns.
func Shutdown() {
	logLifecycle().Infof("libcsdbg.%s.%s finalized", version.LibraryVersion.Major, version.LibraryVersion.Minor)
	instance = nil
}

// Namespace exposes the symbol namespace for callers that need direct
// access (the render package, primarily).
func (tr *Tracer) Namespace() *namespace.Namespace {
	return tr.ns
}

func logHooks() *logrus.Entry     { return logflags.HooksLogger() }
func logLifecycle() *logrus.Entry { return logflags.LifecycleLogger() }

// effectiveLibsSpec resolves the DSO filter spec Init hands to
// config.ParseLibFilter: CSDBG_LIBS takes precedence, falling back to
// cfg.DefaultLibFilter when the environment variable is unset.
func effectiveLibsSpec(cfg *config.Config) (set bool, value string) {
	value, set = os.LookupEnv(config.LibsEnvVar)
	if !set && cfg.DefaultLibFilter != "" {
		return true, cfg.DefaultLibFilter
	}
	return set, value
}
