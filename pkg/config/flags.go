package config

import "strings"

// ArgPrefix is the prefix that marks an application argv entry as
// belonging to libcsdbg's own runtime configuration rather than the
// host application.
const ArgPrefix = "--csdbg-"

// InitArgv consumes every argv entry beginning with ArgPrefix,
// returning the retained process-wide configuration list (the
// suffix after ArgPrefix, e.g. "--csdbg-color" -> "color") and the
// filtered argv with those entries removed; argv itself is not
// modified. This is the Go rendition of
// a library init boundary where argc/argv are conceptually "shifted" by
// simply omitting the consumed entries from the returned slice.
func InitArgv(argv []string) (retained []string, filtered []string) {
	filtered = make([]string, 0, len(argv))
	for _, a := range argv {
		if strings.HasPrefix(a, ArgPrefix) {
			retained = append(retained, strings.TrimPrefix(a, ArgPrefix))
			continue
		}
		filtered = append(filtered, a)
	}
	return retained, filtered
}
