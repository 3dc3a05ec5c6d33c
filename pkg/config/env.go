package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fabic/libcsdbg/pkg/csdbgerr"
)

// LibsEnvVar is the environment variable libcsdbg consults to select
// which DSOs get their symbol tables loaded.
const LibsEnvVar = "CSDBG_LIBS"

// LibFilter is a compiled, ordered list of the POSIX extended regexes
// parsed from LibsEnvVar.
type LibFilter struct {
	// Set records whether the environment variable was present at all
	// (unset means "load every DSO"; set-but-empty means "load none").
	Set      bool
	patterns []*regexp.Regexp
	source   []string
}

// ParseLibFilter parses a colon-separated list of POSIX extended
// regexes, as found in CSDBG_LIBS. Round-trips with JoinLibFilter when
// no token is empty.
func ParseLibFilter(set bool, value string) (*LibFilter, error) {
	lf := &LibFilter{Set: set}
	if !set || value == "" {
		return lf, nil
	}

	for _, tok := range strings.Split(value, ":") {
		re, err := regexp.CompilePOSIX(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", csdbgerr.ErrRegex, tok, err)
		}
		lf.patterns = append(lf.patterns, re)
		lf.source = append(lf.source, tok)
	}
	return lf, nil
}

// JoinLibFilter re-joins the filter's original patterns with ":",
// inverse of ParseLibFilter.
func JoinLibFilter(lf *LibFilter) string {
	return strings.Join(lf.source, ":")
}

// Allows reports whether path should have its symbol table loaded,
// per the DSO filter semantics:
//   - unset: load all DSOs
//   - set but empty: load none
//   - set and non-empty: load iff path matches at least one pattern
func (lf *LibFilter) Allows(path string) bool {
	if lf == nil || !lf.Set {
		return true
	}
	if len(lf.patterns) == 0 {
		return false
	}
	for _, re := range lf.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
