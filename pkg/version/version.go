package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Version identifies a build of this library.
type Version struct {
	Major    string
	Minor    string
	Patch    string
	Metadata string
	Build    string
}

// LibraryVersion is the current version of this library.
var LibraryVersion = Version{
	Major: "0", Minor: "1", Patch: "0", Metadata: "",
	Build: "$Id$",
}

func (v Version) String() string {
	fixBuild(&v)
	ver := fmt.Sprintf("Version: %s.%s.%s", v.Major, v.Minor, v.Patch)
	if v.Metadata != "" {
		ver += "-" + v.Metadata
	}
	return fmt.Sprintf("%s\nBuild: %s", ver, v.Build)
}

var buildInfo = func() string {
	return ""
}

// BuildInfo returns the Go runtime version plus whatever module build
// metadata is available (populated by buildinfo.go when built in
// module mode).
func BuildInfo() string {
	return fmt.Sprintf("%s\n%s", runtime.Version(), buildInfo())
}

// fixBuild is overridden by fixbuild.go on toolchains new enough to
// expose vcs.revision/gitrevision in debug.ReadBuildInfo.
var fixBuild = func(v *Version) {
	if !strings.HasPrefix(v.Build, "$Id$") {
		return
	}
}
