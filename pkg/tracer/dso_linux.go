//go:build linux

package tracer

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fabic/libcsdbg/pkg/csdbgerr"
)

// executablePath resolves the running process's own binary via
// /proc/self/exe.
func executablePath() (string, error) {
	path, err := os.Readlink("/proc/self/exe")
	if err != nil {
		return "", fmt.Errorf("%w: readlink /proc/self/exe: %v", csdbgerr.ErrOSResource, err)
	}
	return path, nil
}

// dso is a discovered dynamic shared object: its path and the lowest
// address it is mapped at.
type dso struct {
	Path string
	Base uintptr
}

// discoverDSOs enumerates /proc/self/maps and returns, for every
// distinct mapped regular file, its path and lowest mapped address.
func discoverDSOs() ([]dso, error) {
	f, err := os.Open("/proc/self/maps")
	if err != nil {
		return nil, fmt.Errorf("%w: open /proc/self/maps: %v", csdbgerr.ErrOSResource, err)
	}
	defer f.Close()

	bases := make(map[string]uintptr)
	var order []string

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		path := fields[5]
		if path == "" || strings.HasPrefix(path, "[") {
			continue
		}
		addrRange := strings.SplitN(fields[0], "-", 2)
		if len(addrRange) != 2 {
			continue
		}
		start, err := strconv.ParseUint(addrRange[0], 16, 64)
		if err != nil {
			continue
		}
		if prev, ok := bases[path]; !ok || uintptr(start) < prev {
			if !ok {
				order = append(order, path)
			}
			bases[path] = uintptr(start)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan /proc/self/maps: %v", csdbgerr.ErrOSResource, err)
	}

	out := make([]dso, 0, len(order))
	for _, p := range order {
		out = append(out, dso{Path: p, Base: bases[p]})
	}
	return out, nil
}
