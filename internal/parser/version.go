package parser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/ancients-collective/kharden/internal/engine"
)

// versionLinePattern matches the lines a kernel version can be extracted
// from: the Kconfig header ("# Linux/x86 6.5.0 Kernel Configuration") and
// /proc/version ("Linux version 6.5.0-21-generic ...").
var versionLinePattern = regexp.MustCompile(`^# Linux/.+ Kernel Configuration$|^Linux version .+`)

// ParseVersion parses a dotted version string ("6.1", "5.15.0") into a
// version tuple. At least two numeric components are required.
func ParseVersion(s string) (engine.Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return nil, fmt.Errorf("failed to parse the version %q", s)
	}
	ver := make(engine.Version, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("failed to parse the version %q", s)
		}
		ver[i] = n
	}
	return ver, nil
}

// KernelVersion scans a Kconfig dump or /proc/version contents for the
// kernel version and returns it as a tuple. Suffixes after the first dash
// ("-21-generic") are discarded.
func KernelVersion(r io.Reader) (engine.Version, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !versionLinePattern.MatchString(line) {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 3 {
			return nil, fmt.Errorf("failed to parse the version line %q", line)
		}
		raw, _, _ := strings.Cut(parts[2], "-")
		ver, err := ParseVersion(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse the version %q", parts[2])
		}
		return ver, nil
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading version file: %w", err)
	}
	return nil, fmt.Errorf("no kernel version detected")
}

// KernelVersionFile opens a file (gzip-aware) and extracts the kernel
// version from it.
func KernelVersionFile(path string) (engine.Version, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return KernelVersion(f)
}
