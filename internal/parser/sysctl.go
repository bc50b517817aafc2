package parser

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var sysctlPattern = regexp.MustCompile(`^[a-zA-Z0-9/\._-]+ ?=.*$`)

// ParseSysctl parses `sysctl -a` output into a name→value mapping. Blank
// lines and comments are skipped; a key seen multiple times keeps its last
// value. Warnings flag files that look like they were not produced by
// `sudo sysctl -a` (missing ancient or root-only options).
func ParseSysctl(r io.Reader) (map[string]string, []string, error) {
	opts := make(map[string]string)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !sysctlPattern.MatchString(line) {
			return nil, nil, fmt.Errorf("unexpected line in sysctl file: %q", line)
		}
		option, value, _ := strings.Cut(line, "=")
		opts[strings.TrimSpace(option)] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading sysctl file: %w", err)
	}
	if len(opts) == 0 {
		return nil, nil, fmt.Errorf("empty sysctl file")
	}

	var warnings []string
	if _, ok := opts["kernel.printk"]; !ok {
		warnings = append(warnings, "ancient sysctl options are not found, please use the output of `sudo sysctl -a`")
	}
	if _, ok := opts["kernel.cad_pid"]; !ok {
		warnings = append(warnings, "sysctl options available for root are not found, please use the output of `sudo sysctl -a`")
	}

	return opts, warnings, nil
}

// archPatterns maps each supported microarchitecture to the machine strings
// kernel.arch may report for it.
var archPatterns = map[string]*regexp.Regexp{
	"ARM64":  regexp.MustCompile(`^aarch64|armv8`),
	"ARM":    regexp.MustCompile(`^armv[3-7]`),
	"X86_32": regexp.MustCompile(`^i[3-6]?86`),
	"X86_64": regexp.MustCompile(`^x86_64`),
}

// MachineArch maps a raw machine string (uname -m style) onto a supported
// microarchitecture name.
func MachineArch(machine string) (string, error) {
	for _, arch := range SupportedArches {
		if archPatterns[arch].MatchString(machine) {
			return arch, nil
		}
	}
	return "", fmt.Errorf("%s is an unsupported arch", machine)
}

// DetectArchSysctl determines the microarchitecture from the kernel.arch
// sysctl value. Returns the detected arch and the raw machine string.
func DetectArchSysctl(opts map[string]string) (string, string, error) {
	machine, ok := opts["kernel.arch"]
	if !ok {
		return "", "", fmt.Errorf("failed to detect microarchitecture in sysctl")
	}
	arch, err := MachineArch(machine)
	if err != nil {
		return "", machine, err
	}
	return arch, machine, nil
}

// WalkProcSys reads the live sysctl state by walking a /proc/sys tree,
// converting path separators to dots (kernel/yama/ptrace_scope →
// kernel.yama.ptrace_scope). Unreadable entries are skipped: many sysctl
// files are root-only or write-only.
func WalkProcSys(root string) (map[string]string, error) {
	opts := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		name := strings.ReplaceAll(rel, string(filepath.Separator), ".")
		opts[name] = strings.TrimSpace(strings.ReplaceAll(string(data), "\t", " "))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", root, err)
	}
	if len(opts) == 0 {
		return nil, fmt.Errorf("no sysctl options found under %q", root)
	}
	return opts, nil
}
