package parser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// SupportedArches lists the microarchitectures the rule catalog covers.
var SupportedArches = []string{"X86_64", "X86_32", "ARM64", "ARM"}

var (
	kconfigOnPattern  = regexp.MustCompile(`^CONFIG_[a-zA-Z0-9_]+=.*$`)
	kconfigOffPattern = regexp.MustCompile(`^# CONFIG_[a-zA-Z0-9_]+ is not set$`)
)

// NotSet is the recorded value of a disabled Kconfig option. Parsing maps
// "# CONFIG_X is not set" lines to this literal so disabled state is
// distinguishable from absence.
const NotSet = "is not set"

// ParseKconfig parses a kernel Kconfig dump into a name→value mapping.
// Enabled options record their literal value; disabled options record the
// NotSet literal. Duplicate options and unrecognized lines are errors.
// Returns non-fatal warnings alongside the mapping.
func ParseKconfig(r io.Reader) (map[string]string, []string, error) {
	opts := make(map[string]string)
	var warnings []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		var option, value string
		switch {
		case kconfigOnPattern.MatchString(line):
			option, value, _ = strings.Cut(line, "=")
			if value == NotSet {
				return nil, warnings, fmt.Errorf("bad enabled Kconfig option %q", line)
			}
			if value == "" {
				warnings = append(warnings, fmt.Sprintf("Kconfig option %s has an empty value", option))
			}
		case kconfigOffPattern.MatchString(line):
			option, value, _ = strings.Cut(strings.TrimPrefix(line, "# "), " ")
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		default:
			return nil, warnings, fmt.Errorf("unexpected line in Kconfig file: %q", line)
		}

		if _, dup := opts[option]; dup {
			return nil, warnings, fmt.Errorf("Kconfig option %q found multiple times", option)
		}
		opts[option] = value
	}
	if err := sc.Err(); err != nil {
		return nil, warnings, fmt.Errorf("reading Kconfig file: %w", err)
	}

	return opts, warnings, nil
}

// DetectArchKconfig determines the microarchitecture from parsed Kconfig
// options. Exactly one of the supported arch symbols must be enabled.
func DetectArchKconfig(opts map[string]string) (string, error) {
	arch := ""
	for _, candidate := range SupportedArches {
		if opts["CONFIG_"+candidate] != "y" {
			continue
		}
		if arch != "" {
			return "", fmt.Errorf("detected more than one microarchitecture in kconfig")
		}
		arch = candidate
	}
	if arch == "" {
		return "", fmt.Errorf("failed to detect microarchitecture in kconfig")
	}
	return arch, nil
}

// DetectCompiler determines the compiler used to build the kernel from
// CONFIG_GCC_VERSION and CONFIG_CLANG_VERSION. Exactly one of them must be
// non-zero.
func DetectCompiler(opts map[string]string) (string, error) {
	gcc, gotGCC := opts["CONFIG_GCC_VERSION"]
	clang, gotClang := opts["CONFIG_CLANG_VERSION"]
	if !gotGCC || !gotClang {
		return "", fmt.Errorf("no CONFIG_GCC_VERSION or CONFIG_CLANG_VERSION")
	}
	switch {
	case gcc == "0" && clang != "0":
		return "CLANG " + clang, nil
	case gcc != "0" && clang == "0":
		return "GCC " + gcc, nil
	default:
		return "", fmt.Errorf("invalid GCC_VERSION and CLANG_VERSION: %s %s", gcc, clang)
	}
}
