package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// rawValueOptions are boot parameters the kernel does not parse with
// kstrtobool(); their values pass through normalization untouched.
var rawValueOptions = map[string]bool{
	"debugfs":                    true,
	"mitigations":                true,
	"pti":                        true,
	"spectre_v2":                 true,
	"spectre_v2_user":            true,
	"spec_store_bypass_disable":  true,
	"l1tf":                       true,
	"mds":                        true,
	"tsx_async_abort":            true,
	"srbds":                      true,
	"mmio_stale_data":            true,
	"retbleed":                   true,
	"rodata":                     true,
	"ssbd":                       true,
	"spec_rstack_overflow":       true,
	"gather_data_sampling":       true,
	"slub_debug":                 true,
	"iommu":                      true,
	"vsyscall":                   true,
	"tsx":                        true,
	"lockdown":                   true,
	"kvm.nx_huge_pages":          true,
	"srso":                       true,
	"reg_file_data_sampling":     true,
	"kexec_load_limit_panic":     true,
	"kexec_load_limit_reboot":    true,
	"sysrq_always_enabled":       true,
	"norandmaps":                 true,
	"kpti":                       true,
	"kfence.sample_interval":     true,
	"randomize_kstack_offset":    true,
	"hardened_usercopy":          true,
}

// NormalizeCmdline applies a limited form of the kernel's kstrtobool()
// logic to a boot parameter value, unless the parameter is one the kernel
// parses specially.
func NormalizeCmdline(option, value string) string {
	if rawValueOptions[option] {
		return value
	}
	switch strings.ToLower(value) {
	case "1", "on", "y", "yes", "t", "true":
		return "1"
	case "0", "off", "n", "no", "f", "false":
		return "0"
	}
	return value
}

// ParseCmdline parses the contents of /proc/cmdline into a name→value
// mapping. A parameter without "=" records an empty value, which is
// distinct from absence. A duplicated parameter keeps its last value, with
// a warning.
func ParseCmdline(r io.Reader) (map[string]string, []string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, nil, fmt.Errorf("reading cmdline file: %w", err)
		}
		return nil, nil, fmt.Errorf("empty cmdline file")
	}
	line := sc.Text()
	if sc.Scan() && strings.TrimSpace(sc.Text()) != "" {
		return nil, nil, fmt.Errorf("more than one line in cmdline file")
	}

	opts := make(map[string]string)
	var warnings []string
	for _, field := range strings.Fields(line) {
		name, value, _ := strings.Cut(field, "=")
		if _, dup := opts[name]; dup {
			warnings = append(warnings, fmt.Sprintf("cmdline option %q found multiple times", name))
		}
		opts[name] = NormalizeCmdline(name, value)
	}
	return opts, warnings, nil
}
