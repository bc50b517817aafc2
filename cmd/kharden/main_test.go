package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ancients-collective/kharden/internal/engine"
	"github.com/ancients-collective/kharden/internal/types"
)

const fixtureKconfig = `#
# Linux/x86 6.5.0 Kernel Configuration
#
CONFIG_X86_64=y
CONFIG_GCC_VERSION=130200
CONFIG_CLANG_VERSION=0
CONFIG_BUG=y
CONFIG_ARCH_MMAP_RND_BITS=32
CONFIG_ARCH_MMAP_RND_BITS_MAX=32
# CONFIG_DEVMEM is not set
`

const fixtureSysctl = `kernel.printk = 4	4	1	7
kernel.cad_pid = 0
kernel.arch = x86_64
kernel.dmesg_restrict = 1
kernel.kptr_restrict = 2
vm.mmap_min_addr = 65536
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-c", "config", "--cmdline", "cmdline", "-s", "sysctl.txt",
		"--format", "json", "--show", "fail", "--verbose", "-q",
	})
	require.NoError(t, err)

	assert.Equal(t, "config", cfg.Kconfig)
	assert.Equal(t, "cmdline", cfg.Cmdline)
	assert.Equal(t, "sysctl.txt", cfg.Sysctl)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "fail", cfg.Show)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.Quiet)
	assert.False(t, cfg.Live)
}

func TestParseFlags_Defaults(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "all", cfg.Show)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.OutputFile)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"--nope"})
	assert.Error(t, err)
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		code int
	}{
		{"valid kconfig", Config{Kconfig: "c", Format: "text", Show: "all"}, -1},
		{"valid sysctl only", Config{Sysctl: "s", Format: "json", Show: "fail"}, -1},
		{"bad format", Config{Kconfig: "c", Format: "xml", Show: "all"}, 2},
		{"bad show", Config{Kconfig: "c", Format: "text", Show: "some"}, 2},
		{"cmdline without kconfig", Config{Cmdline: "l", Format: "text", Show: "all"}, 2},
		{"generate with inputs", Config{Generate: "X86_64", Kconfig: "c", Format: "text", Show: "all"}, 2},
		{"print with inputs", Config{Print: "X86_64", Sysctl: "s", Format: "text", Show: "all"}, 2},
		{"live with files", Config{Live: true, Kconfig: "c", Format: "text", Show: "all"}, 2},
		{"bad arch", Config{Print: "RISCV", Format: "text", Show: "all"}, 2},
		{"valid generate", Config{Generate: "ARM64", Format: "text", Show: "all"}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, validateFlags(&tt.cfg))
		})
	}
}

func TestRun_KconfigFixture(t *testing.T) {
	kconfig := writeFixture(t, "config", fixtureKconfig)
	out := filepath.Join(t.TempDir(), "report.json")

	code := run(&Config{
		Kconfig:    kconfig,
		Format:     "json",
		Show:       "all",
		OutputFile: out,
	})
	// The minimal fixture fails most hardening checks.
	assert.Equal(t, 1, code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var report types.Report
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, "X86_64", report.System.Arch)
	assert.Equal(t, "6.5.0", report.System.KernelVersion)
	assert.Equal(t, "GCC 130200", report.System.Compiler)
	assert.NotEmpty(t, report.Results)
	assert.Equal(t, report.Summary.TotalChecks, report.Summary.Passed+report.Summary.Failed)

	byName := make(map[string]types.CheckResult)
	for _, r := range report.Results {
		byName[r.Name] = r
	}
	assert.Equal(t, "OK", byName["CONFIG_BUG"].Status)
	assert.Equal(t, "OK", byName["CONFIG_DEVMEM"].Status)
	assert.Equal(t, "OK", byName["CONFIG_ARCH_MMAP_RND_BITS"].Status)
	assert.Equal(t, "FAIL", byName["CONFIG_RANDOMIZE_BASE"].Status)
}

func TestRun_SysctlOnly(t *testing.T) {
	sysctl := writeFixture(t, "sysctl.txt", fixtureSysctl)
	out := filepath.Join(t.TempDir(), "report.json")

	code := run(&Config{
		Sysctl:     sysctl,
		Format:     "json",
		Show:       "all",
		OutputFile: out,
	})
	assert.Equal(t, 1, code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var report types.Report
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, "X86_64", report.System.Arch)
	for _, r := range report.Results {
		assert.Equal(t, "sysctl", r.Source)
	}
}

func TestBuildChecklist_UnsupportedArchSysctlOnly(t *testing.T) {
	// Live mode on an unsupported arch still carries the kconfig map but
	// builds no kconfig checks. The sysctl checks must be evaluated.
	in := &inputData{
		kconfig: map[string]string{"CONFIG_ARCH_MMAP_RND_BITS_MAX": "32"},
		sysctl:  map[string]string{"kernel.dmesg_restrict": "1"},
	}

	list, code := buildChecklist(&Config{Format: "json", Show: "all"}, in)
	require.Equal(t, -1, code)
	require.NotEmpty(t, list)

	engine.EvaluateAll(list)
	for _, c := range list {
		assert.Equal(t, engine.SourceSysctl, c.Source())
	}
}

func TestRun_Validate(t *testing.T) {
	valid := writeFixture(t, "checks.yaml", `- name: kernel.custom_knob
  source: sysctl
  expected: "1"
  category: cut_attack_surface
  justification: local policy
`)
	code := run(&Config{Validate: valid, Format: "text", Show: "all"})
	assert.Equal(t, 0, code)
}

func TestRun_ValidateInvalid(t *testing.T) {
	invalid := writeFixture(t, "checks.yaml", `- name: kernel.custom_knob
  source: nowhere
  expected: "1"
`)
	code := run(&Config{Validate: invalid, Format: "text", Show: "all"})
	assert.Equal(t, 1, code)
}

func TestRun_Quiet(t *testing.T) {
	sysctl := writeFixture(t, "sysctl.txt", fixtureSysctl)
	code := run(&Config{Sysctl: sysctl, Format: "text", Show: "all", Quiet: true})
	assert.Equal(t, 1, code)
}

func TestRun_Verbose(t *testing.T) {
	kconfig := writeFixture(t, "config", fixtureKconfig)
	out := filepath.Join(t.TempDir(), "report.json")

	code := run(&Config{
		Kconfig:    kconfig,
		Format:     "json",
		Show:       "all",
		Verbose:    true,
		OutputFile: out,
	})
	assert.Equal(t, 1, code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var report types.Report
	require.NoError(t, json.Unmarshal(data, &report))

	// CONFIG_GCC_VERSION has no check of its own.
	assert.Contains(t, report.Unknown["kconfig"], "CONFIG_GCC_VERSION")
}

func TestRun_ExtraChecks(t *testing.T) {
	sysctl := writeFixture(t, "sysctl.txt", fixtureSysctl)
	extra := writeFixture(t, "extra.yaml", `- name: kernel.dmesg_restrict_extra
  source: sysctl
  expected: "1"
  category: cut_attack_surface
  justification: local policy
`)
	out := filepath.Join(t.TempDir(), "report.json")

	code := run(&Config{
		Sysctl:      sysctl,
		Format:      "json",
		Show:        "all",
		ExtraChecks: extra,
		OutputFile:  out,
	})
	assert.Equal(t, 1, code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var report types.Report
	require.NoError(t, json.Unmarshal(data, &report))

	found := false
	for _, r := range report.Results {
		if r.Name == "kernel.dmesg_restrict_extra" {
			found = true
			assert.Equal(t, "FAIL", r.Status)
		}
	}
	assert.True(t, found)
}

func TestRun_MissingInput(t *testing.T) {
	code := run(&Config{Kconfig: "/nonexistent/config", Format: "text", Show: "all", Quiet: true})
	assert.Equal(t, 2, code)
}

func TestRun_NothingToCheck(t *testing.T) {
	code := run(&Config{Format: "text", Show: "all"})
	assert.Equal(t, 2, code)
}

func TestRun_Generate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "fragment.config")
	code := run(&Config{Generate: "X86_64", Format: "text", Show: "all", OutputFile: out})
	assert.Equal(t, 0, code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CONFIG_X86_64=y")
}

func TestRun_Print(t *testing.T) {
	out := filepath.Join(t.TempDir(), "checklist.json")
	code := run(&Config{Print: "ARM64", Format: "json", Show: "all", OutputFile: out})
	assert.Equal(t, 0, code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var report types.Report
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, "ARM64", report.System.Arch)
	assert.NotEmpty(t, report.Results)
	for _, r := range report.Results {
		assert.Empty(t, r.Status)
	}
}

func TestResultRow(t *testing.T) {
	c := engine.NewDirect(engine.SourceSysctl,
		engine.Encoding{Enabled: "1", Disabled: "0", Off: []string{"0", "off"}},
		engine.MatchValue, "kernel.kptr_restrict", "2", "cut_attack_surface", "kspp")
	c.Record(map[string]string{"kernel.kptr_restrict": "1"}, engine.SourceSysctl)
	c.Resolve()

	row := resultRow(c, true)
	assert.Equal(t, "kernel.kptr_restrict", row.Name)
	assert.Equal(t, "sysctl", row.Source)
	assert.Equal(t, "2", row.Desired)
	assert.Equal(t, "1", row.Observed)
	assert.True(t, row.ObservedFound)
	assert.Equal(t, "FAIL", row.Status)
	assert.NotEmpty(t, row.Detail)
}

func TestValidateOutputPath(t *testing.T) {
	assert.NoError(t, validateOutputPath("report.json"))
	assert.NoError(t, validateOutputPath("/tmp/report.json"))
	assert.NoError(t, validateOutputPath("out/report.json"))

	for _, path := range []string{
		"/etc/passwd", "/proc/self/mem", "/sys/kernel/x",
		"/boot/config", "/usr/bin/kharden", "/dev/sda",
	} {
		assert.Error(t, validateOutputPath(path), path)
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(0))
	assert.Equal(t, 1, exitCode(1))
	assert.Equal(t, 1, exitCode(42))
}
