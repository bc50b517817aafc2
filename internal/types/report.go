// Package types defines shared type definitions used across all kharden packages.
package types

import "time"

// Report is the top-level structure for a complete checking run.
// It is serialized directly to JSON for the --format=json output.
type Report struct {
	// Version is the kharden version that produced this report.
	Version string `json:"version"`

	// Timestamp is when the run started.
	Timestamp time.Time `json:"timestamp"`

	// System describes the checked kernel and the supplied inputs.
	System ReportSystem `json:"system"`

	// Summary provides aggregate statistics.
	Summary ReportSummary `json:"summary"`

	// Results is the list of individual check outcomes, in report order.
	Results []CheckResult `json:"results"`

	// Unknown lists observed options with no matching check, per source.
	// Only populated in verbose mode.
	Unknown map[string][]string `json:"unknown_options,omitempty"`
}

// ReportSystem describes the kernel configuration that was checked.
type ReportSystem struct {
	// Arch is the detected microarchitecture (X86_64, X86_32, ARM64, ARM).
	Arch string `json:"arch,omitempty"`

	// KernelVersion is the detected kernel version tuple as a string.
	KernelVersion string `json:"kernel_version,omitempty"`

	// Compiler is the detected kernel build compiler (e.g. "GCC 120300").
	Compiler string `json:"compiler,omitempty"`

	// KconfigFile is the checked Kconfig dump path, if supplied.
	KconfigFile string `json:"kconfig_file,omitempty"`

	// CmdlineFile is the checked boot cmdline dump path, if supplied.
	CmdlineFile string `json:"cmdline_file,omitempty"`

	// SysctlFile is the checked sysctl dump path, if supplied.
	SysctlFile string `json:"sysctl_file,omitempty"`

	// Live indicates the running system was probed instead of dump files.
	Live bool `json:"live,omitempty"`
}

// ReportSummary provides aggregate statistics for a run.
type ReportSummary struct {
	// TotalChecks is the total number of checks evaluated.
	TotalChecks int `json:"total_checks"`

	// Passed is the number of checks that resolved OK.
	Passed int `json:"passed"`

	// Failed is the number of checks that resolved FAIL.
	Failed int `json:"failed"`

	// DurationMS is the total run duration in milliseconds.
	DurationMS int64 `json:"duration_ms"`
}

// CheckResult holds the outcome of a single resolved check.
type CheckResult struct {
	// Name is the option name the check targets.
	Name string `json:"option_name"`

	// Source is the data source the check was evaluated against.
	Source string `json:"type"`

	// Desired is the expected value after any override.
	Desired string `json:"desired_val"`

	// Observed is the recorded value; empty when the option was absent.
	Observed string `json:"observed_val,omitempty"`

	// ObservedFound distinguishes an empty observed value from absence.
	ObservedFound bool `json:"observed_found"`

	// Category is the rationale tag (e.g. "self_protection").
	Category string `json:"reason"`

	// Justification names the origin of the recommendation (e.g. "kspp").
	Justification string `json:"decision"`

	// Status is "OK" or "FAIL"; empty when the checklist was only
	// printed, not evaluated.
	Status string `json:"check_result,omitempty"`

	// Detail carries the verdict detail or failure reason, if any.
	Detail string `json:"check_detail,omitempty"`
}

// OK reports whether the result is a pass.
func (r CheckResult) OK() bool {
	return r.Status == "OK"
}
