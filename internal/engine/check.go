// Package engine implements the checklist evaluation core: the check
// variants, population of observed data, expected-value overrides, and
// verdict resolution.
package engine

import "fmt"

// Source identifies where a check's observed data comes from.
type Source string

const (
	// SourceKconfig is the kernel build-time configuration.
	SourceKconfig Source = "kconfig"
	// SourceCmdline is the kernel boot command line.
	SourceCmdline Source = "cmdline"
	// SourceSysctl is the runtime sysctl state.
	SourceSysctl Source = "sysctl"
	// SourceVersion is the detected kernel version pseudo-source.
	SourceVersion Source = "version"
)

// Status is the outcome class of a resolved check.
type Status string

const (
	// StatusOK means the check's expected condition was met.
	StatusOK Status = "OK"
	// StatusFail means the check's expected condition was not met.
	StatusFail Status = "FAIL"
)

// Verdict is the resolved result of a check: a status plus optional detail.
type Verdict struct {
	Status Status
	Detail string
}

// OK reports whether the verdict is a pass.
func (v Verdict) OK() bool {
	return v.Status == StatusOK
}

// String renders the verdict as "OK", "OK: detail", or "FAIL: reason".
func (v Verdict) String() string {
	if v.Detail == "" {
		return string(v.Status)
	}
	return fmt.Sprintf("%s: %s", v.Status, v.Detail)
}

// CompareMode selects how a DirectCheck compares observed against expected.
// Sentinel requirements ("must be enabled", "must not be off") are explicit
// modes rather than magic expected values.
type CompareMode int

const (
	// MatchValue requires the observed value to equal a literal.
	MatchValue CompareMode = iota
	// MatchEnabled requires the source's enabled representation.
	MatchEnabled
	// MatchDisabled requires the source's disabled representation.
	MatchDisabled
	// MatchPresent requires the option to be present with any value.
	MatchPresent
	// MatchNotOff requires any value outside the source's off set.
	MatchNotOff
)

// Encoding describes how a data source represents boolean option state.
// It is catalog-supplied configuration; the engine never infers it.
type Encoding struct {
	// Enabled is the value representing an enabled option (e.g. "y", "1").
	Enabled string

	// Disabled is the value representing a disabled option
	// (e.g. "is not set" for kconfig, "0" for sysctl).
	Disabled string

	// Off lists all values counting as "off" for MatchNotOff checks.
	Off []string
}

// Check is the common contract of every checklist entry.
// A check is constructed by the catalog, populated with observed data,
// optionally refined via an expected-value override, and finally resolved
// to a frozen verdict.
type Check interface {
	// Name is the stable identifier of the underlying option.
	Name() string

	// Source is the data source this check is evaluated against.
	Source() Source

	// Expected is the current desired value rendered for display.
	Expected() string

	// Category is the rationale tag (e.g. "self_protection"). Informational.
	Category() string

	// Justification names the origin of the recommendation. Informational.
	Justification() string

	// Observed returns the recorded value and whether one was recorded.
	// Absence is distinct from an explicit empty value.
	Observed() (string, bool)

	// Record looks up the check's observed value in a parsed mapping.
	// It is a no-op unless src matches the check's source. Composites
	// forward the call to their sub-checks.
	Record(observed map[string]string, src Source)

	// RecordVersion injects the detected kernel version. It is a no-op on
	// every check except version checks; composites forward.
	RecordVersion(v Version)

	// Resolve computes and stores the verdict. Idempotent until the next
	// Record or override invalidates the stored result.
	Resolve() Verdict

	// Result returns the stored verdict. It panics when called before
	// Resolve: reading an unresolved result is programmer misuse.
	Result() Verdict

	// Resolved reports whether a verdict is currently stored.
	Resolved() bool
}
