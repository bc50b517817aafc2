package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a kernel version tuple (major, minor, patch, ...). Tuples of
// different lengths compare position-wise with missing trailing components
// treated as 0, so 6.1 == 6.1.0.
type Version []int

// Compare returns -1, 0, or 1 as v is lower, equal, or higher than other.
func (v Version) Compare(other Version) int {
	n := len(v)
	if len(other) > n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		a, b := 0, 0
		if i < len(v) {
			a = v[i]
		}
		if i < len(other) {
			b = other[i]
		}
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return 0
}

// String renders the version as a dotted tuple, e.g. "6.1.0".
func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// VersionCheck is a leaf check passing when the detected kernel version is
// at least the expected minimum.
type VersionCheck struct {
	expected      Version
	category      string
	justification string

	observed Version

	verdict  Verdict
	resolved bool
}

// NewVersion creates a minimum-kernel-version check.
func NewVersion(expected Version, category, justification string) *VersionCheck {
	if len(expected) == 0 {
		panic("version check requires a non-empty expected version")
	}
	return &VersionCheck{
		expected:      expected,
		category:      category,
		justification: justification,
	}
}

func (c *VersionCheck) Name() string          { return "kernel version" }
func (c *VersionCheck) Source() Source        { return SourceVersion }
func (c *VersionCheck) Category() string      { return c.category }
func (c *VersionCheck) Justification() string { return c.justification }

func (c *VersionCheck) Expected() string {
	return fmt.Sprintf(">= %s", c.expected)
}

// Observed returns the detected version rendered as a string.
func (c *VersionCheck) Observed() (string, bool) {
	if c.observed == nil {
		return "", false
	}
	return c.observed.String(), true
}

// Record is a no-op: version data is injected, never looked up by name.
func (c *VersionCheck) Record(map[string]string, Source) {}

// RecordVersion stores the detected kernel version and invalidates any
// stored verdict.
func (c *VersionCheck) RecordVersion(v Version) {
	c.observed = v
	c.resolved = false
	c.verdict = Verdict{}
}

// Resolve compares the detected version against the expected minimum.
func (c *VersionCheck) Resolve() Verdict {
	if c.resolved {
		return c.verdict
	}
	switch {
	case c.observed == nil:
		c.verdict = Verdict{StatusFail, "version not available"}
	case c.observed.Compare(c.expected) >= 0:
		c.verdict = Verdict{StatusOK, fmt.Sprintf("version >= %s", c.expected)}
	default:
		c.verdict = Verdict{StatusFail, fmt.Sprintf("version < %s", c.expected)}
	}
	c.resolved = true
	return c.verdict
}

// Result returns the stored verdict, panicking on unresolved reads.
func (c *VersionCheck) Result() Verdict {
	if !c.resolved {
		panic("kernel version check: result read before evaluation")
	}
	return c.verdict
}

// Resolved reports whether a verdict is currently stored.
func (c *VersionCheck) Resolved() bool { return c.resolved }
