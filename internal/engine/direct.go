package engine

import (
	"fmt"
	"strings"
)

// DirectCheck is a leaf check resolved purely from the observed value of a
// single named option.
type DirectCheck struct {
	name          string
	source        Source
	mode          CompareMode
	want          string // literal expected value, MatchValue only
	enc           Encoding
	category      string
	justification string

	observed string
	recorded bool

	verdict  Verdict
	resolved bool
}

// NewDirect creates a leaf check for the given source. The encoding supplies
// the source's enabled/disabled/off representations for the sentinel modes;
// want is only consulted in MatchValue mode.
func NewDirect(src Source, enc Encoding, mode CompareMode, name, want, category, justification string) *DirectCheck {
	if name == "" || strings.TrimSpace(name) != name || len(strings.Fields(name)) != 1 {
		panic(fmt.Sprintf("invalid check name %q", name))
	}
	return &DirectCheck{
		name:          name,
		source:        src,
		mode:          mode,
		want:          want,
		enc:           enc,
		category:      category,
		justification: justification,
	}
}

func (c *DirectCheck) Name() string          { return c.name }
func (c *DirectCheck) Source() Source        { return c.source }
func (c *DirectCheck) Category() string      { return c.category }
func (c *DirectCheck) Justification() string { return c.justification }

// Expected renders the current desired value: the literal for MatchValue,
// the source encoding for the enabled/disabled sentinels, or a sentinel
// description.
func (c *DirectCheck) Expected() string {
	switch c.mode {
	case MatchEnabled:
		return c.enc.Enabled
	case MatchDisabled:
		return c.enc.Disabled
	case MatchPresent:
		return "is present"
	case MatchNotOff:
		return "is not off"
	default:
		return c.want
	}
}

// Observed returns the recorded value; the bool is false when the option was
// absent from the populated mapping.
func (c *DirectCheck) Observed() (string, bool) {
	return c.observed, c.recorded
}

// Record looks up the check's option in the parsed mapping. No-op when the
// mapping belongs to a different source. Invalidates any stored verdict.
func (c *DirectCheck) Record(observed map[string]string, src Source) {
	if src != c.source {
		return
	}
	c.observed, c.recorded = observed[c.name]
	c.invalidate()
}

// RecordVersion is a no-op: direct checks never consume version data.
func (c *DirectCheck) RecordVersion(Version) {}

// OverrideExpected replaces the expected value with a literal. Used when the
// correct threshold is only knowable from another observed option. Any
// stored verdict is invalidated so the next Resolve uses the new value.
func (c *DirectCheck) OverrideExpected(value string) {
	c.mode = MatchValue
	c.want = value
	c.invalidate()
}

// Resolve computes the verdict from the recorded state. Idempotent.
func (c *DirectCheck) Resolve() Verdict {
	if c.resolved {
		return c.verdict
	}
	c.verdict = c.evaluate()
	c.resolved = true
	return c.verdict
}

// Result returns the stored verdict, panicking on unresolved reads.
func (c *DirectCheck) Result() Verdict {
	if !c.resolved {
		panic(fmt.Sprintf("check %s: result read before evaluation", c.name))
	}
	return c.verdict
}

// Resolved reports whether a verdict is currently stored.
func (c *DirectCheck) Resolved() bool { return c.resolved }

func (c *DirectCheck) invalidate() {
	c.resolved = false
	c.verdict = Verdict{}
}

func (c *DirectCheck) evaluate() Verdict {
	if !c.recorded {
		if c.mode == MatchPresent {
			return Verdict{StatusFail, "is not present"}
		}
		return Verdict{StatusFail, "is not found"}
	}

	switch c.mode {
	case MatchPresent:
		return Verdict{StatusOK, "is present"}
	case MatchNotOff:
		for _, off := range c.enc.Off {
			if c.observed == off {
				return Verdict{StatusFail, fmt.Sprintf("is off, %q", c.observed)}
			}
		}
		return Verdict{StatusOK, fmt.Sprintf("is not off, %q", c.observed)}
	default:
		if c.observed == c.Expected() {
			return Verdict{Status: StatusOK}
		}
		return Verdict{StatusFail,
			fmt.Sprintf("wrong value: got %q, expected %q", c.observed, c.Expected())}
	}
}
