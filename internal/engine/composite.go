package engine

import (
	"fmt"
	"strings"
)

// Combinator selects how a composite combines its sub-check verdicts.
type Combinator int

const (
	// CombineAll passes only when every sub-check passes.
	CombineAll Combinator = iota
	// CombineAny passes when at least one sub-check passes.
	CombineAny
)

// Composite combines an ordered sequence of sub-checks under a combinator.
// Display metadata (name, source, category) is taken from the first
// sub-check, which is the primary requirement the alternatives or
// prerequisites revolve around.
type Composite struct {
	subs []Check
	comb Combinator

	verdict  Verdict
	resolved bool
}

// NewAll creates a composite that requires every sub-check to pass.
// Panics on an empty sub-check list: an empty composite is a programmer
// error in the catalog.
func NewAll(subs ...Check) *Composite {
	return newComposite(CombineAll, subs)
}

// NewAny creates a composite that requires at least one sub-check to pass.
func NewAny(subs ...Check) *Composite {
	return newComposite(CombineAny, subs)
}

func newComposite(comb Combinator, subs []Check) *Composite {
	if len(subs) == 0 {
		panic("composite check requires at least one sub-check")
	}
	return &Composite{subs: subs, comb: comb}
}

func (c *Composite) Name() string          { return c.subs[0].Name() }
func (c *Composite) Source() Source        { return c.subs[0].Source() }
func (c *Composite) Expected() string      { return c.subs[0].Expected() }
func (c *Composite) Category() string      { return c.subs[0].Category() }
func (c *Composite) Justification() string { return c.subs[0].Justification() }

// SubChecks returns the ordered sub-checks for introspection (verbose
// rendering, override walking).
func (c *Composite) SubChecks() []Check { return c.subs }

// Combinator returns the combinator this composite was built with.
func (c *Composite) Combinator() Combinator { return c.comb }

// Observed reports no value: a composite has no observed state of its own.
func (c *Composite) Observed() (string, bool) { return "", false }

// Record forwards the mapping to every sub-check and invalidates any stored
// verdict. Sub-checks with a different source ignore the call.
func (c *Composite) Record(observed map[string]string, src Source) {
	for _, sub := range c.subs {
		sub.Record(observed, src)
	}
	c.invalidate()
}

// RecordVersion forwards the detected version to every sub-check.
func (c *Composite) RecordVersion(v Version) {
	for _, sub := range c.subs {
		sub.RecordVersion(v)
	}
	c.invalidate()
}

// Resolve resolves every sub-check depth-first, then combines.
//
// CombineAll fails on the first failing sub-check in order; its name and
// reason become the composite's reason. CombineAny passes on the first
// passing sub-check; if none pass, the reason lists every alternative
// attempted. A sub-check failing because its source was never populated
// counts as a normal failure.
func (c *Composite) Resolve() Verdict {
	if c.resolved {
		return c.verdict
	}
	for _, sub := range c.subs {
		sub.Resolve()
	}
	switch c.comb {
	case CombineAll:
		c.verdict = c.resolveAll()
	default:
		c.verdict = c.resolveAny()
	}
	c.resolved = true
	return c.verdict
}

func (c *Composite) resolveAll() Verdict {
	for _, sub := range c.subs {
		if v := sub.Result(); !v.OK() {
			return Verdict{StatusFail, fmt.Sprintf("%s: %s", sub.Name(), v.Detail)}
		}
	}
	return Verdict{Status: StatusOK}
}

func (c *Composite) resolveAny() Verdict {
	for i, sub := range c.subs {
		v := sub.Result()
		if !v.OK() {
			continue
		}
		if i == 0 {
			return v
		}
		if v.Detail == "" {
			return Verdict{StatusOK, fmt.Sprintf("%s is %q", sub.Name(), sub.Expected())}
		}
		return Verdict{StatusOK, fmt.Sprintf("%s %s", sub.Name(), v.Detail)}
	}

	names := make([]string, len(c.subs))
	for i, sub := range c.subs {
		names[i] = sub.Name()
	}
	return Verdict{StatusFail,
		fmt.Sprintf("no alternative accepted: %s", strings.Join(names, ", "))}
}

// Result returns the stored verdict, panicking on unresolved reads.
func (c *Composite) Result() Verdict {
	if !c.resolved {
		panic(fmt.Sprintf("check %s: result read before evaluation", c.Name()))
	}
	return c.verdict
}

// Resolved reports whether a verdict is currently stored.
func (c *Composite) Resolved() bool { return c.resolved }

func (c *Composite) invalidate() {
	c.resolved = false
	c.verdict = Verdict{}
}
