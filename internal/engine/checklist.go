package engine

import (
	"fmt"
	"sort"
)

// Populate records a parsed name→value mapping onto every check in the list
// tagged for the given source. Composite checks forward to whichever of
// their sub-checks matches. Safe to call repeatedly with different source
// tags: each call only touches checks for its own source, so population
// order across sources does not matter.
func Populate(list []Check, observed map[string]string, src Source) {
	for _, c := range list {
		c.Record(observed, src)
	}
}

// PopulateVersion injects the detected kernel version into every version
// check in the list, including those nested inside composites. Version data
// is a single tuple, not a name→value mapping, so it bypasses name lookup.
func PopulateVersion(list []Check, v Version) {
	for _, c := range list {
		c.RecordVersion(v)
	}
}

// OverrideExpected locates the leaf check with the given name anywhere in
// the list (walking into composites) and replaces its expected value.
// Returns an error when no such check exists; other checks are untouched.
func OverrideExpected(list []Check, name, value string) error {
	if overrideIn(list, name, value) {
		return nil
	}
	return fmt.Errorf("cannot override expected value: no check named %q", name)
}

func overrideIn(list []Check, name, value string) bool {
	found := false
	for _, c := range list {
		switch check := c.(type) {
		case *DirectCheck:
			if check.Name() == name {
				check.OverrideExpected(value)
				found = true
			}
		case *Composite:
			if overrideIn(check.SubChecks(), name, value) {
				found = true
			}
		}
	}
	return found
}

// EvaluateAll resolves every top-level check in insertion order. Pure
// in-memory computation over already-populated state; idempotent until the
// next Populate or OverrideExpected call.
func EvaluateAll(list []Check) {
	for _, c := range list {
		c.Resolve()
	}
}

// Remove returns the list without any top-level check carrying the given
// name. Used by the catalog to prune checks whose evaluation prerequisite
// is unavailable.
func Remove(list []Check, name string) []Check {
	kept := list[:0]
	for _, c := range list {
		if c.Name() != name {
			kept = append(kept, c)
		}
	}
	return kept
}

// UnknownOptions returns the sorted option names present in the parsed
// mapping but covered by no check of the given source, counting sub-check
// names inside composites as covered. Surfaces options the catalog does not
// know about yet.
func UnknownOptions(list []Check, observed map[string]string, src Source) []string {
	known := make(map[string]bool)
	collectNames(list, src, known)

	var unknown []string
	for name := range observed {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func collectNames(list []Check, src Source, known map[string]bool) {
	for _, c := range list {
		if comp, ok := c.(*Composite); ok {
			collectNames(comp.SubChecks(), src, known)
			continue
		}
		if c.Source() == src {
			known[c.Name()] = true
		}
	}
}
