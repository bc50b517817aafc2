package catalog

import (
	"fmt"
	"io"

	"github.com/ancients-collective/kharden/internal/engine"
)

// GenerateFragment writes a Kconfig fragment with the recommended
// build-config values for the given microarchitecture. All-of composites
// contribute every build option they require; any-of composites contribute
// their primary alternative. Checks without an explicitly recommended
// value ("is not off", "is present") are skipped, as is the
// ARCH_MMAP_RND_BITS check whose value needs runtime refinement.
func GenerateFragment(w io.Writer, arch string) error {
	// The fragment must describe the microarchitecture itself.
	if _, err := fmt.Fprintf(w, "CONFIG_%s=y\n", arch); err != nil {
		return err
	}

	for _, check := range KconfigChecks(arch) {
		if err := writeFragmentLines(w, check); err != nil {
			return err
		}
	}
	return nil
}

func writeFragmentLines(w io.Writer, check engine.Check) error {
	switch c := check.(type) {
	case *engine.Composite:
		if c.Combinator() == engine.CombineAll {
			for _, sub := range c.SubChecks() {
				if err := writeFragmentLines(w, sub); err != nil {
					return err
				}
			}
			return nil
		}
		return writeFragmentLines(w, c.SubChecks()[0])
	case *engine.VersionCheck:
		return nil
	}

	name := check.Name()
	expected := check.Expected()
	if name == MmapRndBits {
		return nil
	}
	if expected == "is not off" || expected == "is present" {
		return nil
	}

	var err error
	if expected == "is not set" {
		_, err = fmt.Fprintf(w, "# %s is not set\n", name)
	} else {
		_, err = fmt.Fprintf(w, "%s=%s\n", name, expected)
	}
	return err
}
