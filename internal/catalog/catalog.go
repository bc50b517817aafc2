// Package catalog instantiates the hardening recommendation checklist for a
// given microarchitecture. It owns the per-source boolean encodings and the
// concrete check definitions; the engine only ever sees constructed checks.
package catalog

import (
	"github.com/ancients-collective/kharden/internal/engine"
)

// encodings defines how each data source represents enabled/disabled option
// state. Configuration data, deliberately kept out of the engine: the
// parsers normalize values to these representations.
var encodings = map[engine.Source]engine.Encoding{
	engine.SourceKconfig: {
		Enabled:  "y",
		Disabled: "is not set",
		Off:      []string{"is not set", "n"},
	},
	engine.SourceCmdline: {
		Enabled:  "1",
		Disabled: "0",
		Off:      []string{"0", "off"},
	},
	engine.SourceSysctl: {
		Enabled:  "1",
		Disabled: "0",
		Off:      []string{"0", "off"},
	},
}

// direct builds a leaf check, mapping sentinel expected values onto explicit
// comparison modes.
func direct(src engine.Source, category, justification, name, expected string) *engine.DirectCheck {
	enc := encodings[src]
	mode := engine.MatchValue
	switch expected {
	case enc.Enabled:
		mode = engine.MatchEnabled
	case enc.Disabled:
		mode = engine.MatchDisabled
	case "is present":
		mode = engine.MatchPresent
	case "is not off":
		mode = engine.MatchNotOff
	}
	return engine.NewDirect(src, enc, mode, name, expected, category, justification)
}

// kconfig builds a build-config check; the CONFIG_ prefix is implied.
func kconfig(category, justification, name, expected string) *engine.DirectCheck {
	return direct(engine.SourceKconfig, category, justification, "CONFIG_"+name, expected)
}

// cmdline builds a boot command line check.
func cmdline(category, justification, name, expected string) *engine.DirectCheck {
	return direct(engine.SourceCmdline, category, justification, name, expected)
}

// sysctl builds a runtime sysctl check.
func sysctl(category, justification, name, expected string) *engine.DirectCheck {
	return direct(engine.SourceSysctl, category, justification, name, expected)
}

// version builds a minimum-kernel-version check for use inside composites.
func version(category, justification string, parts ...int) *engine.VersionCheck {
	return engine.NewVersion(engine.Version(parts), category, justification)
}
