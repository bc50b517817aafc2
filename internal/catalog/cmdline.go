package catalog

import (
	"github.com/ancients-collective/kharden/internal/engine"
)

// CmdlineChecks returns the boot command line recommendations for the given
// microarchitecture. Several checks accept the equivalent build-time option
// as an alternative, since a kconfig default makes the boot parameter
// redundant.
func CmdlineChecks(arch string) []engine.Check {
	var l []engine.Check

	l = append(l,
		cmdline("self_protection", "defconfig", "mitigations", "is not off"),
		engine.NewAny(
			cmdline("self_protection", "kspp", "init_on_alloc", "1"),
			kconfig("self_protection", "kspp", "INIT_ON_ALLOC_DEFAULT_ON", "y"),
		),
		engine.NewAny(
			cmdline("self_protection", "kspp", "init_on_free", "1"),
			kconfig("self_protection", "kspp", "INIT_ON_FREE_DEFAULT_ON", "y"),
		),
		cmdline("self_protection", "kspp", "slab_nomerge", "is present"),
		engine.NewAny(
			cmdline("self_protection", "kspp", "hardened_usercopy", "1"),
			kconfig("self_protection", "kspp", "HARDENED_USERCOPY", "y"),
		),
		engine.NewAll(
			engine.NewAny(
				cmdline("self_protection", "kspp", "randomize_kstack_offset", "on"),
				kconfig("self_protection", "kspp", "RANDOMIZE_KSTACK_OFFSET_DEFAULT", "y"),
			),
			version("self_protection", "kspp", 5, 13),
		),
		cmdline("self_protection", "kspp", "nosmt", "is present"),
	)

	switch arch {
	case "X86_64", "X86_32":
		l = append(l,
			engine.NewAny(
				cmdline("self_protection", "kspp", "pti", "on"),
				kconfig("self_protection", "defconfig", "PAGE_TABLE_ISOLATION", "y"),
			),
			cmdline("self_protection", "kspp", "iommu", "force"),
			engine.NewAny(
				cmdline("cut_attack_surface", "kspp", "vsyscall", "none"),
				kconfig("cut_attack_surface", "kspp", "LEGACY_VSYSCALL_NONE", "y"),
			),
			cmdline("cut_attack_surface", "maintainer", "tsx", "off"),
		)
	case "ARM64":
		l = append(l,
			engine.NewAny(
				cmdline("self_protection", "kspp", "rodata", "full"),
				kconfig("self_protection", "kspp", "RODATA_FULL_DEFAULT_ENABLED", "y"),
			),
			cmdline("self_protection", "defconfig", "ssbd", "force-on"),
		)
	}

	l = append(l,
		cmdline("self_protection", "clipos", "iommu.strict", "1"),
		cmdline("self_protection", "clipos", "iommu.passthrough", "0"),
		engine.NewAny(
			cmdline("security_policy", "kspp", "lockdown", "confidentiality"),
			kconfig("security_policy", "clipos", "LOCK_DOWN_KERNEL_FORCE_CONFIDENTIALITY", "y"),
		),
		cmdline("cut_attack_surface", "grsec", "debugfs", "off"),
	)

	return l
}
