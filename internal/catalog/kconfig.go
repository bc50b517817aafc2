package catalog

import (
	"github.com/ancients-collective/kharden/internal/engine"
)

// MmapRndBits is the check whose expected value is refined at runtime from
// CONFIG_ARCH_MMAP_RND_BITS_MAX. The placeholder expected value is never
// compared: the caller either overrides it or prunes the check.
const MmapRndBits = "CONFIG_ARCH_MMAP_RND_BITS"

// KconfigChecks returns the build-config recommendations for the given
// microarchitecture, in report order.
func KconfigChecks(arch string) []engine.Check {
	var l []engine.Check

	// Self-protection: kernel defconfig expectations.
	l = append(l,
		kconfig("self_protection", "defconfig", "BUG", "y"),
		kconfig("self_protection", "defconfig", "SLUB_DEBUG", "y"),
		kconfig("self_protection", "defconfig", "THREAD_INFO_IN_TASK", "y"),
		kconfig("self_protection", "defconfig", "IOMMU_SUPPORT", "y"),
		kconfig("self_protection", "defconfig", "STACKPROTECTOR", "y"),
		kconfig("self_protection", "defconfig", "STACKPROTECTOR_STRONG", "y"),
		kconfig("self_protection", "defconfig", "STRICT_KERNEL_RWX", "y"),
		kconfig("self_protection", "defconfig", "STRICT_MODULE_RWX", "y"),
		kconfig("self_protection", "defconfig", "RANDOMIZE_BASE", "y"),
		kconfig("self_protection", "defconfig", "VMAP_STACK", "y"),
	)
	switch arch {
	case "X86_64":
		l = append(l,
			kconfig("self_protection", "defconfig", "RANDOMIZE_MEMORY", "y"),
			kconfig("self_protection", "defconfig", "PAGE_TABLE_ISOLATION", "y"),
			kconfig("self_protection", "defconfig", "RETPOLINE", "y"),
			kconfig("self_protection", "defconfig", "SYN_COOKIES", "y"),
			engine.NewAny(
				kconfig("self_protection", "defconfig", "X86_UMIP", "y"),
				kconfig("self_protection", "defconfig", "X86_INTEL_UMIP", "y"),
			),
			engine.NewAny(
				kconfig("self_protection", "defconfig", "X86_SMAP", "y"),
				version("self_protection", "defconfig", 5, 19),
			),
			kconfig("self_protection", "defconfig", "CPU_SUP_INTEL", "y"),
		)
	case "X86_32":
		l = append(l,
			kconfig("self_protection", "defconfig", "PAGE_TABLE_ISOLATION", "y"),
			kconfig("self_protection", "defconfig", "RETPOLINE", "y"),
			kconfig("self_protection", "defconfig", "SYN_COOKIES", "y"),
			kconfig("self_protection", "defconfig", "X86_PAE", "y"),
		)
	case "ARM64":
		l = append(l,
			kconfig("self_protection", "defconfig", "ARM64_PAN", "y"),
			kconfig("self_protection", "defconfig", "UNMAP_KERNEL_AT_EL0", "y"),
			kconfig("self_protection", "defconfig", "ARM64_EPAN", "y"),
			kconfig("self_protection", "defconfig", "ARM64_E0PD", "y"),
			kconfig("self_protection", "defconfig", "ARM64_PTR_AUTH_KERNEL", "y"),
			kconfig("self_protection", "defconfig", "ARM64_BTI_KERNEL", "y"),
			engine.NewAll(
				kconfig("self_protection", "defconfig", "MITIGATE_SPECTRE_BRANCH_HISTORY", "y"),
				version("self_protection", "defconfig", 5, 17),
			),
		)
	case "ARM":
		l = append(l,
			kconfig("self_protection", "defconfig", "CPU_SW_DOMAIN_PAN", "y"),
			kconfig("self_protection", "defconfig", "HARDEN_BRANCH_PREDICTOR", "y"),
		)
	}

	// Self-protection: KSPP recommendations.
	l = append(l,
		kconfig("self_protection", "kspp", "BUG_ON_DATA_CORRUPTION", "y"),
		kconfig("self_protection", "kspp", "SLAB_FREELIST_HARDENED", "y"),
		kconfig("self_protection", "kspp", "SLAB_FREELIST_RANDOM", "y"),
		kconfig("self_protection", "kspp", "SHUFFLE_PAGE_ALLOCATOR", "y"),
		kconfig("self_protection", "kspp", "FORTIFY_SOURCE", "y"),
		kconfig("self_protection", "kspp", "DEBUG_LIST", "y"),
		kconfig("self_protection", "kspp", "DEBUG_VIRTUAL", "y"),
		kconfig("self_protection", "kspp", "DEBUG_SG", "y"),
		kconfig("self_protection", "kspp", "DEBUG_NOTIFIERS", "y"),
		kconfig("self_protection", "kspp", "SCHED_STACK_END_CHECK", "y"),
		kconfig("self_protection", "kspp", "HARDENED_USERCOPY", "y"),
		kconfig("self_protection", "kspp", "HARDENED_USERCOPY_FALLBACK", "is not set"),
		kconfig("self_protection", "kspp", "INIT_ON_ALLOC_DEFAULT_ON", "y"),
		engine.NewAny(
			kconfig("self_protection", "kspp", "INIT_STACK_ALL_ZERO", "y"),
			kconfig("self_protection", "kspp", "GCC_PLUGIN_STRUCTLEAK_BYREF_ALL", "y"),
		),
		engine.NewAny(
			kconfig("self_protection", "kspp", "RANDSTRUCT_FULL", "y"),
			kconfig("self_protection", "kspp", "GCC_PLUGIN_RANDSTRUCT", "y"),
		),
		kconfig("self_protection", "kspp", "GCC_PLUGIN_LATENT_ENTROPY", "y"),
		engine.NewAll(
			kconfig("self_protection", "kspp", "ZERO_CALL_USED_REGS", "y"),
			version("self_protection", "kspp", 5, 15),
		),
		engine.NewAll(
			kconfig("self_protection", "kspp", "RANDOMIZE_KSTACK_OFFSET_DEFAULT", "y"),
			version("self_protection", "kspp", 5, 13),
		),
		engine.NewAll(
			kconfig("self_protection", "kspp", "UBSAN_BOUNDS", "y"),
			kconfig("self_protection", "kspp", "UBSAN_TRAP", "y"),
		),
		engine.NewAll(
			kconfig("self_protection", "kspp", "MODULE_SIG", "y"),
			kconfig("self_protection", "kspp", "MODULE_SIG_ALL", "y"),
			kconfig("self_protection", "kspp", "MODULE_SIG_FORCE", "y"),
		),
		kconfig("self_protection", "kspp", "EFI_DISABLE_PCI_DMA", "y"),
		kconfig("self_protection", "kspp", "RESET_ATTACK_MITIGATION", "y"),
		kconfig("self_protection", "kspp", "STATIC_USERMODEHELPER", "y"),
		kconfig("self_protection", "clipos", "DEBUG_WX", "y"),
		kconfig("self_protection", "clipos", "PAGE_POISONING", "y"),
	)
	switch arch {
	case "X86_64":
		l = append(l,
			engine.NewAll(
				kconfig("self_protection", "kspp", "INTEL_IOMMU", "y"),
				kconfig("self_protection", "kspp", "INTEL_IOMMU_DEFAULT_ON", "y"),
			),
			kconfig("self_protection", "kspp", "AMD_IOMMU", "y"),
			engine.NewAll(
				kconfig("self_protection", "kspp", "SLS", "y"),
				version("self_protection", "kspp", 5, 17),
			),
			kconfig("self_protection", "kspp", "IOMMU_DEFAULT_DMA_STRICT", "y"),
		)
	case "ARM64":
		l = append(l,
			engine.NewAll(
				kconfig("self_protection", "kspp", "ARM64_MTE", "y"),
				version("self_protection", "kspp", 5, 10),
			),
			kconfig("self_protection", "kspp", "RODATA_FULL_DEFAULT_ENABLED", "y"),
			kconfig("self_protection", "kspp", "KASAN_HW_TAGS", "y"),
		)
	}

	// Security policy.
	l = append(l,
		kconfig("security_policy", "defconfig", "SECURITY", "y"),
		kconfig("security_policy", "defconfig", "SECCOMP", "y"),
		kconfig("security_policy", "defconfig", "SECCOMP_FILTER", "y"),
		kconfig("security_policy", "kspp", "SECURITY_YAMA", "y"),
		engine.NewAll(
			kconfig("security_policy", "kspp", "SECURITY_LANDLOCK", "y"),
			version("security_policy", "kspp", 5, 13),
		),
		kconfig("security_policy", "kspp", "SECURITY_SELINUX_DISABLE", "is not set"),
		kconfig("security_policy", "kspp", "SECURITY_SELINUX_BOOTPARAM", "is not set"),
		kconfig("security_policy", "kspp", "SECURITY_SELINUX_DEVELOP", "is not set"),
		kconfig("security_policy", "kspp", "SECURITY_WRITABLE_HOOKS", "is not set"),
		engine.NewAll(
			kconfig("security_policy", "kspp", "SECURITY_LOCKDOWN_LSM", "y"),
			kconfig("security_policy", "kspp", "SECURITY_LOCKDOWN_LSM_EARLY", "y"),
			kconfig("security_policy", "clipos", "LOCK_DOWN_KERNEL_FORCE_CONFIDENTIALITY", "y"),
		),
		engine.NewAny(
			kconfig("security_policy", "maintainer", "SECURITY_SELINUX", "y"),
			kconfig("security_policy", "maintainer", "SECURITY_APPARMOR", "y"),
			kconfig("security_policy", "maintainer", "SECURITY_SMACK", "y"),
			kconfig("security_policy", "maintainer", "SECURITY_TOMOYO", "y"),
		),
	)

	// Attack surface reduction.
	l = append(l,
		kconfig("cut_attack_surface", "kspp", "SECURITY_DMESG_RESTRICT", "y"),
		kconfig("cut_attack_surface", "kspp", "ACPI_CUSTOM_METHOD", "is not set"),
		kconfig("cut_attack_surface", "kspp", "COMPAT_BRK", "is not set"),
		kconfig("cut_attack_surface", "kspp", "DEVKMEM", "is not set"),
		kconfig("cut_attack_surface", "kspp", "COMPAT_VDSO", "is not set"),
		kconfig("cut_attack_surface", "kspp", "KEXEC", "is not set"),
		kconfig("cut_attack_surface", "kspp", "PROC_KCORE", "is not set"),
		kconfig("cut_attack_surface", "kspp", "LEGACY_PTYS", "is not set"),
		kconfig("cut_attack_surface", "kspp", "HIBERNATION", "is not set"),
		kconfig("cut_attack_surface", "kspp", "IO_STRICT_DEVMEM", "y"),
		engine.NewAny(
			kconfig("cut_attack_surface", "kspp", "STRICT_DEVMEM", "y"),
			kconfig("cut_attack_surface", "kspp", "DEVMEM", "is not set"),
		),
		kconfig("cut_attack_surface", "grsec", "ZSMALLOC_STAT", "is not set"),
		kconfig("cut_attack_surface", "grsec", "PAGE_OWNER", "is not set"),
		kconfig("cut_attack_surface", "grsec", "DEBUG_KMEMLEAK", "is not set"),
		kconfig("cut_attack_surface", "grsec", "BINFMT_AOUT", "is not set"),
		kconfig("cut_attack_surface", "grsec", "KPROBE_EVENTS", "is not set"),
		kconfig("cut_attack_surface", "grsec", "UPROBE_EVENTS", "is not set"),
		kconfig("cut_attack_surface", "grsec", "GENERIC_TRACER", "is not set"),
		kconfig("cut_attack_surface", "grsec", "FUNCTION_TRACER", "is not set"),
		kconfig("cut_attack_surface", "grsec", "STACK_TRACER", "is not set"),
		kconfig("cut_attack_surface", "grsec", "BLK_DEV_IO_TRACE", "is not set"),
		kconfig("cut_attack_surface", "grsec", "PROC_VMCORE", "is not set"),
		kconfig("cut_attack_surface", "grsec", "PROC_PAGE_MONITOR", "is not set"),
		kconfig("cut_attack_surface", "grsec", "USELIB", "is not set"),
		kconfig("cut_attack_surface", "grsec", "CHECKPOINT_RESTORE", "is not set"),
		kconfig("cut_attack_surface", "grsec", "USERFAULTFD", "is not set"),
		kconfig("cut_attack_surface", "grsec", "MEM_SOFT_DIRTY", "is not set"),
		kconfig("cut_attack_surface", "grsec", "DEVPORT", "is not set"),
		kconfig("cut_attack_surface", "grsec", "DEBUG_FS", "is not set"),
		kconfig("cut_attack_surface", "clipos", "STAGING", "is not set"),
		kconfig("cut_attack_surface", "clipos", "KSM", "is not set"),
		kconfig("cut_attack_surface", "clipos", "KALLSYMS", "is not set"),
		kconfig("cut_attack_surface", "clipos", "MAGIC_SYSRQ", "is not set"),
		kconfig("cut_attack_surface", "clipos", "KEXEC_FILE", "is not set"),
		kconfig("cut_attack_surface", "clipos", "USER_NS", "is not set"),
		kconfig("cut_attack_surface", "clipos", "LDISC_AUTOLOAD", "is not set"),
		kconfig("cut_attack_surface", "clipos", "BINFMT_MISC", "is not set"),
		kconfig("cut_attack_surface", "lockdown", "EFI_TEST", "is not set"),
		kconfig("cut_attack_surface", "lockdown", "BPF_SYSCALL", "is not set"),
		kconfig("cut_attack_surface", "lockdown", "KPROBES", "is not set"),
		kconfig("cut_attack_surface", "grsec", "INET_DIAG", "is not set"),
	)
	switch arch {
	case "X86_64":
		l = append(l,
			kconfig("cut_attack_surface", "kspp", "IA32_EMULATION", "is not set"),
			engine.NewAny(
				kconfig("cut_attack_surface", "kspp", "X86_X32_ABI", "is not set"),
				kconfig("cut_attack_surface", "kspp", "X86_X32", "is not set"),
			),
			kconfig("cut_attack_surface", "kspp", "MODIFY_LDT_SYSCALL", "is not set"),
			kconfig("cut_attack_surface", "kspp", "X86_VSYSCALL_EMULATION", "is not set"),
			kconfig("cut_attack_surface", "kspp", "LEGACY_VSYSCALL_NONE", "y"),
			kconfig("cut_attack_surface", "clipos", "X86_IOPL_IOPERM", "is not set"),
			kconfig("cut_attack_surface", "clipos", "X86_CPUID", "is not set"),
			kconfig("cut_attack_surface", "clipos", "X86_MSR", "is not set"),
			kconfig("cut_attack_surface", "clipos", "ACPI_TABLE_UPGRADE", "is not set"),
			kconfig("cut_attack_surface", "clipos", "EFI_CUSTOM_SSDT_OVERLAYS", "is not set"),
		)
	case "X86_32":
		l = append(l,
			kconfig("cut_attack_surface", "kspp", "MODIFY_LDT_SYSCALL", "is not set"),
			kconfig("cut_attack_surface", "clipos", "X86_CPUID", "is not set"),
			kconfig("cut_attack_surface", "clipos", "X86_MSR", "is not set"),
		)
	case "ARM":
		l = append(l,
			kconfig("cut_attack_surface", "kspp", "OABI_COMPAT", "is not set"),
		)
	}

	// Userspace hardening.
	l = append(l,
		kconfig("harden_userspace", "clipos", "COREDUMP", "is not set"),
		kconfig("harden_userspace", "clipos", "ARCH_MMAP_RND_BITS", "MAX"),
	)

	return l
}

// RefineMmapRndBits resolves the data-dependent expected value of the
// CONFIG_ARCH_MMAP_RND_BITS check. When CONFIG_ARCH_MMAP_RND_BITS_MAX is
// present in the parsed kconfig, the check's expected value is overridden
// with it; otherwise the check is pruned to avoid a guessed-wrong verdict.
// Returns the (possibly shortened) list and whether the override happened.
func RefineMmapRndBits(list []engine.Check, kconfigOpts map[string]string) ([]engine.Check, bool, error) {
	max, ok := kconfigOpts["CONFIG_ARCH_MMAP_RND_BITS_MAX"]
	if !ok {
		return engine.Remove(list, MmapRndBits), false, nil
	}
	if err := engine.OverrideExpected(list, MmapRndBits, max); err != nil {
		return list, false, err
	}
	return list, true, nil
}
