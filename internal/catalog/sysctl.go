package catalog

import (
	"github.com/ancients-collective/kharden/internal/engine"
)

// SysctlChecks returns the runtime sysctl recommendations. The catalog is
// arch-independent today; the parameter keeps the builder signatures
// uniform.
func SysctlChecks(_ string) []engine.Check {
	return []engine.Check{
		sysctl("self_protection", "kspp", "net.core.bpf_jit_harden", "2"),
		sysctl("self_protection", "kspp", "vm.mmap_min_addr", "65536"),

		sysctl("cut_attack_surface", "kspp", "kernel.dmesg_restrict", "1"),
		sysctl("cut_attack_surface", "kspp", "kernel.kptr_restrict", "2"),
		sysctl("cut_attack_surface", "kspp", "dev.tty.ldisc_autoload", "0"),
		sysctl("cut_attack_surface", "kspp", "kernel.unprivileged_bpf_disabled", "1"),
		sysctl("cut_attack_surface", "kspp", "kernel.kexec_load_disabled", "1"),
		sysctl("cut_attack_surface", "kspp", "vm.unprivileged_userfaultfd", "0"),
		engine.NewAll(
			sysctl("cut_attack_surface", "kspp", "dev.tty.legacy_tiocsti", "0"),
			version("cut_attack_surface", "kspp", 6, 2),
		),
		sysctl("cut_attack_surface", "clipos", "kernel.perf_event_paranoid", "3"),
		sysctl("cut_attack_surface", "clipos", "user.max_user_namespaces", "0"),
		sysctl("cut_attack_surface", "clipos", "kernel.modules_disabled", "1"),
		engine.NewAll(
			sysctl("cut_attack_surface", "kspp", "kernel.oops_limit", "100"),
			version("cut_attack_surface", "kspp", 6, 2),
		),
		engine.NewAll(
			sysctl("cut_attack_surface", "kspp", "kernel.warn_limit", "100"),
			version("cut_attack_surface", "kspp", 6, 2),
		),

		sysctl("harden_userspace", "defconfig", "kernel.randomize_va_space", "2"),
		sysctl("harden_userspace", "kspp", "fs.suid_dumpable", "0"),
		sysctl("harden_userspace", "kspp", "fs.protected_symlinks", "1"),
		sysctl("harden_userspace", "kspp", "fs.protected_hardlinks", "1"),
		sysctl("harden_userspace", "kspp", "fs.protected_fifos", "2"),
		sysctl("harden_userspace", "kspp", "fs.protected_regular", "2"),
		sysctl("harden_userspace", "kspp", "kernel.yama.ptrace_scope", "3"),
	}
}
