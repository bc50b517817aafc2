// Package sysinfo probes the running kernel for live-mode checking.
package sysinfo

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/ancients-collective/kharden/internal/engine"
	"github.com/ancients-collective/kharden/internal/parser"
)

// Kernel describes the kernel of the running system.
type Kernel struct {
	// Version is the parsed kernel version tuple.
	Version engine.Version

	// Release is the raw kernel release string (uname -r).
	Release string

	// Machine is the raw machine string (uname -m).
	Machine string

	// Arch is the supported microarchitecture name the machine string
	// maps to; empty when unsupported.
	Arch string
}

// DetectKernel probes the running kernel via gopsutil. The arch mapping is
// best-effort: an unsupported machine leaves Arch empty without failing,
// so arch-independent checks can still run.
func DetectKernel() (Kernel, error) {
	info, err := host.Info()
	if err != nil {
		return Kernel{}, fmt.Errorf("kernel detection failed: %w", err)
	}

	k := Kernel{
		Release: info.KernelVersion,
		Machine: info.KernelArch,
	}

	raw, _, _ := strings.Cut(info.KernelVersion, "-")
	ver, err := parser.ParseVersion(raw)
	if err != nil {
		return k, fmt.Errorf("failed to parse the running kernel version %q", info.KernelVersion)
	}
	k.Version = ver

	if arch, err := parser.MachineArch(info.KernelArch); err == nil {
		k.Arch = arch
	}

	return k, nil
}
