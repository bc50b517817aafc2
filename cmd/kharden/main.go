// Package main is the entry point for kharden — check the security
// hardening options of the Linux kernel.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ancients-collective/kharden/internal/catalog"
	"github.com/ancients-collective/kharden/internal/engine"
	"github.com/ancients-collective/kharden/internal/loader"
	"github.com/ancients-collective/kharden/internal/output"
	"github.com/ancients-collective/kharden/internal/parser"
	"github.com/ancients-collective/kharden/internal/sysinfo"
	"github.com/ancients-collective/kharden/internal/types"
)

// version is set at build time via -ldflags. The default is a dev fallback
// for plain `go install` or `go run` usage.
var version = "1.0.2"

// Config holds all parsed CLI flag values.
type Config struct {
	Kconfig     string
	Cmdline     string
	Sysctl      string
	VersionFile string
	Live        bool
	Format      string
	Show        string
	Verbose     bool
	NoColor     bool
	OutputFile  string
	Quiet       bool
	ExtraChecks string
	Validate    string
	Print       string
	Generate    string
}

// parseFlags parses command-line arguments into a Config using a dedicated
// FlagSet, keeping the global flag.CommandLine clean for testability.
func parseFlags(args []string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("kharden", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.Kconfig, "config", "", "Kernel Kconfig file to check (also supports *.gz files)")
	fs.StringVar(&cfg.Kconfig, "c", "", "Kernel Kconfig file to check (shorthand)")
	fs.StringVar(&cfg.Cmdline, "cmdline", "", "Kernel cmdline file to check (contents of /proc/cmdline)")
	fs.StringVar(&cfg.Cmdline, "l", "", "Kernel cmdline file to check (shorthand)")
	fs.StringVar(&cfg.Sysctl, "sysctl", "", "Sysctl output file to check (`sudo sysctl -a > file`)")
	fs.StringVar(&cfg.Sysctl, "s", "", "Sysctl output file to check (shorthand)")
	fs.StringVar(&cfg.VersionFile, "kernel-version", "", "File to extract the kernel version from (contents of /proc/version)")
	fs.StringVar(&cfg.VersionFile, "v", "", "Kernel version file (shorthand)")
	fs.BoolVar(&cfg.Live, "live", false, "Check the running kernel (/proc/config.gz, /proc/cmdline, /proc/sys)")
	fs.StringVar(&cfg.Format, "format", "text", "Output format: text, json, jsonl")
	fs.StringVar(&cfg.Format, "f", "text", "Output format (shorthand)")
	fs.StringVar(&cfg.Show, "show", "all", "Which results to display: all, fail, ok")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Also report observed options with no matching check")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write output to file (default: stdout)")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write output to file (shorthand)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Suppress output, exit code only (0 = clean, 1 = findings, 2 = errors)")
	fs.BoolVar(&cfg.Quiet, "q", false, "Suppress output (shorthand)")
	fs.StringVar(&cfg.ExtraChecks, "extra-checks", "", "Load additional YAML check definitions (file or directory)")
	fs.StringVar(&cfg.Validate, "validate", "", "Validate YAML check definitions without checking anything (file or directory)")
	fs.StringVar(&cfg.Print, "print", "", "Print the hardening recommendations for the selected microarchitecture")
	fs.StringVar(&cfg.Print, "p", "", "Print recommendations (shorthand)")
	fs.StringVar(&cfg.Generate, "generate", "", "Generate a Kconfig fragment with the hardening options for the selected microarchitecture")
	fs.StringVar(&cfg.Generate, "g", "", "Generate a Kconfig fragment (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "  kharden — check the security hardening options of the Linux kernel\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "  Usage: kharden [options]\n\n")
		fmt.Fprintf(os.Stderr, "  Options:\n")
		fmt.Fprintf(os.Stderr, "    -c,  --config <file>          Kconfig file to check (*.gz supported)\n")
		fmt.Fprintf(os.Stderr, "    -l,  --cmdline <file>         Kernel cmdline file (contents of /proc/cmdline)\n")
		fmt.Fprintf(os.Stderr, "    -s,  --sysctl <file>          Sysctl output file (`sudo sysctl -a > file`)\n")
		fmt.Fprintf(os.Stderr, "    -v,  --kernel-version <file>  Kernel version file (contents of /proc/version)\n")
		fmt.Fprintf(os.Stderr, "         --live                   Check the running kernel instead of dump files\n")
		fmt.Fprintf(os.Stderr, "    -f,  --format <type>          Output format: text, json, jsonl (default: text)\n")
		fmt.Fprintf(os.Stderr, "         --show <mode>            Output filter: all, fail, ok (default: all)\n")
		fmt.Fprintf(os.Stderr, "         --verbose                Also report options with no matching check\n")
		fmt.Fprintf(os.Stderr, "         --no-color               Disable colored output\n")
		fmt.Fprintf(os.Stderr, "    -o,  --output <file>          Write output to file (default: stdout)\n")
		fmt.Fprintf(os.Stderr, "    -q,  --quiet                  Suppress output, exit code only (0/1/2)\n")
		fmt.Fprintf(os.Stderr, "         --extra-checks <path>    Load additional YAML check definitions\n")
		fmt.Fprintf(os.Stderr, "         --validate <path>        Validate YAML check definitions without checking\n")
		fmt.Fprintf(os.Stderr, "    -p,  --print <arch>           Print recommendations for %s\n", strings.Join(parser.SupportedArches, "|"))
		fmt.Fprintf(os.Stderr, "    -g,  --generate <arch>        Generate a hardened Kconfig fragment\n")
		fmt.Fprintf(os.Stderr, "\n  Examples:\n")
		fmt.Fprintf(os.Stderr, "    kharden -c /boot/config-$(uname -r)           Check the installed kernel config\n")
		fmt.Fprintf(os.Stderr, "    kharden -c config.gz -l cmdline -s sysctl.txt Check all three sources\n")
		fmt.Fprintf(os.Stderr, "    kharden --live                                Check the running kernel\n")
		fmt.Fprintf(os.Stderr, "    kharden -s sysctl.txt                         Sysctl-only checking\n")
		fmt.Fprintf(os.Stderr, "    kharden -c config --show fail                 Show only failing checks\n")
		fmt.Fprintf(os.Stderr, "    kharden -c config --format json               JSON for further processing\n")
		fmt.Fprintf(os.Stderr, "    kharden -c config -q && echo hardened         Scripting with exit code\n")
		fmt.Fprintf(os.Stderr, "    kharden --validate ./checks                   Validate YAML without checking\n")
		fmt.Fprintf(os.Stderr, "    kharden -p X86_64                             Print the X86_64 recommendations\n")
		fmt.Fprintf(os.Stderr, "    kharden -g X86_64 > fragment.config           Generate a Kconfig fragment\n")
		fmt.Fprintf(os.Stderr, "\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	os.Exit(run(cfg))
}

// run executes the requested mode with the given configuration and returns
// an exit code.
func run(cfg *Config) int {
	runStart := time.Now()

	// Handle --validate early
	if cfg.Validate != "" {
		return handleValidate(cfg.Validate)
	}

	if code := validateFlags(cfg); code >= 0 {
		return code
	}

	setupColor(cfg)

	// Fragment generation and recommendation printing need no input files.
	if cfg.Generate != "" {
		return handleGenerate(cfg)
	}
	if cfg.Print != "" {
		return handlePrint(cfg)
	}

	// Nothing to check.
	if cfg.Kconfig == "" && cfg.Sysctl == "" && !cfg.Live {
		fmt.Fprintf(os.Stderr, "  ✗ Nothing to check: provide --config, --sysctl, or --live (see kharden -h)\n")
		return 2
	}

	in, code := gatherInputs(cfg)
	if code >= 0 {
		return code
	}

	list, code := buildChecklist(cfg, in)
	if code >= 0 {
		return code
	}

	engine.EvaluateAll(list)

	report := buildReport(cfg, in, list, runStart)

	if cfg.Quiet {
		return exitCode(report.Summary.Failed)
	}
	return writeReport(cfg, report)
}

// validateFlags checks flag values and mode exclusivity.
// Returns -1 if valid, or an exit code (2) if invalid.
func validateFlags(cfg *Config) int {
	switch cfg.Format {
	case "text", "json", "jsonl":
	default:
		fmt.Fprintf(os.Stderr, "  ✗ Invalid --format value %q (must be text, json, or jsonl)\n", cfg.Format)
		return 2
	}
	switch cfg.Show {
	case "all", "fail", "ok":
	default:
		fmt.Fprintf(os.Stderr, "  ✗ Invalid --show value %q (must be all, fail, or ok)\n", cfg.Show)
		return 2
	}

	haveInputs := cfg.Kconfig != "" || cfg.Cmdline != "" || cfg.Sysctl != "" || cfg.Live
	if cfg.Generate != "" && (haveInputs || cfg.Print != "") {
		fmt.Fprintf(os.Stderr, "  ✗ --generate can't be combined with input files or --print\n")
		return 2
	}
	if cfg.Print != "" && haveInputs {
		fmt.Fprintf(os.Stderr, "  ✗ --print can't be combined with input files\n")
		return 2
	}
	if cfg.Cmdline != "" && cfg.Kconfig == "" {
		fmt.Fprintf(os.Stderr, "  ✗ Checking the cmdline depends on checking the Kconfig\n")
		return 2
	}
	if cfg.Live && (cfg.Kconfig != "" || cfg.Cmdline != "" || cfg.Sysctl != "" || cfg.VersionFile != "") {
		fmt.Fprintf(os.Stderr, "  ✗ --live can't be combined with input files\n")
		return 2
	}

	for _, arch := range []string{cfg.Print, cfg.Generate} {
		if arch == "" {
			continue
		}
		if !supportedArch(arch) {
			fmt.Fprintf(os.Stderr, "  ✗ Unsupported arch %q (must be one of %s)\n",
				arch, strings.Join(parser.SupportedArches, ", "))
			return 2
		}
	}
	return -1
}

// setupColor disables colored output for non-text formats, file output,
// --no-color, and dumb terminals.
func setupColor(cfg *Config) {
	if cfg.NoColor || cfg.Format != "text" || cfg.OutputFile != "" || output.IsDumbTerm() {
		color.NoColor = true
	}
}

func supportedArch(arch string) bool {
	for _, a := range parser.SupportedArches {
		if a == arch {
			return true
		}
	}
	return false
}

// handleGenerate writes a hardened Kconfig fragment for the selected arch.
func handleGenerate(cfg *Config) int {
	w, cleanup, code := openOutput(cfg)
	if code >= 0 {
		return code
	}
	defer cleanup()

	if err := catalog.GenerateFragment(w, cfg.Generate); err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Failed to generate fragment: %v\n", err)
		return 2
	}
	return 0
}

// handleValidate validates YAML check definitions without checking anything.
// Returns 0 when every definition is valid, 1 on validation errors.
func handleValidate(path string) int {
	if err := loader.New().ValidateOnly(path); err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "  ✓ All check definitions in %s are valid\n", path)
	return 0
}

// handlePrint renders the full recommendation checklist for the selected
// arch without evaluating anything.
func handlePrint(cfg *Config) int {
	var list []engine.Check
	list = append(list, catalog.KconfigChecks(cfg.Print)...)
	list = append(list, catalog.CmdlineChecks(cfg.Print)...)
	list = append(list, catalog.SysctlChecks(cfg.Print)...)

	var code int
	if list, code = loadExtraChecks(cfg, list); code >= 0 {
		return code
	}

	report := &types.Report{
		Version:   version,
		Timestamp: time.Now(),
		System:    types.ReportSystem{Arch: cfg.Print},
	}
	for _, check := range list {
		report.Results = append(report.Results, resultRow(check, false))
	}
	report.Summary.TotalChecks = len(list)

	return writeReport(cfg, report)
}

// inputData holds the parsed observed state for one run.
type inputData struct {
	kconfig  map[string]string
	cmdline  map[string]string
	sysctl   map[string]string
	version  engine.Version
	arch     string
	compiler string
}

// gatherInputs parses the supplied dump files (or probes the running
// system) and detects the arch, kernel version, and compiler.
// Returns -1 as code if successful, or an exit code on failure.
func gatherInputs(cfg *Config) (*inputData, int) {
	if cfg.Live {
		return gatherLive(cfg)
	}

	in := &inputData{}

	if cfg.Kconfig != "" {
		opts, code := parseInputFile(cfg, cfg.Kconfig, parser.ParseKconfig)
		if code >= 0 {
			return nil, code
		}
		in.kconfig = opts

		arch, err := parser.DetectArchKconfig(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
			return nil, 2
		}
		in.arch = arch
		statusf(cfg, "Detected microarchitecture: %s", arch)

		if compiler, err := parser.DetectCompiler(opts); err == nil {
			in.compiler = compiler
			statusf(cfg, "Detected compiler: %s", compiler)
		} else {
			statusf(cfg, "Can't detect the compiler: %v", err)
		}

		versionFile := cfg.VersionFile
		if versionFile == "" {
			versionFile = cfg.Kconfig
		}
		ver, err := parser.KernelVersionFile(versionFile)
		if err != nil {
			if cfg.VersionFile == "" {
				fmt.Fprintf(os.Stderr, "  Hint: provide the kernel version file through --kernel-version\n")
			}
			fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
			return nil, 2
		}
		in.version = ver
		statusf(cfg, "Detected kernel version: %s", ver)
	}

	if cfg.Cmdline != "" {
		opts, code := parseInputFile(cfg, cfg.Cmdline, parser.ParseCmdline)
		if code >= 0 {
			return nil, code
		}
		in.cmdline = opts
	}

	if cfg.Sysctl != "" {
		opts, code := parseInputFile(cfg, cfg.Sysctl, parser.ParseSysctl)
		if code >= 0 {
			return nil, code
		}
		in.sysctl = opts

		if in.arch == "" {
			arch, machine, err := parser.DetectArchSysctl(opts)
			if err != nil {
				statusf(cfg, "Warning: %v, arch-dependent checks will be dropped", err)
			} else {
				in.arch = arch
				statusf(cfg, "Detected microarchitecture: %s (%s)", arch, machine)
			}
		}
	}

	return in, -1
}

// gatherLive probes the running kernel: /proc/config.gz when available,
// /proc/cmdline, and the /proc/sys tree.
func gatherLive(cfg *Config) (*inputData, int) {
	in := &inputData{}

	kernel, err := sysinfo.DetectKernel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
		return nil, 2
	}
	in.version = kernel.Version
	in.arch = kernel.Arch
	statusf(cfg, "Detected running kernel: %s (%s)", kernel.Release, kernel.Machine)
	if in.arch == "" {
		statusf(cfg, "Warning: unsupported arch %q, arch-dependent checks will be dropped", kernel.Machine)
	}

	if opts, code := parseInputFile(cfg, "/proc/config.gz", parser.ParseKconfig); code < 0 {
		in.kconfig = opts
		if compiler, err := parser.DetectCompiler(opts); err == nil {
			in.compiler = compiler
		}
	} else {
		statusf(cfg, "No readable /proc/config.gz, build-config checks will be dropped")
	}

	if opts, code := parseInputFile(cfg, "/proc/cmdline", parser.ParseCmdline); code < 0 {
		in.cmdline = opts
	}

	sysctlOpts, err := parser.WalkProcSys("/proc/sys")
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
		return nil, 2
	}
	in.sysctl = sysctlOpts

	return in, -1
}

// parseInputFile opens (gzip-aware) and parses one dump file, printing
// parser warnings. Returns -1 as code on success.
func parseInputFile(cfg *Config, path string,
	parse func(io.Reader) (map[string]string, []string, error),
) (map[string]string, int) {
	f, err := parser.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
		return nil, 2
	}
	defer f.Close()

	opts, warnings, err := parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", path, err)
		return nil, 2
	}
	for _, w := range warnings {
		statusf(cfg, "Warning: %s: %s", path, w)
	}
	return opts, -1
}

// buildChecklist assembles the checklist for the detected inputs, populates
// it, and applies the data-dependent refinements.
// Returns -1 as code if successful.
func buildChecklist(cfg *Config, in *inputData) ([]engine.Check, int) {
	var list []engine.Check
	if in.kconfig != nil && in.arch != "" {
		list = append(list, catalog.KconfigChecks(in.arch)...)
	}
	if in.cmdline != nil && in.arch != "" {
		list = append(list, catalog.CmdlineChecks(in.arch)...)
	}
	if in.sysctl != nil {
		list = append(list, catalog.SysctlChecks(in.arch)...)
	}

	list, code := loadExtraChecks(cfg, list)
	if code >= 0 {
		return nil, code
	}

	if len(list) == 0 {
		fmt.Fprintf(os.Stderr, "  ✗ No checks apply to the supplied inputs\n")
		return nil, 2
	}

	if in.version != nil {
		engine.PopulateVersion(list, in.version)
	}

	if in.kconfig != nil {
		engine.Populate(list, in.kconfig, engine.SourceKconfig)

		// Refinement only applies when the kconfig checklist was built,
		// which needs a recognized arch.
		if in.arch != "" {
			refined, overridden, err := catalog.RefineMmapRndBits(list, in.kconfig)
			if err != nil {
				fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
				return nil, 2
			}
			list = refined
			if !overridden {
				statusf(cfg, "Can't check %s without CONFIG_ARCH_MMAP_RND_BITS_MAX", catalog.MmapRndBits)
			}
		}
	}

	if in.cmdline != nil {
		engine.Populate(list, in.cmdline, engine.SourceCmdline)
	}
	if in.sysctl != nil {
		engine.Populate(list, in.sysctl, engine.SourceSysctl)
	}

	return list, -1
}

// loadExtraChecks appends --extra-checks definitions to the checklist.
func loadExtraChecks(cfg *Config, list []engine.Check) ([]engine.Check, int) {
	if cfg.ExtraChecks == "" {
		return list, -1
	}
	defs, err := loader.New().LoadPath(cfg.ExtraChecks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
		return nil, 2
	}
	for _, def := range defs {
		list = append(list, catalog.FromDefinition(def))
	}
	statusf(cfg, "Loaded %d extra check(s) from %s", len(defs), cfg.ExtraChecks)
	return list, -1
}

// buildReport assembles the report struct from the evaluated checklist.
func buildReport(cfg *Config, in *inputData, list []engine.Check, runStart time.Time) *types.Report {
	report := &types.Report{
		Version:   version,
		Timestamp: runStart,
		System: types.ReportSystem{
			Arch:        in.arch,
			Compiler:    in.compiler,
			KconfigFile: cfg.Kconfig,
			CmdlineFile: cfg.Cmdline,
			SysctlFile:  cfg.Sysctl,
			Live:        cfg.Live,
		},
	}
	if in.version != nil {
		report.System.KernelVersion = in.version.String()
	}

	for _, check := range list {
		row := resultRow(check, true)
		if row.OK() {
			report.Summary.Passed++
		} else {
			report.Summary.Failed++
		}
		report.Results = append(report.Results, row)
	}
	report.Summary.TotalChecks = len(list)
	report.Summary.DurationMS = time.Since(runStart).Milliseconds()

	if cfg.Verbose {
		report.Unknown = make(map[string][]string)
		for src, opts := range map[engine.Source]map[string]string{
			engine.SourceKconfig: in.kconfig,
			engine.SourceCmdline: in.cmdline,
			engine.SourceSysctl:  in.sysctl,
		} {
			if opts == nil {
				continue
			}
			if unknown := engine.UnknownOptions(list, opts, src); len(unknown) > 0 {
				report.Unknown[string(src)] = unknown
			}
		}
	}

	return report
}

// resultRow flattens one check into a report row. withResult must be false
// when the checklist has not been evaluated (--print mode).
func resultRow(check engine.Check, withResult bool) types.CheckResult {
	row := types.CheckResult{
		Name:          check.Name(),
		Source:        string(check.Source()),
		Desired:       check.Expected(),
		Category:      check.Category(),
		Justification: check.Justification(),
	}
	row.Observed, row.ObservedFound = check.Observed()
	if withResult {
		verdict := check.Result()
		row.Status = string(verdict.Status)
		row.Detail = verdict.Detail
	}
	return row
}

// writeReport formats and writes the report to stdout or a file.
func writeReport(cfg *Config, report *types.Report) int {
	termWidth := 0
	if cfg.OutputFile == "" && cfg.Format == "text" {
		if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
			if tw, _, err := term.GetSize(fd); err == nil && tw > 0 {
				termWidth = tw
			}
		}
	}

	var formatter output.Formatter
	switch cfg.Format {
	case "json":
		formatter = &output.JSONFormatter{}
	case "jsonl":
		formatter = &output.JSONLFormatter{}
	default:
		formatter = &output.TextFormatter{
			Show:  cfg.Show,
			Width: termWidth,
			Dumb:  output.IsDumbTerm(),
		}
	}

	w, cleanup, code := openOutput(cfg)
	if code >= 0 {
		return code
	}
	defer cleanup()

	if err := formatter.Write(w, report); err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Failed to write output: %v\n", err)
		return 2
	}

	if cfg.OutputFile != "" {
		fmt.Fprintf(os.Stderr, "  ✓ Check complete: %d OK · %d FAIL — written to %s\n",
			report.Summary.Passed, report.Summary.Failed, cfg.OutputFile)
	}

	return exitCode(report.Summary.Failed)
}

// openOutput returns the report writer: stdout, or the --output file after
// a safety check. Returns -1 as code on success.
func openOutput(cfg *Config) (io.Writer, func(), int) {
	if cfg.OutputFile == "" {
		return os.Stdout, func() {}, -1
	}
	if err := validateOutputPath(cfg.OutputFile); err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Unsafe output path: %v\n", err)
		return nil, nil, 2
	}
	f, err := os.Create(cfg.OutputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Failed to create output file: %v\n", err)
		return nil, nil, 2
	}
	return f, func() { f.Close() }, -1
}

// exitCode returns the kharden exit code: 0 = clean, 1 = findings.
func exitCode(failed int) int {
	if failed > 0 {
		return 1
	}
	return 0
}

// statusf prints a progress line to stderr. Suppressed by --quiet and by
// non-text formats.
func statusf(cfg *Config, format string, args ...interface{}) {
	if cfg.Quiet || cfg.Format != "text" {
		return
	}
	fmt.Fprintf(os.Stderr, "  ▸ "+format+"\n", args...)
}

// unsafeOutputPrefixes are path prefixes where writing output files is
// rejected. Prevents accidental overwrite of system files when running as
// root.
var unsafeOutputPrefixes = []string{"/etc/", "/proc/", "/sys/", "/dev/", "/boot/", "/sbin/", "/bin/", "/usr/"}

// validateOutputPath checks that the output file path is safe to write to.
func validateOutputPath(path string) error {
	cleaned := filepath.Clean(path)
	if filepath.IsAbs(cleaned) {
		for _, prefix := range unsafeOutputPrefixes {
			if strings.HasPrefix(cleaned, prefix) {
				return fmt.Errorf("refusing to write to system path %q", cleaned)
			}
		}
	}
	return nil
}
