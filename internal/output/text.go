package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/ancients-collective/kharden/internal/types"
)

// ─── Layout constants ────────────────────────────────────────────────
//
// Every result line follows a strict column grid:
//
//     margin icon  OPTION NAME           SRC      DESIRED       TAG  ORIGIN   RESULT
//
const (
	colMargin  = 2  // left margin (spaces) for result lines
	nameWidth  = 38 // option name column
	srcWidth   = 8  // data source column
	wantWidth  = 16 // desired value column
	catWidth   = 20 // category column
	justWidth  = 11 // justification column
	ruleWidth  = 100
)

// TextFormatter writes a colored, human-readable check report.
type TextFormatter struct {
	Show  string // "all" (default), "fail", "ok"
	Width int    // terminal width; 0 means no terminal, use the default grid
	Dumb  bool   // TERM=dumb — use single-char ASCII fallback icons
}

// ruleLen returns the horizontal rule length, shrunk to fit a narrow
// terminal.
func (f *TextFormatter) ruleLen() int {
	if f.Width > 0 && f.Width-colMargin*2 < ruleWidth {
		return f.Width - colMargin*2
	}
	return ruleWidth
}

// Color helpers — each returns a sprint function.
var (
	cBold    = color.New(color.Bold).SprintFunc()
	cGreen   = color.New(color.FgGreen).SprintFunc()
	cRed     = color.New(color.FgRed).SprintFunc()
	cDim     = color.New(color.Faint).SprintFunc()
	cRedBold = color.New(color.FgRed, color.Bold).SprintFunc()
	cGrnBold = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// IsDumbTerm returns true when the terminal doesn't support Unicode.
func IsDumbTerm() bool {
	t := os.Getenv("TERM")
	return t == "dumb" || t == ""
}

// Write renders the full text report.
func (f *TextFormatter) Write(w io.Writer, report *types.Report) error {
	f.writeHeader(w, report)
	f.writeSystem(w, report)
	f.writeResults(w, report)
	f.writeUnknown(w, report)
	f.writeSummary(w, report)
	fmt.Fprintln(w)
	return nil
}

// ─── Header ──────────────────────────────────────────────────────────

func (f *TextFormatter) writeHeader(w io.Writer, r *types.Report) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s\n", cBold("kharden"), cDim("v"+r.Version))
	fmt.Fprintf(w, "  %s\n", cDim("Check the security hardening options of the Linux kernel"))
	fmt.Fprintf(w, "  %s %s\n", cDim("Run started:"), r.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintln(w)
}

// ─── System context ──────────────────────────────────────────────────

func (f *TextFormatter) writeSystem(w io.Writer, r *types.Report) {
	sys := r.System
	fmt.Fprintf(w, "  %s\n", cBold(f.icon("section")+" Kernel"))
	if sys.Arch != "" {
		fmt.Fprintf(w, "    Arch:     %s\n", sys.Arch)
	}
	if sys.KernelVersion != "" {
		fmt.Fprintf(w, "    Version:  %s\n", sys.KernelVersion)
	}
	if sys.Compiler != "" {
		fmt.Fprintf(w, "    Compiler: %s\n", sys.Compiler)
	}
	var inputs []string
	if sys.Live {
		inputs = append(inputs, "live system")
	}
	if sys.KconfigFile != "" {
		inputs = append(inputs, "kconfig="+sys.KconfigFile)
	}
	if sys.CmdlineFile != "" {
		inputs = append(inputs, "cmdline="+sys.CmdlineFile)
	}
	if sys.SysctlFile != "" {
		inputs = append(inputs, "sysctl="+sys.SysctlFile)
	}
	if len(inputs) > 0 {
		fmt.Fprintf(w, "    Inputs:   %s\n", strings.Join(inputs, " · "))
	}
	fmt.Fprintln(w)
}

// ─── Results table ───────────────────────────────────────────────────

func (f *TextFormatter) writeResults(w io.Writer, r *types.Report) {
	rule := cDim(strings.Repeat("─", f.ruleLen()))

	fmt.Fprintf(w, "  %s\n", rule)
	fmt.Fprintf(w, "%s%s %-*s %-*s %-*s %-*s %-*s %s\n",
		colPad(colMargin), " ",
		nameWidth, cBold("option name"),
		srcWidth, cBold("source"),
		wantWidth, cBold("desired"),
		catWidth, cBold("category"),
		justWidth, cBold("origin"),
		cBold("result"))
	fmt.Fprintf(w, "  %s\n", rule)

	shown := 0
	for _, res := range r.Results {
		if !f.shouldShow(res) {
			continue
		}
		f.writeResultLine(w, res)
		shown++
	}
	if shown == 0 {
		fmt.Fprintf(w, "%s%s\n", colPad(colMargin+2), cDim("(no results match the current filters)"))
	}
	fmt.Fprintf(w, "  %s\n", rule)
}

func (f *TextFormatter) writeResultLine(w io.Writer, res types.CheckResult) {
	icon := cGreen(f.icon("pass"))
	verdict := cGreen(res.Status)
	switch {
	case res.Status == "":
		// Unevaluated row, as printed by the checklist listing.
		icon = cDim(f.icon("section"))
		verdict = ""
	case !res.OK():
		icon = cRed(f.icon("fail"))
		verdict = cRedBold(res.Status)
	}
	if res.Detail != "" {
		verdict += cDim(": " + res.Detail)
	}

	fmt.Fprintf(w, "%s%s %-*s %-*s %-*s %-*s %-*s %s\n",
		colPad(colMargin),
		icon,
		nameWidth, truncate(res.Name, nameWidth),
		srcWidth, res.Source,
		wantWidth, truncate(res.Desired, wantWidth),
		catWidth, truncate(res.Category, catWidth),
		justWidth, truncate(res.Justification, justWidth),
		verdict)
}

// ─── Unknown options (verbose) ───────────────────────────────────────

func (f *TextFormatter) writeUnknown(w io.Writer, r *types.Report) {
	if len(r.Unknown) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", cBold(f.icon("section")+" Options without a check"))
	for _, src := range []string{"kconfig", "cmdline", "sysctl"} {
		names := r.Unknown[src]
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(w, "    %s (%d):\n", src, len(names))
		for _, name := range names {
			fmt.Fprintf(w, "      %s\n", cDim(name))
		}
	}
	fmt.Fprintln(w)
}

// ─── Summary ─────────────────────────────────────────────────────────

func (f *TextFormatter) writeSummary(w io.Writer, r *types.Report) {
	s := r.Summary
	passed := cGrnBold(fmt.Sprintf("%d OK", s.Passed))
	failed := cRedBold(fmt.Sprintf("%d FAIL", s.Failed))

	suppressed := ""
	switch f.Show {
	case "fail":
		suppressed = cDim(" (OK suppressed in output)")
	case "ok":
		suppressed = cDim(" (FAIL suppressed in output)")
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s  %d checks · %s · %s%s\n",
		cBold("Summary:"), s.TotalChecks, passed, failed, suppressed)

	dur := fmt.Sprintf("%.1fs", float64(s.DurationMS)/1000.0)
	fmt.Fprintf(w, "  %s %s\n", cDim("Completed in"), cBold(dur))
}

// ─── Helpers ─────────────────────────────────────────────────────────

func (f *TextFormatter) shouldShow(res types.CheckResult) bool {
	switch f.Show {
	case "fail":
		return !res.OK()
	case "ok":
		return res.OK()
	default:
		return true
	}
}

func (f *TextFormatter) icon(name string) string {
	if f.Dumb {
		switch name {
		case "pass":
			return "+"
		case "fail":
			return "x"
		case "section":
			return ">"
		default:
			return "?"
		}
	}
	switch name {
	case "pass":
		return "✓"
	case "fail":
		return "✗"
	case "section":
		return "▸"
	default:
		return "?"
	}
}

func colPad(n int) string {
	return strings.Repeat(" ", n)
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}
