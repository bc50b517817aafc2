package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ancients-collective/kharden/internal/types"
)

func sampleReport() *types.Report {
	return &types.Report{
		Version:   "1.0.2",
		Timestamp: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		System: types.ReportSystem{
			Arch:          "X86_64",
			KernelVersion: "6.5.0",
			Compiler:      "GCC 130200",
			KconfigFile:   "testdata/config",
		},
		Summary: types.ReportSummary{
			TotalChecks: 3,
			Passed:      2,
			Failed:      1,
			DurationMS:  4,
		},
		Results: []types.CheckResult{
			{
				Name:          "CONFIG_BUG",
				Source:        "kconfig",
				Desired:       "y",
				Category:      "self_protection",
				Justification: "defconfig",
				Observed:      "y",
				ObservedFound: true,
				Status:        "OK",
			},
			{
				Name:          "CONFIG_DEVMEM",
				Source:        "kconfig",
				Desired:       "is not set",
				Category:      "cut_attack_surface",
				Justification: "kspp",
				Status:        "FAIL",
				Detail:        "is not found",
			},
			{
				Name:          "kernel.kptr_restrict",
				Source:        "sysctl",
				Desired:       "2",
				Category:      "cut_attack_surface",
				Justification: "kspp",
				Observed:      "2",
				ObservedFound: true,
				Status:        "OK",
			},
		},
		Unknown: map[string][]string{
			"kconfig": {"CONFIG_MYSTERY"},
		},
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Write(&buf, sampleReport()))

	var decoded types.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "1.0.2", decoded.Version)
	assert.Equal(t, "X86_64", decoded.System.Arch)
	assert.Equal(t, 3, decoded.Summary.TotalChecks)
	require.Len(t, decoded.Results, 3)
	assert.Equal(t, "CONFIG_BUG", decoded.Results[0].Name)
	assert.Equal(t, "OK", decoded.Results[0].Status)
	assert.True(t, decoded.Results[0].ObservedFound)
	assert.Equal(t, "is not found", decoded.Results[1].Detail)
	assert.Equal(t, []string{"CONFIG_MYSTERY"}, decoded.Unknown["kconfig"])
}

func TestJSONFormatter_FieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Write(&buf, sampleReport()))
	out := buf.String()

	for _, field := range []string{
		`"option_name"`, `"type"`, `"desired_val"`, `"observed_val"`,
		`"observed_found"`, `"check_result"`, `"check_detail"`,
	} {
		assert.Contains(t, out, field)
	}
}

func TestJSONLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONLFormatter{}).Write(&buf, sampleReport()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	var header struct {
		Type    string              `json:"type"`
		Version string              `json:"version"`
		System  types.ReportSystem  `json:"system"`
		Summary types.ReportSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &header))
	assert.Equal(t, "header", header.Type)
	assert.Equal(t, 1, header.Summary.Failed)

	var line struct {
		Type   string            `json:"type"`
		Result types.CheckResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &line))
	assert.Equal(t, "result", line.Type)
	assert.Equal(t, "CONFIG_BUG", line.Result.Name)
}

func TestTextFormatter(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	require.NoError(t, (&TextFormatter{Show: "all"}).Write(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "kharden")
	assert.Contains(t, out, "Arch:     X86_64")
	assert.Contains(t, out, "Version:  6.5.0")
	assert.Contains(t, out, "Compiler: GCC 130200")
	assert.Contains(t, out, "CONFIG_BUG")
	assert.Contains(t, out, "CONFIG_DEVMEM")
	assert.Contains(t, out, "is not found")
	assert.Contains(t, out, "kernel.kptr_restrict")
}

func TestTextFormatter_ShowFail(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	require.NoError(t, (&TextFormatter{Show: "fail"}).Write(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "CONFIG_DEVMEM")
	assert.NotContains(t, out, "CONFIG_BUG")
	assert.Contains(t, out, "suppressed in output")
}

func TestTextFormatter_ShowOK(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	require.NoError(t, (&TextFormatter{Show: "ok"}).Write(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "CONFIG_BUG")
	assert.NotContains(t, out, "CONFIG_DEVMEM")
}

func TestTextFormatter_DumbIcons(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	require.NoError(t, (&TextFormatter{Show: "all", Dumb: true}).Write(&buf, sampleReport()))
	assert.NotContains(t, buf.String(), "✓")
	assert.NotContains(t, buf.String(), "✗")
}

func TestTextFormatter_UnevaluatedRows(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	// Checklist listings carry no verdicts. Rows must not render as failures.
	report := &types.Report{
		Version:   "1.0.2",
		Timestamp: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		System:    types.ReportSystem{Arch: "X86_64"},
		Summary:   types.ReportSummary{TotalChecks: 1},
		Results: []types.CheckResult{
			{
				Name:          "CONFIG_BUG",
				Source:        "kconfig",
				Desired:       "y",
				Category:      "self_protection",
				Justification: "defconfig",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, (&TextFormatter{Show: "all"}).Write(&buf, report))
	out := buf.String()

	assert.NotContains(t, out, "✗")
	row := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "CONFIG_BUG") {
			row = line
		}
	}
	require.NotEmpty(t, row)
	assert.Contains(t, row, "▸ CONFIG_BUG")
	assert.NotContains(t, row, "FAIL")
}

func TestTextFormatter_UnknownSection(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	require.NoError(t, (&TextFormatter{Show: "all"}).Write(&buf, sampleReport()))
	assert.Contains(t, buf.String(), "CONFIG_MYSTERY")
}
