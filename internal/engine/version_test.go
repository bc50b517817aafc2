package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{Version{6, 1, 0}, Version{6, 1, 0}, 0},
		{Version{6, 1}, Version{6, 1, 0}, 0},
		{Version{6, 1, 0}, Version{6, 1}, 0},
		{Version{5, 15}, Version{6, 1}, -1},
		{Version{6, 2}, Version{6, 1, 99}, 1},
		{Version{6, 1, 1}, Version{6, 1}, 1},
		{Version{4, 20}, Version{5, 0}, -1},
		{Version{6}, Version{6, 0, 0}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Compare(tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "6.1.0", Version{6, 1, 0}.String())
	assert.Equal(t, "5.15", Version{5, 15}.String())
}

func TestNewVersion_RejectsEmpty(t *testing.T) {
	assert.Panics(t, func() { NewVersion(nil, "", "") })
}

func TestVersionCheck_Metadata(t *testing.T) {
	c := NewVersion(Version{5, 15}, "self_protection", "defconfig")

	assert.Equal(t, "kernel version", c.Name())
	assert.Equal(t, SourceVersion, c.Source())
	assert.Equal(t, ">= 5.15", c.Expected())

	_, found := c.Observed()
	assert.False(t, found)
}

func TestVersionCheck_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		expected Version
		observed Version
		ok       bool
	}{
		{"above minimum", Version{5, 15}, Version{6, 1, 0}, true},
		{"exact minimum", Version{5, 15}, Version{5, 15, 0}, true},
		{"below minimum", Version{6, 2}, Version{6, 1, 55}, false},
		{"short tuple below", Version{6, 1, 1}, Version{6, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewVersion(tt.expected, "", "")
			c.RecordVersion(tt.observed)
			assert.Equal(t, tt.ok, c.Resolve().OK())
		})
	}
}

func TestVersionCheck_UnsetVersionFails(t *testing.T) {
	c := NewVersion(Version{5, 15}, "", "")
	v := c.Resolve()
	require.False(t, v.OK())
	assert.Equal(t, "version not available", v.Detail)
}

func TestVersionCheck_RecordVersionInvalidates(t *testing.T) {
	c := NewVersion(Version{6, 2}, "", "")
	c.RecordVersion(Version{6, 1})
	require.False(t, c.Resolve().OK())

	c.RecordVersion(Version{6, 6})
	assert.False(t, c.Resolved())
	assert.True(t, c.Resolve().OK())

	observed, found := c.Observed()
	require.True(t, found)
	assert.Equal(t, "6.6", observed)
}

func TestVersionCheck_ResultBeforeResolvePanics(t *testing.T) {
	c := NewVersion(Version{5, 15}, "", "")
	assert.Panics(t, func() { c.Result() })
}
