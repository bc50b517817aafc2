package parser

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("CONFIG_BUG=y\n"), 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "CONFIG_BUG=y\n", string(data))
}

func TestOpen_GzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.gz")
	var buf []byte
	{
		f, err := os.Create(path)
		require.NoError(t, err)
		zw := gzip.NewWriter(f)
		_, err = zw.Write([]byte("CONFIG_BUG=y\n"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.NoError(t, f.Close())
	}

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	buf, err = io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "CONFIG_BUG=y\n", string(buf))
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestOpen_CorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip data"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}
