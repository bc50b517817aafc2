// Package parser turns raw kernel configuration dumps (Kconfig files,
// /proc/cmdline contents, sysctl output) into flat name→value mappings and
// detects the microarchitecture, compiler, and kernel version from them.
package parser

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Open opens a configuration dump for reading, transparently decompressing
// gzip files (e.g. /proc/config.gz). The caller must close the result.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %q: %w", path, err)
	}

	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("unable to decompress %q: %w", path, err)
	}
	return &gzipFile{zr: zr, f: f}, nil
}

// gzipFile closes both the gzip reader and the underlying file.
type gzipFile struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipFile) Close() error {
	zerr := g.zr.Close()
	ferr := g.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}
