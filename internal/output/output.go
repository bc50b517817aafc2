// Package output provides formatters that render check reports in different formats.
package output

import (
	"io"

	"github.com/ancients-collective/kharden/internal/types"
)

// Formatter writes a check report to the given writer.
type Formatter interface {
	Write(w io.Writer, report *types.Report) error
}
