package pkg

import (
	"io"
	"slices"

	"go.uber.org/multierr"
)

// CombinedWriter fans log output out to several writers.
// A failing writer does not stop the others, its error is combined into the result.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		writers: slices.Clone(writers),
	}
}

// Write reports len(p) when at least one writer took the whole message.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	failed := 0
	for _, w := range cw.writers {
		n, werr := w.Write(p)
		if werr == nil && n < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, werr)
			failed++
		}
	}

	if len(cw.writers) > 0 && failed == len(cw.writers) {
		return 0, err
	}
	return len(p), err
}
