package shared

import (
	"fmt"
	"io"
	"os"
)

// Reporter receives the user-facing lines of a run, such as "Maintaining <repo>".
// Diagnostics go to the zap logger instead.
type Reporter interface {
	Printf(format string, args ...any)
}

// WriterReporter prints report lines to an io.Writer. Write errors are dropped since
// there is nowhere left to report them.
type WriterReporter struct {
	writer io.Writer
}

// NewWriterReporter constructs a Reporter printing to writer, or to standard output when writer is nil.
func NewWriterReporter(writer io.Writer) *WriterReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &WriterReporter{writer: writer}
}

// Printf formats and prints one report line.
func (reporter *WriterReporter) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(reporter.writer, format, args...)
}
