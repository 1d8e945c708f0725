package renderer

import (
	"fmt"
	"io"
	"os"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stderr, leaving stdout free for image data
type DefaultLogger struct {
	out io.Writer
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.out, format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{out: os.Stderr}
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &DefaultLogger{out: w}
}

// nopLogger discards everything
type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}

// NewNopLogger creates a logger that discards all output
func NewNopLogger() core.Logger {
	return nopLogger{}
}
