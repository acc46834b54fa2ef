package shared

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Reporter emits formatted status lines to an underlying sink.
type Reporter interface {
	Printf(format string, args ...any)
}

type flusher interface {
	Flush() error
}

type writerReporter struct {
	mutex  *sync.Mutex
	writer io.Writer
}

// NewWriterReporter constructs a Reporter writing to writer, or os.Stdout when writer is nil.
// Calls are serialized so lines never interleave, and buffered sinks are flushed after every line
// so concurrent workers' results appear as they complete.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return writerReporter{mutex: &sync.Mutex{}, writer: writer}
}

func (reporter writerReporter) Printf(format string, args ...any) {
	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()
	fmt.Fprintf(reporter.writer, format, args...)
	if bufferedWriter, buffered := reporter.writer.(flusher); buffered {
		_ = bufferedWriter.Flush()
	}
}
