package prefixwriter

import (
	"bytes"
	"io"
	"sync"
)

// Writer prefixes every line written through it, so interleaved remote
// output stays attributable to its camera. Partial lines are buffered until
// their newline arrives; Flush emits any trailing partial line.
type Writer struct {
	out    io.Writer
	prefix string
	mu     sync.Mutex
	buf    bytes.Buffer
}

// New creates a Writer that writes lines to out prefixed with prefix.
func New(out io.Writer, prefix string) *Writer {
	return &Writer{out: out, prefix: prefix}
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// No newline yet; keep the partial line buffered.
			w.buf.WriteString(line)
			break
		}
		if _, err := io.WriteString(w.out, w.prefix+line); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

// Flush writes any buffered partial line, newline-terminated.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() == 0 {
		return nil
	}
	line := w.buf.String()
	w.buf.Reset()
	_, err := io.WriteString(w.out, w.prefix+line+"\n")
	return err
}
