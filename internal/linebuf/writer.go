// Package linebuf provides line-buffered IO utilities.
package linebuf

import (
	"bytes"
	"io"
	"sync"
)

// Writer returns an io.Writer that calls fn once for each complete line
// written to it, including the trailing newline.
//
// Text after the last newline is held until more is written
// or until done is called.
func Writer(fn func([]byte)) (_ io.Writer, done func()) {
	w := &lineWriter{fn: fn}
	return w, w.flush
}

type lineWriter struct {
	fn func([]byte)

	mu      sync.Mutex
	pending []byte // partial line, guarded by mu
}

func (w *lineWriter) Write(bs []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = append(w.pending, bs...)
	for {
		idx := bytes.IndexByte(w.pending, '\n')
		if idx < 0 {
			break
		}
		w.fn(w.pending[:idx+1])
		w.pending = w.pending[idx+1:]
	}
	if len(w.pending) == 0 {
		w.pending = nil
	}
	return len(bs), nil
}

func (w *lineWriter) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) > 0 {
		w.fn(w.pending)
	}
	w.pending = nil
}
