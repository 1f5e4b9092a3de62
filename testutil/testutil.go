package testutil

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// ChunkReader replays fixed chunks, one Read per chunk, then reports Err
// (io.EOF unless overridden). It preserves chunk boundaries so delegation can
// be compared against the endpoint call for call.
type ChunkReader struct {
	chunks [][]byte
	offset int
	Err    error
}

func NewChunkReader(chunks ...[]byte) *ChunkReader {
	return &ChunkReader{chunks: chunks, Err: io.EOF}
}

func (r *ChunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, r.Err
	}
	chunk := r.chunks[0]
	n := copy(p, chunk[r.offset:])
	r.offset += n
	if r.offset == len(chunk) {
		r.chunks = r.chunks[1:]
		r.offset = 0
	}
	return n, nil
}

// GateWriter blocks every Write until Release supplies a token, or until the
// writer is closed. Written bytes are recorded.
type GateWriter struct {
	gate chan struct{}

	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

func NewGateWriter() *GateWriter {
	return &GateWriter{gate: make(chan struct{}, 16)}
}

// Release lets one pending or future Write proceed.
func (w *GateWriter) Release() { w.gate <- struct{}{} }

func (w *GateWriter) Write(p []byte) (int, error) {
	<-w.gate
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

// Close unblocks pending writes and makes future ones fail.
func (w *GateWriter) Close() error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	close(w.gate)
	return nil
}

func (w *GateWriter) Bytes() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return bytes.Clone(w.buf.Bytes())
}

// ErrReader fails every Read with Err.
type ErrReader struct {
	Err error
}

func (r ErrReader) Read([]byte) (int, error) { return 0, r.Err }

// ErrWriter fails every Write with Err.
type ErrWriter struct {
	Err error
}

func (w ErrWriter) Write([]byte) (int, error) { return 0, w.Err }

func IsClosed[T any](c <-chan T) bool {
	select {
	case _, ok := <-c:
		return !ok
	default:
		return false
	}
}

func CtxRecv[T any](ctx context.Context, c <-chan T) (T, bool) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, false
	case v := <-c:
		return v, true
	}
}
