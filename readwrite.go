package readwrite

import (
	"io"

	"github.com/vi/readwrite/errors"
)

var _ io.ReadWriteCloser = (*ReadWrite[io.Reader, io.Writer])(nil)

// Flusher is the optional finish operation of a writable endpoint.
type Flusher interface {
	Flush() error
}

// ReadWrite combines an exclusively owned reader and writer into a single
// pseudo-socket. Read delegates to the reader and Write delegates to the
// writer; nothing is buffered, retried, or transformed, and the two paths
// touch disjoint state. The type parameters keep the concrete endpoint types,
// so Split returns exactly what New was given.
type ReadWrite[R io.Reader, W io.Writer] struct {
	r R
	w W
}

// New bundles a separate reader and writer into a combined pseudo-socket,
// taking ownership of both.
func New[R io.Reader, W io.Writer](r R, w W) *ReadWrite[R, W] {
	return &ReadWrite[R, W]{r: r, w: w}
}

// Read reads from the underlying reader. It never touches the writer.
func (rw *ReadWrite[R, W]) Read(p []byte) (int, error) {
	return rw.r.Read(p)
}

// Write writes to the underlying writer. It never touches the reader.
func (rw *ReadWrite[R, W]) Write(p []byte) (int, error) {
	return rw.w.Write(p)
}

// Flush forwards to the writer if it has a Flush operation and is a no-op
// otherwise.
func (rw *ReadWrite[R, W]) Flush() error {
	if f, ok := any(rw.w).(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// Close closes whichever of the two endpoints implement io.Closer. The halves
// are unrelated, so each is closed regardless of the other failing; both
// errors are reported via errors.Join.
func (rw *ReadWrite[R, W]) Close() error {
	return errors.Join(rw.CloseRead(), rw.CloseWrite())
}

// CloseRead closes only the reader, if it is closeable.
func (rw *ReadWrite[R, W]) CloseRead() error {
	if c, ok := any(rw.r).(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// CloseWrite closes only the writer, if it is closeable.
func (rw *ReadWrite[R, W]) CloseWrite() error {
	if c, ok := any(rw.w).(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Reader returns the underlying reader.
func (rw *ReadWrite[R, W]) Reader() R { return rw.r }

// Writer returns the underlying writer.
func (rw *ReadWrite[R, W]) Writer() W { return rw.w }

// Split takes the combinator apart and returns the original endpoints. It
// performs no I/O and never fails. The combinator must not be used afterwards.
func (rw *ReadWrite[R, W]) Split() (R, W) {
	return rw.r, rw.w
}
