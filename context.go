package readwrite

import (
	"context"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vi/readwrite/errors"
)

// ContextReader is the suspend-capable readable endpoint: Read parks the
// calling goroutine until bytes arrive, an error occurs, or ctx is done.
type ContextReader interface {
	Read(ctx context.Context, p []byte) (int, error)
}

// ContextWriter is the suspend-capable writable endpoint.
type ContextWriter interface {
	Write(ctx context.Context, p []byte) (int, error)
}

// ContextFlusher is the optional finish operation of a ContextWriter.
type ContextFlusher interface {
	Flush(ctx context.Context) error
}

// ContextCloser is implemented by endpoints whose finalization may itself
// suspend.
type ContextCloser interface {
	Close(ctx context.Context) error
}

// ReadWriteContext is ReadWrite for suspend-capable endpoints. It is the same
// pure delegation shim: each direction suspends and resumes on its own, and a
// read pending resumption never prevents a write from proceeding, because the
// two directions share nothing.
type ReadWriteContext[R ContextReader, W ContextWriter] struct {
	r R
	w W
}

// NewContext bundles a suspend-capable reader and writer into a combined
// pseudo-socket, taking ownership of both.
func NewContext[R ContextReader, W ContextWriter](r R, w W) *ReadWriteContext[R, W] {
	return &ReadWriteContext[R, W]{r: r, w: w}
}

// Read reads from the underlying reader. It never touches the writer.
func (rw *ReadWriteContext[R, W]) Read(ctx context.Context, p []byte) (int, error) {
	return rw.r.Read(ctx, p)
}

// Write writes to the underlying writer. It never touches the reader.
func (rw *ReadWriteContext[R, W]) Write(ctx context.Context, p []byte) (int, error) {
	return rw.w.Write(ctx, p)
}

// Flush forwards to the writer if it has a Flush operation and is a no-op
// otherwise.
func (rw *ReadWriteContext[R, W]) Flush(ctx context.Context) error {
	if f, ok := any(rw.w).(ContextFlusher); ok {
		return f.Flush(ctx)
	}
	return nil
}

// Close finalizes both endpoints independently, accepting either the
// suspend-capable or the plain close form on each. Both errors are reported
// via errors.Join.
func (rw *ReadWriteContext[R, W]) Close(ctx context.Context) error {
	return errors.Join(closeEndpoint(ctx, rw.r), closeEndpoint(ctx, rw.w))
}

// Reader returns the underlying reader.
func (rw *ReadWriteContext[R, W]) Reader() R { return rw.r }

// Writer returns the underlying writer.
func (rw *ReadWriteContext[R, W]) Writer() W { return rw.w }

// Split takes the combinator apart and returns the original endpoints. It
// performs no I/O and never fails.
func (rw *ReadWriteContext[R, W]) Split() (R, W) {
	return rw.r, rw.w
}

func closeEndpoint(ctx context.Context, v any) error {
	switch c := v.(type) {
	case ContextCloser:
		return c.Close(ctx)
	case io.Closer:
		return c.Close()
	}
	return nil
}

var (
	_ ContextReader = (*Conn)(nil)
	_ ContextWriter = (*Conn)(nil)
)

// Conn lifts a plain reader and writer into a suspend-capable pseudo-socket by
// running one request loop per direction. Each call hands its buffer to the
// loop for that direction and waits for the outcome or ctx cancellation, so a
// write sitting on a full sink never delays a read from a ready source.
//
// Cancelling a pending call abandons it; the underlying Read or Write itself
// keeps running until it returns on its own, and its outcome is discarded.
type Conn struct {
	r io.Reader
	w io.Writer

	cancel context.CancelFunc
	done   <-chan struct{}
	eg     errgroup.Group
	read   pump
	write  pump

	closeOnce sync.Once
}

// NewWithContext combines a plain reader and writer into a Conn whose loops
// live until ctx is done or Close is called.
func NewWithContext(ctx context.Context, r io.Reader, w io.Writer) *Conn {
	ctx, cancel := context.WithCancel(ctx)
	c := &Conn{
		r:      r,
		w:      w,
		cancel: cancel,
		done:   ctx.Done(),
		read:   pump{request: make(chan pumpRequest)},
		write:  pump{request: make(chan pumpRequest)},
	}
	c.eg.Go(func() error { return c.read.run(ctx, r.Read) })
	c.eg.Go(func() error { return c.write.run(ctx, w.Write) })
	return c
}

// Read reads from the underlying reader via the read loop. A blocked write
// never delays it.
func (c *Conn) Read(ctx context.Context, p []byte) (int, error) {
	return c.read.do(ctx, c.done, p)
}

// Write writes to the underlying writer via the write loop. A blocked read
// never delays it.
func (c *Conn) Write(ctx context.Context, p []byte) (int, error) {
	return c.write.do(ctx, c.done, p)
}

// Close interrupts pending calls, closes whichever endpoints implement
// io.Closer independently, and waits for both loops to exit. An endpoint
// stuck in a Read or Write that closing does not unblock will stall Close the
// same way it would stall the loop. Calls issued after Close, or after the
// construction context is done, return errors.ErrClosed.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		var rerr, werr error
		if closer, ok := c.r.(io.Closer); ok {
			rerr = closer.Close()
		}
		if closer, ok := c.w.(io.Closer); ok {
			werr = closer.Close()
		}
		c.eg.Wait()
		err = errors.Join(rerr, werr)
	})
	return err
}

type pumpResult struct {
	n   int
	err error
}

type pumpRequest struct {
	buf  []byte
	done chan pumpResult
}

// pump serializes one direction. Each direction owns its own pump, so the two
// never contend.
type pump struct {
	request chan pumpRequest
}

func (p *pump) run(ctx context.Context, f func([]byte) (int, error)) error {
	for {
		var req pumpRequest
		select {
		case <-ctx.Done():
			return nil
		case req = <-p.request:
		}
		n, err := f(req.buf)
		req.done <- pumpResult{n: n, err: err}
	}
}

func (p *pump) do(ctx context.Context, closed <-chan struct{}, buf []byte) (int, error) {
	// done is buffered so an abandoned call never wedges the loop.
	req := pumpRequest{buf: buf, done: make(chan pumpResult, 1)}
	select {
	case <-closed:
		return 0, errors.ErrClosed
	case <-ctx.Done():
		return 0, ctx.Err()
	case p.request <- req:
	}
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case result := <-req.done:
		return result.n, result.err
	}
}

// ReadWriter adapts a Conn, or any combined suspend-capable endpoint, back to
// plain io.Reader and io.Writer under a fixed context.
func ReadWriter(ctx context.Context, rw interface {
	ContextReader
	ContextWriter
}) io.ReadWriter {
	return &boundReadWriter{ctx: ctx, rw: rw}
}

type boundReadWriter struct {
	ctx context.Context
	rw  interface {
		ContextReader
		ContextWriter
	}
}

func (b *boundReadWriter) Read(p []byte) (int, error) {
	return b.rw.Read(b.ctx, p)
}

func (b *boundReadWriter) Write(p []byte) (int, error) {
	return b.rw.Write(b.ctx, p)
}
