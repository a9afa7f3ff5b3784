// Package bytesource adapts an open byte stream into the single-buffer
// payload shape the remote recognition client consumes, reading lazily and
// avoiding a second full copy of the file's content.
package bytesource

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// MaxBytes is the largest payload a single buffer may hold.
const MaxBytes = int64(1<<31 - 1)

// initialBufferSize is the starting capacity of the growth-read loop used
// when the underlying stream does not report a usable length.
const initialBufferSize = 512

var (
	// ErrTooLarge reports a stream whose length exceeds MaxBytes.
	ErrTooLarge = errors.New("stream too large for a single buffer")
	// ErrTruncated reports a stream that ended before its reported length.
	ErrTruncated = errors.New("end of stream reached unexpectedly")
	// ErrNotSeekable reports a Seek on a stream without seek support.
	ErrNotSeekable = errors.New("underlying stream does not support seeking")
)

// growPool recycles the scratch buffers of the growth-read loop between
// files, so a long batch of small files reuses the same allocations.
var growPool = sync.Pool{
	New: func() any {
		b := make([]byte, initialBufferSize)
		return &b
	},
}

// Source wraps exactly one underlying readable stream for the duration of
// one file's processing. It owns the stream's lifetime when constructed
// with ownership transfer and closes it on Close; Close is idempotent.
type Source struct {
	r      io.Reader
	size   int64 // reported length; < 0 means unknown
	owns   bool
	closed bool
}

// New wraps an already-open stream. size is the stream's reported length
// in bytes; pass a negative value when the length is unknown. When owns is
// true, closing the Source also closes the stream.
func New(r io.Reader, size int64, owns bool) *Source {
	return &Source{r: r, size: size, owns: owns}
}

// Open opens the file at path and wraps it as an owned Source with the
// file's stat size as the reported length.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return &Source{r: f, size: info.Size(), owns: true}, nil
}

// Len returns the reported length of the underlying stream, or a negative
// value when the length is unknown.
func (s *Source) Len() int64 {
	return s.size
}

// Read delegates to the underlying stream.
func (s *Source) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Seek delegates to the underlying stream when it supports seeking.
func (s *Source) Seek(offset int64, whence int) (int64, error) {
	seeker, ok := s.r.(io.Seeker)
	if !ok {
		return 0, ErrNotSeekable
	}
	return seeker.Seek(offset, whence)
}

// Bytes materializes all remaining bytes of the stream as one buffer.
//
// When the stream reports a known positive length, exactly that many bytes
// are allocated and read; a stream that ends early yields ErrTruncated.
// When the reported length is zero or unknown (some byte sources report
// zero even when content exists), a growth-read loop takes over: the
// buffer starts small and doubles on each fill until end of data, and the
// result holds exactly the bytes read.
func (s *Source) Bytes() ([]byte, error) {
	if s.size > MaxBytes {
		return nil, fmt.Errorf("%w: reported length %d", ErrTooLarge, s.size)
	}
	if s.size > 0 {
		buf := make([]byte, s.size)
		if _, err := io.ReadFull(s.r, buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: wanted %d bytes", ErrTruncated, s.size)
			}
			return nil, fmt.Errorf("failed to read stream: %w", err)
		}
		return buf, nil
	}
	return s.readGrow()
}

func (s *Source) readGrow() ([]byte, error) {
	scratch := growPool.Get().(*[]byte)
	buf := (*scratch)[:cap(*scratch)]
	n := 0
	for {
		if n == len(buf) {
			size, ok := grownSize(int64(len(buf)))
			if !ok {
				growPool.Put(scratch)
				return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, MaxBytes)
			}
			next := make([]byte, size)
			copy(next, buf)
			buf = next
		}
		m, err := s.r.Read(buf[n:])
		n += m
		if err == io.EOF {
			break
		}
		if err != nil {
			growPool.Put(scratch)
			return nil, fmt.Errorf("failed to read stream: %w", err)
		}
	}
	out := make([]byte, n)
	copy(out, buf[:n])
	*scratch = buf
	growPool.Put(scratch)
	return out, nil
}

// grownSize returns the next growth-buffer size for a full buffer of the
// given size. The doubling is clamped to MaxBytes so the loop never
// allocates or reads past the single-buffer cap; a buffer already at the
// cap cannot grow.
func grownSize(cur int64) (int64, bool) {
	if cur >= MaxBytes {
		return 0, false
	}
	next := cur * 2
	if next > MaxBytes {
		next = MaxBytes
	}
	return next, true
}

// Close releases the underlying stream when the Source owns it. Calling
// Close more than once is a no-op.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.owns {
		return nil
	}
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
