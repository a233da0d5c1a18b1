package tqvault

import (
	"encoding/binary"
	"fmt"
	"io"
)

// reader is a cursor over the in-memory raw buffer. All decoding goes
// through it so region offsets fall out of the cursor position directly.
type reader struct {
	buf    []byte
	off    int
	limits Limits
}

func newReader(buf []byte, off int, limits Limits) *reader {
	return &reader{buf: buf, off: off, limits: limits}
}

func (r *reader) offset() int { return r.off }

func (r *reader) remaining() int { return len(r.buf) - r.off }

func (r *reader) skip(n int) error {
	if n < 0 || r.remaining() < n {
		return fmt.Errorf("%w: cannot skip %d bytes at offset %d", ErrFormat, n, r.off)
	}
	r.off += n
	return nil
}

func (r *reader) readInt32() (int32, error) {
	if r.remaining() < 4 {
		return 0, fmt.Errorf("%w: truncated int32 at offset %d", ErrFormat, r.off)
	}
	v := int32(binary.LittleEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	return v, nil
}

// readString reads a 4-byte little-endian length followed by that many raw
// bytes, one byte per character. A length that overruns the buffer is a
// read failure; there is no other sanity check on the value.
func (r *reader) readString() (string, error) {
	start := r.off
	if r.remaining() < 4 {
		return "", fmt.Errorf("%w: truncated string length at offset %d", ErrFormat, start)
	}
	n := binary.LittleEndian.Uint32(r.buf[r.off:])
	if n > r.limits.MaxStringLen {
		return "", fmt.Errorf("%w: string length %d at offset %d", ErrLimitExceeded, n, start)
	}
	r.off += 4
	if uint32(r.remaining()) < n {
		r.off = start
		return "", fmt.Errorf("%w: string length %d overruns buffer at offset %d", ErrFormat, n, start)
	}
	s := string(r.buf[r.off : r.off+int(n)])
	r.off += int(n)
	return s, nil
}

// expectString reads a string and fails unless it equals expected. The
// format guarantees literal field tags at fixed points; a mismatch means
// the file is unparseable, not merely unusual.
func (r *reader) expectString(expected string) error {
	at := r.off
	got, err := r.readString()
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("%w: expected %q at offset %d, got %q", ErrFormat, expected, at, got)
	}
	return nil
}

// expectTaggedInt32 reads a literal tag followed by its int32 value.
func (r *reader) expectTaggedInt32(tag string) (int32, error) {
	if err := r.expectString(tag); err != nil {
		return 0, err
	}
	return r.readInt32()
}

// expectTaggedString reads a literal tag followed by its string value.
func (r *reader) expectTaggedString(tag string) (string, error) {
	if err := r.expectString(tag); err != nil {
		return "", err
	}
	return r.readString()
}

func writeString(w io.Writer, s string) error {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(s)))
	if _, err := w.Write(n[:]); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeInt32(w io.Writer, v int32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	_, err := w.Write(b[:])
	return err
}

func writeTaggedInt32(w io.Writer, tag string, v int32) error {
	if err := writeString(w, tag); err != nil {
		return err
	}
	return writeInt32(w, v)
}

func writeTaggedString(w io.Writer, tag, s string) error {
	if err := writeString(w, tag); err != nil {
		return err
	}
	return writeString(w, s)
}

// encodedTag returns the on-disk bytes of a length-prefixed tag. Used to
// probe the raw buffer without committing a reader to it.
func encodedTag(tag string) []byte {
	b := make([]byte, 4+len(tag))
	binary.LittleEndian.PutUint32(b, uint32(len(tag)))
	copy(b[4:], tag)
	return b
}
