// Package binrw implements positioned binary reading and writing with a
// switchable byte order, assertion reads for constant fields and
// back-patched forward references.
package binrw

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/go-faster/errors"
)

// ErrAssertion is matched by every *AssertionError.
var ErrAssertion = errors.New("binrw: assertion failed")

// AssertionError reports a field that did not hold any of its expected values.
type AssertionError struct {
	Offset int
	Field  string
	Got    string
	Want   []string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("binrw: %s at %#x: got %s, want %s", e.Field, e.Offset, e.Got, strings.Join(e.Want, " or "))
}

func (e *AssertionError) Unwrap() error { return ErrAssertion }

// Reader decodes fixed-width values from an in-memory buffer.
type Reader struct {
	buf   []byte
	pos   int
	order binary.ByteOrder
}

// NewReader returns a Reader positioned at the start of b.
func NewReader(b []byte, bigEndian bool) *Reader {
	r := &Reader{buf: b}
	r.SetBigEndian(bigEndian)
	return r
}

// SetBigEndian switches the byte order used by integer reads.
func (r *Reader) SetBigEndian(v bool) {
	if v {
		r.order = binary.BigEndian
	} else {
		r.order = binary.LittleEndian
	}
}

// BigEndian reports whether integers are read big-endian.
func (r *Reader) BigEndian() bool { return r.order == binary.BigEndian }

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int { return len(r.buf) }

// Pos returns the current offset.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of bytes after the current offset.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Seek moves to an absolute offset. Seeking to Len() is allowed.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.buf) {
		return errors.Wrapf(io.ErrUnexpectedEOF, "seek to %#x of %#x", pos, len(r.buf))
	}
	r.pos = pos
	return nil
}

// Skip advances by n bytes.
func (r *Reader) Skip(n int) error {
	if n < 0 || n > r.Remaining() {
		return errors.Wrapf(io.ErrUnexpectedEOF, "skip %d bytes at %#x", n, r.pos)
	}
	r.pos += n
	return nil
}

// StepIn runs fn with the cursor at pos and restores the previous offset
// afterwards, whatever fn returns.
func (r *Reader) StepIn(pos int, fn func() error) error {
	saved := r.pos
	if err := r.Seek(pos); err != nil {
		return err
	}
	defer func() { r.pos = saved }()
	return fn()
}

func (r *Reader) span(off, n int) ([]byte, error) {
	if n < 0 || off < 0 || off > len(r.buf) || n > len(r.buf)-off {
		return nil, errors.Wrapf(io.ErrUnexpectedEOF, "read %d bytes at %#x", n, off)
	}
	return r.buf[off : off+n], nil
}

func (r *Reader) next(n int) ([]byte, error) {
	b, err := r.span(r.pos, n)
	if err != nil {
		return nil, err
	}
	r.pos += n
	return b, nil
}

// Bytes reads n bytes.
//
// The result aliases the underlying buffer. Do not retain or modify it.
func (r *Reader) Bytes(n int) ([]byte, error) {
	return r.next(n)
}

// GetBytes returns n bytes at off without moving the cursor.
//
// The result aliases the underlying buffer.
func (r *Reader) GetBytes(off, n int) ([]byte, error) {
	return r.span(off, n)
}

// Byte reads one byte.
func (r *Reader) Byte() (byte, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// GetByte returns the byte at off without moving the cursor.
func (r *Reader) GetByte(off int) (byte, error) {
	b, err := r.span(off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// UInt32 reads an unsigned 32-bit integer.
func (r *Reader) UInt32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

// Int32 reads a signed 32-bit integer.
func (r *Reader) Int32() (int32, error) {
	v, err := r.UInt32()
	return int32(v), err
}

// GetInt32 returns the signed 32-bit integer at off without moving the cursor.
func (r *Reader) GetInt32(off int) (int32, error) {
	b, err := r.span(off, 4)
	if err != nil {
		return 0, err
	}
	return int32(r.order.Uint32(b)), nil
}

// ASCII reads an n-byte string. Embedded NULs are kept.
func (r *Reader) ASCII(n int) (string, error) {
	b, err := r.next(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GetASCII returns the n-byte string at off without moving the cursor.
func (r *Reader) GetASCII(off, n int) (string, error) {
	b, err := r.span(off, n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AssertASCII reads len(want) bytes and fails unless they equal want.
func (r *Reader) AssertASCII(want string) error {
	off := r.pos
	got, err := r.ASCII(len(want))
	if err != nil {
		return err
	}
	if got != want {
		return &AssertionError{Offset: off, Field: "ascii", Got: fmt.Sprintf("%q", got), Want: []string{fmt.Sprintf("%q", want)}}
	}
	return nil
}

// AssertByte reads a byte and fails unless it is one of want.
func (r *Reader) AssertByte(want ...byte) (byte, error) {
	off := r.pos
	got, err := r.Byte()
	if err != nil {
		return 0, err
	}
	for _, w := range want {
		if got == w {
			return got, nil
		}
	}
	e := &AssertionError{Offset: off, Field: "byte", Got: fmt.Sprintf("%#x", got)}
	for _, w := range want {
		e.Want = append(e.Want, fmt.Sprintf("%#x", w))
	}
	return 0, e
}

// AssertInt32 reads a signed 32-bit integer and fails unless it is one of want.
func (r *Reader) AssertInt32(want ...int32) (int32, error) {
	off := r.pos
	got, err := r.Int32()
	if err != nil {
		return 0, err
	}
	for _, w := range want {
		if got == w {
			return got, nil
		}
	}
	e := &AssertionError{Offset: off, Field: "int32", Got: fmt.Sprintf("%#x", got)}
	for _, w := range want {
		e.Want = append(e.Want, fmt.Sprintf("%#x", w))
	}
	return 0, e
}
