package binrw

import (
	"encoding/binary"

	"github.com/go-faster/errors"
)

// Patch is a reserved fixed-width field waiting for its value.
type Patch struct {
	off    int
	filled bool
}

// Offset returns where the reserved field starts.
func (p *Patch) Offset() int { return p.off }

// Writer encodes fixed-width values into an in-memory buffer.
type Writer struct {
	buf     []byte
	order   binary.ByteOrder
	pending int
}

// NewWriter returns an empty Writer.
func NewWriter(bigEndian bool) *Writer {
	w := &Writer{}
	w.SetBigEndian(bigEndian)
	return w
}

// SetBigEndian switches the byte order used by integer writes.
func (w *Writer) SetBigEndian(v bool) {
	if v {
		w.order = binary.BigEndian
	} else {
		w.order = binary.LittleEndian
	}
}

// Pos returns the current length of the output.
func (w *Writer) Pos() int { return len(w.buf) }

// Write implements io.Writer so streaming encoders can emit straight into the output.
func (w *Writer) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// PutRaw appends v as is.
func (w *Writer) PutRaw(v []byte) {
	w.buf = append(w.buf, v...)
}

// PutByte appends a single byte.
func (w *Writer) PutByte(x byte) {
	w.buf = append(w.buf, x)
}

// PutASCII appends the bytes of s without a terminator.
func (w *Writer) PutASCII(s string) {
	w.buf = append(w.buf, s...)
}

// PutUInt32 appends an unsigned 32-bit integer.
func (w *Writer) PutUInt32(x uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], x)
	w.buf = append(w.buf, b[:]...)
}

// PutInt32 appends a signed 32-bit integer.
func (w *Writer) PutInt32(x int32) {
	w.PutUInt32(uint32(x))
}

// Pad appends zero bytes until the output length is a multiple of align.
func (w *Writer) Pad(align int) {
	for len(w.buf)%align != 0 {
		w.buf = append(w.buf, 0)
	}
}

// ReserveInt32 writes a 4-byte placeholder and returns the patch that fills it.
func (w *Writer) ReserveInt32() *Patch {
	p := &Patch{off: len(w.buf)}
	w.buf = append(w.buf, 0, 0, 0, 0)
	w.pending++
	return p
}

// FillInt32 writes x into a reserved field. Filling a patch twice panics.
func (w *Writer) FillInt32(p *Patch, x int32) {
	if p.filled {
		panic("binrw: patch filled twice")
	}
	w.order.PutUint32(w.buf[p.off:p.off+4], uint32(x))
	p.filled = true
	w.pending--
}

// Finish returns the encoded bytes, failing if any reservation was never filled.
func (w *Writer) Finish() ([]byte, error) {
	if w.pending != 0 {
		return nil, errors.Errorf("binrw: %d reserved fields not filled", w.pending)
	}
	return w.buf, nil
}
