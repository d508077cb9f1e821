package dcx

import (
	"bytes"
	"io"

	"github.com/go-faster/errors"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/logicossoftware/go-dcx/binrw"
)

// Function variables for testing injection.
var (
	newFlateWriter = func(w io.Writer) (*flate.Writer, error) { return flate.NewWriter(w, flate.BestCompression) }
	newZlibWriter  = func(w io.Writer) (*zlib.Writer, error) { return zlib.NewWriterLevel(w, zlib.BestCompression) }
	flateClose     = func(w *flate.Writer) error { return w.Close() }
	zlibClose      = func(w *zlib.Writer) error { return w.Close() }
	readAll        = io.ReadAll
)

// inflate decodes a raw deflate stream. It reads at most max+1 bytes so
// callers can tell an overflow from an exact fit.
func inflate(src []byte, max int64) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(src))
	defer fr.Close()
	out, err := readAll(io.LimitReader(fr, max+1))
	if err != nil {
		return nil, errors.Wrap(err, "inflate")
	}
	return out, nil
}

// inflateExact decodes a raw deflate stream that must produce exactly size bytes.
func inflateExact(src []byte, size int) ([]byte, error) {
	out, err := inflate(src, int64(size))
	if err != nil {
		return nil, err
	}
	if len(out) != size {
		return nil, errors.Wrapf(ErrSizeMismatch, "inflated %d bytes, want %d", len(out), size)
	}
	return out, nil
}

// deflateRaw compresses in as a single raw deflate stream.
func deflateRaw(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	fw, err := newFlateWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(in); err != nil {
		_ = flateClose(fw)
		return nil, err
	}
	if err := flateClose(fw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// zlibBody consumes an n-byte zlib stream at the cursor and returns its deflate
// body. The trailing checksum stays attached; inflate stops before it.
func zlibBody(r *binrw.Reader, n int) ([]byte, error) {
	if n < 2 {
		return nil, errors.Wrapf(ErrSizeMismatch, "zlib stream of %d bytes", n)
	}
	if _, err := r.AssertByte(zlibMethod); err != nil {
		return nil, err
	}
	if _, err := r.AssertByte(zlibLevels...); err != nil {
		return nil, err
	}
	return r.Bytes(n - 2)
}

// writeZlib appends a best-compression zlib stream of in and returns its length.
func writeZlib(w *binrw.Writer, in []byte) (int, error) {
	start := w.Pos()
	zw, err := newZlibWriter(w)
	if err != nil {
		return 0, err
	}
	if _, err := zw.Write(in); err != nil {
		_ = zlibClose(zw)
		return 0, err
	}
	if err := zlibClose(zw); err != nil {
		return 0, err
	}
	return w.Pos() - start, nil
}
