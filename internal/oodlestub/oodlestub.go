// Package oodlestub provides a kraken.Codec backed by LZ4 block compression.
//
// Containers it produces carry a valid DCX_KRAK header but an LZ4 payload, so
// only this package can read them back. It exists for tests and tooling demos.
package oodlestub

import (
	"github.com/go-faster/errors"
	"github.com/pierrec/lz4/v4"

	"github.com/logicossoftware/go-dcx/kraken"
)

const (
	blockRaw byte = 0
	blockLZ4 byte = 1
)

// Codec implements kraken.Codec. Normal uses the fast LZ4 compressor, Max uses LZ4HC.
type Codec struct{}

var _ kraken.Codec = Codec{}

// Compress encodes src as a one-byte block marker followed by an LZ4 block,
// or by src itself when LZ4 cannot shrink it.
func (Codec) Compress(src []byte, level kraken.Level) ([]byte, error) {
	dst := make([]byte, 1+lz4.CompressBlockBound(len(src)))
	var (
		n   int
		err error
	)
	switch level {
	case kraken.Max:
		c := lz4.CompressorHC{Level: lz4.Level9}
		n, err = c.CompressBlock(src, dst[1:])
	case kraken.Normal:
		var c lz4.Compressor
		n, err = c.CompressBlock(src, dst[1:])
	default:
		return nil, errors.Errorf("unsupported level %s", level)
	}
	if err != nil {
		return nil, errors.Wrap(err, "lz4")
	}
	if n == 0 || n >= len(src) {
		return append([]byte{blockRaw}, src...), nil
	}
	dst[0] = blockLZ4
	return dst[:n+1], nil
}

// Decompress reverses Compress.
func (Codec) Decompress(src []byte, size int) ([]byte, error) {
	if len(src) == 0 {
		return nil, errors.New("empty block")
	}
	switch src[0] {
	case blockRaw:
		if len(src)-1 != size {
			return nil, errors.Errorf("raw block of %d bytes, want %d", len(src)-1, size)
		}
		return append([]byte(nil), src[1:]...), nil
	case blockLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(src[1:], out)
		if err != nil {
			return nil, errors.Wrap(err, "lz4")
		}
		if n != size {
			return nil, errors.Errorf("block decoded to %d bytes, want %d", n, size)
		}
		return out, nil
	default:
		return nil, errors.Errorf("unknown block marker %#x", src[0])
	}
}
