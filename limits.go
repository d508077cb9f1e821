package dcx

import (
	"math"

	"github.com/go-faster/errors"
)

// Limits bounds the work a single call may do. Zero or negative fields take
// the defaults.
type Limits struct {
	MaxInputSize        int64 // container bytes accepted by the decoders
	MaxUncompressedSize int64 // declared or produced payload size
	MaxChunkCount       int   // EDGE chunk table entries
}

func defaultLimits() Limits {
	return Limits{
		MaxInputSize:        1 << 30, // 1 GiB
		MaxUncompressedSize: 1 << 30, // 1 GiB
		MaxChunkCount:       0x4000,  // 1 GiB of 64 KiB chunks
	}
}

// withDefaults replaces zero or negative fields with the defaults.
func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxInputSize <= 0 {
		l.MaxInputSize = d.MaxInputSize
	}
	// DecompressReader reads one byte past the limit.
	if l.MaxInputSize == math.MaxInt64 {
		l.MaxInputSize--
	}
	if l.MaxUncompressedSize <= 0 {
		l.MaxUncompressedSize = d.MaxUncompressedSize
	}
	if l.MaxChunkCount <= 0 {
		l.MaxChunkCount = d.MaxChunkCount
	}
	return l
}

// checkInput rejects containers larger than MaxInputSize.
func (l Limits) checkInput(n int) error {
	if int64(n) > l.MaxInputSize {
		return errors.Wrapf(ErrLimitExceeded, "input of %d bytes", n)
	}
	return nil
}

// checkUncompressed validates a declared uncompressed size before anything is allocated for it.
func (l Limits) checkUncompressed(n int64) error {
	if n < 0 {
		return errors.Wrapf(ErrSizeMismatch, "negative uncompressed size %d", n)
	}
	if n > l.MaxUncompressedSize || n > math.MaxInt32 {
		return errors.Wrapf(ErrLimitExceeded, "uncompressed size %d", n)
	}
	return nil
}

func (l Limits) checkChunkCount(n int32) error {
	if n < 0 {
		return errors.Wrapf(ErrSizeMismatch, "negative chunk count %d", n)
	}
	if int(n) > l.MaxChunkCount {
		return errors.Wrapf(ErrLimitExceeded, "chunk count %d", n)
	}
	return nil
}
