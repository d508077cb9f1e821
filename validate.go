package dcx

import (
	"github.com/go-faster/errors"
)

// Validate decodes data and checks the container layout beyond what decoding
// alone requires: an EDGE table must hold one entry per 64 KiB of payload and
// its chunks must be aligned, in order and non-overlapping.
//
// Layout problems are reported as ErrValidation; decode failures are returned
// as Decompress would return them.
func Validate(data []byte, opts ...Option) error {
	h, err := Inspect(data, opts...)
	if err != nil {
		return err
	}
	return validateHeader(h)
}

func validateHeader(h Header) error {
	if !h.Kind.IsEdge() {
		if len(h.Chunks) != 0 {
			return errors.Wrapf(ErrValidation, "%s carries a chunk table", h.Kind)
		}
		return nil
	}
	if want := edgeChunkCount(h.UncompressedSize); len(h.Chunks) != want {
		return errors.Wrapf(ErrValidation, "%d chunks for %d bytes, want %d", len(h.Chunks), h.UncompressedSize, want)
	}
	var end uint64
	for i, c := range h.Chunks {
		if c.Offset%edgeChunkAlign != 0 {
			return errors.Wrapf(ErrValidation, "chunk %d at %#x is not %d-byte aligned", i, c.Offset, edgeChunkAlign)
		}
		if uint64(c.Offset) < end {
			return errors.Wrapf(ErrValidation, "chunk %d at %#x overlaps the previous chunk", i, c.Offset)
		}
		if c.Size > edgeChunkSize {
			return errors.Wrapf(ErrValidation, "chunk %d stores %d bytes", i, c.Size)
		}
		end = uint64(c.Offset) + uint64(c.Size)
	}
	return nil
}
