package dcx

import (
	"math"

	"github.com/go-faster/errors"

	"github.com/logicossoftware/go-dcx/binrw"
)

const (
	magicDCP  = "DCP\x00"
	magicDCX  = "DCX\x00"
	magicDCS  = "DCS\x00"
	magicDCA  = "DCA\x00"
	magicEgdT = "EgdT"

	algEDGE = "EDGE"
	algDFLT = "DFLT"
	algKRAK = "KRAK"

	edgeChunkSize  = 0x10000
	edgeChunkAlign = 0x10
	chunkEntrySize = 0x10
	dcaPlainSize   = 8 // DCA block with no algorithm table

	// maxPayload is the largest size the 32-bit header fields can carry.
	maxPayload int64 = math.MaxInt32

	zlibMethod byte = 0x78
)

// zlibLevels are the second header bytes of the zlib streams accepted here.
var zlibLevels = []byte{0x01, 0x5E, 0x9C, 0xDA}

// assertInt32s reads consecutive int32 fields, each of which must equal its counterpart in want.
func assertInt32s(r *binrw.Reader, want ...int32) error {
	for _, v := range want {
		if _, err := r.AssertInt32(v); err != nil {
			return err
		}
	}
	return nil
}

func assertBytes(r *binrw.Reader, want ...byte) error {
	for _, v := range want {
		if _, err := r.AssertByte(v); err != nil {
			return err
		}
	}
	return nil
}

func putInt32s(w *binrw.Writer, v ...int32) {
	for _, x := range v {
		w.PutInt32(x)
	}
}

// readSizes reads the DCS block that follows every container header.
func readSizes(r *binrw.Reader, l Limits, h *Header) error {
	if err := r.AssertASCII(magicDCS); err != nil {
		return err
	}
	usize, err := r.Int32()
	if err != nil {
		return err
	}
	if err := l.checkUncompressed(int64(usize)); err != nil {
		return err
	}
	csize, err := r.Int32()
	if err != nil {
		return err
	}
	if csize < 0 {
		return errors.Wrapf(ErrSizeMismatch, "negative compressed size %d", csize)
	}
	h.UncompressedSize = int(usize)
	h.CompressedSize = int(csize)
	return nil
}

// checkOutput fails unless out has the size the header declared.
func checkOutput(out []byte, h *Header) error {
	if len(out) != h.UncompressedSize {
		return errors.Wrapf(ErrSizeMismatch, "decoded %d bytes, header declares %d", len(out), h.UncompressedSize)
	}
	return nil
}
