package dcx

import (
	"github.com/go-faster/errors"

	"github.com/logicossoftware/go-dcx/binrw"
)

// deflateProfile holds the header constants that tell the DCX_DFLT variants apart.
type deflateProfile struct {
	kind  Kind
	unk04 int32
	unk10 int32
	unk14 int32
	unk30 byte // deflate level
	unk38 byte
}

var deflateProfiles = []deflateProfile{
	{kind: DCXDeflate10000_24_9, unk04: 0x10000, unk10: 0x24, unk14: 0x2C, unk30: 9},
	{kind: DCXDeflate10000_44_9, unk04: 0x10000, unk10: 0x44, unk14: 0x4C, unk30: 9},
	{kind: DCXDeflate11000_44_8, unk04: 0x11000, unk10: 0x44, unk14: 0x4C, unk30: 8},
	{kind: DCXDeflate11000_44_9, unk04: 0x11000, unk10: 0x44, unk14: 0x4C, unk30: 9},
	{kind: DCXDeflate11000_44_9_15, unk04: 0x11000, unk10: 0x44, unk14: 0x4C, unk30: 9, unk38: 15},
}

func profileOf(k Kind) (deflateProfile, bool) {
	for _, p := range deflateProfiles {
		if p.kind == k {
			return p, true
		}
	}
	return deflateProfile{}, false
}

// readZlibPayload inflates the zlib stream of h.CompressedSize bytes at the
// cursor into exactly h.UncompressedSize bytes.
func readZlibPayload(r *binrw.Reader, h *Header) ([]byte, error) {
	body, err := zlibBody(r, h.CompressedSize)
	if err != nil {
		return nil, err
	}
	return inflateExact(body, h.UncompressedSize)
}

func decodeZlib(r *binrw.Reader, cfg *config, h *Header) ([]byte, error) {
	h.CompressedSize = r.Len()
	body, err := zlibBody(r, r.Len())
	if err != nil {
		return nil, err
	}
	limit := min(cfg.limits.MaxUncompressedSize, maxPayload)
	out, err := inflate(body, limit)
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		return nil, errors.Wrapf(ErrLimitExceeded, "zlib stream expands beyond %d bytes", limit)
	}
	h.UncompressedSize = len(out)
	return out, nil
}

func encodeZlib(w *binrw.Writer, data []byte) error {
	_, err := writeZlib(w, data)
	return err
}

func decodeDCPDeflate(r *binrw.Reader, cfg *config, h *Header) ([]byte, error) {
	if err := r.AssertASCII(magicDCP); err != nil {
		return nil, err
	}
	if err := r.AssertASCII(algDFLT); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, 0x20, 0x9000000, 0, 0, 0, 0x00010100); err != nil {
		return nil, err
	}
	if err := readSizes(r, cfg.limits, h); err != nil {
		return nil, err
	}
	out, err := readZlibPayload(r, h)
	if err != nil {
		return nil, err
	}
	if err := r.AssertASCII(magicDCA); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, dcaPlainSize); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeDCPDeflate(w *binrw.Writer, data []byte) error {
	w.PutASCII(magicDCP)
	w.PutASCII(algDFLT)
	putInt32s(w, 0x20, 0x9000000, 0, 0, 0, 0x00010100)
	w.PutASCII(magicDCS)
	w.PutInt32(int32(len(data)))
	csize := w.ReserveInt32()
	n, err := writeZlib(w, data)
	if err != nil {
		return err
	}
	w.FillInt32(csize, int32(n))
	w.PutASCII(magicDCA)
	w.PutInt32(dcaPlainSize)
	return nil
}

func decodeDCXDeflate(r *binrw.Reader, p deflateProfile, cfg *config, h *Header) ([]byte, error) {
	if err := r.AssertASCII(magicDCX); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, p.unk04, 0x18, 0x24, p.unk10, p.unk14); err != nil {
		return nil, err
	}
	if err := readSizes(r, cfg.limits, h); err != nil {
		return nil, err
	}
	if err := r.AssertASCII(magicDCP); err != nil {
		return nil, err
	}
	if err := r.AssertASCII(algDFLT); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, 0x20); err != nil {
		return nil, err
	}
	if err := assertBytes(r, p.unk30, 0, 0, 0); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, 0); err != nil {
		return nil, err
	}
	if err := assertBytes(r, p.unk38, 0, 0, 0); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, 0, 0x00010100); err != nil {
		return nil, err
	}
	if err := r.AssertASCII(magicDCA); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, dcaPlainSize); err != nil {
		return nil, err
	}
	return readZlibPayload(r, h)
}

func encodeDCXDeflate(w *binrw.Writer, p deflateProfile, data []byte) error {
	w.PutASCII(magicDCX)
	putInt32s(w, p.unk04, 0x18, 0x24, p.unk10, p.unk14)
	w.PutASCII(magicDCS)
	w.PutInt32(int32(len(data)))
	csize := w.ReserveInt32()
	w.PutASCII(magicDCP)
	w.PutASCII(algDFLT)
	w.PutInt32(0x20)
	w.PutRaw([]byte{p.unk30, 0, 0, 0})
	w.PutInt32(0)
	w.PutRaw([]byte{p.unk38, 0, 0, 0})
	putInt32s(w, 0, 0x00010100)
	w.PutASCII(magicDCA)
	w.PutInt32(dcaPlainSize)
	n, err := writeZlib(w, data)
	if err != nil {
		return err
	}
	w.FillInt32(csize, int32(n))
	return nil
}
