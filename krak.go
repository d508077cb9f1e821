package dcx

import (
	"github.com/go-faster/errors"

	"github.com/logicossoftware/go-dcx/binrw"
	"github.com/logicossoftware/go-dcx/kraken"
)

type (
	KrakenCodec = kraken.Codec
	KrakenLevel = kraken.Level
)

const (
	KrakenNormal = kraken.Normal
	KrakenMax    = kraken.Max
)

func krakenLevel(k Kind) KrakenLevel {
	if k == DCXKrakenMax {
		return KrakenMax
	}
	return KrakenNormal
}

func decodeDCXKraken(r *binrw.Reader, level KrakenLevel, cfg *config, h *Header) ([]byte, error) {
	if err := r.AssertASCII(magicDCX); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, 0x11000, 0x18, 0x24, 0x44, 0x4C); err != nil {
		return nil, err
	}
	if err := r.AssertASCII(magicDCS); err != nil {
		return nil, err
	}
	usize, err := r.UInt32()
	if err != nil {
		return nil, err
	}
	if err := cfg.limits.checkUncompressed(int64(usize)); err != nil {
		return nil, err
	}
	csize, err := r.UInt32()
	if err != nil {
		return nil, err
	}
	h.UncompressedSize = int(usize)
	h.CompressedSize = int(csize)
	if err := r.AssertASCII(magicDCP); err != nil {
		return nil, err
	}
	if err := r.AssertASCII(algKRAK); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, 0x20); err != nil {
		return nil, err
	}
	if err := assertBytes(r, byte(level), 0, 0, 0); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, 0, 0, 0, 0x10100); err != nil {
		return nil, err
	}
	if err := r.AssertASCII(magicDCA); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, dcaPlainSize); err != nil {
		return nil, err
	}
	if int64(csize) > int64(r.Remaining()) {
		return nil, errors.Wrapf(ErrSizeMismatch, "payload of %d bytes, %d remain", csize, r.Remaining())
	}
	payload, err := r.Bytes(int(csize))
	if err != nil {
		return nil, err
	}
	if cfg.kraken == nil {
		return nil, ErrNoKrakenCodec
	}
	out, err := cfg.kraken.Decompress(payload, h.UncompressedSize)
	if err != nil {
		return nil, errors.Wrap(err, "kraken")
	}
	return out, nil
}

func encodeDCXKraken(w *binrw.Writer, level KrakenLevel, codec KrakenCodec, data []byte) error {
	payload, err := codec.Compress(data, level)
	if err != nil {
		return errors.Wrap(err, "kraken")
	}
	if int64(len(payload)) > maxPayload {
		return errors.Wrapf(ErrLimitExceeded, "kraken payload of %d bytes", len(payload))
	}
	w.PutASCII(magicDCX)
	putInt32s(w, 0x11000, 0x18, 0x24, 0x44, 0x4C)
	w.PutASCII(magicDCS)
	w.PutUInt32(uint32(len(data)))
	w.PutUInt32(uint32(len(payload)))
	w.PutASCII(magicDCP)
	w.PutASCII(algKRAK)
	w.PutInt32(0x20)
	w.PutRaw([]byte{byte(level), 0, 0, 0})
	putInt32s(w, 0, 0, 0, 0x10100)
	w.PutASCII(magicDCA)
	w.PutInt32(dcaPlainSize)
	w.PutRaw(payload)
	w.Pad(edgeChunkAlign)
	return nil
}
