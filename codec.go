package dcx

import (
	"github.com/go-faster/errors"

	"github.com/logicossoftware/go-dcx/binrw"
)

// decodeKind decodes data as a container of kind k. All container headers are big-endian.
func decodeKind(k Kind, data []byte, cfg *config) ([]byte, Header, error) {
	r := binrw.NewReader(data, true)
	h := Header{Kind: k}
	var (
		out []byte
		err error
	)
	switch k {
	case Zlib:
		out, err = decodeZlib(r, cfg, &h)
	case DCPEdge:
		out, err = decodeDCPEdge(r, cfg, &h)
	case DCPDeflate:
		out, err = decodeDCPDeflate(r, cfg, &h)
	case DCXEdge:
		out, err = decodeDCXEdge(r, cfg, &h)
	case DCXDeflate10000_24_9, DCXDeflate10000_44_9, DCXDeflate11000_44_8, DCXDeflate11000_44_9, DCXDeflate11000_44_9_15:
		p, _ := profileOf(k)
		out, err = decodeDCXDeflate(r, p, cfg, &h)
	case DCXKraken, DCXKrakenMax:
		out, err = decodeDCXKraken(r, krakenLevel(k), cfg, &h)
	default:
		return nil, h, errors.Wrapf(ErrFormat, "kind %s", k)
	}
	if err != nil {
		return nil, h, errors.Wrapf(err, "decode %s", k)
	}
	if err := checkOutput(out, &h); err != nil {
		return nil, h, errors.Wrapf(err, "decode %s", k)
	}
	return out, h, nil
}

// checkEncodable rejects kinds that cannot be produced with cfg before any byte is written.
func checkEncodable(k Kind, n int, cfg *config) error {
	switch {
	case k == None:
		return ErrNotImplemented
	case !k.valid():
		return errors.Wrapf(ErrUnsupported, "kind %s", k)
	case k.IsKraken() && cfg.kraken == nil:
		return ErrNoKrakenCodec
	}
	if int64(n) > cfg.limits.MaxUncompressedSize || int64(n) > maxPayload {
		return errors.Wrapf(ErrLimitExceeded, "payload of %d bytes", n)
	}
	return nil
}

func encodeKind(k Kind, data []byte, cfg *config) ([]byte, error) {
	if err := checkEncodable(k, len(data), cfg); err != nil {
		return nil, err
	}
	w := binrw.NewWriter(true)
	var err error
	switch k {
	case Zlib:
		err = encodeZlib(w, data)
	case DCPEdge:
		err = encodeDCPEdge(w, data)
	case DCPDeflate:
		err = encodeDCPDeflate(w, data)
	case DCXEdge:
		err = encodeDCXEdge(w, data)
	case DCXKraken, DCXKrakenMax:
		err = encodeDCXKraken(w, krakenLevel(k), cfg.kraken, data)
	default:
		p, _ := profileOf(k)
		err = encodeDCXDeflate(w, p, data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", k)
	}
	return w.Finish()
}
