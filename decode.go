package dcx

import (
	"io"
	"os"

	"github.com/go-faster/errors"
)

// Decompress detects the container kind of data and returns its payload.
//
// Decompress returns ErrFormat if data is not a recognized container,
// ErrAssertion if a constant header field holds an unexpected value,
// ErrSizeMismatch if declared and actual sizes disagree, ErrLimitExceeded
// if a size exceeds the configured Limits, and ErrNoKrakenCodec for
// DCX_KRAK input when no codec was supplied with WithKrakenCodec.
// Truncated input yields an error matching io.ErrUnexpectedEOF.
//
// The detected kind is returned even when decoding fails.
func Decompress(data []byte, opts ...Option) ([]byte, Kind, error) {
	out, h, err := decode(data, newConfig(opts))
	return out, h.Kind, err
}

// DecompressReader reads a whole container from r and decompresses it.
func DecompressReader(r io.Reader, opts ...Option) ([]byte, Kind, error) {
	cfg := newConfig(opts)
	data, err := readAll(io.LimitReader(r, cfg.limits.MaxInputSize+1))
	if err != nil {
		return nil, Unknown, errors.Wrap(err, "read")
	}
	out, h, err := decode(data, cfg)
	return out, h.Kind, err
}

// DecompressFile decompresses the container stored at path.
func DecompressFile(path string, opts ...Option) ([]byte, Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Unknown, err
	}
	defer f.Close()
	return DecompressReader(f, opts...)
}

// Inspect fully decodes data and reports what its header declares,
// including the EDGE chunk table. The payload is discarded.
func Inspect(data []byte, opts ...Option) (Header, error) {
	_, h, err := decode(data, newConfig(opts))
	if err != nil {
		return Header{Kind: h.Kind}, err
	}
	return h, nil
}

func decode(data []byte, cfg *config) ([]byte, Header, error) {
	if err := cfg.limits.checkInput(len(data)); err != nil {
		return nil, Header{}, err
	}
	k := Detect(data)
	if k == Unknown {
		return nil, Header{}, ErrFormat
	}
	return decodeKind(k, data, cfg)
}
