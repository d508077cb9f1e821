package dcx

import (
	"io"
	"os"

	"github.com/go-faster/errors"
)

// Function variables for testing injection.
var writeFile = os.WriteFile

// Compress wraps data in a container of the given kind.
//
// Compress returns ErrUnsupported for Unknown or out-of-range kinds,
// ErrNotImplemented for None, ErrNoKrakenCodec for DCX_KRAK kinds without a
// codec, and ErrLimitExceeded if data is larger than the configured Limits or
// than a 32-bit size field can describe. These checks run before any
// compression work.
func Compress(data []byte, kind Kind, opts ...Option) ([]byte, error) {
	return encodeKind(kind, data, newConfig(opts))
}

// CompressTo compresses data and writes the container to w.
func CompressTo(w io.Writer, data []byte, kind Kind, opts ...Option) error {
	out, err := Compress(data, kind, opts...)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return errors.Wrap(err, "write")
	}
	return nil
}

// CompressFile compresses data and writes the container to path. Nothing is
// written if compression fails.
func CompressFile(path string, data []byte, kind Kind, opts ...Option) error {
	out, err := Compress(data, kind, opts...)
	if err != nil {
		return err
	}
	return writeFile(path, out, 0o644)
}
