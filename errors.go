package dcx

import (
	"github.com/go-faster/errors"

	"github.com/logicossoftware/go-dcx/binrw"
)

var (
	ErrFormat        = errors.New("dcx: unrecognized format")
	ErrAssertion     = binrw.ErrAssertion
	ErrUnsupported   = errors.New("dcx: unsupported kind")
	ErrSizeMismatch  = errors.New("dcx: size mismatch")
	ErrLimitExceeded = errors.New("dcx: limit exceeded")
	ErrValidation    = errors.New("dcx: validation failed")

	// ErrNotImplemented and ErrNoKrakenCodec both match ErrUnsupported.
	ErrNotImplemented = errors.Errorf("dcx: no encoder for kind: %w", ErrUnsupported)
	ErrNoKrakenCodec  = errors.Errorf("dcx: no kraken codec configured: %w", ErrUnsupported)
)
