package main

import (
	"math"

	"github.com/go-faster/errors"

	dcx "github.com/logicossoftware/go-dcx"
)

// kindFromInt converts a kind number received over the C ABI. Values outside
// the uint8 range are rejected rather than truncated.
func kindFromInt(n int) (dcx.Kind, error) {
	if n < 0 || n > math.MaxUint8 {
		return dcx.Unknown, errors.Wrapf(dcx.ErrUnsupported, "kind %d", n)
	}
	return dcx.Kind(n), nil
}
