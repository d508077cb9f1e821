// Package kraken defines the boundary to the external Kraken compressor used
// by DCX_KRAK containers.
//
// The compressor itself is a proprietary native library and is not bundled.
// Callers that need DCX_KRAK support supply a Codec to the dcx package.
package kraken

import "fmt"

// Level is the compression effort. Its value is the level byte stored in the
// DCX_KRAK header.
type Level uint8

const (
	Normal Level = 6 // OodleLZ_CompressionLevel_Optimal2
	Max    Level = 9 // OodleLZ_CompressionLevel_Optimal5
)

func (l Level) String() string {
	switch l {
	case Normal:
		return "Optimal2"
	case Max:
		return "Optimal5"
	default:
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
}

// Codec compresses and decompresses raw Kraken blocks.
//
// Decompress receives the exact uncompressed size declared by the container
// and must return exactly that many bytes or an error.
type Codec interface {
	Compress(src []byte, level Level) ([]byte, error)
	Decompress(src []byte, size int) ([]byte, error)
}
