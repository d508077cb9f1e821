// Package binder implements the format and per-file flag bytes shared by the
// BND3, BND4, BXF3 and BXF4 archive headers.
//
// Both bytes are stored bit-reversed relative to their logical value unless the
// archive declares a big-endian bit order. The format byte additionally
// self-selects its orientation when that declaration is absent: a raw byte with
// bit 0 set and bit 7 clear is taken as is.
package binder

import (
	"math/bits"
	"strings"

	"github.com/logicossoftware/go-dcx/binrw"
)

// Format is the binder capability byte.
type Format byte

const (
	FormatNone        Format = 0
	FormatBigEndian   Format = 0b0000_0001 // big-endian regardless of the header's endian byte
	FormatIDs         Format = 0b0000_0010
	FormatNames1      Format = 0b0000_0100
	FormatNames2      Format = 0b0000_1000
	FormatLongOffsets Format = 0b0001_0000
	FormatCompression Format = 0b0010_0000
	FormatFlag6       Format = 0b0100_0000
	FormatFlag7       Format = 0b1000_0000
)

var formatNames = []struct {
	bit  Format
	name string
}{
	{FormatBigEndian, "BigEndian"},
	{FormatIDs, "IDs"},
	{FormatNames1, "Names1"},
	{FormatNames2, "Names2"},
	{FormatLongOffsets, "LongOffsets"},
	{FormatCompression, "Compression"},
	{FormatFlag6, "Flag6"},
	{FormatFlag7, "Flag7"},
}

func (f Format) String() string {
	if f == FormatNone {
		return "None"
	}
	var parts []string
	for _, n := range formatNames {
		if f&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

func (f Format) ForceBigEndian() bool { return f&FormatBigEndian != 0 }
func (f Format) HasIDs() bool         { return f&FormatIDs != 0 }
func (f Format) HasNames() bool       { return f&(FormatNames1|FormatNames2) != 0 }
func (f Format) HasLongOffsets() bool { return f&FormatLongOffsets != 0 }
func (f Format) HasCompression() bool { return f&FormatCompression != 0 }
func (f Format) HasFlag6() bool       { return f&FormatFlag6 != 0 }
func (f Format) HasFlag7() bool       { return f&FormatFlag7 != 0 }

// BND4FileHeaderSize returns the size of one BND4/BXF4 file header entry.
func (f Format) BND4FileHeaderSize() int64 {
	size := int64(0x10)
	if f.HasLongOffsets() {
		size += 8
	} else {
		size += 4
	}
	if f.HasCompression() {
		size += 8
	}
	if f.HasIDs() {
		size += 4
	}
	if f.HasNames() {
		size += 4
	}
	// Names1 alone carries an extra 8-byte field.
	if f == FormatNames1 {
		size += 8
	}
	return size
}

// FileFlags is the per-file flag byte.
type FileFlags byte

const (
	FileNone       FileFlags = 0
	FileCompressed FileFlags = 0b0000_0001
	FileFlag1      FileFlags = 0b0000_0010 // set on nearly every file
	FileFlag2      FileFlags = 0b0000_0100
	FileFlag3      FileFlags = 0b0000_1000
	FileFlag4      FileFlags = 0b0001_0000
	FileFlag5      FileFlags = 0b0010_0000
	FileFlag6      FileFlags = 0b0100_0000
	FileFlag7      FileFlags = 0b1000_0000
)

var fileFlagNames = [8]string{"Compressed", "Flag1", "Flag2", "Flag3", "Flag4", "Flag5", "Flag6", "Flag7"}

func (f FileFlags) String() string {
	if f == FileNone {
		return "None"
	}
	var parts []string
	for i, name := range fileFlagNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// IsCompressed reports whether the file data is DCX-compressed.
func (f FileFlags) IsCompressed() bool { return f&FileCompressed != 0 }

// ReverseBits swaps bit 0 with bit 7, bit 1 with bit 6, and so on.
func ReverseBits(b byte) byte { return bits.Reverse8(b) }

// DecodeFormat converts a stored format byte to its logical value.
// Without the big-endian bit order, a raw byte with bit 0 set and bit 7 clear
// is already logical and is returned as is, matching the format's reference reader.
func DecodeFormat(raw byte, bitBigEndian bool) Format {
	if bitBigEndian || (raw&0b0000_0001 != 0 && raw&0b1000_0000 == 0) {
		return Format(raw)
	}
	return Format(ReverseBits(raw))
}

// EncodeFormat converts a logical format to the byte stored on disk.
func EncodeFormat(f Format, bitBigEndian bool) byte {
	if bitBigEndian || f.ForceBigEndian() {
		return byte(f)
	}
	return ReverseBits(byte(f))
}

// DecodeFileFlags converts a stored file flag byte to its logical value.
func DecodeFileFlags(raw byte, bitBigEndian bool) FileFlags {
	if bitBigEndian {
		return FileFlags(raw)
	}
	return FileFlags(ReverseBits(raw))
}

// EncodeFileFlags converts logical file flags to the byte stored on disk.
func EncodeFileFlags(f FileFlags, bitBigEndian bool) byte {
	if bitBigEndian {
		return byte(f)
	}
	return ReverseBits(byte(f))
}

// ReadFormat reads and decodes a format byte.
func ReadFormat(r *binrw.Reader, bitBigEndian bool) (Format, error) {
	raw, err := r.Byte()
	if err != nil {
		return FormatNone, err
	}
	return DecodeFormat(raw, bitBigEndian), nil
}

// WriteFormat encodes and writes a format byte.
func WriteFormat(w *binrw.Writer, bitBigEndian bool, f Format) {
	w.PutByte(EncodeFormat(f, bitBigEndian))
}

// ReadFileFlags reads and decodes a file flag byte.
func ReadFileFlags(r *binrw.Reader, bitBigEndian bool) (FileFlags, error) {
	raw, err := r.Byte()
	if err != nil {
		return FileNone, err
	}
	return DecodeFileFlags(raw, bitBigEndian), nil
}

// WriteFileFlags encodes and writes a file flag byte.
func WriteFileFlags(w *binrw.Writer, bitBigEndian bool, f FileFlags) {
	w.PutByte(EncodeFileFlags(f, bitBigEndian))
}
