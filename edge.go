package dcx

import (
	"github.com/go-faster/errors"

	"github.com/logicossoftware/go-dcx/binrw"
)

// EDGE containers split the payload into 64 KiB chunks, each deflated on its
// own and listed in an EgdT table.

func decodeDCPEdge(r *binrw.Reader, cfg *config, h *Header) ([]byte, error) {
	if err := r.AssertASCII(magicDCP); err != nil {
		return nil, err
	}
	if err := r.AssertASCII(algEDGE); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, 0x20, 0x9000000, 0x10000, 0, 0, 0x00100100); err != nil {
		return nil, err
	}
	if err := readSizes(r, cfg.limits, h); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, 0); err != nil {
		return nil, err
	}
	dataStart := r.Pos()

	// The EgdT trailer follows the chunk data.
	var chunks []Chunk
	err := r.StepIn(dataStart+h.CompressedSize, func() error {
		if err := r.AssertASCII(magicDCA); err != nil {
			return err
		}
		if _, err := r.Int32(); err != nil { // DCA size
			return err
		}
		if err := r.AssertASCII(magicEgdT); err != nil {
			return err
		}
		if err := assertInt32s(r, 0x00010000, 0x20, 0x10, 0x10000); err != nil {
			return err
		}
		var err error
		chunks, err = readEgdtTable(r, cfg.limits, 0x20)
		return err
	})
	if err != nil {
		return nil, err
	}
	h.Chunks = chunks
	return inflateChunks(r, dataStart, chunks, h.UncompressedSize)
}

func encodeDCPEdge(w *binrw.Writer, data []byte) error {
	w.PutASCII(magicDCP)
	w.PutASCII(algEDGE)
	putInt32s(w, 0x20, 0x9000000, 0x10000, 0, 0, 0x00100100)
	w.PutASCII(magicDCS)
	w.PutInt32(int32(len(data)))
	csize := w.ReserveInt32()
	w.PutInt32(0)

	dataStart := w.Pos()
	chunks, _, err := writeChunkData(w, dataStart, data)
	if err != nil {
		return err
	}
	w.FillInt32(csize, int32(w.Pos()-dataStart))

	egdtSize := int32(0x20 + len(chunks)*chunkEntrySize)
	w.PutASCII(magicDCA)
	w.PutInt32(dcaPlainSize + egdtSize)
	w.PutASCII(magicEgdT)
	putInt32s(w, 0x00010000, 0x20, 0x10, 0x10000, egdtSize, int32(len(chunks)), 0x100000)
	for _, c := range chunks {
		putInt32s(w, 0, int32(c.Offset), int32(c.Size), boolInt32(c.Compressed))
	}
	return nil
}

func decodeDCXEdge(r *binrw.Reader, cfg *config, h *Header) ([]byte, error) {
	if err := r.AssertASCII(magicDCX); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, 0x10000, 0x18, 0x24, 0x24); err != nil {
		return nil, err
	}
	unk14, err := r.Int32()
	if err != nil {
		return nil, err
	}
	if err := readSizes(r, cfg.limits, h); err != nil {
		return nil, err
	}
	if err := r.AssertASCII(magicDCP); err != nil {
		return nil, err
	}
	if err := r.AssertASCII(algEDGE); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, 0x20, 0x9000000, 0x10000, 0, 0, 0x00100100); err != nil {
		return nil, err
	}

	dcaStart := r.Pos()
	if err := r.AssertASCII(magicDCA); err != nil {
		return nil, err
	}
	dcaSize, err := r.Int32()
	if err != nil {
		return nil, err
	}
	if err := r.AssertASCII(magicEgdT); err != nil {
		return nil, err
	}
	if err := assertInt32s(r, 0x00010100, 0x24, 0x10, 0x10000); err != nil {
		return nil, err
	}
	// Size of the last chunk; whole multiples may store either 0 or 0x10000.
	if _, err := r.AssertInt32(int32(h.UncompressedSize%edgeChunkSize), edgeChunkSize); err != nil {
		return nil, err
	}
	chunks, err := readEgdtTable(r, cfg.limits, 0x24)
	if err != nil {
		return nil, err
	}
	if want := int32(0x50 + len(chunks)*chunkEntrySize); unk14 != want {
		return nil, errors.Wrapf(ErrSizeMismatch, "header size field %#x, want %#x", unk14, want)
	}
	h.Chunks = chunks
	return inflateChunks(r, dcaStart+int(dcaSize), chunks, h.UncompressedSize)
}

func encodeDCXEdge(w *binrw.Writer, data []byte) error {
	n := edgeChunkCount(len(data))
	w.PutASCII(magicDCX)
	putInt32s(w, 0x10000, 0x18, 0x24, 0x24, int32(0x50+n*chunkEntrySize))
	w.PutASCII(magicDCS)
	w.PutInt32(int32(len(data)))
	csize := w.ReserveInt32()
	w.PutASCII(magicDCP)
	w.PutASCII(algEDGE)
	putInt32s(w, 0x20, 0x9000000, 0x10000, 0, 0, 0x00100100)

	dcaStart := w.Pos()
	w.PutASCII(magicDCA)
	dcaSize := w.ReserveInt32()
	egdtStart := w.Pos()
	w.PutASCII(magicEgdT)
	putInt32s(w, 0x00010100, 0x24, 0x10, 0x10000, int32(lastChunkSize(len(data))))
	egdtSize := w.ReserveInt32()
	putInt32s(w, int32(n), 0x100000)

	type slot struct{ offset, size, compressed *binrw.Patch }
	slots := make([]slot, n)
	for i := range slots {
		w.PutInt32(0)
		slots[i].offset = w.ReserveInt32()
		slots[i].size = w.ReserveInt32()
		slots[i].compressed = w.ReserveInt32()
	}
	w.FillInt32(dcaSize, int32(w.Pos()-dcaStart))
	w.FillInt32(egdtSize, int32(w.Pos()-egdtStart))

	chunks, stored, err := writeChunkData(w, w.Pos(), data)
	if err != nil {
		return err
	}
	for i, c := range chunks {
		w.FillInt32(slots[i].offset, int32(c.Offset))
		w.FillInt32(slots[i].size, int32(c.Size))
		w.FillInt32(slots[i].compressed, boolInt32(c.Compressed))
	}
	w.FillInt32(csize, int32(stored))
	return nil
}

// readEgdtTable reads the tail of an EgdT header (table size, chunk count,
// 0x100000) and the chunk entries. headerSize is the EgdT size with no entries.
func readEgdtTable(r *binrw.Reader, l Limits, headerSize int) ([]Chunk, error) {
	egdtSize, err := r.Int32()
	if err != nil {
		return nil, err
	}
	n, err := r.Int32()
	if err != nil {
		return nil, err
	}
	if err := l.checkChunkCount(n); err != nil {
		return nil, err
	}
	if _, err := r.AssertInt32(0x100000); err != nil {
		return nil, err
	}
	if want := int32(headerSize + int(n)*chunkEntrySize); egdtSize != want {
		return nil, errors.Wrapf(ErrSizeMismatch, "EgdT size %#x, want %#x", egdtSize, want)
	}

	chunks := make([]Chunk, 0, n)
	for i := 0; i < int(n); i++ {
		if _, err := r.AssertInt32(0); err != nil {
			return nil, err
		}
		off, err := r.UInt32()
		if err != nil {
			return nil, err
		}
		size, err := r.UInt32()
		if err != nil {
			return nil, err
		}
		flag, err := r.AssertInt32(0, 1)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, Chunk{Offset: off, Size: size, Compressed: flag == 1})
	}
	return chunks, nil
}

// inflateChunks concatenates the chunks stored at base+offset. Every chunk but
// the last expands to exactly edgeChunkSize bytes.
func inflateChunks(r *binrw.Reader, base int, chunks []Chunk, usize int) ([]byte, error) {
	if usize > len(chunks)*edgeChunkSize {
		return nil, errors.Wrapf(ErrSizeMismatch, "%d chunks cannot hold %d bytes", len(chunks), usize)
	}
	out := make([]byte, 0, usize)
	for i, c := range chunks {
		src, err := r.GetBytes(base+int(c.Offset), int(c.Size))
		if err != nil {
			return nil, errors.Wrapf(err, "chunk %d", i)
		}
		want := min(edgeChunkSize, usize-len(out))
		if !c.Compressed {
			if len(src) > want {
				return nil, errors.Wrapf(ErrSizeMismatch, "chunk %d: %d stored bytes, want at most %d", i, len(src), want)
			}
			out = append(out, src...)
			continue
		}
		if want <= 0 {
			return nil, errors.Wrapf(ErrSizeMismatch, "chunk %d past end of payload", i)
		}
		b, err := inflateExact(src, want)
		if err != nil {
			return nil, errors.Wrapf(err, "chunk %d", i)
		}
		out = append(out, b...)
	}
	if len(out) != usize {
		return nil, errors.Wrapf(ErrSizeMismatch, "chunks hold %d bytes, header declares %d", len(out), usize)
	}
	return out, nil
}

// writeChunkData appends every chunk of data, each padded to edgeChunkAlign,
// and returns the table describing them plus the sum of their unpadded sizes.
// A chunk is stored deflated only when that makes it strictly smaller.
func writeChunkData(w *binrw.Writer, base int, data []byte) ([]Chunk, int, error) {
	n := edgeChunkCount(len(data))
	chunks := make([]Chunk, 0, n)
	stored := 0
	for i := 0; i < n; i++ {
		raw := data[i*edgeChunkSize : min((i+1)*edgeChunkSize, len(data))]
		packed, err := deflateRaw(raw)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "chunk %d", i)
		}
		c := Chunk{Offset: uint32(w.Pos() - base), Compressed: len(packed) < len(raw)}
		if !c.Compressed {
			packed = raw
		}
		c.Size = uint32(len(packed))
		w.PutRaw(packed)
		w.Pad(edgeChunkAlign)
		stored += len(packed)
		chunks = append(chunks, c)
	}
	return chunks, stored, nil
}

func edgeChunkCount(n int) int {
	return (n + edgeChunkSize - 1) / edgeChunkSize
}

// lastChunkSize is the size of the final chunk: 0 for an empty payload,
// edgeChunkSize for a whole multiple.
func lastChunkSize(n int) int {
	if n > 0 && n%edgeChunkSize == 0 {
		return edgeChunkSize
	}
	return n % edgeChunkSize
}

func boolInt32(v bool) int32 {
	if v {
		return 1
	}
	return 0
}
