package dcx

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logicossoftware/go-dcx/internal/oodlestub"
)

func randData(n int) []byte {
	s := rand.NewSource(10)
	r := rand.New(s)
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		panic(err)
	}
	return buf
}

func compressible(n int) []byte {
	return bytes.Repeat([]byte("EldenRing/parts/wp_a_0100.partsbnd "), n/35+1)[:n]
}

func testPayloads() map[string][]byte {
	return map[string][]byte{
		"Empty":         {},
		"Small":         {1, 2, 3, 4, 5},
		"Random":        randData(2*edgeChunkSize + 123),
		"Compressible":  compressible(3 * edgeChunkSize),
		"ExactMultiple": randData(edgeChunkSize),
	}
}

func TestRoundTrip(t *testing.T) {
	for name, in := range testPayloads() {
		for _, kind := range Kinds() {
			t.Run(name+"/"+kind.String(), func(t *testing.T) {
				out, err := Compress(in, kind, WithKrakenCodec(oodlestub.Codec{}))
				require.NoError(t, err)
				require.Equal(t, kind, Detect(out))

				got, gotKind, err := Decompress(out, WithKrakenCodec(oodlestub.Codec{}))
				require.NoError(t, err)
				require.Equal(t, kind, gotKind)
				require.Equal(t, len(in), len(got))
				require.True(t, bytes.Equal(in, got), "payload differs")

				require.NoError(t, Validate(out, WithKrakenCodec(oodlestub.Codec{})))
			})
		}
	}
}

func TestZlibSmall(t *testing.T) {
	in := []byte{1, 2, 3, 4, 5}
	out, err := Compress(in, Zlib)
	require.NoError(t, err)
	require.Equal(t, []byte{0x78, 0xDA}, out[:2])
	require.Equal(t, Zlib, Detect(out))

	got, kind, err := Decompress(out)
	require.NoError(t, err)
	require.Equal(t, Zlib, kind)
	require.Equal(t, in, got)
}

func TestZlibForeignLevels(t *testing.T) {
	// Streams written at other levels carry a different second header byte.
	in := compressible(5000)
	var buf bytes.Buffer
	zw, err := newZlibWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write(in)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	for _, level := range zlibLevels {
		data := append([]byte(nil), buf.Bytes()...)
		data[1] = level
		require.Equal(t, Zlib, Detect(data))
		got, _, err := Decompress(data)
		require.NoError(t, err)
		require.Equal(t, in, got)
	}
}

func TestDCXEdgeZeros(t *testing.T) {
	in := make([]byte, 2*edgeChunkSize)
	out, err := Compress(in, DCXEdge)
	require.NoError(t, err)
	require.Equal(t, DCXEdge, Detect(out))

	be := binary.BigEndian
	require.Equal(t, uint32(0x50+2*0x10), be.Uint32(out[0x14:]))
	require.Equal(t, uint32(len(in)), be.Uint32(out[0x1C:]))
	require.Equal(t, uint32(0x2C+2*0x10), be.Uint32(out[0x48:]), "DCA size")
	require.Equal(t, uint32(edgeChunkSize), be.Uint32(out[0x60:]), "last chunk size")
	require.Equal(t, uint32(0x24+2*0x10), be.Uint32(out[0x64:]), "EgdT size")
	require.Equal(t, uint32(2), be.Uint32(out[0x68:]))

	h, err := Inspect(out)
	require.NoError(t, err)
	require.Equal(t, DCXEdge, h.Kind)
	require.Equal(t, len(in), h.UncompressedSize)
	require.Len(t, h.Chunks, 2)
	for _, c := range h.Chunks {
		require.True(t, c.Compressed)
		require.Less(t, int(c.Size), edgeChunkSize)
		require.Zero(t, c.Offset%edgeChunkAlign)
	}
	require.Zero(t, h.Chunks[0].Offset)
	require.GreaterOrEqual(t, h.Chunks[1].Offset, h.Chunks[0].Size)
	require.Equal(t, int(h.Chunks[0].Size+h.Chunks[1].Size), h.CompressedSize)

	got, _, err := Decompress(out)
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestDCXEdgeIncompressibleChunkStoredRaw(t *testing.T) {
	in := randData(edgeChunkSize + 4464)
	out, err := Compress(in, DCXEdge)
	require.NoError(t, err)

	h, err := Inspect(out)
	require.NoError(t, err)
	require.Len(t, h.Chunks, 2)

	dataStart := 0x70 + len(h.Chunks)*chunkEntrySize
	for i, c := range h.Chunks {
		require.False(t, c.Compressed, "chunk %d", i)
		stored := out[dataStart+int(c.Offset) : dataStart+int(c.Offset)+int(c.Size)]
		end := min((i+1)*edgeChunkSize, len(in))
		require.True(t, bytes.Equal(in[i*edgeChunkSize:end], stored), "chunk %d bytes", i)
	}
	require.Equal(t, uint32(4464), binary.BigEndian.Uint32(out[0x60:]))
}

func TestDCPEdgeLayout(t *testing.T) {
	in := compressible(edgeChunkSize + 10)
	out, err := Compress(in, DCPEdge)
	require.NoError(t, err)

	be := binary.BigEndian
	csize := int(be.Uint32(out[0x28:]))
	require.Zero(t, csize%edgeChunkAlign)
	dca := 0x30 + csize
	require.Equal(t, magicDCA, string(out[dca:dca+4]))
	require.Equal(t, magicEgdT, string(out[dca+8:dca+12]))
	egdtSize := be.Uint32(out[dca+0x1C:])
	require.Equal(t, uint32(0x20+2*0x10), egdtSize)
	require.Equal(t, dcaPlainSize+egdtSize, be.Uint32(out[dca+4:]))
	require.Equal(t, len(out), dca+8+int(egdtSize))

	h, err := Inspect(out)
	require.NoError(t, err)
	require.Equal(t, csize, h.CompressedSize)
	require.Len(t, h.Chunks, 2)
}

func TestDeflateProfileHeaders(t *testing.T) {
	in := compressible(1000)
	be := binary.BigEndian
	for _, p := range deflateProfiles {
		t.Run(p.kind.String(), func(t *testing.T) {
			out, err := Compress(in, p.kind)
			require.NoError(t, err)
			require.Equal(t, magicDCX, string(out[:4]))
			require.Equal(t, uint32(p.unk04), be.Uint32(out[0x04:]))
			require.Equal(t, uint32(p.unk10), be.Uint32(out[0x10:]))
			require.Equal(t, uint32(p.unk14), be.Uint32(out[0x14:]))
			require.Equal(t, algDFLT, string(out[0x28:0x2C]))
			require.Equal(t, p.unk30, out[0x30])
			require.Equal(t, p.unk38, out[0x38])
			require.Equal(t, uint32(dcaPlainSize), be.Uint32(out[0x48:]))
			require.Equal(t, uint32(len(in)), be.Uint32(out[0x1C:]))
			require.Equal(t, uint32(len(out)-0x4C), be.Uint32(out[0x20:]))
			require.Equal(t, []byte{0x78, 0xDA}, out[0x4C:0x4E])
		})
	}
}

func TestKrakenHeader(t *testing.T) {
	in := compressible(3000)
	be := binary.BigEndian
	for _, kind := range []Kind{DCXKraken, DCXKrakenMax} {
		out, err := Compress(in, kind, WithKrakenCodec(oodlestub.Codec{}))
		require.NoError(t, err)
		require.Zero(t, len(out)%0x10)
		require.Equal(t, algKRAK, string(out[0x28:0x2C]))
		require.Equal(t, byte(krakenLevel(kind)), out[0x30])
		require.Equal(t, uint32(len(in)), be.Uint32(out[0x1C:]))
		require.LessOrEqual(t, int(be.Uint32(out[0x20:])), len(out)-0x4C)
	}
	require.Equal(t, byte(6), byte(KrakenNormal))
	require.Equal(t, byte(9), byte(KrakenMax))
}

func TestKrakenWithoutCodec(t *testing.T) {
	_, err := Compress([]byte("abc"), DCXKraken)
	require.ErrorIs(t, err, ErrNoKrakenCodec)
	require.ErrorIs(t, err, ErrUnsupported)

	out, err := Compress([]byte("abc"), DCXKrakenMax, WithKrakenCodec(oodlestub.Codec{}))
	require.NoError(t, err)
	_, kind, err := Decompress(out)
	require.ErrorIs(t, err, ErrNoKrakenCodec)
	require.Equal(t, DCXKrakenMax, kind)
}

func TestCompressRejectsKinds(t *testing.T) {
	_, err := Compress([]byte("abc"), Unknown)
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = Compress([]byte("abc"), Kind(200))
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = Compress([]byte("abc"), None)
	require.ErrorIs(t, err, ErrNotImplemented)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestDecompressUnknown(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		{0x78},
		[]byte("BND4"),
		[]byte("DCP\x00KRAK"),
		[]byte("DCX\x00"),
	} {
		got, kind, err := Decompress(data)
		require.ErrorIs(t, err, ErrFormat)
		require.Equal(t, Unknown, kind)
		require.Nil(t, got)
	}
}

func TestDetectDoesNotMutate(t *testing.T) {
	out, err := Compress(compressible(500), DCXDeflate11000_44_9_15)
	require.NoError(t, err)
	before := append([]byte(nil), out...)
	require.Equal(t, DCXDeflate11000_44_9_15, Detect(out))
	require.Equal(t, before, out)
}

func TestIs(t *testing.T) {
	require.True(t, Is([]byte("DCX\x00rest")))
	require.True(t, Is([]byte("DCP\x00rest")))
	require.False(t, Is([]byte{0x78, 0xDA}))
	require.False(t, Is([]byte("DC")))
}

func TestGameDefaults(t *testing.T) {
	for g, want := range map[Game]Kind{
		DemonsSouls:  DCXEdge,
		DarkSouls1:   DCXDeflate10000_24_9,
		DarkSouls2:   DCXDeflate10000_24_9,
		Bloodborne:   DCXDeflate10000_44_9,
		DarkSouls3:   DCXDeflate10000_44_9,
		Sekiro:       DCXKraken,
		EldenRing:    DCXKraken,
		ArmoredCore6: DCXKrakenMax,
	} {
		require.Equal(t, want, g.DefaultKind(), g.String())
	}
	require.Len(t, Games(), 8)
	require.Equal(t, Unknown, Game(99).DefaultKind())
	require.Equal(t, "Game(99)", Game(99).String())
}

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.tpf.dcx")
	in := compressible(4000)

	require.NoError(t, CompressFile(path, in, DCXDeflate10000_44_9))
	got, kind, err := DecompressFile(path)
	require.NoError(t, err)
	require.Equal(t, DCXDeflate10000_44_9, kind)
	require.Equal(t, in, got)

	var buf bytes.Buffer
	require.NoError(t, CompressTo(&buf, in, DCPDeflate))
	got, kind, err = DecompressReader(&buf)
	require.NoError(t, err)
	require.Equal(t, DCPDeflate, kind)
	require.Equal(t, in, got)

	_, _, err = DecompressFile(filepath.Join(dir, "missing.dcx"))
	require.ErrorIs(t, err, os.ErrNotExist)

	// Nothing is written when encoding fails.
	bad := filepath.Join(dir, "bad.dcx")
	require.Error(t, CompressFile(bad, in, None))
	_, err = os.Stat(bad)
	require.ErrorIs(t, err, os.ErrNotExist)
}
