package dcx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logicossoftware/go-dcx/binrw"
)

func TestKindNames(t *testing.T) {
	for k := Unknown; k < kindCount; k++ {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}
	got, err := ParseKind("dcx_dflt_10000_24_9")
	require.NoError(t, err)
	require.Equal(t, DCXDeflate10000_24_9, got)

	_, err = ParseKind("DCX_ZSTD")
	require.ErrorIs(t, err, ErrUnsupported)

	require.Equal(t, "Kind(99)", Kind(99).String())
	require.NotContains(t, Kinds(), Unknown)
	require.NotContains(t, Kinds(), None)
	require.Len(t, Kinds(), int(kindCount)-2)
	require.True(t, DCXKrakenMax.IsKraken())
	require.False(t, DCXEdge.IsKraken())
	require.True(t, DCPEdge.IsEdge())
}

func TestWireHelpers(t *testing.T) {
	w := binrw.NewWriter(true)
	putInt32s(w, 1, 0x20)
	w.PutRaw([]byte{9, 0, 0, 0})
	b, err := w.Finish()
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 1, 0, 0, 0, 0x20, 9, 0, 0, 0}, b)

	r := binrw.NewReader(b, true)
	require.NoError(t, assertInt32s(r, 1, 0x20))
	require.NoError(t, assertBytes(r, 9, 0, 0, 0))

	r = binrw.NewReader(b, true)
	require.ErrorIs(t, assertInt32s(r, 1, 0x21), ErrAssertion)
	r = binrw.NewReader(b[8:], true)
	require.ErrorIs(t, assertBytes(r, 8), ErrAssertion)
}

func TestReadSizes(t *testing.T) {
	w := binrw.NewWriter(true)
	w.PutASCII(magicDCS)
	putInt32s(w, 100, 40)
	b, _ := w.Finish()

	var h Header
	require.NoError(t, readSizes(binrw.NewReader(b, true), defaultLimits(), &h))
	require.Equal(t, 100, h.UncompressedSize)
	require.Equal(t, 40, h.CompressedSize)

	err := readSizes(binrw.NewReader(b, true), Limits{MaxUncompressedSize: 99}.withDefaults(), &h)
	require.ErrorIs(t, err, ErrLimitExceeded)
}
