package dcx

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
)

// Kind identifies a compression container variant.
type Kind uint8

const (
	Unknown Kind = iota
	None
	Zlib
	DCPEdge
	DCPDeflate
	DCXEdge
	DCXDeflate10000_24_9
	DCXDeflate10000_44_9
	DCXDeflate11000_44_8
	DCXDeflate11000_44_9
	DCXDeflate11000_44_9_15
	DCXKraken
	DCXKrakenMax

	kindCount
)

var kindNames = [kindCount]string{
	Unknown:                 "Unknown",
	None:                    "None",
	Zlib:                    "Zlib",
	DCPEdge:                 "DCP_EDGE",
	DCPDeflate:              "DCP_DFLT",
	DCXEdge:                 "DCX_EDGE",
	DCXDeflate10000_24_9:    "DCX_DFLT_10000_24_9",
	DCXDeflate10000_44_9:    "DCX_DFLT_10000_44_9",
	DCXDeflate11000_44_8:    "DCX_DFLT_11000_44_8",
	DCXDeflate11000_44_9:    "DCX_DFLT_11000_44_9",
	DCXDeflate11000_44_9_15: "DCX_DFLT_11000_44_9_15",
	DCXKraken:               "DCX_KRAK",
	DCXKrakenMax:            "DCX_KRAK_MAX",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the Kind whose String form equals s, ignoring case.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(k), nil
		}
	}
	return Unknown, errors.Wrapf(ErrUnsupported, "unknown kind %q", s)
}

// Kinds returns every kind Compress can produce.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Zlib; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// IsKraken reports whether k needs a KrakenCodec.
func (k Kind) IsKraken() bool { return k == DCXKraken || k == DCXKrakenMax }

// IsEdge reports whether k stores its payload as a table of deflate chunks.
func (k Kind) IsEdge() bool { return k == DCPEdge || k == DCXEdge }

func (k Kind) valid() bool { return k > Unknown && k < kindCount }

// Game names a title whose archives use a known default container kind.
type Game uint8

const (
	DemonsSouls Game = iota
	DarkSouls1
	DarkSouls2
	Bloodborne
	DarkSouls3
	Sekiro
	EldenRing
	ArmoredCore6
)

var games = []struct {
	name string
	kind Kind
}{
	DemonsSouls:  {"DemonsSouls", DCXEdge},
	DarkSouls1:   {"DarkSouls1", DCXDeflate10000_24_9},
	DarkSouls2:   {"DarkSouls2", DCXDeflate10000_24_9},
	Bloodborne:   {"Bloodborne", DCXDeflate10000_44_9},
	DarkSouls3:   {"DarkSouls3", DCXDeflate10000_44_9},
	Sekiro:       {"Sekiro", DCXKraken},
	EldenRing:    {"EldenRing", DCXKraken},
	ArmoredCore6: {"ArmoredCore6", DCXKrakenMax},
}

func (g Game) String() string {
	if int(g) < len(games) {
		return games[g].name
	}
	return fmt.Sprintf("Game(%d)", uint8(g))
}

// DefaultKind returns the container kind the game ships with, or Unknown.
func (g Game) DefaultKind() Kind {
	if int(g) < len(games) {
		return games[g].kind
	}
	return Unknown
}

// Games lists every known game.
func Games() []Game {
	out := make([]Game, len(games))
	for i := range games {
		out[i] = Game(i)
	}
	return out
}

// Header describes a decoded container.
type Header struct {
	Kind             Kind
	UncompressedSize int
	// CompressedSize is the payload size declared by the container, or the
	// input length for bare zlib streams.
	CompressedSize int
	// Chunks is the EDGE chunk table. Empty for other kinds.
	Chunks []Chunk
}

// Chunk is one entry of an EDGE chunk table.
type Chunk struct {
	Offset     uint32 // relative to the start of the chunk data block
	Size       uint32 // stored size
	Compressed bool   // raw deflate when set, verbatim otherwise
}
