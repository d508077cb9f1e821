package dcx

import (
	"bytes"

	"github.com/logicossoftware/go-dcx/binrw"
)

// Detect classifies data by its header. It never fails: anything it cannot
// place, including input too short for a probe, is Unknown.
func Detect(data []byte) Kind {
	r := binrw.NewReader(data, true)
	magic, err := r.GetASCII(0, 4)
	if err == nil {
		switch magic {
		case magicDCP:
			alg, _ := r.GetASCII(4, 4)
			switch alg {
			case algEDGE:
				return DCPEdge
			case algDFLT:
				return DCPDeflate
			}
			return Unknown
		case magicDCX:
			return detectDCX(r)
		}
	}
	if len(data) >= 2 && data[0] == zlibMethod && bytes.IndexByte(zlibLevels, data[1]) >= 0 {
		return Zlib
	}
	return Unknown
}

// Is reports whether data starts with a DCP or DCX magic.
func Is(data []byte) bool {
	return bytes.HasPrefix(data, []byte(magicDCX)) || bytes.HasPrefix(data, []byte(magicDCP))
}

func detectDCX(r *binrw.Reader) Kind {
	alg, err := r.GetASCII(0x28, 4)
	if err != nil {
		return Unknown
	}
	switch alg {
	case algEDGE:
		return DCXEdge
	case algKRAK:
		level, err := r.GetByte(0x30)
		if err != nil {
			return Unknown
		}
		if level == byte(KrakenMax) {
			return DCXKrakenMax
		}
		return DCXKraken
	case algDFLT:
		p, ok := probeDeflateProfile(r)
		if !ok {
			return Unknown
		}
		return p.kind
	}
	return Unknown
}

func probeDeflateProfile(r *binrw.Reader) (deflateProfile, bool) {
	unk04, err := r.GetInt32(0x04)
	if err != nil {
		return deflateProfile{}, false
	}
	unk10, err := r.GetInt32(0x10)
	if err != nil {
		return deflateProfile{}, false
	}
	unk30, err := r.GetByte(0x30)
	if err != nil {
		return deflateProfile{}, false
	}
	unk38, err := r.GetByte(0x38)
	if err != nil {
		return deflateProfile{}, false
	}
	for _, p := range deflateProfiles {
		if p.unk04 == unk04 && p.unk10 == unk10 && p.unk30 == unk30 && p.unk38 == unk38 {
			return p, true
		}
	}
	return deflateProfile{}, false
}
