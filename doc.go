// Package dcx implements the DCX family of compression containers used by
// FromSoftware game archives.
//
// A container wraps one compressed payload behind a short big-endian header.
// The supported kinds are:
//   - Zlib: a bare zlib stream
//   - DCP_DFLT and DCP_EDGE: the older DCP headers with zlib or chunked deflate
//   - DCX_EDGE: 64 KiB deflate chunks listed in an EgdT table
//   - DCX_DFLT_*: a zlib payload behind one of five header profiles
//   - DCX_KRAK and DCX_KRAK_MAX: a Kraken payload produced by an external codec
//
// # Basic Usage
//
// To decompress a container of any kind:
//
//	data, _ := os.ReadFile("c0000.anibnd.dcx")
//	payload, kind, err := dcx.Decompress(data)
//
// To compress a payload the way a given game expects:
//
//	out, err := dcx.Compress(payload, dcx.DarkSouls3.DefaultKind())
//
// Kraken kinds need a [KrakenCodec], supplied with [WithKrakenCodec]. No
// codec is bundled because the reference compressor is a proprietary native
// library.
//
// # Security Considerations
//
// Declared sizes are checked against [Limits] before anything is allocated
// for them, and every inflate is bounded by the size the header declares.
package dcx
