// Package main provides C-compatible exports for the dcx library.
// Build with: go build -buildmode=c-shared -o dcx.dll
package main

/*
#include <stdlib.h>
#include <stdint.h>

// Result structure for operations that return data
typedef struct {
    char* data;
    int   data_len;
    int   kind;
    char* error;
} DcxResult;
*/
import "C"

import (
	"encoding/json"
	"unsafe"

	dcx "github.com/logicossoftware/go-dcx"
)

func main() {}

// DcxFreeResult frees memory allocated by other Dcx functions.
// Must be called to avoid memory leaks.
//
//export DcxFreeResult
func DcxFreeResult(result C.DcxResult) {
	if result.data != nil {
		C.free(unsafe.Pointer(result.data))
	}
	if result.error != nil {
		C.free(unsafe.Pointer(result.error))
	}
}

// DcxFreeString frees a C string allocated by Go.
//
//export DcxFreeString
func DcxFreeString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

// makeResult creates a result with data.
func makeResult(data []byte, kind dcx.Kind) C.DcxResult {
	var result C.DcxResult
	result.kind = C.int(kind)
	if len(data) > 0 {
		result.data = (*C.char)(C.CBytes(data))
		result.data_len = C.int(len(data))
	}
	return result
}

// makeError creates a result with an error message.
func makeError(err error, kind dcx.Kind) C.DcxResult {
	var result C.DcxResult
	result.kind = C.int(kind)
	result.error = C.CString(err.Error())
	return result
}

// DcxDetect returns the container kind of data as its numeric value (0 = Unknown).
//
//export DcxDetect
func DcxDetect(data *C.char, dataLen C.int) C.int {
	goData := C.GoBytes(unsafe.Pointer(data), dataLen)
	return C.int(dcx.Detect(goData))
}

// DcxKindName returns the canonical name of a kind, e.g. "DCX_DFLT_10000_44_9".
// Call DcxFreeString on the result.
//
//export DcxKindName
func DcxKindName(kind C.int) *C.char {
	k, err := kindFromInt(int(kind))
	if err != nil {
		return C.CString(dcx.Unknown.String())
	}
	return C.CString(k.String())
}

// DcxKindByName returns the numeric kind for a canonical name, or -1.
//
//export DcxKindByName
func DcxKindByName(name *C.char) C.int {
	k, err := dcx.ParseKind(C.GoString(name))
	if err != nil {
		return -1
	}
	return C.int(k)
}

// DcxDecompress decompresses a container of any supported kind.
// Parameters:
//   - data: pointer to the container bytes
//   - dataLen: length of the data
//
// Returns DcxResult with the payload and detected kind, or an error.
// DCX_KRAK containers always fail: no Kraken codec is linked into this library.
// Call DcxFreeResult when done.
//
//export DcxDecompress
func DcxDecompress(data *C.char, dataLen C.int) C.DcxResult {
	goData := C.GoBytes(unsafe.Pointer(data), dataLen)
	out, kind, err := dcx.Decompress(goData)
	if err != nil {
		return makeError(err, kind)
	}
	return makeResult(out, kind)
}

// DcxCompress wraps a payload in a container.
// Parameters:
//   - data: pointer to the payload
//   - dataLen: length of the payload
//   - kind: numeric kind as returned by DcxKindByName
//
// Returns DcxResult with the container bytes or an error. Call DcxFreeResult when done.
//
//export DcxCompress
func DcxCompress(data *C.char, dataLen C.int, kind C.int) C.DcxResult {
	goData := C.GoBytes(unsafe.Pointer(data), dataLen)
	k, err := kindFromInt(int(kind))
	if err != nil {
		return makeError(err, dcx.Unknown)
	}
	out, err := dcx.Compress(goData, k)
	if err != nil {
		return makeError(err, k)
	}
	return makeResult(out, k)
}

// DcxInspect decodes a container and returns a JSON description of its header.
// The JSON object contains: kind, uncompressedSize, compressedSize, chunks.
// Call DcxFreeResult when done.
//
//export DcxInspect
func DcxInspect(data *C.char, dataLen C.int) C.DcxResult {
	goData := C.GoBytes(unsafe.Pointer(data), dataLen)
	h, err := dcx.Inspect(goData)
	if err != nil {
		return makeError(err, h.Kind)
	}

	chunks := make([]map[string]any, len(h.Chunks))
	for i, c := range h.Chunks {
		chunks[i] = map[string]any{
			"offset":     c.Offset,
			"size":       c.Size,
			"compressed": c.Compressed,
		}
	}
	result := map[string]any{
		"kind":             h.Kind.String(),
		"uncompressedSize": h.UncompressedSize,
		"compressedSize":   h.CompressedSize,
		"chunks":           chunks,
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return makeError(err, h.Kind)
	}
	return makeResult(jsonBytes, h.Kind)
}

// DcxValidate checks a container without returning its payload.
// Returns NULL on success, or an error message string on failure.
// Call DcxFreeString on the result if non-NULL.
//
//export DcxValidate
func DcxValidate(data *C.char, dataLen C.int) *C.char {
	goData := C.GoBytes(unsafe.Pointer(data), dataLen)
	if err := dcx.Validate(goData); err != nil {
		return C.CString(err.Error())
	}
	return nil
}
