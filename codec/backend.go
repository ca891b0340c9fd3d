package codec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arloliu/h5blosc/errs"
	"github.com/arloliu/h5blosc/format"
)

// Backend is one compressor implementation in the registry.
//
// Backends are stateless; all reusable encoder/decoder state lives in the
// Context passed to each call, so a Backend value may be shared freely while
// each Context stays single-goroutine.
type Backend interface {
	// Code returns the backend's registry code (frame header byte 1,
	// parameter slot 6).
	Code() format.CompressorCode

	// Name returns the backend's registry name.
	Name() string

	// Compress compresses data at the given level and returns the
	// compressed payload, typically backed by the context's scratch buffer.
	// A zero-length result signals that the backend could not shrink the
	// data at all.
	Compress(ctx *Context, data []byte, level int) ([]byte, error)

	// Decompress decompresses payload into exactly size bytes.
	Decompress(ctx *Context, payload []byte, size int) ([]byte, error)
}

// backends is the fixed compressor registry, keyed by code. Codes follow
// the blosc numbering; code 0 (blosclz) is deliberately absent.
var backends = map[format.CompressorCode]Backend{
	format.CompressorLZ4:    LZ4Backend{},
	format.CompressorLZ4HC:  LZ4HCBackend{},
	format.CompressorSnappy: SnappyBackend{},
	format.CompressorZlib:   ZlibBackend{},
	format.CompressorZstd:   ZstdBackend{},
	format.CompressorS2:     S2Backend{},
}

// Lookup resolves a compressor code against the registry.
//
// Returns:
//   - Backend: Resolved backend
//   - error: ErrUnsupportedCompressor naming the requested code and listing
//     every available backend; a missing backend is never silently
//     substituted
func Lookup(code format.CompressorCode) (Backend, error) {
	if be, ok := backends[code]; ok {
		return be, nil
	}

	return nil, fmt.Errorf("%w: no support for the '%s' compressor (code %d), only for: %s",
		errs.ErrUnsupportedCompressor, code, uint32(code), strings.Join(Names(), ", "))
}

// Names returns the names of all registered backends, ordered by code.
func Names() []string {
	codes := make([]format.CompressorCode, 0, len(backends))
	for code := range backends {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	names := make([]string, len(codes))
	for i, code := range codes {
		names[i] = backends[code].Name()
	}

	return names
}

// clampLevel normalizes a requested compression level to the 1-9 range used
// by every backend, substituting the default for zero.
func clampLevel(level int) int {
	switch {
	case level <= 0:
		return format.DefaultLevel
	case level > 9:
		return 9
	default:
		return level
	}
}
