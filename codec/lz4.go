package codec

import (
	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/h5blosc/format"
)

// lz4State holds a context's lz4 compressor instances. The pierrec
// compressors keep internal hash tables that benefit from reuse across
// chunks.
type lz4State struct {
	c  *lz4.Compressor
	hc *lz4.CompressorHC
}

func (s *lz4State) compressor() *lz4.Compressor {
	if s.c == nil {
		s.c = &lz4.Compressor{}
	}

	return s.c
}

func (s *lz4State) hcCompressor(level lz4.CompressionLevel) *lz4.CompressorHC {
	if s.hc == nil {
		s.hc = &lz4.CompressorHC{}
	}
	s.hc.Level = level

	return s.hc
}

// hcLevels maps the 1-9 parameter-array levels onto the lz4hc level space.
var hcLevels = [...]lz4.CompressionLevel{
	lz4.Level1, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4,
	lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

// LZ4Backend is the baseline backend: lz4 block compression in fast mode.
type LZ4Backend struct{}

var _ Backend = LZ4Backend{}

func (LZ4Backend) Code() format.CompressorCode { return format.CompressorLZ4 }
func (LZ4Backend) Name() string                { return "lz4" }

// Compress compresses data with the context's lz4 block compressor. The
// level is ignored; fast mode has a single setting.
func (LZ4Backend) Compress(ctx *Context, data []byte, _ int) ([]byte, error) {
	dst := ctx.scratchBytes(lz4.CompressBlockBound(len(data)))

	n, err := ctx.lz4.compressor().CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	// n == 0 means the block is incompressible; the zero-length result lets
	// the caller fall back to storing the chunk raw.
	return dst[:n], nil
}

// Decompress decompresses an lz4 block payload into exactly size bytes.
func (LZ4Backend) Decompress(ctx *Context, payload []byte, size int) ([]byte, error) {
	dst := ctx.scratchBytes(size)

	n, err := lz4.UncompressBlock(payload, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// LZ4HCBackend is lz4 in high-compression mode: slower writes for a better
// ratio, identical block format on read.
type LZ4HCBackend struct{}

var _ Backend = LZ4HCBackend{}

func (LZ4HCBackend) Code() format.CompressorCode { return format.CompressorLZ4HC }
func (LZ4HCBackend) Name() string                { return "lz4hc" }

func (LZ4HCBackend) Compress(ctx *Context, data []byte, level int) ([]byte, error) {
	dst := ctx.scratchBytes(lz4.CompressBlockBound(len(data)))

	n, err := ctx.lz4.hcCompressor(hcLevels[level]).CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

func (LZ4HCBackend) Decompress(ctx *Context, payload []byte, size int) ([]byte, error) {
	return LZ4Backend{}.Decompress(ctx, payload, size)
}
