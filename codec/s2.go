package codec

import (
	"github.com/klauspost/compress/s2"

	"github.com/arloliu/h5blosc/format"
)

// S2Backend compresses with raw S2. This is an extension backend beyond the
// blosc code space; frames written with it are only readable by this
// library.
type S2Backend struct{}

var _ Backend = S2Backend{}

func (S2Backend) Code() format.CompressorCode { return format.CompressorS2 }
func (S2Backend) Name() string                { return "s2" }

// Compress compresses data with S2. Levels 7 and above select the slower
// "better" mode; S2 has no finer level granularity.
func (S2Backend) Compress(ctx *Context, data []byte, level int) ([]byte, error) {
	dst := ctx.scratchBytes(s2.MaxEncodedLen(len(data)))

	if level >= 7 {
		return s2.EncodeBetter(dst, data), nil
	}

	return s2.Encode(dst, data), nil
}

// Decompress decompresses an S2 payload into exactly size bytes.
func (S2Backend) Decompress(ctx *Context, payload []byte, size int) ([]byte, error) {
	return s2.Decode(ctx.scratchBytes(size), payload)
}
