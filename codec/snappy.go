package codec

import (
	"github.com/klauspost/compress/s2"

	"github.com/arloliu/h5blosc/format"
)

// SnappyBackend writes snappy-compatible blocks via the S2 encoder. S2
// decodes plain snappy natively, so the read path shares the S2 decoder.
type SnappyBackend struct{}

var _ Backend = SnappyBackend{}

func (SnappyBackend) Code() format.CompressorCode { return format.CompressorSnappy }
func (SnappyBackend) Name() string                { return "snappy" }

func (SnappyBackend) Compress(ctx *Context, data []byte, level int) ([]byte, error) {
	dst := ctx.scratchBytes(s2.MaxEncodedLen(len(data)))

	if level >= 7 {
		return s2.EncodeSnappyBetter(dst, data), nil
	}

	return s2.EncodeSnappy(dst, data), nil
}

func (SnappyBackend) Decompress(ctx *Context, payload []byte, size int) ([]byte, error) {
	return s2.Decode(ctx.scratchBytes(size), payload)
}
