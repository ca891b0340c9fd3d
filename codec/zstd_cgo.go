//go:build gozstd

package codec

import (
	"github.com/valyala/gozstd"
)

// zstdState is empty under the gozstd build: the cgo bindings manage their
// own compression contexts internally.
type zstdState struct{}

func (s *zstdState) release() {}

// Compress compresses data with libzstd via the gozstd bindings.
func (ZstdBackend) Compress(ctx *Context, data []byte, level int) ([]byte, error) {
	return gozstd.CompressLevel(ctx.scratchBytes(0)[:0], data, level), nil
}

// Decompress decompresses a zstd payload into exactly size bytes.
func (ZstdBackend) Decompress(ctx *Context, payload []byte, _ int) ([]byte, error) {
	return gozstd.Decompress(ctx.scratchBytes(0)[:0], payload)
}
