//go:build !gozstd

package codec

import (
	"github.com/klauspost/compress/zstd"
)

// zstdState holds a context's zstd encoders and decoder. The klauspost
// library is designed for instance reuse: after a warmup the encoder and
// decoder operate without allocations, so each context keeps one encoder
// per level and a single decoder, created on first use.
type zstdState struct {
	encoders map[int]*zstd.Encoder
	decoder  *zstd.Decoder
}

func (s *zstdState) encoder(level int) (*zstd.Encoder, error) {
	if enc, ok := s.encoders[level]; ok {
		return enc, nil
	}

	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderConcurrency(1), // single-threaded, the host owns parallelism
		zstd.WithEncoderCRC(false),     // the frame header carries its own checksum
	)
	if err != nil {
		return nil, err
	}

	if s.encoders == nil {
		s.encoders = make(map[int]*zstd.Encoder, 2)
	}
	s.encoders[level] = enc

	return enc, nil
}

func (s *zstdState) decode(payload, dst []byte) ([]byte, error) {
	if s.decoder == nil {
		dec, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			return nil, err
		}
		s.decoder = dec
	}

	return s.decoder.DecodeAll(payload, dst)
}

func (s *zstdState) release() {
	for _, enc := range s.encoders {
		enc.Close()
	}
	s.encoders = nil

	if s.decoder != nil {
		s.decoder.Close()
		s.decoder = nil
	}
}

// Compress compresses data with the context's zstd encoder for this level.
func (ZstdBackend) Compress(ctx *Context, data []byte, level int) ([]byte, error) {
	enc, err := ctx.zstd.encoder(level)
	if err != nil {
		return nil, err
	}

	// EncodeAll is stateless with respect to the destination, so appending
	// into the context scratch is safe.
	return enc.EncodeAll(data, ctx.scratchBytes(0)[:0]), nil
}

// Decompress decompresses a zstd payload into exactly size bytes.
func (ZstdBackend) Decompress(ctx *Context, payload []byte, _ int) ([]byte, error) {
	return ctx.zstd.decode(payload, ctx.scratchBytes(0)[:0])
}
