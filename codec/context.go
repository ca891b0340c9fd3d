package codec

import (
	"fmt"
	"sync"

	"github.com/arloliu/h5blosc/errs"
	"github.com/arloliu/h5blosc/format"
	"github.com/arloliu/h5blosc/internal/pool"
)

// Params carries the per-chunk compression settings decoded from the filter
// parameter array.
type Params struct {
	// Compressor selects the backend, resolved against the registry.
	Compressor format.CompressorCode

	// Level is the requested compression intensity (1-9, 0 = default).
	Level int

	// Shuffle records whether the byte-shuffle pre-filter was requested.
	Shuffle bool

	// TypeSize is the base element size in bytes, recorded in the frame
	// header for the shuffle stage.
	TypeSize int
}

// Context holds all mutable codec state for one worker: lazily created
// encoder/decoder instances per backend plus a scratch buffer.
//
// A Context is exclusively owned by the goroutine using it and must never be
// shared between goroutines; in exchange it takes no locks anywhere. Each
// piece of internal state is created at most once per Context, on first use.
type Context struct {
	scratch *pool.ByteBuffer
	lz4     lz4State
	zlib    zlibState
	zstd    zstdState
}

// NewContext creates an empty codec context. Internal state is created
// lazily by the first operation that needs it.
func NewContext() *Context {
	return &Context{}
}

// Close releases the context's internal state. The context must not be used
// afterwards.
func (ctx *Context) Close() {
	if ctx.scratch != nil {
		pool.PutChunkScratch(ctx.scratch)
		ctx.scratch = nil
	}

	ctx.zstd.release()
	ctx.zlib.release()
	ctx.lz4 = lz4State{}
}

// scratchBytes returns a length-n view of the context's scratch buffer,
// creating the buffer on first use.
func (ctx *Context) scratchBytes(n int) []byte {
	if ctx.scratch == nil {
		ctx.scratch = pool.GetChunkScratch()
	}

	return ctx.scratch.Sized(n)
}

// Compress compresses src into dst as one self-describing frame.
//
// dst bounds the output: a frame that does not fit in dst, or that is not
// strictly smaller than src, yields (0, nil) — the caller should store the
// chunk raw. This is the expected outcome for incompressible or tiny chunks,
// not an error.
//
// Returns:
//   - int: Frame size written to dst, or 0 when the chunk should stay raw
//   - error: ErrUnsupportedCompressor or ErrCompressionFailed
func (ctx *Context) Compress(p Params, src, dst []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}

	be, err := Lookup(p.Compressor)
	if err != nil {
		return 0, err
	}

	comp, err := be.Compress(ctx, src, clampLevel(p.Level))
	if err != nil {
		return 0, fmt.Errorf("%w: %s backend: %w", errs.ErrCompressionFailed, be.Name(), err)
	}
	if len(comp) == 0 {
		// Backend found no gain at all.
		return 0, nil
	}

	frameSize := HeaderSize + len(comp)
	if frameSize >= len(src) || frameSize > len(dst) {
		return 0, nil
	}

	typeSize := p.TypeSize
	if typeSize < 1 || typeSize > format.MaxTypeSize {
		typeSize = 1
	}

	var flags uint8
	if p.Shuffle {
		flags |= FlagShuffle
	}

	h := Header{
		Version:    format.CodecVersionTag,
		Compressor: be.Code(),
		Flags:      flags,
		TypeSize:   uint8(typeSize),
		NBytes:     uint32(len(src)),
		BlockSize:  uint32(len(src)),
		CBytes:     uint32(frameSize),
		Checksum:   checksum(comp),
	}
	h.Encode(dst[:HeaderSize])
	copy(dst[HeaderSize:], comp)

	return frameSize, nil
}

// Decompress decompresses the frame at the start of src into dst, which must
// hold at least the uncompressed size reported by Sizes.
//
// Unlike Compress there is no soft outcome: every failure — truncated frame,
// checksum mismatch, unknown backend, backend error, short output — is hard.
//
// Returns:
//   - int: Uncompressed size written to dst
//   - error: ErrInvalidHeader, ErrCorruptPayload, ErrUnsupportedCompressor
//     or ErrDecompressionFailed
func (ctx *Context) Decompress(src, dst []byte) (int, error) {
	h, err := ParseHeader(src)
	if err != nil {
		return 0, err
	}

	payload, err := verifyPayload(h, src)
	if err != nil {
		return 0, err
	}

	be, err := Lookup(h.Compressor)
	if err != nil {
		return 0, err
	}

	nbytes := int(h.NBytes)
	if len(dst) < nbytes {
		return 0, fmt.Errorf("%w: output buffer holds %d of %d bytes", errs.ErrDecompressionFailed, len(dst), nbytes)
	}

	out, err := be.Decompress(ctx, payload, nbytes)
	if err != nil {
		return 0, fmt.Errorf("%w: %s backend: %w", errs.ErrDecompressionFailed, be.Name(), err)
	}
	if len(out) != nbytes {
		return 0, fmt.Errorf("%w: frame declares %d bytes, backend produced %d", errs.ErrCorruptPayload, nbytes, len(out))
	}

	copy(dst, out)

	return nbytes, nil
}

// contextPool recycles Contexts across chunk operations. Go has no
// per-thread storage, so exclusive ownership between Acquire and Release
// stands in for thread-local contexts: a pooled context is only ever used by
// one goroutine at a time and keeps its lazily built codec state warm
// between uses.
var contextPool = sync.Pool{
	New: func() any {
		return NewContext()
	},
}

// AcquireContext returns a codec context exclusively owned by the caller
// until it is released.
func AcquireContext() *Context {
	ctx, _ := contextPool.Get().(*Context)
	return ctx
}

// ReleaseContext hands a context back for reuse. The caller must not touch
// the context afterwards.
func ReleaseContext(ctx *Context) {
	if ctx == nil {
		return
	}

	contextPool.Put(ctx)
}
