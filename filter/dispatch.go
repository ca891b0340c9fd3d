package filter

import (
	"github.com/arloliu/h5blosc/codec"
	"github.com/arloliu/h5blosc/pipeline"
)

// Dispatch is the filter's per-chunk processing component. It decodes the
// parameter array, acquires a codec context for the calling worker, sizes
// the output buffer for the requested direction and runs the codec,
// reporting failures to the host's error sink before returning them.
//
// Dispatch holds no per-chunk state and is safe to invoke concurrently from
// many workers; every call owns its buffers exclusively for the call's
// duration and the codec context is never shared.
type Dispatch struct {
	sink pipeline.ErrorSink
}

// Option configures a Dispatch.
type Option func(*Dispatch)

// WithErrorSink sets the sink failures are reported to before Process
// returns them. Defaults to a NopSink.
func WithErrorSink(sink pipeline.ErrorSink) Option {
	return func(d *Dispatch) {
		d.sink = sink
	}
}

// New creates a Dispatch.
func New(opts ...Option) *Dispatch {
	d := &Dispatch{sink: pipeline.NopSink{}}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// NewClass builds the filter's registration descriptor around a new
// Dispatch. The filter advertises both directions and is meant to be added
// to dataset configurations with the optional flag.
func NewClass(opts ...Option) pipeline.Class {
	d := New(opts...)

	return pipeline.Class{
		ID:             ID,
		Name:           Name,
		EncoderPresent: true,
		DecoderPresent: true,
		SetLocal:       SetLocal,
		Filter:         d.Process,
	}
}

// Process runs the filter over one chunk. Forward (flags without the
// reverse bit) compresses, reverse decompresses.
//
// Returns:
//   - int: New logical size of buf after a successful transform, or 0 when
//     the chunk was not processed (fallback, or any error)
//   - error: nil on success and on fallback; ErrInvalidClientData,
//     ErrUnsupportedCompressor or ErrChunkTooLarge for misconfiguration;
//     ErrCompressionFailed / ErrDecompressionFailed / ErrCorruptPayload for
//     codec failures
//
// On every non-success path the caller's buffer is left untouched and any
// intermediate allocation is released.
func (d *Dispatch) Process(flags pipeline.Flags, clientData []uint32, buf *pipeline.ChunkBuffer) (int, error) {
	params, err := ParseClientData(clientData)
	if err != nil {
		return 0, d.fail(err)
	}

	// Resolve the backend up front: an unknown compressor code is a
	// configuration error and is always reported, never substituted.
	if _, err := codec.Lookup(params.Compressor); err != nil {
		return 0, d.fail(err)
	}

	ctx := codec.AcquireContext()
	defer codec.ReleaseContext(ctx)

	if flags.Reverse() {
		return d.decompress(ctx, buf)
	}

	return d.compress(ctx, params, buf)
}

// compress transforms buf forward. The codec runs single-threaded inside
// the calling worker's context and writes at most the caller-declared
// capacity; output strictly smaller than the input replaces the buffer,
// anything else falls back to raw storage.
func (d *Dispatch) compress(ctx *codec.Context, params Params, buf *pipeline.ChunkBuffer) (int, error) {
	out := make([]byte, compressOutputCapacity(buf))

	n, err := ctx.Compress(codec.Params{
		Compressor: params.Compressor,
		Level:      params.Level,
		Shuffle:    params.Shuffle,
		TypeSize:   params.TypeSize,
	}, buf.Data(), out)
	if err != nil {
		return 0, d.fail(err)
	}
	if n == 0 {
		// Expected for incompressible or tiny chunks; the filter is
		// optional and the host stores the chunk raw.
		return 0, nil
	}

	buf.Replace(out, n)

	return n, nil
}

// decompress transforms buf in reverse. The true output size comes from the
// frame header, never from the slot-3 hint, and every failure is hard.
func (d *Dispatch) decompress(ctx *codec.Context, buf *pipeline.ChunkBuffer) (int, error) {
	size, err := decompressOutputSize(buf.Data())
	if err != nil {
		return 0, d.fail(err)
	}

	out := make([]byte, size)

	n, err := ctx.Decompress(buf.Data(), out)
	if err != nil {
		return 0, d.fail(err)
	}

	buf.Replace(out, n)

	return n, nil
}

// fail reports err to the host's error sink and passes it through.
func (d *Dispatch) fail(err error) error {
	d.sink.Push(pipeline.ErrClassCallback, Name+" filter: "+err.Error())

	return err
}
