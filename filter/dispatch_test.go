package filter

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/h5blosc/codec"
	"github.com/arloliu/h5blosc/errs"
	"github.com/arloliu/h5blosc/format"
	"github.com/arloliu/h5blosc/pipeline"
)

func clientData(typeSize, chunkSize, level, shuffle uint32, comp format.CompressorCode) []uint32 {
	return []uint32{format.FilterRevision, format.CodecVersionTag, typeSize, chunkSize, level, shuffle, uint32(comp)}
}

func structuredChunk(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i / 8)
	}

	return data
}

// roundTrip pushes src forward and then in reverse through one Dispatch,
// returning the decoded bytes.
func roundTrip(t *testing.T, d *Dispatch, cd []uint32, src []byte) []byte {
	t.Helper()

	buf := pipeline.NewChunkBuffer(bytes.Clone(src))
	n, err := d.Process(0, cd, buf)
	require.NoError(t, err)
	require.Positive(t, n, "chunk should have compressed")
	require.Less(t, n, len(src))

	enc := pipeline.NewChunkBuffer(bytes.Clone(buf.Data()))
	m, err := d.Process(pipeline.FlagReverse, cd, enc)
	require.NoError(t, err)
	require.Equal(t, len(src), m)

	return enc.Data()
}

func TestDispatch_RoundTrip(t *testing.T) {
	d := New()

	compressors := []format.CompressorCode{
		format.CompressorLZ4,
		format.CompressorLZ4HC,
		format.CompressorSnappy,
		format.CompressorZlib,
		format.CompressorZstd,
		format.CompressorS2,
	}

	for _, comp := range compressors {
		for _, typeSize := range []uint32{1, 2, 4, 8} {
			for _, chunkLen := range []int{400, 4096, 100 * 100 * 8} {
				name := fmt.Sprintf("%s/ts%d/%dB", comp, typeSize, chunkLen)
				t.Run(name, func(t *testing.T) {
					src := structuredChunk(chunkLen)
					cd := clientData(typeSize, uint32(chunkLen), 5, 1, comp)

					out := roundTrip(t, d, cd, src)
					assert.True(t, bytes.Equal(src, out), "byte-for-byte round trip")
				})
			}
		}
	}
}

func TestDispatch_ZeroChunkCompresses(t *testing.T) {
	// 400 zero bytes (the (10,10) float32 chunk) must shrink.
	d := New()
	src := make([]byte, 400)
	cd := clientData(4, 400, 5, 1, format.CompressorLZ4)

	out := roundTrip(t, d, cd, src)
	assert.Equal(t, src, out)
}

func TestDispatch_FallbackLeavesBufferUntouched(t *testing.T) {
	d := New()

	src := make([]byte, 400)
	_, err := rand.Read(src)
	require.NoError(t, err)

	backing := bytes.Clone(src)
	buf := pipeline.NewChunkBuffer(backing)

	cd := clientData(4, 400, 5, 1, format.CompressorLZ4)
	n, err := d.Process(0, cd, buf)
	require.NoError(t, err, "incompressible data is a fallback, not an error")
	assert.Zero(t, n)

	// Ownership and contents stay with the caller.
	assert.Same(t, &backing[0], &buf.B[0], "fallback must not replace the backing slice")
	assert.Equal(t, src, buf.Data())
	assert.Equal(t, len(src), buf.Size)
}

func TestDispatch_DefaultSlotsOnly(t *testing.T) {
	// A 4-slot array exercises every default: level 5, shuffle on, lz4.
	d := New()
	src := structuredChunk(4096)

	out := roundTrip(t, d, []uint32{2, 2, 4, 4096}, src)
	assert.Equal(t, src, out)
}

func TestDispatch_UnsupportedCompressor(t *testing.T) {
	sink := &pipeline.CollectSink{}
	d := New(WithErrorSink(sink))

	src := structuredChunk(4096)
	cd := clientData(4, 4096, 5, 1, format.CompressorBloscLZ)

	buf := pipeline.NewChunkBuffer(bytes.Clone(src))
	n, err := d.Process(0, cd, buf)
	require.ErrorIs(t, err, errs.ErrUnsupportedCompressor)
	assert.Zero(t, n)
	assert.Equal(t, src, buf.Data(), "failure leaves the input untouched")

	records := sink.Records()
	require.Len(t, records, 1)
	assert.Equal(t, pipeline.ErrClassCallback, records[0].Class)
	assert.Contains(t, records[0].Message, "blosclz")
	assert.Contains(t, records[0].Message, "only for:")
}

func TestDispatch_InvalidClientData(t *testing.T) {
	d := New()

	buf := pipeline.NewChunkBuffer(structuredChunk(64))
	_, err := d.Process(0, []uint32{2, 2}, buf)
	require.ErrorIs(t, err, errs.ErrInvalidClientData)
}

// TestDispatch_DecompressIgnoresSizeHint lies in slot 3 and verifies the
// read path derives the true size from the frame header instead.
func TestDispatch_DecompressIgnoresSizeHint(t *testing.T) {
	d := New()
	src := structuredChunk(4096)

	buf := pipeline.NewChunkBuffer(bytes.Clone(src))
	n, err := d.Process(0, clientData(4, 4096, 5, 1, format.CompressorZstd), buf)
	require.NoError(t, err)
	require.Positive(t, n)

	// A wildly wrong hint, as if an earlier pipeline stage had resized the
	// buffer after this filter stored its parameters.
	lyingCD := clientData(4, 16, 5, 1, format.CompressorZstd)

	enc := pipeline.NewChunkBuffer(bytes.Clone(buf.Data()))
	m, err := d.Process(pipeline.FlagReverse, lyingCD, enc)
	require.NoError(t, err)
	require.Equal(t, len(src), m)
	assert.Equal(t, src, enc.Data())
}

func TestDispatch_DecompressFailures(t *testing.T) {
	sink := &pipeline.CollectSink{}
	d := New(WithErrorSink(sink))

	src := structuredChunk(4096)
	cd := clientData(4, 4096, 5, 1, format.CompressorLZ4)

	buf := pipeline.NewChunkBuffer(bytes.Clone(src))
	n, err := d.Process(0, cd, buf)
	require.NoError(t, err)
	require.Positive(t, n)
	frame := bytes.Clone(buf.Data())

	t.Run("garbage instead of a frame", func(t *testing.T) {
		junk := pipeline.NewChunkBuffer(bytes.Clone(src[:128]))
		m, err := d.Process(pipeline.FlagReverse, cd, junk)
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
		assert.Zero(t, m)
		assert.Equal(t, src[:128], junk.Data(), "failure leaves the input untouched")
	})

	t.Run("corrupted payload", func(t *testing.T) {
		bad := bytes.Clone(frame)
		bad[codec.HeaderSize] ^= 0xa5

		m, err := d.Process(pipeline.FlagReverse, cd, pipeline.NewChunkBuffer(bad))
		require.ErrorIs(t, err, errs.ErrCorruptPayload)
		assert.Zero(t, m)
	})

	t.Run("truncated frame", func(t *testing.T) {
		m, err := d.Process(pipeline.FlagReverse, cd, pipeline.NewChunkBuffer(bytes.Clone(frame[:len(frame)-4])))
		require.ErrorIs(t, err, errs.ErrCorruptPayload)
		assert.Zero(t, m)
	})

	assert.NotEmpty(t, sink.Records(), "hard failures are reported to the sink")
}
