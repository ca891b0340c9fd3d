package codec

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/h5blosc/errs"
	"github.com/arloliu/h5blosc/format"
)

// compressibleChunk builds a chunk of n bytes with enough structure that
// every backend can shrink it.
func compressibleChunk(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i / 16)
	}

	return data
}

func randomChunk(t *testing.T, n int) []byte {
	t.Helper()

	data := make([]byte, n)
	_, err := rand.Read(data)
	require.NoError(t, err)

	return data
}

func allCodes() []format.CompressorCode {
	return []format.CompressorCode{
		format.CompressorLZ4,
		format.CompressorLZ4HC,
		format.CompressorSnappy,
		format.CompressorZlib,
		format.CompressorZstd,
		format.CompressorS2,
	}
}

func TestLookup_Registered(t *testing.T) {
	for _, code := range allCodes() {
		be, err := Lookup(code)
		require.NoError(t, err)
		assert.Equal(t, code, be.Code())
		assert.Equal(t, code.String(), be.Name())
	}
}

func TestLookup_Unsupported(t *testing.T) {
	for _, code := range []format.CompressorCode{format.CompressorBloscLZ, 42} {
		_, err := Lookup(code)
		require.ErrorIs(t, err, errs.ErrUnsupportedCompressor)
		// The error must name the requested code and list what is available.
		assert.Contains(t, err.Error(), "only for: lz4, lz4hc, snappy, zlib, zstd, s2")
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"lz4", "lz4hc", "snappy", "zlib", "zstd", "s2"}, Names())
}

func TestContext_RoundTrip(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	for _, code := range allCodes() {
		for _, size := range []int{400, 4096, 65536} {
			src := compressibleChunk(size)
			dst := make([]byte, len(src))

			n, err := ctx.Compress(Params{Compressor: code, Level: 5, Shuffle: true, TypeSize: 4}, src, dst)
			require.NoError(t, err, "compress with %s", code)
			require.Positive(t, n, "%s should shrink %d structured bytes", code, size)
			require.Less(t, n, len(src))

			nbytes, cbytes, _, err := Sizes(dst[:n])
			require.NoError(t, err)
			assert.Equal(t, len(src), nbytes)
			assert.Equal(t, n, cbytes)

			out := make([]byte, nbytes)
			m, err := ctx.Decompress(dst[:n], out)
			require.NoError(t, err, "decompress with %s", code)
			require.Equal(t, len(src), m)
			assert.True(t, bytes.Equal(src, out), "round trip with %s at %d bytes", code, size)
		}
	}
}

func TestContext_RoundTrip_Levels(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	src := compressibleChunk(8192)
	for level := 1; level <= 9; level++ {
		dst := make([]byte, len(src))
		n, err := ctx.Compress(Params{Compressor: format.CompressorZstd, Level: level}, src, dst)
		require.NoError(t, err)
		require.Positive(t, n)

		out := make([]byte, len(src))
		m, err := ctx.Decompress(dst[:n], out)
		require.NoError(t, err)
		require.Equal(t, len(src), m)
		assert.Equal(t, src, out)
	}
}

func TestContext_Compress_FallbackOnRandomData(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	src := randomChunk(t, 400)
	for _, code := range allCodes() {
		dst := make([]byte, len(src))
		n, err := ctx.Compress(Params{Compressor: code, Level: 5}, src, dst)
		require.NoError(t, err, "incompressible data is not an error for %s", code)
		assert.Zero(t, n, "%s cannot shrink random bytes", code)
	}
}

func TestContext_Compress_EmptyInput(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	n, err := ctx.Compress(Params{Compressor: format.CompressorLZ4}, nil, make([]byte, 64))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestContext_Compress_OutputBudget(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	src := compressibleChunk(4096)

	// A destination too small for the frame forces fallback even though the
	// data itself compresses well.
	n, err := ctx.Compress(Params{Compressor: format.CompressorZstd, Level: 5}, src, make([]byte, HeaderSize))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestContext_Compress_UnsupportedCompressor(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	src := compressibleChunk(4096)
	_, err := ctx.Compress(Params{Compressor: format.CompressorBloscLZ}, src, make([]byte, len(src)))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompressor)
}

func TestContext_Decompress_CorruptPayload(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	src := compressibleChunk(4096)
	dst := make([]byte, len(src))
	n, err := ctx.Compress(Params{Compressor: format.CompressorLZ4, Level: 5}, src, dst)
	require.NoError(t, err)
	require.Positive(t, n)

	frame := dst[:n]
	out := make([]byte, len(src))

	t.Run("flipped payload byte", func(t *testing.T) {
		bad := bytes.Clone(frame)
		bad[HeaderSize+1] ^= 0xff

		_, err := ctx.Decompress(bad, out)
		require.ErrorIs(t, err, errs.ErrCorruptPayload)
	})

	t.Run("truncated frame", func(t *testing.T) {
		_, err := ctx.Decompress(frame[:n-8], out)
		require.ErrorIs(t, err, errs.ErrCorruptPayload)
	})

	t.Run("unknown backend code", func(t *testing.T) {
		bad := bytes.Clone(frame)
		bad[1] = 0 // blosclz
		// Re-parse fails at lookup, after the checksum has been redone.
		h, perr := ParseHeader(bad)
		require.NoError(t, perr)
		h.Checksum = checksum(bad[HeaderSize:h.CBytes])
		h.Encode(bad[:HeaderSize])

		_, err := ctx.Decompress(bad, out)
		require.ErrorIs(t, err, errs.ErrUnsupportedCompressor)
	})

	t.Run("destination too small", func(t *testing.T) {
		_, err := ctx.Decompress(frame, make([]byte, 16))
		require.ErrorIs(t, err, errs.ErrDecompressionFailed)
	})
}
