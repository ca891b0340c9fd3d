package h5blosc

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/h5blosc/filter"
	"github.com/arloliu/h5blosc/format"
	"github.com/arloliu/h5blosc/pipeline"
)

func TestRegister(t *testing.T) {
	reg := pipeline.NewRegistry()

	version, date, err := Register(reg)
	require.NoError(t, err)
	assert.Equal(t, Version, version)
	assert.Equal(t, VersionDate, date)

	class, ok := reg.Get(FilterID)
	require.True(t, ok)
	assert.Equal(t, FilterName, class.Name)
	assert.True(t, class.EncoderPresent)
	assert.True(t, class.DecoderPresent)

	// Load-time registration may be triggered from several call sites.
	_, _, err = Register(reg)
	require.NoError(t, err)
}

func TestRegister_DefaultRegistry(t *testing.T) {
	_, _, err := Register(nil)
	require.NoError(t, err)

	_, ok := pipeline.DefaultRegistry().Get(FilterID)
	assert.True(t, ok)
}

// TestEndToEnd exercises the full flow a host drives: register, configure
// a dataset, fix the chunk layout, then move chunks through the pipeline
// in both directions.
func TestEndToEnd(t *testing.T) {
	reg := pipeline.NewRegistry(WithCollectSink(t))
	_, _, err := Register(reg)
	require.NoError(t, err)

	dcpl := pipeline.NewDatasetConfig(10, 10)
	AddFilter(dcpl, 5, true, format.CompressorZstd)

	dtype := pipeline.Datatype{Class: pipeline.TypeClassFloat, Size: 4}
	require.NoError(t, filter.SetLocal(dcpl, dtype))

	_, values, ok := dcpl.FilterByID(FilterID)
	require.True(t, ok)
	assert.Equal(t, uint32(400), values[format.SlotChunkSize])

	p, err := pipeline.NewPipeline(reg, dcpl)
	require.NoError(t, err)

	t.Run("compressible chunk", func(t *testing.T) {
		chunk := make([]byte, 400) // all zeros, must shrink
		encoded, mask, err := p.Encode(chunk)
		require.NoError(t, err)
		assert.Zero(t, mask)
		assert.Less(t, len(encoded), len(chunk))

		decoded, err := p.Decode(encoded, mask)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(chunk, decoded))
	})

	t.Run("incompressible chunk falls back", func(t *testing.T) {
		chunk := make([]byte, 400)
		_, err := rand.Read(chunk)
		require.NoError(t, err)

		encoded, mask, err := p.Encode(chunk)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), mask, "skip recorded in the chunk's filter mask")
		assert.Equal(t, chunk, encoded, "chunk stored raw")

		decoded, err := p.Decode(encoded, mask)
		require.NoError(t, err)
		assert.Equal(t, chunk, decoded)
	})
}

// WithCollectSink wires a collecting sink that dumps reports on test
// failure.
func WithCollectSink(t *testing.T) pipeline.Option {
	t.Helper()

	sink := &pipeline.CollectSink{}
	t.Cleanup(func() {
		if t.Failed() {
			for _, r := range sink.Records() {
				t.Logf("error sink: [%s] %s", r.Class, r.Message)
			}
		}
	})

	return pipeline.WithErrorSink(sink)
}
