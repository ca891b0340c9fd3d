// Package h5blosc provides a blosc-style chunk compression filter for
// HDF5-like chunked storage hosts.
//
// The filter sits in a dataset's filter pipeline: on write it compresses
// each chunk into a self-describing frame, on read it reconstructs the
// exact original bytes. It is registered as an optional filter — chunks
// that do not shrink are stored raw, which is the expected outcome for
// incompressible data and never an error.
//
// # Basic Usage
//
// Register the filter once at load time, add it to a dataset configuration
// and let the pipeline drive it per chunk:
//
//	version, date, _ := h5blosc.Register(nil) // nil = process-wide registry
//	_ = version
//	_ = date
//
//	dcpl := pipeline.NewDatasetConfig(10, 10)
//	h5blosc.AddFilter(dcpl, 5, true, format.CompressorZstd)
//
//	dtype := pipeline.Datatype{Class: pipeline.TypeClassFloat, Size: 4}
//	_ = filter.SetLocal(dcpl, dtype)
//
//	p, _ := pipeline.NewPipeline(pipeline.DefaultRegistry(), dcpl)
//	encoded, mask, _ := p.Encode(chunk)
//	decoded, _ := p.Decode(encoded, mask)
//
// # Concurrency
//
// The filter is safe to invoke concurrently from many workers. Codec state
// lives in per-worker contexts that are never shared, and the hot
// compress/decompress path takes no locks.
//
// # Package Structure
//
// This package is a thin wrapper; the implementation lives in filter
// (parameter array, configuration hook, per-chunk dispatch), codec (framed
// compression engine and backend registry) and pipeline (host-facing
// registry, dataset configuration and pipeline runner).
package h5blosc

import (
	"github.com/arloliu/h5blosc/filter"
	"github.com/arloliu/h5blosc/format"
	"github.com/arloliu/h5blosc/pipeline"
)

// FilterID is the filter's stable numeric identity, in the registered
// third-party filter id space.
const FilterID = filter.ID

// FilterName is the filter's registered short name.
const FilterName = filter.Name

// Version and VersionDate identify this library build for host
// diagnostics.
const (
	Version     = "1.0.0"
	VersionDate = "2025-06-21"
)

// Register registers the blosc filter class with reg, wiring the filter's
// error reporting to the registry's sink. A nil reg registers with the
// process-wide default registry. Registering twice is a no-op, so hosts may
// call this from every load path.
//
// Returns:
//   - string: Library version string for diagnostics
//   - string: Library date string for diagnostics
//   - error: Registration failure
func Register(reg *pipeline.Registry) (string, string, error) {
	if reg == nil {
		reg = pipeline.DefaultRegistry()
	}

	class := filter.NewClass(filter.WithErrorSink(reg.Sink()))
	if err := reg.Register(class); err != nil {
		return "", "", err
	}

	return Version, VersionDate, nil
}

// AddFilter appends the blosc filter to a dataset configuration with the
// given optional parameters. The mandatory slots are left for SetLocal to
// fill when the chunk layout is fixed.
func AddFilter(dcpl *pipeline.DatasetConfig, level int, shuffle bool, compressor format.CompressorCode) {
	values := make([]uint32, format.SlotCompressor+1)
	values[format.SlotLevel] = uint32(level)
	if shuffle {
		values[format.SlotShuffle] = 1
	}
	values[format.SlotCompressor] = uint32(compressor)

	dcpl.AddFilter(filter.ID, pipeline.FlagOptional, values)
}
