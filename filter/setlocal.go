package filter

import (
	"fmt"

	"github.com/arloliu/h5blosc/errs"
	"github.com/arloliu/h5blosc/format"
	"github.com/arloliu/h5blosc/pipeline"
)

// SetLocal is the filter's configuration hook, run exactly once when a
// dataset's chunk layout is fixed — not per chunk. It records inside the
// dataset configuration:
//
//  1. the parameter-encoding revision and codec version tag (slots 0-1),
//  2. the base element size in bytes (slot 2), and
//  3. the uncompressed chunk size in bytes (slot 3),
//
// preserving any optional slots (level, shuffle, compressor) the caller
// already stored.
func SetLocal(dcpl *pipeline.DatasetConfig, dtype pipeline.Datatype) error {
	flags, stored, _ := dcpl.FilterByID(ID)

	// First 4 slots are reserved; keep whatever optional slots exist.
	n := len(stored)
	if n < format.MandatorySlots {
		n = format.MandatorySlots
	}
	if n > format.MaxSlots {
		n = format.MaxSlots
	}
	values := make([]uint32, n)
	copy(values, stored)

	values[format.SlotRevision] = format.FilterRevision
	values[format.SlotCodecVersion] = format.CodecVersionTag

	dims := dcpl.ChunkDims()
	if len(dims) > format.MaxChunkRank {
		return fmt.Errorf("%w: rank %d exceeds %d", errs.ErrChunkRankExceeded, len(dims), format.MaxChunkRank)
	}

	typeSize := dtype.Size
	if typeSize <= 0 {
		return fmt.Errorf("%w: element size %d", errs.ErrInvalidTypeSize, typeSize)
	}

	// Record the base type size, unwrapping one level of fixed-size-array
	// typing.
	baseTypeSize := typeSize
	if dtype.Class == pipeline.TypeClassArray {
		if dtype.Super == nil || dtype.Super.Size <= 0 {
			return fmt.Errorf("%w: array type without usable base type", errs.ErrInvalidTypeSize)
		}
		baseTypeSize = dtype.Super.Size
	}

	// Large types shuffle inefficiently and exceed block-size assumptions,
	// so they are treated as size-1 bytes.
	if baseTypeSize > format.MaxTypeSize {
		baseTypeSize = 1
	}
	values[format.SlotTypeSize] = uint32(baseTypeSize)

	// Chunk byte size uses the full element size, base or not.
	chunkBytes := uint32(typeSize)
	for _, d := range dims {
		chunkBytes *= uint32(d)
	}
	values[format.SlotChunkSize] = chunkBytes

	return dcpl.ModifyFilter(ID, flags, values)
}
