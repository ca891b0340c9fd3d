package pipeline

import (
	"fmt"

	"github.com/arloliu/h5blosc/errs"
)

// TypeClass classifies a dataset element type as far as filters care: a
// fixed-size array type wraps a base type, everything else is treated as a
// scalar of its declared size.
type TypeClass uint8

const (
	TypeClassInteger TypeClass = iota
	TypeClassFloat
	TypeClassOpaque
	TypeClassArray
)

// Datatype describes a dataset's element type.
type Datatype struct {
	// Class is the type's classification.
	Class TypeClass

	// Size is the full element size in bytes. For an array type this is the
	// size of the whole composite, not the base scalar.
	Size int

	// Super is the base type of an array type; nil otherwise.
	Super *Datatype
}

// FilterConfig is one persisted filter entry in a dataset configuration:
// the filter id, its pipeline flags and its parameter array.
type FilterConfig struct {
	ID     FilterID
	Flags  Flags
	Values []uint32
}

// DatasetConfig is the slice of the dataset creation property list filters
// interact with: the chunk dimension extents and the ordered filter entries
// with their persisted parameter arrays.
type DatasetConfig struct {
	chunkDims []uint64
	filters   []FilterConfig
}

// NewDatasetConfig creates a dataset configuration with the given chunk
// dimension extents.
func NewDatasetConfig(chunkDims ...uint64) *DatasetConfig {
	return &DatasetConfig{
		chunkDims: append([]uint64(nil), chunkDims...),
	}
}

// ChunkDims returns the chunk dimension extents.
func (d *DatasetConfig) ChunkDims() []uint64 {
	return d.chunkDims
}

// AddFilter appends a filter entry to the pipeline configuration.
func (d *DatasetConfig) AddFilter(id FilterID, flags Flags, values []uint32) {
	d.filters = append(d.filters, FilterConfig{
		ID:     id,
		Flags:  flags,
		Values: append([]uint32(nil), values...),
	})
}

// FilterByID returns the flags and parameter array of the filter entry with
// the given id.
func (d *DatasetConfig) FilterByID(id FilterID) (Flags, []uint32, bool) {
	for _, f := range d.filters {
		if f.ID == id {
			return f.Flags, f.Values, true
		}
	}

	return 0, nil, false
}

// ModifyFilter replaces the flags and parameter array of an existing filter
// entry.
func (d *DatasetConfig) ModifyFilter(id FilterID, flags Flags, values []uint32) error {
	for i := range d.filters {
		if d.filters[i].ID == id {
			d.filters[i].Flags = flags
			d.filters[i].Values = append([]uint32(nil), values...)

			return nil
		}
	}

	return fmt.Errorf("%w: filter %d not in dataset configuration", errs.ErrFilterNotRegistered, id)
}

// Filters returns the ordered filter entries.
func (d *DatasetConfig) Filters() []FilterConfig {
	return d.filters
}
