package filter

import (
	"fmt"

	"github.com/arloliu/h5blosc/errs"
	"github.com/arloliu/h5blosc/format"
	"github.com/arloliu/h5blosc/pipeline"
)

// ID is the filter's registered identity in the host's filter id space.
const ID pipeline.FilterID = 32001

// Name is the filter's registered short name.
const Name = "blosc"

// Params is the decoded form of the filter's parameter array.
type Params struct {
	// Revision is the parameter-encoding revision from slot 0.
	Revision uint32

	// CodecVersion is the codec version tag from slot 1.
	CodecVersion uint32

	// TypeSize is the base element size in bytes from slot 2.
	TypeSize int

	// ChunkSize is the uncompressed chunk size hint from slot 3. It is
	// never trusted as ground truth on decompress.
	ChunkSize int

	// Level is the compression level from slot 4, or the default.
	Level int

	// Shuffle is the shuffle request from slot 5, or the default.
	Shuffle bool

	// Compressor is the backend code from slot 6, or the default.
	Compressor format.CompressorCode
}

// ParseClientData decodes a persisted parameter array, substituting the
// documented default for every absent optional slot.
//
// Returns:
//   - Params: Decoded parameters
//   - error: ErrInvalidClientData when the mandatory slots are missing
func ParseClientData(cd []uint32) (Params, error) {
	if len(cd) < format.MandatorySlots {
		return Params{}, fmt.Errorf("%w: have %d of %d mandatory slots", errs.ErrInvalidClientData, len(cd), format.MandatorySlots)
	}

	p := Params{
		Revision:     cd[format.SlotRevision],
		CodecVersion: cd[format.SlotCodecVersion],
		TypeSize:     int(cd[format.SlotTypeSize]),
		ChunkSize:    int(cd[format.SlotChunkSize]),
		Level:        format.DefaultLevel,
		Shuffle:      format.DefaultShuffle != 0,
		Compressor:   format.DefaultCompressor,
	}

	if len(cd) > format.SlotLevel {
		p.Level = int(cd[format.SlotLevel])
	}
	if len(cd) > format.SlotShuffle {
		p.Shuffle = cd[format.SlotShuffle] != 0
	}
	if len(cd) > format.SlotCompressor {
		p.Compressor = format.CompressorCode(cd[format.SlotCompressor])
	}

	return p, nil
}

// ClientData encodes the parameters back into the full slot layout,
// including the optional slots.
func (p Params) ClientData() []uint32 {
	cd := make([]uint32, format.SlotCompressor+1)
	cd[format.SlotRevision] = p.Revision
	cd[format.SlotCodecVersion] = p.CodecVersion
	cd[format.SlotTypeSize] = uint32(p.TypeSize)
	cd[format.SlotChunkSize] = uint32(p.ChunkSize)
	cd[format.SlotLevel] = uint32(p.Level)
	if p.Shuffle {
		cd[format.SlotShuffle] = 1
	}
	cd[format.SlotCompressor] = uint32(p.Compressor)

	return cd
}
