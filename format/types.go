package format

// CompressorCode identifies a codec backend inside a compressed frame and in
// slot 6 of the filter parameter array. The numbering follows the blosc
// compressor codes so parameter arrays written by the C filter resolve to
// the same backend here.
type CompressorCode uint32

const (
	CompressorBloscLZ CompressorCode = 0 // CompressorBloscLZ is recognized but not compiled in.
	CompressorLZ4     CompressorCode = 1 // CompressorLZ4 is the baseline backend.
	CompressorLZ4HC   CompressorCode = 2 // CompressorLZ4HC trades speed for ratio.
	CompressorSnappy  CompressorCode = 3 // CompressorSnappy is snappy-framed S2.
	CompressorZlib    CompressorCode = 4 // CompressorZlib is deflate.
	CompressorZstd    CompressorCode = 5 // CompressorZstd is Zstandard.
	CompressorS2      CompressorCode = 6 // CompressorS2 is an extension backend.
)

func (c CompressorCode) String() string {
	switch c {
	case CompressorBloscLZ:
		return "blosclz"
	case CompressorLZ4:
		return "lz4"
	case CompressorLZ4HC:
		return "lz4hc"
	case CompressorSnappy:
		return "snappy"
	case CompressorZlib:
		return "zlib"
	case CompressorZstd:
		return "zstd"
	case CompressorS2:
		return "s2"
	default:
		return "unknown"
	}
}

// Filter parameter array slot positions. Slot positions are immutable wire
// contracts: later revisions may append new optional slots but never change
// the meaning of an existing one.
const (
	SlotRevision     = 0 // parameter-encoding revision
	SlotCodecVersion = 1 // codec library version tag
	SlotTypeSize     = 2 // base element size in bytes
	SlotChunkSize    = 3 // uncompressed chunk size hint in bytes
	SlotLevel        = 4 // optional: compression level
	SlotShuffle      = 5 // optional: shuffle enabled (0/1)
	SlotCompressor   = 6 // optional: compressor backend code
	SlotReserved     = 7 // unused

	// MandatorySlots is the number of slots always present once a dataset's
	// pipeline has been configured.
	MandatorySlots = 4

	// MaxSlots is the fixed capacity of the parameter array.
	MaxSlots = 8
)

const (
	// FilterRevision is the current parameter-encoding revision stored in
	// slot 0.
	FilterRevision = 2

	// CodecVersionTag is the codec format version stored in slot 1 and in
	// the first byte of every compressed frame.
	CodecVersionTag = 2

	// MaxChunkRank is the highest chunk dimensionality SetLocal accepts.
	MaxChunkRank = 32

	// MaxTypeSize is the largest base element size the shuffle stage
	// handles. Larger types are recorded as size 1 and treated as plain
	// bytes.
	MaxTypeSize = 255

	// DefaultLevel is substituted when slot 4 is absent.
	DefaultLevel = 5

	// DefaultShuffle is substituted when slot 5 is absent.
	DefaultShuffle = 1

	// DefaultCompressor is substituted when slot 6 is absent.
	DefaultCompressor = CompressorLZ4
)
