// Package errs defines the sentinel errors shared across h5blosc packages.
//
// Callers wrap these with fmt.Errorf("...: %w", err) to add context while
// keeping errors.Is checks working across package boundaries.
package errs

import "errors"

var (
	// ErrChunkRankExceeded indicates the dataset's chunk rank is above the
	// supported maximum of 32 dimensions.
	ErrChunkRankExceeded = errors.New("chunk rank exceeds limit")

	// ErrInvalidTypeSize indicates the dataset element type reported a zero
	// or otherwise unusable byte size during filter configuration.
	ErrInvalidTypeSize = errors.New("invalid datatype size")

	// ErrInvalidClientData indicates the persisted filter parameter array is
	// missing its mandatory slots.
	ErrInvalidClientData = errors.New("invalid filter client data")

	// ErrUnsupportedCompressor indicates the parameter array requested a
	// compressor backend that is not compiled into this build.
	ErrUnsupportedCompressor = errors.New("unsupported compressor")

	// ErrChunkTooLarge indicates a requested output buffer exceeds the
	// sanity bound and will not be allocated.
	ErrChunkTooLarge = errors.New("chunk size exceeds limit")

	// ErrCompressionFailed indicates the codec backend reported a failure
	// while compressing a chunk.
	ErrCompressionFailed = errors.New("compression failed")

	// ErrDecompressionFailed indicates the codec backend reported a failure
	// while decompressing a chunk.
	ErrDecompressionFailed = errors.New("decompression failed")

	// ErrInvalidHeader indicates a compressed frame header that is missing,
	// truncated, or carries an unknown format version.
	ErrInvalidHeader = errors.New("invalid frame header")

	// ErrCorruptPayload indicates a compressed frame whose payload does not
	// match its header (bad checksum, wrong sizes, truncated body).
	ErrCorruptPayload = errors.New("corrupt compressed payload")

	// ErrFilterNotRegistered indicates a pipeline references a filter id
	// that no registered class provides.
	ErrFilterNotRegistered = errors.New("filter not registered")

	// ErrFilterAlreadyRegistered indicates a second, different class was
	// registered under an id that is already taken.
	ErrFilterAlreadyRegistered = errors.New("filter already registered")
)

// IsConfigError reports whether err is a misconfiguration rather than a data
// condition. Configuration errors are always surfaced to the host, even on
// the compress path where ordinary codec failures degrade to storing the
// chunk raw.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrUnsupportedCompressor) ||
		errors.Is(err, ErrChunkTooLarge) ||
		errors.Is(err, ErrChunkRankExceeded) ||
		errors.Is(err, ErrInvalidTypeSize) ||
		errors.Is(err, ErrInvalidClientData)
}
