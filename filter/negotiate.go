package filter

import (
	"fmt"

	"github.com/arloliu/h5blosc/codec"
	"github.com/arloliu/h5blosc/errs"
	"github.com/arloliu/h5blosc/pipeline"
)

// maxOutputSize bounds how large an output buffer a single chunk may
// request. A frame header claiming more than this is treated as a
// misconfiguration or corruption, not allocated.
const maxOutputSize = 1 << 31 // 2GiB

// compressOutputCapacity sizes the write-path output buffer: exactly the
// caller-declared buffer capacity. The filter never assumes its output will
// be smaller than the input and never writes past the caller's capacity; a
// frame that does not fit falls back to raw storage instead.
func compressOutputCapacity(buf *pipeline.ChunkBuffer) int {
	return buf.Cap()
}

// decompressOutputSize determines the read-path output size from the
// self-describing header at the start of the compressed payload.
//
// The slot-3 size hint stored in the parameter array is deliberately not
// consulted: other filters in the pipeline can change the effective buffer
// size between this filter and storage, so only the frame itself knows the
// true uncompressed size.
func decompressOutputSize(data []byte) (int, error) {
	nbytes, cbytes, _, err := codec.Sizes(data)
	if err != nil {
		return 0, err
	}

	if cbytes > len(data) {
		return 0, fmt.Errorf("%w: frame claims %d bytes, chunk holds %d", errs.ErrCorruptPayload, cbytes, len(data))
	}
	if nbytes <= 0 || nbytes > maxOutputSize {
		return 0, fmt.Errorf("%w: frame requests a %d byte output buffer", errs.ErrChunkTooLarge, nbytes)
	}

	return nbytes, nil
}
