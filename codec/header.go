package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/h5blosc/errs"
	"github.com/arloliu/h5blosc/format"
)

// HeaderSize is the fixed size of the frame header prefixed to every
// compressed chunk.
const HeaderSize = 24

// Frame flag bits.
const (
	// FlagShuffle records that the byte-shuffle pre-filter was requested for
	// this chunk. The flag is carried for format compatibility and
	// diagnostics; the transform itself is outside this codec.
	FlagShuffle = 0x1
)

// Header is the self-describing frame header at the start of every
// compressed chunk.
//
// All multi-byte fields are little-endian. Layout:
//
//	byte  0     format version
//	byte  1     compressor backend code
//	byte  2     flags
//	byte  3     element type size (clamped to 255)
//	bytes 4-7   uncompressed size
//	bytes 8-11  internal block size
//	bytes 12-15 total frame size, header included
//	bytes 16-23 xxHash64 checksum of the compressed payload
type Header struct {
	Version    uint8
	Compressor format.CompressorCode
	Flags      uint8
	TypeSize   uint8
	NBytes     uint32
	BlockSize  uint32
	CBytes     uint32
	Checksum   uint64
}

// ParseHeader decodes a frame header from the start of data.
//
// Returns:
//   - Header: Decoded header
//   - error: ErrInvalidHeader if data is truncated or the format version is
//     unknown
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: frame shorter than %d bytes", errs.ErrInvalidHeader, HeaderSize)
	}

	h := Header{
		Version:    data[0],
		Compressor: format.CompressorCode(data[1]),
		Flags:      data[2],
		TypeSize:   data[3],
		NBytes:     binary.LittleEndian.Uint32(data[4:8]),
		BlockSize:  binary.LittleEndian.Uint32(data[8:12]),
		CBytes:     binary.LittleEndian.Uint32(data[12:16]),
		Checksum:   binary.LittleEndian.Uint64(data[16:24]),
	}

	if h.Version != format.CodecVersionTag {
		return Header{}, fmt.Errorf("%w: unknown format version %d", errs.ErrInvalidHeader, h.Version)
	}

	return h, nil
}

// Encode serializes the header into b, which must hold at least HeaderSize
// bytes.
func (h Header) Encode(b []byte) {
	b[0] = h.Version
	b[1] = uint8(h.Compressor)
	b[2] = h.Flags
	b[3] = h.TypeSize
	binary.LittleEndian.PutUint32(b[4:8], h.NBytes)
	binary.LittleEndian.PutUint32(b[8:12], h.BlockSize)
	binary.LittleEndian.PutUint32(b[12:16], h.CBytes)
	binary.LittleEndian.PutUint64(b[16:24], h.Checksum)
}

// Shuffled reports whether the shuffle flag was set when the frame was
// written.
func (h Header) Shuffled() bool {
	return h.Flags&FlagShuffle != 0
}

// Sizes reports the uncompressed size, the total frame size and the internal
// block size of the frame starting at data, without decompressing it.
//
// This is how readers size their output buffer: the true size always comes
// from the frame itself, never from metadata stored elsewhere.
func Sizes(data []byte) (nbytes, cbytes, blockSize int, err error) {
	h, err := ParseHeader(data)
	if err != nil {
		return 0, 0, 0, err
	}

	return int(h.NBytes), int(h.CBytes), int(h.BlockSize), nil
}

// checksum computes the payload checksum stored in the frame header.
func checksum(payload []byte) uint64 {
	return xxhash.Sum64(payload)
}

// verifyPayload checks the frame body against the header's byte counts and
// checksum, returning the payload on success.
func verifyPayload(h Header, data []byte) ([]byte, error) {
	if int(h.CBytes) < HeaderSize || int(h.CBytes) > len(data) {
		return nil, fmt.Errorf("%w: frame claims %d bytes, have %d", errs.ErrCorruptPayload, h.CBytes, len(data))
	}

	payload := data[HeaderSize:h.CBytes]
	if sum := xxhash.Sum64(payload); sum != h.Checksum {
		return nil, fmt.Errorf("%w: payload checksum mismatch", errs.ErrCorruptPayload)
	}

	return payload, nil
}
