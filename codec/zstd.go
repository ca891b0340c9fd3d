package codec

import "github.com/arloliu/h5blosc/format"

// ZstdBackend compresses with Zstandard.
//
// The default build uses the pure-Go klauspost/compress encoder; building
// with the gozstd tag switches to the cgo libzstd bindings instead. Both
// produce standard zstd streams, so frames written by one build are read by
// the other.
type ZstdBackend struct{}

var _ Backend = ZstdBackend{}

func (ZstdBackend) Code() format.CompressorCode { return format.CompressorZstd }
func (ZstdBackend) Name() string                { return "zstd" }
