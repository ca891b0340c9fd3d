// Package codec implements the framed compression engine behind the h5blosc
// filter.
//
// Every compressed chunk is a self-describing frame: a fixed 24-byte header
// carrying the format version, the compressor backend code, shuffle flags,
// the element type size, the uncompressed and compressed byte counts, the
// internal block size, and an xxHash64 checksum of the payload, followed by
// the backend-compressed payload. The header lets readers size their output
// buffer without decompressing and without trusting any size hint stored
// outside the frame.
//
// # Backends
//
// Compressor backends are registered in a fixed registry keyed by the blosc
// compressor codes:
//
//   - lz4 (1): baseline backend, github.com/pierrec/lz4/v4 block format
//   - lz4hc (2): lz4 high-compression mode
//   - snappy (3): snappy-framed S2, github.com/klauspost/compress/s2
//   - zlib (4): deflate, github.com/klauspost/compress/zlib
//   - zstd (5): Zstandard, github.com/klauspost/compress/zstd (pure Go) or
//     github.com/valyala/gozstd when built with the gozstd tag
//   - s2 (6): raw S2, an extension beyond the blosc code space
//
// Code 0 (blosclz) is recognized by name but not compiled in; requesting it
// fails rather than silently substituting another backend.
//
// # Contexts
//
// All compression state lives in a Context: per-backend encoder/decoder
// instances and a scratch buffer, created lazily on first use. A Context is
// exclusively owned by one goroutine at a time and takes no locks; use
// AcquireContext/ReleaseContext to recycle contexts across chunk operations.
// Backends are configured for strictly single-threaded operation so the
// host's own parallelism is never fought by internal worker pools.
package codec
