// Package filter implements the blosc chunk compression filter: the
// versioned parameter array persisted in dataset metadata, the per-dataset
// configuration hook, and the per-chunk compress/decompress dispatch with
// optional-filter fallback semantics.
//
// # Parameter array
//
// The filter persists its settings as fixed uint32 slots in the dataset's
// pipeline configuration:
//
//	slot 0  parameter-encoding revision        mandatory
//	slot 1  codec library version tag          mandatory
//	slot 2  base element size (bytes)          mandatory
//	slot 3  uncompressed chunk size hint       mandatory
//	slot 4  compression level                  optional, default 5
//	slot 5  shuffle enabled (0/1)              optional, default 1
//	slot 6  compressor backend code            optional, default lz4
//	slot 7  reserved
//
// Slot positions are immutable wire contracts; revisions may only append
// new optional slots. Absent optional slots take the documented defaults.
// Slot 3 is a hint only: the read path always derives the true output size
// from the compressed frame itself, because other filters in the pipeline
// can change the effective buffer size between this filter and storage.
//
// # Fallback
//
// The filter is registered as optional. Compressing a chunk that does not
// shrink returns zero without error; the host stores the chunk raw and
// records the skip in the chunk's filter mask. Decompression has no such
// soft path — an unreadable frame fails the read.
package filter
