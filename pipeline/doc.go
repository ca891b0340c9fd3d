// Package pipeline provides the host-side surface a chunk filter plugs
// into: filter class descriptors and their registry, the dataset
// configuration that persists per-filter parameter arrays, a minimal
// datatype description, an error sink, and the pipeline that runs
// registered filters over chunk data.
//
// The shapes mirror what a chunked-storage host such as HDF5 hands a filter
// (H5Z class registration, the dataset creation property list, H5T type
// queries, the H5E error stack), reduced to the interface the filter core
// actually needs.
//
// # Filters
//
// A filter is described by a [Class]: a stable numeric id, a short name,
// a configuration hook run once when a dataset's chunk layout is fixed, and
// a processing hook run once per chunk per direction. Hosts with different
// capability levels consume different wire layouts of the same descriptor;
// [Class.WireV1] and [Class.WireV2] translate the single internal
// representation at the boundary.
//
// Filters are applied in order on write and in reverse order on read. A
// chunk-level skip mask records which optional filters did not process a
// chunk, so readers know to leave those stages out.
package pipeline
