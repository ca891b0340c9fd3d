package pipeline

// FilterID identifies a filter class. Ids up to 255 are reserved for the
// host's built-in filters; registered third-party filters use the 32000+
// space.
type FilterID uint16

// Flags carries both a filter's pipeline configuration bits and the
// per-invocation direction bit, matching the host's single flag word.
type Flags uint32

const (
	// FlagOptional marks a filter the pipeline may skip when it cannot
	// process a chunk; the chunk is then stored raw.
	FlagOptional Flags = 0x0001

	// FlagReverse is set on a processing invocation that decodes (reads)
	// rather than encodes (writes).
	FlagReverse Flags = 0x0100
)

// Optional reports whether the optional bit is set.
func (f Flags) Optional() bool {
	return f&FlagOptional != 0
}

// Reverse reports whether the invocation decodes rather than encodes.
func (f Flags) Reverse() bool {
	return f&FlagReverse != 0
}

// SetLocalFunc is a filter's configuration hook, run exactly once when a
// dataset's chunk layout is fixed. It inspects the dataset's element type
// and chunk dimensions and writes the filter's parameter array back into
// the dataset configuration.
type SetLocalFunc func(dcpl *DatasetConfig, dtype Datatype) error

// FilterFunc is a filter's processing hook, run once per chunk per
// direction. clientData is the parameter array persisted in the dataset
// configuration. The returned size is the new logical length of buf after a
// successful transform; zero means the chunk was not processed.
type FilterFunc func(flags Flags, clientData []uint32, buf *ChunkBuffer) (int, error)

// Class is the internal filter descriptor. There is exactly one internal
// representation; hosts with different capability levels receive it through
// the WireV1/WireV2 translations.
type Class struct {
	// ID is the filter's stable numeric identity.
	ID FilterID

	// Name is a short human-readable filter name for diagnostics.
	Name string

	// EncoderPresent and DecoderPresent advertise which directions this
	// build supports.
	EncoderPresent bool
	DecoderPresent bool

	// SetLocal is the per-dataset configuration hook, may be nil.
	SetLocal SetLocalFunc

	// Filter is the per-chunk processing hook.
	Filter FilterFunc
}

// Registry class versions a host may declare.
const (
	ClassVersion1 = 1 // legacy descriptor without capability fields
	ClassVersion2 = 2 // current descriptor
)

// ClassV1 is the legacy wire shape of a filter descriptor: no version or
// capability fields.
type ClassV1 struct {
	ID       FilterID
	Name     string
	SetLocal SetLocalFunc
	Filter   FilterFunc
}

// ClassV2 is the current wire shape of a filter descriptor.
type ClassV2 struct {
	Version        int
	ID             FilterID
	EncoderPresent uint8
	DecoderPresent uint8
	Name           string
	SetLocal       SetLocalFunc
	Filter         FilterFunc
}

// WireV1 translates the descriptor for a host declaring ClassVersion1.
func (c Class) WireV1() ClassV1 {
	return ClassV1{
		ID:       c.ID,
		Name:     c.Name,
		SetLocal: c.SetLocal,
		Filter:   c.Filter,
	}
}

// WireV2 translates the descriptor for a host declaring ClassVersion2.
func (c Class) WireV2() ClassV2 {
	return ClassV2{
		Version:        ClassVersion2,
		ID:             c.ID,
		EncoderPresent: boolByte(c.EncoderPresent),
		DecoderPresent: boolByte(c.DecoderPresent),
		Name:           c.Name,
		SetLocal:       c.SetLocal,
		Filter:         c.Filter,
	}
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}

	return 0
}
