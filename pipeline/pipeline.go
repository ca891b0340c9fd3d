package pipeline

import (
	"fmt"

	"github.com/arloliu/h5blosc/errs"
)

// Pipeline runs a dataset's filter entries over chunk data: in order on
// write, in reverse order on read. It resolves each entry against a
// registry once at construction.
type Pipeline struct {
	stages []stage
}

type stage struct {
	class Class
	cfg   FilterConfig
}

// NewPipeline resolves the dataset configuration's filter entries against
// the registry.
//
// Returns:
//   - *Pipeline: Pipeline ready to encode and decode chunks
//   - error: ErrFilterNotRegistered when a non-optional entry has no
//     registered class; unavailable optional filters are dropped
func NewPipeline(reg *Registry, dcpl *DatasetConfig) (*Pipeline, error) {
	p := &Pipeline{}

	for _, cfg := range dcpl.Filters() {
		class, ok := reg.Get(cfg.ID)
		if !ok {
			if cfg.Flags.Optional() {
				continue
			}

			return nil, fmt.Errorf("%w: filter %d", errs.ErrFilterNotRegistered, cfg.ID)
		}

		p.stages = append(p.stages, stage{class: class, cfg: cfg})
	}

	return p, nil
}

// Len returns the number of resolved stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Encode applies the filters in order to one chunk and returns the encoded
// bytes plus the skip mask: bit i set means stage i did not process the
// chunk and readers must skip it.
//
// An optional stage that cannot process a chunk — because the data did not
// shrink or because its codec failed on this data — degrades to passing the
// chunk through raw. Misconfiguration (an unsupported backend, a size-guard
// failure) is surfaced regardless.
func (p *Pipeline) Encode(chunk []byte) ([]byte, uint32, error) {
	data := chunk
	var mask uint32

	for i, st := range p.stages {
		buf := NewChunkBuffer(data)

		n, err := st.class.Filter(st.cfg.Flags&^FlagReverse, st.cfg.Values, buf)
		if err != nil {
			if st.cfg.Flags.Optional() && !errs.IsConfigError(err) {
				mask |= 1 << uint(i)
				continue
			}

			return nil, 0, fmt.Errorf("filter %q encode: %w", st.class.Name, err)
		}
		if n == 0 {
			if !st.cfg.Flags.Optional() {
				return nil, 0, fmt.Errorf("filter %q encode: %w", st.class.Name, errs.ErrCompressionFailed)
			}
			mask |= 1 << uint(i)

			continue
		}

		data = buf.B[:n]
	}

	return data, mask, nil
}

// Decode applies the filters in reverse order to one encoded chunk,
// honoring the skip mask recorded when the chunk was written. Decode
// failures are never degradable.
func (p *Pipeline) Decode(data []byte, mask uint32) ([]byte, error) {
	for i := len(p.stages) - 1; i >= 0; i-- {
		if mask&(1<<uint(i)) != 0 {
			continue
		}

		st := p.stages[i]
		buf := NewChunkBuffer(data)

		n, err := st.class.Filter(st.cfg.Flags|FlagReverse, st.cfg.Values, buf)
		if err != nil {
			return nil, fmt.Errorf("filter %q decode: %w", st.class.Name, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("filter %q decode: %w", st.class.Name, errs.ErrDecompressionFailed)
		}

		data = buf.B[:n]
	}

	return data, nil
}
