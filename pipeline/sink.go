package pipeline

import "sync"

// ErrorClass is the severity classification attached to every record pushed
// onto the host's error sink.
type ErrorClass uint8

const (
	// ErrClassCallback marks a failure inside a filter callback during
	// chunk processing or dataset configuration.
	ErrClassCallback ErrorClass = iota

	// ErrClassCantRegister marks a failure to register a filter class.
	ErrClassCantRegister
)

func (c ErrorClass) String() string {
	switch c {
	case ErrClassCallback:
		return "callback"
	case ErrClassCantRegister:
		return "cantregister"
	default:
		return "unknown"
	}
}

// ErrorSink receives structured error reports from filters before they
// return failure to the pipeline. It is the stand-in for the host's error
// stack.
type ErrorSink interface {
	// Push records one error with its severity classification.
	Push(class ErrorClass, message string)
}

// NopSink discards all reports. It is the default sink.
type NopSink struct{}

func (NopSink) Push(ErrorClass, string) {}

// ErrorRecord is one report captured by a CollectSink.
type ErrorRecord struct {
	Class   ErrorClass
	Message string
}

// CollectSink captures reports in memory. It is safe for concurrent use and
// is intended for hosts that surface errors after the fact, and for tests.
type CollectSink struct {
	mu      sync.Mutex
	records []ErrorRecord
}

func (s *CollectSink) Push(class ErrorClass, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, ErrorRecord{Class: class, Message: message})
}

// Records returns a copy of everything pushed so far.
func (s *CollectSink) Records() []ErrorRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ErrorRecord, len(s.records))
	copy(out, s.records)

	return out
}

// Reset discards all captured records.
func (s *CollectSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}
