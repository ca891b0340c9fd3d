package pipeline

import (
	"fmt"
	"sync"

	"github.com/arloliu/h5blosc/errs"
)

// Registry holds registered filter classes for a host. Registration happens
// once at load time; lookups on the chunk path are read-only and
// uncontended.
type Registry struct {
	mu           sync.RWMutex
	classes      map[FilterID]Class
	classVersion int
	sink         ErrorSink
}

// Option configures a Registry.
type Option func(*Registry)

// WithClassVersion declares the descriptor wire layout the host consumes.
// Defaults to ClassVersion2.
func WithClassVersion(version int) Option {
	return func(r *Registry) {
		r.classVersion = version
	}
}

// WithErrorSink sets the sink filters report structured errors to.
// Defaults to a NopSink.
func WithErrorSink(sink ErrorSink) Option {
	return func(r *Registry) {
		r.sink = sink
	}
}

// NewRegistry creates an empty filter registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		classes:      make(map[FilterID]Class),
		classVersion: ClassVersion2,
		sink:         NopSink{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a filter class. Registering the same class twice is a no-op
// so load-time registration can be triggered from multiple call sites;
// registering a different class under a taken id fails.
func (r *Registry) Register(c Class) error {
	if c.ID == 0 || c.Filter == nil {
		return fmt.Errorf("%w: class needs an id and a filter hook", errs.ErrFilterNotRegistered)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.classes[c.ID]; ok {
		if existing.Name == c.Name {
			return nil
		}

		err := fmt.Errorf("%w: id %d taken by %q", errs.ErrFilterAlreadyRegistered, c.ID, existing.Name)
		r.sink.Push(ErrClassCantRegister, err.Error())

		return err
	}

	r.classes[c.ID] = c

	return nil
}

// Get returns the registered class for id.
func (r *Registry) Get(id FilterID) (Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.classes[id]

	return c, ok
}

// Wire returns the registered class for id translated to the wire layout
// this registry's host declared: ClassV1 or ClassV2.
func (r *Registry) Wire(id FilterID) (any, bool) {
	c, ok := r.Get(id)
	if !ok {
		return nil, false
	}

	if r.classVersion == ClassVersion1 {
		return c.WireV1(), true
	}

	return c.WireV2(), true
}

// ClassVersion returns the descriptor layout version the host declared.
func (r *Registry) ClassVersion() int {
	return r.classVersion
}

// Sink returns the registry's error sink.
func (r *Registry) Sink() ErrorSink {
	return r.sink
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry, created exactly once.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})

	return defaultRegistry
}
