package ioc

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/junioryono/ioc/internal/reflection"
)

// Provider is a zero-argument factory producing an instance of one type.
type Provider func() (any, error)

// Registry maps types to the providers that build them.
//
// A Registry is created explicitly with New and passed to the code that
// needs it (see WithRegistry for carrying it in a context). Every type gets
// an entry the first time it is touched; entries live as long as the
// registry.
//
// The entry table is safe for concurrent use, but construction is not
// serialized: two goroutines racing on the first call of a singleton may
// both construct it. Callers that need a single instance in that situation
// must synchronize the first resolution themselves.
type Registry struct {
	id      string
	logger  *zap.Logger
	metrics *metrics

	mu      sync.RWMutex
	entries map[reflect.Type]*entry
}

// entry is the registry's record for one type.
type entry struct {
	typ    reflect.Type
	parent reflect.Type

	constructor *reflection.ConstructorInfo
	provider    Provider

	// dependencies is only meaningful when declared is set; an undeclared
	// type falls back to its nearest ancestor's list.
	dependencies []reflect.Type
	declared     bool

	interceptors []Interceptor
	proxy        *Facade

	singleton   bool
	constructed bool
	cached      any

	// generation changes whenever the provider is replaced, so a stale
	// singleton wrapper cannot store its result over a newer provider.
	generation uint64
}

// New creates an empty Registry.
func New(opts ...Option) (*Registry, error) {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(o)
		}
	}

	if o.id == "" {
		o.id = uuid.NewString()
	}

	m, err := newMetrics(o.registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return &Registry{
		id:      o.id,
		logger:  o.logger.With(zap.String("registry", o.id)),
		metrics: m,
		entries: make(map[reflect.Type]*entry),
	}, nil
}

// MustNew is like New but panics if the registry cannot be created.
func MustNew(opts ...Option) *Registry {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// ID returns the unique identifier of the registry.
func (r *Registry) ID() string {
	return r.id
}

// RegisterProvider replaces the provider of t with p. A singleton set up
// earlier is dropped along with its cached instance; a later MakeSingleton
// wraps p.
func (r *Registry) RegisterProvider(t reflect.Type, p Provider) error {
	if t == nil {
		return ErrNilType
	}
	if p == nil {
		return ErrNilProvider
	}

	r.mu.Lock()
	e := r.entryLocked(t)
	e.provider = p
	e.singleton = false
	e.constructed = false
	e.cached = nil
	e.generation++
	r.mu.Unlock()

	r.logger.Debug("provider registered", zap.Stringer("type", t))
	return nil
}

// Provider returns the current provider of t, building the default provider
// on first use.
func (r *Registry) Provider(t reflect.Type) Provider {
	if t == nil {
		return func() (any, error) { return nil, ErrNilType }
	}

	r.mu.RLock()
	if e, ok := r.entries[t]; ok && e.provider != nil {
		p := e.provider
		r.mu.RUnlock()
		return p
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.providerLocked(r.entryLocked(t))
}

// Instance returns the result of calling t's provider.
func (r *Registry) Instance(t reflect.Type) (any, error) {
	return r.Provider(t)()
}

// SetParent records parent as the type t extends. Dependency lists declared
// on t afterwards build on the nearest ancestor's list.
func (r *Registry) SetParent(t, parent reflect.Type) error {
	if t == nil || parent == nil {
		return ErrNilType
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for cur := parent; cur != nil; {
		if cur == t {
			return fmt.Errorf("%w: %s", ErrInvalidParent, formatType(t))
		}
		e, ok := r.entries[cur]
		if !ok {
			break
		}
		cur = e.parent
	}

	r.entryLocked(t).parent = parent
	r.entryLocked(parent)
	return nil
}

// SetConstructor sets the function that builds t from its resolved
// dependencies. fn must return a value assignable to t, optionally followed
// by an error.
func (r *Registry) SetConstructor(t reflect.Type, fn any) error {
	if t == nil {
		return ErrNilType
	}

	info, err := reflection.Analyze(fn, t)
	if err != nil {
		return ConstructorError{Type: t, Cause: ErrInvalidConstructor, Detail: err.Error()}
	}

	r.mu.Lock()
	r.entryLocked(t).constructor = info
	r.mu.Unlock()

	r.logger.Debug("constructor set", zap.Stringer("type", t), zap.Stringer("constructor", info.Type))
	return nil
}

// Types returns every type the registry has an entry for, sorted by name.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	types := make([]reflect.Type, 0, len(r.entries))
	for t := range r.entries {
		types = append(types, t)
	}
	r.mu.RUnlock()

	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}

// entryLocked returns t's entry, creating it. r.mu must be held for writing.
func (r *Registry) entryLocked(t reflect.Type) *entry {
	e, ok := r.entries[t]
	if !ok {
		e = &entry{typ: t}
		r.entries[t] = e
	}
	return e
}

// providerLocked memoizes the default provider. r.mu must be held for writing.
func (r *Registry) providerLocked(e *entry) Provider {
	if e.provider == nil {
		e.provider = r.defaultProvider(e.typ)
	}
	return e.provider
}
