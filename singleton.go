package ioc

import (
	"reflect"

	"go.uber.org/zap"
)

// MakeSingleton wraps t's current provider so that it runs once. The first
// successful call stores its result and replaces the provider with one that
// returns the stored instance; failed calls store nothing.
//
// Concurrent first calls are not serialized and may each construct an
// instance; the first one stored is cached and the others are returned to
// their callers only. A provider registered after MakeSingleton replaces
// the wrapper, and a call already in flight does not store its result.
func (r *Registry) MakeSingleton(t reflect.Type) error {
	if t == nil {
		return ErrNilType
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.entryLocked(t)
	inner := r.providerLocked(e)
	e.singleton = true
	e.generation++
	gen := e.generation
	e.provider = func() (any, error) {
		instance, err := inner()
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		if e.generation == gen {
			e.cached = instance
			e.constructed = true
			e.provider = r.cachedProvider(t, instance)
			e.generation++
		}
		r.mu.Unlock()

		r.logger.Debug("singleton constructed", zap.Stringer("type", t))
		return instance, nil
	}

	r.logger.Debug("singleton enabled", zap.Stringer("type", t))
	return nil
}

// IsSingleton reports whether MakeSingleton was applied to t.
func (r *Registry) IsSingleton(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[t]
	return ok && e.singleton
}

func (r *Registry) cachedProvider(t reflect.Type, instance any) Provider {
	name := formatType(t)
	return func() (any, error) {
		r.metrics.singletonHit(name)
		return instance, nil
	}
}
