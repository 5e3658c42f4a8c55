package ioc

import (
	"reflect"

	"go.uber.org/zap"
)

// Interceptor transforms a freshly constructed instance. It may return the
// same value or a replacement; an error aborts the construction.
type Interceptor func(instance any) (any, error)

// AddInterceptor appends i to t's interceptors. Default providers apply them
// in registration order to every instance they build.
func (r *Registry) AddInterceptor(t reflect.Type, i Interceptor) error {
	if t == nil {
		return ErrNilType
	}
	if i == nil {
		return ErrNilInterceptor
	}

	r.mu.Lock()
	e := r.entryLocked(t)
	e.interceptors = append(e.interceptors, i)
	count := len(e.interceptors)
	r.mu.Unlock()

	r.logger.Debug("interceptor added", zap.Stringer("type", t), zap.Int("position", count))
	return nil
}

// Intercept folds t's interceptors over instance, left to right. The first
// error is returned unchanged and the partial result is dropped.
func (r *Registry) Intercept(t reflect.Type, instance any) (any, error) {
	r.mu.RLock()
	var chain []Interceptor
	if e, ok := r.entries[t]; ok && len(e.interceptors) > 0 {
		chain = make([]Interceptor, len(e.interceptors))
		copy(chain, e.interceptors)
	}
	r.mu.RUnlock()

	current := instance
	for _, intercept := range chain {
		next, err := intercept(current)
		if err != nil {
			return nil, err
		}
		current = next
	}

	return current, nil
}
