package ioc

import "context"

type registryKey struct{}

// WithRegistry returns a copy of ctx carrying r.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, r)
}

// FromContext returns the registry stored in ctx, if any.
func FromContext(ctx context.Context) (*Registry, bool) {
	r, ok := ctx.Value(registryKey{}).(*Registry)
	return r, ok && r != nil
}

// ResolveFromContext resolves T from the registry stored in ctx.
func ResolveFromContext[T any](ctx context.Context) (T, error) {
	r, ok := FromContext(ctx)
	if !ok {
		var zero T
		return zero, ErrNoRegistry
	}
	return Resolve[T](r)
}
