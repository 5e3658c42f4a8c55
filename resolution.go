package ioc

import "reflect"

// TypeOf returns the registry key for T. Interface types are keyed by the
// interface itself.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Resolve returns an instance of T from r.
func Resolve[T any](r *Registry) (T, error) {
	var zero T

	instance, err := r.Instance(TypeOf[T]())
	if err != nil {
		return zero, err
	}

	if instance == nil {
		return zero, nil
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, TypeMismatchError{
			Expected: TypeOf[T](),
			Actual:   reflect.TypeOf(instance),
			Context:  "resolve",
		}
	}

	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](r *Registry) T {
	instance, err := Resolve[T](r)
	if err != nil {
		panic(err)
	}
	return instance
}
