package ioc

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/junioryono/ioc/internal/reflection"
)

// Provide registers fn as the provider of T.
func Provide[T any](r *Registry, fn func() (T, error)) error {
	if fn == nil {
		return ErrNilProvider
	}
	return r.RegisterProvider(TypeOf[T](), func() (any, error) {
		return fn()
	})
}

// defaultProvider returns the provider used for t when none was registered.
// Each call constructs a new value and passes it through t's interceptors;
// it never caches.
func (r *Registry) defaultProvider(t reflect.Type) Provider {
	name := formatType(t)

	return func() (any, error) {
		instance, err := r.construct(t)
		if err == nil {
			instance, err = r.Intercept(t, instance)
		}

		r.metrics.constructed(name, err)
		if err != nil {
			r.logger.Warn("construction failed", zap.String("type", name), zap.Error(err))
			return nil, err
		}
		return instance, nil
	}
}

// construct builds a bare value of t from its constructor and dependencies.
func (r *Registry) construct(t reflect.Type) (any, error) {
	r.mu.RLock()
	var ctor *reflection.ConstructorInfo
	if e, ok := r.entries[t]; ok {
		ctor = e.constructor
	}
	deps := r.visibleDependenciesLocked(t)
	r.mu.RUnlock()

	if ctor == nil {
		if len(deps) > 0 {
			return nil, ConstructorError{Type: t, Cause: ErrNoConstructor}
		}
		return zeroConstruct(t)
	}

	if !ctor.Accepts(len(deps)) {
		return nil, ConstructorError{
			Type:   t,
			Cause:  ErrArityMismatch,
			Detail: formatArity(ctor.Type, len(deps)),
		}
	}

	args, err := r.resolve(deps)
	if err != nil {
		return nil, err
	}

	in, err := reflection.Arguments(ctor.Type, args)
	if err != nil {
		return nil, ConstructorError{Type: t, Cause: ErrArgumentType, Detail: err.Error()}
	}

	return ctor.Call(in)
}

// zeroConstruct is construction without arguments.
func zeroConstruct(t reflect.Type) (any, error) {
	switch t.Kind() {
	case reflect.Pointer:
		return reflect.New(t.Elem()).Interface(), nil
	case reflect.Map:
		return reflect.MakeMap(t).Interface(), nil
	case reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Invalid:
		return nil, ConstructorError{Type: t, Cause: ErrNotConstructible}
	default:
		return reflect.Zero(t).Interface(), nil
	}
}

func formatArity(fnType reflect.Type, deps int) string {
	if fnType.IsVariadic() {
		return fmt.Sprintf("%s takes at least %d arguments, %d dependencies declared", fnType, fnType.NumIn()-1, deps)
	}
	return fmt.Sprintf("%s takes %d arguments, %d dependencies declared", fnType, fnType.NumIn(), deps)
}
