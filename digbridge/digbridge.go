// Package digbridge exposes registry-managed types to a go.uber.org/dig
// container.
package digbridge

import (
	"fmt"
	"reflect"

	"go.uber.org/dig"

	"github.com/junioryono/ioc"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Export provides each of types to c. The generated constructors take no
// parameters and call r.Instance, so construction, dependencies and
// interceptors stay with the registry. dig calls each constructor at most
// once per container, so exported types behave as singletons inside c
// whatever their lifetime in r.
func Export(r *ioc.Registry, c *dig.Container, types ...reflect.Type) error {
	for _, t := range types {
		if t == nil {
			return ioc.ErrNilType
		}

		if err := c.Provide(constructorFor(r, t).Interface()); err != nil {
			return fmt.Errorf("failed to export %v: %w", t, err)
		}
	}
	return nil
}

// ExportType is Export for a single type T.
func ExportType[T any](r *ioc.Registry, c *dig.Container) error {
	return Export(r, c, ioc.TypeOf[T]())
}

// constructorFor builds a func() (t, error) backed by r.
func constructorFor(r *ioc.Registry, t reflect.Type) reflect.Value {
	fnType := reflect.FuncOf(nil, []reflect.Type{t, errType}, false)

	return reflect.MakeFunc(fnType, func([]reflect.Value) []reflect.Value {
		instance, err := r.Instance(t)
		if err != nil {
			return []reflect.Value{reflect.Zero(t), reflect.ValueOf(&err).Elem()}
		}

		out := reflect.New(t).Elem()
		if instance != nil {
			v := reflect.ValueOf(instance)
			if !v.Type().AssignableTo(t) {
				err := fmt.Errorf("registry returned %v for %v", v.Type(), t)
				return []reflect.Value{reflect.Zero(t), reflect.ValueOf(&err).Elem()}
			}
			out.Set(v)
		}
		return []reflect.Value{out, reflect.Zero(errType)}
	})
}
