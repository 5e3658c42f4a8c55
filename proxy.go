package ioc

import (
	"reflect"
	"sort"

	"go.uber.org/zap"

	"github.com/junioryono/ioc/internal/reflection"
)

// Facade forwards method calls to an instance of one type resolved at call
// time. It never holds an instance itself: for a type that is not a
// singleton, every call may reach a different object.
type Facade struct {
	registry *Registry
	typ      reflect.Type
	name     string
	methods  map[string]reflection.Method
}

// Proxy returns the facade for t, building it on first use. The method table
// is taken from t's exported method set when the facade is built.
func (r *Registry) Proxy(t reflect.Type) *Facade {
	if t == nil {
		return &Facade{registry: r, methods: map[string]reflection.Method{}}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.entryLocked(t)
	if e.proxy == nil {
		e.proxy = newFacade(r, t)
		r.logger.Debug("proxy built", zap.Stringer("type", t), zap.Int("methods", len(e.proxy.methods)))
	}
	return e.proxy
}

// ProxyOf returns the facade for T.
func ProxyOf[T any](r *Registry) *Facade {
	return r.Proxy(TypeOf[T]())
}

func newFacade(r *Registry, t reflect.Type) *Facade {
	f := &Facade{
		registry: r,
		typ:      t,
		name:     formatType(t),
		methods:  make(map[string]reflection.Method),
	}
	for _, m := range reflection.Methods(t) {
		f.methods[m.Name] = m
	}
	return f
}

// Type returns the type calls are forwarded to.
func (f *Facade) Type() reflect.Type {
	return f.typ
}

// Methods returns the names of the forwarded methods, sorted.
func (f *Facade) Methods() []string {
	names := make([]string, 0, len(f.methods))
	for name := range f.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the facade forwards a method called name.
func (f *Facade) Has(name string) bool {
	_, ok := f.methods[name]
	return ok
}

// Call resolves an instance and invokes its method name with args.
//
// The method's results are returned in order. When the last result is a
// non-nil error it is also returned as err. Failures to resolve the instance
// are returned unchanged; unknown methods and unusable arguments produce a
// MethodError.
func (f *Facade) Call(name string, args ...any) ([]any, error) {
	if f.typ == nil {
		return nil, ErrNilType
	}

	m, ok := f.methods[name]
	if !ok {
		return nil, MethodError{Type: f.typ, Method: name, Cause: ErrMethodNotFound}
	}

	if _, err := reflection.Arguments(m.Signature, args); err != nil {
		return nil, MethodError{Type: f.typ, Method: name, Args: argTypes(args), Cause: ErrArgumentMismatch}
	}

	instance, err := f.registry.Instance(f.typ)
	if err != nil {
		return nil, err
	}

	receiver, err := reflection.Receiver(f.typ, instance)
	if err != nil {
		return nil, TypeMismatchError{Expected: f.typ, Actual: reflect.TypeOf(instance), Context: "proxy target"}
	}

	f.registry.metrics.proxyCall(f.name, name)
	return reflection.CallMethod(receiver, m, args)
}

// Forward resolves the facade's instance as T and passes it to fn. It is the
// typed building block for hand-written forwarding wrappers:
//
//	func (p mailerProxy) Send(to string) error {
//	    _, err := ioc.Forward(p.facade, func(m *Mailer) (struct{}, error) {
//	        return struct{}{}, m.Send(to)
//	    })
//	    return err
//	}
func Forward[T, R any](f *Facade, fn func(T) (R, error)) (R, error) {
	var zero R
	if f.typ == nil {
		return zero, ErrNilType
	}

	instance, err := f.registry.Instance(f.typ)
	if err != nil {
		return zero, err
	}

	target, ok := instance.(T)
	if !ok {
		return zero, TypeMismatchError{Expected: TypeOf[T](), Actual: reflect.TypeOf(instance), Context: "proxy target"}
	}

	return fn(target)
}

func argTypes(args []any) []reflect.Type {
	types := make([]reflect.Type, len(args))
	for i, a := range args {
		types[i] = reflect.TypeOf(a)
	}
	return types
}
