package ioc

import (
	"reflect"
)

// A DeclareOption describes one aspect of a type's registration.
type DeclareOption interface {
	applyDeclareOption(*declaration)
}

type declaration struct {
	parent       reflect.Type
	dependencies []reflect.Type
	inject       bool
	constructor  any
	provider     Provider
	interceptors []Interceptor
	singleton    bool
}

type declareOptionFunc func(*declaration)

func (f declareOptionFunc) applyDeclareOption(d *declaration) {
	f(d)
}

// Extends links the declared type to its parent P so that its dependency
// list builds on P's.
func Extends[P any]() DeclareOption {
	return declareOptionFunc(func(d *declaration) {
		d.parent = TypeOf[P]()
	})
}

// Inject declares dependency types, in constructor parameter order.
// Multiple Inject options accumulate in the order given.
func Inject(types ...reflect.Type) DeclareOption {
	return declareOptionFunc(func(d *declaration) {
		d.inject = true
		d.dependencies = append(d.dependencies, types...)
	})
}

// InjectType declares a single dependency on D.
func InjectType[D any]() DeclareOption {
	return Inject(TypeOf[D]())
}

// Constructor sets the function that receives the resolved dependencies.
func Constructor(fn any) DeclareOption {
	return declareOptionFunc(func(d *declaration) {
		d.constructor = fn
	})
}

// WithProvider replaces default construction with p.
func WithProvider(p Provider) DeclareOption {
	return declareOptionFunc(func(d *declaration) {
		d.provider = p
	})
}

// Intercept appends an interceptor.
func Intercept(i Interceptor) DeclareOption {
	return declareOptionFunc(func(d *declaration) {
		d.interceptors = append(d.interceptors, i)
	})
}

// AsImmutable freezes every constructed instance.
func AsImmutable() DeclareOption {
	return Intercept(Immutable)
}

// AsSingleton caches the first constructed instance.
func AsSingleton() DeclareOption {
	return declareOptionFunc(func(d *declaration) {
		d.singleton = true
	})
}

// Declare registers T in one call, the way a type declaration would carry
// its metadata. Options are applied in a fixed order regardless of how
// they are passed: parent, dependencies, constructor, provider,
// interceptors, singleton.
//
//	ioc.Declare[*Son](r,
//	    ioc.Extends[*Father](),
//	    ioc.InjectType[*C](),
//	    ioc.Constructor(NewSon),
//	)
func Declare[T any](r *Registry, opts ...DeclareOption) error {
	return r.declare(TypeOf[T](), opts)
}

func (r *Registry) declare(t reflect.Type, opts []DeclareOption) error {
	d := &declaration{}
	for _, opt := range opts {
		if opt != nil {
			opt.applyDeclareOption(d)
		}
	}

	if d.parent != nil {
		if err := r.SetParent(t, d.parent); err != nil {
			return err
		}
	}

	if d.inject {
		if err := r.DeclareDependencies(t, d.dependencies...); err != nil {
			return err
		}
	}

	if d.constructor != nil {
		if err := r.SetConstructor(t, d.constructor); err != nil {
			return err
		}
	}

	if d.provider != nil {
		if err := r.RegisterProvider(t, d.provider); err != nil {
			return err
		}
	}

	for _, i := range d.interceptors {
		if err := r.AddInterceptor(t, i); err != nil {
			return err
		}
	}

	if d.singleton {
		return r.MakeSingleton(t)
	}
	return nil
}

// ModuleOption is a registration step run against a Registry.
type ModuleOption func(*Registry) error

// NewModule groups registration steps under a name used in errors.
//
//	var Messaging = ioc.NewModule("messaging",
//	    ioc.Type[*Publisher](ioc.AsSingleton()),
//	    ioc.Type[*Subscriber](ioc.AsSingleton()),
//	)
func NewModule(name string, steps ...ModuleOption) ModuleOption {
	return func(r *Registry) error {
		for _, step := range steps {
			if step == nil {
				continue
			}

			if err := step(r); err != nil {
				return ModuleError{Module: name, Cause: err}
			}
		}

		return nil
	}
}

// Type is the ModuleOption form of Declare.
func Type[T any](opts ...DeclareOption) ModuleOption {
	return func(r *Registry) error {
		return Declare[T](r, opts...)
	}
}

// Install runs modules in order and stops at the first error.
func (r *Registry) Install(modules ...ModuleOption) error {
	for _, module := range modules {
		if module == nil {
			continue
		}

		if err := module(r); err != nil {
			return err
		}
	}

	return nil
}
