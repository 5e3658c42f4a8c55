// Package ioc provides a small inversion-of-control registry for Go.
//
// # Overview
//
// A Registry maps a type (its reflect.Type) to a Provider, a zero-argument
// factory that builds an instance of it. Types that have no registered
// provider get a default one that
//
//   - resolves the type's declared dependencies through the same registry,
//   - passes them positionally to the type's constructor,
//   - runs the result through the type's interceptors.
//
// Default providers never cache. MakeSingleton wraps a provider so that the
// first instance it builds is returned from then on.
//
// # Basic Usage
//
//	r := ioc.MustNew()
//
//	ioc.Declare[*Mailer](r, ioc.AsSingleton())
//	ioc.Declare[*Signup](r,
//	    ioc.InjectType[*Mailer](),
//	    ioc.Constructor(NewSignup),
//	)
//
//	signup, err := ioc.Resolve[*Signup](r)
//
// # Type Hierarchies
//
// Go has no inheritance, so a type names the type it builds on with
// Extends (or SetParent). Declaring dependencies on such a type prepends
// them to the list of its nearest ancestor:
//
//	ioc.Declare[*Grandfather](r, ioc.InjectType[*A](), ioc.Constructor(NewGrandfather))
//	ioc.Declare[*Father](r, ioc.Extends[*Grandfather](), ioc.InjectType[*B](), ioc.Constructor(NewFather))
//	ioc.Declare[*Son](r, ioc.Extends[*Father](), ioc.InjectType[*C](), ioc.Constructor(NewSon))
//
// NewSon is called with (*C, *B, *A) and forwards (*B, *A) to NewFather
// itself. The merged list is computed when the dependencies are declared,
// so parents must be declared first.
//
// # Interceptors and Immutability
//
// Interceptors run in registration order on every instance a default
// provider builds. The built-in Immutable interceptor freezes values that
// implement Freezer; embed FreezeGuard to get one:
//
//	type Settings struct {
//	    ioc.FreezeGuard
//	    name string
//	}
//
//	func (s *Settings) Rename(name string) error {
//	    if err := s.Mutable(); err != nil {
//	        return err
//	    }
//	    s.name = name
//	    return nil
//	}
//
// Values constructed directly, outside the registry, are not frozen.
//
// # Proxies
//
// Proxy returns a Facade that resolves a fresh instance (or the singleton)
// on every call and forwards the call to it:
//
//	counter := r.Proxy(ioc.TypeOf[*Counter]())
//	results, err := counter.Call("Add", 2)
//
// Forward is the typed form, for writing explicit wrapper types.
//
// # Errors
//
// Errors returned by constructors, providers and interceptors reach the
// caller of Instance unchanged. Errors raised by the registry are typed
// (ConstructorError, FreezeError, MethodError, TypeMismatchError) and wrap
// a sentinel such as ErrArityMismatch.
//
// Dependency cycles are not detected. Resolving a type that depends on
// itself, directly or through others, recurses until the Go runtime aborts
// with a stack overflow.
//
// # Concurrency
//
// The registry's tables are safe for concurrent use. Construction is not
// serialized, so concurrent first calls to a singleton may build more than
// one instance; synchronize the first resolution if that matters.
package ioc
