package ioc

import (
	"reflect"
	"sync/atomic"
)

// Freezer is implemented by types that can be made read-only.
type Freezer interface {
	Freeze()
	IsFrozen() bool
}

// FreezeGuard is an embeddable Freezer. Mutating methods of the embedding
// type call Mutable first and stop when it returns an error.
//
//	type Account struct {
//	    ioc.FreezeGuard
//	    balance int
//	}
//
//	func (a *Account) Deposit(n int) error {
//	    if err := a.Mutable(); err != nil {
//	        return err
//	    }
//	    a.balance += n
//	    return nil
//	}
type FreezeGuard struct {
	frozen atomic.Bool
}

var _ Freezer = (*FreezeGuard)(nil)

// Freeze marks the value read-only. It cannot be undone.
func (g *FreezeGuard) Freeze() {
	g.frozen.Store(true)
}

// IsFrozen reports whether Freeze has been called.
func (g *FreezeGuard) IsFrozen() bool {
	return g.frozen.Load()
}

// Mutable returns ErrFrozen once the value is frozen.
func (g *FreezeGuard) Mutable() error {
	if g.frozen.Load() {
		return ErrFrozen
	}
	return nil
}

// Immutable is the built-in interceptor that freezes instances. Instances
// that do not implement Freezer fail with a FreezeError.
func Immutable(instance any) (any, error) {
	f, ok := instance.(Freezer)
	if !ok {
		return nil, FreezeError{Type: reflect.TypeOf(instance)}
	}
	f.Freeze()
	return instance, nil
}

// MakeImmutable freezes every instance the default provider builds for t.
func (r *Registry) MakeImmutable(t reflect.Type) error {
	return r.AddInterceptor(t, Immutable)
}
