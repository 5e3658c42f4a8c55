package ioc

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// Errors raised by the registry itself are typed errors wrapping one of
// these sentinels. Errors returned by user constructors, providers and
// interceptors are never wrapped.

var (
	// Registration errors.
	ErrNilType            = errors.New("type cannot be nil")
	ErrInvalidParent      = errors.New("type cannot be its own ancestor")
	ErrNilProvider        = errors.New("provider cannot be nil")
	ErrNilInterceptor     = errors.New("interceptor cannot be nil")
	ErrInvalidConstructor = errors.New("invalid constructor")

	// Construction errors.
	ErrNoConstructor    = errors.New("dependencies declared without a constructor")
	ErrNotConstructible = errors.New("type cannot be default-constructed")
	ErrArityMismatch    = errors.New("constructor arity does not match declared dependencies")
	ErrArgumentType     = errors.New("resolved dependency is not assignable to constructor parameter")

	// Immutability errors.
	ErrFrozen       = errors.New("instance is frozen")
	ErrNotFreezable = errors.New("type does not implement Freezer")

	// Proxy errors.
	ErrMethodNotFound   = errors.New("method not found")
	ErrArgumentMismatch = errors.New("arguments do not match method signature")

	// Context errors.
	ErrNoRegistry = errors.New("no registry in context")
)

var (
	_ error = ConstructorError{}
	_ error = FreezeError{}
	_ error = MethodError{}
	_ error = TypeMismatchError{}
	_ error = ModuleError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// ConstructorError reports why the registry could not build a type itself,
// as opposed to a failure returned by the user's constructor.
type ConstructorError struct {
	Type   reflect.Type
	Detail string
	Cause  error
}

func (e ConstructorError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("cannot construct %s: %v: %s", formatType(e.Type), e.Cause, e.Detail)
	}
	return fmt.Sprintf("cannot construct %s: %v", formatType(e.Type), e.Cause)
}

func (e ConstructorError) Unwrap() error {
	return e.Cause
}

// FreezeError is returned by the Immutable interceptor for instances that
// cannot be frozen.
type FreezeError struct {
	Type reflect.Type
}

func (e FreezeError) Error() string {
	return fmt.Sprintf("cannot freeze %s: %v", formatType(e.Type), ErrNotFreezable)
}

func (e FreezeError) Unwrap() error {
	return ErrNotFreezable
}

// MethodError describes a failed proxy call before the target method ran.
type MethodError struct {
	Type   reflect.Type
	Method string
	Args   []reflect.Type
	Cause  error
}

func (e MethodError) Error() string {
	if len(e.Args) == 0 {
		return fmt.Sprintf("%s.%s: %v", formatType(e.Type), e.Method, e.Cause)
	}

	argStrs := make([]string, len(e.Args))
	for i, a := range e.Args {
		argStrs[i] = formatType(a)
	}
	return fmt.Sprintf("%s.%s(%s): %v", formatType(e.Type), e.Method, strings.Join(argStrs, ", "), e.Cause)
}

func (e MethodError) Unwrap() error {
	return e.Cause
}

// TypeMismatchError indicates a provider produced a value that cannot be
// used as the requested type.
type TypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
	Context  string // "resolve", "proxy target"
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Context, formatType(e.Expected), formatType(e.Actual))
}

// ModuleError wraps errors from module installation.
type ModuleError struct {
	Module string
	Cause  error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("module %q: %v", e.Module, e.Cause)
}

func (e ModuleError) Unwrap() error {
	return e.Cause
}

// IsFrozen reports whether err was caused by mutating a frozen instance.
func IsFrozen(err error) bool {
	return errors.Is(err, ErrFrozen)
}

// IsConstructorError reports whether err was raised by the registry while
// building a type.
func IsConstructorError(err error) bool {
	var ce ConstructorError
	return errors.As(err, &ce)
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Slice:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "[]" + elem.Name()
		}
		return t.String()
	case reflect.Func, reflect.Map:
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
