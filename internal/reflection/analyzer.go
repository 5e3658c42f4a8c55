// Package reflection analyzes constructor functions and method sets and
// invokes them with positional arguments.
package reflection

import (
	"errors"
	"fmt"
	"reflect"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

var (
	// ErrNotFunc is returned when a constructor is not a function.
	ErrNotFunc = errors.New("constructor must be a function")

	// ErrBadResults is returned when a constructor does not return T or (T, error).
	ErrBadResults = errors.New("constructor must return T or (T, error)")

	// ErrNotAssignable is returned when a constructor result cannot be used as the target type.
	ErrNotAssignable = errors.New("constructor result is not assignable to target type")

	// ErrArity is returned when the argument count does not fit the signature.
	ErrArity = errors.New("argument count does not match signature")

	// ErrArgType is returned when an argument cannot be passed for a parameter.
	ErrArgType = errors.New("argument type does not match parameter")
)

// ConstructorInfo contains analyzed information about a constructor function.
type ConstructorInfo struct {
	Value          reflect.Value
	Type           reflect.Type
	Result         reflect.Type
	Parameters     []reflect.Type
	IsVariadic     bool
	HasErrorReturn bool
}

// Analyze validates fn as a constructor for target and records its shape.
func Analyze(fn any, target reflect.Type) (*ConstructorInfo, error) {
	if fn == nil {
		return nil, ErrNotFunc
	}

	val := reflect.ValueOf(fn)
	typ := val.Type()
	if typ.Kind() != reflect.Func || val.IsNil() {
		return nil, ErrNotFunc
	}

	info := &ConstructorInfo{
		Value:      val,
		Type:       typ,
		IsVariadic: typ.IsVariadic(),
	}

	switch typ.NumOut() {
	case 1:
	case 2:
		if typ.Out(1) != errType {
			return nil, ErrBadResults
		}
		info.HasErrorReturn = true
	default:
		return nil, ErrBadResults
	}

	info.Result = typ.Out(0)
	if info.Result == errType {
		return nil, ErrBadResults
	}
	if target != nil && !info.Result.AssignableTo(target) {
		return nil, fmt.Errorf("%w: %v is not assignable to %v", ErrNotAssignable, info.Result, target)
	}

	info.Parameters = make([]reflect.Type, typ.NumIn())
	for i := range info.Parameters {
		info.Parameters[i] = typ.In(i)
	}

	return info, nil
}

// Accepts reports whether the constructor can be called with n arguments.
func (c *ConstructorInfo) Accepts(n int) bool {
	return acceptsCount(c.Type, n)
}

// Call invokes the constructor with prepared arguments (see Arguments). The
// constructor's own error result is returned as-is.
func (c *ConstructorInfo) Call(in []reflect.Value) (any, error) {
	results := c.Value.Call(in)

	if c.HasErrorReturn {
		if errVal := results[1]; !errVal.IsNil() {
			return nil, errVal.Interface().(error)
		}
	}

	return results[0].Interface(), nil
}

// Arguments converts args into call values for the function type fnType,
// honouring variadic signatures. Nil arguments become zero values for
// nillable parameters.
func Arguments(fnType reflect.Type, args []any) ([]reflect.Value, error) {
	if !acceptsCount(fnType, len(args)) {
		return nil, fmt.Errorf("%w: %d arguments for %v", ErrArity, len(args), fnType)
	}

	n := fnType.NumIn()
	values := make([]reflect.Value, len(args))
	for i, arg := range args {
		var param reflect.Type
		if fnType.IsVariadic() && i >= n-1 {
			param = fnType.In(n - 1).Elem()
		} else {
			param = fnType.In(i)
		}

		if arg == nil {
			if !Nillable(param) {
				return nil, fmt.Errorf("%w: nil for parameter %d (%v)", ErrArgType, i, param)
			}
			values[i] = reflect.Zero(param)
			continue
		}

		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(param) {
			return nil, fmt.Errorf("%w: %v for parameter %d (%v)", ErrArgType, v.Type(), i, param)
		}
		values[i] = v
	}

	return values, nil
}

// Nillable reports whether nil is a valid value of t.
func Nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func acceptsCount(fnType reflect.Type, n int) bool {
	if fnType.IsVariadic() {
		return n >= fnType.NumIn()-1
	}
	return n == fnType.NumIn()
}
