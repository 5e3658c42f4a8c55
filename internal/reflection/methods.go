package reflection

import (
	"fmt"
	"reflect"
)

// Method is one exported method of a type, described without its receiver.
type Method struct {
	Name      string
	Index     int
	Signature reflect.Type
}

// ReturnsError reports whether the method's last result is an error.
func (m Method) ReturnsError() bool {
	n := m.Signature.NumOut()
	return n > 0 && m.Signature.Out(n-1) == errType
}

// Methods lists the exported method set of t in index order.
func Methods(t reflect.Type) []Method {
	methods := make([]Method, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !m.IsExported() {
			continue
		}

		sig := m.Type
		if t.Kind() != reflect.Interface {
			sig = dropReceiver(m.Type)
		}

		methods = append(methods, Method{Name: m.Name, Index: m.Index, Signature: sig})
	}
	return methods
}

// CallMethod invokes method m on receiver, which must hold a value of the
// type the method was listed from.
func CallMethod(receiver reflect.Value, m Method, args []any) ([]any, error) {
	in, err := Arguments(m.Signature, args)
	if err != nil {
		return nil, err
	}

	out := receiver.Method(m.Index).Call(in)

	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}

	if m.ReturnsError() {
		if err, ok := results[len(results)-1].(error); ok && err != nil {
			return results, err
		}
	}

	return results, nil
}

// Receiver copies instance into a fresh value of type t so that method
// indexes taken from t apply to it.
func Receiver(t reflect.Type, instance any) (reflect.Value, error) {
	if instance == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil instance for %v", ErrArgType, t)
	}

	v := reflect.ValueOf(instance)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%w: %v is not assignable to %v", ErrArgType, v.Type(), t)
	}

	receiver := reflect.New(t).Elem()
	receiver.Set(v)
	return receiver, nil
}

func dropReceiver(fnType reflect.Type) reflect.Type {
	in := make([]reflect.Type, fnType.NumIn()-1)
	for i := range in {
		in[i] = fnType.In(i + 1)
	}

	out := make([]reflect.Type, fnType.NumOut())
	for i := range out {
		out[i] = fnType.Out(i)
	}

	return reflect.FuncOf(in, out, fnType.IsVariadic())
}
