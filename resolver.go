package ioc

import (
	"reflect"

	"go.uber.org/zap"
)

// DeclareDependencies prepends deps to the dependency list currently visible
// for t and stores the result as t's own list.
//
// The visible list is t's own list when one was declared, otherwise the
// list of its nearest ancestor (see SetParent). Once stored, the ancestor's
// list no longer applies to t. Declaring again on the same type prepends
// again.
func (r *Registry) DeclareDependencies(t reflect.Type, deps ...reflect.Type) error {
	if t == nil {
		return ErrNilType
	}
	for _, dep := range deps {
		if dep == nil {
			return ErrNilType
		}
	}

	r.mu.Lock()
	visible := r.visibleDependenciesLocked(t)
	merged := make([]reflect.Type, 0, len(deps)+len(visible))
	merged = append(merged, deps...)
	merged = append(merged, visible...)

	e := r.entryLocked(t)
	e.dependencies = merged
	e.declared = true
	r.mu.Unlock()

	r.logger.Debug("dependencies declared",
		zap.Stringer("type", t),
		zap.Stringers("dependencies", merged),
	)
	return nil
}

// Dependencies returns a copy of the dependency list that applies to t.
func (r *Registry) Dependencies(t reflect.Type) []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	visible := r.visibleDependenciesLocked(t)
	if visible == nil {
		return nil
	}
	return append([]reflect.Type(nil), visible...)
}

// visibleDependenciesLocked walks parent links from t to the first type
// with a declared list. r.mu must be held.
func (r *Registry) visibleDependenciesLocked(t reflect.Type) []reflect.Type {
	for cur := t; cur != nil; {
		e, ok := r.entries[cur]
		if !ok {
			return nil
		}
		if e.declared {
			return e.dependencies
		}
		cur = e.parent
	}
	return nil
}

// resolve builds one instance per dependency, in order. Each dependency is
// resolved independently through its own provider; nothing is shared
// between siblings. Cycles are not detected and recurse until the runtime
// aborts.
func (r *Registry) resolve(deps []reflect.Type) ([]any, error) {
	args := make([]any, len(deps))
	for i, dep := range deps {
		instance, err := r.Instance(dep)
		if err != nil {
			return nil, err
		}
		args[i] = instance
	}
	return args, nil
}
