// Package reactive describes the surface of a reactive-value library that
// lifecycle plugins consume: the values themselves, the hook slots and the
// registry hooks are registered with.
//
// It is not a reactive engine. Variable is a plain named container so hosts
// have something concrete to hand to hooks.
package reactive

import (
	"reflect"
	"strings"
)

// Value is the read-only view of a reactive value.
//
// Implement it with pointer receivers: a value type has no address, so
// Identity reports 0 for it unless it also implements Identifier.
type Value interface {
	// Name returns the assigned name, or "" when the value is unnamed.
	Name() string
	// Value returns the current payload.
	Value() any
}

// Hooks are the lifecycle callbacks a host dispatches to.
type Hooks interface {
	// Created is called once a value has been constructed.
	Created(v Value)
	// Updated is called after the payload of a value changed.
	Updated(v Value)
	// Named is called after a name has been assigned to a value.
	Named(v Value)
}

// Registrar is the host registry plugins register their hooks with.
type Registrar interface {
	Register(h Hooks)
}

// TypeTag returns the runtime type name of v with pointer indirections,
// package qualifier and type arguments removed. It never returns "".
func TypeTag(v any) string {
	if v == nil {
		return "nil"
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return t.Kind().String()
	}
	return name
}

// Identifier is implemented by values that supply their own identity token.
type Identifier interface {
	Identity() uintptr
}

// Identity returns the identity token of v. An Identifier reports its own
// token; otherwise it is the address for reference kinds and 0 for
// everything else.
func Identity(v any) uintptr {
	if v == nil {
		return 0
	}
	if id, ok := v.(Identifier); ok {
		return id.Identity()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.UnsafePointer:
		return rv.Pointer()
	default:
		return 0
	}
}

// Variable is a minimal reactive value: a name and a payload.
type Variable struct {
	name  string
	value any
}

var _ Value = (*Variable)(nil)

// NewVariable creates an unnamed Variable holding value.
func NewVariable(value any) *Variable {
	return &Variable{value: value}
}

// Name returns the assigned name.
func (v *Variable) Name() string { return v.name }

// Value returns the current payload.
func (v *Variable) Value() any { return v.value }

// SetName assigns a name to the variable.
func (v *Variable) SetName(name string) { v.name = name }

// SetValue replaces the payload.
func (v *Variable) SetValue(value any) { v.value = value }
