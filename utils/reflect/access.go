/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package reflect

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/schema/apis"
)

var (
	// ErrUnresolvableBinding is returned for bindings with neither a usable
	// accessor nor a field index.
	ErrUnresolvableBinding = errors.New("reflect: binding is not resolvable")
	// ErrNotStructValue is returned when the target is not a struct or a
	// non-nil pointer to one.
	ErrNotStructValue = errors.New("reflect: target is not a struct value")
	// ErrNotSettable is returned when Set receives a target it cannot write.
	ErrNotSettable = errors.New("reflect: target is not settable")
)

// Get reads a property of obj through binding b. Accessor bindings call the
// getter method when obj declares one and otherwise read the backing field.
func Get(obj any, b apis.Binding) (any, error) {
	v := reflect.ValueOf(obj)
	if b.Kind == apis.BindingAccessor && b.Getter != "" {
		if m := v.MethodByName(b.Getter); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() == 1 {
			return m.Call(nil)[0].Interface(), nil
		}
	}
	if len(b.FieldIndex) == 0 {
		return nil, ErrUnresolvableBinding
	}
	sv, err := structValue(v)
	if err != nil {
		return nil, err
	}
	if _, err := fieldByIndex(sv.Type(), b.FieldIndex); err != nil {
		return nil, err
	}
	f, err := sv.FieldByIndexErr(b.FieldIndex)
	if err != nil {
		return nil, fmt.Errorf("reflect: field %v: %w", b.FieldIndex, err)
	}
	if !f.CanInterface() {
		return nil, fmt.Errorf("reflect: field %v is unexported: %w", b.FieldIndex, ErrUnresolvableBinding)
	}
	return f.Interface(), nil
}

// Set writes val into obj, which must be a non-nil pointer to a struct.
// Accessor bindings call the setter method when obj declares one and
// otherwise write the backing field. A nil val stores the zero value.
func Set(obj any, b apis.Binding, val any) error {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return ErrNotSettable
	}
	if b.Kind == apis.BindingAccessor && b.Setter != "" {
		if m := v.MethodByName(b.Setter); m.IsValid() && m.Type().NumIn() == 1 {
			arg, err := assignable(m.Type().In(0), val)
			if err != nil {
				return err
			}
			m.Call([]reflect.Value{arg})
			return nil
		}
	}
	if len(b.FieldIndex) == 0 {
		return ErrUnresolvableBinding
	}
	sv, err := structValue(v)
	if err != nil {
		return err
	}
	if _, err := fieldByIndex(sv.Type(), b.FieldIndex); err != nil {
		return err
	}
	f, err := sv.FieldByIndexErr(b.FieldIndex)
	if err != nil {
		return fmt.Errorf("reflect: field %v: %w", b.FieldIndex, err)
	}
	if !f.CanSet() {
		return ErrNotSettable
	}
	arg, err := assignable(f.Type(), val)
	if err != nil {
		return err
	}
	f.Set(arg)
	return nil
}

// FieldType returns the type of the value binding b reads and writes on
// struct type t: the setter argument when t declares the setter, otherwise
// the bound field. It fails rather than panics on a stale or foreign index.
func FieldType(t reflect.Type, b apis.Binding) (reflect.Type, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return nil, ErrNotStructValue
	}
	if b.Kind == apis.BindingAccessor && b.Setter != "" {
		if m, ok := reflect.PointerTo(t).MethodByName(b.Setter); ok && m.Type.NumIn() == 2 {
			return m.Type.In(1), nil
		}
	}
	if len(b.FieldIndex) == 0 {
		return nil, ErrUnresolvableBinding
	}
	return fieldByIndex(t, b.FieldIndex)
}

// fieldByIndex is reflect.Type.FieldByIndex with bounds checks.
func fieldByIndex(t reflect.Type, index []int) (reflect.Type, error) {
	for _, i := range index {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct || i < 0 || i >= t.NumField() {
			return nil, fmt.Errorf("reflect: field %v: %w", index, ErrUnresolvableBinding)
		}
		t = t.Field(i).Type
	}
	return t, nil
}

// structValue dereferences v down to a struct.
func structValue(v reflect.Value) (reflect.Value, error) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, ErrNotStructValue
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, ErrNotStructValue
	}
	return v, nil
}

// assignable converts val to a value assignable to t.
func assignable(t reflect.Type, val any) (reflect.Value, error) {
	if val == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(val)
	switch {
	case rv.Type().AssignableTo(t):
		return rv, nil
	case t.Kind() == reflect.String && rv.CanInt(), t.Kind() == reflect.String && rv.CanUint():
		// reflect would turn an integer into a one-rune string.
		return reflect.Value{}, fmt.Errorf("reflect: cannot assign %s to %s", rv.Type(), t)
	case rv.Type().ConvertibleTo(t):
		return rv.Convert(t), nil
	default:
		return reflect.Value{}, fmt.Errorf("reflect: cannot assign %s to %s", rv.Type(), t)
	}
}
