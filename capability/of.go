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

package capability

import (
	"reflect"

	"dirpx.dev/schema/apis"
)

var (
	storableType = reflect.TypeFor[apis.Storable]()
	modelType    = reflect.TypeFor[apis.Model]()
	wrapperType  = reflect.TypeFor[apis.OptionalWrapper]()
	listType     = reflect.TypeFor[listElemTyper]()
)

// listElemTyper is implemented by List[T].
type listElemTyper interface {
	ListElemType() reflect.Type
}

// Of returns the capability of v. Values implementing apis.Storable describe
// themselves; everything else is resolved by type through OfType.
func Of(v any, reg apis.Registry) (apis.Storable, bool) {
	if v == nil {
		return nil, false
	}
	// Pointers resolve by type so that a nil *T never receives a method call.
	if s, ok := v.(apis.Storable); ok && reflect.TypeOf(v).Kind() != reflect.Pointer {
		return s, true
	}
	return OfType(reflect.TypeOf(v), reg)
}

// OfType resolves the capability of values of type t:
//
//   - exact registry entries (built-ins and caller registrations)
//   - types implementing apis.Storable
//   - Optional[T] for T in the built-in optional set (optional, slot bound),
//     and *Optional[T] the same way
//   - List[T] for storable T (array, slot bound)
//   - *M for M implementing apis.Model (optional object link)
//   - *T for storable T (optional)
//   - []T for storable T other than byte (array)
func OfType(t reflect.Type, reg apis.Registry) (apis.Storable, bool) {
	if t == nil {
		return nil, false
	}
	if reg != nil {
		if s, ok := reg.Lookup(t); ok {
			return s, true
		}
	}
	if t.Kind() == reflect.Interface {
		return nil, false
	}
	// *T with a value-receiver Storable T is an optional T, handled below.
	if t.Implements(storableType) && (t.Kind() != reflect.Pointer || !t.Elem().Implements(storableType)) {
		return zeroStorable(t), true
	}
	if t.Kind() == reflect.Pointer {
		return pointerOf(t, reg)
	}
	if wt, ok := WrappedType(t); ok {
		if !optionalWrappable(wt) {
			return nil, false
		}
		inner, ok := OfType(wt, reg)
		if !ok {
			return nil, false
		}
		return optional{inner: inner, bridging: false}, true
	}
	if t.Implements(listType) {
		et := reflect.Zero(t).Interface().(listElemTyper).ListElemType()
		elem, ok := OfType(et, reg)
		if !ok {
			return nil, false
		}
		return array{elem: elem, bridging: false}, true
	}

	if t.Kind() == reflect.Slice {
		if t.Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		elem, ok := OfType(t.Elem(), reg)
		if !ok || elem.StorageType() == apis.PropertyTypeData {
			return nil, false
		}
		return array{elem: elem, bridging: true}, true
	}
	return nil, false
}

// pointerOf resolves *M (object link), *Optional[T] (the wrapper itself,
// nil meaning absent) and *T (optional T).
func pointerOf(t reflect.Type, reg apis.Registry) (apis.Storable, bool) {
	e := t.Elem()
	if class, ok := ModelClassName(e); ok {
		return link{class: class}, true
	}
	if e.Kind() != reflect.Pointer && e.Implements(wrapperType) {
		return OfType(e, reg)
	}
	inner, ok := OfType(e, reg)
	if !ok || inner.IsOptional() {
		return nil, false
	}
	return optional{inner: inner, bridging: inner.RequiresBridging()}, true
}

// WrappedType returns the raw type of the optional wrapper t, or of the
// wrapper t points to. It never calls a method on a nil pointer.
func WrappedType(t reflect.Type) (reflect.Type, bool) {
	if t == nil || !t.Implements(wrapperType) {
		return nil, false
	}
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface().(apis.OptionalWrapper).WrappedType(), true
	}
	return reflect.Zero(t).Interface().(apis.OptionalWrapper).WrappedType(), true
}

// ModelClassName returns the class name of struct type t when t or *t
// implements apis.Model.
func ModelClassName(t reflect.Type) (string, bool) {
	if t == nil || t.Kind() != reflect.Struct {
		return "", false
	}
	if t.Implements(modelType) {
		return reflect.Zero(t).Interface().(apis.Model).ClassName(), true
	}
	if reflect.PointerTo(t).Implements(modelType) {
		return reflect.New(t).Interface().(apis.Model).ClassName(), true
	}
	return "", false
}

// zeroStorable returns a usable Storable of type t. Pointer types get a fresh
// element so pointer-receiver methods never see nil.
func zeroStorable(t reflect.Type) apis.Storable {
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface().(apis.Storable)
	}
	return reflect.Zero(t).Interface().(apis.Storable)
}
