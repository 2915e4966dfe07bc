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
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"iter"
	"reflect"
	"sync"

	"dirpx.dev/schema/apis"
)

// Optional holds a T that may be absent. Only bool, signed integers, float32
// and float64 are accepted as T by the classifier; other instantiations
// compile but fail discovery with UnsupportedOptionalWrapperType.
// Optional fields bind directly to their storage slot.
type Optional[T any] struct {
	value T
	valid bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, valid: true}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.valid }

// Set stores v.
func (o *Optional[T]) Set(v T) { o.value, o.valid = v, true }

// Clear removes the value.
func (o *Optional[T]) Clear() {
	var zero T
	o.value, o.valid = zero, false
}

// WrappedType implements apis.OptionalWrapper.
func (Optional[T]) WrappedType() reflect.Type { return reflect.TypeFor[T]() }

// String implements fmt.Stringer.
func (o Optional[T]) String() string {
	if !o.valid {
		return "<nil>"
	}
	return fmt.Sprint(o.value)
}

// Value implements driver.Valuer. An absent value is NULL.
func (o Optional[T]) Value() (driver.Value, error) {
	if !o.valid {
		return nil, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(o.value)
}

// Scan implements sql.Scanner. NULL clears o.
func (o *Optional[T]) Scan(src any) error {
	if src == nil {
		o.Clear()
		return nil
	}
	rv := reflect.ValueOf(src)
	t := reflect.TypeFor[T]()
	if !rv.Type().ConvertibleTo(t) || (t.Kind() == reflect.String && rv.CanInt()) {
		return fmt.Errorf("capability: cannot scan %T into Optional[%s]", src, t)
	}
	o.Set(rv.Convert(t).Interface().(T))
	return nil
}

// List is an ordered collection property. Lists bind directly to their
// storage slot; the element type must itself be storable.
type List[T any] struct {
	items []T
}

// NewList returns a List holding items.
func NewList[T any](items ...T) List[T] {
	return List[T]{items: append([]T(nil), items...)}
}

// Append adds items to the end of l.
func (l *List[T]) Append(items ...T) { l.items = append(l.items, items...) }

// At returns the i-th element.
func (l List[T]) At(i int) T { return l.items[i] }

// Len implements apis.Collection.
func (l List[T]) Len() int { return len(l.items) }

// All implements apis.Collection.
func (l List[T]) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range l.items {
			if !yield(v) {
				return
			}
		}
	}
}

// Values returns a copy of the elements.
func (l List[T]) Values() []T { return append([]T(nil), l.items...) }

// MarshalJSON encodes l as a JSON array.
func (l List[T]) MarshalJSON() ([]byte, error) {
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}

// UnmarshalJSON decodes a JSON array into l.
func (l *List[T]) UnmarshalJSON(b []byte) error {
	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	l.items = items
	return nil
}

// ListElemType reports the element type of the list.
func (List[T]) ListElemType() reflect.Type { return reflect.TypeFor[T]() }

// Lazy is a lazily-initialized field. Lazy fields are never persisted: a host
// must list them in its ignored properties or make them eager, otherwise
// discovery fails with LazyPropertyNotAllowed. Both Lazy[T] and *Lazy[T]
// fields are lazy.
type Lazy[T any] struct {
	once sync.Once
	init func() T
	val  T
}

// NewLazy returns a Lazy computing its value with init on first Get.
func NewLazy[T any](init func() T) *Lazy[T] {
	return &Lazy[T]{init: init}
}

// Get returns the value, computing it on the first call.
func (l *Lazy[T]) Get() T {
	l.once.Do(func() {
		if l.init != nil {
			l.val = l.init()
		}
	})
	return l.val
}

// LazyType implements apis.Lazy. It is safe on a nil receiver.
func (*Lazy[T]) LazyType() reflect.Type { return reflect.TypeFor[T]() }

// Ensure the wrappers implement their contracts.
var (
	_ apis.OptionalWrapper = Optional[int]{}
	_ apis.Collection      = List[int]{}
	_ apis.Lazy            = (*Lazy[int])(nil)
)
