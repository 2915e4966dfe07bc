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

// Package hook owns the process-wide enumeration bridge: the adapters that
// expose collection-like storable values as iter.Seq[any].
//
// The bridge is installed at most once per process. Install may be called
// from any number of goroutines; every caller returns only after the
// installation has completed.
package hook

import (
	"iter"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/schema/apis"
)

// enumerator adapts one family of values. It returns false when v is not
// in its family.
type enumerator func(v reflect.Value) (iter.Seq[any], bool)

var (
	once     sync.Once
	table    atomic.Pointer[[]enumerator]
	installs atomic.Int32
)

// Install installs the enumeration bridge exactly once.
func Install() {
	once.Do(func() {
		t := []enumerator{collection, sequence}
		table.Store(&t)
		installs.Add(1)
	})
}

// Installed reports whether Install has completed.
func Installed() bool {
	return table.Load() != nil
}

// Installs returns how many times the initializer ran. It is at most 1.
func Installs() int {
	return int(installs.Load())
}

// Enumerate returns the elements of v in order. It accepts apis.Collection
// values and slices or arrays other than byte slices; ok is false for
// anything else. Enumerate installs the bridge if needed.
func Enumerate(v any) (seq iter.Seq[any], ok bool) {
	Install()
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for _, e := range *table.Load() {
		if seq, ok := e(rv); ok {
			return seq, true
		}
	}
	return nil, false
}

var collectionType = reflect.TypeFor[apis.Collection]()

func collection(v reflect.Value) (iter.Seq[any], bool) {
	if !v.Type().Implements(collectionType) {
		return nil, false
	}
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return empty, true
	}
	return v.Interface().(apis.Collection).All(), true
}

func sequence(v reflect.Value) (iter.Seq[any], bool) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, false
	}
	if v.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	return func(yield func(any) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(v.Index(i).Interface()) {
				return
			}
		}
	}, true
}

func empty(func(any) bool) {}
