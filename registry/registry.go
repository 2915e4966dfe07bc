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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/schema/apis"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("schema(registry): nil reflect.Type provided")
	// ErrNilCapability is returned when a nil capability is provided.
	ErrNilCapability = errors.New("schema(registry): nil capability provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different capability.
	ErrConflictingRegistration = errors.New("schema(registry): conflicting type registration")
)

// New constructs an empty Registry keyed by exact reflect.Type.
// Named types are distinct from their underlying type: registering int does
// not make `type Status int` storable.
func New() apis.Registry {
	return &registry{}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps reflect.Type to apis.Storable.
	m sync.Map // map[reflect.Type]apis.Storable
	// count tracks the number of registered entries.
	count int
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Register associates t with capability s.
// It is idempotent for the same (type, capability) pair.
func (r *registry) Register(t reflect.Type, s apis.Storable) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if s == nil {
		return ErrNilCapability
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(t); ok {
		if same(old.(apis.Storable), s) {
			return nil // idempotent re-registration
		}
		return ErrConflictingRegistration
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(t); ok {
		if same(old.(apis.Storable), s) {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.m.Store(t, s)
	r.count++
	return nil
}

// Lookup returns the capability registered for t.
func (r *registry) Lookup(t reflect.Type) (apis.Storable, bool) {
	if t == nil {
		return nil, false
	}
	if v, ok := r.m.Load(t); ok {
		return v.(apis.Storable), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:     key.(reflect.Type),
			Storable: value.(apis.Storable),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}

// same compares capabilities without panicking on non-comparable dynamic types.
func same(a, b apis.Storable) bool {
	return reflect.TypeOf(a) == reflect.TypeOf(b) && reflect.DeepEqual(a, b)
}
