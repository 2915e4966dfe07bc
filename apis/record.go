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

package apis

import "reflect"

// Accessor is the runtime attribute metadata of a declared accessor.
// A FieldRecord with a nil Accessor has no declared accessor.
type Accessor struct {
	// ReadOnly accessors are never persisted.
	ReadOnly bool
	// Computed accessors have no backing storage and are never persisted.
	Computed bool
	// Getter is a custom getter name. Empty means derived from the field name.
	Getter string
	// Setter is a custom setter name. Empty means derived from the field name.
	Setter string
}

// FieldRecord is one raw (name, value) pair produced by a Walker.
type FieldRecord struct {
	// Name is the property name (the tag name if one is set).
	Name string
	// Value is the field value of the throwaway instance.
	Value any
	// Index is the reflect index path of the storage slot; nil if there is none.
	Index []int
	// Accessor is the declared accessor metadata, or nil.
	Accessor *Accessor
	// Synthetic marks the storage twin of a lazily-initialized field.
	Synthetic bool
}

// NameSet is a set of property names.
type NameSet map[string]struct{}

// NewNameSet builds a set from names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	s.Add(names...)
	return s
}

// Add inserts names into s.
func (s NameSet) Add(names ...string) {
	for _, n := range names {
		s[n] = struct{}{}
	}
}

// Has reports whether name is in s. A nil set is empty.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Pass carries the per-type inputs of one discovery pass. It is read-only
// while the pass runs.
type Pass struct {
	// Type is the host struct type.
	Type reflect.Type
	// ClassName is the resolved host class name.
	ClassName string
	// Config is the active configuration.
	Config Config
	// Capabilities resolves capabilities for non-Storable types.
	Capabilities Registry
	// Ignored names are never persisted.
	Ignored NameSet
	// Indexed names produce indexed properties.
	Indexed NameSet
	// ColumnNames maps property names to storage column names.
	ColumnNames map[string]string
}

// Candidate is the working state of one FieldRecord inside a Classifier.
// Strategies may refine Value and set Storable as they run.
type Candidate struct {
	// Record is the raw walker output.
	Record FieldRecord
	// Value is the value checked for storability (after raw-value substitution).
	Value any
	// Storable is the resolved capability, set once conformance is established.
	Storable Storable
}
