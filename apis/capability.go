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

import (
	"iter"
	"reflect"
)

// Storable is the capability a value implements to be persisted as a property.
//
// Concrete types usually embed capability.Defaults and implement only
// StorageType. A value that implements neither Storable nor has a capability
// registered for its type is not storable; the classifier decides whether that
// is an error or a silent skip.
type Storable interface {
	// StorageType returns the storage type tag.
	StorageType() PropertyType
	// IsOptional reports whether the stored value may be absent. Default false.
	IsOptional() bool
	// RequiresBridging reports whether the host must declare an accessor for
	// the field (a tagged field) for it to be persisted. Default true.
	// Capabilities returning false bind directly to the storage slot.
	RequiresBridging() bool
	// PopulateProperty runs after the descriptor is built and may contribute
	// extra metadata (element type, linked class name). Default no-op.
	PopulateProperty(p *Property)
}

// Model is implemented by struct types persisted as their own object class.
// A pointer to a Model is an object link.
type Model interface {
	// ClassName returns the stable object class name.
	ClassName() string
}

// RawValuer is implemented by enumerated types backed by a primitive.
// The classifier checks the raw value for storability instead of the enum.
type RawValuer interface {
	RawValue() any
}

// OptionalWrapper is implemented by optional wrappers with a user-extensible
// raw type (capability.Optional[T]). Only a finite built-in set of wrapped
// types is storable.
type OptionalWrapper interface {
	WrappedType() reflect.Type
}

// Collection is implemented by list-like storable values.
type Collection interface {
	// Len returns the number of elements.
	Len() int
	// All yields the elements in order.
	All() iter.Seq[any]
}

// Lazy is implemented by lazily-initialized field wrappers.
// LazyType returns the type of the lazily produced value and must be safe to
// call on a nil receiver.
type Lazy interface {
	LazyType() reflect.Type
}

// FieldDescriber lets a host type list its fields explicitly instead of being
// walked by reflection. The returned order is the declaration order.
type FieldDescriber interface {
	DescribeFields() []FieldRecord
}

// IgnoredPropertiesProvider is implemented by hosts that exclude fields.
type IgnoredPropertiesProvider interface {
	IgnoredProperties() []string
}

// IndexedPropertiesProvider is implemented by hosts that index fields.
type IndexedPropertiesProvider interface {
	IndexedProperties() []string
}

// ColumnNamesProvider is implemented by hosts that rename storage columns.
// Keys are property names, values are column names.
type ColumnNamesProvider interface {
	ColumnNames() map[string]string
}
