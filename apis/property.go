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
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// PropertyType is the storage type tag of a persisted property.
type PropertyType int

const (
	// PropertyTypeInt stores signed and unsigned integers.
	PropertyTypeInt PropertyType = iota
	// PropertyTypeBool stores booleans.
	PropertyTypeBool
	// PropertyTypeFloat stores 32-bit floating point values.
	PropertyTypeFloat
	// PropertyTypeDouble stores 64-bit floating point values.
	PropertyTypeDouble
	// PropertyTypeString stores UTF-8 text.
	PropertyTypeString
	// PropertyTypeData stores opaque binary data.
	PropertyTypeData
	// PropertyTypeDate stores points in time.
	PropertyTypeDate
	// PropertyTypeObject stores a link to another object class.
	PropertyTypeObject
	// PropertyTypeUUID stores 128-bit identifiers.
	PropertyTypeUUID
)

var propertyTypeNames = [...]string{
	PropertyTypeInt:    "int",
	PropertyTypeBool:   "bool",
	PropertyTypeFloat:  "float",
	PropertyTypeDouble: "double",
	PropertyTypeString: "string",
	PropertyTypeData:   "data",
	PropertyTypeDate:   "date",
	PropertyTypeObject: "object",
	PropertyTypeUUID:   "uuid",
}

// String returns the lowercase tag name, or "unknown(<n>)" for values outside
// the defined range. It never panics.
func (t PropertyType) String() string {
	if t >= 0 && int(t) < len(propertyTypeNames) {
		return propertyTypeNames[t]
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t PropertyType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(propertyTypeNames) {
		return nil, fmt.Errorf("apis: invalid property type %d", int(t))
	}
	return []byte(propertyTypeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *PropertyType) UnmarshalText(b []byte) error {
	s := strings.ToLower(string(b))
	for i, n := range propertyTypeNames {
		if n == s {
			*t = PropertyType(i)
			return nil
		}
	}
	return fmt.Errorf("apis: unknown property type %q", s)
}

// BindingKind selects how a property reads and writes its persisted value.
type BindingKind int

const (
	// BindingAccessor binds through a declared getter/setter pair.
	BindingAccessor BindingKind = iota
	// BindingSlot binds directly to the field's storage slot.
	BindingSlot
)

// String implements fmt.Stringer.
func (k BindingKind) String() string {
	switch k {
	case BindingAccessor:
		return "accessor"
	case BindingSlot:
		return "slot"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k BindingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Binding is the storage slot binding of a property.
type Binding struct {
	// Kind selects accessor or slot binding.
	Kind BindingKind `yaml:"kind"`
	// Getter is the getter accessor name. Only meaningful for BindingAccessor.
	Getter string `yaml:"getter,omitempty"`
	// Setter is the setter accessor name. Only meaningful for BindingAccessor.
	Setter string `yaml:"setter,omitempty"`
	// FieldIndex is the reflect index path of the backing field, if any.
	FieldIndex []int `yaml:"index,flow,omitempty"`
}

// Resolvable reports whether the binding can reach the persisted value.
// Accessor bindings need both accessor names; slot bindings need a field index.
func (b Binding) Resolvable() bool {
	switch b.Kind {
	case BindingAccessor:
		return b.Getter != "" && b.Setter != ""
	case BindingSlot:
		return len(b.FieldIndex) > 0
	default:
		return false
	}
}

// Property is one schema unit: a persisted field of an object class.
type Property struct {
	// Name is unique within its Schema.
	Name string `yaml:"name"`
	// Type is the storage type tag. For arrays it is the element tag.
	Type PropertyType `yaml:"type"`
	// Optional reports whether the stored value may be absent.
	Optional bool `yaml:"optional,omitempty"`
	// Indexed reports whether the storage engine should index the column.
	Indexed bool `yaml:"indexed,omitempty"`
	// Array marks list-of-Type properties.
	Array bool `yaml:"array,omitempty"`
	// ColumnName overrides the storage column name. Empty means Name.
	ColumnName string `yaml:"column,omitempty"`
	// ObjectClassName is the linked class for PropertyTypeObject properties.
	ObjectClassName string `yaml:"object_class,omitempty"`
	// Binding reads and writes the persisted value.
	Binding Binding `yaml:"binding"`
}

// Column returns the storage column name of p.
func (p Property) Column() string {
	if p.ColumnName != "" {
		return p.ColumnName
	}
	return p.Name
}

// Schema is the ordered property list of one object class.
// A published Schema is an immutable snapshot; use Clone before modifying.
type Schema struct {
	// ClassName is the resolved name of the object class.
	ClassName string `yaml:"class"`
	// Type is the Go struct type the schema was discovered from.
	Type reflect.Type `yaml:"-"`
	// Properties are ordered by first occurrence in declaration order.
	Properties []Property `yaml:"properties"`
}

// Property returns the property named name.
func (s Schema) Property(name string) (Property, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Names returns the property names in schema order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Properties))
	for i, p := range s.Properties {
		out[i] = p.Name
	}
	return out
}

// Clone returns a deep copy of s that shares no mutable state with it.
func (s Schema) Clone() Schema {
	props := make([]Property, len(s.Properties))
	for i, p := range s.Properties {
		p.Binding.FieldIndex = slices.Clone(p.Binding.FieldIndex)
		props[i] = p
	}
	s.Properties = props
	return s
}
