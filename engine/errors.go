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

package engine

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/schema/apis"
)

var (
	// ErrLazyPropertyNotAllowed: a lazy field is neither ignored nor eager.
	ErrLazyPropertyNotAllowed = errors.New("schema: lazy property not allowed")
	// ErrUnsupportedPropertyType: a declared accessor uses a non-storable type.
	ErrUnsupportedPropertyType = errors.New("schema: unsupported property type")
	// ErrUnsupportedOptionalWrapperType: an Optional wraps a type outside the built-in set.
	ErrUnsupportedOptionalWrapperType = errors.New("schema: unsupported optional wrapper type")
	// ErrInvalidPropertyName: the property name is empty, reserved, or not an identifier.
	ErrInvalidPropertyName = errors.New("schema: invalid property name")
	// ErrDuplicatePropertyName: two kept fields share a property name.
	ErrDuplicatePropertyName = errors.New("schema: duplicate property name")
	// ErrInvalidObjectType: the discovered type is not a struct.
	ErrInvalidObjectType = errors.New("schema: invalid object type")
)

var sentinels = map[apis.ErrorKind]error{
	apis.KindLazyPropertyNotAllowed:         ErrLazyPropertyNotAllowed,
	apis.KindUnsupportedPropertyType:        ErrUnsupportedPropertyType,
	apis.KindUnsupportedOptionalWrapperType: ErrUnsupportedOptionalWrapperType,
	apis.KindInvalidPropertyName:            ErrInvalidPropertyName,
	apis.KindDuplicatePropertyName:          ErrDuplicatePropertyName,
	apis.KindInvalidObjectType:              ErrInvalidObjectType,
}

// Error is the single fatal result of a failed discovery pass.
// errors.Is matches it against the sentinel of its Kind.
type Error struct {
	// Kind classifies the failure.
	Kind apis.ErrorKind
	// Property is the offending property name, if any.
	Property string
	// Class is the host class name.
	Class string
	// Message describes what was found.
	Message string
	// Hint tells the developer how to fix it.
	Hint string
}

// Error implements error.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "schema: %s", e.Kind)
	if e.Class != "" {
		fmt.Fprintf(&b, " in %s", e.Class)
	}
	if e.Property != "" {
		fmt.Fprintf(&b, " (property %q)", e.Property)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Hint != "" {
		b.WriteString("; ")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// Unwrap returns the sentinel for e.Kind.
func (e *Error) Unwrap() error {
	return sentinels[e.Kind]
}

func newError(kind apis.ErrorKind, class, property, msg string) *Error {
	return &Error{
		Kind:     kind,
		Property: property,
		Class:    class,
		Message:  msg,
		Hint:     hint(kind, property),
	}
}

func hint(kind apis.ErrorKind, property string) string {
	switch kind {
	case apis.KindLazyPropertyNotAllowed:
		return fmt.Sprintf("list %q in IgnoredProperties (or tag it `schema:\"-\"`), or make it a plain field", property)
	case apis.KindUnsupportedPropertyType:
		return "use a storable type, register a capability for it, or drop the schema tag"
	case apis.KindUnsupportedOptionalWrapperType:
		return "Optional supports bool, int, int8, int16, int32, int64, float32 and float64; use a pointer for other types"
	case apis.KindInvalidPropertyName:
		return "rename the field or set a valid identifier in its schema tag"
	case apis.KindDuplicatePropertyName:
		return "give each persisted field a distinct name"
	case apis.KindInvalidObjectType:
		return "discover a struct type or a pointer to one"
	default:
		return ""
	}
}
