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
	"time"

	"github.com/google/uuid"

	"dirpx.dev/schema/apis"
	"dirpx.dev/schema/registry"
)

// builtins lists the exact types storable without implementing apis.Storable.
var builtins = []struct {
	t   reflect.Type
	tag apis.PropertyType
}{
	{reflect.TypeFor[bool](), apis.PropertyTypeBool},
	{reflect.TypeFor[int](), apis.PropertyTypeInt},
	{reflect.TypeFor[int8](), apis.PropertyTypeInt},
	{reflect.TypeFor[int16](), apis.PropertyTypeInt},
	{reflect.TypeFor[int32](), apis.PropertyTypeInt},
	{reflect.TypeFor[int64](), apis.PropertyTypeInt},
	{reflect.TypeFor[uint](), apis.PropertyTypeInt},
	{reflect.TypeFor[uint8](), apis.PropertyTypeInt},
	{reflect.TypeFor[uint16](), apis.PropertyTypeInt},
	{reflect.TypeFor[uint32](), apis.PropertyTypeInt},
	{reflect.TypeFor[uint64](), apis.PropertyTypeInt},
	{reflect.TypeFor[float32](), apis.PropertyTypeFloat},
	{reflect.TypeFor[float64](), apis.PropertyTypeDouble},
	{reflect.TypeFor[string](), apis.PropertyTypeString},
	{reflect.TypeFor[[]byte](), apis.PropertyTypeData},
	{reflect.TypeFor[time.Time](), apis.PropertyTypeDate},
	{reflect.TypeFor[uuid.UUID](), apis.PropertyTypeUUID},
}

// NewRegistry returns a registry holding the built-in capabilities.
func NewRegistry() apis.Registry {
	reg := registry.New()
	RegisterBuiltins(reg)
	return reg
}

// RegisterBuiltins adds the built-in capabilities to reg. Entries already
// registered with a different capability are left untouched.
func RegisterBuiltins(reg apis.Registry) {
	for _, b := range builtins {
		_ = reg.Register(b.t, Primitive{Tag: b.tag})
	}
}

// optionalWrappable reports whether an Optional may wrap t.
// The set is closed: Optional of any other type is a configuration error.
func optionalWrappable(t reflect.Type) bool {
	switch t {
	case reflect.TypeFor[bool](),
		reflect.TypeFor[int](), reflect.TypeFor[int8](), reflect.TypeFor[int16](),
		reflect.TypeFor[int32](), reflect.TypeFor[int64](),
		reflect.TypeFor[float32](), reflect.TypeFor[float64]():
		return true
	default:
		return false
	}
}
