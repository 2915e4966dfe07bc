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

package strategy

import (
	"reflect"

	"dirpx.dev/schema/apis"
)

// NewRawValueStrategy creates an apis.Strategy that substitutes the raw value
// of enumerated types before the capability check. It never settles a
// decision.
func NewRawValueStrategy() apis.Strategy {
	return rawValueStrategy{}
}

type rawValueStrategy struct{}

// Ensure rawValueStrategy implements apis.Strategy.
var _ apis.Strategy = rawValueStrategy{}

var rawValuerType = reflect.TypeFor[apis.RawValuer]()

// TryClassify replaces c.Value with its raw value. A nil *E becomes a nil
// pointer to the raw type, so the field stays optional.
func (rawValueStrategy) TryClassify(c *apis.Candidate, _ *apis.Pass) (apis.Decision, bool) {
	if c.Value == nil {
		return apis.Decision{}, false
	}
	rv := reflect.ValueOf(c.Value)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		et := rv.Type().Elem()
		if !et.Implements(rawValuerType) {
			return apis.Decision{}, false
		}
		raw := reflect.Zero(et).Interface().(apis.RawValuer).RawValue()
		if raw != nil {
			c.Value = reflect.Zero(reflect.PointerTo(reflect.TypeOf(raw))).Interface()
		}
		return apis.Decision{}, false
	}
	if r, ok := c.Value.(apis.RawValuer); ok {
		if raw := r.RawValue(); raw != nil {
			c.Value = raw
		}
	}
	return apis.Decision{}, false
}
