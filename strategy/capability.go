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
	"dirpx.dev/schema/capability"
)

// NewCapabilityStrategy creates an apis.Strategy that resolves the capability
// of the candidate value. Storable values pass through with c.Storable set.
//
// A non-storable value is fatal when the host declares an accessor for it, or
// when it is an optional wrapper over a type outside the built-in set.
// Otherwise the field is not a storable property and is skipped silently.
func NewCapabilityStrategy() apis.Strategy {
	return capabilityStrategy{}
}

type capabilityStrategy struct{}

// Ensure capabilityStrategy implements apis.Strategy.
var _ apis.Strategy = capabilityStrategy{}

// TryClassify settles only non-storable candidates.
func (capabilityStrategy) TryClassify(c *apis.Candidate, p *apis.Pass) (apis.Decision, bool) {
	if s, ok := capability.Of(c.Value, p.Capabilities); ok {
		c.Storable = s
		return apis.Decision{}, false
	}
	if c.Record.Accessor != nil {
		return apis.Fail(apis.KindUnsupportedPropertyType,
			"field %q has unsupported type %s", c.Record.Name, typeString(c.Value)), true
	}
	if wt, ok := capability.WrappedType(reflect.TypeOf(c.Value)); ok {
		return apis.Fail(apis.KindUnsupportedOptionalWrapperType,
			"field %q wraps unsupported optional type %s", c.Record.Name, wt), true
	}
	return apis.Skip(apis.SkipUnsupported), true
}

func typeString(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
