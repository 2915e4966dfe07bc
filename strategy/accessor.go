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
	"slices"

	"dirpx.dev/schema/apis"
)

// NewAccessorStrategy creates the terminal apis.Strategy that chooses the
// storage binding. It always settles the decision.
//
// With a declared accessor: readonly and computed (no backing slot) fields
// are skipped, anything else binds through the accessor pair. Without one:
// capabilities that require bridging are skipped, fields without a storage
// slot are skipped, anything else binds directly to the slot.
func NewAccessorStrategy() apis.Strategy {
	return accessorStrategy{}
}

type accessorStrategy struct{}

// Ensure accessorStrategy implements apis.Strategy.
var _ apis.Strategy = accessorStrategy{}

// TryClassify settles every candidate.
func (accessorStrategy) TryClassify(c *apis.Candidate, _ *apis.Pass) (apis.Decision, bool) {
	rec := c.Record
	if acc := rec.Accessor; acc != nil {
		switch {
		case acc.ReadOnly:
			return apis.Skip(apis.SkipReadOnly), true
		case acc.Computed || len(rec.Index) == 0:
			return apis.Skip(apis.SkipComputed), true
		}
		return apis.Keep(apis.Binding{
			Kind:       apis.BindingAccessor,
			Getter:     acc.Getter,
			Setter:     acc.Setter,
			FieldIndex: slices.Clone(rec.Index),
		}), true
	}

	if c.Storable == nil || c.Storable.RequiresBridging() {
		return apis.Skip(apis.SkipUnbridged), true
	}
	if len(rec.Index) == 0 {
		return apis.Skip(apis.SkipUnbound), true
	}
	return apis.Keep(apis.Binding{Kind: apis.BindingSlot, FieldIndex: slices.Clone(rec.Index)}), true
}
