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

package strategy_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/schema/apis"
	"dirpx.dev/schema/capability"
	"dirpx.dev/schema/config"
	"dirpx.dev/schema/strategy"
)

type Level int8

func (l Level) RawValue() any { return int8(l) }

type Opaque struct{ n int }

func newPass(ignored ...string) *apis.Pass {
	return &apis.Pass{
		ClassName:    "test.Host",
		Config:       config.DefaultConfig(),
		Capabilities: capability.NewRegistry(),
		Ignored:      apis.NewNameSet(ignored...),
		Indexed:      apis.NewNameSet(),
	}
}

func candidate(rec apis.FieldRecord) *apis.Candidate {
	return &apis.Candidate{Record: rec, Value: rec.Value}
}

func declared() *apis.Accessor { return &apis.Accessor{} }

func TestIgnoreStrategy(t *testing.T) {
	s := strategy.NewIgnoreStrategy()
	p := newPass("secret")

	d, ok := s.TryClassify(candidate(apis.FieldRecord{Name: "secret", Value: Opaque{}}), p)
	require.True(t, ok)
	assert.Equal(t, apis.ActionSkip, d.Action)
	assert.Equal(t, apis.SkipIgnored, d.Reason)

	_, ok = s.TryClassify(candidate(apis.FieldRecord{Name: "name"}), p)
	assert.False(t, ok)
}

func TestLazyStrategy(t *testing.T) {
	s := strategy.NewLazyStrategy()
	prefix := config.DefaultLazyStoragePrefix
	twin := apis.FieldRecord{Name: prefix + "big", Synthetic: true}

	d, ok := s.TryClassify(candidate(twin), newPass())
	require.True(t, ok)
	assert.Equal(t, apis.ActionFail, d.Action)
	assert.Equal(t, apis.KindLazyPropertyNotAllowed, d.Kind)
	assert.Equal(t, "big", d.BaseName)

	d, ok = s.TryClassify(candidate(twin), newPass("big"))
	require.True(t, ok)
	assert.Equal(t, apis.ActionSkipLazyTwin, d.Action)
	assert.Equal(t, "big", d.BaseName)

	// The prefix alone marks a twin, for hosts that describe their own fields.
	d, ok = s.TryClassify(candidate(apis.FieldRecord{Name: prefix + "x"}), newPass())
	require.True(t, ok)
	assert.Equal(t, apis.KindLazyPropertyNotAllowed, d.Kind)

	_, ok = s.TryClassify(candidate(apis.FieldRecord{Name: "big"}), newPass())
	assert.False(t, ok)
}

func TestRawValueStrategy(t *testing.T) {
	s := strategy.NewRawValueStrategy()

	c := candidate(apis.FieldRecord{Name: "level", Value: Level(3)})
	_, ok := s.TryClassify(c, newPass())
	assert.False(t, ok)
	assert.Equal(t, int8(3), c.Value)

	c = candidate(apis.FieldRecord{Name: "level", Value: (*Level)(nil)})
	_, ok = s.TryClassify(c, newPass())
	assert.False(t, ok)
	assert.Equal(t, (*int8)(nil), c.Value)

	c = candidate(apis.FieldRecord{Name: "n", Value: 5})
	s.TryClassify(c, newPass())
	assert.Equal(t, 5, c.Value)
}

func TestCapabilityStrategy(t *testing.T) {
	s := strategy.NewCapabilityStrategy()
	p := newPass()

	c := candidate(apis.FieldRecord{Name: "n", Value: 0})
	_, ok := s.TryClassify(c, p)
	assert.False(t, ok)
	require.NotNil(t, c.Storable)
	assert.Equal(t, apis.PropertyTypeInt, c.Storable.StorageType())

	d, ok := s.TryClassify(candidate(apis.FieldRecord{Name: "o", Value: Opaque{}, Accessor: declared()}), p)
	require.True(t, ok)
	assert.Equal(t, apis.KindUnsupportedPropertyType, d.Kind)

	d, ok = s.TryClassify(candidate(apis.FieldRecord{Name: "o", Value: Opaque{}}), p)
	require.True(t, ok)
	assert.Equal(t, apis.ActionSkip, d.Action)
	assert.Equal(t, apis.SkipUnsupported, d.Reason)

	d, ok = s.TryClassify(candidate(apis.FieldRecord{Name: "w", Value: capability.Optional[string]{}}), p)
	require.True(t, ok)
	assert.Equal(t, apis.KindUnsupportedOptionalWrapperType, d.Kind)

	// A nil *Optional never receives a method call.
	d, ok = s.TryClassify(candidate(apis.FieldRecord{Name: "w", Value: (*capability.Optional[string])(nil)}), p)
	require.True(t, ok)
	assert.Equal(t, apis.KindUnsupportedOptionalWrapperType, d.Kind)

	c = candidate(apis.FieldRecord{Name: "r", Value: (*capability.Optional[int])(nil)})
	_, ok = s.TryClassify(c, p)
	assert.False(t, ok)
	require.NotNil(t, c.Storable)
	assert.True(t, c.Storable.IsOptional())

	// A declared accessor wins over the wrapper check.
	d, ok = s.TryClassify(candidate(apis.FieldRecord{Name: "w", Value: capability.Optional[string]{}, Accessor: declared()}), p)
	require.True(t, ok)
	assert.Equal(t, apis.KindUnsupportedPropertyType, d.Kind)

	d, ok = s.TryClassify(candidate(apis.FieldRecord{Name: "nil", Value: nil}), p)
	require.True(t, ok)
	assert.Equal(t, apis.ActionSkip, d.Action)
}

func TestNameStrategy(t *testing.T) {
	s := strategy.NewNameStrategy()
	p := newPass()

	for _, bad := range []string{"", "$x", "__x", "1abc", "a-b", "a b"} {
		d, ok := s.TryClassify(candidate(apis.FieldRecord{Name: bad}), p)
		require.True(t, ok, bad)
		assert.Equal(t, apis.KindInvalidPropertyName, d.Kind, bad)
	}
	for _, good := range []string{"a", "_a", "userID", "名前", "a_1"} {
		_, ok := s.TryClassify(candidate(apis.FieldRecord{Name: good}), p)
		assert.False(t, ok, good)
	}
}

func TestValidName(t *testing.T) {
	assert.True(t, strategy.ValidName("x9"))
	assert.False(t, strategy.ValidName("9x"))
	assert.False(t, strategy.ValidName(""))
}

func TestAccessorStrategy(t *testing.T) {
	s := strategy.NewAccessorStrategy()
	p := newPass()
	bridged := capability.Primitive{Tag: apis.PropertyTypeInt}
	list, ok := capability.OfType(reflect.TypeFor[capability.List[int]](), capability.NewRegistry())
	require.True(t, ok)

	cases := []struct {
		name     string
		rec      apis.FieldRecord
		storable apis.Storable
		action   apis.Action
		reason   apis.SkipReason
		kind     apis.BindingKind
	}{
		{"readonly", apis.FieldRecord{Name: "a", Index: []int{0}, Accessor: &apis.Accessor{ReadOnly: true}}, bridged, apis.ActionSkip, apis.SkipReadOnly, 0},
		{"computed", apis.FieldRecord{Name: "a", Index: []int{0}, Accessor: &apis.Accessor{Computed: true}}, bridged, apis.ActionSkip, apis.SkipComputed, 0},
		{"no storage", apis.FieldRecord{Name: "a", Accessor: declared()}, bridged, apis.ActionSkip, apis.SkipComputed, 0},
		{"accessor", apis.FieldRecord{Name: "a", Index: []int{1}, Accessor: &apis.Accessor{Getter: "G"}}, bridged, apis.ActionKeep, "", apis.BindingAccessor},
		{"unbridged", apis.FieldRecord{Name: "a", Index: []int{0}}, bridged, apis.ActionSkip, apis.SkipUnbridged, 0},
		{"unbound", apis.FieldRecord{Name: "a"}, list, apis.ActionSkip, apis.SkipUnbound, 0},
		{"slot", apis.FieldRecord{Name: "a", Index: []int{2}}, list, apis.ActionKeep, "", apis.BindingSlot},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := candidate(tc.rec)
			c.Storable = tc.storable
			d, ok := s.TryClassify(c, p)
			require.True(t, ok)
			assert.Equal(t, tc.action, d.Action)
			assert.Equal(t, tc.reason, d.Reason)
			if tc.action == apis.ActionKeep {
				assert.Equal(t, tc.kind, d.Binding.Kind)
				assert.Equal(t, tc.rec.Index, d.Binding.FieldIndex)
			}
		})
	}
}
