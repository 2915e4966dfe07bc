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

package apis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/schema/apis"
)

func TestPropertyType_Text(t *testing.T) {
	for pt := apis.PropertyTypeInt; pt <= apis.PropertyTypeUUID; pt++ {
		b, err := pt.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, pt.String(), string(b))

		var back apis.PropertyType
		require.NoError(t, back.UnmarshalText([]byte(pt.String())))
		assert.Equal(t, pt, back)
	}

	var pt apis.PropertyType
	require.NoError(t, pt.UnmarshalText([]byte("DOUBLE")))
	assert.Equal(t, apis.PropertyTypeDouble, pt)

	assert.Error(t, pt.UnmarshalText([]byte("decimal")))
	_, err := apis.PropertyType(42).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "unknown(42)", apis.PropertyType(42).String())
	assert.Equal(t, "unknown(-1)", apis.PropertyType(-1).String())
}

func TestBinding_Resolvable(t *testing.T) {
	tests := []struct {
		name string
		b    apis.Binding
		want bool
	}{
		{"accessor pair", apis.Binding{Kind: apis.BindingAccessor, Getter: "Name", Setter: "SetName"}, true},
		{"accessor without setter", apis.Binding{Kind: apis.BindingAccessor, Getter: "Name"}, false},
		{"slot", apis.Binding{Kind: apis.BindingSlot, FieldIndex: []int{0}}, true},
		{"slot without index", apis.Binding{Kind: apis.BindingSlot}, false},
		{"unknown kind", apis.Binding{Kind: apis.BindingKind(9), FieldIndex: []int{0}}, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.b.Resolvable(), tc.name)
	}
}

func TestSchema(t *testing.T) {
	s := apis.Schema{
		ClassName: "app.User",
		Properties: []apis.Property{
			{Name: "id", Binding: apis.Binding{Kind: apis.BindingSlot, FieldIndex: []int{0}}},
			{Name: "email", ColumnName: "mail"},
		},
	}
	assert.Equal(t, []string{"id", "email"}, s.Names())

	p, ok := s.Property("email")
	require.True(t, ok)
	assert.Equal(t, "mail", p.Column())
	id, _ := s.Property("id")
	assert.Equal(t, "id", id.Column())
	_, ok = s.Property("missing")
	assert.False(t, ok)

	c := s.Clone()
	c.Properties[0].Name = "changed"
	c.Properties[0].Binding.FieldIndex[0] = 5
	assert.Equal(t, "id", s.Properties[0].Name)
	assert.Equal(t, []int{0}, s.Properties[0].Binding.FieldIndex)
}

func TestDecisions(t *testing.T) {
	d := apis.Fail(apis.KindInvalidPropertyName, "bad %q", "x")
	assert.Equal(t, apis.ActionFail, d.Action)
	assert.Equal(t, `bad "x"`, d.Message)
	assert.Equal(t, "InvalidPropertyName", d.Kind.String())

	assert.Equal(t, apis.SkipComputed, apis.Skip(apis.SkipComputed).Reason)
	assert.Equal(t, "skip_lazy_twin", apis.ActionSkipLazyTwin.String())
	assert.Equal(t, "slot", apis.BindingSlot.String())
}

func TestNameSet(t *testing.T) {
	var nilSet apis.NameSet
	assert.False(t, nilSet.Has("x"))

	s := apis.NewNameSet("a")
	s.Add("b", "a")
	assert.True(t, s.Has("a"))
	assert.True(t, s.Has("b"))
	assert.Len(t, s, 2)
}
