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

// Package builder turns classified fields into property descriptors.
package builder

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"dirpx.dev/schema/apis"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// Ensure builder implements apis.Builder.
var _ apis.Builder = (*builder)(nil)

// Build constructs the property for a kept candidate. The storage tag and
// optionality come from the capability and may be adjusted by its
// PopulateProperty hook; index and column settings come from the pass.
// Build never fails and never mutates its inputs.
func (b *builder) Build(p *apis.Pass, c apis.Candidate, d apis.Decision) apis.Property {
	name := c.Record.Name
	prop := apis.Property{Name: name}
	if s := c.Storable; s != nil {
		prop.Type = s.StorageType()
		prop.Optional = s.IsOptional()
		s.PopulateProperty(&prop)
	}
	// The hook may not rename the property.
	prop.Name = name
	prop.Indexed = p.Indexed.Has(name)
	if col, ok := p.ColumnNames[name]; ok && col != name {
		prop.ColumnName = col
	}
	prop.Binding = bindingFor(name, d.Binding)
	return prop
}

// bindingFor fills default accessor names: the getter is the exported
// property name, the setter is "Set" plus the getter.
func bindingFor(name string, b apis.Binding) apis.Binding {
	b.FieldIndex = slices.Clone(b.FieldIndex)
	if b.Kind != apis.BindingAccessor {
		return b
	}
	if b.Getter == "" {
		b.Getter = Exported(name)
	}
	if b.Setter == "" {
		b.Setter = "Set" + Exported(name)
	}
	return b
}

// Exported upper-cases the first rune of name.
func Exported(name string) string {
	r, n := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return name
	}
	return string(unicode.ToUpper(r)) + name[n:]
}
