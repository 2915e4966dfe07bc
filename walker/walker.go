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

// Package walker enumerates the declared fields of a struct instance in
// declaration order.
package walker

import (
	"errors"
	"reflect"
	"slices"

	"dirpx.dev/schema/apis"
)

var (
	// ErrNilInstance is returned when Walk receives nil.
	ErrNilInstance = errors.New("schema(walker): nil instance")
	// ErrNotStruct is returned when the instance is not a struct.
	ErrNotStruct = errors.New("schema(walker): instance is not a struct")
)

var lazyType = reflect.TypeFor[apis.Lazy]()

// New returns the default Walker.
func New() apis.Walker {
	return walker{}
}

// walker reflects over struct fields; hosts implementing apis.FieldDescriber
// are trusted to list their own fields instead.
type walker struct{}

// Ensure walker implements apis.Walker.
var _ apis.Walker = walker{}

// Walk returns the field records of instance in declaration order.
//
// Unexported fields are not visited. Untagged embedded structs are flattened
// in place when cfg.FlattenEmbedded is set. Record values are the zero values
// of the field types. A lazy field yields its synthetic storage twin
// followed by the logical field.
func (walker) Walk(instance any, cfg apis.Config) ([]apis.FieldRecord, error) {
	if instance == nil {
		return nil, ErrNilInstance
	}
	if d, ok := instance.(apis.FieldDescriber); ok {
		return slices.Clone(d.DescribeFields()), nil
	}

	t := reflect.TypeOf(instance)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	var out []apis.FieldRecord
	walkStruct(t, nil, cfg, &out)
	return out, nil
}

func walkStruct(t reflect.Type, prefix []int, cfg apis.Config, out *[]apis.FieldRecord) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		raw, tagged := sf.Tag.Lookup(cfg.TagKey)
		index := append(slices.Clone(prefix), i)

		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous && !tagged && cfg.FlattenEmbedded && sf.Type.Kind() == reflect.Struct {
			walkStruct(sf.Type, index, cfg, out)
			continue
		}

		rec := apis.FieldRecord{Name: sf.Name, Value: reflect.Zero(sf.Type).Interface(), Index: index}
		if tagged {
			tag := ParseTag(raw)
			if tag.Name != "" {
				rec.Name = tag.Name
			}
			if !tag.Ignore {
				acc := tag.Accessor
				rec.Accessor = &acc
			}
		}

		if et, ok := lazyElem(sf.Type); ok {
			*out = append(*out, apis.FieldRecord{
				Name:      cfg.LazyStoragePrefix + rec.Name,
				Value:     rec.Value,
				Index:     index,
				Synthetic: true,
			})
			rec.Value = lazyZero(et)
			rec.Index = nil
		}
		*out = append(*out, rec)
	}
}

// lazyElem reports whether fields of type t are lazy, and the type they
// produce. A Lazy[T] declared by value counts when *Lazy[T] is lazy.
// No method is ever called on a nil pointer.
func lazyElem(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() == reflect.Interface {
		return nil, t.Implements(lazyType)
	}
	switch {
	case t.Kind() == reflect.Pointer && t.Elem().Implements(lazyType):
		return reflect.Zero(t.Elem()).Interface().(apis.Lazy).LazyType(), true
	case t.Kind() == reflect.Pointer && t.Implements(lazyType):
		return reflect.New(t.Elem()).Interface().(apis.Lazy).LazyType(), true
	case t.Implements(lazyType):
		return reflect.Zero(t).Interface().(apis.Lazy).LazyType(), true
	case reflect.PointerTo(t).Implements(lazyType):
		return reflect.New(t).Interface().(apis.Lazy).LazyType(), true
	}
	return nil, false
}

// lazyZero returns the zero value produced by a lazy field.
func lazyZero(et reflect.Type) any {
	if et == nil {
		return nil
	}
	return reflect.Zero(et).Interface()
}

// Hints are the per-field configuration signals carried by struct tags.
type Hints struct {
	// Ignored lists fields tagged "-".
	Ignored []string
	// Indexed lists fields tagged with the index option.
	Indexed []string
	// Columns maps property names to column= tag options.
	Columns map[string]string
}

// TagHints collects Hints from the struct tags of t (or the struct t points
// to), following the same flattening rules as Walk.
func TagHints(t reflect.Type, cfg apis.Config) Hints {
	var h Hints
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return h
	}
	collectHints(t, cfg, &h)
	return h
}

func collectHints(t reflect.Type, cfg apis.Config, h *Hints) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		raw, tagged := sf.Tag.Lookup(cfg.TagKey)
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous && !tagged && cfg.FlattenEmbedded && sf.Type.Kind() == reflect.Struct {
			collectHints(sf.Type, cfg, h)
			continue
		}
		if !tagged {
			continue
		}
		tag := ParseTag(raw)
		name := sf.Name
		if tag.Name != "" {
			name = tag.Name
		}
		switch {
		case tag.Ignore:
			h.Ignored = append(h.Ignored, name)
		case tag.Index:
			h.Indexed = append(h.Indexed, name)
		}
		if tag.Column != "" {
			if h.Columns == nil {
				h.Columns = make(map[string]string)
			}
			h.Columns[name] = tag.Column
		}
	}
}
