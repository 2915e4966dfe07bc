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

package sqlite

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"

	"dirpx.dev/schema/apis"
	"dirpx.dev/schema/hook"
)

var (
	valuerType  = reflect.TypeFor[driver.Valuer]()
	scannerType = reflect.TypeFor[sql.Scanner]()
)

// toDB converts a property value read through its binding into a value the
// driver accepts.
func toDB(p apis.Property, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if p.Array {
		seq, ok := hook.Enumerate(v)
		if !ok {
			return nil, fmt.Errorf("property %q: %T is not enumerable", p.Name, v)
		}
		items := []any{}
		for item := range seq {
			items = append(items, item)
		}
		b, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Name, err)
		}
		return string(b), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		if !rv.Type().Implements(valuerType) {
			return toDB(p, rv.Elem().Interface())
		}
	}
	switch x := v.(type) {
	case driver.Valuer:
		return x.Value()
	case apis.RawValuer:
		return x.RawValue(), nil
	}
	// Named primitives such as `type Level int8`.
	if dv, err := driver.DefaultParameterConverter.ConvertValue(v); err == nil {
		return dv, nil
	}
	return v, nil
}

// fromDB converts a scanned column value into a value of type t.
func fromDB(p apis.Property, raw any, t reflect.Type) (reflect.Value, error) {
	if raw == nil {
		return reflect.Zero(t), nil
	}
	if p.Array {
		var b []byte
		switch x := raw.(type) {
		case string:
			b = []byte(x)
		case []byte:
			b = x
		default:
			return reflect.Value{}, fmt.Errorf("property %q: array column holds %T", p.Name, raw)
		}
		ptr := reflect.New(t)
		if err := json.Unmarshal(b, ptr.Interface()); err != nil {
			return reflect.Value{}, fmt.Errorf("property %q: %w", p.Name, err)
		}
		return ptr.Elem(), nil
	}

	if reflect.PointerTo(t).Implements(scannerType) {
		ptr := reflect.New(t)
		if err := ptr.Interface().(sql.Scanner).Scan(raw); err != nil {
			return reflect.Value{}, fmt.Errorf("property %q: %w", p.Name, err)
		}
		return ptr.Elem(), nil
	}
	if t.Kind() == reflect.Pointer {
		inner, err := fromDB(p, raw, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(inner)
		return ptr, nil
	}

	rv := reflect.ValueOf(raw)
	if t.Kind() == reflect.String && rv.Kind() == reflect.Slice {
		return reflect.ValueOf(string(rv.Bytes())).Convert(t), nil
	}
	if t.Kind() == reflect.Bool && rv.CanInt() {
		return reflect.ValueOf(rv.Int() != 0).Convert(t), nil
	}
	if t.Kind() == reflect.String && rv.CanInt() {
		return reflect.Value{}, fmt.Errorf("property %q: cannot convert %T to %s", p.Name, raw, t)
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("property %q: cannot convert %T to %s", p.Name, raw, t)
}
