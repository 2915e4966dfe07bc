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

package reflect

import (
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/schema/apis"
)

var modelType = reflect.TypeFor[apis.Model]()

// cacheKey ensures memoization respects the config knob that affects naming.
type cacheKey struct {
	t         reflect.Type
	maxUnwrap int16
}

// classNameCache caches resolved class names by (type, config knobs).
var classNameCache sync.Map // key: cacheKey, val: string

// ClassName resolves the object class name of t:
//  1. If the nearest named type (or a pointer to it) implements apis.Model,
//     use its ClassName().
//  2. Otherwise derive a stable "pkg.Type" from the Go type, with generic
//     instantiation parameters stripped.
//
// It returns "" when t has no named inner type.
func ClassName(t reflect.Type, cfg apis.Config) string {
	if t == nil {
		return ""
	}
	key := cacheKey{t: t, maxUnwrap: int16(cfg.MaxUnwrap)}
	if v, ok := classNameCache.Load(key); ok {
		return v.(string)
	}

	name := ""
	if base, err := Normalize(t, cfg); err == nil {
		name = byType(base)
	}
	classNameCache.Store(key, name)
	return name
}

// byType names a normalized, named type.
func byType(base reflect.Type) string {
	switch {
	case base.Implements(modelType) && base.Kind() != reflect.Interface:
		return reflect.Zero(base).Interface().(apis.Model).ClassName()
	case reflect.PointerTo(base).Implements(modelType):
		return reflect.New(base).Interface().(apis.Model).ClassName()
	}

	name := stripTypeParams(base.Name())
	if p := base.PkgPath(); p != "" {
		name = path.Base(p) + "." + name
	}
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
