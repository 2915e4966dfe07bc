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

package walker

import (
	"strings"

	"dirpx.dev/schema/apis"
)

// Tag is a parsed field tag.
//
// Grammar: `schema:"[name][,readonly][,computed][,index][,getter=X][,setter=Y][,column=C]"`.
// A tag of exactly "-" ignores the field.
type Tag struct {
	Name     string
	Ignore   bool
	Index    bool
	Column   string
	Accessor apis.Accessor
}

// ParseTag parses the value of a schema struct tag.
func ParseTag(s string) Tag {
	if s == "-" {
		return Tag{Ignore: true}
	}
	parts := strings.Split(s, ",")
	t := Tag{Name: strings.TrimSpace(parts[0])}
	for _, opt := range parts[1:] {
		key, val, _ := strings.Cut(strings.TrimSpace(opt), "=")
		switch key {
		case "readonly":
			t.Accessor.ReadOnly = true
		case "computed":
			t.Accessor.Computed = true
		case "index":
			t.Index = true
		case "getter":
			t.Accessor.Getter = val
		case "setter":
			t.Accessor.Setter = val
		case "column":
			t.Column = val
		}
	}
	return t
}
