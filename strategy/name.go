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
	"strings"
	"unicode"

	"dirpx.dev/schema/apis"
)

// NewNameStrategy creates an apis.Strategy that rejects empty names,
// non-identifiers, and names starting with a reserved prefix.
func NewNameStrategy() apis.Strategy {
	return nameStrategy{}
}

type nameStrategy struct{}

// Ensure nameStrategy implements apis.Strategy.
var _ apis.Strategy = nameStrategy{}

// TryClassify settles only invalid names.
func (nameStrategy) TryClassify(c *apis.Candidate, p *apis.Pass) (apis.Decision, bool) {
	name := c.Record.Name
	if name == "" {
		return apis.Fail(apis.KindInvalidPropertyName, "property name is empty"), true
	}
	for _, prefix := range p.Config.ReservedPrefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return apis.Fail(apis.KindInvalidPropertyName,
				"property name %q uses reserved prefix %q", name, prefix), true
		}
	}
	if !ValidName(name) {
		return apis.Fail(apis.KindInvalidPropertyName,
			"property name %q is not a valid identifier", name), true
	}
	return apis.Decision{}, false
}

// ValidName reports whether s is a letter or underscore followed by letters,
// digits, or underscores.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
