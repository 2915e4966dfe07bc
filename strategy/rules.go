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

// Package strategy holds the field classification rules. Each rule either
// settles the decision for a candidate or refines it and lets the next rule
// run; classifier.Default chains them in the canonical order.
package strategy

import (
	"strings"

	"dirpx.dev/schema/apis"
)

// NewIgnoreStrategy creates an apis.Strategy that skips names in the pass
// ignore set.
func NewIgnoreStrategy() apis.Strategy {
	return ignoreStrategy{}
}

type ignoreStrategy struct{}

// Ensure ignoreStrategy implements apis.Strategy.
var _ apis.Strategy = ignoreStrategy{}

// TryClassify settles ignored names with Skip(ignored).
func (ignoreStrategy) TryClassify(c *apis.Candidate, p *apis.Pass) (apis.Decision, bool) {
	if p.Ignored.Has(c.Record.Name) {
		return apis.Skip(apis.SkipIgnored), true
	}
	return apis.Decision{}, false
}

// NewLazyStrategy creates an apis.Strategy for synthetic lazy-storage twins.
// A twin of an ignored field is skipped; any other twin is fatal.
func NewLazyStrategy() apis.Strategy {
	return lazyStrategy{}
}

type lazyStrategy struct{}

// Ensure lazyStrategy implements apis.Strategy.
var _ apis.Strategy = lazyStrategy{}

// TryClassify recognizes twins by the configured storage prefix or the
// Synthetic flag.
func (lazyStrategy) TryClassify(c *apis.Candidate, p *apis.Pass) (apis.Decision, bool) {
	prefix := p.Config.LazyStoragePrefix
	name := c.Record.Name
	if !c.Record.Synthetic && (prefix == "" || !strings.HasPrefix(name, prefix)) {
		return apis.Decision{}, false
	}
	base := strings.TrimPrefix(name, prefix)
	if p.Ignored.Has(base) {
		return apis.Decision{Action: apis.ActionSkipLazyTwin, Reason: apis.SkipLazyTwin, BaseName: base}, true
	}
	d := apis.Fail(apis.KindLazyPropertyNotAllowed,
		"lazy field %q must be ignored or declared eager", base)
	d.BaseName = base
	return d, true
}
