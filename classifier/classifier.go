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

// Package classifier decides keep, skip, or fail for each walked field by
// running an ordered chain of strategies.
package classifier

import (
	"dirpx.dev/schema/apis"
	"dirpx.dev/schema/strategy"
)

// New constructs an apis.Classifier that tries the given strategies in order.
// Nil strategies are ignored. The returned classifier is safe for concurrent
// use provided the strategies are.
func New(strategies ...apis.Strategy) apis.Classifier {
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// Default returns the classifier with the canonical rule order.
func Default() apis.Classifier {
	return New(
		strategy.NewIgnoreStrategy(),
		strategy.NewLazyStrategy(),
		strategy.NewRawValueStrategy(),
		strategy.NewCapabilityStrategy(),
		strategy.NewNameStrategy(),
		strategy.NewAccessorStrategy(),
	)
}

// chain is an immutable, order-preserving classifier over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Classify runs strategies in order until one settles the decision.
// A record no strategy settles is skipped as unsupported.
func (r chain) Classify(rec apis.FieldRecord, p *apis.Pass) (apis.Candidate, apis.Decision) {
	c := apis.Candidate{Record: rec, Value: rec.Value}
	for _, s := range r.strats {
		if d, ok := s.TryClassify(&c, p); ok {
			return c, d
		}
	}
	return c, apis.Skip(apis.SkipUnsupported)
}
