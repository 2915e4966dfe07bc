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

package apis

// Strategy is one classification rule. A Classifier chains strategies in
// order (e.g., Ignore -> Lazy -> RawValue -> Capability -> Name -> Accessor).
type Strategy interface {
	// TryClassify inspects c within pass p. It returns (decision, true) when the
	// rule settles the field; otherwise it may refine c and returns false to
	// fall through.
	TryClassify(c *Candidate, p *Pass) (d Decision, handled bool)
}
