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

// Classifier coordinates strategies to decide keep/skip/fail per field.
// Implementations never return errors: failures are ActionFail decisions.
type Classifier interface {
	// Classify returns the decision for rec. The returned Candidate carries the
	// resolved capability for ActionKeep decisions.
	Classify(rec FieldRecord, p *Pass) (Candidate, Decision)
}
