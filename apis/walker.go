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

// Walker enumerates the declared fields of an instance in declaration order.
type Walker interface {
	// Walk returns the field records of instance, which must be a struct or a
	// pointer to one. Walking is read-only.
	Walk(instance any, cfg Config) ([]FieldRecord, error)
}
