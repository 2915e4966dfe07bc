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

// Package schema discovers storage schemas from Go struct types.
//
// Given a struct type, schema walks its fields in declaration order,
// classifies each one and produces an ordered apis.Schema: one
// apis.Property per persisted field, carrying the storage type tag,
// optionality, index flag, column name and the binding used to read and
// write the value. A storage layer (see storage/sqlite) turns that list
// into table and index definitions.
//
// # Declaring fields
//
// A struct tag declares an accessor. Tagged fields of storable types are
// persisted through their accessor pair:
//
//	type User struct {
//		ID     int64     `schema:"id,index"`
//		Email  string    `schema:"email,column=email_address"`
//		Joined time.Time `schema:"joined,readonly"`
//		Secret string    `schema:"-"`
//	}
//
// Tag options:
//
//   - readonly: the accessor is read-only, the field is not persisted
//   - computed: the accessor has no backing storage, the field is not persisted
//   - index: the column is indexed
//   - column=C: the storage column is named C
//   - getter=G, setter=S: custom accessor method names
//
// Untagged fields are persisted only when their capability binds directly
// to the storage slot (capability.Optional and capability.List). Anything
// else without a tag is silently left out.
//
// # Failures
//
// Discovery either fully succeeds or fails with one *engine.Error naming
// the kind, the class, the offending property and a hint. Typical causes:
//
//   - a *capability.Lazy field that is not ignored (LazyPropertyNotAllowed)
//   - a tagged field of a type with no capability (UnsupportedPropertyType)
//   - capability.Optional over a type outside the built-in set
//     (UnsupportedOptionalWrapperType)
//   - an invalid or reserved property name (InvalidPropertyName)
//   - two persisted fields with the same name (DuplicatePropertyName)
//
// Skipped fields are not failures; they are logged at debug level.
//
// # Global state
//
// The package holds a read-mostly snapshot with the configuration,
// capability registry, logger, metrics and overrides, plus the engine built
// from them. Readers load the snapshot atomically and never lock. Writers
// (SetConfig, SetRegistry, SetLogger, SetMetrics, SetOverrides, SetAll)
// take a build mutex, assemble a new snapshot with a fresh engine and
// publish it with an atomic swap. Programs that want isolated state use
// engine.New directly.
//
// # Overrides
//
// Per-class ignore, index and column settings can also come from a YAML
// file (config.LoadOverrides). A config.Holder watches the file and
// WatchOverrides republishes the snapshot on every successful reload.
package schema
