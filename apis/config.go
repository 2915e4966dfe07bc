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

// Config carries read-only discovery knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// TagKey is the struct tag key that declares accessors and their attributes.
	TagKey string

	// LazyStoragePrefix is prepended to a lazy field's name to form the name
	// of its synthetic storage twin.
	LazyStoragePrefix string

	// ReservedPrefixes are property name prefixes rejected as invalid.
	ReservedPrefixes []string

	// FlattenEmbedded walks untagged anonymous struct fields in place.
	FlattenEmbedded bool

	// MaxUnwrap limits container unwrapping depth (ptr/slice/array/map) when
	// resolving the class name of a linked or element type.
	MaxUnwrap int

	// CacheSize bounds the number of cached schemas. Zero disables caching.
	CacheSize int
}
