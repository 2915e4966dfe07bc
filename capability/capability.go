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

// Package capability supplies the default Storable behavior, the built-in
// capabilities for Go primitives, and the generic wrapper types
// (Optional, List, Lazy) understood by the classifier.
package capability

import "dirpx.dev/schema/apis"

// Defaults supplies the common-case Storable methods. Embed it and implement
// StorageType:
//
//	type Money struct {
//	    capability.Defaults
//	    Cents int64
//	}
//
//	func (Money) StorageType() apis.PropertyType { return apis.PropertyTypeInt }
type Defaults struct{}

// IsOptional returns false.
func (Defaults) IsOptional() bool { return false }

// RequiresBridging returns true.
func (Defaults) RequiresBridging() bool { return true }

// PopulateProperty does nothing.
func (Defaults) PopulateProperty(*apis.Property) {}

// Primitive is a plain capability with a fixed storage type tag. It is what
// the built-in registry holds and what callers register for foreign types.
type Primitive struct {
	Defaults
	Tag apis.PropertyType
}

// StorageType returns p.Tag.
func (p Primitive) StorageType() apis.PropertyType { return p.Tag }

// optional marks an inner capability optional.
type optional struct {
	inner    apis.Storable
	bridging bool
}

func (o optional) StorageType() apis.PropertyType    { return o.inner.StorageType() }
func (o optional) IsOptional() bool                  { return true }
func (o optional) RequiresBridging() bool            { return o.bridging }
func (o optional) PopulateProperty(p *apis.Property) { o.inner.PopulateProperty(p) }

// array turns an element capability into a list-of-element capability.
type array struct {
	elem     apis.Storable
	bridging bool
}

func (a array) StorageType() apis.PropertyType { return a.elem.StorageType() }
func (a array) IsOptional() bool               { return a.elem.IsOptional() }
func (a array) RequiresBridging() bool         { return a.bridging }
func (a array) PopulateProperty(p *apis.Property) {
	p.Array = true
	a.elem.PopulateProperty(p)
}

// link is an optional reference to another object class.
type link struct {
	Defaults
	class string
}

func (l link) StorageType() apis.PropertyType { return apis.PropertyTypeObject }
func (l link) IsOptional() bool               { return true }
func (l link) PopulateProperty(p *apis.Property) {
	p.ObjectClassName = l.class
}

// Ensure the capability shapes implement apis.Storable.
var (
	_ apis.Storable = Primitive{}
	_ apis.Storable = optional{}
	_ apis.Storable = array{}
	_ apis.Storable = link{}
)
