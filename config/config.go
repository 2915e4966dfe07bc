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

package config

import (
	"slices"

	"dirpx.dev/schema/apis"
)

const (
	// DefaultTagKey is the struct tag key that declares accessors.
	DefaultTagKey = "schema"
	// DefaultLazyStoragePrefix names the synthetic storage twin of a lazy field.
	DefaultLazyStoragePrefix = "$__lazy_storage_$_"
	// DefaultFlattenEmbedded walks untagged embedded structs in place.
	DefaultFlattenEmbedded = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultCacheSize is the number of schemas kept by the engine cache.
	DefaultCacheSize = 256
)

// DefaultReservedPrefixes returns the property name prefixes reserved for
// synthetic and engine-internal names.
func DefaultReservedPrefixes() []string {
	return []string{"$", "__"}
}

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap and CacheSize are valid.
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.CacheSize < 0 {
		cfg.CacheSize = 0
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		TagKey:            DefaultTagKey,
		LazyStoragePrefix: DefaultLazyStoragePrefix,
		ReservedPrefixes:  DefaultReservedPrefixes(),
		FlattenEmbedded:   DefaultFlattenEmbedded,
		MaxUnwrap:         DefaultMaxUnwrap,
		CacheSize:         DefaultCacheSize,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithTagKey sets the TagKey option. An empty key resets to the default.
func WithTagKey(key string) Option {
	return func(c *apis.Config) {
		if key == "" {
			key = DefaultTagKey
		}
		c.TagKey = key
	}
}

// WithLazyStoragePrefix sets the LazyStoragePrefix option.
// An empty prefix resets to the default.
func WithLazyStoragePrefix(prefix string) Option {
	return func(c *apis.Config) {
		if prefix == "" {
			prefix = DefaultLazyStoragePrefix
		}
		c.LazyStoragePrefix = prefix
	}
}

// WithReservedPrefixes replaces the ReservedPrefixes option.
func WithReservedPrefixes(prefixes ...string) Option {
	return func(c *apis.Config) {
		c.ReservedPrefixes = slices.Clone(prefixes)
	}
}

// WithFlattenEmbedded sets the FlattenEmbedded option.
func WithFlattenEmbedded(flatten bool) Option {
	return func(c *apis.Config) {
		c.FlattenEmbedded = flatten
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A non-positive value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithCacheSize sets the CacheSize option. Zero or less disables caching.
func WithCacheSize(n int) Option {
	return func(c *apis.Config) {
		if n < 0 {
			n = 0
		}
		c.CacheSize = n
	}
}
