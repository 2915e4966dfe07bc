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

package config_test

import (
	"reflect"
	"testing"

	"dirpx.dev/schema/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.TagKey != config.DefaultTagKey {
		t.Fatalf("TagKey = %q, want %q", got.TagKey, config.DefaultTagKey)
	}
	if got.LazyStoragePrefix != config.DefaultLazyStoragePrefix {
		t.Fatalf("LazyStoragePrefix = %q, want %q", got.LazyStoragePrefix, config.DefaultLazyStoragePrefix)
	}
	if !reflect.DeepEqual(got.ReservedPrefixes, []string{"$", "__"}) {
		t.Fatalf("ReservedPrefixes = %v, want [$ __]", got.ReservedPrefixes)
	}
	if got.FlattenEmbedded != config.DefaultFlattenEmbedded {
		t.Fatalf("FlattenEmbedded = %v, want %v", got.FlattenEmbedded, config.DefaultFlattenEmbedded)
	}
	if got.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want %d", got.MaxUnwrap, config.DefaultMaxUnwrap)
	}
	if got.CacheSize != config.DefaultCacheSize {
		t.Fatalf("CacheSize = %d, want %d", got.CacheSize, config.DefaultCacheSize)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if !reflect.DeepEqual(got, def) {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestDefaultReservedPrefixes_IsACopy(t *testing.T) {
	a := config.DefaultReservedPrefixes()
	a[0] = "x"
	if b := config.DefaultReservedPrefixes(); b[0] != "$" {
		t.Fatalf("DefaultReservedPrefixes shared state: got %q", b[0])
	}
}

func TestWithTagKey(t *testing.T) {
	c := config.NewConfig(config.WithTagKey("db"))
	if c.TagKey != "db" {
		t.Fatalf("TagKey = %q, want db", c.TagKey)
	}

	c2 := config.NewConfig(config.WithTagKey(""))
	if c2.TagKey != config.DefaultTagKey {
		t.Fatalf("TagKey = %q, want default %q", c2.TagKey, config.DefaultTagKey)
	}
}

func TestWithLazyStoragePrefix(t *testing.T) {
	c := config.NewConfig(config.WithLazyStoragePrefix("lazy_"))
	if c.LazyStoragePrefix != "lazy_" {
		t.Fatalf("LazyStoragePrefix = %q, want lazy_", c.LazyStoragePrefix)
	}

	c2 := config.NewConfig(config.WithLazyStoragePrefix(""))
	if c2.LazyStoragePrefix != config.DefaultLazyStoragePrefix {
		t.Fatalf("LazyStoragePrefix = %q, want default", c2.LazyStoragePrefix)
	}
}

func TestWithReservedPrefixes_Copies(t *testing.T) {
	in := []string{"sys_"}
	c := config.NewConfig(config.WithReservedPrefixes(in...))
	in[0] = "changed"
	if !reflect.DeepEqual(c.ReservedPrefixes, []string{"sys_"}) {
		t.Fatalf("ReservedPrefixes = %v, want [sys_]", c.ReservedPrefixes)
	}

	c2 := config.NewConfig(config.WithReservedPrefixes())
	if len(c2.ReservedPrefixes) != 0 {
		t.Fatalf("ReservedPrefixes = %v, want empty", c2.ReservedPrefixes)
	}
}

func TestWithFlattenEmbedded(t *testing.T) {
	c := config.NewConfig(config.WithFlattenEmbedded(false))
	if c.FlattenEmbedded {
		t.Fatalf("FlattenEmbedded = %v, want false", c.FlattenEmbedded)
	}
}

func TestWithMaxUnwrap_Positive(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(3))
	if c.MaxUnwrap != 3 {
		t.Fatalf("MaxUnwrap = %d, want 3", c.MaxUnwrap)
	}
}

func TestWithMaxUnwrap_NonPositive_ResetsToDefault(t *testing.T) {
	for _, n := range []int{0, -1} {
		c := config.NewConfig(config.WithMaxUnwrap(n))
		if c.MaxUnwrap != config.DefaultMaxUnwrap {
			t.Fatalf("MaxUnwrap(%d) = %d, want default %d", n, c.MaxUnwrap, config.DefaultMaxUnwrap)
		}
	}
}

func TestWithCacheSize(t *testing.T) {
	c := config.NewConfig(config.WithCacheSize(0))
	if c.CacheSize != 0 {
		t.Fatalf("CacheSize = %d, want 0 (caching disabled)", c.CacheSize)
	}

	c2 := config.NewConfig(config.WithCacheSize(-5))
	if c2.CacheSize != 0 {
		t.Fatalf("CacheSize = %d, want 0 for negative input", c2.CacheSize)
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithTagKey("a"),
		config.WithTagKey("b"),
		config.WithMaxUnwrap(2),
		config.WithMaxUnwrap(5),
		config.WithFlattenEmbedded(false),
		config.WithFlattenEmbedded(true),
	)

	if c.TagKey != "b" {
		t.Errorf("TagKey = %q, want b (last option wins)", c.TagKey)
	}
	if c.MaxUnwrap != 5 {
		t.Errorf("MaxUnwrap = %d, want 5 (last option wins)", c.MaxUnwrap)
	}
	if !c.FlattenEmbedded {
		t.Errorf("FlattenEmbedded = %v, want true (last option wins)", c.FlattenEmbedded)
	}
}
