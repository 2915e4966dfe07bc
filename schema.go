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

package schema

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"dirpx.dev/schema/apis"
	"dirpx.dev/schema/capability"
	"dirpx.dev/schema/config"
	"dirpx.dev/schema/engine"
	"dirpx.dev/schema/metrics"
)

// state is an immutable snapshot of the process-wide discovery setup.
type state struct {
	cfg       apis.Config
	reg       apis.Registry
	logger    zerolog.Logger
	metrics   *metrics.Collector
	overrides *config.Overrides
	eng       *engine.Engine
}

var (
	// st holds the current snapshot.
	st atomic.Pointer[state]
	// buildMu serializes writers.
	buildMu sync.Mutex
)

// init publishes the default state.
func init() {
	publish(&state{
		cfg:    config.DefaultConfig(),
		reg:    capability.NewRegistry(),
		logger: zerolog.Nop(),
	})
}

// publish builds the engine for s and stores s atomically.
func publish(s *state) {
	s.eng = engine.New(
		engine.WithConfig(s.cfg),
		engine.WithRegistry(s.reg),
		engine.WithLogger(s.logger),
		engine.WithMetrics(s.metrics),
		engine.WithOverrides(s.overrides),
	)
	st.Store(s)
}

// update applies fn to a copy of the current state and publishes it.
func update(fn func(s *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	fn(&next)
	publish(&next)
}

// Discover returns the schema of v's type using the global engine.
func Discover(v any) (apis.Schema, error) {
	return st.Load().eng.DiscoverValue(v)
}

// DiscoverType returns the schema of t using the global engine.
func DiscoverType(t reflect.Type) (apis.Schema, error) {
	return st.Load().eng.Discover(t)
}

// DiscoverOf returns the schema of T using the global engine.
func DiscoverOf[T any]() (apis.Schema, error) {
	return DiscoverType(reflect.TypeFor[T]())
}

// Engine returns the global engine.
func Engine() *engine.Engine {
	return st.Load().eng
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the global configuration.
func SetConfig(cfg apis.Config) {
	update(func(s *state) { s.cfg = cfg })
}

// Registry returns the global capability registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces the global capability registry. Nil is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	update(func(s *state) { s.reg = reg })
}

// RegisterCapability adds a capability for t to the global registry and
// drops cached schemas.
func RegisterCapability(t reflect.Type, c apis.Storable) error {
	s := st.Load()
	if err := s.reg.Register(t, c); err != nil {
		return err
	}
	s.eng.Purge()
	return nil
}

// SetLogger replaces the global logger.
func SetLogger(l zerolog.Logger) {
	update(func(s *state) { s.logger = l })
}

// SetMetrics replaces the global metrics collector. Nil disables metrics.
func SetMetrics(c *metrics.Collector) {
	update(func(s *state) { s.metrics = c })
}

// SetOverrides replaces the global per-class overrides.
func SetOverrides(o *config.Overrides) {
	update(func(s *state) { s.overrides = o })
}

// WatchOverrides keeps the global overrides in sync with h.
func WatchOverrides(h *config.Holder) {
	h.OnChange(SetOverrides)
	SetOverrides(h.Get())
}

// SetAll replaces several components in one snapshot.
// Nil arguments leave the corresponding component unchanged.
func SetAll(cfg *apis.Config, reg apis.Registry, logger *zerolog.Logger, o *config.Overrides) {
	update(func(s *state) {
		if cfg != nil {
			s.cfg = *cfg
		}
		if reg != nil {
			s.reg = reg
		}
		if logger != nil {
			s.logger = *logger
		}
		if o != nil {
			s.overrides = o
		}
	})
}
