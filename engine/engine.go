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

// Package engine drives discovery passes: it walks a struct type, classifies
// every field, builds the property descriptors and publishes the result as
// an immutable apis.Schema.
//
// An Engine is safe for concurrent use. Results are cached per type; the
// cache is purged whenever the overrides change.
package engine

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"dirpx.dev/schema/apis"
	"dirpx.dev/schema/builder"
	"dirpx.dev/schema/capability"
	"dirpx.dev/schema/classifier"
	"dirpx.dev/schema/config"
	"dirpx.dev/schema/hook"
	"dirpx.dev/schema/metrics"
	ureflect "dirpx.dev/schema/utils/reflect"
	"dirpx.dev/schema/walker"
)

// Engine discovers schemas.
type Engine struct {
	cfg        apis.Config
	reg        apis.Registry
	walker     apis.Walker
	classifier apis.Classifier
	builder    apis.Builder
	logger     zerolog.Logger
	metrics    *metrics.Collector

	mu        sync.RWMutex
	overrides *config.Overrides
	// gen advances on every purge; a pass started under an older
	// generation does not populate the cache.
	gen uint64

	cache *lru.Cache[reflect.Type, apis.Schema]
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the discovery configuration.
func WithConfig(cfg apis.Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithRegistry sets the capability registry. Nil keeps the built-in one.
func WithRegistry(reg apis.Registry) Option {
	return func(e *Engine) {
		if reg != nil {
			e.reg = reg
		}
	}
}

// WithWalker replaces the field walker.
func WithWalker(w apis.Walker) Option {
	return func(e *Engine) {
		if w != nil {
			e.walker = w
		}
	}
}

// WithClassifier replaces the field classifier.
func WithClassifier(c apis.Classifier) Option {
	return func(e *Engine) {
		if c != nil {
			e.classifier = c
		}
	}
}

// WithBuilder replaces the descriptor builder.
func WithBuilder(b apis.Builder) Option {
	return func(e *Engine) {
		if b != nil {
			e.builder = b
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMetrics sets the metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) { e.metrics = c }
}

// WithOverrides sets the initial per-class overrides.
func WithOverrides(o *config.Overrides) Option {
	return func(e *Engine) { e.overrides = o }
}

// New creates an Engine. Unset components use the defaults: the built-in
// capability registry, reflection walker, canonical classifier and
// descriptor builder.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg:        config.DefaultConfig(),
		reg:        capability.NewRegistry(),
		walker:     walker.New(),
		classifier: classifier.Default(),
		builder:    builder.New(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cfg.CacheSize > 0 {
		// lru.New only fails for non-positive sizes.
		e.cache, _ = lru.New[reflect.Type, apis.Schema](e.cfg.CacheSize)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() apis.Config { return e.cfg }

// Registry returns the capability registry.
func (e *Engine) Registry() apis.Registry { return e.reg }

// Overrides returns the current overrides.
func (e *Engine) Overrides() *config.Overrides {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.overrides
}

// SetOverrides replaces the overrides and purges the cache.
func (e *Engine) SetOverrides(o *config.Overrides) {
	e.mu.Lock()
	e.overrides = o
	e.mu.Unlock()
	e.Purge()
}

// WatchOverrides follows h: the current overrides are applied now and on
// every successful reload.
func (e *Engine) WatchOverrides(h *config.Holder) {
	h.SetMetrics(e.metrics)
	h.OnChange(e.SetOverrides)
	e.SetOverrides(h.Get())
}

// Purge drops every cached schema. Call it after registering capabilities
// that change how already discovered types classify.
func (e *Engine) Purge() {
	if e.cache == nil {
		return
	}
	e.mu.Lock()
	e.gen++
	e.cache.Purge()
	e.mu.Unlock()
	e.metrics.RecordPurge()
	e.metrics.SetCacheEntries(0)
}

// DiscoverValue discovers the schema of v's type. Only the type of v is
// inspected.
func (e *Engine) DiscoverValue(v any) (apis.Schema, error) {
	if v == nil {
		return apis.Schema{}, newError(apis.KindInvalidObjectType, "", "", "nil value")
	}
	return e.Discover(reflect.TypeOf(v))
}

// Discover returns the schema of struct type t (or the struct t points to).
// The first hard failure in declaration order aborts the pass with *Error.
// The returned schema is a copy the caller may modify.
func (e *Engine) Discover(t reflect.Type) (apis.Schema, error) {
	hook.Install()

	st, ok := ureflect.StructType(t, e.cfg)
	if !ok {
		err := newError(apis.KindInvalidObjectType, typeName(t), "", fmt.Sprintf("%s is not a struct", typeName(t)))
		e.metrics.RecordFailure(err.Kind.String())
		return apis.Schema{}, err
	}

	if e.cache != nil {
		if s, ok := e.cache.Get(st); ok {
			e.metrics.RecordDiscovery(s.ClassName, metrics.ResultCached, 0)
			return s.Clone(), nil
		}
	}

	gen := e.generation()
	start := time.Now()
	s, err := e.run(st)
	elapsed := time.Since(start)
	if err != nil {
		e.metrics.RecordDiscovery(err.Class, metrics.ResultError, elapsed)
		e.metrics.RecordFailure(err.Kind.String())
		e.logger.Warn().
			Str("class", err.Class).
			Str("kind", err.Kind.String()).
			Str("property", err.Property).
			Msg(err.Message)
		return apis.Schema{}, err
	}

	e.metrics.RecordDiscovery(s.ClassName, metrics.ResultOK, elapsed)
	e.logger.Debug().
		Str("class", s.ClassName).
		Int("properties", len(s.Properties)).
		Dur("elapsed", elapsed).
		Msg("schema discovered")

	if e.cache != nil {
		e.store(st, s, gen)
	}
	return s.Clone(), nil
}

func (e *Engine) generation() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gen
}

// store caches s unless a purge happened since the pass began.
func (e *Engine) store(st reflect.Type, s apis.Schema, gen uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.gen != gen {
		return
	}
	e.cache.Add(st, s)
	e.metrics.SetCacheEntries(e.cache.Len())
}

// run performs one uncached discovery pass over struct type st.
func (e *Engine) run(st reflect.Type) (apis.Schema, *Error) {
	instance := reflect.New(st).Interface()
	pass := e.pass(st, instance)

	records, err := e.walker.Walk(instance, e.cfg)
	if err != nil {
		return apis.Schema{}, newError(apis.KindInvalidObjectType, pass.ClassName, "", err.Error())
	}

	props := make([]apis.Property, 0, len(records))
	for _, rec := range records {
		c, d := e.classifier.Classify(rec, pass)
		switch d.Action {
		case apis.ActionFail:
			name := rec.Name
			if d.BaseName != "" {
				name = d.BaseName
			}
			return apis.Schema{}, newError(d.Kind, pass.ClassName, name, d.Message)
		case apis.ActionSkip, apis.ActionSkipLazyTwin:
			e.skipped(pass.ClassName, rec.Name, d.Reason)
		case apis.ActionKeep:
			p := e.builder.Build(pass, c, d)
			if !p.Binding.Resolvable() {
				e.skipped(pass.ClassName, rec.Name, apis.SkipUnbound)
				continue
			}
			props = append(props, p)
		}
	}

	seen := make(map[string]struct{}, len(props))
	for _, p := range props {
		if _, dup := seen[p.Name]; dup {
			return apis.Schema{}, newError(apis.KindDuplicatePropertyName, pass.ClassName, p.Name,
				fmt.Sprintf("property %q is declared more than once", p.Name))
		}
		seen[p.Name] = struct{}{}
	}

	return apis.Schema{ClassName: pass.ClassName, Type: st, Properties: props}, nil
}

// pass gathers the per-pass configuration. Host declarations, struct tags
// and overrides are merged; none can remove a name another source adds.
// For column names the host wins over tags and overrides win over both.
func (e *Engine) pass(st reflect.Type, instance any) *apis.Pass {
	p := &apis.Pass{
		Type:         st,
		ClassName:    ureflect.ClassName(st, e.cfg),
		Config:       e.cfg,
		Capabilities: e.reg,
		Ignored:      apis.NewNameSet(),
		Indexed:      apis.NewNameSet(),
		ColumnNames:  make(map[string]string),
	}

	if h, ok := instance.(apis.IgnoredPropertiesProvider); ok {
		p.Ignored.Add(h.IgnoredProperties()...)
	}
	if h, ok := instance.(apis.IndexedPropertiesProvider); ok {
		p.Indexed.Add(h.IndexedProperties()...)
	}
	if h, ok := instance.(apis.ColumnNamesProvider); ok {
		for k, v := range h.ColumnNames() {
			p.ColumnNames[k] = v
		}
	}

	tags := walker.TagHints(st, e.cfg)
	p.Ignored.Add(tags.Ignored...)
	p.Indexed.Add(tags.Indexed...)
	for k, v := range tags.Columns {
		if _, ok := p.ColumnNames[k]; !ok {
			p.ColumnNames[k] = v
		}
	}

	if o, ok := e.Overrides().For(p.ClassName); ok {
		p.Ignored.Add(o.Ignore...)
		p.Indexed.Add(o.Index...)
		for k, v := range o.Columns {
			p.ColumnNames[k] = v
		}
	}
	return p
}

func (e *Engine) skipped(class, field string, reason apis.SkipReason) {
	e.metrics.RecordSkip(string(reason))
	e.logger.Debug().
		Str("class", class).
		Str("field", field).
		Str("reason", string(reason)).
		Msg("field skipped")
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
