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
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"dirpx.dev/schema/config"
	"dirpx.dev/schema/metrics"
)

const validOverrides = `
classes:
  models.User:
    ignore: [secret]
    index: [email]
    columns:
      name: user_name
`

func writeOverrides(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write overrides: %v", err)
	}
	return path
}

func TestParseOverrides(t *testing.T) {
	o, err := config.ParseOverrides([]byte(validOverrides))
	if err != nil {
		t.Fatalf("ParseOverrides error: %v", err)
	}

	c, ok := o.For("models.User")
	if !ok {
		t.Fatal("For(models.User) not found")
	}
	if len(c.Ignore) != 1 || c.Ignore[0] != "secret" {
		t.Errorf("Ignore = %v, want [secret]", c.Ignore)
	}
	if len(c.Index) != 1 || c.Index[0] != "email" {
		t.Errorf("Index = %v, want [email]", c.Index)
	}
	if c.Columns["name"] != "user_name" {
		t.Errorf("Columns[name] = %q, want user_name", c.Columns["name"])
	}

	if _, ok := o.For("models.Other"); ok {
		t.Error("For(models.Other) should not be found")
	}
}

func TestOverrides_NilFor(t *testing.T) {
	var o *config.Overrides
	if _, ok := o.For("anything"); ok {
		t.Fatal("nil overrides should have no classes")
	}
}

func TestParseOverrides_InvalidYAML(t *testing.T) {
	if _, err := config.ParseOverrides([]byte("classes: [")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestParseOverrides_ValidationCollectsAll(t *testing.T) {
	content := `
classes:
  a.A:
    ignore: [""]
  b.B:
    index: [""]
    columns:
      name: ""
`
	_, err := config.ParseOverrides([]byte(content))
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{
		"a.A: empty name in ignore",
		"b.B: empty name in index",
		`b.B: column mapping "name" -> "" is incomplete`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestLoadOverrides_MissingFile(t *testing.T) {
	if _, err := config.LoadOverrides(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestHolder_Get(t *testing.T) {
	h, err := config.NewHolder(writeOverrides(t, validOverrides), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	if _, ok := h.Get().For("models.User"); !ok {
		t.Fatal("Get returned overrides without models.User")
	}
}

func TestHolder_ReloadAndOnChange(t *testing.T) {
	path := writeOverrides(t, validOverrides)

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	var mu sync.Mutex
	var received *config.Overrides
	h.OnChange(func(o *config.Overrides) {
		mu.Lock()
		received = o
		mu.Unlock()
	})

	newContent := `
classes:
  models.Post:
    index: [slug]
`
	if err := os.WriteFile(path, []byte(newContent), 0644); err != nil {
		t.Fatalf("write new overrides: %v", err)
	}
	if err := h.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	if _, ok := h.Get().For("models.Post"); !ok {
		t.Error("reloaded overrides missing models.Post")
	}
	mu.Lock()
	defer mu.Unlock()
	if received == nil {
		t.Fatal("OnChange callback was not called")
	}
	if _, ok := received.For("models.Post"); !ok {
		t.Error("callback received stale overrides")
	}
}

func TestHolder_ListenersSnapshotPerReload(t *testing.T) {
	path := writeOverrides(t, validOverrides)

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	var first, late int
	h.OnChange(func(*config.Overrides) {
		first++
		if first == 1 {
			// Registering from a callback must not deadlock.
			h.OnChange(func(*config.Overrides) { late++ })
		}
	})

	for i := 1; i <= 2; i++ {
		if err := h.Reload(); err != nil {
			t.Fatalf("Reload %d error: %v", i, err)
		}
	}
	if first != 2 {
		t.Errorf("first listener calls = %d, want 2", first)
	}
	if late != 1 {
		t.Errorf("late listener calls = %d, want 1", late)
	}
}

func TestHolder_ReloadInvalidKeepsOld(t *testing.T) {
	path := writeOverrides(t, validOverrides)

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(reg)
	h.SetMetrics(m)

	if err := os.WriteFile(path, []byte("classes:\n  a.A:\n    ignore: [\"\"]\n"), 0644); err != nil {
		t.Fatalf("write invalid overrides: %v", err)
	}
	if err := h.Reload(); err == nil {
		t.Error("Reload should fail for invalid overrides")
	}
	if _, ok := h.Get().For("models.User"); !ok {
		t.Error("should keep old overrides")
	}
	if got := testutil.ToFloat64(m.OverrideReloadErrors); got != 1 {
		t.Errorf("reload errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.OverrideReloads); got != 0 {
		t.Errorf("reloads = %v, want 0", got)
	}
}

func TestHolder_WatchFile(t *testing.T) {
	path := writeOverrides(t, validOverrides)

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	if err := h.WatchFile(); err != nil {
		t.Fatalf("WatchFile error: %v", err)
	}

	newContent := `
classes:
  models.Watched:
    ignore: [x]
`
	if err := os.WriteFile(path, []byte(newContent), 0644); err != nil {
		t.Fatalf("write new overrides: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := h.Get().For("models.Watched"); ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("file watcher did not trigger reload")
}

func TestHolder_StopIdempotent(t *testing.T) {
	h, err := config.NewHolder(writeOverrides(t, validOverrides), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	if err := h.WatchFile(); err != nil {
		t.Fatalf("WatchFile error: %v", err)
	}
	h.Stop()
	h.Stop()
}
