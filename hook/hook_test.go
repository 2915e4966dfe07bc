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

package hook_test

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/schema/capability"
	"dirpx.dev/schema/hook"
)

func TestInstall_Once(t *testing.T) {
	var wg sync.WaitGroup
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hook.Install()
			assert.True(t, hook.Installed())
		}()
	}
	wg.Wait()

	hook.Install()
	assert.Equal(t, 1, hook.Installs())
}

func TestEnumerate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []any
		ok   bool
	}{
		{name: "list", in: capability.NewList(1, 2, 3), want: []any{1, 2, 3}, ok: true},
		{name: "list pointer", in: &capability.List[string]{}, want: nil, ok: true},
		{name: "nil list pointer", in: (*capability.List[int])(nil), want: nil, ok: true},
		{name: "slice", in: []string{"a", "b"}, want: []any{"a", "b"}, ok: true},
		{name: "array", in: [2]int{4, 5}, want: []any{4, 5}, ok: true},
		{name: "bytes", in: []byte("ab")},
		{name: "string", in: "ab"},
		{name: "nil", in: nil},
		{name: "map", in: map[string]int{"a": 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seq, ok := hook.Enumerate(tc.in)
			require.Equal(t, tc.ok, ok)
			if !ok {
				assert.Nil(t, seq)
				return
			}
			assert.Equal(t, tc.want, slices.Collect(seq))
		})
	}
}

func TestEnumerate_StopsEarly(t *testing.T) {
	seq, ok := hook.Enumerate([]int{1, 2, 3})
	require.True(t, ok)
	var got []any
	for v := range seq {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []any{1, 2}, got)
}
