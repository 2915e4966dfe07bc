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

package reflect_test

import (
	"reflect"
	"testing"

	uref "dirpx.dev/schema/utils/reflect"
)

type Account struct{}

func (Account) ClassName() string { return "billing.Account" }

type Invoice struct{}

func (*Invoice) ClassName() string { return "billing.Invoice" }

func TestClassName(t *testing.T) {
	conf := cfg()

	cases := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"derived", reflect.TypeOf(Post{}), "reflect_test.Post"},
		{"derived through pointer", reflect.TypeOf(&Comment{}), "reflect_test.Comment"},
		{"generic params stripped", reflect.TypeOf(Page[int]{}), "reflect_test.Page"},
		{"model value receiver", reflect.TypeOf(Account{}), "billing.Account"},
		{"model pointer receiver", reflect.TypeOf(Invoice{}), "billing.Invoice"},
		{"model in slice", reflect.TypeOf([]*Invoice{}), "billing.Invoice"},
		{"builtin", reflect.TypeOf(0), "int"},
		{"anonymous", reflect.TypeOf(struct{}{}), ""},
		{"nil", nil, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := uref.ClassName(tc.typ, conf); got != tc.want {
				t.Fatalf("ClassName(%v) = %q, want %q", tc.typ, got, tc.want)
			}
			// Memoized path returns the same answer.
			if got := uref.ClassName(tc.typ, conf); got != tc.want {
				t.Fatalf("ClassName(%v) second call = %q, want %q", tc.typ, got, tc.want)
			}
		})
	}
}
