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
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Overrides is the external per-class ignore/index/column configuration.
//
// File format:
//
//	classes:
//	  models.User:
//	    ignore:  [secret]
//	    index:   [email]
//	    columns: { name: user_name }
//
// Overrides are merged with what the host type declares itself; they never
// remove a name the host declares.
type Overrides struct {
	Classes map[string]ClassOverrides `yaml:"classes"`
}

// ClassOverrides configures one object class.
type ClassOverrides struct {
	Ignore  []string          `yaml:"ignore,omitempty"`
	Index   []string          `yaml:"index,omitempty"`
	Columns map[string]string `yaml:"columns,omitempty"`
}

// For returns the overrides of class. A nil receiver has none.
func (o *Overrides) For(class string) (ClassOverrides, bool) {
	if o == nil {
		return ClassOverrides{}, false
	}
	c, ok := o.Classes[class]
	return c, ok
}

// LoadOverrides reads overrides from a YAML file.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return ParseOverrides(data)
}

// ParseOverrides parses overrides from YAML bytes and validates them.
func ParseOverrides(data []byte) (*Overrides, error) {
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Validate reports every malformed entry at once.
func (o *Overrides) Validate() error {
	var errs []string

	classes := make([]string, 0, len(o.Classes))
	for name := range o.Classes {
		classes = append(classes, name)
	}
	slices.Sort(classes)

	for _, class := range classes {
		if strings.TrimSpace(class) == "" {
			errs = append(errs, "class name is required")
			continue
		}
		c := o.Classes[class]
		for _, n := range c.Ignore {
			if n == "" {
				errs = append(errs, fmt.Sprintf("%s: empty name in ignore", class))
			}
		}
		for _, n := range c.Index {
			if n == "" {
				errs = append(errs, fmt.Sprintf("%s: empty name in index", class))
			}
		}
		for prop, col := range c.Columns {
			if prop == "" || col == "" {
				errs = append(errs, fmt.Sprintf("%s: column mapping %q -> %q is incomplete", class, prop, col))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
