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
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"dirpx.dev/schema/apis"
)

// document is the YAML layout of a schema dump.
type document struct {
	Schemas []apis.Schema `yaml:"schemas"`
}

// DumpYAML writes schemas to w as one YAML document.
func DumpYAML(w io.Writer, schemas ...apis.Schema) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Schemas: schemas}); err != nil {
		return fmt.Errorf("encode schemas: %w", err)
	}
	return enc.Close()
}

// MarshalYAML returns the YAML dump of schemas.
func MarshalYAML(schemas ...apis.Schema) ([]byte, error) {
	var buf bytes.Buffer
	if err := DumpYAML(&buf, schemas...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
