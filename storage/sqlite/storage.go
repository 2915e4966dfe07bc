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

// Package sqlite stores values in SQLite tables derived from their
// discovered schemas.
//
// One table per class, one column per property, in schema order. Rows are
// keyed by SQLite's implicit rowid. Array properties are stored as JSON text.
// Object links have no column.
package sqlite

import (
	"fmt"
	"strings"

	"dirpx.dev/schema/apis"
)

// reservedPrefix starts the names of SQLite's internal tables.
const reservedPrefix = "sqlite_"

// TableName derives the table name of a class: "models.User" -> "models_user".
// Names SQLite reserves for itself ("sqlite_...") get a "t_" prefix.
func TableName(class string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_")
	name := strings.ToLower(r.Replace(class))
	if strings.HasPrefix(name, reservedPrefix) {
		name = "t_" + name
	}
	return name
}

// Stored reports whether p has a column.
func Stored(p apis.Property) bool {
	return p.Type != apis.PropertyTypeObject
}

// ColumnType returns the SQLite column type of p.
func ColumnType(p apis.Property) string {
	if p.Array {
		return "TEXT"
	}
	switch p.Type {
	case apis.PropertyTypeInt:
		return "INTEGER"
	case apis.PropertyTypeBool:
		return "BOOLEAN"
	case apis.PropertyTypeFloat, apis.PropertyTypeDouble:
		return "REAL"
	case apis.PropertyTypeData:
		return "BLOB"
	case apis.PropertyTypeDate:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

func buildColumnDef(p apis.Property) string {
	col := fmt.Sprintf("%s %s", quote(p.Column()), ColumnType(p))
	if !p.Optional && !p.Array {
		col += " NOT NULL"
	}
	return col
}

// BuildCreateTableSQL generates a CREATE TABLE statement for s. A schema
// without stored properties has no table and yields ErrNoColumns.
func BuildCreateTableSQL(s apis.Schema) (string, error) {
	var columns []string
	for _, p := range s.Properties {
		if Stored(p) {
			columns = append(columns, buildColumnDef(p))
		}
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoColumns, s.ClassName)
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		quote(TableName(s.ClassName)),
		strings.Join(columns, ",\n  "),
	), nil
}

// BuildIndexSQL generates CREATE INDEX statements for indexed properties.
func BuildIndexSQL(s apis.Schema) []string {
	table := TableName(s.ClassName)
	var indexes []string
	for _, p := range s.Properties {
		if !p.Indexed || !Stored(p) {
			continue
		}
		indexes = append(indexes, fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %s ON %s(%s)",
			quote("idx_"+table+"_"+p.Column()), quote(table), quote(p.Column()),
		))
	}
	return indexes
}

// columns returns the stored properties of s and their quoted column names.
func columns(s apis.Schema) ([]apis.Property, []string) {
	var props []apis.Property
	var names []string
	for _, p := range s.Properties {
		if Stored(p) {
			props = append(props, p)
			names = append(names, quote(p.Column()))
		}
	}
	return props, names
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
