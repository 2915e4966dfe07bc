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

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"dirpx.dev/schema/apis"
	"dirpx.dev/schema/engine"
	ureflect "dirpx.dev/schema/utils/reflect"
)

var (
	// ErrNotRegistered is returned for values whose type has no table yet.
	ErrNotRegistered = errors.New("schema(sqlite): type not registered")
	// ErrNotFound is returned by Load when no row has the requested id.
	ErrNotFound = errors.New("schema(sqlite): row not found")
	// ErrNoColumns is returned for schemas without a stored property.
	ErrNoColumns = errors.New("schema(sqlite): no stored properties")
)

// Store persists struct values in tables derived from their schemas.
type Store struct {
	db  *sql.DB
	eng *engine.Engine

	mu     sync.RWMutex
	tables map[reflect.Type]apis.Schema
}

// Open opens the SQLite database at path. Schemas are discovered with eng.
func Open(path string, eng *engine.Engine) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)
	return NewFromDB(db, eng), nil
}

// NewFromDB creates a Store over an existing connection.
func NewFromDB(db *sql.DB, eng *engine.Engine) *Store {
	if eng == nil {
		eng = engine.New()
	}
	return &Store{
		db:     db,
		eng:    eng,
		tables: make(map[reflect.Type]apis.Schema),
	}
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Register discovers the schema of v's type and creates its table and
// indexes.
func (s *Store) Register(ctx context.Context, v any) (apis.Schema, error) {
	sc, err := s.eng.DiscoverValue(v)
	if err != nil {
		return apis.Schema{}, err
	}

	createSQL, err := BuildCreateTableSQL(sc)
	if err != nil {
		return apis.Schema{}, err
	}
	if _, err := s.db.ExecContext(ctx, createSQL); err != nil {
		return apis.Schema{}, fmt.Errorf("create table %s: %w", TableName(sc.ClassName), err)
	}
	for _, indexSQL := range BuildIndexSQL(sc) {
		if _, err := s.db.ExecContext(ctx, indexSQL); err != nil {
			return apis.Schema{}, fmt.Errorf("create index: %w", err)
		}
	}

	s.mu.Lock()
	s.tables[sc.Type] = sc
	s.mu.Unlock()
	return sc, nil
}

func (s *Store) schemaOf(v any) (apis.Schema, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s.mu.RLock()
	sc, ok := s.tables[t]
	s.mu.RUnlock()
	if !ok {
		return apis.Schema{}, fmt.Errorf("%w: %v", ErrNotRegistered, t)
	}
	return sc, nil
}

// Insert stores obj as a new row and returns its rowid.
func (s *Store) Insert(ctx context.Context, obj any) (int64, error) {
	sc, err := s.schemaOf(obj)
	if err != nil {
		return 0, err
	}
	props, cols := columns(sc)
	if len(props) == 0 {
		return 0, fmt.Errorf("insert: %w: %s", ErrNoColumns, sc.ClassName)
	}

	values := make([]any, len(props))
	placeholders := make([]string, len(props))
	for i, p := range props {
		v, err := ureflect.Get(obj, p.Binding)
		if err != nil {
			return 0, fmt.Errorf("read %s.%s: %w", sc.ClassName, p.Name, err)
		}
		if values[i], err = toDB(p, v); err != nil {
			return 0, err
		}
		placeholders[i] = "?"
	}

	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quote(TableName(sc.ClassName)),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)
	res, err := s.db.ExecContext(ctx, insertSQL, values...)
	if err != nil {
		return 0, fmt.Errorf("insert: %w", err)
	}
	return res.LastInsertId()
}

// Load reads row id into dst, which must be a non-nil pointer to a
// registered struct type.
func (s *Store) Load(ctx context.Context, id int64, dst any) error {
	sc, err := s.schemaOf(dst)
	if err != nil {
		return err
	}
	props, cols := columns(sc)
	if len(props) == 0 {
		return fmt.Errorf("load: %w: %s", ErrNoColumns, sc.ClassName)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE rowid = ?",
		strings.Join(cols, ", "),
		quote(TableName(sc.ClassName)),
	)
	raw := make([]any, len(props))
	ptrs := make([]any, len(props))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err := s.db.QueryRowContext(ctx, query, id).Scan(ptrs...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s %d", ErrNotFound, sc.ClassName, id)
		}
		return fmt.Errorf("select: %w", err)
	}

	for i, p := range props {
		ft, err := ureflect.FieldType(sc.Type, p.Binding)
		if err != nil {
			return fmt.Errorf("load %s.%s: %w", sc.ClassName, p.Name, err)
		}
		v, err := fromDB(p, raw[i], ft)
		if err != nil {
			return err
		}
		if err := ureflect.Set(dst, p.Binding, v.Interface()); err != nil {
			return fmt.Errorf("write %s.%s: %w", sc.ClassName, p.Name, err)
		}
	}
	return nil
}

// Count returns the number of rows stored for v's type.
func (s *Store) Count(ctx context.Context, v any) (int64, error) {
	sc, err := s.schemaOf(v)
	if err != nil {
		return 0, err
	}
	var n int64
	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quote(TableName(sc.ClassName))).Scan(&n)
	return n, err
}
