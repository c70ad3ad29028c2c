// Package store provides the relational storage layer: the read
// repository consumed by the estimation engine and the CRUD write API used
// by external collaborators. One implementation serves both the SQLite and
// Postgres backends through a dialect value.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Dialect selects placeholder style and driver error mapping.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

var (
	// ErrDuplicate reports a unique-name constraint violation.
	ErrDuplicate = errors.New("duplicate name")
	// ErrNotFound reports a write aimed at a missing row.
	ErrNotFound = errors.New("not found")
)

// Store wraps a database handle for one backend.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New returns a Store over db using the given dialect.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB exposes the underlying handle (migrations, health checks).
func (s *Store) DB() *sql.DB {
	return s.db
}

// q rewrites ? placeholders to the dialect's style.
func (s *Store) q(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// insertID executes an INSERT and returns the new row id. Postgres has no
// LastInsertId, so the statement is extended with RETURNING there.
func (s *Store) insertID(ctx context.Context, query string, args ...any) (int64, error) {
	if s.dialect == DialectPostgres {
		var id int64
		if err := s.db.QueryRowContext(ctx, s.q(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// wrapWrite maps driver errors onto the store sentinels.
func (s *Store) wrapWrite(op string, err error) error {
	if err == nil {
		return nil
	}
	if s.isDuplicate(err) {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Store) isDuplicate(err error) bool {
	if s.dialect == DialectPostgres {
		var pqErr *pq.Error
		return errors.As(err, &pqErr) && pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// affected converts a write result into ErrNotFound when nothing matched.
func affected(op string, res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
