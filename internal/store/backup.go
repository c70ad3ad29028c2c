package store

import (
	"context"
	"fmt"
	"strings"
)

// Backup writes a consistent snapshot of the database to path. Only the
// SQLite backend supports this; Postgres deployments are expected to use
// pg_dump.
func (s *Store) Backup(ctx context.Context, path string) error {
	if s.dialect != DialectSQLite {
		return fmt.Errorf("backup: not supported for %s backend", s.dialect)
	}
	// VACUUM INTO does not accept bound parameters.
	escaped := strings.ReplaceAll(path, "'", "''")
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", escaped)); err != nil {
		return fmt.Errorf("vacuum into backup: %w", err)
	}
	return nil
}
