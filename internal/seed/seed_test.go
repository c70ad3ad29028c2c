package seed

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/signworks/estimator/internal/estimate"
	"github.com/signworks/estimator/internal/migrations"
	"github.com/signworks/estimator/internal/store"
)

func newSeedTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := migrations.Up(db, "../../migrations/sqlite", "sqlite"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return store.New(db, store.DialectSQLite)
}

func TestRunSeedsDemoData(t *testing.T) {
	st := newSeedTestStore(t)
	ctx := context.Background()

	stats, err := Run(ctx, st)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if stats.Inserts == 0 {
		t.Fatal("expected seed inserts on an empty database")
	}

	projects, err := st.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects returned error: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "Demo Project" {
		t.Fatalf("unexpected projects after seed: %+v", projects)
	}

	signTypes, err := st.ListSignTypes(ctx)
	if err != nil {
		t.Fatalf("ListSignTypes returned error: %v", err)
	}
	if len(signTypes) != 2 {
		t.Fatalf("expected 2 seeded sign types, got %d", len(signTypes))
	}

	// The seeded data must produce a non-empty estimate end to end.
	eng := estimate.New(st)
	items, err := eng.ProjectEstimate(ctx, projects[0].ID)
	if err != nil {
		t.Fatalf("ProjectEstimate returned error: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected estimate lines from seeded data")
	}
}

func TestRunIsNoOpWhenProjectsExist(t *testing.T) {
	st := newSeedTestStore(t)
	ctx := context.Background()

	if _, err := st.CreateProject(ctx, estimate.Project{Name: "Existing"}); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	stats, err := Run(ctx, st)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if stats.Inserts != 0 {
		t.Fatalf("expected no inserts, got %d", stats.Inserts)
	}

	projects, err := st.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects returned error: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected the existing project only, got %+v", projects)
	}
}
