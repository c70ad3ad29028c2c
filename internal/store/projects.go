package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/signworks/estimator/internal/estimate"
)

// CreateProject inserts a project and returns its id.
func (s *Store) CreateProject(ctx context.Context, p estimate.Project) (int64, error) {
	id, err := s.insertID(ctx, s.q(`
		INSERT INTO projects (name, description, sales_tax_rate, installation_rate, include_installation, include_sales_tax, pricing_profile_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), p.Name, p.Description, p.SalesTaxRate, p.InstallationRate, p.IncludeInstallation, p.IncludeSalesTax, nullableID(p.PricingProfileID))
	if err != nil {
		return 0, s.wrapWrite("insert project", err)
	}
	return id, nil
}

// UpdateProject rewrites a project row in place.
func (s *Store) UpdateProject(ctx context.Context, p estimate.Project) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE projects
		SET name = ?, description = ?, sales_tax_rate = ?, installation_rate = ?,
		    include_installation = ?, include_sales_tax = ?, pricing_profile_id = ?,
		    last_modified = CURRENT_TIMESTAMP
		WHERE id = ?
	`), p.Name, p.Description, p.SalesTaxRate, p.InstallationRate, p.IncludeInstallation, p.IncludeSalesTax, nullableID(p.PricingProfileID), p.ID)
	if err != nil {
		return s.wrapWrite("update project", err)
	}
	return affected("update project", res, nil)
}

// DeleteProject removes a project; buildings and their assignments cascade.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM projects WHERE id = ?`), id)
	return affected("delete project", res, err)
}

// ListProjects returns all projects ordered by name.
func (s *Store) ListProjects(ctx context.Context) ([]estimate.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), sales_tax_rate, installation_rate,
		       include_installation, include_sales_tax, pricing_profile_id
		FROM projects
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]estimate.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(r rowScanner) (estimate.Project, error) {
	var p estimate.Project
	var profileID sql.NullInt64
	if err := r.Scan(&p.ID, &p.Name, &p.Description, &p.SalesTaxRate, &p.InstallationRate,
		&p.IncludeInstallation, &p.IncludeSalesTax, &profileID); err != nil {
		return estimate.Project{}, err
	}
	if profileID.Valid {
		p.PricingProfileID = &profileID.Int64
	}
	return p, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
