package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/signworks/estimator/internal/estimate"
)

// CreatePricingProfile inserts a profile and returns its id.
func (s *Store) CreatePricingProfile(ctx context.Context, p estimate.PricingProfile) (int64, error) {
	id, err := s.insertID(ctx, s.q(`
		INSERT INTO pricing_profiles (name, sales_tax_rate, installation_rate, margin_multiplier)
		VALUES (?, ?, ?, ?)
	`), p.Name, p.SalesTaxRate, p.InstallationRate, p.MarginMultiplier)
	if err != nil {
		return 0, s.wrapWrite("insert pricing profile", err)
	}
	return id, nil
}

// UpdatePricingProfile rewrites a profile in place.
func (s *Store) UpdatePricingProfile(ctx context.Context, p estimate.PricingProfile) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE pricing_profiles
		SET name = ?, sales_tax_rate = ?, installation_rate = ?, margin_multiplier = ?,
		    last_modified = CURRENT_TIMESTAMP
		WHERE id = ?
	`), p.Name, p.SalesTaxRate, p.InstallationRate, p.MarginMultiplier, p.ID)
	if err != nil {
		return s.wrapWrite("update pricing profile", err)
	}
	return affected("update pricing profile", res, nil)
}

// DeletePricingProfile removes a profile; projects referencing it fall back
// to their own rates.
func (s *Store) DeletePricingProfile(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM pricing_profiles WHERE id = ?`), id)
	return affected("delete pricing profile", res, err)
}

// ListPricingProfiles returns all profiles ordered by name.
func (s *Store) ListPricingProfiles(ctx context.Context) ([]estimate.PricingProfile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, sales_tax_rate, installation_rate, margin_multiplier
		FROM pricing_profiles
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query pricing profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]estimate.PricingProfile, 0)
	for rows.Next() {
		var p estimate.PricingProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.SalesTaxRate, &p.InstallationRate, &p.MarginMultiplier); err != nil {
			return nil, fmt.Errorf("scan pricing profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pricing profiles: %w", err)
	}
	return profiles, nil
}

// PricingProfileByID fetches one profile, nil when absent.
func (s *Store) PricingProfileByID(ctx context.Context, id int64) (*estimate.PricingProfile, error) {
	var p estimate.PricingProfile
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT id, name, sales_tax_rate, installation_rate, margin_multiplier
		FROM pricing_profiles
		WHERE id = ?
	`), id).Scan(&p.ID, &p.Name, &p.SalesTaxRate, &p.InstallationRate, &p.MarginMultiplier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query pricing profile: %w", err)
	}
	return &p, nil
}
