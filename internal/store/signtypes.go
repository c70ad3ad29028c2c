package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/signworks/estimator/internal/estimate"
)

const signTypeColumns = `id, name, COALESCE(description, ''), COALESCE(material, ''), unit_price,
	price_per_sq_ft, material_multiplier, width, height,
	per_sign_install_rate, install_time_hours, COALESCE(install_type, '')`

// CreateSignType inserts a catalog entry. Names are globally unique.
func (s *Store) CreateSignType(ctx context.Context, st estimate.SignType) (int64, error) {
	id, err := s.insertID(ctx, s.q(`
		INSERT INTO sign_types (name, description, material, unit_price, price_per_sq_ft,
			material_multiplier, width, height, per_sign_install_rate, install_time_hours, install_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), st.Name, st.Description, st.Material, st.UnitPrice, st.PricePerSqFt,
		st.MaterialMultiplier, st.Width, st.Height, st.PerSignInstallRate, st.InstallTimeHours, st.InstallType)
	if err != nil {
		return 0, s.wrapWrite("insert sign type", err)
	}
	return id, nil
}

// UpdateSignType rewrites a catalog entry in place.
func (s *Store) UpdateSignType(ctx context.Context, st estimate.SignType) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE sign_types
		SET name = ?, description = ?, material = ?, unit_price = ?, price_per_sq_ft = ?,
		    material_multiplier = ?, width = ?, height = ?, per_sign_install_rate = ?,
		    install_time_hours = ?, install_type = ?, last_modified = CURRENT_TIMESTAMP
		WHERE id = ?
	`), st.Name, st.Description, st.Material, st.UnitPrice, st.PricePerSqFt,
		st.MaterialMultiplier, st.Width, st.Height, st.PerSignInstallRate, st.InstallTimeHours, st.InstallType, st.ID)
	if err != nil {
		return s.wrapWrite("update sign type", err)
	}
	return affected("update sign type", res, nil)
}

// DeleteSignType removes a catalog entry; group memberships and building
// assignments cascade.
func (s *Store) DeleteSignType(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM sign_types WHERE id = ?`), id)
	return affected("delete sign type", res, err)
}

// ListSignTypes returns the catalog ordered by name.
func (s *Store) ListSignTypes(ctx context.Context) ([]estimate.SignType, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+signTypeColumns+` FROM sign_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query sign types: %w", err)
	}
	defer rows.Close()

	signTypes := make([]estimate.SignType, 0)
	for rows.Next() {
		st, err := scanSignType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sign type: %w", err)
		}
		signTypes = append(signTypes, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sign types: %w", err)
	}
	return signTypes, nil
}

// SignTypeByID fetches one catalog entry, nil when absent.
func (s *Store) SignTypeByID(ctx context.Context, id int64) (*estimate.SignType, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+signTypeColumns+` FROM sign_types WHERE id = ?`), id)
	st, err := scanSignType(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query sign type: %w", err)
	}
	return &st, nil
}

func scanSignType(r rowScanner) (estimate.SignType, error) {
	var st estimate.SignType
	err := r.Scan(&st.ID, &st.Name, &st.Description, &st.Material, &st.UnitPrice,
		&st.PricePerSqFt, &st.MaterialMultiplier, &st.Width, &st.Height,
		&st.PerSignInstallRate, &st.InstallTimeHours, &st.InstallType)
	return st, err
}
