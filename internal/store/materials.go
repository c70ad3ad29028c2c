package store

import (
	"context"
	"fmt"
)

// Material is one row of the central material rate table.
type Material struct {
	ID           int64   `json:"id"`
	Name         string  `json:"material_name"`
	PricePerSqFt float64 `json:"price_per_sq_ft"`
}

// CreateMaterial inserts a material rate. Names are unique,
// case-insensitive.
func (s *Store) CreateMaterial(ctx context.Context, m Material) (int64, error) {
	id, err := s.insertID(ctx, s.q(`
		INSERT INTO material_pricing (material_name, price_per_sq_ft) VALUES (?, ?)
	`), m.Name, m.PricePerSqFt)
	if err != nil {
		return 0, s.wrapWrite("insert material", err)
	}
	return id, nil
}

// UpdateMaterial rewrites a material rate.
func (s *Store) UpdateMaterial(ctx context.Context, m Material) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE material_pricing
		SET material_name = ?, price_per_sq_ft = ?, last_updated = CURRENT_TIMESTAMP
		WHERE id = ?
	`), m.Name, m.PricePerSqFt, m.ID)
	if err != nil {
		return s.wrapWrite("update material", err)
	}
	return affected("update material", res, nil)
}

// DeleteMaterial removes a material rate. Sign prices already derived from
// it are left as-is; the synchronizer is the only propagation mechanism.
func (s *Store) DeleteMaterial(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM material_pricing WHERE id = ?`), id)
	return affected("delete material", res, err)
}

// ListMaterials returns the rate table ordered by name.
func (s *Store) ListMaterials(ctx context.Context) ([]Material, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, material_name, price_per_sq_ft FROM material_pricing ORDER BY material_name
	`)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	materials := make([]Material, 0)
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.PricePerSqFt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}
	return materials, nil
}

// RecalcPricesFromMaterials propagates material rates into stored sign
// prices: every sign type with both dimensions set and a case-insensitive
// material match gets price_per_sq_ft set to the matched rate and
// unit_price recomputed as width × height × rate. The bulk update runs in
// one transaction so readers never observe a partial sync. Returns the
// number of rows updated.
func (s *Store) RecalcPricesFromMaterials(ctx context.Context) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin recalc transaction: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE sign_types
		SET price_per_sq_ft = (
			SELECT mp.price_per_sq_ft FROM material_pricing mp
			WHERE LOWER(mp.material_name) = LOWER(sign_types.material)
		),
		unit_price = width * height * (
			SELECT mp.price_per_sq_ft FROM material_pricing mp
			WHERE LOWER(mp.material_name) = LOWER(sign_types.material)
		),
		last_modified = CURRENT_TIMESTAMP
		WHERE width > 0 AND height > 0
		  AND material IS NOT NULL AND material <> ''
		  AND EXISTS (
			SELECT 1 FROM material_pricing mp
			WHERE LOWER(mp.material_name) = LOWER(sign_types.material)
		  )
	`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("recalc sign prices: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("recalc rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit recalc transaction: %w", err)
	}
	return count, nil
}
