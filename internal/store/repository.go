package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/signworks/estimator/internal/estimate"
)

// The methods in this file implement estimate.Repository. Missing rows are
// reported as nil results, not errors, so estimate reads degrade to empty
// output the way the engine expects.

// ProjectByID fetches one project, nil when absent.
func (s *Store) ProjectByID(ctx context.Context, id int64) (*estimate.Project, error) {
	row := s.db.QueryRowContext(ctx, s.q(`
		SELECT id, name, COALESCE(description, ''), sales_tax_rate, installation_rate,
		       include_installation, include_sales_tax, pricing_profile_id
		FROM projects
		WHERE id = ?
	`), id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query project: %w", err)
	}
	return &p, nil
}

// BuildingsByProject returns the project's buildings in estimate order.
func (s *Store) BuildingsByProject(ctx context.Context, projectID int64) ([]estimate.Building, error) {
	return s.ListBuildings(ctx, projectID)
}

// BuildingSigns returns a building's direct sign assignments joined with
// their sign-type pricing attributes.
func (s *Store) BuildingSigns(ctx context.Context, buildingID int64) ([]estimate.BuildingSign, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT st.name, COALESCE(st.material, ''), st.unit_price, st.price_per_sq_ft,
		       st.material_multiplier, st.width, st.height,
		       st.per_sign_install_rate, st.install_time_hours, COALESCE(st.install_type, ''),
		       bs.quantity, bs.custom_price
		FROM building_signs bs
		JOIN sign_types st ON bs.sign_type_id = st.id
		WHERE bs.building_id = ?
		ORDER BY bs.id
	`), buildingID)
	if err != nil {
		return nil, fmt.Errorf("query building signs: %w", err)
	}
	defer rows.Close()

	signs := make([]estimate.BuildingSign, 0)
	for rows.Next() {
		var bs estimate.BuildingSign
		var customPrice sql.NullFloat64
		if err := rows.Scan(&bs.Name, &bs.Material, &bs.UnitPrice, &bs.PricePerSqFt,
			&bs.MaterialMultiplier, &bs.Width, &bs.Height,
			&bs.PerSignInstallRate, &bs.InstallTimeHours, &bs.InstallType,
			&bs.Quantity, &customPrice); err != nil {
			return nil, fmt.Errorf("scan building sign: %w", err)
		}
		if customPrice.Valid {
			bs.CustomPrice = &customPrice.Float64
		}
		signs = append(signs, bs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate building signs: %w", err)
	}
	return signs, nil
}

// BuildingGroups returns a building's group assignments.
func (s *Store) BuildingGroups(ctx context.Context, buildingID int64) ([]estimate.BuildingGroup, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT sg.id, sg.name, bsg.quantity
		FROM building_sign_groups bsg
		JOIN sign_groups sg ON bsg.group_id = sg.id
		WHERE bsg.building_id = ?
		ORDER BY bsg.id
	`), buildingID)
	if err != nil {
		return nil, fmt.Errorf("query building groups: %w", err)
	}
	defer rows.Close()

	groups := make([]estimate.BuildingGroup, 0)
	for rows.Next() {
		var g estimate.BuildingGroup
		if err := rows.Scan(&g.GroupID, &g.Name, &g.Quantity); err != nil {
			return nil, fmt.Errorf("scan building group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate building groups: %w", err)
	}
	return groups, nil
}

// GroupMembers returns a group's recipe joined with sign-type pricing
// attributes.
func (s *Store) GroupMembers(ctx context.Context, groupID int64) ([]estimate.GroupMember, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT st.name, COALESCE(st.material, ''), st.unit_price, st.price_per_sq_ft,
		       st.material_multiplier, st.width, st.height,
		       st.per_sign_install_rate, st.install_time_hours, COALESCE(st.install_type, ''),
		       sgm.quantity
		FROM sign_group_members sgm
		JOIN sign_types st ON sgm.sign_type_id = st.id
		WHERE sgm.group_id = ?
		ORDER BY sgm.id
	`), groupID)
	if err != nil {
		return nil, fmt.Errorf("query group members: %w", err)
	}
	defer rows.Close()

	members := make([]estimate.GroupMember, 0)
	for rows.Next() {
		var m estimate.GroupMember
		if err := rows.Scan(&m.Name, &m.Material, &m.UnitPrice, &m.PricePerSqFt,
			&m.MaterialMultiplier, &m.Width, &m.Height,
			&m.PerSignInstallRate, &m.InstallTimeHours, &m.InstallType,
			&m.Quantity); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group members: %w", err)
	}
	return members, nil
}

// MaterialRate looks up a material's rate by case-insensitive name.
func (s *Store) MaterialRate(ctx context.Context, material string) (float64, bool, error) {
	var rate float64
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT price_per_sq_ft FROM material_pricing WHERE LOWER(material_name) = LOWER(?)
	`), material).Scan(&rate)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query material rate: %w", err)
	}
	return rate, true, nil
}
