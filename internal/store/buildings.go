package store

import (
	"context"
	"fmt"

	"github.com/signworks/estimator/internal/estimate"
)

// CreateBuilding inserts a building into a project. Building names are
// unique per project, case-insensitive.
func (s *Store) CreateBuilding(ctx context.Context, b estimate.Building) (int64, error) {
	id, err := s.insertID(ctx, s.q(`
		INSERT INTO buildings (project_id, name, description)
		VALUES (?, ?, ?)
	`), b.ProjectID, b.Name, b.Description)
	if err != nil {
		return 0, s.wrapWrite("insert building", err)
	}
	return id, nil
}

// UpdateBuilding renames or redescribes a building.
func (s *Store) UpdateBuilding(ctx context.Context, b estimate.Building) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE buildings
		SET name = ?, description = ?, last_modified = CURRENT_TIMESTAMP
		WHERE id = ?
	`), b.Name, b.Description, b.ID)
	if err != nil {
		return s.wrapWrite("update building", err)
	}
	return affected("update building", res, nil)
}

// DeleteBuilding removes a building; its sign and group assignments cascade.
func (s *Store) DeleteBuilding(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM buildings WHERE id = ?`), id)
	return affected("delete building", res, err)
}

// AssignSign attaches a sign type to a building with a quantity and an
// optional custom price that supersedes computed pricing on the simple
// estimate path.
func (s *Store) AssignSign(ctx context.Context, buildingID, signTypeID int64, quantity float64, customPrice *float64) error {
	var price any
	if customPrice != nil {
		price = *customPrice
	}
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO building_signs (building_id, sign_type_id, quantity, custom_price)
		VALUES (?, ?, ?, ?)
	`), buildingID, signTypeID, quantity, price)
	return s.wrapWrite("assign sign", err)
}

// UnassignSign removes all assignments of a sign type from a building.
func (s *Store) UnassignSign(ctx context.Context, buildingID, signTypeID int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		DELETE FROM building_signs WHERE building_id = ? AND sign_type_id = ?
	`), buildingID, signTypeID)
	return affected("unassign sign", res, err)
}

// AssignGroup attaches a sign group to a building at a multiplier quantity.
func (s *Store) AssignGroup(ctx context.Context, buildingID, groupID int64, quantity float64) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO building_sign_groups (building_id, group_id, quantity)
		VALUES (?, ?, ?)
	`), buildingID, groupID, quantity)
	return s.wrapWrite("assign group", err)
}

// UnassignGroup removes all assignments of a group from a building.
func (s *Store) UnassignGroup(ctx context.Context, buildingID, groupID int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		DELETE FROM building_sign_groups WHERE building_id = ? AND group_id = ?
	`), buildingID, groupID)
	return affected("unassign group", res, err)
}

// ListBuildings returns a project's buildings in insertion order, the order
// estimates iterate them in.
func (s *Store) ListBuildings(ctx context.Context, projectID int64) ([]estimate.Building, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, project_id, name, COALESCE(description, '')
		FROM buildings
		WHERE project_id = ?
		ORDER BY id
	`), projectID)
	if err != nil {
		return nil, fmt.Errorf("query buildings: %w", err)
	}
	defer rows.Close()

	buildings := make([]estimate.Building, 0)
	for rows.Next() {
		var b estimate.Building
		if err := rows.Scan(&b.ID, &b.ProjectID, &b.Name, &b.Description); err != nil {
			return nil, fmt.Errorf("scan building: %w", err)
		}
		buildings = append(buildings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate buildings: %w", err)
	}
	return buildings, nil
}
