package store

import (
	"context"
	"fmt"
)

// SignGroup is a fixed-recipe bundle of sign types.
type SignGroup struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GroupMemberRow is one recipe entry of a group, for the CRUD surface.
type GroupMemberRow struct {
	SignTypeID int64   `json:"sign_type_id"`
	SignName   string  `json:"sign_name"`
	Quantity   float64 `json:"quantity"`
}

// CreateSignGroup inserts a group. Names are globally unique.
func (s *Store) CreateSignGroup(ctx context.Context, g SignGroup) (int64, error) {
	id, err := s.insertID(ctx, s.q(`
		INSERT INTO sign_groups (name, description) VALUES (?, ?)
	`), g.Name, g.Description)
	if err != nil {
		return 0, s.wrapWrite("insert sign group", err)
	}
	return id, nil
}

// UpdateSignGroup renames or redescribes a group.
func (s *Store) UpdateSignGroup(ctx context.Context, g SignGroup) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE sign_groups
		SET name = ?, description = ?, last_modified = CURRENT_TIMESTAMP
		WHERE id = ?
	`), g.Name, g.Description, g.ID)
	if err != nil {
		return s.wrapWrite("update sign group", err)
	}
	return affected("update sign group", res, nil)
}

// DeleteSignGroup removes a group; memberships and building assignments
// cascade.
func (s *Store) DeleteSignGroup(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM sign_groups WHERE id = ?`), id)
	return affected("delete sign group", res, err)
}

// ListSignGroups returns all groups ordered by name.
func (s *Store) ListSignGroups(ctx context.Context) ([]SignGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, '') FROM sign_groups ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query sign groups: %w", err)
	}
	defer rows.Close()

	groups := make([]SignGroup, 0)
	for rows.Next() {
		var g SignGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Description); err != nil {
			return nil, fmt.Errorf("scan sign group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sign groups: %w", err)
	}
	return groups, nil
}

// AddGroupMember appends a sign type to a group recipe.
func (s *Store) AddGroupMember(ctx context.Context, groupID, signTypeID int64, quantity float64) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO sign_group_members (group_id, sign_type_id, quantity)
		VALUES (?, ?, ?)
	`), groupID, signTypeID, quantity)
	return s.wrapWrite("add group member", err)
}

// RemoveGroupMember deletes a sign type from a group recipe.
func (s *Store) RemoveGroupMember(ctx context.Context, groupID, signTypeID int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		DELETE FROM sign_group_members WHERE group_id = ? AND sign_type_id = ?
	`), groupID, signTypeID)
	return affected("remove group member", res, err)
}

// ListGroupMembers returns a group's recipe with member names.
func (s *Store) ListGroupMembers(ctx context.Context, groupID int64) ([]GroupMemberRow, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT sgm.sign_type_id, st.name, sgm.quantity
		FROM sign_group_members sgm
		JOIN sign_types st ON sgm.sign_type_id = st.id
		WHERE sgm.group_id = ?
		ORDER BY sgm.id
	`), groupID)
	if err != nil {
		return nil, fmt.Errorf("query group members: %w", err)
	}
	defer rows.Close()

	members := make([]GroupMemberRow, 0)
	for rows.Next() {
		var m GroupMemberRow
		if err := rows.Scan(&m.SignTypeID, &m.SignName, &m.Quantity); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group members: %w", err)
	}
	return members, nil
}
