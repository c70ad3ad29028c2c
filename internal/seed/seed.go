// Package seed installs a small demo dataset for first runs.
package seed

import (
	"context"
	"fmt"

	"github.com/signworks/estimator/internal/estimate"
	"github.com/signworks/estimator/internal/store"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run seeds a demo project with one building, two panels, and a group
// containing both. It is a no-op when any project already exists.
func Run(ctx context.Context, st *store.Store) (Stats, error) {
	projects, err := st.ListProjects(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("check existing projects: %w", err)
	}
	if len(projects) > 0 {
		return Stats{}, nil
	}

	stats := Stats{}

	projectID, err := st.CreateProject(ctx, estimate.Project{
		Name:                "Demo Project",
		Description:         "Example seeded project",
		SalesTaxRate:        0.07,
		InstallationRate:    0.05,
		IncludeInstallation: true,
		IncludeSalesTax:     true,
	})
	if err != nil {
		return stats, fmt.Errorf("seed project: %w", err)
	}
	stats.Inserts++

	buildingID, err := st.CreateBuilding(ctx, estimate.Building{
		ProjectID:   projectID,
		Name:        "Main Building",
		Description: "Primary structure",
	})
	if err != nil {
		return stats, fmt.Errorf("seed building: %w", err)
	}
	stats.Inserts++

	panelA, err := st.CreateSignType(ctx, estimate.SignType{
		Description: "Aluminum panel",
		SignRecord: estimate.SignRecord{
			Name:      "Panel A",
			Material:  "Aluminum",
			UnitPrice: 150,
			Width:     24,
			Height:    18,
		},
	})
	if err != nil {
		return stats, fmt.Errorf("seed sign type: %w", err)
	}
	stats.Inserts++

	panelB, err := st.CreateSignType(ctx, estimate.SignType{
		Description: "PVC panel",
		SignRecord: estimate.SignRecord{
			Name:      "Panel B",
			Material:  "PVC",
			UnitPrice: 90,
			Width:     18,
			Height:    12,
		},
	})
	if err != nil {
		return stats, fmt.Errorf("seed sign type: %w", err)
	}
	stats.Inserts++

	if err := st.AssignSign(ctx, buildingID, panelA, 2, nil); err != nil {
		return stats, fmt.Errorf("seed sign assignment: %w", err)
	}
	stats.Inserts++
	if err := st.AssignSign(ctx, buildingID, panelB, 4, nil); err != nil {
		return stats, fmt.Errorf("seed sign assignment: %w", err)
	}
	stats.Inserts++

	groupID, err := st.CreateSignGroup(ctx, store.SignGroup{Name: "Basic Panels", Description: "Demo group"})
	if err != nil {
		return stats, fmt.Errorf("seed sign group: %w", err)
	}
	stats.Inserts++
	if err := st.AddGroupMember(ctx, groupID, panelA, 1); err != nil {
		return stats, fmt.Errorf("seed group member: %w", err)
	}
	stats.Inserts++
	if err := st.AddGroupMember(ctx, groupID, panelB, 1); err != nil {
		return stats, fmt.Errorf("seed group member: %w", err)
	}
	stats.Inserts++
	if err := st.AssignGroup(ctx, buildingID, groupID, 1); err != nil {
		return stats, fmt.Errorf("seed group assignment: %w", err)
	}
	stats.Inserts++

	return stats, nil
}
