package estimate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository for engine tests.
type fakeRepo struct {
	project   *Project
	profiles  map[int64]*PricingProfile
	buildings []Building
	signs     map[int64][]BuildingSign
	groups    map[int64][]BuildingGroup
	members   map[int64][]GroupMember
	signTypes map[int64]*SignType
	materials map[string]float64
}

func (f *fakeRepo) ProjectByID(_ context.Context, id int64) (*Project, error) {
	if f.project == nil || f.project.ID != id {
		return nil, nil
	}
	return f.project, nil
}

func (f *fakeRepo) PricingProfileByID(_ context.Context, id int64) (*PricingProfile, error) {
	return f.profiles[id], nil
}

func (f *fakeRepo) BuildingsByProject(_ context.Context, projectID int64) ([]Building, error) {
	var out []Building
	for _, b := range f.buildings {
		if b.ProjectID == projectID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) BuildingSigns(_ context.Context, buildingID int64) ([]BuildingSign, error) {
	return f.signs[buildingID], nil
}

func (f *fakeRepo) BuildingGroups(_ context.Context, buildingID int64) ([]BuildingGroup, error) {
	return f.groups[buildingID], nil
}

func (f *fakeRepo) GroupMembers(_ context.Context, groupID int64) ([]GroupMember, error) {
	return f.members[groupID], nil
}

func (f *fakeRepo) SignTypeByID(_ context.Context, id int64) (*SignType, error) {
	return f.signTypes[id], nil
}

func (f *fakeRepo) MaterialRate(_ context.Context, material string) (float64, bool, error) {
	rate, ok := f.materials[strings.ToLower(material)]
	return rate, ok, nil
}

// demoRepo builds the reference project: one building carrying SignA
// (unit 100, qty 3) and group Group1 (SignB unit 50 × 2 per instance,
// assigned qty 4). Subtotal 700, installation 10%, tax 5%.
func demoRepo() *fakeRepo {
	return &fakeRepo{
		project: &Project{
			ID:                  1,
			Name:                "Demo",
			SalesTaxRate:        0.05,
			InstallationRate:    0.10,
			IncludeInstallation: true,
			IncludeSalesTax:     true,
		},
		buildings: []Building{{ID: 10, ProjectID: 1, Name: "Main"}},
		signs: map[int64][]BuildingSign{
			10: {{
				SignRecord: SignRecord{Name: "SignA", Material: "Aluminum", UnitPrice: 100, Width: 10, Height: 10},
				Quantity:   3,
			}},
		},
		groups: map[int64][]BuildingGroup{
			10: {{GroupID: 20, Name: "Group1", Quantity: 4}},
		},
		members: map[int64][]GroupMember{
			20: {{
				SignRecord: SignRecord{Name: "SignB", Material: "PVC", UnitPrice: 50, Width: 2, Height: 1},
				Quantity:   2,
			}},
		},
	}
}

func TestProjectEstimate_FullScenario(t *testing.T) {
	eng := New(demoRepo())

	items, err := eng.ProjectEstimate(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 4)

	sign := items[0]
	require.Equal(t, LineSign, sign.Kind)
	require.Equal(t, "Main", sign.Building)
	require.Equal(t, "SignA", sign.Item)
	require.Equal(t, "10 x 10", sign.Dimensions)
	require.Equal(t, 300.0, sign.Total)

	group := items[1]
	require.Equal(t, LineGroup, group.Kind)
	require.Equal(t, "Group: Group1", group.Item)
	require.Equal(t, "Various", group.Material)
	require.Equal(t, 100.0, group.UnitPrice) // per-instance cost
	require.Equal(t, 400.0, group.Total)

	install := items[2]
	require.Equal(t, LineInstallation, install.Kind)
	require.Equal(t, AllBuildings, install.Building)
	require.Equal(t, "Installation", install.Item)
	require.InDelta(t, 70.0, install.Total, 1e-9)

	tax := items[3]
	require.Equal(t, LineTax, tax.Kind)
	require.Equal(t, "Sales Tax", tax.Item)
	// Tax compounds on subtotal plus installation: (700+70) × 0.05.
	require.InDelta(t, 38.50, tax.Total, 1e-9)

	grand := 0.0
	for _, it := range items {
		grand += it.Total
	}
	require.InDelta(t, 808.50, grand, 1e-9)
}

func TestProjectEstimate_CustomPriceOverridesUnitPrice(t *testing.T) {
	repo := demoRepo()
	custom := 20.0
	repo.signs[10][0].CustomPrice = &custom
	eng := New(repo)

	items, err := eng.ProjectEstimate(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 20.0, items[0].UnitPrice)
	require.Equal(t, 60.0, items[0].Total)
}

func TestProjectEstimate_ZeroCustomPriceIgnored(t *testing.T) {
	repo := demoRepo()
	zero := 0.0
	repo.signs[10][0].CustomPrice = &zero
	eng := New(repo)

	items, err := eng.ProjectEstimate(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 100.0, items[0].UnitPrice)
}

func TestProjectEstimate_AdjustmentsOmittedWhenDisabled(t *testing.T) {
	repo := demoRepo()
	repo.project.IncludeInstallation = false
	repo.project.IncludeSalesTax = false
	eng := New(repo)

	items, err := eng.ProjectEstimate(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		require.NotEqual(t, AllBuildings, it.Building)
	}
}

func TestProjectEstimate_ProfileOverridesRatesAndMargin(t *testing.T) {
	repo := demoRepo()
	profileID := int64(5)
	repo.project.PricingProfileID = &profileID
	repo.profiles = map[int64]*PricingProfile{
		5: {ID: 5, Name: "Premium", SalesTaxRate: 0.08, InstallationRate: 0.20, MarginMultiplier: 1.5},
	}
	eng := New(repo)

	items, err := eng.ProjectEstimate(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 4)

	// 100 × 1.5 = 150, 50 × 1.5 × 2 = 150 per group instance.
	require.Equal(t, 150.0, items[0].UnitPrice)
	require.Equal(t, 450.0, items[0].Total)
	require.Equal(t, 600.0, items[1].Total)
	require.InDelta(t, 1050*0.20, items[2].Total, 1e-9)
	require.InDelta(t, 1050*1.20*0.08, items[3].Total, 1e-9)
}

func TestProjectEstimate_ProfileMarginLeavesCustomPriceAlone(t *testing.T) {
	repo := demoRepo()
	profileID := int64(5)
	repo.project.PricingProfileID = &profileID
	repo.profiles = map[int64]*PricingProfile{
		5: {ID: 5, SalesTaxRate: 0.05, InstallationRate: 0.10, MarginMultiplier: 2},
	}
	custom := 20.0
	repo.signs[10][0].CustomPrice = &custom
	eng := New(repo)

	items, err := eng.ProjectEstimate(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 20.0, items[0].UnitPrice)
}

func TestProjectEstimate_DanglingProfileFallsBackToProjectRates(t *testing.T) {
	repo := demoRepo()
	profileID := int64(99)
	repo.project.PricingProfileID = &profileID
	eng := New(repo)

	items, err := eng.ProjectEstimate(context.Background(), 1)
	require.NoError(t, err)
	require.InDelta(t, 70.0, items[2].Total, 1e-9)
}

func TestProjectEstimate_UnknownProject(t *testing.T) {
	eng := New(demoRepo())

	items, err := eng.ProjectEstimate(context.Background(), 404)
	require.NoError(t, err)
	require.Nil(t, items)
}

func TestCustomEstimate_TaxDoesNotCompound(t *testing.T) {
	eng := New(demoRepo())

	items, meta, err := eng.CustomEstimate(context.Background(), CustomRequest{
		ProjectID:   1,
		PriceMode:   PriceModeUnit,
		InstallMode: InstallModePercent,
		Install:     InstallParams{Percent: 10},
	})
	require.NoError(t, err)
	require.Len(t, items, 4)

	require.Equal(t, 700.0, meta.GrandSubtotal)
	require.InDelta(t, 70.0, meta.InstallCost, 1e-9)
	// Taxable base is signs + groups + installation, same as the simple
	// path when only one tax line exists.
	require.InDelta(t, 38.50, items[3].Total, 1e-9)
	require.Equal(t, 0.05, meta.ProjectSalesTaxRate)
	require.True(t, meta.IncludeSalesTax)
	require.Equal(t, 11.0, meta.TotalSignCount) // 3 direct + 2×4 via group
}

func TestCustomEstimate_BuildingSubset(t *testing.T) {
	repo := demoRepo()
	repo.project.IncludeSalesTax = false
	repo.buildings = append(repo.buildings, Building{ID: 11, ProjectID: 1, Name: "Annex"})
	repo.signs[11] = []BuildingSign{{
		SignRecord: SignRecord{Name: "SignC", UnitPrice: 25},
		Quantity:   2,
	}}
	eng := New(repo)

	items, meta, err := eng.CustomEstimate(context.Background(), CustomRequest{
		ProjectID:   1,
		BuildingIDs: []int64{11},
		PriceMode:   PriceModeUnit,
		InstallMode: InstallModeNone,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Annex", items[0].Building)
	require.Equal(t, 50.0, meta.GrandSubtotal)

	// Empty subset means every building.
	_, meta, err = eng.CustomEstimate(context.Background(), CustomRequest{
		ProjectID:   1,
		PriceMode:   PriceModeUnit,
		InstallMode: InstallModeNone,
	})
	require.NoError(t, err)
	require.Equal(t, 750.0, meta.GrandSubtotal)
}

func TestCustomEstimate_PerAreaPricing(t *testing.T) {
	repo := demoRepo()
	repo.project.IncludeSalesTax = false
	// SignA: 100 sq ft, no per-sq-ft rate or multiplier → unit price.
	// Give SignB a rate so its 2 sq ft are charged by area.
	repo.members[20][0].PricePerSqFt = 6
	eng := New(repo)

	items, meta, err := eng.CustomEstimate(context.Background(), CustomRequest{
		ProjectID:   1,
		PriceMode:   PriceModePerArea,
		InstallMode: InstallModeNone,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 300.0, items[0].Total)         // fallback to unit price
	require.Equal(t, 96.0, items[1].Total)          // 2 sq ft × 6 × 2 members × 4 instances
	require.Equal(t, 396.0, meta.GrandSubtotal)
	require.Equal(t, 316.0, meta.TotalArea) // 100×3 + 2×2×4
}

func TestCustomEstimate_IgnoresAssignmentCustomPrice(t *testing.T) {
	repo := demoRepo()
	custom := 20.0
	repo.signs[10][0].CustomPrice = &custom
	eng := New(repo)

	items, _, err := eng.CustomEstimate(context.Background(), CustomRequest{
		ProjectID:   1,
		PriceMode:   PriceModeUnit,
		InstallMode: InstallModeNone,
	})
	require.NoError(t, err)
	require.Equal(t, 100.0, items[0].UnitPrice)
}

func TestCustomEstimate_AutoInstallAccumulators(t *testing.T) {
	repo := demoRepo()
	repo.project.IncludeSalesTax = false
	repo.signs[10][0].PerSignInstallRate = 10
	repo.signs[10][0].InstallTimeHours = 0.5
	repo.members[20][0].PerSignInstallRate = 4
	eng := New(repo)

	items, meta, err := eng.CustomEstimate(context.Background(), CustomRequest{
		ProjectID:   1,
		PriceMode:   PriceModeUnit,
		InstallMode: InstallModePerSign,
		Install:     InstallParams{AutoEnabled: true},
	})
	require.NoError(t, err)
	// 10×3 direct + 4×2×4 via group = 62.
	require.Equal(t, 62.0, meta.AutoInstallAmountPerSign)
	require.Equal(t, 1.5, meta.AutoInstallHours)
	require.InDelta(t, 62.0, meta.InstallCost, 1e-9)
	require.Equal(t, "Installation", items[len(items)-1].Item)
}

func TestCustomEstimate_NoInstallationLineWhenZero(t *testing.T) {
	repo := demoRepo()
	repo.project.IncludeSalesTax = false
	eng := New(repo)

	items, meta, err := eng.CustomEstimate(context.Background(), CustomRequest{
		ProjectID:   1,
		PriceMode:   PriceModeUnit,
		InstallMode: InstallModeNone,
		Install:     InstallParams{Percent: 10},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 0.0, meta.InstallCost)
}

func TestCustomEstimate_UnknownProject(t *testing.T) {
	eng := New(demoRepo())

	items, meta, err := eng.CustomEstimate(context.Background(), CustomRequest{ProjectID: 404})
	require.NoError(t, err)
	require.Nil(t, items)
	require.Nil(t, meta)
}
