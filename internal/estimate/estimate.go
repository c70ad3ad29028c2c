// Package estimate implements the cost-estimation engine: unit-price
// resolution, aggregation across buildings and sign groups, installation
// and sales-tax adjustments, and estimate assembly. It is storage-agnostic
// and reads through the Repository interface.
package estimate

import "context"

// Engine computes project estimates against a storage repository.
type Engine struct {
	repo Repository
}

// New returns an Engine reading from repo.
func New(repo Repository) *Engine {
	return &Engine{repo: repo}
}

// CustomRequest describes an extended estimate computation.
type CustomRequest struct {
	ProjectID   int64
	BuildingIDs []int64 // empty means all buildings in the project
	PriceMode   PriceMode
	InstallMode InstallMode
	Install     InstallParams
}

// rates are the adjustment inputs after profile resolution.
type rates struct {
	margin           float64
	installationRate float64
	salesTaxRate     float64
}

func (e *Engine) resolveRates(ctx context.Context, project *Project) (rates, error) {
	r := rates{
		margin:           1,
		installationRate: project.InstallationRate,
		salesTaxRate:     project.SalesTaxRate,
	}
	if project.PricingProfileID == nil {
		return r, nil
	}
	profile, err := e.repo.PricingProfileByID(ctx, *project.PricingProfileID)
	if err != nil {
		return r, err
	}
	if profile == nil {
		return r, nil
	}
	r.margin = marginMultiplier(profile)
	r.installationRate = profile.InstallationRate
	r.salesTaxRate = profile.SalesTaxRate
	return r, nil
}

// ProjectEstimate computes the whole-project estimate (the simple path,
// used for the default estimate view and exports).
//
// Line pricing uses the stored unit price, except that an assignment's
// custom price supersedes it entirely. Installation is a flat rate on the
// signs subtotal; sales tax compounds on subtotal plus installation.
// Returns nil without error when the project does not exist.
func (e *Engine) ProjectEstimate(ctx context.Context, projectID int64) ([]LineItem, error) {
	project, err := e.repo.ProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	rt, err := e.resolveRates(ctx, project)
	if err != nil {
		return nil, err
	}

	buildings, err := e.repo.BuildingsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	items := make([]LineItem, 0)
	total := 0.0
	for _, b := range buildings {
		signs, err := e.repo.BuildingSigns(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range signs {
			price := s.UnitPrice * rt.margin
			if s.CustomPrice != nil && *s.CustomPrice != 0 {
				price = *s.CustomPrice
			}
			lineTotal := price * s.Quantity
			total += lineTotal
			items = append(items, LineItem{
				Kind:       LineSign,
				Building:   b.Name,
				Item:       s.Name,
				Material:   s.Material,
				Dimensions: s.Dimensions(),
				Quantity:   s.Quantity,
				UnitPrice:  price,
				Total:      lineTotal,
			})
		}

		groups, err := e.repo.BuildingGroups(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			members, err := e.repo.GroupMembers(ctx, g.GroupID)
			if err != nil {
				return nil, err
			}
			perInstance := 0.0
			for _, m := range members {
				perInstance += m.UnitPrice * rt.margin * m.Quantity
			}
			lineTotal := perInstance * g.Quantity
			total += lineTotal
			items = append(items, groupLine(b.Name, g.Name, g.Quantity, perInstance, lineTotal))
		}
	}

	if project.IncludeInstallation && rt.installationRate != 0 {
		installCost := total * rt.installationRate
		total += installCost
		items = append(items, adjustmentLine(LineInstallation, "Installation", installCost))
	}
	if project.IncludeSalesTax && rt.salesTaxRate != 0 {
		taxCost := total * rt.salesTaxRate
		items = append(items, adjustmentLine(LineTax, "Sales Tax", taxCost))
	}
	return items, nil
}

// CustomEstimate computes the extended estimate: optional building subset,
// selectable pricing mode, and the five installation modes.
//
// Assignment custom prices are not applied on this path. Sales tax is
// computed once over signs, groups and the installation line, never over a
// prior tax line. Returns nil items and nil meta when the project does not
// exist.
func (e *Engine) CustomEstimate(ctx context.Context, req CustomRequest) ([]LineItem, *Meta, error) {
	project, err := e.repo.ProjectByID(ctx, req.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if project == nil {
		return nil, nil, nil
	}
	rt, err := e.resolveRates(ctx, project)
	if err != nil {
		return nil, nil, err
	}

	buildings, err := e.repo.BuildingsByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	var selected map[int64]bool
	if len(req.BuildingIDs) > 0 {
		selected = make(map[int64]bool, len(req.BuildingIDs))
		for _, id := range req.BuildingIDs {
			selected[id] = true
		}
	}

	items := make([]LineItem, 0)
	var totals Totals
	for _, b := range buildings {
		if selected != nil && !selected[b.ID] {
			continue
		}

		signs, err := e.repo.BuildingSigns(ctx, b.ID)
		if err != nil {
			return nil, nil, err
		}
		for _, s := range signs {
			area := s.Area()
			totals.SignCount += s.Quantity
			totals.Area += area * s.Quantity
			if s.PerSignInstallRate > 0 {
				totals.AutoAmountPerSign += s.PerSignInstallRate * s.Quantity
			}
			if s.InstallTimeHours > 0 {
				totals.AutoHours += s.InstallTimeHours * s.Quantity
			}
			unit := UnitPrice(s.SignRecord, req.PriceMode) * rt.margin
			lineTotal := unit * s.Quantity
			totals.Subtotal += lineTotal
			items = append(items, LineItem{
				Kind:       LineSign,
				Building:   b.Name,
				Item:       s.Name,
				Material:   s.Material,
				Dimensions: s.Dimensions(),
				Quantity:   s.Quantity,
				UnitPrice:  unit,
				Total:      lineTotal,
			})
		}

		groups, err := e.repo.BuildingGroups(ctx, b.ID)
		if err != nil {
			return nil, nil, err
		}
		for _, g := range groups {
			members, err := e.repo.GroupMembers(ctx, g.GroupID)
			if err != nil {
				return nil, nil, err
			}
			perInstance := 0.0
			for _, m := range members {
				area := m.Area()
				totals.SignCount += m.Quantity * g.Quantity
				totals.Area += area * m.Quantity * g.Quantity
				if m.PerSignInstallRate > 0 {
					totals.AutoAmountPerSign += m.PerSignInstallRate * m.Quantity * g.Quantity
				}
				if m.InstallTimeHours > 0 {
					totals.AutoHours += m.InstallTimeHours * m.Quantity * g.Quantity
				}
				perInstance += UnitPrice(m.SignRecord, req.PriceMode) * rt.margin * m.Quantity
			}
			lineTotal := perInstance * g.Quantity
			totals.Subtotal += lineTotal
			items = append(items, groupLine(b.Name, g.Name, g.Quantity, perInstance, lineTotal))
		}
	}

	installCost := InstallCost(req.InstallMode, req.Install, totals)
	if req.InstallMode != InstallModeNone && installCost > 0 {
		items = append(items, adjustmentLine(LineInstallation, "Installation", installCost))
	}

	if project.IncludeSalesTax && rt.salesTaxRate != 0 {
		taxable := 0.0
		for _, it := range items {
			if it.Kind == LineTax {
				continue
			}
			if it.Building != AllBuildings || it.Kind == LineInstallation {
				taxable += it.Total
			}
		}
		items = append(items, adjustmentLine(LineTax, "Sales Tax", taxable*rt.salesTaxRate))
	}

	meta := &Meta{
		GrandSubtotal:            totals.Subtotal,
		TotalSignCount:           totals.SignCount,
		TotalArea:                totals.Area,
		AutoInstallAmountPerSign: totals.AutoAmountPerSign,
		AutoInstallHours:         totals.AutoHours,
		InstallCost:              installCost,
		ProjectSalesTaxRate:      rt.salesTaxRate,
		IncludeSalesTax:          project.IncludeSalesTax,
	}
	return items, meta, nil
}

func groupLine(building, groupName string, quantity, perInstance, total float64) LineItem {
	return LineItem{
		Kind:       LineGroup,
		Building:   building,
		Item:       "Group: " + groupName,
		Material:   "Various",
		Dimensions: "",
		Quantity:   quantity,
		UnitPrice:  perInstance,
		Total:      total,
	}
}

func adjustmentLine(kind LineKind, label string, amount float64) LineItem {
	return LineItem{
		Kind:      kind,
		Building:  AllBuildings,
		Item:      label,
		Quantity:  1,
		UnitPrice: amount,
		Total:     amount,
	}
}
