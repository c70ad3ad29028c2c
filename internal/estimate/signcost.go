package estimate

import (
	"context"
	"fmt"
	"sort"
)

// MethodKey identifies one of the parallel cost methods of a sign.
type MethodKey string

const (
	MethodUnitPrice    MethodKey = "unit_price"
	MethodSqFtSign     MethodKey = "sq_ft_sign"
	MethodSqFtMaterial MethodKey = "sq_ft_material"
)

// bestMethodPriority is the fixed preference order for method selection.
var bestMethodPriority = []MethodKey{MethodUnitPrice, MethodSqFtMaterial, MethodSqFtSign}

// CostMethod is one computed pricing variant for a sign.
type CostMethod struct {
	Key     MethodKey `json:"key"`
	Label   string    `json:"method"`
	Rate    float64   `json:"rate"`
	Area    float64   `json:"area,omitempty"`
	Total   float64   `json:"total_cost"`
	Details string    `json:"details"`
}

// SignCost is the standalone cost record of a single sign type, exposing
// every applicable pricing method rather than one resolved value.
type SignCost struct {
	SignName     string                   `json:"sign_name"`
	Material     string                   `json:"material"`
	Dimensions   string                   `json:"dimensions"`
	Area         float64                  `json:"area"`
	Quantity     float64                  `json:"quantity"`
	InstallClass string                   `json:"install_class"`
	Methods      map[MethodKey]CostMethod `json:"cost_methods"`
}

// SignCost computes the full diagnostic cost record for a sign type.
// Returns nil when the sign type does not exist.
func (e *Engine) SignCost(ctx context.Context, signTypeID int64, quantity float64) (*SignCost, error) {
	st, err := e.repo.SignTypeByID(ctx, signTypeID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, nil
	}
	if quantity <= 0 {
		quantity = 1
	}

	area := st.Area()
	methods := make(map[MethodKey]CostMethod)

	if st.UnitPrice != 0 {
		methods[MethodUnitPrice] = CostMethod{
			Key:     MethodUnitPrice,
			Label:   "Unit Price",
			Rate:    st.UnitPrice,
			Total:   st.UnitPrice * quantity,
			Details: fmt.Sprintf("$%.2f per unit × %g units", st.UnitPrice, quantity),
		}
	}
	if st.PricePerSqFt != 0 && area > 0 {
		methods[MethodSqFtSign] = CostMethod{
			Key:     MethodSqFtSign,
			Label:   "Square Foot (Sign Type)",
			Rate:    st.PricePerSqFt,
			Area:    area,
			Total:   st.PricePerSqFt * area * quantity,
			Details: fmt.Sprintf("$%.2f/sq ft × %.2f sq ft × %g units", st.PricePerSqFt, area, quantity),
		}
	}
	if st.Material != "" && area > 0 {
		rate, ok, err := e.repo.MaterialRate(ctx, st.Material)
		if err != nil {
			return nil, err
		}
		if ok {
			methods[MethodSqFtMaterial] = CostMethod{
				Key:     MethodSqFtMaterial,
				Label:   "Square Foot (Material)",
				Rate:    rate,
				Area:    area,
				Total:   rate * area * quantity,
				Details: fmt.Sprintf("$%.2f/sq ft × %.2f sq ft × %g units", rate, area, quantity),
			}
		}
	}

	return &SignCost{
		SignName:     st.Name,
		Material:     st.Material,
		Dimensions:   st.Dimensions(),
		Area:         area,
		Quantity:     quantity,
		InstallClass: InstallClass(st.InstallType),
		Methods:      methods,
	}, nil
}

// BestMethod selects the preferred cost method: unit_price, then
// sq_ft_material, then sq_ft_sign. When none of those keys is present but
// the set is non-empty, the alphabetically first key wins so selection
// stays deterministic.
func BestMethod(methods map[MethodKey]CostMethod) (CostMethod, bool) {
	for _, k := range bestMethodPriority {
		if m, ok := methods[k]; ok {
			return m, true
		}
	}
	if len(methods) == 0 {
		return CostMethod{}, false
	}
	keys := make([]string, 0, len(methods))
	for k := range methods {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return methods[MethodKey(keys[0])], true
}
