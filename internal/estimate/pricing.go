package estimate

import "strings"

// UnitPrice resolves one effective unit price for rec under the given
// pricing mode.
//
// In per-area mode the sign's own price_per_sq_ft wins over its material
// multiplier; when the area is zero or neither rate is positive the stored
// unit price is used. Any other mode returns the stored unit price verbatim.
func UnitPrice(rec SignRecord, mode PriceMode) float64 {
	if mode == PriceModePerArea {
		area := rec.Area()
		if area > 0 {
			rate := rec.PricePerSqFt
			if rate <= 0 {
				rate = rec.MaterialMultiplier
			}
			if rate > 0 {
				return area * rate
			}
		}
	}
	return rec.UnitPrice
}

// marginMultiplier returns the effective price scale for a profile.
// Multipliers of 0 and 1 are treated as "no margin".
func marginMultiplier(p *PricingProfile) float64 {
	if p == nil {
		return 1
	}
	if p.MarginMultiplier == 0 || p.MarginMultiplier == 1 {
		return 1
	}
	return p.MarginMultiplier
}

// InstallClass classifies a free-text install_type value by substring.
func InstallClass(installType string) string {
	s := strings.ToLower(installType)
	switch {
	case strings.Contains(s, "exterior"):
		return "exterior"
	case strings.Contains(s, "interior"):
		return "interior"
	default:
		return "unspecified"
	}
}
