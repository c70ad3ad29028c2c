package estimate

// InstallParams carries the explicit installation inputs of an extended
// estimate request.
type InstallParams struct {
	Percent     float64 `json:"percent"`      // percent mode: % of subtotal
	PerSign     float64 `json:"per_sign"`     // per_sign mode: amount per sign
	PerArea     float64 `json:"per_area"`     // per_area mode: amount per sq ft
	Hours       float64 `json:"hours"`        // hours mode: explicit hours
	HourlyRate  float64 `json:"hourly_rate"`  // hours mode: rate per hour
	AutoEnabled bool    `json:"auto_enabled"` // allow fallback to per-sign accumulators
}

// Totals are the running accumulators produced by the aggregation walk.
type Totals struct {
	Subtotal          float64
	SignCount         float64
	Area              float64
	AutoAmountPerSign float64
	AutoHours         float64
}

// InstallCost computes installation cost for one mode.
//
// The per_sign and hours modes fall back to the auto accumulators when the
// explicit value is zero and auto mode is enabled: per_sign uses the
// accumulated flat amount as-is, hours uses accumulated hours at the
// explicit hourly rate.
func InstallCost(mode InstallMode, p InstallParams, t Totals) float64 {
	switch mode {
	case InstallModePercent:
		return t.Subtotal * (p.Percent / 100)
	case InstallModePerSign:
		if p.PerSign > 0 {
			return t.SignCount * p.PerSign
		}
		if p.AutoEnabled && t.AutoAmountPerSign > 0 {
			return t.AutoAmountPerSign
		}
	case InstallModePerArea:
		return t.Area * p.PerArea
	case InstallModeHours:
		if p.Hours > 0 {
			return p.Hours * p.HourlyRate
		}
		if p.AutoEnabled && t.AutoHours > 0 {
			return t.AutoHours * p.HourlyRate
		}
	}
	return 0
}
