package estimate

import (
	"context"
	"fmt"
)

// PriceMode selects how a sign's effective unit price is derived.
type PriceMode string

const (
	// PriceModeUnit uses the stored flat unit price verbatim.
	PriceModeUnit PriceMode = "unit_price"
	// PriceModePerArea prices by area using the sign's own rate or its
	// material multiplier, falling back to the unit price when neither
	// is usable.
	PriceModePerArea PriceMode = "per_area"
)

// InstallMode selects how installation cost is derived from the
// aggregation totals.
type InstallMode string

const (
	InstallModeNone    InstallMode = "none"
	InstallModePercent InstallMode = "percent"
	InstallModePerSign InstallMode = "per_sign"
	InstallModePerArea InstallMode = "per_area"
	InstallModeHours   InstallMode = "hours"
)

// LineKind tags the role of an estimate row. Adjustment handling keys off
// this field rather than matching on item labels.
type LineKind string

const (
	LineSign         LineKind = "sign"
	LineGroup        LineKind = "group"
	LineInstallation LineKind = "installation"
	LineTax          LineKind = "tax"
)

// AllBuildings is the Building value reserved for adjustment rows.
const AllBuildings = "ALL"

// LineItem is one row of a rendered estimate.
type LineItem struct {
	Kind       LineKind `json:"-"`
	Building   string   `json:"Building"`
	Item       string   `json:"Item"`
	Material   string   `json:"Material"`
	Dimensions string   `json:"Dimensions"`
	Quantity   float64  `json:"Quantity"`
	UnitPrice  float64  `json:"Unit_Price"`
	Total      float64  `json:"Total"`
}

// Meta carries the intermediate metrics of an extended estimate, for UI
// summaries and diagnostics.
type Meta struct {
	GrandSubtotal            float64 `json:"grand_subtotal"`
	TotalSignCount           float64 `json:"total_sign_count"`
	TotalArea                float64 `json:"total_area"`
	AutoInstallAmountPerSign float64 `json:"auto_install_amount_per_sign"`
	AutoInstallHours         float64 `json:"auto_install_hours"`
	InstallCost              float64 `json:"install_cost"`
	ProjectSalesTaxRate      float64 `json:"project_sales_tax_rate"`
	IncludeSalesTax          bool    `json:"include_sales_tax"`
}

// Project is the estimation view of a project row.
type Project struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	SalesTaxRate        float64 `json:"sales_tax_rate"`
	InstallationRate    float64 `json:"installation_rate"`
	IncludeInstallation bool    `json:"include_installation"`
	IncludeSalesTax     bool    `json:"include_sales_tax"`
	PricingProfileID    *int64  `json:"pricing_profile_id,omitempty"`
}

// PricingProfile is a reusable override bundle attachable to a project.
// When attached it replaces the project's tax and installation rates, and
// a margin multiplier outside {0, 1} scales every resolved unit price.
type PricingProfile struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	SalesTaxRate     float64 `json:"sales_tax_rate"`
	InstallationRate float64 `json:"installation_rate"`
	MarginMultiplier float64 `json:"margin_multiplier"`
}

// Building is a sub-location of a project.
type Building struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SignRecord carries the pricing attributes the resolver consumes. Numeric
// fields are zero when absent in storage.
type SignRecord struct {
	Name               string  `json:"name"`
	Material           string  `json:"material"`
	UnitPrice          float64 `json:"unit_price"`
	PricePerSqFt       float64 `json:"price_per_sq_ft"`
	MaterialMultiplier float64 `json:"material_multiplier"`
	Width              float64 `json:"width"`
	Height             float64 `json:"height"`
	PerSignInstallRate float64 `json:"per_sign_install_rate"`
	InstallTimeHours   float64 `json:"install_time_hours"`
	InstallType        string  `json:"install_type"`
}

// Area returns width × height, or zero when either dimension is missing.
// Area-based pricing methods are gated on this value.
func (r SignRecord) Area() float64 {
	if r.Width == 0 || r.Height == 0 {
		return 0
	}
	return r.Width * r.Height
}

// Dimensions renders "W x H" for display, empty when dimensionless.
func (r SignRecord) Dimensions() string {
	if r.Width == 0 || r.Height == 0 {
		return ""
	}
	return fmt.Sprintf("%g x %g", r.Width, r.Height)
}

// SignType is a catalog entry.
type SignType struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	SignRecord
}

// BuildingSign is a direct sign assignment joined with its sign type.
type BuildingSign struct {
	SignRecord
	Quantity    float64  `json:"quantity"`
	CustomPrice *float64 `json:"custom_price,omitempty"`
}

// BuildingGroup is a group assignment on a building.
type BuildingGroup struct {
	GroupID  int64   `json:"group_id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// GroupMember is one sign type inside a group recipe.
type GroupMember struct {
	SignRecord
	Quantity float64 `json:"quantity"`
}

// Repository is the storage surface the engine reads from. Lookups that
// find nothing return nil (or ok=false) rather than an error.
type Repository interface {
	ProjectByID(ctx context.Context, id int64) (*Project, error)
	PricingProfileByID(ctx context.Context, id int64) (*PricingProfile, error)
	BuildingsByProject(ctx context.Context, projectID int64) ([]Building, error)
	BuildingSigns(ctx context.Context, buildingID int64) ([]BuildingSign, error)
	BuildingGroups(ctx context.Context, buildingID int64) ([]BuildingGroup, error)
	GroupMembers(ctx context.Context, groupID int64) ([]GroupMember, error)
	SignTypeByID(ctx context.Context, id int64) (*SignType, error)
	MaterialRate(ctx context.Context, material string) (float64, bool, error)
}
