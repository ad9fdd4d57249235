package tiers

import "strings"

// Tier name constants (single source of truth)
const (
	TierNone       = "none"
	TierFree       = "free"
	TierStarter    = "starter"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

type Tier struct {
	Name               string  `json:"name"`
	MonthlyCredits     float64 `json:"credits"`
	ProjectLimit       int     `json:"project_limit"`
	CanPurchaseCredits bool    `json:"can_purchase_credits"`
}

// registry is static on purpose: tier definitions change with a deploy,
// not at runtime.
var registry = map[string]Tier{
	TierNone:       {Name: TierNone, MonthlyCredits: 0, ProjectLimit: 0, CanPurchaseCredits: false},
	TierFree:       {Name: TierFree, MonthlyCredits: 5, ProjectLimit: 1, CanPurchaseCredits: false},
	TierStarter:    {Name: TierStarter, MonthlyCredits: 20, ProjectLimit: 3, CanPurchaseCredits: true},
	TierPro:        {Name: TierPro, MonthlyCredits: 100, ProjectLimit: 25, CanPurchaseCredits: true},
	TierEnterprise: {Name: TierEnterprise, MonthlyCredits: 500, ProjectLimit: 500, CanPurchaseCredits: true},
}

// Get returns the tier definition for a name, falling back to "none"
// for unknown or empty names.
func Get(name string) Tier {
	if t, ok := registry[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return registry[TierNone]
}

// Entitled reports whether a tier name represents a paid entitlement.
// "none" and "free" are the sentinel not-entitled values.
func Entitled(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TierNone, TierFree:
		return false
	default:
		return true
	}
}

// All lists the tiers exposed on the public pricing surface.
func All() []Tier {
	return []Tier{
		registry[TierFree],
		registry[TierStarter],
		registry[TierPro],
		registry[TierEnterprise],
	}
}
