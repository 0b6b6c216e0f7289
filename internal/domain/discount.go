package domain

import "time"

type DiscountType string

const (
	DiscountVolume      DiscountType = "volume"
	DiscountLoyalty     DiscountType = "fidélité"
	DiscountPromotional DiscountType = "promotionnelle"
)

// Valid reports whether t is one of the known discount types.
func (t DiscountType) Valid() bool {
	switch t {
	case DiscountVolume, DiscountLoyalty, DiscountPromotional:
		return true
	default:
		return false
	}
}

// DiscountConditions restricts where a discount applies.
type DiscountConditions struct {
	MinimumAmount      *float64 `json:"montantMinimum,omitempty"`
	MinimumQuantity    *int     `json:"quantiteMinimum,omitempty"`
	ApplicableProducts []string `json:"produitsApplicables,omitempty"`
	ApplicableClients  []string `json:"clientsApplicables,omitempty"`
}

// Discount is an entry of the discount catalogue. Dates use the YYYY-MM-DD layout.
type Discount struct {
	ID          string              `json:"id"`
	Name        string              `json:"nom"`
	Description string              `json:"description"`
	Type        DiscountType        `json:"type"`
	Value       float64             `json:"valeur"`
	StartDate   string              `json:"dateDebut"`
	EndDate     string              `json:"dateFin"`
	Conditions  *DiscountConditions `json:"conditions,omitempty"`
}

const DateLayout = "2006-01-02"

// ActiveAt reports whether t falls within the validity range, both bounds inclusive.
func (d Discount) ActiveAt(t time.Time) bool {
	start, err := time.Parse(DateLayout, d.StartDate)
	if err != nil {
		return false
	}
	end, err := time.Parse(DateLayout, d.EndDate)
	if err != nil {
		return false
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(start) && !day.After(end)
}
