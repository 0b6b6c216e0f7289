package domain

// CommercialTerms stores the per-client discount settings, in percent.
type CommercialTerms struct {
	FixedDiscount  *float64 `json:"remiseFixe,omitempty"`
	VolumeDiscount *float64 `json:"remiseVolume,omitempty"`
}

// Client is a business customer placing orders.
type Client struct {
	ID      string          `json:"id"`
	Name    string          `json:"nom"`
	Email   string          `json:"email"`
	Phone   string          `json:"telephone"`
	Address string          `json:"adresse"`
	Zone    string          `json:"zoneGeographique"`
	Terms   CommercialTerms `json:"conditionsCommerciales"`
}

// Fixed returns the fixed discount percent, 0 when unset.
func (t CommercialTerms) Fixed() float64 {
	if t.FixedDiscount == nil {
		return 0
	}
	return *t.FixedDiscount
}

// Volume returns the volume discount percent, 0 when unset.
func (t CommercialTerms) Volume() float64 {
	if t.VolumeDiscount == nil {
		return 0
	}
	return *t.VolumeDiscount
}
