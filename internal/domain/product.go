package domain

// Product is a catalogue item. Stock is tracked per agency id.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"nom"`
	Description string         `json:"description"`
	Price       float64        `json:"prix"`
	Category    string         `json:"categorie"`
	Image       string         `json:"image,omitempty"`
	Stock       map[string]int `json:"stock"`
}

// StockAt returns the quantity held by the given agency.
func (p Product) StockAt(agencyID string) int {
	return p.Stock[agencyID]
}

// TotalStock is the scalar "available stock" view summed over all agencies.
func (p Product) TotalStock() int {
	total := 0
	for _, qty := range p.Stock {
		total += qty
	}
	return total
}
