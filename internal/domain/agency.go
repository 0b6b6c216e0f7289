package domain

// Agency is a warehouse that fulfils orders from its own stock.
type Agency struct {
	ID      string         `json:"id"`
	Name    string         `json:"nom"`
	Address string         `json:"adresse"`
	Zone    string         `json:"zoneGeographique"`
	Stock   map[string]int `json:"stockDisponible"`
}

// StockFor returns the quantity of productID available at the agency; missing entries count as 0.
func (a Agency) StockFor(productID string) int {
	return a.Stock[productID]
}
