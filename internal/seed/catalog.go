package seed

import (
	"strconv"

	"orderdesk/internal/domain"
)

// WithProducts returns a loader that appends extra products to the fixtures.
// Extra products get ids following the seeded ones and their stock is mirrored
// into the stockDisponible of every known agency.
func WithProducts(extra []domain.Product) func() Data {
	return func() Data {
		d := Load()
		agencies := make(map[string]*domain.Agency, len(d.Agencies))
		for i := range d.Agencies {
			agencies[d.Agencies[i].ID] = &d.Agencies[i]
		}
		for _, p := range extra {
			p.ID = strconv.Itoa(len(d.Products) + 1)
			stock := make(map[string]int, len(p.Stock))
			for agencyID, qty := range p.Stock {
				stock[agencyID] = qty
				if a, ok := agencies[agencyID]; ok {
					a.Stock[p.ID] = qty
				}
			}
			p.Stock = stock
			d.Products = append(d.Products, p)
		}
		return d
	}
}
