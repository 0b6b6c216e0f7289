package store

import (
	"orderdesk/internal/domain"
	"orderdesk/internal/seed"

	"go.uber.org/zap"
)

// Store owns the canonical copies of every entity collection.
type Store struct {
	Clients   *Collection[domain.Client]
	Products  *Collection[domain.Product]
	Agencies  *Collection[domain.Agency]
	Orders    *Collection[domain.Order]
	Discounts *Collection[domain.Discount]

	loader func() seed.Data
	logger *zap.Logger
}

// New builds a Store and fills it from loader. loader is called again on every Reset
// and must return data the store can keep.
func New(loader func() seed.Data, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loader == nil {
		loader = seed.Load
	}
	s := &Store{
		Clients: newCollection("clients", "%d",
			func(c domain.Client) string { return c.ID },
			func(c *domain.Client, id string) { c.ID = id }, logger),
		Products: newCollection("produits", "%d",
			func(p domain.Product) string { return p.ID },
			func(p *domain.Product, id string) { p.ID = id }, logger),
		Agencies: newCollection("agences", "AGC%d",
			func(a domain.Agency) string { return a.ID },
			func(a *domain.Agency, id string) { a.ID = id }, logger),
		Orders: newCollection("commandes", "%d",
			func(o domain.Order) string { return o.ID },
			func(o *domain.Order, id string) { o.ID = id }, logger),
		Discounts: newCollection("remises", "%d",
			func(d domain.Discount) string { return d.ID },
			func(d *domain.Discount, id string) { d.ID = id }, logger),
		loader: loader,
		logger: logger,
	}
	s.Reset()
	return s
}

// Reset restores every collection to the seed state.
func (s *Store) Reset() {
	data := s.loader()
	s.Clients.load(data.Clients)
	s.Products.load(data.Products)
	s.Agencies.load(data.Agencies)
	s.Orders.load(data.Orders)
	s.Discounts.load(data.Discounts)
	s.logger.Info("store: reset",
		zap.Int("clients", len(data.Clients)),
		zap.Int("produits", len(data.Products)),
		zap.Int("agences", len(data.Agencies)),
		zap.Int("commandes", len(data.Orders)),
		zap.Int("remises", len(data.Discounts)),
	)
}
