package product

import (
	"context"
	"encoding/json"
	"strings"

	"orderdesk/internal/domain"

	"go.uber.org/zap"
)

type Service struct {
	products      productStore
	defaultAgency string
	logger        *zap.Logger
}

type productStore interface {
	List() []domain.Product
	Get(id string) (domain.Product, error)
	Create(p domain.Product) domain.Product
	Update(id string, patch map[string]json.RawMessage) (domain.Product, error)
	Delete(id string) (domain.Product, error)
}

// New returns a product Service. Catalogue browsing filters on defaultAgency stock
// unless the query names another agency.
func New(products productStore, defaultAgency string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{products: products, defaultAgency: defaultAgency, logger: logger}
}

type CreateInput struct {
	Name        string         `json:"nom"`
	Description string         `json:"description"`
	Price       float64        `json:"prix"`
	Category    string         `json:"categorie"`
	Image       string         `json:"image"`
	Stock       map[string]int `json:"stock"`
}

// BrowseQuery filters the catalogue. Search matches name or description, case-insensitively.
type BrowseQuery struct {
	Category string
	Search   string
	AgencyID string
}

func (s *Service) List(ctx context.Context) []domain.Product {
	return s.products.List()
}

func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	return s.products.Get(id)
}

// Browse returns the products matching q that the agency has in stock.
func (s *Service) Browse(ctx context.Context, q BrowseQuery) []domain.Product {
	agencyID := q.AgencyID
	if agencyID == "" {
		agencyID = s.defaultAgency
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	all := s.products.List()
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if p.StockAt(agencyID) <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories lists the distinct categories in catalogue order.
func (s *Service) Categories(ctx context.Context) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range s.products.List() {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Product, error) {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return domain.Product{}, domain.Invalid("nom required")
	case in.Price <= 0:
		return domain.Product{}, domain.Invalid("prix must be positive")
	case strings.TrimSpace(in.Category) == "":
		return domain.Product{}, domain.Invalid("categorie required")
	case in.Stock == nil:
		return domain.Product{}, domain.Invalid("stock required")
	}
	created := s.products.Create(domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		Image:       in.Image,
		Stock:       in.Stock,
	})
	s.logger.Info("product created", zap.String("id", created.ID), zap.String("category", created.Category))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (domain.Product, error) {
	return s.products.Update(id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.products.Delete(id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("id", id))
	return nil
}
