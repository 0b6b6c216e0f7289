package discount

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"orderdesk/internal/assignment"
	"orderdesk/internal/domain"
	"orderdesk/internal/pricing"

	"go.uber.org/zap"
)

type Service struct {
	discounts discountStore
	clients   clientGetter
	products  productGetter
	logger    *zap.Logger
}

type discountStore interface {
	List() []domain.Discount
	Get(id string) (domain.Discount, error)
	Create(d domain.Discount) domain.Discount
	Update(id string, patch map[string]json.RawMessage) (domain.Discount, error)
	Delete(id string) (domain.Discount, error)
}

type clientGetter interface {
	Get(id string) (domain.Client, error)
}

type productGetter interface {
	Get(id string) (domain.Product, error)
}

func New(discounts discountStore, clients clientGetter, products productGetter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{discounts: discounts, clients: clients, products: products, logger: logger}
}

type CreateInput struct {
	Name        string                     `json:"nom"`
	Description string                     `json:"description"`
	Type        domain.DiscountType        `json:"type"`
	Value       float64                    `json:"valeur"`
	StartDate   string                     `json:"dateDebut"`
	EndDate     string                     `json:"dateFin"`
	Conditions  *domain.DiscountConditions `json:"conditions"`
}

// QuoteInput asks for the priced lines of a client order.
type QuoteInput struct {
	ClientID string            `json:"clientId"`
	Lines    []assignment.Line `json:"lignes"`
}

// Quote is a set of priced lines and their total.
type Quote struct {
	Lines []domain.OrderLine `json:"lignes"`
	Total float64            `json:"total"`
}

// List returns the discount catalogue; activeOnly keeps the entries valid at now.
func (s *Service) List(ctx context.Context, activeOnly bool, now time.Time) []domain.Discount {
	all := s.discounts.List()
	if !activeOnly {
		return all
	}
	out := make([]domain.Discount, 0, len(all))
	for _, d := range all {
		if d.ActiveAt(now) {
			out = append(out, d)
		}
	}
	return out
}

func (s *Service) Get(ctx context.Context, id string) (domain.Discount, error) {
	return s.discounts.Get(id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Discount, error) {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return domain.Discount{}, domain.Invalid("nom required")
	case strings.TrimSpace(in.Description) == "":
		return domain.Discount{}, domain.Invalid("description required")
	case !in.Type.Valid():
		return domain.Discount{}, domain.Invalid("type must be volume, fidélité or promotionnelle")
	case in.Value <= 0:
		return domain.Discount{}, domain.Invalid("valeur must be positive")
	}
	start, err := time.Parse(domain.DateLayout, in.StartDate)
	if err != nil {
		return domain.Discount{}, domain.Invalid("dateDebut required (YYYY-MM-DD)")
	}
	end, err := time.Parse(domain.DateLayout, in.EndDate)
	if err != nil {
		return domain.Discount{}, domain.Invalid("dateFin required (YYYY-MM-DD)")
	}
	if end.Before(start) {
		return domain.Discount{}, domain.Invalid("dateFin before dateDebut")
	}
	created := s.discounts.Create(domain.Discount{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Type:        in.Type,
		Value:       in.Value,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Conditions:  in.Conditions,
	})
	s.logger.Info("discount created", zap.String("id", created.ID), zap.String("type", string(created.Type)))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (domain.Discount, error) {
	return s.discounts.Update(id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.discounts.Delete(id); err != nil {
		return err
	}
	s.logger.Info("discount deleted", zap.String("id", id))
	return nil
}

// Quote prices every line with the client's commercial terms. An empty client id
// prices without discount.
func (s *Service) Quote(ctx context.Context, in QuoteInput) (Quote, error) {
	var client *domain.Client
	if in.ClientID != "" {
		c, err := s.clients.Get(in.ClientID)
		if err != nil {
			return Quote{}, err
		}
		client = &c
	}
	lines := make([]domain.OrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.Quantity < 0 {
			return Quote{}, domain.Invalid("quantite must not be negative")
		}
		p, err := s.products.Get(l.ProductID)
		if err != nil {
			return Quote{}, err
		}
		lines = append(lines, pricing.PriceLine(client, p, l.Quantity))
	}
	return Quote{Lines: lines, Total: pricing.Total(lines)}, nil
}
