package client

import (
	"context"
	"encoding/json"
	"strings"

	"orderdesk/internal/domain"

	"go.uber.org/zap"
)

type Service struct {
	clients clientStore
	logger  *zap.Logger
}

type clientStore interface {
	List() []domain.Client
	Get(id string) (domain.Client, error)
	Create(c domain.Client) domain.Client
	Update(id string, patch map[string]json.RawMessage) (domain.Client, error)
	Delete(id string) (domain.Client, error)
}

func New(clients clientStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{clients: clients, logger: logger}
}

// CreateInput is a client payload without id.
type CreateInput struct {
	Name    string                  `json:"nom"`
	Email   string                  `json:"email"`
	Phone   string                  `json:"telephone"`
	Address string                  `json:"adresse"`
	Zone    string                  `json:"zoneGeographique"`
	Terms   *domain.CommercialTerms `json:"conditionsCommerciales"`
}

func (in CreateInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return domain.Invalid("nom required")
	case strings.TrimSpace(in.Email) == "":
		return domain.Invalid("email required")
	case strings.TrimSpace(in.Phone) == "":
		return domain.Invalid("telephone required")
	case strings.TrimSpace(in.Address) == "":
		return domain.Invalid("adresse required")
	case strings.TrimSpace(in.Zone) == "":
		return domain.Invalid("zoneGeographique required")
	}
	return nil
}

// List returns all clients, or those whose name, email or id contains query.
func (s *Service) List(ctx context.Context, query string) []domain.Client {
	all := s.clients.List()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all
	}
	out := make([]domain.Client, 0, len(all))
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(strings.ToLower(c.ID), q) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Service) Get(ctx context.Context, id string) (domain.Client, error) {
	return s.clients.Get(id)
}

// Create validates in and stores a new client. Missing commercial terms default to none.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Client, error) {
	if err := in.validate(); err != nil {
		return domain.Client{}, err
	}
	c := domain.Client{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
		Zone:    strings.TrimSpace(in.Zone),
	}
	if in.Terms != nil {
		c.Terms = *in.Terms
	}
	created := s.clients.Create(c)
	s.logger.Info("client created", zap.String("id", created.ID), zap.String("zone", created.Zone))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (domain.Client, error) {
	return s.clients.Update(id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.clients.Delete(id); err != nil {
		return err
	}
	s.logger.Info("client deleted", zap.String("id", id))
	return nil
}
