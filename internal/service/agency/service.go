package agency

import (
	"context"
	"encoding/json"
	"strings"

	"orderdesk/internal/assignment"
	"orderdesk/internal/domain"

	"go.uber.org/zap"
)

type Service struct {
	agencies      agencyStore
	clients       clientGetter
	defaultAgency string
	logger        *zap.Logger
}

type agencyStore interface {
	List() []domain.Agency
	Get(id string) (domain.Agency, error)
	Create(a domain.Agency) domain.Agency
	Update(id string, patch map[string]json.RawMessage) (domain.Agency, error)
	Delete(id string) (domain.Agency, error)
}

type clientGetter interface {
	Get(id string) (domain.Client, error)
}

// New returns an agency Service. defaultAgency is the attachment agency id.
func New(agencies agencyStore, clients clientGetter, defaultAgency string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{agencies: agencies, clients: clients, defaultAgency: defaultAgency, logger: logger}
}

type CreateInput struct {
	Name    string         `json:"nom"`
	Address string         `json:"adresse"`
	Zone    string         `json:"zoneGeographique"`
	Stock   map[string]int `json:"stockDisponible"`
}

// CandidatesInput identifies the client zone either directly or through a client id.
type CandidatesInput struct {
	ClientID string            `json:"clientId"`
	Zone     string            `json:"zoneGeographique"`
	Lines    []assignment.Line `json:"lignes"`
}

// Candidates is the result of an assignment lookup. None is true when no agency qualifies.
type Candidates struct {
	Agencies []domain.Agency `json:"candidats"`
	Proposed *domain.Agency  `json:"proposee,omitempty"`
	None     bool            `json:"aucune"`
}

func (s *Service) List(ctx context.Context) []domain.Agency {
	return s.agencies.List()
}

func (s *Service) Get(ctx context.Context, id string) (domain.Agency, error) {
	return s.agencies.Get(id)
}

// DefaultAgency returns the attachment agency id.
func (s *Service) DefaultAgency() string {
	return s.defaultAgency
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Agency, error) {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return domain.Agency{}, domain.Invalid("nom required")
	case strings.TrimSpace(in.Address) == "":
		return domain.Agency{}, domain.Invalid("adresse required")
	case strings.TrimSpace(in.Zone) == "":
		return domain.Agency{}, domain.Invalid("zoneGeographique required")
	}
	stock := in.Stock
	if stock == nil {
		stock = map[string]int{}
	}
	created := s.agencies.Create(domain.Agency{
		Name:    strings.TrimSpace(in.Name),
		Address: strings.TrimSpace(in.Address),
		Zone:    strings.TrimSpace(in.Zone),
		Stock:   stock,
	})
	s.logger.Info("agency created", zap.String("id", created.ID), zap.String("zone", created.Zone))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (domain.Agency, error) {
	return s.agencies.Update(id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.agencies.Delete(id); err != nil {
		return err
	}
	s.logger.Info("agency deleted", zap.String("id", id))
	return nil
}

// Candidates lists the agencies able to ship every line, the client zone first.
func (s *Service) Candidates(ctx context.Context, in CandidatesInput) (Candidates, error) {
	if len(in.Lines) == 0 {
		return Candidates{}, domain.Invalid("lignes required")
	}
	zone := in.Zone
	if in.ClientID != "" {
		c, err := s.clients.Get(in.ClientID)
		if err != nil {
			return Candidates{}, err
		}
		zone = c.Zone
	}
	found := assignment.SelectCandidates(zone, s.agencies.List(), in.Lines)
	out := Candidates{Agencies: found, None: len(found) == 0}
	if len(found) > 0 {
		proposed := found[0]
		out.Proposed = &proposed
	}
	s.logger.Debug("agency candidates", zap.String("zone", zone), zap.Int("lines", len(in.Lines)), zap.Int("candidates", len(found)))
	return out, nil
}
