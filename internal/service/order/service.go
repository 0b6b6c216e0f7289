package order

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/pricing"

	"go.uber.org/zap"
)

type Service struct {
	orders  orderStore
	archive func() []domain.Order
	now     func() time.Time
	logger  *zap.Logger
}

type orderStore interface {
	List() []domain.Order
	Get(id string) (domain.Order, error)
	Create(o domain.Order) domain.Order
	Update(id string, patch map[string]json.RawMessage) (domain.Order, error)
	Replace(o domain.Order) (domain.Order, error)
	Delete(id string) (domain.Order, error)
}

// New returns an order Service. archive supplies the delivered orders shown in
// the history next to the live ones; it may be nil.
func New(orders orderStore, archive func() []domain.Order, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if archive == nil {
		archive = func() []domain.Order { return nil }
	}
	return &Service{orders: orders, archive: archive, now: time.Now, logger: logger}
}

// SubmitInput is the payload of a finished order.
type SubmitInput struct {
	Client       *domain.Client     `json:"client"`
	Agency       *domain.Agency     `json:"agence"`
	Lines        []domain.OrderLine `json:"lignesCommande"`
	Instructions string             `json:"instructions,omitempty"`
}

// Filter narrows List results; empty fields match everything.
type Filter struct {
	ClientID string
	Status   domain.OrderStatus
}

// Submit validates in and stores a new in-progress order. The total is the sum of
// the line subtotals as submitted.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (domain.Order, error) {
	if in.Client == nil || strings.TrimSpace(in.Client.ID) == "" {
		return domain.Order{}, fmt.Errorf("%w: client required", domain.ErrInvalidOrder)
	}
	if in.Agency == nil || strings.TrimSpace(in.Agency.ID) == "" {
		return domain.Order{}, fmt.Errorf("%w: agency required", domain.ErrInvalidOrder)
	}
	if len(in.Lines) == 0 {
		return domain.Order{}, fmt.Errorf("%w: at least one line required", domain.ErrInvalidOrder)
	}

	o := domain.Order{
		ClientID:       in.Client.ID,
		AgencyID:       in.Agency.ID,
		Date:           s.now().UTC(),
		Lines:          in.Lines,
		GlobalDiscount: 0,
		Total:          pricing.Total(in.Lines),
		Status:         domain.StatusInProgress,
	}
	if instr := strings.TrimSpace(in.Instructions); instr != "" {
		o.Delivery = &domain.DeliveryTerms{Instructions: instr}
	}
	created := s.orders.Create(o)
	s.logger.Info("order submitted",
		zap.String("id", created.ID),
		zap.String("client", created.ClientID),
		zap.String("agency", created.AgencyID),
		zap.Int("lines", len(created.Lines)),
		zap.Float64("total", created.Total),
	)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	return s.orders.Get(id)
}

func (s *Service) List(ctx context.Context, f Filter) []domain.Order {
	all := s.orders.List()
	if f.ClientID == "" && f.Status == "" {
		return all
	}
	out := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if f.ClientID != "" && o.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Update shallow-merges patch into the order. A statut in the patch must be a known status.
func (s *Service) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (domain.Order, error) {
	if raw, ok := patch["statut"]; ok {
		var st domain.OrderStatus
		if err := json.Unmarshal(raw, &st); err != nil || !st.Valid() {
			return domain.Order{}, domain.Invalid("statut invalid")
		}
	}
	return s.orders.Update(id, patch)
}

// Delete removes the order and returns it.
func (s *Service) Delete(ctx context.Context, id string) (domain.Order, error) {
	removed, err := s.orders.Delete(id)
	if err != nil {
		return domain.Order{}, err
	}
	s.logger.Info("order deleted", zap.String("id", id))
	return removed, nil
}

// Transition moves the order to status when the progression allows it.
func (s *Service) Transition(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, domain.Invalid("statut invalid")
	}
	o, err := s.orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}
	if !o.Status.CanTransition(status) {
		return domain.Order{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, status)
	}
	from := o.Status
	o.Status = status
	updated, err := s.orders.Replace(o)
	if err != nil {
		return domain.Order{}, err
	}
	s.logger.Info("order status changed", zap.String("id", id), zap.String("from", string(from)), zap.String("to", string(status)))
	return updated, nil
}

// History groups archived and live orders by client id, newest first.
func (s *Service) History(ctx context.Context) map[string][]domain.Order {
	out := map[string][]domain.Order{}
	for _, o := range s.archive() {
		out[o.ClientID] = append(out[o.ClientID], o)
	}
	for _, o := range s.orders.List() {
		out[o.ClientID] = append(out[o.ClientID], o)
	}
	for _, orders := range out {
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].Date.After(orders[j].Date)
		})
	}
	return out
}
