package domain

import "time"

type OrderStatus string

const (
	StatusDraft      OrderStatus = "brouillon"
	StatusInProgress OrderStatus = "en_cours"
	StatusValidated  OrderStatus = "validée"
	StatusShipped    OrderStatus = "expédiée"
	StatusDelivered  OrderStatus = "livrée"
	StatusCancelled  OrderStatus = "annulée"
)

var progression = []OrderStatus{
	StatusDraft,
	StatusInProgress,
	StatusValidated,
	StatusShipped,
	StatusDelivered,
}

func rank(s OrderStatus) int {
	for i, status := range progression {
		if status == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	return s == StatusCancelled || rank(s) >= 0
}

// CanTransition allows only the next step of the progression. Cancellation is
// allowed from every status except annulée itself.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if !s.Valid() || !to.Valid() {
		return false
	}
	if to == StatusCancelled {
		return s != StatusCancelled
	}
	next, ok := s.Next()
	return ok && next == to
}

// Next returns the following status of the forward progression.
func (s OrderStatus) Next() (OrderStatus, bool) {
	r := rank(s)
	if r < 0 || r+1 >= len(progression) {
		return "", false
	}
	return progression[r+1], true
}

// OrderLine is one product entry of an order.
type OrderLine struct {
	ProductID string  `json:"produitId"`
	Quantity  int     `json:"quantite"`
	UnitPrice float64 `json:"prixUnitaire"`
	Discount  float64 `json:"remise"`
	Subtotal  float64 `json:"sousTotal"`
}

// DeliveryTerms carries optional delivery details.
type DeliveryTerms struct {
	Instructions  string     `json:"instructions,omitempty"`
	EstimatedDate *time.Time `json:"dateEstimee,omitempty"`
}

// Order is a submitted order. GlobalDiscount is reserved and always 0.
type Order struct {
	ID             string         `json:"id"`
	ClientID       string         `json:"clientId"`
	AgencyID       string         `json:"agenceId"`
	Date           time.Time      `json:"date"`
	Lines          []OrderLine    `json:"lignes"`
	GlobalDiscount float64        `json:"remiseGlobale"`
	Total          float64        `json:"total"`
	Status         OrderStatus    `json:"statut"`
	Delivery       *DeliveryTerms `json:"conditionsLivraison,omitempty"`
}
