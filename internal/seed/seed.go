package seed

import (
	"time"

	"orderdesk/internal/domain"
)

// DefaultAgencyID is the attachment agency used for catalogue browsing and privileged auto-assignment.
const DefaultAgencyID = "AGC1"

// Data is the full fixture set loaded into the store on start and on reset.
type Data struct {
	Clients   []domain.Client
	Products  []domain.Product
	Agencies  []domain.Agency
	Orders    []domain.Order
	Discounts []domain.Discount
}

func pct(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

// Load returns a fresh copy of the fixtures; callers may mutate it freely.
func Load() Data {
	return Data{
		Clients:   clients(),
		Products:  products(),
		Agencies:  agencies(),
		Orders:    orders(),
		Discounts: discounts(),
	}
}

func clients() []domain.Client {
	return []domain.Client{
		{
			ID:      "1",
			Name:    "Restaurant Le Gourmet",
			Email:   "contact@legourmet.fr",
			Phone:   "01 23 45 67 89",
			Address: "15 Rue de la Gastronomie, 75001 Paris",
			Zone:    "Paris Centre",
			Terms:   domain.CommercialTerms{FixedDiscount: pct(5), VolumeDiscount: pct(2)},
		},
		{
			ID:      "2",
			Name:    "Bistrot Chez Marcel",
			Email:   "marcel@bistrot.fr",
			Phone:   "01 98 76 54 32",
			Address: "42 Avenue des Saveurs, 75002 Paris",
			Zone:    "Paris Centre",
			Terms:   domain.CommercialTerms{FixedDiscount: pct(3)},
		},
		{
			ID:      "3",
			Name:    "Hôtel Le Magnifique",
			Email:   "reservation@magnifique.fr",
			Phone:   "01 45 67 89 10",
			Address: "8 Place de l'Élégance, 75008 Paris",
			Zone:    "Paris Ouest",
			Terms:   domain.CommercialTerms{FixedDiscount: pct(10), VolumeDiscount: pct(5)},
		},
	}
}

func products() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Canard Entier Label Rouge",
			Description: "Canard fermier Label Rouge, élevé en plein air",
			Price:       49.90,
			Category:    "Volailles",
			Stock:       map[string]int{"AGC1": 30, "AGC2": 20},
			Image:       "/images/produits/canard-prepare.png",
		},
		{
			ID:          "2",
			Name:        "Magret de Canard",
			Description: "Magret de canard du Sud-Ouest, environ 350g",
			Price:       19.95,
			Category:    "Volailles",
			Stock:       map[string]int{"AGC1": 50, "AGC2": 50},
			Image:       "/images/produits/magret-canard.png",
		},
		{
			ID:          "3",
			Name:        "Foie Gras de Canard Entier",
			Description: "Foie gras de canard entier mi-cuit, 250g",
			Price:       39.90,
			Category:    "Foie Gras",
			Stock:       map[string]int{"AGC1": 15, "AGC2": 15},
			Image:       "/images/produits/foie-gras.png",
		},
		{
			ID:          "4",
			Name:        "Confit de Canard",
			Description: "Cuisses de canard confites, lot de 2",
			Price:       24.90,
			Category:    "Conserves",
			Stock:       map[string]int{"AGC1": 40, "AGC2": 35},
			Image:       "/images/produits/confit-canard.png",
		},
	}
}

func agencies() []domain.Agency {
	return []domain.Agency{
		{
			ID:      "AGC1",
			Name:    "Agence Paris Centre",
			Address: "15 Rue de la Distribution, 75001 Paris",
			Zone:    "Paris Centre",
			Stock:   map[string]int{"1": 30, "2": 50, "3": 15, "4": 40},
		},
		{
			ID:      "AGC2",
			Name:    "Agence Paris Ouest",
			Address: "42 Avenue de la Logistique, 92100 Boulogne-Billancourt",
			Zone:    "Paris Ouest",
			Stock:   map[string]int{"1": 20, "2": 50, "3": 15, "4": 35},
		},
	}
}

var seededAt = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func orders() []domain.Order {
	return []domain.Order{
		{
			ID:       "1",
			ClientID: "1",
			AgencyID: "AGC1",
			Date:     seededAt,
			Status:   domain.StatusInProgress,
			Lines: []domain.OrderLine{
				{ProductID: "1", Quantity: 2, UnitPrice: 49.90, Subtotal: 99.80},
				{ProductID: "2", Quantity: 1, UnitPrice: 19.95, Subtotal: 19.95},
			},
			Total: 119.75,
		},
		{
			ID:       "2",
			ClientID: "2",
			AgencyID: "AGC2",
			Date:     seededAt,
			Status:   domain.StatusValidated,
			Lines: []domain.OrderLine{
				{ProductID: "3", Quantity: 3, UnitPrice: 39.90, Subtotal: 119.70},
				{ProductID: "4", Quantity: 2, UnitPrice: 24.90, Subtotal: 49.80},
			},
			Total: 169.50,
		},
	}
}

func discounts() []domain.Discount {
	return []domain.Discount{
		{
			ID:          "1",
			Name:        "Remise volume canard entier",
			Description: "Remise sur le volume pour le canard entier",
			Type:        domain.DiscountVolume,
			Value:       10,
			StartDate:   "2024-01-01",
			EndDate:     "2024-12-31",
			Conditions: &domain.DiscountConditions{
				MinimumQuantity:    intPtr(5),
				ApplicableProducts: []string{"1"},
			},
		},
		{
			ID:          "2",
			Name:        "Remise fidélité client premium",
			Description: "Remise fidélité pour les clients premium",
			Type:        domain.DiscountLoyalty,
			Value:       5,
			StartDate:   "2024-01-01",
			EndDate:     "2024-12-31",
			Conditions: &domain.DiscountConditions{
				ApplicableClients: []string{"1"},
			},
		},
		{
			ID:          "3",
			Name:        "Promotion magret de canard",
			Description: "Promotion spéciale sur les magrets",
			Type:        domain.DiscountPromotional,
			Value:       15,
			StartDate:   "2024-01-01",
			EndDate:     "2024-06-30",
			Conditions: &domain.DiscountConditions{
				ApplicableProducts: []string{"2"},
			},
		},
	}
}
