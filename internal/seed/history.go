package seed

import (
	"time"

	"orderdesk/internal/domain"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func delivered(id, clientID, agencyID, date, eta string, line domain.OrderLine) domain.Order {
	estimated := at(eta)
	return domain.Order{
		ID:       id,
		ClientID: clientID,
		AgencyID: agencyID,
		Date:     at(date),
		Lines:    []domain.OrderLine{line},
		Total:    line.Subtotal,
		Status:   domain.StatusDelivered,
		Delivery: &domain.DeliveryTerms{EstimatedDate: &estimated},
	}
}

// Archive returns delivered orders that predate the live order collection.
func Archive() []domain.Order {
	return []domain.Order{
		delivered("CMD001", "1", "AGC1", "2024-03-10T10:00:00Z", "2024-03-12T14:00:00Z",
			domain.OrderLine{ProductID: "P1", Quantity: 5, UnitPrice: 25.99, Discount: 5, Subtotal: 123.45}),
		delivered("CMD002", "1", "AGC1", "2024-03-05T15:30:00Z", "2024-03-07T14:00:00Z",
			domain.OrderLine{ProductID: "P2", Quantity: 3, UnitPrice: 45.99, Discount: 5, Subtotal: 131.07}),
		delivered("CMD003", "2", "AGC2", "2024-03-08T09:15:00Z", "2024-03-10T14:00:00Z",
			domain.OrderLine{ProductID: "P1", Quantity: 2, UnitPrice: 25.99, Discount: 3, Subtotal: 50.42}),
		delivered("CMD004", "3", "AGC1", "2024-03-09T16:45:00Z", "2024-03-11T14:00:00Z",
			domain.OrderLine{ProductID: "P3", Quantity: 10, UnitPrice: 15.99, Discount: 10, Subtotal: 143.91}),
	}
}
