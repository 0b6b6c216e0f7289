package discount

import (
	"context"
	"errors"
	"testing"
	"time"

	"orderdesk/internal/assignment"
	"orderdesk/internal/domain"
	"orderdesk/internal/seed"
	"orderdesk/internal/store"
)

func newService() (*Service, *store.Store) {
	st := store.New(seed.Load, nil)
	return New(st.Discounts, st.Clients, st.Products, nil), st
}

func TestList_ActiveOnly(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	july := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	if got := svc.List(ctx, false, july); len(got) != 3 {
		t.Fatalf("expected 3 discounts, got %d", len(got))
	}
	got := svc.List(ctx, true, july)
	if len(got) != 2 {
		t.Fatalf("expected summer promotion expired, got %+v", got)
	}
	if got := svc.List(ctx, true, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)); len(got) != 0 {
		t.Fatalf("expected none active in 2025, got %d", len(got))
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()
	valid := CreateInput{
		Name:        "Remise rentrée",
		Description: "Remise de septembre",
		Type:        domain.DiscountPromotional,
		Value:       8,
		StartDate:   "2024-09-01",
		EndDate:     "2024-09-30",
	}

	bad := []func(CreateInput) CreateInput{
		func(in CreateInput) CreateInput { in.Name = ""; return in },
		func(in CreateInput) CreateInput { in.Description = ""; return in },
		func(in CreateInput) CreateInput { in.Type = "soldes"; return in },
		func(in CreateInput) CreateInput { in.Value = 0; return in },
		func(in CreateInput) CreateInput { in.StartDate = "01/09/2024"; return in },
		func(in CreateInput) CreateInput { in.EndDate = "2024-08-01"; return in },
	}
	for i, mutate := range bad {
		if _, err := svc.Create(ctx, mutate(valid)); !domain.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
	if st.Discounts.Len() != 3 {
		t.Fatalf("expected no new discount, got %d", st.Discounts.Len())
	}

	d, err := svc.Create(ctx, valid)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.ID != "4" {
		t.Fatalf("expected id 4, got %s", d.ID)
	}
}

func TestQuote(t *testing.T) {
	svc, _ := newService()

	q, err := svc.Quote(context.Background(), QuoteInput{
		ClientID: "1",
		Lines: []assignment.Line{
			{ProductID: "2", Quantity: 10},
			{ProductID: "4", Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if len(q.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(q.Lines))
	}
	// 10 × 19.95 × 0.93 = 185.535
	if q.Lines[0].Discount != 7 || q.Lines[0].Subtotal != 185.53 {
		t.Fatalf("unexpected first line %+v", q.Lines[0])
	}
	// 2 × 24.90 × 0.95 = 47.31
	if q.Lines[1].Discount != 5 || q.Lines[1].Subtotal != 47.31 {
		t.Fatalf("unexpected second line %+v", q.Lines[1])
	}
	if q.Total != 232.84 {
		t.Fatalf("expected total 232.84, got %v", q.Total)
	}
}

func TestQuote_Errors(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.Quote(ctx, QuoteInput{ClientID: "9"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for client, got %v", err)
	}
	_, err := svc.Quote(ctx, QuoteInput{Lines: []assignment.Line{{ProductID: "9", Quantity: 1}}})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for product, got %v", err)
	}
	q, err := svc.Quote(ctx, QuoteInput{Lines: []assignment.Line{{ProductID: "1", Quantity: 1}}})
	if err != nil || q.Lines[0].Discount != 0 || q.Total != 49.9 {
		t.Fatalf("expected undiscounted quote, got %+v err=%v", q, err)
	}
}
