package agency

import (
	"context"
	"errors"
	"testing"

	"orderdesk/internal/assignment"
	"orderdesk/internal/domain"
	"orderdesk/internal/seed"
	"orderdesk/internal/store"
)

func newService() (*Service, *store.Store) {
	st := store.New(seed.Load, nil)
	return New(st.Agencies, st.Clients, seed.DefaultAgencyID, nil), st
}

func TestCreate(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{Name: "Agence Lyon", Address: "1 Rue de Lyon", Zone: "Lyon"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID != "AGC3" {
		t.Fatalf("expected AGC3, got %s", a.ID)
	}
	if a.Stock == nil || len(a.Stock) != 0 {
		t.Fatalf("expected empty stock map, got %v", a.Stock)
	}

	if _, err := svc.Create(ctx, CreateInput{Name: "Agence Nice", Address: "2 Promenade"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if st.Agencies.Len() != 3 {
		t.Fatalf("expected 3 agencies, got %d", st.Agencies.Len())
	}
}

func TestCandidates_ByClientZone(t *testing.T) {
	svc, _ := newService()

	got, err := svc.Candidates(context.Background(), CandidatesInput{
		ClientID: "3",
		Lines:    []assignment.Line{{ProductID: "2", Quantity: 10}},
	})
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(got.Agencies) != 2 || got.Agencies[0].ID != "AGC2" {
		t.Fatalf("expected Paris Ouest agency first, got %+v", got.Agencies)
	}
	if got.Proposed == nil || got.Proposed.ID != "AGC2" || got.None {
		t.Fatalf("unexpected proposal %+v", got)
	}
}

func TestCandidates_NoneIsNotAnError(t *testing.T) {
	svc, _ := newService()

	got, err := svc.Candidates(context.Background(), CandidatesInput{
		Zone:  "Paris Centre",
		Lines: []assignment.Line{{ProductID: "3", Quantity: 16}},
	})
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if !got.None || got.Proposed != nil || len(got.Agencies) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestCandidates_Errors(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.Candidates(ctx, CandidatesInput{Zone: "Paris"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err := svc.Candidates(ctx, CandidatesInput{ClientID: "42", Lines: []assignment.Line{{ProductID: "1", Quantity: 1}}})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDefaultAgency(t *testing.T) {
	svc, _ := newService()
	if svc.DefaultAgency() != "AGC1" {
		t.Fatalf("expected AGC1, got %s", svc.DefaultAgency())
	}
}
