package client

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"orderdesk/internal/domain"
	"orderdesk/internal/seed"
	"orderdesk/internal/store"
)

func newService() (*Service, *store.Store) {
	st := store.New(seed.Load, nil)
	return New(st.Clients, nil), st
}

func validInput() CreateInput {
	return CreateInput{
		Name:    "Traiteur Dupont",
		Email:   "contact@dupont.fr",
		Phone:   "04 72 00 00 00",
		Address: "3 Quai Saint-Antoine, 69002 Lyon",
		Zone:    "Lyon",
	}
}

func TestCreate_DefaultsTerms(t *testing.T) {
	svc, _ := newService()

	c, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID != "4" {
		t.Fatalf("expected id 4, got %s", c.ID)
	}
	if c.Terms.FixedDiscount != nil || c.Terms.VolumeDiscount != nil {
		t.Fatalf("expected empty terms, got %+v", c.Terms)
	}
}

func TestCreate_MissingFields(t *testing.T) {
	cases := map[string]func(*CreateInput){
		"nom":              func(in *CreateInput) { in.Name = "" },
		"email":            func(in *CreateInput) { in.Email = "  " },
		"telephone":        func(in *CreateInput) { in.Phone = "" },
		"adresse":          func(in *CreateInput) { in.Address = "" },
		"zoneGeographique": func(in *CreateInput) { in.Zone = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			svc, st := newService()
			in := validInput()
			mutate(&in)

			_, err := svc.Create(context.Background(), in)
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != field+" required" {
				t.Fatalf("unexpected message %q", err.Error())
			}
			if st.Clients.Len() != 3 {
				t.Fatalf("expected no new client, got %d", st.Clients.Len())
			}
		})
	}
}

func TestList_Search(t *testing.T) {
	svc, _ := newService()

	if got := svc.List(context.Background(), ""); len(got) != 3 {
		t.Fatalf("expected 3 clients, got %d", len(got))
	}
	got := svc.List(context.Background(), "BISTROT")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("unexpected search result %+v", got)
	}
	got = svc.List(context.Background(), "magnifique.fr")
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("unexpected email search result %+v", got)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	c, err := svc.Update(ctx, "2", map[string]json.RawMessage{"zoneGeographique": json.RawMessage(`"Paris Ouest"`)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if c.Zone != "Paris Ouest" || c.Name != "Bistrot Chez Marcel" {
		t.Fatalf("unexpected client %+v", c)
	}

	if err := svc.Delete(ctx, "2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, "2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
