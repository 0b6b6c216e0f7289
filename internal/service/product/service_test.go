package product

import (
	"context"
	"encoding/json"
	"testing"

	"orderdesk/internal/domain"
	"orderdesk/internal/seed"
	"orderdesk/internal/store"
)

func newService() (*Service, *store.Store) {
	st := store.New(seed.Load, nil)
	return New(st.Products, seed.DefaultAgencyID, nil), st
}

func productIDs(ps []domain.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestBrowse(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if got := svc.Browse(ctx, BrowseQuery{}); len(got) != 4 {
		t.Fatalf("expected whole catalogue, got %v", productIDs(got))
	}
	got := svc.Browse(ctx, BrowseQuery{Category: "Volailles"})
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("unexpected category result %v", productIDs(got))
	}
	got = svc.Browse(ctx, BrowseQuery{Search: "MI-CUIT"})
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("unexpected search result %v", productIDs(got))
	}
	if got := svc.Browse(ctx, BrowseQuery{AgencyID: "AGC9"}); len(got) != 0 {
		t.Fatalf("expected nothing stocked at unknown agency, got %v", productIDs(got))
	}
}

func TestBrowse_DefaultAgencyStock(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.Update(ctx, "4", map[string]json.RawMessage{"stock": json.RawMessage(`{"AGC1":0,"AGC2":35}`)}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if got := svc.Browse(ctx, BrowseQuery{}); len(got) != 3 {
		t.Fatalf("expected out-of-stock product hidden, got %v", productIDs(got))
	}
	if got := svc.Browse(ctx, BrowseQuery{AgencyID: "AGC2"}); len(got) != 4 {
		t.Fatalf("expected product visible at AGC2, got %v", productIDs(got))
	}
}

func TestCategories(t *testing.T) {
	svc, _ := newService()

	got := svc.Categories(context.Background())
	want := []string{"Volailles", "Foie Gras", "Conserves"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()
	stock := map[string]int{"AGC1": 5}

	cases := map[string]CreateInput{
		"no name":      {Price: 10, Category: "Volailles", Stock: stock},
		"zero price":   {Name: "Oie", Price: 0, Category: "Volailles", Stock: stock},
		"no category":  {Name: "Oie", Price: 10, Stock: stock},
		"no stock map": {Name: "Oie", Price: 10, Category: "Volailles"},
	}
	for name, in := range cases {
		if _, err := svc.Create(ctx, in); !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
	if st.Products.Len() != 4 {
		t.Fatalf("expected no new product, got %d", st.Products.Len())
	}

	p, err := svc.Create(ctx, CreateInput{Name: "Oie", Price: 59.9, Category: "Volailles", Stock: stock})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID != "5" || p.TotalStock() != 5 {
		t.Fatalf("unexpected product %+v", p)
	}
}
