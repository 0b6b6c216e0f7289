package seed

import (
	"testing"

	"orderdesk/internal/domain"
)

func TestLoad_ReturnsIndependentCopies(t *testing.T) {
	a := Load()
	a.Agencies[0].Stock["1"] = 0
	a.Clients[0].Name = "changed"

	b := Load()
	if b.Agencies[0].Stock["1"] != 30 || b.Clients[0].Name != "Restaurant Le Gourmet" {
		t.Fatalf("expected fresh fixtures, got %+v %+v", b.Agencies[0], b.Clients[0])
	}
}

func TestLoad_StockShapesAgree(t *testing.T) {
	d := Load()
	for _, a := range d.Agencies {
		for _, p := range d.Products {
			if p.StockAt(a.ID) != a.StockFor(p.ID) {
				t.Fatalf("stock mismatch for product %s at %s: %d vs %d", p.ID, a.ID, p.StockAt(a.ID), a.StockFor(p.ID))
			}
		}
	}
}

func TestWithProducts(t *testing.T) {
	extra := []domain.Product{{Name: "Oie", Price: 59.9, Category: "Volailles", Stock: map[string]int{"AGC2": 7, "AGC9": 1}}}

	d := WithProducts(extra)()

	if len(d.Products) != 5 {
		t.Fatalf("expected 5 products, got %d", len(d.Products))
	}
	added := d.Products[4]
	if added.ID != "5" {
		t.Fatalf("expected id 5, got %s", added.ID)
	}
	if d.Agencies[1].StockFor("5") != 7 || d.Agencies[0].StockFor("5") != 0 {
		t.Fatalf("expected stock mirrored to AGC2 only, got %v / %v", d.Agencies[0].Stock, d.Agencies[1].Stock)
	}
	if extra[0].ID != "" {
		t.Fatalf("expected input untouched, got id %s", extra[0].ID)
	}
}

func TestArchive(t *testing.T) {
	for _, o := range Archive() {
		if o.Status != domain.StatusDelivered {
			t.Fatalf("expected archived order %s delivered, got %s", o.ID, o.Status)
		}
		if o.Delivery == nil || o.Delivery.EstimatedDate == nil {
			t.Fatalf("expected estimated date on %s", o.ID)
		}
	}
}
