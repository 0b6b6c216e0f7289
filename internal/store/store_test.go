package store

import (
	"encoding/json"
	"testing"

	"orderdesk/internal/domain"
	"orderdesk/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return New(seed.Load, nil)
}

func TestStore_SeededCollections(t *testing.T) {
	s := newTestStore()

	assert.Equal(t, 3, s.Clients.Len())
	assert.Equal(t, 4, s.Products.Len())
	assert.Equal(t, 2, s.Agencies.Len())
	assert.Equal(t, 2, s.Orders.Len())
	assert.Equal(t, 3, s.Discounts.Len())
}

func TestCollection_CreateAssignsNextID(t *testing.T) {
	s := newTestStore()

	c := s.Clients.Create(domain.Client{Name: "Traiteur Dupont", Zone: "Lyon"})
	assert.Equal(t, "4", c.ID)

	a := s.Agencies.Create(domain.Agency{Name: "Agence Lyon", Zone: "Lyon"})
	assert.Equal(t, "AGC3", a.ID)
}

func TestCollection_IDNeverReusedAfterDelete(t *testing.T) {
	s := newTestStore()

	first := s.Clients.Create(domain.Client{Name: "A"})
	_, err := s.Clients.Delete(first.ID)
	require.NoError(t, err)

	second := s.Clients.Create(domain.Client{Name: "B"})
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "5", second.ID)
}

func TestCollection_UpdateShallowMerge(t *testing.T) {
	s := newTestStore()

	patch := map[string]json.RawMessage{
		"id":                     json.RawMessage(`"999"`),
		"telephone":              json.RawMessage(`"04 00 00 00 00"`),
		"conditionsCommerciales": json.RawMessage(`{"remiseVolume":4}`),
	}
	updated, err := s.Clients.Update("1", patch)
	require.NoError(t, err)

	assert.Equal(t, "1", updated.ID)
	assert.Equal(t, "04 00 00 00 00", updated.Phone)
	assert.Equal(t, "Restaurant Le Gourmet", updated.Name)
	// nested object is replaced wholesale, so the fixed discount is gone
	assert.Nil(t, updated.Terms.FixedDiscount)
	require.NotNil(t, updated.Terms.VolumeDiscount)
	assert.Equal(t, 4.0, *updated.Terms.VolumeDiscount)

	stored, err := s.Clients.Get("1")
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestCollection_UpdateRejectsBadPatch(t *testing.T) {
	s := newTestStore()

	_, err := s.Products.Update("1", map[string]json.RawMessage{"prix": json.RawMessage(`"cher"`)})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	p, err := s.Products.Get("1")
	require.NoError(t, err)
	assert.Equal(t, 49.90, p.Price)
}

func TestCollection_NotFound(t *testing.T) {
	s := newTestStore()

	_, err := s.Orders.Get("42")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Orders.Update("42", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Orders.Delete("42")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Orders.Replace(domain.Order{ID: "42"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollection_DeleteDoesNotCascade(t *testing.T) {
	s := newTestStore()

	removed, err := s.Clients.Delete("1")
	require.NoError(t, err)
	assert.Equal(t, "Restaurant Le Gourmet", removed.Name)

	o, err := s.Orders.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "1", o.ClientID)
}

func TestCollection_ReturnsCopies(t *testing.T) {
	s := newTestStore()

	p, err := s.Products.Get("1")
	require.NoError(t, err)
	p.Stock["AGC1"] = 0

	again, err := s.Products.Get("1")
	require.NoError(t, err)
	assert.Equal(t, 30, again.Stock["AGC1"])
}

func TestStore_Reset(t *testing.T) {
	s := newTestStore()

	s.Clients.Create(domain.Client{Name: "X"})
	_, err := s.Products.Delete("2")
	require.NoError(t, err)

	s.Reset()

	assert.Equal(t, 3, s.Clients.Len())
	assert.Equal(t, 4, s.Products.Len())
	c := s.Clients.Create(domain.Client{Name: "Y"})
	assert.Equal(t, "4", c.ID)
}

func TestTrailingNumber(t *testing.T) {
	assert.Equal(t, 12, trailingNumber("AGC12"))
	assert.Equal(t, 3, trailingNumber("3"))
	assert.Equal(t, 0, trailingNumber("CMD"))
	assert.Equal(t, 7, trailingNumber("CMD007"))
}
