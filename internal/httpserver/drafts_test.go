package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"orderdesk/internal/domain"
	"orderdesk/internal/repository/draft"
	"orderdesk/internal/seed"
	"orderdesk/internal/store"
	"orderdesk/internal/wizard"
)

type countingDrafts struct {
	draft.Repository
	loads atomic.Int32
}

func (c *countingDrafts) Load(ctx context.Context, session, slot string) (json.RawMessage, bool, error) {
	c.loads.Add(1)
	return c.Repository.Load(ctx, session, slot)
}

func newTestSessions(t *testing.T, drafts draft.Repository) *sessions {
	t.Helper()
	st := store.New(seed.Load, nil)
	return newSessions(func(id string) *wizard.Wizard {
		return wizard.New(wizard.Options{Session: id, Agencies: st.Agencies, Drafts: drafts})
	})
}

func TestSessions_RestoresOnceUnderConcurrency(t *testing.T) {
	drafts := &countingDrafts{Repository: draft.NewMemory()}
	ctx := context.Background()
	payload := json.RawMessage(`{"etape":2,"client":{"id":"2"},"lignesCommande":[],"erreurs":[]}`)
	if err := drafts.Save(ctx, "shared", draft.Slot, payload); err != nil {
		t.Fatalf("Save: %v", err)
	}
	reg := newTestSessions(t, drafts)

	const callers = 8
	got := make([]*wizard.Wizard, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w, err := reg.get(ctx, "shared")
			if err != nil {
				t.Errorf("get: %v", err)
				return
			}
			got[i] = w
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if got[i] != got[0] {
			t.Fatalf("expected every caller to share one wizard")
		}
	}
	if n := drafts.loads.Load(); n != 1 {
		t.Fatalf("expected one draft load, got %d", n)
	}
}

func TestSessions_UnknownAndRemoved(t *testing.T) {
	reg := newTestSessions(t, draft.NewMemory())
	ctx := context.Background()

	if _, err := reg.get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(reg.wizards) != 0 {
		t.Fatalf("expected unknown session not to be kept, got %d", len(reg.wizards))
	}

	w := reg.open()
	if _, err := reg.get(ctx, w.Session()); err != nil {
		t.Fatalf("expected opened session to be live: %v", err)
	}
	reg.remove(w.Session())
	if _, err := reg.get(ctx, w.Session()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected removed session to be gone, got %v", err)
	}
}
