package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"orderdesk/internal/assignment"
	"orderdesk/internal/domain"
	agencysvc "orderdesk/internal/service/agency"
	"orderdesk/internal/wizard"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessions keeps one wizard per draft session id.
type sessions struct {
	mu      sync.Mutex
	build   func(id string) *wizard.Wizard
	wizards map[string]*wizard.Wizard
}

func newSessions(build func(id string) *wizard.Wizard) *sessions {
	return &sessions{build: build, wizards: map[string]*wizard.Wizard{}}
}

// open starts a new session.
func (s *sessions) open() *wizard.Wizard {
	id := uuid.New().String()
	w := s.build(id)
	s.mu.Lock()
	s.wizards[id] = w
	s.mu.Unlock()
	return w
}

// get returns the live wizard of id. A session that is not live is rebuilt from its
// stored draft while the registry lock is held; without a restorable draft it is not found.
func (s *sessions) get(ctx context.Context, id string) (*wizard.Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.wizards[id]; ok {
		return w, nil
	}
	w := s.build(id)
	if err := w.Mount(ctx); err != nil {
		return nil, err
	}
	if w.State().Client == nil {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	s.wizards[id] = w
	return w, nil
}

// remove drops a finished session.
func (s *sessions) remove(id string) {
	s.mu.Lock()
	delete(s.wizards, id)
	s.mu.Unlock()
}

type wizardView struct {
	Session   string `json:"session"`
	LastError string `json:"derniereErreur,omitempty"`
	wizard.State
}

func viewOf(w *wizard.Wizard) wizardView {
	st := w.State()
	return wizardView{Session: w.Session(), LastError: st.LastError(), State: st}
}

// respondWizard writes the wizard state, or the mapped error.
func respondWizard(c *gin.Context, w *wizard.Wizard, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(w))
}

// lookup resolves the session of the request.
func lookup(c *gin.Context, reg *sessions) (*wizard.Wizard, bool) {
	w, err := reg.get(c.Request.Context(), c.Param("session"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return w, true
}

func openDraftHandler(reg *sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		w := reg.open()
		if err := w.Open(c.Request.Context()); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, viewOf(w))
	}
}

func mountDraftHandler(reg *sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := lookup(c, reg)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, viewOf(w))
	}
}

type selectClientRequest struct {
	ClientID string `json:"clientId" binding:"required"`
}

func selectClientHandler(reg *sessions, clients ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req selectClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "clientId required")
			return
		}
		w, ok := lookup(c, reg)
		if !ok {
			return
		}
		client, err := clients.Get(c.Request.Context(), req.ClientID)
		if err != nil {
			writeError(c, err)
			return
		}
		respondWizard(c, w, w.SelectClient(c.Request.Context(), client))
	}
}

type selectProductsRequest struct {
	ProductIDs []string `json:"produitIds"`
}

func selectProductsHandler(reg *sessions, products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req selectProductsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json body")
			return
		}
		w, ok := lookup(c, reg)
		if !ok {
			return
		}
		selected := make([]domain.Product, 0, len(req.ProductIDs))
		for _, id := range req.ProductIDs {
			p, err := products.Get(c.Request.Context(), id)
			if err != nil {
				writeError(c, err)
				return
			}
			selected = append(selected, p)
		}
		respondWizard(c, w, w.SelectProducts(c.Request.Context(), selected))
	}
}

type enterLinesRequest struct {
	Lines []assignment.Line `json:"lignes"`
}

func enterLinesHandler(reg *sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req enterLinesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json body")
			return
		}
		w, ok := lookup(c, reg)
		if !ok {
			return
		}
		respondWizard(c, w, w.EnterLines(c.Request.Context(), req.Lines))
	}
}

func draftCandidatesHandler(reg *sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := lookup(c, reg)
		if !ok {
			return
		}
		candidates, proposed, found := w.Candidates()
		out := agencysvc.Candidates{Agencies: candidates, None: !found}
		if found {
			out.Proposed = &proposed
		}
		c.JSON(http.StatusOK, out)
	}
}

type assignAgencyRequest struct {
	AgencyID string `json:"agenceId" binding:"required"`
}

func assignAgencyHandler(reg *sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assignAgencyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "agenceId required")
			return
		}
		w, ok := lookup(c, reg)
		if !ok {
			return
		}
		respondWizard(c, w, w.AssignAgency(c.Request.Context(), req.AgencyID))
	}
}

type instructionsRequest struct {
	Instructions string `json:"instructions"`
}

func instructionsHandler(reg *sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req instructionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json body")
			return
		}
		w, ok := lookup(c, reg)
		if !ok {
			return
		}
		respondWizard(c, w, w.SetInstructions(c.Request.Context(), req.Instructions))
	}
}

func confirmHandler(reg *sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := lookup(c, reg)
		if !ok {
			return
		}
		respondWizard(c, w, w.Confirm(c.Request.Context()))
	}
}

func submitDraftHandler(reg *sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := lookup(c, reg)
		if !ok {
			return
		}
		created, err := w.Submit(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		reg.remove(w.Session())
		c.JSON(http.StatusCreated, created)
	}
}

func advanceHandler(reg *sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := lookup(c, reg)
		if !ok {
			return
		}
		respondWizard(c, w, w.Advance(c.Request.Context()))
	}
}

func retreatHandler(reg *sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := lookup(c, reg)
		if !ok {
			return
		}
		respondWizard(c, w, w.Retreat(c.Request.Context()))
	}
}
