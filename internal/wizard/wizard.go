// Package wizard drives the six-stage order creation flow for one session.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"orderdesk/internal/assignment"
	"orderdesk/internal/domain"
	"orderdesk/internal/pricing"
	"orderdesk/internal/repository/draft"
	"orderdesk/internal/service/order"

	"go.uber.org/zap"
)

// ErrWrongStage is returned when an operation is called outside its stage.
var ErrWrongStage = errors.New("operation not allowed at this stage")

// Agencies resolves agencies for candidate selection and assignment.
type Agencies interface {
	List() []domain.Agency
	Get(id string) (domain.Agency, error)
}

// Submitter creates the final order.
type Submitter interface {
	Submit(ctx context.Context, in order.SubmitInput) (domain.Order, error)
}

type Options struct {
	Session string
	// Privileged callers skip manual agency selection; DefaultAgency is assigned instead.
	Privileged    bool
	DefaultAgency string
	Agencies      Agencies
	Orders        Submitter
	Drafts        draft.Repository
	Logger        *zap.Logger
}

// Wizard holds the state of one order in progress. Methods are safe for concurrent use.
type Wizard struct {
	mu      sync.Mutex
	opts    Options
	state   State
	mounted bool
	logger  *zap.Logger
}

func New(opts Options) *Wizard {
	if opts.Drafts == nil {
		opts.Drafts = draft.NewMemory()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Wizard{
		opts:   opts,
		state:  initialState(),
		logger: logger.With(zap.String("session", opts.Session)),
	}
}

// Session returns the session id the draft slot is keyed by.
func (w *Wizard) Session() string {
	return w.opts.Session
}

// State returns a copy of the current state.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.clone()
}

// LastError returns the newest recorded error.
func (w *Wizard) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.LastError()
}

// MountOnce clears the draft slot. Only the first call per wizard has an effect.
func (w *Wizard) MountOnce(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mounted {
		return nil
	}
	w.mounted = true
	if err := w.opts.Drafts.Clear(ctx, w.opts.Session, draft.Slot); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

// Mount restores the state from the draft slot when the stored draft has a client.
func (w *Wizard) Mount(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	payload, ok, err := w.opts.Drafts.Load(ctx, w.opts.Session, draft.Slot)
	if err != nil {
		return fmt.Errorf("load draft: %w", err)
	}
	if !ok {
		return nil
	}
	var saved State
	if err := json.Unmarshal(payload, &saved); err != nil {
		w.logger.Warn("wizard: unreadable draft", zap.Error(err))
		return nil
	}
	if saved.Client == nil {
		return nil
	}
	if saved.Stage < StageClientSelection || saved.Stage > StageFinalConfirmation {
		saved.Stage = StageClientSelection
	}
	if saved.Lines == nil {
		saved.Lines = []domain.OrderLine{}
	}
	if saved.Errors == nil {
		saved.Errors = []string{}
	}
	w.state = saved
	w.logger.Debug("wizard: draft restored", zap.Stringer("stage", saved.Stage))
	return nil
}

// Open runs the first-mount clear and then the restore, in that order.
func (w *Wizard) Open(ctx context.Context) error {
	if err := w.MountOnce(ctx); err != nil {
		return err
	}
	return w.Mount(ctx)
}

// Advance moves to the next stage; it does nothing at the last stage.
func (w *Wizard) Advance(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.advance(ctx); err != nil {
		return err
	}
	w.save(ctx)
	return nil
}

// Retreat moves to the previous stage; it does nothing at the first stage.
func (w *Wizard) Retreat(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Stage <= StageClientSelection {
		return nil
	}
	prev := w.state.Stage - 1
	if prev == StageAgencyAssignment && w.opts.Privileged {
		prev--
	}
	w.state.Stage = prev
	w.save(ctx)
	return nil
}

// SelectClient records the client and moves to product selection.
func (w *Wizard) SelectClient(ctx context.Context, client domain.Client) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(ctx, StageClientSelection); err != nil {
		return err
	}
	w.state.Client = &client
	return w.advanceAndSave(ctx)
}

// SelectProducts records the products to order and moves to line entry.
func (w *Wizard) SelectProducts(ctx context.Context, products []domain.Product) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(ctx, StageProductSelection); err != nil {
		return err
	}
	if len(products) == 0 {
		return w.fail(ctx, domain.Invalid("at least one product required"))
	}
	w.state.Products = append([]domain.Product(nil), products...)
	return w.advanceAndSave(ctx)
}

// EnterLines prices a line for every selected product with a positive quantity
// and moves on. Quantities for products that were not selected are rejected.
func (w *Wizard) EnterLines(ctx context.Context, quantities []assignment.Line) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(ctx, StageLineEntry); err != nil {
		return err
	}
	lines := make([]domain.OrderLine, 0, len(quantities))
	for _, q := range quantities {
		p, ok := w.state.product(q.ProductID)
		if !ok {
			return w.fail(ctx, domain.Invalid(fmt.Sprintf("product %s not selected", q.ProductID)))
		}
		if q.Quantity <= 0 {
			continue
		}
		lines = append(lines, pricing.PriceLine(w.state.Client, p, q.Quantity))
	}
	if len(lines) == 0 {
		return w.fail(ctx, domain.Invalid("at least one line with a positive quantity required"))
	}
	w.state.Lines = lines
	return w.advanceAndSave(ctx)
}

// Candidates lists the agencies able to ship the current lines, client zone first.
// proposed is the first candidate; ok is false when none qualifies.
func (w *Wizard) Candidates() (candidates []domain.Agency, proposed domain.Agency, ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	zone := ""
	if w.state.Client != nil {
		zone = w.state.Client.Zone
	}
	candidates = assignment.SelectCandidates(zone, w.opts.Agencies.List(), assignment.FromOrderLines(w.state.Lines))
	if len(candidates) == 0 {
		return candidates, domain.Agency{}, false
	}
	return candidates, candidates[0], true
}

// AssignAgency records the agency shipping the order and moves to the recap.
func (w *Wizard) AssignAgency(ctx context.Context, agencyID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(ctx, StageAgencyAssignment); err != nil {
		return err
	}
	a, err := w.opts.Agencies.Get(agencyID)
	if err != nil {
		return w.fail(ctx, fmt.Errorf("agency %s: %w", agencyID, err))
	}
	if !assignment.CanFulfill(a, assignment.FromOrderLines(w.state.Lines)) {
		return w.fail(ctx, fmt.Errorf("agency %s: %w", agencyID, domain.ErrNoAgencyAvailable))
	}
	w.state.Agency = &a
	return w.advanceAndSave(ctx)
}

// SetInstructions records free-text delivery instructions during the recap.
func (w *Wizard) SetInstructions(ctx context.Context, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(ctx, StageRecap); err != nil {
		return err
	}
	w.state.Instructions = strings.TrimSpace(text)
	w.save(ctx)
	return nil
}

// Confirm accepts the recap and moves to final confirmation.
func (w *Wizard) Confirm(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(ctx, StageRecap); err != nil {
		return err
	}
	return w.advanceAndSave(ctx)
}

// Submit creates the order. On success the draft slot is cleared and the wizard starts over;
// on failure the error is recorded and the state is kept.
func (w *Wizard) Submit(ctx context.Context) (domain.Order, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.expect(ctx, StageFinalConfirmation); err != nil {
		return domain.Order{}, err
	}
	created, err := w.opts.Orders.Submit(ctx, order.SubmitInput{
		Client:       w.state.Client,
		Agency:       w.state.Agency,
		Lines:        w.state.Lines,
		Instructions: w.state.Instructions,
	})
	if err != nil {
		return domain.Order{}, w.fail(ctx, err)
	}
	if err := w.opts.Drafts.Clear(ctx, w.opts.Session, draft.Slot); err != nil {
		w.logger.Error("wizard: clear draft after submit", zap.Error(err))
	}
	w.state = initialState()
	w.logger.Info("wizard: order submitted", zap.String("order", created.ID))
	return created, nil
}

func (w *Wizard) advance(ctx context.Context) error {
	if w.state.Stage >= StageFinalConfirmation {
		return nil
	}
	next := w.state.Stage + 1
	if next == StageAgencyAssignment && w.opts.Privileged {
		a, err := w.opts.Agencies.Get(w.opts.DefaultAgency)
		if err != nil {
			return w.fail(ctx, fmt.Errorf("default agency %s: %w", w.opts.DefaultAgency, err))
		}
		w.state.Agency = &a
		next++
	}
	w.state.Stage = next
	return nil
}

func (w *Wizard) advanceAndSave(ctx context.Context) error {
	if err := w.advance(ctx); err != nil {
		return err
	}
	w.save(ctx)
	return nil
}

func (w *Wizard) expect(ctx context.Context, stage Stage) error {
	if w.state.Stage != stage {
		return w.fail(ctx, fmt.Errorf("%w: at %s, expected %s", ErrWrongStage, w.state.Stage, stage))
	}
	return nil
}

// fail records err in the state history and returns it.
func (w *Wizard) fail(ctx context.Context, err error) error {
	w.state.Errors = append(w.state.Errors, err.Error())
	w.save(ctx)
	return err
}

func (w *Wizard) save(ctx context.Context) {
	if !w.state.Stage.persisted() {
		return
	}
	payload, err := json.Marshal(w.state)
	if err != nil {
		w.logger.Error("wizard: encode draft", zap.Error(err))
		return
	}
	if err := w.opts.Drafts.Save(ctx, w.opts.Session, draft.Slot, payload); err != nil {
		w.logger.Error("wizard: save draft", zap.Error(err))
	}
}
