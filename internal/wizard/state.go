package wizard

import (
	"fmt"

	"orderdesk/internal/domain"
)

// Stage is a step of the order wizard, 1 to 6.
type Stage int

const (
	StageClientSelection Stage = iota + 1
	StageProductSelection
	StageLineEntry
	StageAgencyAssignment
	StageRecap
	StageFinalConfirmation
)

var stageNames = map[Stage]string{
	StageClientSelection:   "client",
	StageProductSelection:  "produits",
	StageLineEntry:         "lignes",
	StageAgencyAssignment:  "agence",
	StageRecap:             "recapitulatif",
	StageFinalConfirmation: "validation",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// persisted reports whether a state at this stage is written to the draft slot.
func (s Stage) persisted() bool {
	return s > StageClientSelection && s < StageFinalConfirmation
}

// State is everything the wizard carries between stages. It is also the draft payload.
type State struct {
	Stage        Stage              `json:"etape"`
	Client       *domain.Client     `json:"client,omitempty"`
	Products     []domain.Product   `json:"produitsFiltres,omitempty"`
	Lines        []domain.OrderLine `json:"lignesCommande"`
	Agency       *domain.Agency     `json:"agence,omitempty"`
	Instructions string             `json:"instructions,omitempty"`
	Errors       []string           `json:"erreurs"`
}

func initialState() State {
	return State{
		Stage:  StageClientSelection,
		Lines:  []domain.OrderLine{},
		Errors: []string{},
	}
}

// LastError returns the newest recorded error, or "".
func (s State) LastError() string {
	if len(s.Errors) == 0 {
		return ""
	}
	return s.Errors[len(s.Errors)-1]
}

func (s State) product(id string) (domain.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s State) clone() State {
	out := s
	out.Products = append([]domain.Product(nil), s.Products...)
	out.Lines = append([]domain.OrderLine{}, s.Lines...)
	out.Errors = append([]string{}, s.Errors...)
	if s.Client != nil {
		c := *s.Client
		out.Client = &c
	}
	if s.Agency != nil {
		a := *s.Agency
		out.Agency = &a
	}
	return out
}
