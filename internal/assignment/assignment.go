// Package assignment picks the agencies able to ship an order.
package assignment

import (
	"sort"

	"orderdesk/internal/domain"
)

// Line is the part of an order line the selector needs.
type Line struct {
	ProductID string `json:"produitId"`
	Quantity  int    `json:"quantite"`
}

// FromOrderLines narrows priced order lines to selector lines.
func FromOrderLines(lines []domain.OrderLine) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, Line{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return out
}

// CanFulfill reports whether agency holds at least the requested quantity of every line.
// A product missing from the agency stock counts as zero.
func CanFulfill(agency domain.Agency, lines []Line) bool {
	for _, l := range lines {
		if agency.StockFor(l.ProductID) < l.Quantity {
			return false
		}
	}
	return true
}

// SelectCandidates returns the agencies that can fulfill every line, agencies in
// clientZone first. Relative order is otherwise kept. An empty result is valid.
func SelectCandidates(clientZone string, agencies []domain.Agency, lines []Line) []domain.Agency {
	out := make([]domain.Agency, 0, len(agencies))
	for _, a := range agencies {
		if CanFulfill(a, lines) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Zone == clientZone && out[j].Zone != clientZone
	})
	return out
}

// Propose returns the first candidate; ok is false when no agency qualifies.
func Propose(clientZone string, agencies []domain.Agency, lines []Line) (domain.Agency, bool) {
	candidates := SelectCandidates(clientZone, agencies, lines)
	if len(candidates) == 0 {
		return domain.Agency{}, false
	}
	return candidates[0], true
}
