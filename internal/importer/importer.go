package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"orderdesk/internal/domain"
)

const stockPrefix = "stock."

// CSVImporter reads a product catalogue with the columns
// nom, description, prix, categorie, image and one stock.<agencyId> column per agency.
type CSVImporter struct {
	reader *csv.Reader
}

func NewCSVImporter(r io.Reader) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{reader: csvr}
}

// Run parses every row into a product without id. Blank rows are skipped.
func (i *CSVImporter) Run(ctx context.Context) ([]domain.Product, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["nom"]; !ok {
		return nil, errors.New("missing nom column")
	}

	var products []domain.Product
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return products, err
		}
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return products, fmt.Errorf("read row %d: %w", line, err)
		}
		if blank(record) {
			continue
		}
		p, err := parseRow(record, index)
		if err != nil {
			return products, fmt.Errorf("row %d: %w", line, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	p := domain.Product{
		Name:        pick(record, index, "nom"),
		Description: pick(record, index, "description"),
		Category:    pick(record, index, "categorie"),
		Image:       pick(record, index, "image"),
		Stock:       map[string]int{},
	}
	if p.Name == "" || p.Category == "" {
		return p, fmt.Errorf("invalid product row (missing nom or categorie) for %q", p.Name)
	}
	price, err := strconv.ParseFloat(strings.Replace(pick(record, index, "prix"), ",", ".", 1), 64)
	if err != nil || price <= 0 {
		return p, fmt.Errorf("invalid prix for %q", p.Name)
	}
	p.Price = price

	for col, pos := range index {
		if !strings.HasPrefix(col, stockPrefix) || pos >= len(record) {
			continue
		}
		raw := strings.TrimSpace(record[pos])
		if raw == "" {
			continue
		}
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 0 {
			return p, fmt.Errorf("invalid %s for %q: %s", col, p.Name, raw)
		}
		p.Stock[strings.TrimPrefix(col, stockPrefix)] = qty
	}
	return p, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
