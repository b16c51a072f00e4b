// Package importer turns spreadsheet rows into patent records and upserts
// them into the patent store.
package importer

import (
	"context"
	"fmt"
	"strings"

	"patentq/internal/apperr"
	"patentq/internal/models"
	"patentq/internal/store"

	"go.uber.org/zap"
)

// Row is one worksheet row. Empty strings stand for blank cells.
type Row struct {
	Number       int // 1-based worksheet row, used in warnings
	PatentNumber string
	Assignees    string
	Inventors    string
}

// Warning records a cell that could not be fully parsed. The import carries
// on past warnings.
type Warning struct {
	Row          int    `json:"row"`
	PatentNumber string `json:"patent_number"`
	Field        string `json:"field"`
	Message      string `json:"message"`
}

// Result summarises an import.
type Result struct {
	Processed int       `json:"processed"`
	Warnings  []Warning `json:"warnings"`
}

// Importer groups rows into patents and upserts them.
type Importer struct {
	patents store.PatentStore
	log     *zap.SugaredLogger
}

func New(patents store.PatentStore, log *zap.SugaredLogger) *Importer {
	return &Importer{patents: patents, log: log}
}

// Group folds rows into patents. A row with a patent number opens a new
// patent; a row without one contributes its inventors to the open patent,
// and is ignored when none is open. Parsing never fails: malformed cells
// become warnings.
func Group(rows []Row) ([]*models.Patent, []Warning) {
	var (
		patents  []*models.Patent
		warnings []Warning
		current  *models.Patent
	)
	warn := func(r Row, number, field string, err error) {
		warnings = append(warnings, Warning{Row: r.Number, PatentNumber: number, Field: field, Message: err.Error()})
	}

	for _, r := range rows {
		number := strings.TrimSpace(r.PatentNumber)
		if number != "" {
			if current != nil {
				patents = append(patents, current)
			}
			current = &models.Patent{PatentNumber: number, Inventors: []models.Inventor{}}

			assignee, err := ParseAssignee(r.Assignees)
			if err != nil {
				warn(r, number, "Assignees", err)
			}
			current.Assignee = assignee
		} else if current == nil {
			continue
		}

		inventors, problems := ParseInventors(r.Inventors)
		for _, p := range problems {
			warn(r, current.PatentNumber, "Inventors", p)
		}
		current.Inventors = append(current.Inventors, inventors...)
	}
	if current != nil {
		patents = append(patents, current)
	}
	return patents, warnings
}

// Import groups rows and upserts every patent in order. A store failure
// stops the import; patents saved before it stay saved.
func (im *Importer) Import(ctx context.Context, rows []Row) (*Result, error) {
	patents, warnings := Group(rows)
	for _, w := range warnings {
		im.log.Warnw("skipping malformed cell", "row", w.Row, "patent", w.PatentNumber, "field", w.Field, "reason", w.Message)
	}

	res := &Result{Warnings: warnings}
	if res.Warnings == nil {
		res.Warnings = []Warning{}
	}
	for _, p := range patents {
		if err := im.patents.Upsert(ctx, p); err != nil {
			im.log.Errorw("saving patent failed", "patent", p.PatentNumber, "saved", res.Processed, "error", err)
			return res, apperr.Dependency(
				fmt.Sprintf("save patent %s after %d saved", p.PatentNumber, res.Processed), err)
		}
		res.Processed++
		im.log.Debugw("saved patent", "patent", p.PatentNumber, "inventors", len(p.Inventors))
	}
	im.log.Infow("import finished", "processed", res.Processed, "warnings", len(res.Warnings))
	return res, nil
}
