package importer

import (
	"fmt"
	"io"
	"strings"

	"patentq/internal/apperr"

	"github.com/xuri/excelize/v2"
)

// Header names of the columns the importer reads. Matching ignores case and
// surrounding whitespace.
const (
	ColPatentNumber = "Patent_number"
	ColAssignees    = "Assignees"
	ColInventors    = "Inventors"
)

// ReadRows reads the first worksheet of an .xlsx workbook. The first row is
// the header; fully blank rows are skipped.
func ReadRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "File is not a readable .xlsx workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.Validation("Workbook has no sheets")
	}
	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Could not read worksheet", err)
	}
	return rowsFromGrid(grid)
}

func rowsFromGrid(grid [][]string) ([]Row, error) {
	if len(grid) == 0 {
		return nil, apperr.Validation("Worksheet is empty")
	}

	cols := map[string]int{}
	for i, h := range grid[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := cols[key]; !seen {
			cols[key] = i
		}
	}
	numCol, ok := cols[strings.ToLower(ColPatentNumber)]
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("Missing %s column", ColPatentNumber))
	}
	asgCol, hasAsg := cols[strings.ToLower(ColAssignees)]
	invCol, hasInv := cols[strings.ToLower(ColInventors)]

	cell := func(row []string, idx int, present bool) string {
		if !present || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	rows := make([]Row, 0, len(grid)-1)
	for i, raw := range grid[1:] {
		if blank(raw) {
			continue
		}
		rows = append(rows, Row{
			Number:       i + 2,
			PatentNumber: strings.TrimSpace(cell(raw, numCol, true)),
			Assignees:    cell(raw, asgCol, hasAsg),
			Inventors:    cell(raw, invCol, hasInv),
		})
	}
	return rows, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
