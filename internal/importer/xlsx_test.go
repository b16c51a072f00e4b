package importer

import (
	"bytes"
	"testing"

	"patentq/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workbook builds an in-memory .xlsx from a grid of cell values.
func workbook(t *testing.T, grid [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range grid {
		for c, v := range row {
			if v == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", name, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadRows(t *testing.T) {
	t.Parallel()

	buf := workbook(t, [][]string{
		{"Title", " patent_NUMBER ", "Assignees", "Inventors"},
		{"Widget", "12185651", asgAc, invJD + "\n" + invKL},
		{"", "", "", invMN},
		{"", "", "", ""},
		{"Gadget", "12185652", "", ""},
	})

	rows, err := ReadRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Row{Number: 2, PatentNumber: "12185651", Assignees: asgAc, Inventors: invJD + "\n" + invKL}, rows[0])
	assert.Equal(t, 3, rows[1].Number)
	assert.Equal(t, "", rows[1].PatentNumber)
	assert.Equal(t, invMN, rows[1].Inventors)
	assert.Equal(t, 5, rows[2].Number)
	assert.Equal(t, "12185652", rows[2].PatentNumber)

	patents, warnings := Group(rows)
	assert.Empty(t, warnings)
	require.Len(t, patents, 2)
	assert.Len(t, patents[0].Inventors, 3)
}

func TestReadRows_MissingPatentColumn(t *testing.T) {
	t.Parallel()

	buf := workbook(t, [][]string{
		{"Number", "Inventors"},
		{"1", invJD},
	})
	_, err := ReadRows(buf)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestReadRows_NotAWorkbook(t *testing.T) {
	t.Parallel()

	_, err := ReadRows(bytes.NewBufferString("patent_number,inventors\n1,x\n"))
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRowsFromGrid_ShortRowsAndOptionalColumns(t *testing.T) {
	t.Parallel()

	rows, err := rowsFromGrid([][]string{
		{"Patent_number"},
		{"A", "ignored"},
		{},
		{"B"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].PatentNumber)
	assert.Empty(t, rows[0].Inventors)
	assert.Equal(t, 4, rows[1].Number)

	_, err = rowsFromGrid(nil)
	assert.Error(t, err)
}
