package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadFile loads every row of a .csv file or of the first sheet of a .xlsx file.
func ReadFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadRows(f, filepath.Ext(path))
}

func ReadRows(r io.Reader, ext string) ([][]string, error) {
	switch strings.ToLower(ext) {
	case ".csv":
		cr := csv.NewReader(r)
		cr.TrimLeadingSpace = true
		cr.FieldsPerRecord = -1
		return cr.ReadAll()
	case ".xlsx":
		xf, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("excel file could not be read: %w", err)
		}
		defer xf.Close()

		sheets := xf.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("excel file has no sheets")
		}
		return xf.GetRows(sheets[0])
	default:
		return nil, fmt.Errorf("unsupported seed file type %q (use .csv or .xlsx)", ext)
	}
}

// table gives header-named access to data rows. Blank rows are dropped.
type table struct {
	columns map[string]int
	rows    [][]string
}

func newTable(rows [][]string, required ...string) (*table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty, a header row is required")
	}

	t := &table{columns: make(map[string]int)}
	for i, h := range rows[0] {
		t.columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := t.columns[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	for _, row := range rows[1:] {
		blank := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if !blank {
			t.rows = append(t.rows, row)
		}
	}
	return t, nil
}

func (t *table) get(row []string, col string) string {
	i, ok := t.columns[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
