// Package importer reads product spreadsheets for bulk import. It checks a
// file locally the same way the backend parses it, so problems show up
// before the upload, and then hands the file to the import endpoint.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFile is returned for anything other than .xlsx or .csv.
var ErrUnsupportedFile = errors.New("unsupported file type (want .xlsx or .csv)")

// Columns is the expected column order; the first row is a header.
var Columns = []string{
	"sku", "nome", "categoria", "quantidade", "unidade",
	"estoqueMinimo", "localizacao", "origem", "observacao",
}

// ProductRow is one parsed data row.
type ProductRow struct {
	Line         int // 1-based spreadsheet row
	SKU          string
	Name         string
	Category     string
	Quantity     int
	Unit         string
	MinimumStock int
	Location     string
	Origin       string
	Observation  string
}

// Preview is the result of reading a spreadsheet locally.
type Preview struct {
	Rows   []ProductRow
	Errors []string // "Linha N: ..." per rejected row
}

// Valid reports whether every data row parsed.
func (p Preview) Valid() bool {
	return len(p.Errors) == 0
}

// ReadRows returns the raw cell grid of the first sheet (xlsx) or of the file
// (csv), header row included.
func ReadRows(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", filepath.Base(filename), err)
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s has no sheets", filepath.Base(filename))
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
		}
		return rows, nil
	case ".csv":
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		rows, err := cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filepath.Base(filename), err)
		}
		return rows, nil
	}
	return nil, fmt.Errorf("%s: %w", filepath.Base(filename), ErrUnsupportedFile)
}

// Parse turns a cell grid into product rows. The header row is skipped and
// blank rows are ignored; a row that fails is reported and the rest go on.
func Parse(rows [][]string) Preview {
	var p Preview
	for i := 1; i < len(rows); i++ {
		line := i + 1
		cells := rows[i]
		if blank(cells) {
			continue
		}
		row, err := parseRow(line, cells)
		if err != nil {
			p.Errors = append(p.Errors, fmt.Sprintf("Linha %d: %s", line, err))
			continue
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}

// Read is ReadRows followed by Parse.
func Read(filename string, r io.Reader) (Preview, error) {
	rows, err := ReadRows(filename, r)
	if err != nil {
		return Preview{}, err
	}
	return Parse(rows), nil
}

func parseRow(line int, cells []string) (ProductRow, error) {
	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	qty, err := parseInt(cell(3))
	if err != nil {
		return ProductRow{}, fmt.Errorf("quantidade inválida %q", cell(3))
	}
	minStock, err := parseInt(cell(5))
	if err != nil {
		return ProductRow{}, fmt.Errorf("estoque mínimo inválido %q", cell(5))
	}

	return ProductRow{
		Line:         line,
		SKU:          cell(0),
		Name:         cell(1),
		Category:     cell(2),
		Quantity:     qty,
		Unit:         cell(4),
		MinimumStock: minStock,
		Location:     cell(6),
		Origin:       cell(7),
		Observation:  cell(8),
	}, nil
}

// parseInt accepts integers and whole-valued decimals such as "12.0", which
// is how spreadsheet numbers often come out.
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a whole number: %s", s)
	}
	return int(f), nil
}

// numericColumns are the quantidade and estoqueMinimo positions.
var numericColumns = map[int]bool{3: true, 5: true}

// ToXLSX writes rows into the first sheet of a new workbook, the only format
// the import endpoint opens. Whole numbers in the numeric columns are stored
// as numbers; every other cell is stored as text.
func ToXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, cells := range rows {
		values := make([]any, len(cells))
		for j, c := range cells {
			values[j] = strings.TrimSpace(c)
			if i > 0 && numericColumns[j] {
				if n, err := parseInt(strings.TrimSpace(c)); err == nil {
					values[j] = n
				}
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, axis, &values); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
