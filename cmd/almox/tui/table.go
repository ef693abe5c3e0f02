package tui

import (
	"strconv"

	"github.com/almoxarifado/almox/internal/api"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// EmptyMessage is shown instead of the grid when the page has no records.
const EmptyMessage = "Nenhuma entrada encontrada."

// tableHeaders are the grid's column titles.
var tableHeaders = []string{"ID", "Data/Hora", "Quantidade", "Produto", "Categoria", "Prateleira", "Origem"}

// recordRow converts a record to grid cells.
func recordRow(r api.StockInRecord) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Timestamp.Display(),
		strconv.Itoa(r.QuantityAdded),
		orDash(r.ProductName),
		orDash(r.ProductCategory),
		orDash(r.ProductShelf),
		orDash(r.ProductOrigin),
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// RenderRecords draws records as a bordered grid no wider than width (0 for
// natural width).
func RenderRecords(records []api.StockInRecord, width int) string {
	if len(records) == 0 {
		return EmptyStyle.Render(EmptyMessage)
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = recordRow(r)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.String()
}
