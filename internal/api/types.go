package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// StockInRecord is one entrada as returned by the list endpoint.
type StockInRecord struct {
	ID              int64     `json:"id"`
	Timestamp       Timestamp `json:"dataHora"`
	QuantityAdded   int       `json:"quantidadeAdicionada"`
	ProductName     string    `json:"produtoNome"`
	ProductCategory string    `json:"produtoCategoria"`
	ProductShelf    string    `json:"produtoPrateleira"`
	ProductOrigin   string    `json:"produtoOrigem"`
}

// EntradaPage is the paginated list response. Both fields may be absent.
type EntradaPage struct {
	Content    []StockInRecord `json:"content"`
	TotalPages int             `json:"totalPages"`
}

// ProductRef is a catalog product as offered in the product dropdown.
type ProductRef struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

type productPage struct {
	Content []ProductRef `json:"content"`
}

// ProductKey references a product by id in write payloads.
type ProductKey struct {
	ID int64 `json:"id"`
}

// CreateEntradaRequest is the POST /api/v1/entradas body.
type CreateEntradaRequest struct {
	Product       ProductKey `json:"produto"`
	QuantityAdded int        `json:"quantidadeAdicionada"`
	Responsible   string     `json:"responsavel"`
	Destination   string     `json:"destino"`
}

// ImportResult is the product import response.
type ImportResult struct {
	ImportedCount int      `json:"importedCount"`
	Errors        []string `json:"errors"`
}

// Timestamp decodes the backend's dataHora, which is either RFC 3339 or a
// zone-less local date-time, possibly with fractional seconds. A value in any
// other format leaves Time zero and is kept in Unparsed.
type Timestamp struct {
	time.Time
	Unparsed string
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// DisplayLayout is the pt-BR day/month/year hour:minute format.
const DisplayLayout = "02/01/2006 15:04"

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("dataHora: %w", err)
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	*t = Timestamp{Unparsed: s}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// Display renders the timestamp for tables, or "-" when absent.
func (t Timestamp) Display() string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DisplayLayout)
}
