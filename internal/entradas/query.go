// Package entradas holds the stock-in listing and registration workflow:
// filter-to-query mapping, the paginated fetch cycle, the entry form draft,
// the modal lifecycle and the submission sequence. It performs no I/O of its
// own; Controller and the TUI drive it against a Backend.
package entradas

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names understood by GET /api/v1/entradas.
const (
	ParamProductID = "produtoId"
	ParamPeriod    = "periodo"
	ParamStartDate = "dataInicio"
	ParamEndDate   = "dataFim"
	ParamPage      = "page"
	ParamSize      = "size"
)

// DefaultPageSize is the number of entradas requested per page.
const DefaultPageSize = 10

// Period is a coarse relative-date bucket the server narrows by.
type Period string

const (
	PeriodNone  Period = ""
	PeriodWeek  Period = "semana"
	PeriodMonth Period = "mes"
	PeriodYear  Period = "ano"
)

// Periods lists the selectable periods in display order.
var Periods = []Period{PeriodNone, PeriodWeek, PeriodMonth, PeriodYear}

// Label returns the pt-BR label shown in the filter panel.
func (p Period) Label() string {
	switch p {
	case PeriodWeek:
		return "Última semana"
	case PeriodMonth:
		return "Último mês"
	case PeriodYear:
		return "Último ano"
	default:
		return "Qualquer período"
	}
}

// ParsePeriod accepts the wire values and their English names.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PeriodNone, nil
	case "semana", "week":
		return PeriodWeek, nil
	case "mes", "mês", "month":
		return PeriodMonth, nil
	case "ano", "year":
		return PeriodYear, nil
	}
	return PeriodNone, fmt.Errorf("unknown period %q (want week, month or year)", s)
}

// FilterCriteria is the filter panel state. Name is kept for the panel but
// the list endpoint does not filter by it.
type FilterCriteria struct {
	ProductID string
	Name      string
	Period    Period
	StartDate string
	EndDate   string
}

// HasDateRange reports whether both ends of the date range are set.
func (f FilterCriteria) HasDateRange() bool {
	return f.StartDate != "" && f.EndDate != ""
}

// PageState tracks pagination. TotalPages always comes from the server.
type PageState struct {
	Index      int
	Size       int
	TotalPages int
}

// Param is one query parameter, kept in the order it was added.
type Param struct {
	Key   string
	Value string
}

// OrderedQuery maps filters and page to query parameters in a stable order:
// product, period, date range, page, size. Values are forwarded unvalidated.
func OrderedQuery(f FilterCriteria, p PageState) []Param {
	var params []Param
	if f.ProductID != "" {
		params = append(params, Param{ParamProductID, f.ProductID})
	}
	if f.Period != PeriodNone {
		params = append(params, Param{ParamPeriod, string(f.Period)})
	}
	// The range is all-or-nothing.
	if f.HasDateRange() {
		params = append(params,
			Param{ParamStartDate, f.StartDate},
			Param{ParamEndDate, f.EndDate},
		)
	}
	params = append(params,
		Param{ParamPage, strconv.Itoa(p.Index)},
		Param{ParamSize, strconv.Itoa(p.Size)},
	)
	return params
}

// BuildQuery is OrderedQuery as url.Values.
func BuildQuery(f FilterCriteria, p PageState) url.Values {
	q := url.Values{}
	for _, param := range OrderedQuery(f, p) {
		q.Add(param.Key, param.Value)
	}
	return q
}

// QueryString renders params in their original order, for logs and the
// status line.
func QueryString(params []Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}
