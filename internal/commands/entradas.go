package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/almoxarifado/almox/internal/api"
	"github.com/almoxarifado/almox/internal/entradas"
	"go.uber.org/zap"
)

// ListOptions are the entradas list filters. Page is 1-based.
type ListOptions struct {
	ProductID string
	Period    string
	Start     string
	End       string
	Page      int
}

// ListResult is one page of entradas.
type ListResult struct {
	Records    []api.StockInRecord
	Page       int // 1-based
	TotalPages int
	Query      string
}

const dateLayout = "2006-01-02"

// ListEntradas fetches one filtered page. Unlike the TUI, a failed read is
// returned to the caller.
func ListEntradas(ctx context.Context, backend entradas.Backend, pageSize int, opts ListOptions, logger *zap.Logger) (*ListResult, error) {
	filter, err := opts.criteria()
	if err != nil {
		return nil, err
	}
	if opts.Page == 0 {
		opts.Page = 1
	}
	if opts.Page < 1 {
		return nil, fmt.Errorf("invalid page %d", opts.Page)
	}

	w := entradas.NewWorkflow(pageSize, logger)
	c := entradas.NewController(w, backend, nil)
	c.ApplyFiltersAt(ctx, filter, opts.Page-1)
	if w.LastReadErr != nil {
		return nil, fmt.Errorf("listing entradas: %w", w.LastReadErr)
	}
	if opts.Page > max(w.Page.TotalPages, 1) {
		return nil, fmt.Errorf("page %d out of range (1-%d)", opts.Page, max(w.Page.TotalPages, 1))
	}

	return &ListResult{
		Records:    w.Records,
		Page:       w.Page.Index + 1,
		TotalPages: w.Page.TotalPages,
		Query:      entradas.QueryString(entradas.OrderedQuery(w.Applied, w.Page)),
	}, nil
}

func (o ListOptions) criteria() (entradas.FilterCriteria, error) {
	var f entradas.FilterCriteria

	if id := strings.TrimSpace(o.ProductID); id != "" {
		if n, err := strconv.ParseInt(id, 10, 64); err != nil || n <= 0 {
			return f, fmt.Errorf("invalid product id %q", o.ProductID)
		}
		f.ProductID = id
	}

	period, err := entradas.ParsePeriod(o.Period)
	if err != nil {
		return f, err
	}
	f.Period = period

	for _, d := range []struct {
		name  string
		value string
		dst   *string
	}{
		{"start", o.Start, &f.StartDate},
		{"end", o.End, &f.EndDate},
	} {
		v := strings.TrimSpace(d.value)
		if v == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, v); err != nil {
			return f, fmt.Errorf("invalid %s date %q (want YYYY-MM-DD)", d.name, d.value)
		}
		*d.dst = v
	}
	if (f.StartDate == "") != (f.EndDate == "") {
		return f, errors.New("--start and --end must be given together")
	}
	return f, nil
}

// AddEntrada validates draft and registers it with the stored credential.
// The error is suitable for entradas.AlertMessage.
func AddEntrada(ctx context.Context, backend entradas.Backend, creds entradas.CredentialSource, draft entradas.Draft, logger *zap.Logger) error {
	w := entradas.NewWorkflow(entradas.DefaultPageSize, logger)
	w.OpenModal()
	w.Draft = draft
	return entradas.NewController(w, backend, creds).Submit(ctx)
}
