package entradas

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/almoxarifado/almox/internal/api"
	"github.com/almoxarifado/almox/internal/logging"
	"go.uber.org/zap"
)

var (
	// ErrMissingCredential means no token is stored; nothing was sent.
	ErrMissingCredential = errors.New("no auth credential stored")
	// ErrSubmitFailed wraps the backend error of a rejected create.
	ErrSubmitFailed = errors.New("registering entrada failed")
)

// User-facing alert texts.
const (
	AlertMissingCredential = "Token não encontrado. Faça login novamente."
	AlertSubmitFailed      = "Erro ao registrar entrada. Verifique se você está logado como ADMIN."
)

// AlertMessage maps a workflow error to the text shown to the user. The raw
// backend body is never part of it.
func AlertMessage(err error) string {
	var fe *FieldError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return AlertMissingCredential
	case errors.As(err, &fe):
		if fe.Reason == "required" {
			return fmt.Sprintf("Preencha o campo %s.", fe.Field.Label())
		}
		if fe.Field == FieldQuantity {
			return "A quantidade deve ser um número inteiro maior ou igual a 1."
		}
		return fmt.Sprintf("Valor inválido em %s.", fe.Field.Label())
	case errors.Is(err, ErrSubmitFailed):
		return AlertSubmitFailed
	}
	return err.Error()
}

// ListRequest is one list fetch to perform. Generation identifies it so a
// superseded response can be dropped.
type ListRequest struct {
	Generation uint64
	Query      url.Values
	Params     []Param
}

// SubmitRequest is one create call to perform.
type SubmitRequest struct {
	Token string
	Body  api.CreateEntradaRequest
}

// Workflow is the state of the entradas screen. It is not safe for
// concurrent use; fetch results are applied from a single goroutine.
type Workflow struct {
	Records  []api.StockInRecord
	Products []api.ProductRef

	// Staged is what the filter panel is editing; Applied is what the last
	// "apply" committed and what every fetch uses.
	Staged  FilterCriteria
	Applied FilterCriteria

	Page  PageState
	Draft Draft
	Modal Modal

	// LastReadErr is the most recent silent read failure, cleared by the
	// next successful list fetch.
	LastReadErr error

	generation uint64
	logger     *zap.Logger
}

// NewWorkflow returns an empty workflow requesting pageSize records per page.
func NewWorkflow(pageSize int, logger *zap.Logger) *Workflow {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Workflow{
		Records: []api.StockInRecord{},
		Page:    PageState{Size: pageSize},
		logger:  logging.OrNop(logger),
	}
}

// Generation returns the id of the latest issued list request.
func (w *Workflow) Generation() uint64 {
	return w.generation
}

// BeginRefresh issues a list request for the applied filters and the current
// page, superseding any request still in flight.
func (w *Workflow) BeginRefresh() ListRequest {
	w.generation++
	params := OrderedQuery(w.Applied, w.Page)
	w.logger.Debug("list requested",
		zap.Uint64("generation", w.generation),
		zap.String("query", QueryString(params)))
	return ListRequest{
		Generation: w.generation,
		Query:      BuildQuery(w.Applied, w.Page),
		Params:     params,
	}
}

// ApplyFilters commits the staged filters, returns to the first page and
// issues a list request.
func (w *Workflow) ApplyFilters() ListRequest {
	return w.ApplyFiltersAt(0)
}

// ApplyFiltersAt commits the staged filters and requests page index i
// directly. The page count is unknown until the response arrives, so i is
// not range-checked.
func (w *Workflow) ApplyFiltersAt(i int) ListRequest {
	w.Applied = w.Staged
	w.Page.Index = max(i, 0)
	return w.BeginRefresh()
}

// ClearFilters empties both staged and applied filters and refetches.
func (w *Workflow) ClearFilters() ListRequest {
	w.Staged = FilterCriteria{}
	return w.ApplyFilters()
}

// GoToPage moves to page index i. It returns false, issuing nothing, when i is
// out of range or already current.
func (w *Workflow) GoToPage(i int) (ListRequest, bool) {
	if i < 0 || i == w.Page.Index {
		return ListRequest{}, false
	}
	if w.Page.TotalPages > 0 && i >= w.Page.TotalPages {
		return ListRequest{}, false
	}
	w.Page.Index = i
	return w.BeginRefresh(), true
}

// ApplyEntries records the outcome of list request gen. Results of superseded
// requests are dropped. A failure is logged; a transport error or an
// undecodable body leaves the records alone, while a JSON error body is
// applied as the page it decoded to, normally empty. It reports whether state
// changed.
func (w *Workflow) ApplyEntries(gen uint64, page api.EntradaPage, err error) bool {
	if gen != w.generation {
		w.logger.Debug("stale list response dropped",
			zap.Uint64("generation", gen),
			zap.Uint64("latest", w.generation))
		return false
	}
	if err != nil {
		w.logger.Warn("fetching entradas failed", zap.Error(err))
		w.LastReadErr = err
		var se *api.StatusError
		if !errors.As(err, &se) || !se.HasJSONBody() {
			return false
		}
	} else {
		w.LastReadErr = nil
	}
	w.Records = page.Content
	if w.Records == nil {
		w.Records = []api.StockInRecord{}
	}
	w.Page.TotalPages = max(page.TotalPages, 0)
	return true
}

// ApplyProducts records the product catalog fetch. Failures keep the
// previous list.
func (w *Workflow) ApplyProducts(products []api.ProductRef, err error) bool {
	if err != nil {
		w.logger.Warn("fetching produtos failed", zap.Error(err))
		return false
	}
	if products == nil {
		products = []api.ProductRef{}
	}
	w.Products = products
	return true
}

// SetField updates one draft field.
func (w *Workflow) SetField(f Field, value string) {
	w.Draft = w.Draft.Set(f, value)
}

// OpenModal opens the registration modal.
func (w *Workflow) OpenModal() bool {
	return w.Modal.Open()
}

// CloseModal starts the modal's exit animation. The draft is kept.
func (w *Workflow) CloseModal() bool {
	return w.Modal.RequestClose()
}

// AnimationFinished delivers the exit-animation-complete signal.
func (w *Workflow) AnimationFinished() bool {
	return w.Modal.AnimationFinished()
}

// PrepareSubmit checks the credential and the draft and builds the create
// call. It never touches state, so a rejected attempt leaves the draft as is.
func (w *Workflow) PrepareSubmit(credential string) (SubmitRequest, error) {
	if credential == "" {
		return SubmitRequest{}, ErrMissingCredential
	}
	body, err := w.Draft.Payload()
	if err != nil {
		return SubmitRequest{}, err
	}
	return SubmitRequest{Token: credential, Body: body}, nil
}

// CompleteSubmit records the outcome of a create call. On success the draft
// is reset, the modal starts closing, pagination returns to the first page
// and exactly one list request is returned. On failure nothing changes, no
// request is returned and the error wraps ErrSubmitFailed.
func (w *Workflow) CompleteSubmit(err error) (ListRequest, error) {
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var se *api.StatusError
		if errors.As(err, &se) {
			fields = append(fields, zap.Int("status", se.StatusCode), zap.String("body", se.Body))
		}
		w.logger.Error("registering entrada failed", fields...)
		return ListRequest{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	w.logger.Info("entrada registered")
	w.Draft = EmptyDraft()
	w.Modal.RequestClose()
	w.Page.Index = 0
	return w.BeginRefresh(), nil
}
