package entradas_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/almoxarifado/almox/internal/api"
	"github.com/almoxarifado/almox/internal/entradas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_NewDefaults(t *testing.T) {
	w := entradas.NewWorkflow(0, nil)
	assert.Equal(t, entradas.DefaultPageSize, w.Page.Size)
	assert.Equal(t, 0, w.Page.Index)
	assert.NotNil(t, w.Records)
	assert.Empty(t, w.Records)
	assert.Equal(t, entradas.PhaseClosed, w.Modal.Phase())
}

func TestWorkflow_ApplyEntries(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	req := w.BeginRefresh()

	changed := w.ApplyEntries(req.Generation, api.EntradaPage{
		Content:    []api.StockInRecord{{ID: 1}},
		TotalPages: 3,
	}, nil)
	assert.True(t, changed)
	assert.Len(t, w.Records, 1)
	assert.Equal(t, 3, w.Page.TotalPages)
}

func TestWorkflow_ApplyEntries_AbsentShapeDefaults(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	w.Records = []api.StockInRecord{{ID: 5}}
	w.Page.TotalPages = 4

	req := w.BeginRefresh()
	w.ApplyEntries(req.Generation, api.EntradaPage{}, nil)
	assert.NotNil(t, w.Records)
	assert.Empty(t, w.Records)
	assert.Equal(t, 0, w.Page.TotalPages)
}

func TestWorkflow_ApplyEntries_FailureKeepsState(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	w.Records = []api.StockInRecord{{ID: 5}}
	w.Page.TotalPages = 4

	req := w.BeginRefresh()
	changed := w.ApplyEntries(req.Generation, api.EntradaPage{}, errors.New("connection refused"))
	assert.False(t, changed)
	assert.Equal(t, []api.StockInRecord{{ID: 5}}, w.Records)
	assert.Equal(t, 4, w.Page.TotalPages)
	assert.Error(t, w.LastReadErr)

	req = w.BeginRefresh()
	w.ApplyEntries(req.Generation, api.EntradaPage{TotalPages: 1}, nil)
	assert.NoError(t, w.LastReadErr, "cleared by the next success")
}

func TestWorkflow_StaleResponseDropped(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	w.Page.TotalPages = 5

	first, ok := w.GoToPage(1)
	require.True(t, ok)
	second, ok := w.GoToPage(2)
	require.True(t, ok)

	// The newer response lands first, then the superseded one.
	assert.True(t, w.ApplyEntries(second.Generation, api.EntradaPage{Content: []api.StockInRecord{{ID: 20}}, TotalPages: 5}, nil))
	assert.False(t, w.ApplyEntries(first.Generation, api.EntradaPage{Content: []api.StockInRecord{{ID: 10}}, TotalPages: 5}, nil))

	require.Len(t, w.Records, 1)
	assert.Equal(t, int64(20), w.Records[0].ID)
}

func TestWorkflow_StagedFiltersNotSentUntilApplied(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	w.Staged.ProductID = "9"

	req := w.BeginRefresh()
	assert.False(t, req.Query.Has(entradas.ParamProductID))

	req = w.ApplyFilters()
	assert.Equal(t, "9", req.Query.Get(entradas.ParamProductID))
}

func TestWorkflow_ApplyFiltersResetsIndex(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	w.Page.TotalPages = 6
	_, ok := w.GoToPage(4)
	require.True(t, ok)

	w.Staged.Period = entradas.PeriodWeek
	req := w.ApplyFilters()

	assert.Equal(t, 0, w.Page.Index)
	assert.Equal(t, "0", req.Query.Get(entradas.ParamPage))
	assert.Equal(t, "semana", req.Query.Get(entradas.ParamPeriod))
}

func TestWorkflow_ApplyFiltersAtSkipsFirstPage(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	w.Staged.ProductID = "7"
	req := w.ApplyFiltersAt(3)

	assert.Equal(t, 3, w.Page.Index)
	assert.Equal(t, "7", w.Applied.ProductID)
	assert.Equal(t, "3", req.Query.Get(entradas.ParamPage))
	assert.Equal(t, w.Generation(), req.Generation)

	w.ApplyFiltersAt(-2)
	assert.Equal(t, 0, w.Page.Index)
}

func TestWorkflow_ClearFilters(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	w.Staged = entradas.FilterCriteria{ProductID: "1", Period: entradas.PeriodYear}
	w.ApplyFilters()

	req := w.ClearFilters()
	assert.Equal(t, entradas.FilterCriteria{}, w.Applied)
	assert.Equal(t, "page=0&size=10", req.Query.Encode())
}

func TestWorkflow_GoToPage(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	w.Page.TotalPages = 3

	_, ok := w.GoToPage(0)
	assert.False(t, ok, "already current")
	_, ok = w.GoToPage(-1)
	assert.False(t, ok)
	_, ok = w.GoToPage(3)
	assert.False(t, ok, "past the last page")

	req, ok := w.GoToPage(2)
	require.True(t, ok)
	assert.Equal(t, "2", req.Query.Get(entradas.ParamPage))
	assert.Equal(t, 2, w.Page.Index)
}

func TestWorkflow_ApplyProducts(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	assert.True(t, w.ApplyProducts([]api.ProductRef{{ID: 1, Name: "Luva"}}, nil))
	assert.False(t, w.ApplyProducts(nil, errors.New("timeout")))
	assert.Equal(t, []api.ProductRef{{ID: 1, Name: "Luva"}}, w.Products)

	w.ApplyProducts(nil, nil)
	assert.NotNil(t, w.Products)
	assert.Empty(t, w.Products)
}

func TestWorkflow_PrepareSubmit_MissingCredential(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	w.Draft = filledDraft()

	_, err := w.PrepareSubmit("")
	assert.ErrorIs(t, err, entradas.ErrMissingCredential)
	assert.Equal(t, filledDraft(), w.Draft)
	assert.Equal(t, entradas.AlertMissingCredential, entradas.AlertMessage(err))
}

func TestWorkflow_PrepareSubmit_InvalidDraft(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	w.Draft = filledDraft().Set(entradas.FieldDestination, "")

	_, err := w.PrepareSubmit("tok")
	assert.ErrorIs(t, err, entradas.ErrInvalidDraft)
	assert.Equal(t, "Preencha o campo Destino.", entradas.AlertMessage(err))
}

func TestWorkflow_PrepareSubmit(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	w.Draft = filledDraft()

	sub, err := w.PrepareSubmit("tok")
	require.NoError(t, err)
	assert.Equal(t, "tok", sub.Token)
	assert.Equal(t, int64(7), sub.Body.Product.ID)
	assert.Equal(t, 12, sub.Body.QuantityAdded)
}

func TestWorkflow_CompleteSubmit_Success(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	w.Page.TotalPages = 4
	w.GoToPage(3)
	w.OpenModal()
	w.Draft = filledDraft()
	before := w.Generation()

	req, err := w.CompleteSubmit(nil)
	require.NoError(t, err)

	assert.True(t, w.Draft.IsEmpty())
	assert.Equal(t, entradas.PhaseClosing, w.Modal.Phase())
	assert.Equal(t, 0, w.Page.Index)
	assert.Equal(t, before+1, req.Generation, "exactly one list request")
	assert.Equal(t, "0", req.Query.Get(entradas.ParamPage))
}

func TestWorkflow_CompleteSubmit_Failure(t *testing.T) {
	w := entradas.NewWorkflow(10, nil)
	w.Page.TotalPages = 4
	w.GoToPage(2)
	w.OpenModal()
	w.Draft = filledDraft()
	before := w.Generation()

	req, err := w.CompleteSubmit(&api.StatusError{StatusCode: http.StatusForbidden, Body: "Access Denied"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entradas.ErrSubmitFailed)
	assert.Equal(t, entradas.AlertSubmitFailed, entradas.AlertMessage(err))
	assert.NotContains(t, entradas.AlertMessage(err), "Access Denied")

	assert.Equal(t, entradas.ListRequest{}, req)
	assert.Equal(t, before, w.Generation(), "no refresh issued")
	assert.Equal(t, filledDraft(), w.Draft)
	assert.Equal(t, entradas.PhaseOpen, w.Modal.Phase())
	assert.Equal(t, 2, w.Page.Index)
}

func TestAlertMessage(t *testing.T) {
	assert.Equal(t, "", entradas.AlertMessage(nil))
	assert.Equal(t, "A quantidade deve ser um número inteiro maior ou igual a 1.",
		entradas.AlertMessage(filledDraft().Set(entradas.FieldQuantity, "0").Validate()))
	assert.Equal(t, "Valor inválido em Produto.",
		entradas.AlertMessage(filledDraft().Set(entradas.FieldProductID, "x").Validate()))
	assert.Equal(t, "boom", entradas.AlertMessage(errors.New("boom")))
}
