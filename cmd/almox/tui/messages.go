package tui

import (
	"context"
	"time"

	"github.com/almoxarifado/almox/internal/api"
	"github.com/almoxarifado/almox/internal/entradas"
	tea "github.com/charmbracelet/bubbletea"
)

// FocusZone identifies which component currently has keyboard focus.
type FocusZone int

const (
	FocusTable   FocusZone = iota // records and pager
	FocusFilters                  // filter panel inputs
	FocusForm                     // entry modal
)

// closeAnimation is how long the entry modal's exit transition lasts.
const closeAnimation = 180 * time.Millisecond

// --- Inter-component messages ---

// PageSelectMsg is sent when the user picks a page button.
type PageSelectMsg struct{ Index int }

// OverlayCloseMsg is emitted when any overlay is dismissed.
type OverlayCloseMsg struct {
	Result    string // chosen value (for choice) or empty
	Index     int    // chosen index (for choice)
	Confirmed bool   // true = OK/Enter, false = Esc
}

// EntriesLoadedMsg carries the outcome of list request Generation.
type EntriesLoadedMsg struct {
	Generation uint64
	Page       api.EntradaPage
	Err        error
}

// ProductsLoadedMsg carries the product catalog fetch.
type ProductsLoadedMsg struct {
	Products []api.ProductRef
	Err      error
}

// SubmitDoneMsg carries the outcome of the create call.
type SubmitDoneMsg struct{ Err error }

// AnimationDoneMsg signals that the entry modal's exit transition finished.
type AnimationDoneMsg struct{}

// --- Commands ---

func fetchEntries(backend entradas.Backend, req entradas.ListRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		page, err := entradas.FetchList(ctx, backend, req)
		return EntriesLoadedMsg{Generation: req.Generation, Page: page, Err: err}
	}
}

func fetchProducts(backend entradas.Backend, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		products, err := backend.ListProdutos(ctx)
		return ProductsLoadedMsg{Products: products, Err: err}
	}
}

func submitEntrada(backend entradas.Backend, sub entradas.SubmitRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return SubmitDoneMsg{Err: backend.CreateEntrada(ctx, sub.Token, sub.Body)}
	}
}

func finishAnimation() tea.Cmd {
	return tea.Tick(closeAnimation, func(time.Time) tea.Msg {
		return AnimationDoneMsg{}
	})
}
