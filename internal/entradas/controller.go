package entradas

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/almoxarifado/almox/internal/api"
)

// Backend is the subset of the API client the workflow needs.
type Backend interface {
	ListEntradas(ctx context.Context, query url.Values) (api.EntradaPage, error)
	ListProdutos(ctx context.Context) ([]api.ProductRef, error)
	CreateEntrada(ctx context.Context, token string, body api.CreateEntradaRequest) error
}

// CredentialSource yields the stored bearer token, "" when none is stored.
type CredentialSource interface {
	Credential() (string, error)
}

// Controller runs the workflow synchronously against a Backend. The TUI
// drives Workflow through tea.Cmds instead; the CLI and tests use this.
type Controller struct {
	W       *Workflow
	backend Backend
	creds   CredentialSource
}

// NewController wires w to backend and creds.
func NewController(w *Workflow, backend Backend, creds CredentialSource) *Controller {
	return &Controller{W: w, backend: backend, creds: creds}
}

// FetchList performs req against backend. Shared with the TUI's commands.
func FetchList(ctx context.Context, backend Backend, req ListRequest) (api.EntradaPage, error) {
	return backend.ListEntradas(ctx, req.Query)
}

// Mount issues the initial list fetch and the product fetch. The two run
// concurrently and are applied once both have returned.
func (c *Controller) Mount(ctx context.Context) {
	req := c.W.BeginRefresh()

	var (
		wg       sync.WaitGroup
		page     api.EntradaPage
		pageErr  error
		products []api.ProductRef
		prodErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		page, pageErr = FetchList(ctx, c.backend, req)
	}()
	go func() {
		defer wg.Done()
		products, prodErr = c.backend.ListProdutos(ctx)
	}()
	wg.Wait()

	c.W.ApplyEntries(req.Generation, page, pageErr)
	c.W.ApplyProducts(products, prodErr)
}

// Refresh refetches the current page.
func (c *Controller) Refresh(ctx context.Context) {
	c.run(ctx, c.W.BeginRefresh())
}

// ApplyFilters stages f, applies it and fetches the first page.
func (c *Controller) ApplyFilters(ctx context.Context, f FilterCriteria) {
	c.ApplyFiltersAt(ctx, f, 0)
}

// ApplyFiltersAt stages f, applies it and fetches page index i.
func (c *Controller) ApplyFiltersAt(ctx context.Context, f FilterCriteria, i int) {
	c.W.Staged = f
	c.run(ctx, c.W.ApplyFiltersAt(i))
}

// GoToPage fetches page i. It reports whether a fetch was issued.
func (c *Controller) GoToPage(ctx context.Context, i int) bool {
	req, ok := c.W.GoToPage(i)
	if !ok {
		return false
	}
	c.run(ctx, req)
	return true
}

// Submit posts the draft. A missing credential or invalid draft fails before
// any network call. On success the list is refetched exactly once. The
// returned error is suitable for AlertMessage.
func (c *Controller) Submit(ctx context.Context) error {
	cred, err := c.creds.Credential()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingCredential, err)
	}
	sub, err := c.W.PrepareSubmit(cred)
	if err != nil {
		return err
	}
	req, err := c.W.CompleteSubmit(c.backend.CreateEntrada(ctx, sub.Token, sub.Body))
	if err != nil {
		return err
	}
	c.run(ctx, req)
	return nil
}

func (c *Controller) run(ctx context.Context, req ListRequest) {
	page, err := FetchList(ctx, c.backend, req)
	c.W.ApplyEntries(req.Generation, page, err)
}
