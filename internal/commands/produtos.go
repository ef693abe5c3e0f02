package commands

import (
	"context"
	"sort"

	"github.com/almoxarifado/almox/internal/api"
	"github.com/almoxarifado/almox/internal/importer"
	"github.com/almoxarifado/almox/internal/session"
)

// ListProdutos returns the product catalog sorted by name.
func ListProdutos(ctx context.Context, backend ProductLister) ([]api.ProductRef, error) {
	products, err := backend.ListProdutos(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}

// ImportProdutos previews path and, unless dryRun, uploads it. The bearer
// token is sent only when one is stored.
func ImportProdutos(ctx context.Context, im *importer.Importer, store *session.Store, path string, dryRun bool) (*importer.Result, error) {
	token, err := store.Credential()
	if err != nil {
		return nil, err
	}
	res, err := im.Run(ctx, token, path, dryRun)
	if err != nil {
		return &res, err
	}
	return &res, nil
}
