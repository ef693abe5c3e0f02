package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/almoxarifado/almox/internal/api"
	"github.com/almoxarifado/almox/internal/session"
)

// ProductLister is the one backend call Status uses as a reachability check.
type ProductLister interface {
	ListProdutos(ctx context.Context) ([]api.ProductRef, error)
}

type StatusResult struct {
	APIURL       string
	ConfigFile   string
	SessionFile  string
	HasToken     bool
	Subject      string
	Admin        bool
	ExpiresAt    time.Time
	Reachable    bool
	ProductCount int
	ReachErr     error
}

// Status reports the local session and whether the backend answers. An
// unreachable backend is part of the result, not an error.
func Status(ctx context.Context, backend ProductLister, apiURL, configFile string, store *session.Store) (*StatusResult, error) {
	result := &StatusResult{
		APIURL:      apiURL,
		ConfigFile:  configFile,
		SessionFile: store.Path(),
	}

	token, err := store.Credential()
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	if token != "" {
		result.HasToken = true
		if claims, err := session.ParseClaims(token); err == nil {
			result.Subject = claims.Subject
			result.Admin = claims.IsAdmin()
			result.ExpiresAt = claims.ExpiresAt
		}
	}

	products, err := backend.ListProdutos(ctx)
	if err != nil {
		result.ReachErr = err
		return result, nil
	}
	result.Reachable = true
	result.ProductCount = len(products)
	return result, nil
}
