package commands_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/almoxarifado/almox/internal/api"
	"github.com/almoxarifado/almox/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// backend is a fake almoxarifado API.
type backend struct {
	mu          sync.Mutex
	queries     []string
	creates     int
	auth        string
	createCode  int
	listCode    int
	totalPages  int
	products    []api.ProductRef
	productCode int
	upload      []byte
	uploadName  string
	uploadAuth  string
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.URL.Path == api.EntradasPath && r.Method == http.MethodGet:
		b.queries = append(b.queries, r.URL.RawQuery)
		if b.listCode != 0 {
			w.WriteHeader(b.listCode)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{
				"id":                   1,
				"dataHora":             "2024-03-05T14:30:00",
				"quantidadeAdicionada": 5,
				"produtoNome":          "Parafuso",
			}},
			"totalPages": b.totalPages,
		})
	case r.URL.Path == api.EntradasPath && r.Method == http.MethodPost:
		b.creates++
		b.auth = r.Header.Get("Authorization")
		if b.createCode != 0 {
			w.WriteHeader(b.createCode)
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 2}`))
	case r.URL.Path == api.ProdutosPath:
		if b.productCode != 0 {
			w.WriteHeader(b.productCode)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"content": b.products})
	case r.URL.Path == api.ImportPath && r.Method == http.MethodPost:
		b.uploadAuth = r.Header.Get("Authorization")
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		b.uploadName = hdr.Filename
		b.upload, _ = io.ReadAll(f)
		json.NewEncoder(w).Encode(map[string]any{"importedCount": 1, "errors": []string{}})
	default:
		http.NotFound(w, r)
	}
}

func newBackend(t *testing.T, b *backend) *api.Client {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, 5*time.Second, nil)
}

func newStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(filepath.Join(t.TempDir(), "session.yaml"))
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}
