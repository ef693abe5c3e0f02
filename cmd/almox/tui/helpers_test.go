package tui

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/almoxarifado/almox/internal/api"
	tea "github.com/charmbracelet/bubbletea"
)

func sendKey(m tea.Model, key string) tea.Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return updated
}

func sendSpecialKey(m tea.Model, key tea.KeyType) tea.Model {
	updated, _ := m.Update(tea.KeyMsg{Type: key})
	return updated
}

// press sends msg and feeds every message its commands produce back into
// the model until nothing is left. Only use it for keys whose commands
// terminate (not plain typing, which starts cursor blinking).
func press(m tea.Model, msg tea.Msg) tea.Model {
	updated, cmd := m.Update(msg)
	return drain(updated, cmd)
}

func drain(m tea.Model, cmd tea.Cmd) tea.Model {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil, tea.QuitMsg:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(m, c)
		}
		return m
	default:
		updated, next := m.Update(msg)
		return drain(updated, next)
	}
}

// fakeAPI is an in-memory almoxarifado backend.
type fakeAPI struct {
	mu          sync.Mutex
	listCalls   int
	prodCalls   int
	createCalls int
	lastQuery   string
	lastCreate  api.CreateEntradaRequest
	listStatus  int
	listError   string // body sent with listStatus
	createCode  int
	records     []map[string]any
	totalPages  int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == api.EntradasPath && r.Method == http.MethodGet:
		f.listCalls++
		f.lastQuery = r.URL.RawQuery
		if f.listStatus != 0 {
			w.WriteHeader(f.listStatus)
			io.WriteString(w, f.listError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"content": f.records, "totalPages": f.totalPages})
	case r.URL.Path == api.EntradasPath && r.Method == http.MethodPost:
		f.createCalls++
		json.NewDecoder(r.Body).Decode(&f.lastCreate)
		if f.createCode != 0 {
			w.WriteHeader(f.createCode)
			w.Write([]byte("Access Denied"))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 99}`))
	case r.URL.Path == api.ProdutosPath:
		f.prodCalls++
		w.Write([]byte(`{"content":[{"id":3,"nome":"Parafuso"},{"id":4,"nome":"Porca"}]}`))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAPI) counts() (list, prod, create int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.prodCalls, f.createCalls
}

func (f *fakeAPI) query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

func newFakeClient(t *testing.T, f *fakeAPI) *api.Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, 5*time.Second, nil)
}

type staticCreds string

func (c staticCreds) Credential() (string, error) { return string(c), nil }
