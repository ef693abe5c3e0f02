// Package api is the HTTP client for the warehouse backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Endpoint paths, relative to the configured base URL.
const (
	EntradasPath = "/api/v1/entradas"
	ProdutosPath = "/api/v1/produtos"
	ImportPath   = "/api/products/import"
)

// RequestIDHeader carries a per-request id for log correlation.
const RequestIDHeader = "X-Request-Id"

// maxErrorBody caps how much of a failed response body is kept.
const maxErrorBody = 4 << 10

// Client talks to one backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New returns a client for baseURL. A zero timeout means no client-side limit
// beyond the caller's context.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// BaseURL returns the backend root this client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListEntradas fetches one page of entradas. query is sent as-is. A non-2xx
// response with a JSON body returns both the decoded page and the
// *StatusError.
func (c *Client) ListEntradas(ctx context.Context, query url.Values) (EntradaPage, error) {
	var page EntradaPage
	path := EntradasPath
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	if err := c.getJSON(ctx, path, &page); err != nil {
		// A JSON error body still answers the query, with whatever page
		// fields it happens to carry (usually none).
		var se *StatusError
		if errors.As(err, &se) && se.HasJSONBody() {
			page = EntradaPage{}
			if json.Unmarshal([]byte(se.Body), &page) == nil {
				return page, err
			}
		}
		return EntradaPage{}, err
	}
	for _, r := range page.Content {
		if r.Timestamp.Unparsed != "" {
			c.logger.Warn("unrecognized dataHora",
				zap.Int64("id", r.ID),
				zap.String("value", r.Timestamp.Unparsed))
		}
	}
	return page, nil
}

// ListProdutos fetches the product catalog used by the entry form dropdown.
func (c *Client) ListProdutos(ctx context.Context) ([]ProductRef, error) {
	var page productPage
	if err := c.getJSON(ctx, ProdutosPath, &page); err != nil {
		return nil, err
	}
	return page.Content, nil
}

// CreateEntrada registers a new entrada on behalf of token. The created record
// in the response is ignored.
func (c *Client) CreateEntrada(ctx context.Context, token string, body CreateEntradaRequest) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding entrada: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, EntradasPath, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// ImportProducts uploads a spreadsheet under the multipart field "file".
// The bearer header is only sent when token is non-empty.
func (c *Client) ImportProducts(ctx context.Context, token, filename string, r io.Reader) (ImportResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return ImportResult{}, fmt.Errorf("building upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return ImportResult{}, fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return ImportResult{}, fmt.Errorf("building upload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, ImportPath, &buf)
	if err != nil {
		return ImportResult{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.do(req)
	if err != nil {
		return ImportResult{}, err
	}
	defer resp.Body.Close()

	var result ImportResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ImportResult{}, fmt.Errorf("decoding import result: %w", err)
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", req.URL.Path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

// do sends req and turns non-2xx responses into *StatusError. On success the
// caller owns resp.Body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	reqID := req.Header.Get(RequestIDHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("request_id", reqID),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	c.logger.Debug("request done",
		zap.String("request_id", reqID),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Method:     req.Method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return resp, nil
}
