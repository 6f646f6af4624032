// Package common provides shared test infrastructure: an in-process server
// over a throwaway BadgerHold store.
package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/matiasrojas/guarani/internal/app"
	"github.com/matiasrojas/guarani/internal/server"
)

// Env is an isolated test environment: a fully wired application over a
// temporary data directory, served through httptest.
type Env struct {
	t   *testing.T
	app *app.App
	ts  *httptest.Server
}

// NewEnv boots the application against a fresh temp store and starts an
// in-process HTTP server. The store is seeded with the default accounts and
// categories, exactly as on first run.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	dataDir := t.TempDir()
	configPath := filepath.Join(t.TempDir(), "guarani.toml")
	config := fmt.Sprintf(`environment = "test"

[storage]
backend = "badger"

[storage.badger]
path = %q

[logging]
level = "error"
`, filepath.Join(dataDir, "ledger"))
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	a, err := app.NewApp(configPath)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}

	ts := httptest.NewServer(server.NewServer(a).Handler())

	return &Env{t: t, app: a, ts: ts}
}

// Cleanup stops the server and releases the store.
func (e *Env) Cleanup() {
	e.ts.Close()
	e.app.Close()
}

// HTTPGet issues a GET against the test server.
func (e *Env) HTTPGet(path string) (*http.Response, error) {
	return http.Get(e.ts.URL + path)
}

// HTTPPost issues a POST with a JSON body.
func (e *Env) HTTPPost(path string, body any) (*http.Response, error) {
	return e.do(http.MethodPost, path, body)
}

// HTTPPut issues a PUT with a JSON body.
func (e *Env) HTTPPut(path string, body any) (*http.Response, error) {
	return e.do(http.MethodPut, path, body)
}

// HTTPDelete issues a DELETE.
func (e *Env) HTTPDelete(path string) (*http.Response, error) {
	return e.do(http.MethodDelete, path, nil)
}

func (e *Env) do(method, path string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(method, e.ts.URL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return http.DefaultClient.Do(req)
}

// DecodeBody decodes a JSON response body into v and closes it.
func DecodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
