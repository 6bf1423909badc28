// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/omarket-go/internal/ai"
	"github.com/olegiv/omarket-go/internal/cache"
	"github.com/olegiv/omarket-go/internal/engine"
	"github.com/olegiv/omarket-go/internal/imaging"
	"github.com/olegiv/omarket-go/internal/middleware"
	"github.com/olegiv/omarket-go/internal/session"
	"github.com/olegiv/omarket-go/internal/store"
)

const testAdminEmail = "admin@example.com"

// testServer bundles the API under test with a cookie-carrying client.
type testServer struct {
	*httptest.Server
	eng    *engine.Engine
	client *http.Client
}

// newTestServer wires a full API stack over a temporary database:
// session middleware, user loading and all routes.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "omarket-handler.db")
	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrating db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	eng, err := engine.New(context.Background(), store.NewSnapshots(db), engine.Options{AdminEmail: testAdminEmail})
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}

	c := cache.NewMemory(cache.MemoryOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })

	sm := session.New(db, true)

	h := New(Options{
		Engine:   eng,
		AI:       ai.New(ai.Options{Cache: c}),
		Sessions: sm,
		Images:   imaging.NewProcessor(t.TempDir()),
		Cache:    c,
		Version:  "test",
	})

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Use(middleware.LoadUser(sm, eng))
	h.Routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("creating cookie jar: %v", err)
	}

	return &testServer{
		Server: srv,
		eng:    eng,
		client: &http.Client{Jar: jar},
	}
}

// do sends a JSON request and returns the response.
func (ts *testServer) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// decodeData decodes the response envelope's data field into dst and
// closes the body.
func decodeData(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding response envelope: %v", err)
	}
	if dst != nil {
		if err := json.Unmarshal(envelope.Data, dst); err != nil {
			t.Fatalf("decoding response data: %v", err)
		}
	}
}

// wantStatus fails the test unless the response has the given status.
func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d", resp.StatusCode, want)
	}
}

// drain closes a response body we do not inspect.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// login signs an email in through the API.
func (ts *testServer) login(t *testing.T, email string) {
	t.Helper()
	resp := ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": email})
	wantStatus(t, resp, http.StatusOK)
	drain(resp)
}
