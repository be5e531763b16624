package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	httpserver "hotel_api/internal/adapters/http_server"
	"hotel_api/internal/app"
	"hotel_api/internal/storage/sqlstore"
)

// newAPI runs the full stack against a migrated SQLite file.
func newAPI(t *testing.T, opts httpserver.Options) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	db, err := sqlstore.Open(ctx, sqlstore.Options{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "api.db")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if _, err := sqlstore.NewMigrator(db).Up(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := sqlstore.New(db)

	srv := httpserver.New(opts)
	srv.MountHandlers(&httpserver.Handlers{
		Q: app.NewQueryService(repo, nil, time.Minute),
		C: app.NewCommandService(repo, nil),
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r response) decode(t *testing.T, dst any) {
	t.Helper()
	if err := json.Unmarshal(r.body, dst); err != nil {
		t.Fatalf("decode %q: %v", r.body, err)
	}
}

func do(t *testing.T, ts *httptest.Server, method, path string, body any) response {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	raw, _ := io.ReadAll(res.Body)
	return response{status: res.StatusCode, header: res.Header, body: raw}
}

func expect(t *testing.T, r response, status int) {
	t.Helper()
	if r.status != status {
		t.Fatalf("status %d, want %d; body=%s", r.status, status, r.body)
	}
}

func createHotel(t *testing.T, ts *httptest.Server) int64 {
	t.Helper()
	res := do(t, ts, http.MethodPost, "/api/Hotel", map[string]any{
		"name": "Grand", "address": "1 Main St", "phoneNumber": "555-0100",
	})
	expect(t, res, http.StatusCreated)
	var h struct {
		ID int64 `json:"id"`
	}
	res.decode(t, &h)
	return h.ID
}

func roomJSON(hotelID, number int64) map[string]any {
	return map[string]any{
		"roomNumber":   number,
		"hotelId":      hotelID,
		"nightlyRate":  129.5,
		"numberOfBeds": 2,
		"roomTypeId":   1,
		"bedTypeId":    2,
	}
}
