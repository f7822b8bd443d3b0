package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/symplace/symplace/pkg/pipeline"
	"github.com/symplace/symplace/pkg/store"
)

const testNetlist = `
[[modules]]
name = "a"
width = 4
height = 2

[[modules]]
name = "a2"
width = 4
height = 2

[[groups]]
name = "sg1"
type = "vertical"
pairs = [["a", "a2"]]
`

func newTestServer(st store.Store) *Server {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	runner.Store = st
	return NewServer(runner, st, logger)
}

func postPlace(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/place", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := newTestServer(nil).Handler()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if id := rec.Header().Get("X-Request-Id"); id == "" {
		t.Error("missing request ID header")
	}
}

func TestPlace(t *testing.T) {
	h := newTestServer(nil).Handler()
	rec := postPlace(t, h, placeRequest{Netlist: testNetlist, Iterations: 50, SVG: true})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp placeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RunID == "" || resp.Area <= 0 {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Placement.Blocks) != 2 {
		t.Errorf("placement blocks = %d, want 2", len(resp.Placement.Blocks))
	}
	if !strings.Contains(resp.SVG, "<svg") {
		t.Error("missing svg in response")
	}
}

func TestPlaceRejectsBadNetlist(t *testing.T) {
	h := newTestServer(nil).Handler()
	rec := postPlace(t, h, placeRequest{Netlist: "not [valid toml"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "INVALID_NETLIST" {
		t.Errorf("error code = %q, want INVALID_NETLIST", resp.Error.Code)
	}
}

func TestPlaceRejectsBadJSON(t *testing.T) {
	h := newTestServer(nil).Handler()
	req := httptest.NewRequest(http.MethodPost, "/v1/place", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRunsEndpoints(t *testing.T) {
	st := store.NewMemoryStore()
	h := newTestServer(st).Handler()

	rec := postPlace(t, h, placeRequest{Netlist: testNetlist, Iterations: 50})
	if rec.Code != http.StatusOK {
		t.Fatalf("place status = %d", rec.Code)
	}
	var placed placeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &placed); err != nil {
		t.Fatal(err)
	}

	// Fetch the archived run.
	req := httptest.NewRequest(http.MethodGet, "/v1/runs/"+placed.RunID, nil)
	getRec := httptest.NewRecorder()
	h.ServeHTTP(getRec, req)
	if getRec.Code != http.StatusOK {
		t.Fatalf("get run status = %d", getRec.Code)
	}
	var rec2 store.Record
	if err := json.Unmarshal(getRec.Body.Bytes(), &rec2); err != nil {
		t.Fatal(err)
	}
	if rec2.ID != placed.RunID {
		t.Errorf("record ID = %s, want %s", rec2.ID, placed.RunID)
	}

	// List runs.
	listReq := httptest.NewRequest(http.MethodGet, "/v1/runs?limit=5", nil)
	listRec := httptest.NewRecorder()
	h.ServeHTTP(listRec, listReq)
	if listRec.Code != http.StatusOK {
		t.Fatalf("list status = %d", listRec.Code)
	}
	var recs []store.Record
	if err := json.Unmarshal(listRec.Body.Bytes(), &recs); err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Errorf("listed %d runs, want 1", len(recs))
	}
}

func TestRunNotFound(t *testing.T) {
	st := store.NewMemoryStore()
	h := newTestServer(st).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/runs/ghost", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRunsWithoutStore(t *testing.T) {
	h := newTestServer(nil).Handler()
	req := httptest.NewRequest(http.MethodGet, "/v1/runs", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
