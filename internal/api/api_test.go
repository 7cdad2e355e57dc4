package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/lachiem1/weekwise/internal/api"
	"github.com/lachiem1/weekwise/internal/engine"
	"github.com/lachiem1/weekwise/internal/storage"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := storage.Open(context.Background(), storage.Config{
		Mode: storage.ModePlain,
		Path: filepath.Join(t.TempDir(), "weekwise.db"),
	})
	if err != nil {
		t.Fatalf("storage.Open() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return api.NewRouter(&api.Handler{
		Engine: engine.New(storage.NewStore(db), log.New(io.Discard, "", 0)),
		Now:    func() time.Time { return time.Date(2024, time.June, 20, 9, 0, 0, 0, time.Local) },
	})
}

func do(t *testing.T, h http.Handler, method, target, user, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if user != "" {
		req.Header.Set(api.UserHeader, user)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestMissingUserHeader(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServer(t), http.MethodGet, "/api/home", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("GET /api/home status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHomeWithoutPaydayNeedsOnboarding(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServer(t), http.MethodGet, "/api/home", "ana", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("GET /api/home status = %d, want %d", rec.Code, http.StatusConflict)
	}
	var body struct {
		Onboarding bool `json:"onboarding"`
	}
	decode(t, rec, &body)
	if !body.Onboarding {
		t.Fatalf("onboarding = false, want true")
	}
}

func TestValidationErrorsAreBadRequests(t *testing.T) {
	t.Parallel()

	h := newTestServer(t)
	tests := []struct {
		name   string
		method string
		target string
		body   string
		field  string
	}{
		{"payday out of range", http.MethodPut, "/api/settings/payday", `{"payday":32}`, "payday"},
		{"expense without name", http.MethodPost, "/api/expenses/", `{"name":"","value":"5"}`, "name"},
		{"expense bad date", http.MethodPost, "/api/expenses/", `{"name":"tea","value":"5","date_expense":"yesterday"}`, "date_expense"},
		{"negative bill", http.MethodPost, "/api/bills/", `{"name":"rent","value":"-1","day":1}`, "value"},
		{"unknown field", http.MethodPost, "/api/incomes/", `{"nome":"x"}`, "body"},
		{"bad id", http.MethodDelete, "/api/bills/abc", "", "id"},
		{"bad leftover action", http.MethodPost, "/api/cycle/new/leftover", `{"action":"burn"}`, "action"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, tc.method, tc.target, "ana", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
			var body struct {
				Error string `json:"error"`
				Field string `json:"field"`
			}
			decode(t, rec, &body)
			if body.Field != tc.field || body.Error == "" {
				t.Fatalf("error body = %+v, want field %q", body, tc.field)
			}
		})
	}
}

func TestCycleFlow(t *testing.T) {
	t.Parallel()

	h := newTestServer(t)
	steps := []struct {
		method string
		target string
		body   string
		want   int
	}{
		{http.MethodPut, "/api/settings/payday", `{"payday":13}`, http.StatusOK},
		{http.MethodPost, "/api/incomes/", `{"name":"salary","value":"2000","type":"salary"}`, http.StatusCreated},
		{http.MethodPost, "/api/bills/", `{"name":"rent","value":"500","day":1}`, http.StatusCreated},
	}
	for _, s := range steps {
		if rec := do(t, h, s.method, s.target, "ana", s.body); rec.Code != s.want {
			t.Fatalf("%s %s status = %d, want %d (body %s)", s.method, s.target, rec.Code, s.want, rec.Body.String())
		}
	}

	rec := do(t, h, http.MethodGet, "/api/cycle/new/", "ana", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET draft status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var draft engine.CycleDraft
	decode(t, rec, &draft)
	if draft.WeeklyOriginal != 300 {
		t.Fatalf("draft.WeeklyOriginal = %v, want 300", draft.WeeklyOriginal)
	}

	rec = do(t, h, http.MethodPost, "/api/cycle/new/confirm", "ana", `{"weekly_original":"300","weekly_new":"300"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST confirm status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/cycle/new/", "ana", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("GET draft with active cycle status = %d, want %d", rec.Code, http.StatusConflict)
	}

	rec = do(t, h, http.MethodPost, "/api/expenses/", "ana", `{"name":"groceries","value":"42.50"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST expense status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/home", "ana", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET home status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var home engine.HomeView
	decode(t, rec, &home)
	if home.Totals.WeeklyLimit != 300 || home.Totals.RawSpent != 42.5 {
		t.Fatalf("home totals = %+v, want limit 300 and spent 42.5", home.Totals)
	}
	if home.WeekLabel != "17 Jun - 23 Jun" {
		t.Fatalf("home.WeekLabel = %q, want %q", home.WeekLabel, "17 Jun - 23 Jun")
	}
}

func TestOtherUsersRecordsAreForbidden(t *testing.T) {
	t.Parallel()

	h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/api/bills/", "ana", `{"name":"rent","value":"500","day":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST bill status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var bill struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &bill)

	target := "/api/bills/" + strconv.FormatInt(bill.ID, 10)
	if rec := do(t, h, http.MethodDelete, target, "bob", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("DELETE as other user status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if rec := do(t, h, http.MethodDelete, "/api/bills/9999", "ana", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("DELETE missing bill status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if rec := do(t, h, http.MethodDelete, target, "ana", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE own bill status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}
