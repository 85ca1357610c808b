package httpstatus

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/Bokan96/VillagePillage/internal/app"
	"github.com/Bokan96/VillagePillage/internal/domain"
	"github.com/Bokan96/VillagePillage/internal/ports"
)

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{})                     {}
func (noopLogger) Info(string, ...interface{})                      {}
func (noopLogger) Warn(string, ...interface{})                      {}
func (noopLogger) Error(string, ...interface{})                     {}
func (noopLogger) WithField(string, interface{}) runtime.Logger     { return noopLogger{} }
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger { return noopLogger{} }
func (noopLogger) Fields() map[string]interface{}                   { return nil }

type stubHistory struct {
	recs  []ports.RoundRecord
	limit int
}

func (h *stubHistory) AppendRound(context.Context, string, domain.RoundOutcome) error { return nil }

func (h *stubHistory) Rounds(_ context.Context, _ string, limit int) ([]ports.RoundRecord, error) {
	h.limit = limit
	return h.recs, nil
}

type stubGrants struct {
	grants map[uint32][]domain.MarketGrant
	room   string
	err    error
}

func (g *stubGrants) Grants(_ context.Context, room string, round uint32) ([]domain.MarketGrant, error) {
	g.room = room
	return g.grants[round], g.err
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStateServesSnapshot(t *testing.T) {
	snap := app.Snapshot{Seat: 1, Phase: domain.PhasePlanning, Round: 4, RemainingSeconds: 37}
	h := Router("oak", func(context.Context) (app.Snapshot, error) { return snap, nil }, nil, nil, noopLogger{})

	rec := get(t, h, "/state")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Seat             int    `json:"seat"`
		Phase            string `json:"phase"`
		Round            uint32 `json:"round"`
		RemainingSeconds int    `json:"remaining_seconds"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Seat != 1 || body.Phase != "planning" || body.Round != 4 || body.RemainingSeconds != 37 {
		t.Fatalf("body = %+v", body)
	}
}

func TestRoutes(t *testing.T) {
	failing := func(context.Context) (app.Snapshot, error) { return app.Snapshot{}, errors.New("stopped") }
	history := &stubHistory{recs: []ports.RoundRecord{{Room: "oak", Round: 2}}}

	tests := []struct {
		name    string
		history ports.HistoryPort
		path    string
		want    int
	}{
		{name: "health", path: "/healthz", want: http.StatusOK},
		{name: "engine down", path: "/state", want: http.StatusServiceUnavailable},
		{name: "history disabled", path: "/history", want: http.StatusNotFound},
		{name: "history", history: history, path: "/history", want: http.StatusOK},
		{name: "bad limit", history: history, path: "/history?limit=x", want: http.StatusBadRequest},
		{name: "unknown route", path: "/nope", want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Router("oak", failing, tt.history, nil, noopLogger{})
			if rec := get(t, h, tt.path); rec.Code != tt.want {
				t.Fatalf("GET %s = %d, want %d", tt.path, rec.Code, tt.want)
			}
		})
	}
}

func TestHistoryLimitIsCapped(t *testing.T) {
	history := &stubHistory{}
	h := Router("oak", nil, history, nil, noopLogger{})

	rec := get(t, h, "/history?limit=5000")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if history.limit != maxHistoryLimit {
		t.Fatalf("limit = %d, want %d", history.limit, maxHistoryLimit)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("body = %q, want empty array", body)
	}
	get(t, h, "/history")
	if history.limit != defaultHistoryLimit {
		t.Fatalf("default limit = %d", history.limit)
	}
}

func TestGrants(t *testing.T) {
	grants := &stubGrants{grants: map[uint32][]domain.MarketGrant{
		3: {{Seat: 0, Side: domain.SideRight, Kind: domain.GrantCard}},
	}}
	h := Router("oak", nil, nil, grants, noopLogger{})

	rec := get(t, h, "/grants/3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body []struct {
		Seat int    `json:"seat"`
		Side string `json:"side"`
		Kind string `json:"kind"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 1 || body[0].Side != "right" || body[0].Kind != "card" || grants.room != "oak" {
		t.Fatalf("body = %+v", body)
	}
	if body := get(t, h, "/grants/4").Body.String(); body != "[]\n" {
		t.Fatalf("empty round body = %q", body)
	}

	tests := []struct {
		name   string
		grants ports.GrantReader
		path   string
		want   int
	}{
		{name: "market disabled", path: "/grants/3", want: http.StatusNotFound},
		{name: "round zero", grants: grants, path: "/grants/0", want: http.StatusBadRequest},
		{name: "not a number", grants: grants, path: "/grants/x", want: http.StatusBadRequest},
		{name: "store error", grants: &stubGrants{err: errors.New("closed")}, path: "/grants/3", want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Router("oak", nil, nil, tt.grants, noopLogger{})
			if rec := get(t, h, tt.path); rec.Code != tt.want {
				t.Fatalf("GET %s = %d, want %d", tt.path, rec.Code, tt.want)
			}
		})
	}
}
