// Package httpstatus serves a read-only JSON view of a running client.
package httpstatus

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/Bokan96/VillagePillage/internal/app"
	"github.com/Bokan96/VillagePillage/internal/domain"
	"github.com/Bokan96/VillagePillage/internal/ports"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// SnapshotFunc returns the current engine state.
type SnapshotFunc func(ctx context.Context) (app.Snapshot, error)

// Router builds the status routes. history and grants may be nil.
func Router(room string, snapshot SnapshotFunc, history ports.HistoryPort, grants ports.GrantReader, logger runtime.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Get("/state", func(w http.ResponseWriter, r *http.Request) {
		s, err := snapshot(r.Context())
		if err != nil {
			logger.Warn("status: snapshot: %v", err)
			http.Error(w, "engine unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, s)
	})

	r.Get("/history", func(w http.ResponseWriter, r *http.Request) {
		if history == nil {
			http.Error(w, "history disabled", http.StatusNotFound)
			return
		}
		limit := defaultHistoryLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, "bad limit", http.StatusBadRequest)
				return
			}
			limit = min(n, maxHistoryLimit)
		}
		recs, err := history.Rounds(r.Context(), room, limit)
		if err != nil {
			logger.Error("status: history: %v", err)
			http.Error(w, "history unavailable", http.StatusInternalServerError)
			return
		}
		if recs == nil {
			recs = []ports.RoundRecord{}
		}
		writeJSON(w, http.StatusOK, recs)
	})

	r.Get("/grants/{round}", func(w http.ResponseWriter, r *http.Request) {
		if grants == nil {
			http.Error(w, "market disabled", http.StatusNotFound)
			return
		}
		round, err := strconv.ParseUint(chi.URLParam(r, "round"), 10, 32)
		if err != nil || round == 0 {
			http.Error(w, "bad round", http.StatusBadRequest)
			return
		}
		list, err := grants.Grants(r.Context(), room, uint32(round))
		if err != nil {
			logger.Error("status: grants for round %d: %v", round, err)
			http.Error(w, "grants unavailable", http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []domain.MarketGrant{}
		}
		writeJSON(w, http.StatusOK, list)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// Serve runs the status server on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h http.Handler, logger runtime.Logger) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("status server listening on %s", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}
