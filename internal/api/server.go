package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/fplstat/fplstat/internal/snapshot"
)

// NewServer creates an HTTP server with all routes configured.
func NewServer(port string, snapshots *snapshot.Service, refresher Refresher, adminAPIKey string) *http.Server {
	handler := NewHandler(snapshots, refresher)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/accounts", handler.ListAccounts)
	mux.HandleFunc("GET /api/v1/accounts/{account}/latest", handler.GetLatestSnapshot)
	mux.HandleFunc("GET /api/v1/accounts/{account}/snapshots/{date}", handler.GetSnapshotByDate)
	mux.HandleFunc("GET /api/v1/accounts/{account}/snapshots", handler.ListSnapshots)

	refreshHandler := http.HandlerFunc(handler.TriggerRefresh)
	if adminAPIKey != "" {
		mux.Handle("POST /api/v1/refresh", requireAuth(adminAPIKey, refreshHandler))
	} else {
		mux.Handle("POST /api/v1/refresh", refreshHandler)
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
