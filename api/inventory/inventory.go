// Package inventory exposes the stock reconciliation wizard over HTTP:
// mask upload and validation, counting template generation, gap
// distribution and final file download, plus session history and audits.
package inventory

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"Moulinette/internal/config"
	"Moulinette/internal/session"
)

// NewRouter wires every reconciliation endpoint. Split from
// StartInventoryService so tests can mount the router directly.
func NewRouter(pool *pgxpool.Pool, cache *session.Cache) *mux.Router {
	store := NewStore(pool)

	r := mux.NewRouter()
	r.HandleFunc("/inventory/upload-mask", UploadMask(store, cache)).Methods(http.MethodPost)
	r.HandleFunc("/inventory/download-template/{session_id}", DownloadTemplate(store)).Methods(http.MethodGet)
	r.HandleFunc("/inventory/upload-filled-template/{session_id}", UploadFilledTemplate(store, cache)).Methods(http.MethodPost)
	r.HandleFunc("/inventory/download-final/{session_id}", DownloadFinal(store)).Methods(http.MethodGet)
	r.HandleFunc("/inventory/download-file/{session_id}/{file_type}", DownloadFile(store)).Methods(http.MethodGet)
	r.HandleFunc("/inventory/active-sessions", ActiveSessions(store)).Methods(http.MethodGet)
	r.HandleFunc("/inventory/session/{session_id}/resume", ResumeSession(store, cache)).Methods(http.MethodGet)
	r.HandleFunc("/inventory/session/{session_id}/status", SessionStatus(store)).Methods(http.MethodGet)
	r.HandleFunc("/inventory/session/{session_id}/audits", SessionAudits(store)).Methods(http.MethodGet)
	r.HandleFunc("/inventory/session/{session_id}", DeleteSession(store, cache)).Methods(http.MethodDelete)
	r.HandleFunc("/inventory/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)
	return r
}

// StartInventoryService creates the schema if needed and serves the
// reconciliation API on its own port, fronted by the gateway.
func StartInventoryService(pool *pgxpool.Pool, cache *session.Cache) {
	router := NewRouter(pool, cache)
	log.Println("[INFO] Inventory service listening on", config.InventoryAddr)
	err := http.ListenAndServe(config.InventoryAddr, router)
	if err != nil {
		log.Println("[ERROR] Inventory service stopped:", err)
	}
}
