package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	db "glassfin-server/src/db/sql"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: Failed to encode response: %v", err)
	}
}

// userIDFrom reads the authenticated user id the JWT middleware stored
// on the request context.
func userIDFrom(r *http.Request) int64 {
	id, _ := r.Context().Value("user_id").(int64)
	return id
}

func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// handleStoreError maps a store error to a response. Missing rows and
// rows owned by another user both answer 404.
func handleStoreError(w http.ResponseWriter, err error, entity string) {
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, entity+" not found", http.StatusNotFound)
		return
	}
	log.Printf("ERROR: %s query failed: %v", entity, err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
