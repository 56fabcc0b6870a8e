package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"taskd/internal/store"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	store store.Store
}

// New creates a new Handlers instance.
func New(s store.Store) *Handlers {
	return &Handlers{store: s}
}

// parseID extracts and parses an unsigned task ID from URL parameters.
func parseID(r *http.Request, param string) (uint64, error) {
	idStr := chi.URLParam(r, param)
	return strconv.ParseUint(idStr, 10, 64)
}

var errContentType = errors.New("content type must be application/json")

// maxBodySize caps request bodies read by decodeJSON.
const maxBodySize = 2 << 20

// decodeJSON reads a JSON request body into v. The request must declare a
// JSON content type and the body must hold exactly one JSON value.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return errContentType
	}
	if mediaType != "application/json" && !strings.HasSuffix(mediaType, "+json") {
		return errContentType
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// respondDecodeError maps a decodeJSON failure to a status code.
func respondDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	respondError(w, http.StatusBadRequest, err.Error())
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	w.Write([]byte(message))
}

// respondJSON writes v as a JSON body with status 200.
func respondJSON(w http.ResponseWriter, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("failed to encode response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// logSaveError records a failed save. The request still succeeds because the
// in-memory change has already been applied.
func logSaveError(op string, id uint64, err error) {
	if err != nil {
		log.Printf("failed to save tasks after %s %d: %v", op, id, err)
	}
}
