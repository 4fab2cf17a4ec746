package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"thewall/internal/httputil"
	"thewall/internal/model"
	"thewall/internal/transport/http/middleware"
)

const maxBodyBytes = 64 << 10

// callerID returns the authenticated user or writes a 401.
func callerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
	}
	return userID, ok
}

// pathID parses a positive integer URL parameter or writes a 400.
func pathID(w http.ResponseWriter, r *http.Request, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteBadRequest(w, "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}

// decodeJSON reads a size-limited JSON body into dst or writes a 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return false
	}
	return true
}

func decodeContent(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req model.ContentRequest
	if !decodeJSON(w, r, &req) {
		return "", false
	}
	return req.Content, true
}
