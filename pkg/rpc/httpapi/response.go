// Package httpapi is the chi-routed JSON transport exposing pkg/rpc's
// handler functions for local inspection/management tooling. It stands
// in for the spec's explicitly out-of-scope BLE/physical management RPC
// framing: the wire schema and handler semantics of §6 are in scope,
// this package is just a concrete way to drive them over HTTP.
package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/clavis/keymapd/internal/logger"
)

// Response is the standard envelope every endpoint responds with.
type Response struct {
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(resp); err != nil {
		logger.Error("failed to encode json response", logger.Err(err))
		http.Error(w, `{"status":"error","error":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func ok(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Status: "ok", Timestamp: time.Now().UTC(), Data: data})
}

func errorResponse(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Status: "error", Timestamp: time.Now().UTC(), Error: msg})
}

func badRequest(w http.ResponseWriter, msg string) { errorResponse(w, http.StatusBadRequest, msg) }

func statusJSON(w http.ResponseWriter, httpStatus int, label string, data interface{}) {
	writeJSON(w, httpStatus, Response{Status: label, Timestamp: time.Now().UTC(), Data: data})
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid request body")
		return false
	}
	return true
}
