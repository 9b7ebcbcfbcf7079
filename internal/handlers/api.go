// Package handlers contains the HTTP handlers of the landing gateway: the
// thin facade the static page calls instead of talking to the tenant API
// directly.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/centerplus/centerplus-landing/gateway/internal/adapters/centerplus"
	"github.com/centerplus/centerplus-landing/gateway/internal/cache"
	"github.com/centerplus/centerplus-landing/gateway/internal/leads"
	"github.com/centerplus/centerplus-landing/gateway/internal/logger"
	"github.com/centerplus/centerplus-landing/gateway/internal/ports"
)

// API bundles the dependencies of the facade handlers.
type API struct {
	tenant   ports.TenantAPI
	pipeline *leads.Pipeline
	lists    *cache.Lists
	log      *logger.Logger
}

// NewAPI creates the handler set.
func NewAPI(tenant ports.TenantAPI, pipeline *leads.Pipeline, lists *cache.Lists, log *logger.Logger) *API {
	return &API{tenant: tenant, pipeline: pipeline, lists: lists, log: log}
}

// HealthCheck answers liveness probes.
// Endpoint: GET /health
func (a *API) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errorResponse is the uniform error body of the facade.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeJSON serializes a response body.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps the error taxonomy onto HTTP statuses: validation 422,
// auth 401, connectivity 502, API errors keep their upstream status.
func (a *API) writeError(w http.ResponseWriter, err error) {
	var vErr *leads.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: vErr.Message, Field: vErr.Field})
		return
	}
	if centerplus.IsUnauthorized(err) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	if centerplus.IsConnectivity(err) {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	var apiErr *centerplus.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.Status, errorResponse{Error: apiErr.Error()})
		return
	}
	a.log.Error("unexpected handler error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Có lỗi xảy ra. Vui lòng thử lại."})
}
