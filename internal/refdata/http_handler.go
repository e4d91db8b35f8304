package refdata

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Handler serves dropdown option lists and contingent recomputation to the
// form-editing frontend.
type Handler struct {
	ref ReferenceData
}

// NewHTTPHandler exposes the reference data over HTTP.
func NewHTTPHandler(ref ReferenceData) *Handler {
	return &Handler{ref: ref}
}

// recomputeRequest mirrors the editing session state: the parent field's new
// value and the dependent fields' current selections.
type recomputeRequest struct {
	ParentKey   string            `json:"parentKey"`
	ParentValue string            `json:"parentValue"`
	Current     map[string]string `json:"current"`
}

type recomputeResponse struct {
	Choices map[string][]string `json:"choices"`
	Current map[string]string   `json:"current"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.options(w, r)
	case http.MethodPost:
		h.recompute(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) options(w http.ResponseWriter, r *http.Request) {
	field := strings.TrimSpace(r.URL.Query().Get("field"))
	if field == "" {
		writeJSON(w, http.StatusOK, h.ref.Options)
		return
	}
	writeJSON(w, http.StatusOK, h.ref.OptionsFor(field))
}

func (h *Handler) recompute(w http.ResponseWriter, r *http.Request) {
	var req recomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ParentKey == "" {
		http.Error(w, "parentKey is required", http.StatusBadRequest)
		return
	}
	if req.Current == nil {
		req.Current = map[string]string{}
	}

	choices := Recompute(req.ParentKey, req.ParentValue, h.ref, req.Current)
	if choices == nil {
		choices = map[string][]string{}
	}
	writeJSON(w, http.StatusOK, recomputeResponse{Choices: choices, Current: req.Current})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
