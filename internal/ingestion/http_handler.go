package ingestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/operata/feedback-portal/internal/domain"
)

// Handler exposes ingestion as an HTTP endpoint.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with a POST upload endpoint.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("file required: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	req := Request{
		FileName:      header.Filename,
		Data:          file,
		SchemaVersion: strings.TrimSpace(r.FormValue("schemaVersion")),
		Sector:        strings.TrimSpace(r.FormValue("sector")),
		Tab:           strings.TrimSpace(r.FormValue("tab")),
		Actor:         strings.TrimSpace(r.FormValue("actor")),
		Comment:       strings.TrimSpace(r.FormValue("comment")),
	}

	if raw := strings.TrimSpace(r.FormValue("incidenceId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid incidence id: %v", err), http.StatusBadRequest)
			return
		}
		req.IncidenceID = &id
	}

	summary, err := h.service.Ingest(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// LogsHandler lists recorded ingestion failures.
type LogsHandler struct {
	service *Service
}

// NewLogsHandler exposes the ingestion failure log.
func NewLogsHandler(service *Service) http.Handler {
	return &LogsHandler{service: service}
}

func (h *LogsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	entries, err := h.service.Logs(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []domain.IngestionLogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// statusFor maps the fatal-error taxonomy onto HTTP statuses. All fatal
// ingestion conditions are the uploader's problem except storage failures.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSchemaNotFound),
		errors.Is(err, domain.ErrMissingTab),
		errors.Is(err, domain.ErrMissingSector),
		errors.Is(err, domain.ErrEmptyPayload),
		errors.Is(err, domain.ErrUnknownSector),
		errors.Is(err, domain.ErrUnknownSectorType),
		errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
