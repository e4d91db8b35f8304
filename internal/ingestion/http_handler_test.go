package ingestion

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operata/feedback-portal/internal/repository"
)

func multipartUpload(t *testing.T, fileName string, data []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/ingest", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandlerUpload(t *testing.T) {
	store := repository.NewMemoryStore()
	handler := NewHTTPHandler(newTestService(store))

	data := buildWorkbook(t, workbookSpec{
		schemaVersion: "v070",
		sector:        "Oil & Gas",
		tab:           DefaultTab,
		cells:         cleanCells(),
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartUpload(t, "feedback.xlsx", data, map[string]string{
		"actor": "inspector",
	}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summary Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, int64(1001), summary.IncidenceID)
	assert.Equal(t, 5, summary.AuditCount)
	assert.NotEmpty(t, summary.Report.Fields)
}

func TestHandlerRejectsFatalErrorsWithBadRequest(t *testing.T) {
	store := repository.NewMemoryStore()
	handler := NewHTTPHandler(newTestService(store))

	// Workbook with no data tab: the missing tab is the uploader's problem.
	data := buildWorkbook(t, workbookSpec{
		schemaVersion: "v070",
		sector:        "Oil & Gas",
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartUpload(t, "feedback.xlsx", data, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "tab")
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	store := repository.NewMemoryStore()
	handler := NewHTTPHandler(newTestService(store))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ingest", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestLogsHandler(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newTestService(store)

	// Provoke one recorded failure.
	data := buildWorkbook(t, workbookSpec{schemaVersion: "v070", sector: "Oil & Gas"})
	rec := httptest.NewRecorder()
	NewHTTPHandler(svc).ServeHTTP(rec, multipartUpload(t, "feedback.xlsx", data, nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	NewLogsHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ingest/logs", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "feedback.xlsx", entries[0]["file_name"])
}
