package refdata

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerOptions(t *testing.T) {
	handler := NewHTTPHandler(Default())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dropdowns?field=emission_type", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var options []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &options))
	assert.Equal(t, PlaceholderOption, options[0])
	assert.Contains(t, options, "Venting")
}

func TestHandlerRecompute(t *testing.T) {
	handler := NewHTTPHandler(Default())

	body := `{"parentKey":"emission_type","parentValue":"Venting","current":{"emission_cause":"Cover Integrity"}}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dropdowns", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Choices map[string][]string `json:"choices"`
		Current map[string]string   `json:"current"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Choices["emission_cause"], "Planned Maintenance")
	assert.Equal(t, PlaceholderOption, resp.Current["emission_cause"])
}

func TestHandlerRecomputeRequiresParentKey(t *testing.T) {
	handler := NewHTTPHandler(Default())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dropdowns", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
