package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_analyzer/internal/domain"
)

func TestLogger_RecordsReviewFilters(t *testing.T) {
	var buf bytes.Buffer
	h := chimw.RequestID(Logger(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/reviews?location=Denver%2C+Colorado&start_date=2021-01-01&end_date=", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http_request", line["message"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "Denver, Colorado", line["location"])
	assert.Equal(t, "2021-01-01", line["start_date"])
	assert.NotContains(t, line, "end_date")
	assert.NotEmpty(t, line["request_id"])
	assert.Equal(t, float64(2), line["bytes"])
	assert.Equal(t, float64(200), line["status"])
}

func TestLogger_ServerErrorsLogAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	h := Logger(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, "internal error")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
}

func TestInvalidLocationLogsAllowList(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	t.Cleanup(func() { log.Logger = prev })

	rr := httptest.NewRecorder()
	writeDomainError(rr, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("%w: %q", domain.ErrInvalidLocation, "Atlantis"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, buf.String(), `"allowed":[`)
	assert.Contains(t, buf.String(), "Tucson, Arizona")
}
