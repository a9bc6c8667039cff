package stub

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBody = `{"description":{"participantInn":"7700000000"},"doc_id":"doc-1","doc_status":"DRAFT",` +
	`"doc_type":"LP_INTRODUCE_GOODS","importRequest":false,"owner_inn":"1","participant_inn":"7700000000",` +
	`"producer_inn":"2","production_date":"2020-01-23","production_type":"OWN_PRODUCTION",` +
	`"products":[],"reg_date":"2020-01-24","reg_number":"R-1"}`

func postCreate(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, CreatePath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("X-Signature", "sig")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_AcceptsValidDocument(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := New()

	w := postCreate(t, s.Handler(), validBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"value":"doc-1","doc_type":"LP_INTRODUCE_GOODS","products":0}`, w.Body.String())
	require.Equal(t, 1, s.Count())
	got := s.Received()[0]
	assert.Equal(t, "doc-1", got.Document.DocID)
	assert.Equal(t, "2020-01-24", got.Document.RegDate.String())
	assert.Equal(t, "sig", got.Header.Get("X-Signature"))
}

func TestServer_RejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := New()

	tests := map[string]string{
		"not json":   `{"doc_id":`,
		"bad date":   strings.Replace(validBody, `"reg_date":"2020-01-24"`, `"reg_date":"24/01/2020"`, 1),
		"wrong type": `{"products":"none"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			w := postCreate(t, s.Handler(), body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
	assert.Equal(t, 0, s.Count())
}

func TestServer_ForcedFailureStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := New(WithFailStatus(http.StatusServiceUnavailable))
	h := s.Handler()

	w := postCreate(t, h, validBody)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, 1, s.Count(), "failed requests are still recorded")

	s.SetFailStatus(0)
	w = postCreate(t, h, validBody)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_RegisterOnExistingRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	New().Register(router)

	req := httptest.NewRequest(http.MethodGet, CreatePath, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code, "only POST is routed")
}
