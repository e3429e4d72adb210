package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/senselive/vms-api/internal/services"
	"github.com/senselive/vms-api/internal/statemachine"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", services.NewValidationError("Invalid visit type specified."), http.StatusBadRequest, "Invalid visit type specified."},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, services.ErrInvalidCredentials.Error()},
		{"wrong old password", services.ErrOldPasswordWrong, http.StatusUnauthorized, services.ErrOldPasswordWrong.Error()},
		{"security already approved", statemachine.ErrSecurityAlreadyApproved, http.StatusForbidden, statemachine.ErrSecurityAlreadyApproved.Error()},
		{"manager not approved", statemachine.ErrManagerNotApproved, http.StatusForbidden, statemachine.ErrManagerNotApproved.Error()},
		{"exit already approved", statemachine.ErrExitAlreadyApproved, http.StatusForbidden, statemachine.ErrExitAlreadyApproved.Error()},
		{"not found", services.ErrNotFound, http.StatusNotFound, services.ErrNotFound.Error()},
		{"unexpected", errors.New("pq: connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]any
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, errors.New("dial tcp 10.0.0.5:5432: i/o timeout"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestProcessedLogsRequiresDateRange(t *testing.T) {
	h := NewSecurityHandler(nil, nil, nil)

	tests := []struct {
		name  string
		query string
	}{
		{"no dates", ""},
		{"start only", "?start_date=2026-08-01"},
		{"end only", "?end_date=2026-08-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/security/processed-logs"+tt.query, nil)

			h.ProcessedLogs(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Start and end date are required")
		})
	}
}

func TestProcessedLogsRejectsInvertedRange(t *testing.T) {
	h := NewSecurityHandler(nil, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/security/processed-logs?start_date=2026-08-31&end_date=2026-08-01", nil)

	h.ProcessedLogs(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOptionalDateRange(t *testing.T) {
	newCtx := func(query string) (*gin.Context, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/analytics"+query, nil)
		return c, w
	}

	c, _ := newCtx("")
	start, end, ok := optionalDateRange(c)
	assert.True(t, ok)
	assert.Nil(t, start)
	assert.Nil(t, end)

	c, _ = newCtx("?start_date=2026-08-01&end_date=2026-08-31")
	start, end, ok = optionalDateRange(c)
	assert.True(t, ok)
	assert.NotNil(t, start)
	assert.NotNil(t, end)

	c, w := newCtx("?start_date=08/01/2026")
	_, _, ok = optionalDateRange(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
