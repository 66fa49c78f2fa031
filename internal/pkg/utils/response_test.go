package utils

import (
	"errors"
	"neonatal-triage-service/internal/pkg/constvars"
	"neonatal-triage-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildSuccessResponse(t *testing.T) {
	rec := httptest.NewRecorder()

	BuildSuccessResponse(rec, constvars.StatusOK, "done", map[string]string{"k": "v"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constvars.MIMEApplicationJSON, rec.Header().Get(constvars.HeaderContentType))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])
	assert.Equal(t, map[string]any{"k": "v"}, body["data"])
}

func TestBuildErrorResponse(t *testing.T) {
	t.Run("Custom Error In Development", func(t *testing.T) {
		t.Setenv("APP_ENV", constvars.AppEnvDevelopment)
		rec := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), rec, exceptions.ErrProfileRequired(nil))

		assert.Equal(t, constvars.StatusPreconditionRequired, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, constvars.ErrClientProfileRequired, body["message"])
		assert.Equal(t, constvars.ErrDevProfileRequired, body["dev_message"])
	})

	t.Run("Dev Message Hidden In Production", func(t *testing.T) {
		t.Setenv("APP_ENV", constvars.AppEnvProduction)
		rec := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), rec, exceptions.ErrProfileRequired(nil))

		assert.NotContains(t, rec.Body.String(), "dev_message")
		assert.NotContains(t, rec.Body.String(), "locations")
	})

	t.Run("Plain Error", func(t *testing.T) {
		rec := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), rec, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), constvars.ErrClientSomethingWrongWithApplication)
	})
}

func TestDecodeStrictJSON(t *testing.T) {
	type target struct {
		Field string `json:"field"`
	}

	var ok target
	require.NoError(t, DecodeStrictJSON(strings.NewReader(`{"field":"tos"}`), &ok))
	assert.Equal(t, "tos", ok.Field)

	var rejected target
	assert.Error(t, DecodeStrictJSON(strings.NewReader(`{"field":"tos","extra":1}`), &rejected))
}
