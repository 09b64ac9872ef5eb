// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestJSONError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, fmt.Errorf("wrapped: %w", ForbiddenError("not yours")))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decode(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)
	assert.Equal(t, "not yours", resp.Error.Message)
}

func TestJSONError_OpaqueInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "connection refused")
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]int{"streak": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"streak":3}}`, rec.Body.String())
}

func TestAppError_Unwrap(t *testing.T) {
	err := NotFoundError("habit")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsAppError(fmt.Errorf("x: %w", err)))
	assert.False(t, IsAppError(ErrNotFound))
}

func TestFormatValidationError(t *testing.T) {
	type req struct {
		Name string `validate:"required"`
		Mood int    `validate:"min=1,max=5"`
	}

	err := validator.New().Struct(req{Mood: 9})
	msg := FormatValidationError(err)

	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "mood must be at most 5")
	assert.Equal(t, "invalid request", FormatValidationError(errors.New("x")))
}
