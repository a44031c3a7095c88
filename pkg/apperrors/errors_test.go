package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("row not found")
	err := ErrNotFound(cause)

	assert.Equal(t, CodeNotFound, err.Code)
	assert.Equal(t, http.StatusNotFound, err.HTTPCode)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "row not found")
}

func TestErrorAsThroughWrapping(t *testing.T) {
	inner := InternalError(errors.New("db gone"))

	var appErr *AppError
	require.ErrorAs(t, error(inner), &appErr)
	assert.Equal(t, CodeInternalError, appErr.Code)
}

func TestMarshalHidesInternals(t *testing.T) {
	err := InternalError(errors.New("connection refused to 10.0.0.1"))

	raw, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "Internal server error", payload["message"])
	assert.NotContains(t, string(raw), "10.0.0.1")
	assert.NotContains(t, string(raw), "HTTPCode")
}

func TestValidationErrorCarriesDetails(t *testing.T) {
	err := ValidationError(map[string]string{"email": "Must be a valid email address"})

	assert.Equal(t, CodeValidationFailed, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode)

	raw, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.Contains(t, string(raw), "Must be a valid email address")
}

func TestDomainErrorStatuses(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, ErrDoctorNotVerified.HTTPCode)
	assert.Equal(t, http.StatusConflict, ErrVerificationPending.HTTPCode)
	assert.Equal(t, http.StatusConflict, ErrVerificationNotPending.HTTPCode)
	assert.Equal(t, http.StatusBadRequest, ErrRejectionReasonRequired.HTTPCode)
	assert.Equal(t, http.StatusUnauthorized, ErrInvalidCredentials.HTTPCode)
	assert.Equal(t, http.StatusConflict, ErrEmailAlreadyExists.HTTPCode)
	assert.Equal(t, http.StatusRequestEntityTooLarge, ErrFileTooLarge.HTTPCode)
}

func TestWithDetails(t *testing.T) {
	err := NewBadRequestError("bad cursor").WithDetails(map[string]string{"cursor": "unparseable"})
	assert.NotNil(t, err.Details)
	assert.Equal(t, "bad cursor", err.Message)
}
