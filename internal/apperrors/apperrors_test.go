package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", Validation("taste must be between 0 and 10"), http.StatusBadRequest},
		{"division", Division("mood must not be zero"), http.StatusBadRequest},
		{"not found", NotFound("score entry not found"), http.StatusNotFound},
		{"storage", StorageUnavailable("insert failed", errors.New("disk I/O error")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped validation", fmt.Errorf("submit: %w", Validation("bad")), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestIsAndUnwrap(t *testing.T) {
	cause := errors.New("database is locked")
	err := fmt.Errorf("create: %w", StorageUnavailable("failed to store score entry", cause))

	assert.True(t, Is(err, CodeStorageUnavailable))
	assert.False(t, Is(err, CodeValidation))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "STORAGE_UNAVAILABLE")
	assert.Contains(t, err.Error(), "database is locked")
}

func TestValidationf(t *testing.T) {
	err := Validationf("%s must be between %d and %d", "value", 0, 10)
	assert.Equal(t, "VALIDATION_ERROR: value must be between 0 and 10", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeDivision, CodeOf(fmt.Errorf("submit: %w", Division("zero"))))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}
