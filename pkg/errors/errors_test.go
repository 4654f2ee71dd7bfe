package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"not found", NotFound("patient", nil), http.StatusNotFound},
		{"validation", Validation("nombre is required", nil), http.StatusBadRequest},
		{"duplicate key", DuplicateKey("dni", nil), http.StatusBadRequest},
		{"store unavailable", StoreUnavailable(nil), http.StatusServiceUnavailable},
		{"internal", Internal(nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode())
		})
	}
}

func TestDuplicateKeyMessageNamesField(t *testing.T) {
	err := DuplicateKey("dni", nil)
	assert.Contains(t, err.Message, "dni")
	assert.Equal(t, "dni", err.Field)

	unknown := DuplicateKey("", nil)
	assert.Equal(t, "duplicate key", unknown.Message)
}

func TestErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := StoreUnavailable(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCodePredicates(t *testing.T) {
	wrapped := fmt.Errorf("failed to create patient: %w", DuplicateKey("dni", nil))

	assert.True(t, IsDuplicateKey(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.True(t, IsNotFound(NotFound("patient", nil)))
	assert.True(t, IsValidation(Validation("bad", nil)))
	assert.False(t, IsValidation(fmt.Errorf("plain")))
}
