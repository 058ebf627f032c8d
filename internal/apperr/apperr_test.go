package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{"validation", Validation("title is required"), KindValidation, http.StatusBadRequest},
		{"not found", NotFound("Journal not found"), KindNotFound, http.StatusNotFound},
		{"unauthorized", Unauthorized("Unauthorized"), KindUnauthorized, http.StatusUnauthorized},
		{"conflict", Conflict("busy"), KindConflict, http.StatusConflict},
		{"wrapped", fmt.Errorf("listing: %w", NotFound("Mood not found")), KindNotFound, http.StatusNotFound},
		{"plain", errors.New("boom"), KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.status, KindOf(tt.err).Status())
		})
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, "Internal Server Error", Message(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal Server Error", Message(cause))
}
