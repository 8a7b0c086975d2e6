package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrInvalidOrder, http.StatusUnprocessableEntity},
		{ErrInvalidTag, http.StatusUnprocessableEntity},
		{ErrInvalidReference, http.StatusUnprocessableEntity},
		{ErrConflict, http.StatusConflict},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
		{errors.New("anything else"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", ErrNotFound), http.StatusNotFound},
		{Conflict("username"), http.StatusConflict},
		{New(http.StatusUnprocessableEntity, "too short", ErrBadRequest), http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MapErrorToStatus(tc.err), "MapErrorToStatus(%v)", tc.err)
	}
}

func TestConflictMessage(t *testing.T) {
	err := Conflict("email")
	assert.Equal(t, "email already taken", err.Message)
	assert.ErrorIs(t, err, ErrConflict)
}
