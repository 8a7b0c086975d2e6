package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/devfolio/backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	allowed, err := CheckAndSetRateLimit(context.Background(), nil, "203.0.113.7", "contact", time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	ttl, err := GetRateLimitTTL(context.Background(), nil, "203.0.113.7", "contact")
	require.NoError(t, err)
	assert.Zero(t, ttl)
}

func TestRateLimitErrorMapsToTooManyRequests(t *testing.T) {
	err := &RateLimitError{
		Message:    "you can only send one message every 60 seconds. Please wait 42 seconds",
		RetryAfter: 42 * time.Second,
	}

	assert.ErrorIs(t, err, apperror.ErrRateLimitExceeded)
	assert.Equal(t, http.StatusTooManyRequests, apperror.MapErrorToStatus(err))
	assert.Equal(t, err.Message, err.Error())
}
