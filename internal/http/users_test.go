package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexibazaar/marketplace/internal/services"
)

func TestProfile(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "alice")

	w := s.do(t, http.MethodGet, "/user/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile services.ProfileView
	decode(t, w, &profile)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, "0.00", profile.Balance)
	assert.Equal(t, 9, profile.NotificationHour)

	w = s.do(t, http.MethodPatch, "/user/profile", token, map[string]any{
		"notifications_enabled": true,
		"notification_minute":   45,
		"username":              "ignored",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &profile)
	assert.True(t, profile.NotificationsEnabled)
	assert.Equal(t, 45, profile.NotificationMinute)
	assert.Equal(t, 9, profile.NotificationHour)
	assert.Equal(t, "alice", profile.Username, "identity is read-only")

	w = s.do(t, http.MethodPut, "/user/profile", token, map[string]any{"notification_hour": 24})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Details, "notification_hour")
}
