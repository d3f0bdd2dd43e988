package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexibazaar/marketplace/internal/database/dbtest"
)

func TestProfileService_Get(t *testing.T) {
	env := setupTestEnv(t)
	user := dbtest.CreateUser(t, env.db, "alice")
	svc := NewProfileService(env.deps)

	view, err := svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Username)
	assert.Equal(t, "alice@example.com", view.Email)
	assert.Equal(t, "0.00", view.Balance)
	assert.Equal(t, 9, view.NotificationHour)
	assert.Zero(t, view.NotificationMinute)

	_, err = svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestProfileService_Update(t *testing.T) {
	env := setupTestEnv(t)
	user := dbtest.CreateUser(t, env.db, "alice")
	svc := NewProfileService(env.deps)
	ctx := context.Background()

	view, err := svc.Update(ctx, user.ID, ProfileInput{NotificationsEnabled: boolPtr(true), NotificationHour: intPtr(0)})
	require.NoError(t, err)
	assert.True(t, view.NotificationsEnabled)
	assert.Equal(t, 0, view.NotificationHour)
	assert.Equal(t, "alice", view.Username)

	_, err = svc.Update(ctx, user.ID, ProfileInput{NotificationHour: intPtr(24), NotificationMinute: intPtr(60)})
	serr := requireKind(t, err, KindValidation)
	assert.Contains(t, serr.Fields, "notification_hour")
	assert.Contains(t, serr.Fields, "notification_minute")

	_, err = svc.Update(ctx, 9999, ProfileInput{NotificationHour: intPtr(8)})
	assert.ErrorIs(t, err, ErrUnknownUser)
}
