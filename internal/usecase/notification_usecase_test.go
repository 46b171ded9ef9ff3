package usecase

import (
	"context"
	"testing"

	"job-portal/internal/domain/notification"
	"job-portal/internal/domain/policy"
	"job-portal/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationUsecase_ReadState(t *testing.T) {
	db := newMemDB()
	ctx := context.Background()
	repo := memNotifications{db}
	uc := NewNotificationUsecase(repo, nil)

	owner := db.addProfile(profile.UserTypeJobSeeker)
	other := db.addProfile(profile.UserTypeJobSeeker)
	first, err := repo.Create(ctx, notification.Notification{UserID: owner.ID, Type: notification.TypeMessage, Title: "a"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, notification.Notification{UserID: owner.ID, Type: notification.TypeMessage, Title: "b"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.MarkRead(ctx, actorOf(other), first.ID), ErrForbidden)
	assert.ErrorIs(t, uc.MarkRead(ctx, actorOf(owner), uuid.New()), ErrNotFound)
	assert.ErrorIs(t, uc.MarkRead(ctx, policy.Actor{}, first.ID), ErrUnauthorized)

	require.NoError(t, uc.MarkRead(ctx, actorOf(owner), first.ID))
	require.NoError(t, uc.MarkRead(ctx, actorOf(owner), first.ID))

	unread, err := uc.List(ctx, actorOf(owner), true)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	n, err := uc.MarkAllRead(ctx, actorOf(owner))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	unread, err = uc.List(ctx, actorOf(owner), true)
	require.NoError(t, err)
	assert.Empty(t, unread)
}
