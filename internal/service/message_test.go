package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warblerhq/warbler/backend/internal/models"
	"github.com/warblerhq/warbler/backend/internal/testhelpers"
)

func TestCreateMessage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMessageService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "a@x.com", "secret1")

	msg, err := svc.Create(ctx, alice.ID, "first post")
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.Equal(t, alice.ID, msg.UserID)
	assert.False(t, msg.CreatedAt.IsZero())
}

func TestCreateMessageInvalidText(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMessageService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "a@x.com", "secret1")

	_, err := svc.Create(ctx, alice.ID, "")
	assert.True(t, IsValidationError(err))

	_, err = svc.Create(ctx, alice.ID, strings.Repeat("x", models.MaxMessageLength+1))
	assert.True(t, IsValidationError(err))

	// Exactly at the bound is fine.
	_, err = svc.Create(ctx, alice.ID, strings.Repeat("x", models.MaxMessageLength))
	assert.NoError(t, err)
}

func TestGetMessage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMessageService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "a@x.com", "secret1")
	bob := createUser(t, db, "bob", "b@x.com", "secret2")

	msg, err := svc.Create(ctx, alice.ID, "hello")
	require.NoError(t, err)
	_, err = svc.ToggleLike(ctx, bob.ID, msg.ID)
	require.NoError(t, err)

	got, err := svc.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, "alice", got.User.Username)
	assert.EqualValues(t, 1, got.LikeCount)

	_, err = svc.Get(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMessages(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMessageService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "a@x.com", "secret1")
	bob := createUser(t, db, "bob", "b@x.com", "secret2")

	first, err := svc.Create(ctx, alice.ID, "first")
	require.NoError(t, err)
	second, err := svc.Create(ctx, bob.ID, "second")
	require.NoError(t, err)
	third, err := svc.Create(ctx, alice.ID, "third")
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, first.ID, all[2].ID)

	byAlice, err := svc.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, byAlice, 2)
	assert.Equal(t, third.ID, byAlice[0].ID)
	assert.Equal(t, first.ID, byAlice[1].ID)
}

func TestListMessagesLikeCounts(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMessageService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "a@x.com", "secret1")
	bob := createUser(t, db, "bob", "b@x.com", "secret2")

	_, err := svc.Create(ctx, alice.ID, "nobody likes this")
	require.NoError(t, err)
	popular, err := svc.Create(ctx, alice.ID, "everybody likes this")
	require.NoError(t, err)

	_, err = svc.ToggleLike(ctx, alice.ID, popular.ID)
	require.NoError(t, err)
	_, err = svc.ToggleLike(ctx, bob.ID, popular.ID)
	require.NoError(t, err)

	// Every listing surface reports the same counts as a single read.
	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.EqualValues(t, 2, all[0].LikeCount)
	assert.Zero(t, all[1].LikeCount)

	byAlice, err := svc.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, byAlice, 2)
	assert.EqualValues(t, 2, byAlice[0].LikeCount)
	assert.Zero(t, byAlice[1].LikeCount)

	likedByBob, err := svc.ListLiked(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, likedByBob, 1)
	assert.Equal(t, popular.ID, likedByBob[0].ID)
	assert.EqualValues(t, 2, likedByBob[0].LikeCount)
}

func TestDeleteMessage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMessageService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "a@x.com", "secret1")
	bob := createUser(t, db, "bob", "b@x.com", "secret2")

	msg, err := svc.Create(ctx, alice.ID, "to be removed")
	require.NoError(t, err)
	_, err = svc.ToggleLike(ctx, bob.ID, msg.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, msg.ID, alice.ID))

	_, err = svc.Get(ctx, msg.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The message's likes went with it.
	var likeCount int64
	db.Model(&models.Like{}).Where("message_id = ?", msg.ID).Count(&likeCount)
	assert.Zero(t, likeCount)
}

func TestDeleteMessageNotOwner(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMessageService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "a@x.com", "secret1")
	bob := createUser(t, db, "bob", "b@x.com", "secret2")

	msg, err := svc.Create(ctx, alice.ID, "mine")
	require.NoError(t, err)
	_, err = svc.ToggleLike(ctx, bob.ID, msg.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, msg.ID, bob.ID), ErrUnauthorized)

	// Nothing was touched.
	got, err := svc.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.LikeCount)
}

func TestDeleteMessageNotFound(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMessageService(db)

	alice := createUser(t, db, "alice", "a@x.com", "secret1")
	assert.ErrorIs(t, svc.Delete(context.Background(), 9999, alice.ID), ErrNotFound)
}

func TestToggleLike(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMessageService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "a@x.com", "secret1")
	bob := createUser(t, db, "bob", "b@x.com", "secret2")

	msg, err := svc.Create(ctx, alice.ID, "toggle me")
	require.NoError(t, err)

	liked, err := svc.ToggleLike(ctx, bob.ID, msg.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := svc.LikeCount(ctx, msg.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// A second toggle unlikes.
	liked, err = svc.ToggleLike(ctx, bob.ID, msg.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = svc.LikeCount(ctx, msg.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestToggleLikeUnknownMessage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMessageService(db)

	alice := createUser(t, db, "alice", "a@x.com", "secret1")
	_, err := svc.ToggleLike(context.Background(), alice.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeCountManyUsers(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMessageService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "a@x.com", "secret1")
	bob := createUser(t, db, "bob", "b@x.com", "secret2")
	carol := createUser(t, db, "carol", "c@x.com", "secret3")

	msg, err := svc.Create(ctx, alice.ID, "popular")
	require.NoError(t, err)

	for _, u := range []*models.User{alice, bob, carol} {
		_, err := svc.ToggleLike(ctx, u.ID, msg.ID)
		require.NoError(t, err)
	}

	count, err := svc.LikeCount(ctx, msg.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	// One user backs out, the others' likes stand.
	_, err = svc.ToggleLike(ctx, bob.ID, msg.ID)
	require.NoError(t, err)
	count, err = svc.LikeCount(ctx, msg.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestListLiked(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMessageService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "a@x.com", "secret1")
	bob := createUser(t, db, "bob", "b@x.com", "secret2")

	m1, err := svc.Create(ctx, alice.ID, "one")
	require.NoError(t, err)
	m2, err := svc.Create(ctx, alice.ID, "two")
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice.ID, "three")
	require.NoError(t, err)

	_, err = svc.ToggleLike(ctx, bob.ID, m1.ID)
	require.NoError(t, err)
	_, err = svc.ToggleLike(ctx, bob.ID, m2.ID)
	require.NoError(t, err)

	liked, err := svc.ListLiked(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, liked, 2)
	for _, m := range liked {
		assert.Equal(t, "alice", m.User.Username)
	}

	none, err := svc.ListLiked(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
