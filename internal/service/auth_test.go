package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warblerhq/warbler/backend/internal/models"
	"github.com/warblerhq/warbler/backend/internal/testhelpers"
	"github.com/warblerhq/warbler/backend/internal/types"
)

func signupReq(username, email, password string) *types.SignupRequest {
	return &types.SignupRequest{Username: username, Email: email, Password: password}
}

func TestSignup(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	user, err := svc.Signup(ctx, signupReq("alice", "a@x.com", "secret1"))
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.DefaultImageURL, user.ImageURL)
	assert.Equal(t, models.DefaultHeaderImageURL, user.HeaderImageURL)

	// Plaintext never stored
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, CheckPassword("secret1", user.PasswordHash))
}

func TestSignupCustomImage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	req := signupReq("alice", "a@x.com", "secret1")
	req.ImageURL = "https://example.com/me.png"
	user, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/me.png", user.ImageURL)
}

func TestSignupDuplicateUsername(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupReq("alice", "a@x.com", "secret1"))
	require.NoError(t, err)

	_, err = svc.Signup(ctx, signupReq("alice", "other@x.com", "secret2"))
	assert.ErrorIs(t, err, ErrDuplicateKey)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupReq("alice", "a@x.com", "secret1"))
	require.NoError(t, err)

	_, err = svc.Signup(ctx, signupReq("alice2", "a@x.com", "secret3"))
	assert.ErrorIs(t, err, ErrDuplicateKey)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSignupInvalidInput(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupReq("", "a@x.com", "secret1"))
	assert.True(t, IsValidationError(err))

	_, err = svc.Signup(ctx, signupReq("alice", "nope", "secret1"))
	assert.True(t, IsValidationError(err))

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestAuthenticate(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	created, err := svc.Signup(ctx, signupReq("alice", "a@x.com", "secret1"))
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)
}

func TestAuthenticateNoMatchIndistinguishable(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupReq("alice", "a@x.com", "secret1"))
	require.NoError(t, err)

	// Wrong password and unknown username look the same to the caller.
	wrongPass, err1 := svc.Authenticate(ctx, "alice", "wrong-password")
	noUser, err2 := svc.Authenticate(ctx, "nobody", "secret1")

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Nil(t, wrongPass)
	assert.Nil(t, noUser)
}

func TestTokenRoundTrip(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	user, err := svc.Signup(context.Background(), signupReq("alice", "a@x.com", "secret1"))
	require.NoError(t, err)

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestValidateTokenInvalid(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	claims, err := svc.ValidateToken("invalid.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	other := NewAuthService(db, "other-secret")

	user, err := svc.Signup(context.Background(), signupReq("alice", "a@x.com", "secret1"))
	require.NoError(t, err)

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
