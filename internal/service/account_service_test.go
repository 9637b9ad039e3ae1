package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbouch/roombrowse/internal/store"
)

func TestCreateUserAndLogin(t *testing.T) {
	svc := newTestAccounts(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "Ada", "Lovelace", "ada@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", created.DisplayName())
	assert.NotEmpty(t, created.Salt)
	assert.NotContains(t, created.PwHash, "hunter2")

	user, err := svc.Login(ctx, "ada@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestAccounts(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "Ada", "Lovelace", "ada@example.com", "hunter2")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "ada@example.com", "wrong")
	_, unknownEmail := svc.Login(ctx, "ghost@example.com", "hunter2")

	assert.ErrorIs(t, wrongPassword, ErrBadCredentials)
	assert.ErrorIs(t, unknownEmail, ErrBadCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestCreateUserRequiresPassword(t *testing.T) {
	svc := newTestAccounts(t)

	_, err := svc.CreateUser(context.Background(), "No", "Password", "np@example.com", "")
	assert.ErrorIs(t, err, ErrMissingPassword)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := newTestAccounts(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "Ada", "Lovelace", "dup@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "Grace", "Hopper", "dup@example.com", "pw2")
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestRemoveUserSelfDeleteForbidden(t *testing.T) {
	svc := newTestAccounts(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "Ada", "Lovelace", "admin@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.RemoveUser(ctx, "admin@example.com", "admin@example.com")
	assert.ErrorIs(t, err, ErrSelfDelete)

	// The account survives.
	_, err = svc.GetUser(ctx, "admin@example.com")
	assert.NoError(t, err)
}

func TestRemoveUser(t *testing.T) {
	svc := newTestAccounts(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "Ada", "Lovelace", "admin@example.com", "pw")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "Grace", "Hopper", "grace@example.com", "pw")
	require.NoError(t, err)

	removed, err := svc.RemoveUser(ctx, "grace@example.com", "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", removed.DisplayName())

	_, err = svc.GetUser(ctx, "grace@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRemoveUserNotFound(t *testing.T) {
	svc := newTestAccounts(t)

	_, err := svc.RemoveUser(context.Background(), "ghost@example.com", "admin@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
