package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbouch/roombrowse/internal/domain"
)

func TestDeriveHashDeterministic(t *testing.T) {
	first := DeriveHash("correct horse battery staple", "abc123")
	second := DeriveHash("correct horse battery staple", "abc123")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // sha256 digest, hex encoded
}

func TestDeriveHashDependsOnSalt(t *testing.T) {
	assert.NotEqual(t,
		DeriveHash("password", "salt-one"),
		DeriveHash("password", "salt-two"))
}

func TestVerify(t *testing.T) {
	user, err := NewUser("Ada", "Lovelace", "ada@example.com", "hunter2")
	require.NoError(t, err)

	assert.True(t, Verify(user, "hunter2"))
	assert.False(t, Verify(user, "hunter3"))
	assert.False(t, Verify(user, ""))
}

func TestVerifyDifferentUsersSamePassword(t *testing.T) {
	a, err := NewUser("A", "A", "a@example.com", "shared-password")
	require.NoError(t, err)
	b, err := NewUser("B", "B", "b@example.com", "shared-password")
	require.NoError(t, err)

	// Salts differ, so identical passwords hash differently.
	assert.NotEqual(t, a.PwHash, b.PwHash)
	assert.True(t, Verify(a, "shared-password"))
	assert.True(t, Verify(b, "shared-password"))
}

func TestGenerateSaltUnique(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		salt, err := GenerateSalt()
		require.NoError(t, err)
		require.Len(t, salt, 64)
		require.False(t, seen[salt], "salt collision after %d draws", i)
		seen[salt] = true
	}
}

func TestNewUser(t *testing.T) {
	user, err := NewUser("Grace", "Hopper", "grace@example.com", "cobol")
	require.NoError(t, err)

	assert.Equal(t, "grace@example.com", user.Email)
	assert.Equal(t, "Grace Hopper", user.DisplayName())
	assert.NotEmpty(t, user.Salt)
	assert.Equal(t, DeriveHash("cobol", user.Salt), user.PwHash)
}

func TestUserImplementsAuthenticatable(t *testing.T) {
	var principal domain.Authenticatable = &domain.User{Email: "x@example.com"}
	assert.Equal(t, "x@example.com", principal.AuthID())
}
