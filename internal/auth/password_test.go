package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := svc.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, svc.Verify(hash, "secret123"))
	assert.Error(t, svc.Verify(hash, "wrong"))
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	_, err := svc.Hash("")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestHashesAreSalted(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	first, err := svc.Hash("secret123")
	require.NoError(t, err)
	second, err := svc.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestIsValidPassword(t *testing.T) {
	assert.Error(t, IsValidPassword("short"))
	assert.NoError(t, IsValidPassword("secret123"))
	assert.Error(t, IsValidPassword(string(make([]byte, 129))))
}
