package auth

import (
	"testing"
	"time"

	"github.com/GoArmGo/ShareBnB/internal/domain"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	require.NoError(t, h.Verify(hash, "s3cret"))
	require.ErrorIs(t, h.Verify(hash, "wrong"), domain.ErrUnauthorized)
}

func TestPasswordHasher_CostOutOfRange(t *testing.T) {
	// out-of-range cost falls back to the bcrypt default
	h := NewPasswordHasher(99)

	hash, err := h.Hash("pw")
	require.NoError(t, err)
	require.NoError(t, h.Verify(hash, "pw"))
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	s := NewTokenService("test-secret", time.Hour)

	token, err := s.Issue("aliya")
	require.NoError(t, err)

	username, err := s.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "aliya", username)
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Issue("aliya")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).Validate(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenService_Expired(t *testing.T) {
	s := NewTokenService("test-secret", -time.Minute)

	token, err := s.Issue("aliya")
	require.NoError(t, err)

	_, err = s.Validate(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenService_Garbage(t *testing.T) {
	_, err := NewTokenService("test-secret", time.Hour).Validate("not-a-token")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}
