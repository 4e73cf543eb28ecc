package token

import (
	"testing"
	"time"

	autherrors "go-gemtrack/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndVerify(t *testing.T) {
	m := NewManager([]byte("secret"), 0)
	userID := uuid.NewString()

	signed, expiresAt, err := m.Issue(userID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), expiresAt, time.Minute)

	got, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestManager_Verify(t *testing.T) {
	userID := uuid.NewString()

	t.Run("expired token", func(t *testing.T) {
		m := NewManager([]byte("secret"), time.Hour)
		m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		signed, _, err := m.Issue(userID)
		require.NoError(t, err)

		m.now = time.Now
		_, err = m.Verify(signed)
		assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		signed, _, err := NewManager([]byte("one"), 0).Issue(userID)
		require.NoError(t, err)

		_, err = NewManager([]byte("two"), 0).Verify(signed)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("non uuid subject", func(t *testing.T) {
		m := NewManager([]byte("secret"), 0)
		signed, _, err := m.Issue("not-a-user")
		require.NoError(t, err)

		_, err = m.Verify(signed)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("none algorithm is refused", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: userID}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = NewManager([]byte("secret"), 0).Verify(unsigned)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("token without expiry is refused", func(t *testing.T) {
		secret := []byte("secret")
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			UserID:           userID,
			RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(time.Now())},
		}).SignedString(secret)
		require.NoError(t, err)

		_, err = NewManager(secret, 0).Verify(signed)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := NewManager([]byte("secret"), 0).Verify("abc.def.ghi")
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}
