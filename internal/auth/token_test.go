package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueAndVerify(t *testing.T) {
	t.Parallel()

	tk := NewTokens("super-secret", time.Hour, time.Minute)
	tok, err := tk.Issue("user-123")
	require.NoError(t, err)

	id, err := tk.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", id)
}

func TestTokens_Expired(t *testing.T) {
	t.Parallel()

	tk := NewTokens("secret", time.Hour, time.Minute)
	issued := time.Now()
	tk.now = func() time.Time { return issued }
	tok, err := tk.Issue("u1")
	require.NoError(t, err)

	tk.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = tk.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokens_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokens("right-secret", time.Hour, 0).Issue("u2")
	require.NoError(t, err)

	_, err = NewTokens("wrong-secret", time.Hour, 0).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokens_Malformed(t *testing.T) {
	t.Parallel()

	tk := NewTokens("k", 0, 0)
	_, err := tk.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = tk.Verify("")
	assert.ErrorIs(t, err, ErrTokenMissing)
}

func TestTokens_PurposeIsolation(t *testing.T) {
	t.Parallel()

	tk := NewTokens("k", time.Hour, time.Minute)

	reset, err := tk.IssueReset("u3")
	require.NoError(t, err)
	_, err = tk.Verify(reset)
	assert.ErrorIs(t, err, ErrTokenInvalid, "reset token must not work as a session")

	session, err := tk.Issue("u3")
	require.NoError(t, err)
	_, err = tk.VerifyReset(session)
	assert.ErrorIs(t, err, ErrTokenInvalid, "session token must not authorize a reset")

	id, err := tk.VerifyReset(reset)
	require.NoError(t, err)
	assert.Equal(t, "u3", id)
}

func TestTokens_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := &Claims{
		UserID: "u4",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokens("k", time.Hour, 0).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
