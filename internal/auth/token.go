package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const purposeReset = "password_reset"

// Claims carries the user id and, for reset tokens, their purpose.
type Claims struct {
	UserID  string `json:"id"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 tokens. Session tokens and reset tokens
// share the key but are told apart by their purpose claim.
type Tokens struct {
	secret   []byte
	ttl      time.Duration
	resetTTL time.Duration
	now      func() time.Time
}

func NewTokens(secret string, ttl, resetTTL time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if resetTTL <= 0 {
		resetTTL = 10 * time.Minute
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, resetTTL: resetTTL, now: time.Now}
}

// Issue returns a session token for userID.
func (t *Tokens) Issue(userID string) (string, error) {
	return t.sign(userID, "", t.ttl)
}

// Verify returns the user id of a valid session token.
func (t *Tokens) Verify(token string) (string, error) {
	return t.parse(token, "")
}

// IssueReset returns a short-lived token proving that userID passed OTP
// verification.
func (t *Tokens) IssueReset(userID string) (string, error) {
	return t.sign(userID, purposeReset, t.resetTTL)
}

func (t *Tokens) VerifyReset(token string) (string, error) {
	return t.parse(token, purposeReset)
}

func (t *Tokens) sign(userID, purpose string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := &Claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *Tokens) parse(tokenStr, purpose string) (string, error) {
	if tokenStr == "" {
		return "", ErrTokenMissing
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == "" || claims.Purpose != purpose {
		return "", ErrTokenInvalid
	}
	return claims.UserID, nil
}
