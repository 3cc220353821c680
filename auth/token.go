package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/config"
)

// ErrInvalidToken is returned by Verify for every unusable token: bad
// signature, malformed string, wrong signing method, or past expiry. Callers
// treat all of these the same way (the bearer is anonymous), so the causes
// are deliberately not distinguished.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload. UserID keeps the `userId` wire name the clients
// of this API already decode.
type Claims struct {
	UserID int `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens. The signing key is
// process-wide configuration; construction fails fast when it is missing so
// a misconfigured process never reaches the point of serving requests.
type TokenService struct {
	secret   []byte
	duration time.Duration
	issuer   string
}

// NewTokenService creates a TokenService from the auth configuration.
func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if cfg.JWTSecret == "" {
		return nil, apperror.NewConfigError("JWT signing secret is not configured", nil)
	}
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		duration: cfg.TokenDuration,
		issuer:   cfg.Issuer,
	}, nil
}

// Issue produces a signed token for userID, expiring after the configured
// duration (seven days by default).
func (s *TokenService) Issue(userID int) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   fmt.Sprintf("%d", userID),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperror.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

// Verify validates the signature and expiry of tokenString and returns the
// embedded user id. Any failure yields ErrInvalidToken: an unusable token is
// a recoverable condition for the caller, not a server fault.
func (s *TokenService) Verify(tokenString string) (int, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	if claims.UserID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
