// Package auth provides session token utilities for the demo login flow.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenExpiry is how long a demo session token stays valid.
const SessionTokenExpiry = 24 * time.Hour

// DefaultLeeway for token validation.
const DefaultLeeway = 30 * time.Second

// ErrInvalidToken is returned when token validation fails.
var ErrInvalidToken = errors.New("invalid token")

// ErrExpiredToken is returned when the token has expired.
var ErrExpiredToken = errors.New("token has expired")

// ErrEmptyViewerID is returned when viewerID is empty.
var ErrEmptyViewerID = errors.New("viewerID cannot be empty")

// Claims represents the session claims for the discovery demo. The
// viewer is whoever is browsing activities; there is no account system
// behind it, just a stable id for the session.
type Claims struct {
	jwt.RegisteredClaims
	Viewer string `json:"viewer"`
}

// SessionService issues and validates HS256 session tokens.
type SessionService struct {
	secret []byte
	leeway time.Duration
}

// NewSessionService creates a new SessionService with the given secret.
func NewSessionService(secret string) *SessionService {
	return &SessionService{
		secret: []byte(secret),
		leeway: DefaultLeeway,
	}
}

// NewSessionServiceWithLeeway creates a new SessionService with custom leeway.
func NewSessionServiceWithLeeway(secret string, leeway time.Duration) *SessionService {
	return &SessionService{
		secret: []byte(secret),
		leeway: leeway,
	}
}

// GenerateToken creates a new session token for the given viewer.
func (s *SessionService) GenerateToken(viewerID string) (string, error) {
	if viewerID == "" {
		return "", ErrEmptyViewerID
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   viewerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenExpiry)),
		},
		Viewer: viewerID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and validates a session token, returning the
// claims if valid.
func (s *SessionService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is HS256
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithLeeway(s.leeway))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
