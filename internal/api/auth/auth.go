// Package auth implements single-operator admin authentication: a
// bcrypt password check issuing short-lived JWT bearer tokens, with a
// rate limit on login attempts.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/pdelgado/mtg-metagame/internal/api/response"
)

// Auth failure taxonomy.
var (
	ErrLoginDisabled      = errors.New("admin login disabled: no password hash configured")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrRateLimited        = errors.New("too many login attempts")
)

const adminSubject = "admin"

// Service verifies the admin password and issues/validates tokens.
type Service struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	limiter      *rate.Limiter
}

// NewService builds an auth service. An empty passwordHash disables
// admin login entirely. An empty secret falls back to the hash itself,
// which keeps single-operator deployments working without a second
// configured value.
func NewService(passwordHash, secret string, ttl time.Duration) *Service {
	if secret == "" {
		secret = passwordHash
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Service{
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          ttl,
		// A successful admin login is a rare event; a burst of five
		// with one attempt per second after that is plenty.
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

// Enabled reports whether admin login is configured.
func (s *Service) Enabled() bool {
	return len(s.passwordHash) > 0
}

// Login checks the password and returns a signed bearer token.
func (s *Service) Login(password string) (string, error) {
	if !s.Enabled() {
		return "", ErrLoginDisabled
	}
	if !s.limiter.Allow() {
		return "", ErrRateLimited
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a bearer token issued by Login.
func (s *Service) VerifyToken(tokenString string) error {
	if !s.Enabled() {
		return ErrLoginDisabled
	}
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != adminSubject {
		return ErrInvalidToken
	}
	return nil
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(header[len("Bearer "):]), true
}

// RequireAdmin is middleware that rejects requests without a valid
// admin bearer token.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Enabled() {
			response.Unauthorized(w, ErrLoginDisabled)
			return
		}
		token, ok := bearerToken(r)
		if !ok {
			response.Unauthorized(w, errors.New("missing or invalid Authorization header"))
			return
		}
		if err := s.VerifyToken(token); err != nil {
			response.Unauthorized(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// VerifyRequest checks a request's bearer token outside the middleware
// path (used by the whoami endpoint).
func (s *Service) VerifyRequest(r *http.Request) error {
	token, ok := bearerToken(r)
	if !ok {
		return errors.New("missing or invalid Authorization header")
	}
	return s.VerifyToken(token)
}

// HashPassword returns the bcrypt hash of a password, for generating
// the configured admin password hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
