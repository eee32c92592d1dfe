package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// DefaultTokenTTL is how long an issued token stays valid
const DefaultTokenTTL = time.Hour

// ErrInvalidToken covers a bad signature, an unexpected algorithm and expiry
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents the JWT claims
type Claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// TokenService issues and verifies identity tokens signed with one process-wide secret
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService; a non-positive ttl falls back to DefaultTokenTTL
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock returns a copy of the service reading time from now
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// Issue generates a token for email that expires after the service ttl.
// Every call yields a distinct token, even within the same second.
func (s *TokenService) Issue(email string) (string, error) {
	issuedAt := s.now()
	claims := &Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  issuedAt.Unix(),
			ExpiresAt: issuedAt.Add(s.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature and expiry and returns the embedded claims
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	// Expiry is checked below against the service clock
	parser := &jwt.Parser{SkipClaimsValidation: true}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(s.now().Unix(), true) {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
