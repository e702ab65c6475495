package token

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the signed claim set carried in the session cookie.
// Role and verification state are cached here so the access gate can decide
// without a database round-trip.
type SessionClaims struct {
	UserID             string  `json:"user_id"`
	Email              string  `json:"email"`
	Role               string  `json:"role"`
	RequestedRole      *string `json:"requested_role,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	IsVerified         bool    `json:"is_verified"`
	VerificationStatus string  `json:"verification_status"`
	jwt.RegisteredClaims
}

// Manager signs and validates session tokens
type Manager struct {
	secret     string
	expiry     time.Duration
	cookieName string
}

func NewManager(secret string, expiryDays int, cookieName string) *Manager {
	return &Manager{
		secret:     secret,
		expiry:     time.Duration(expiryDays) * 24 * time.Hour,
		cookieName: cookieName,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// Generate signs a new session token for the given claims
func (m *Manager) Generate(claims *SessionClaims) (string, time.Time, error) {
	expiresAt := time.Now().Add(m.expiry)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// Validate parses and verifies a session token string
func (m *Manager) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	return claims, nil
}

// FromRequest extracts the raw token from the session cookie or the
// Authorization header. Returns empty string when neither is present.
func (m *Manager) FromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
