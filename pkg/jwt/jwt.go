package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/polinatih/school-proj/config"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims are the session token claims. The subject is the principal id
// known to the identity provider.
type Claims struct {
	SessionID string `json:"sid,omitempty"`
	jwtv5.RegisteredClaims
}

// UserID returns the authenticated principal.
func (c *Claims) UserID() string {
	return c.Subject
}

// Manager verifies and mints HS256 session tokens.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewManager creates a Manager from auth configuration.
func NewManager(cfg *config.AuthConfig) *Manager {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{
		secret: []byte(cfg.SessionSecret),
		issuer: cfg.SessionIssuer,
		ttl:    ttl,
	}
}

// GenerateSessionToken mints a session token for userID.
func (m *Manager) GenerateSessionToken(userID string) (string, error) {
	return m.generate(userID, m.ttl)
}

// GenerateSessionTokenTTL mints a session token with an explicit lifetime.
func (m *Manager) GenerateSessionTokenTTL(userID string, ttl time.Duration) (string, error) {
	return m.generate(userID, ttl)
}

func (m *Manager) generate(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: uuid.New().String(),
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    m.issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken verifies signature, expiry and issuer.
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	opts := []jwtv5.ParserOption{jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()})}
	if m.issuer != "" {
		opts = append(opts, jwtv5.WithIssuer(m.issuer))
	}

	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
