package security

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DefaultTokenTTL is the session lifetime when none is configured.
const DefaultTokenTTL = 30 * time.Minute

// ErrInvalidToken is the only failure the token service reports. Callers
// get no hint about which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenConfig is read once at startup. Changing Secret invalidates every
// outstanding token; there is no revocation list.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// TokenService issues and validates HS256 bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenService builds a TokenService from cfg.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTokenTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &TokenService{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		now:    cfg.Now,
		// Time-based claims are checked against s.now, not jwt's global clock.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for subject valid for the configured TTL.
func (s *TokenService) Issue(subject string) (string, error) {
	return s.IssueWithTTL(subject, s.ttl)
}

// IssueWithTTL signs a token for subject valid for ttl.
func (s *TokenService) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject must not be empty")
	}
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify returns the claims of a VALID token: correct signature and
// algorithm, all required claims present, not expired.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !s.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IsExpired reports whether the token's exp is in the past. Tokens that
// cannot be decoded count as expired.
func (s *TokenService) IsExpired(tokenString string) bool {
	claims, err := s.parse(tokenString)
	if err != nil {
		return true
	}
	return !s.now().Before(claims.ExpiresAt.Time)
}

// DecodeSubject returns the subject of a VALID token.
func (s *TokenService) DecodeSubject(tokenString string) (string, bool) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}

// parse checks signature and required claims but not expiry.
func (s *TokenService) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		slog.Debug("token rejected", "reason", err)
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
