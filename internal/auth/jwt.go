package auth

import (
	"GoLinks-Backend/internal/domain"
	"crypto/rand"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// MinSecretLen is the minimum length of an externally supplied signing key
// (256 bits, as required for HS256).
const MinSecretLen = 32

// JWTConfig holds token issuing configuration.
type JWTConfig struct {
	Secret   []byte
	TokenTTL time.Duration
	Issuer   string
}

// Claims is the payload carried by every issued token: subject=username
// plus the user's role.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies stateless identity tokens.
type JWTService struct {
	signingKey []byte
	tokenTTL   time.Duration
	issuer     string
	log        *zap.Logger
}

// NewJWTService creates the token service. If the configured secret is
// shorter than MinSecretLen a random per-process key is generated instead;
// tokens then stop verifying after a restart, which is surfaced as a
// startup warning rather than a failure.
func NewJWTService(cfg *JWTConfig, log *zap.Logger) *JWTService {
	key := cfg.Secret
	if len(key) < MinSecretLen {
		key = make([]byte, MinSecretLen)
		if _, err := rand.Read(key); err != nil {
			log.Fatal("failed to generate random signing key", zap.Error(err))
		}
		log.Warn("no JWT secret configured (need at least 32 bytes) - using a random key, tokens will NOT survive restarts")
		log.Warn("set JWT_SECRET (min 32 chars) for persistent tokens")
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &JWTService{
		signingKey: key,
		tokenTTL:   ttl,
		issuer:     cfg.Issuer,
		log:        log,
	}
}

// Issue creates a signed token for an authenticated user.
func (s *JWTService) Issue(username string, role domain.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signingKey)
}

// Verify validates the signature and expiry and returns the token's claims.
// Any structural, signature or expiry failure yields an error and no
// partial data; the detail is only logged at debug level since invalid
// tokens are expected, frequent, and not an error on the request path.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.signingKey, nil
	})

	if err != nil {
		s.log.Debug("token verification failed", zap.Error(err))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// ExtractTokenFromBearer strips the "Bearer " prefix from an Authorization
// header value, returning "" when the header is not a bearer token.
func ExtractTokenFromBearer(authHeader string) string {
	const bearerPrefix = "Bearer "
	if len(authHeader) > len(bearerPrefix) && authHeader[:len(bearerPrefix)] == bearerPrefix {
		return authHeader[len(bearerPrefix):]
	}
	return ""
}
