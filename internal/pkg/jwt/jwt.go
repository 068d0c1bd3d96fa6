package jwt

import (
	"errors"
	"sync"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"

	sseTokenTTL = 5 * time.Minute
)

var ErrInvalidClaims = errors.New("token claims are missing or malformed")

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresIn int64, err error)
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string, expiresAt time.Time)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenTTL time.Duration
	tokenAuth      *jwtauth.JWTAuth
	// revokedTokens maps a token to its expiry; entries are pruned once
	// the token could no longer verify anyway.
	revokedTokens map[string]time.Time
	mu            sync.RWMutex
}

// NewJWTService signs HS256 tokens with secretKey. accessTokenExpirationTime
// is a time.ParseDuration string such as "1h".
func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	ttl, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenTTL: ttl,
		tokenAuth:      jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:  make(map[string]time.Time),
	}, nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(u user.User) (token string, expiresIn int64, err error) {
	if u.CompanyID == nil {
		return "", 0, ErrInvalidClaims
	}
	expiresAt := time.Now().Add(j.accessTokenTTL)

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    u.ID,
		"email":      u.Email,
		"company_id": *u.CompanyID,
		"role":       string(u.Role),
		"type":       TokenTypeAccess,
		"exp":        expiresAt.Unix(),
	})
	if err != nil {
		return "", 0, err
	}
	return tokenString, int64(j.accessTokenTTL.Seconds()), nil
}

func (j *JWTService) RevokeToken(token string, expiresAt time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()
	for t, exp := range j.revokedTokens {
		if exp.Before(now) {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int, err error) {
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    TokenTypeSSE,
		"exp":     time.Now().Add(sseTokenTTL).Unix(),
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(sseTokenTTL.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns the user ID
func (j *JWTService) ValidateSSEToken(tokenString string) (userID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeSSE {
		return "", jwt.ErrInvalidJWT()
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	userID, ok = userIDVal.(string)
	if !ok || userID == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return userID, nil
}

// ActorFromClaims reads the workflow caller out of access token claims.
func ActorFromClaims(claims map[string]interface{}) (user.Actor, error) {
	if t, _ := claims["type"].(string); t != TokenTypeAccess {
		return user.Actor{}, ErrInvalidClaims
	}

	userID, _ := claims["user_id"].(string)
	companyID, _ := claims["company_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || companyID == "" || !user.Role(role).IsValid() {
		return user.Actor{}, ErrInvalidClaims
	}

	return user.Actor{UserID: userID, CompanyID: companyID, Role: user.Role(role)}, nil
}
