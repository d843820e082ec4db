package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// Claims represents the JWT claims carried by an access token. The user ID
// travels in the registered sub claim.
type Claims struct {
	jwt.RegisteredClaims
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
	RoleID  string `json:"roleId,omitempty"`
}

// Actor converts the claims into the domain actor acting on a request
func (c *Claims) Actor() (identity.Actor, error) {
	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return identity.Actor{}, ErrInvalidClaims
	}

	actor := identity.Actor{
		ID:      userID,
		Name:    c.Name,
		IsAdmin: c.IsAdmin,
	}
	if c.RoleID != "" {
		roleID, err := uuid.Parse(c.RoleID)
		if err != nil {
			return identity.Actor{}, ErrInvalidClaims
		}
		actor.RoleID = roleID
	}
	return actor, nil
}

// JWTService handles JWT token operations
type JWTService struct {
	secret []byte
	issuer string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// GenerateToken signs an access token for the given actor
func (s *JWTService) GenerateToken(actor identity.Actor, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   actor.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Name:    actor.Name,
		IsAdmin: actor.IsAdmin,
	}
	if actor.RoleID != uuid.Nil {
		claims.RoleID = actor.RoleID.String()
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken parses and validates an access token
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
