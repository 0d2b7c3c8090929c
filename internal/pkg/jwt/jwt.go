package jwt

import (
	"errors"
	"time"

	"whiskerwatch/internal/domain"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type Service struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	CustomerType string `json:"customer_type,omitempty"`
	jwtlib.RegisteredClaims
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *Service) TTL() time.Duration { return s.ttl }

func (s *Service) GenerateToken(session *domain.Session) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:       session.UserID,
		Username:     session.Username,
		Role:         session.Role,
		CustomerType: session.CustomerType,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   session.Email,
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Session rebuilds the identity carried by the claims.
func (c *Claims) Session() *domain.Session {
	return &domain.Session{
		UserID:       c.UserID,
		Username:     c.Username,
		Email:        c.Subject,
		Role:         c.Role,
		CustomerType: c.CustomerType,
		IsActive:     true,
	}
}
