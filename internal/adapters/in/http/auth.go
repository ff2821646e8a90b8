package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "swiftdrop.actor"

// Claims carries the identity embedded in access tokens. The subject is
// the actor's UUID; role is one of the kernel role strings.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs and validates HS256 access tokens.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService creates a token service with the given signing secret.
func NewJWTService(secret string, expiry time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// GenerateToken issues a signed token for the actor.
func (s *JWTService) GenerateToken(actor kernel.Actor) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: actor.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "swiftdrop",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses the token and reconstructs the actor it names.
func (s *JWTService) ValidateToken(tokenString string) (kernel.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return kernel.Actor{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return kernel.Actor{}, errors.New("invalid claims type")
	}

	actorID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("invalid subject: %w", err)
	}
	role, err := kernel.RoleFromString(claims.Role)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("invalid role: %w", err)
	}

	return kernel.NewActor(actorID, role)
}

// Middleware authenticates requests with a Bearer token and stores the
// resulting actor in the echo context. Websocket clients cannot set
// headers from the browser API, so a token query parameter is accepted
// as a fallback.
func (s *JWTService) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if tokenString == "" {
				tokenString = c.QueryParam("token")
			}
			if tokenString == "" {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Missing access token",
				})
			}

			actor, err := s.ValidateToken(tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Invalid access token",
				})
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// actorFromContext returns the authenticated actor stored by Middleware.
func actorFromContext(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, errors.New("no authenticated actor in context")
	}
	return actor, nil
}
