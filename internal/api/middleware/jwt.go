package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/linskybing/issue-desk/internal/config"
	"github.com/linskybing/issue-desk/internal/domain/user"
	"github.com/linskybing/issue-desk/pkg/response"
)

const claimsKey = "claims"

var jwtKey []byte

// Init sets the JWT signing key.
func Init() {
	jwtKey = []byte(config.JwtSecret)
}

// Claims carries the actor attributes the lifecycle policy needs.
type Claims struct {
	UserID string `json:"uid"`
	Name   string `json:"name"`
	Rank   int    `json:"rank"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) Actor() user.Actor {
	return user.Actor{ID: c.UserID, Name: c.Name, Rank: c.Rank, Role: c.Role}
}

// GenerateToken issues a signed token for the actor.
var GenerateToken = func(actor user.Actor, expireDuration time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: actor.ID,
		Name:   actor.Name,
		Rank:   actor.Rank,
		Role:   actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expireDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    config.Issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ParseToken validates and extracts claims.
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}

// JWTAuthMiddleware validates a Bearer token from the Authorization header,
// the token cookie, or a token query parameter (websocket clients).
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Authorization header format must be Bearer {token}"})
				return
			}
			tokenStr = parts[1]
		} else if cookie, err := c.Cookie("token"); err == nil {
			tokenStr = cookie
		} else if q := c.Query("token"); q != "" {
			tokenStr = q
		} else {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Authorization required (header or cookie)"})
			return
		}

		claims, err := ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token: " + err.Error()})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ActorFromContext returns the authenticated actor set by JWTAuthMiddleware.
func ActorFromContext(c *gin.Context) (user.Actor, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return user.Actor{}, false
	}
	claims, ok := v.(*Claims)
	if !ok {
		return user.Actor{}, false
	}
	return claims.Actor(), true
}
