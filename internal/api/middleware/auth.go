package middleware

import (
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/golang-jwt/jwt/v5"

    "github.com/d60-Lab/party-feed/config"
    "github.com/d60-Lab/party-feed/pkg/response"
)

// Claims 附带用户 id 的 JWT 载荷
type Claims struct {
    UserID string `json:"user_id"`
    jwt.RegisteredClaims
}

// IssueToken 签发 HS256 token
func IssueToken(cfg config.JWTConfig, userID string) (string, error) {
    claims := Claims{
        UserID: userID,
        RegisteredClaims: jwt.RegisteredClaims{
            ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.ExpireHours) * time.Hour)),
            IssuedAt:  jwt.NewNumericDate(time.Now()),
        },
    }
    token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return token.SignedString([]byte(cfg.Secret))
}

// Auth 校验 Bearer token，将 user_id 写入 gin 上下文
func Auth(cfg config.JWTConfig) gin.HandlerFunc {
    return func(c *gin.Context) {
        header := c.GetHeader("Authorization")
        raw, ok := strings.CutPrefix(header, "Bearer ")
        if !ok || raw == "" {
            response.Unauthorized(c, "missing bearer token")
            c.Abort()
            return
        }
        claims := &Claims{}
        token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
            return []byte(cfg.Secret), nil
        }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
        if err != nil || !token.Valid {
            response.Unauthorized(c, "invalid token")
            c.Abort()
            return
        }
        c.Set("user_id", claims.UserID)
        c.Next()
    }
}

// UserID 从上下文取当前用户 id
func UserID(c *gin.Context) string {
    return c.GetString("user_id")
}
