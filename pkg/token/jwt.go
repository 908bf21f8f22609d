// Package token 提供了用于验证外部身份令牌的 JWT 功能。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager 负责 JWT 的校验与（测试/工具场景下的）签发。
// 登录与令牌下发由外部身份提供方完成，双方通过共享密钥使用 HS256。
type JWTManager struct {
	secretKey      []byte
	accessTokenDur time.Duration
}

// IdentityClaims 定义了外部身份提供方写入 JWT 的身份信息。
// 它嵌入了 jwt.RegisteredClaims 以包含标准声明（如过期时间）。
type IdentityClaims struct {
	ExternalID string `json:"externalId"`
	Email      string `json:"email,omitempty"`
	Name       string `json:"name,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTManager 创建一个新的 JWTManager 实例。
func NewJWTManager(secret string, accessTokenExpireHours int) *JWTManager {
	return &JWTManager{
		secretKey:      []byte(secret),
		accessTokenDur: time.Hour * time.Duration(accessTokenExpireHours),
	}
}

// GenerateToken 签发一个携带外部身份信息的 access token。
// 生产路径上令牌由身份提供方签发，这里主要服务于测试和本地联调。
func (m *JWTManager) GenerateToken(externalID, email, name string) (string, error) {
	claims := IdentityClaims{
		ExternalID: externalID,
		Email:      email,
		Name:       name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.accessTokenDur)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyToken 验证给定的 token 字符串。
// token 有效时返回 IdentityClaims；签名不匹配或已过期时返回错误。
func (m *JWTManager) VerifyToken(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ExternalID == "" {
		return nil, errors.New("token missing external identity")
	}
	return claims, nil
}
