// Package token 提供了用于生成和验证 JSON Web Tokens (JWT) 的功能。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RTCTokenBuilder 为视频通话频道签发短期接入令牌。
// 令牌是携带频道与 uid 声明的 HS256 JWT，由通话网关在入会时验证。
type RTCTokenBuilder struct {
	appID     string
	secretKey []byte
	expiry    time.Duration
}

// RTCClaims 定义了通话令牌中携带的频道信息。
type RTCClaims struct {
	AppID   string `json:"appId"`
	Channel string `json:"channel"`
	UID     string `json:"uid"`
	jwt.RegisteredClaims
}

// NewRTCTokenBuilder 创建一个新的 RTCTokenBuilder 实例。
// expireSeconds 为 0 时默认 1 小时。
func NewRTCTokenBuilder(appID, secret string, expireSeconds int) *RTCTokenBuilder {
	expiry := time.Duration(expireSeconds) * time.Second
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &RTCTokenBuilder{
		appID:     appID,
		secretKey: []byte(secret),
		expiry:    expiry,
	}
}

// BuildToken 为给定的频道和 uid 签发一个通话令牌。
func (b *RTCTokenBuilder) BuildToken(channel, uid string) (string, error) {
	if b.appID == "" || len(b.secretKey) == 0 {
		return "", errors.New("rtc app id or secret not configured")
	}
	claims := RTCClaims{
		AppID:   b.appID,
		Channel: channel,
		UID:     uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(b.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(b.secretKey)
}

// VerifyToken 验证通话令牌并返回其中的频道声明。
func (b *RTCTokenBuilder) VerifyToken(tokenString string) (*RTCClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RTCClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return b.secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*RTCClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid rtc token")
}
