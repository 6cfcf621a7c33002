// Package session 从本地存储的令牌还原当前登录用户。
// 这里只做客户端侧的便捷解码（不校验签名，真正的校验在服务端），
// 过期或无法解析的令牌等同于未登录，并顺手清掉本地存储。
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quill-blog-engine/app/client/tokenstore"
)

type CurrentUser struct {
	ID       uint
	Username string
}

// Current 返回当前登录用户，未登录时返回 nil
func Current(tokens tokenstore.Store) *CurrentUser {
	tokenString, err := tokens.Load()
	if err != nil || tokenString == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		// 无效的令牌，清理掉
		_ = tokens.Clear()
		return nil
	}

	// 检查是否过期
	exp, ok := claims["exp"].(float64)
	if !ok || time.Now().Unix() >= int64(exp) {
		_ = tokens.Clear()
		return nil
	}

	id, idOk := claims["id"].(float64)
	username, nameOk := claims["username"].(string)
	if !idOk || !nameOk {
		_ = tokens.Clear()
		return nil
	}

	return &CurrentUser{
		ID:       uint(id),
		Username: username,
	}
}

// Logout 只清除本地令牌。令牌本身无法吊销，在有效期内
// 对服务端依然是合法凭证，这是已知的设计限制。
func Logout(tokens tokenstore.Store) error {
	return tokens.Clear()
}
