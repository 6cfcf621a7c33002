// Package tokenstore 提供会话令牌的本地持久化。语义对齐浏览器的
// localStorage ：固定的单一键位，缺失、无法读取都视作未登录。
package tokenstore

// Store 是可注入的令牌存储抽象
type Store interface {
	// Save 覆盖写入令牌
	Save(token string) error
	// Load 读取令牌，不存在时返回空串而不是错误
	Load() (string, error)
	// Clear 清除令牌。清除只影响本地：已签出的令牌在有效期内依然有效
	Clear() error
}
