package constants

import "time"

const (
	// AuthTokenDuration 会话令牌有效期。令牌是无状态的，签出后在
	// 有效期内无法吊销，登出只是客户端清除存储。
	AuthTokenDuration = 1 * time.Hour
)
