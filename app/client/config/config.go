package config

import "time"

type Config struct {
	// 基础配置
	IsProd bool

	// 与 Server 通信配置
	APIBaseURL string        // API 基础地址，例如 http://localhost:3001/api
	Timeout    time.Duration // 单次请求超时

	// 本地会话令牌存储位置
	TokenPath string
}
