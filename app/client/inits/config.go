package inits

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quill-blog-engine/app/client/config"
)

func Config() (*config.Config, error) {
	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if baseURL, exist := os.LookupEnv("API_BASE_URL"); !exist {
		return nil, fmt.Errorf("API_BASE_URL environment variable not set")
	} else {
		cfg.APIBaseURL = baseURL
	}

	if timeoutStr, exist := os.LookupEnv("HTTP_TIMEOUT"); !exist {
		cfg.Timeout = 15 * time.Second // 默认超时
	} else if timeout, err := time.ParseDuration(timeoutStr); err != nil {
		return nil, fmt.Errorf("HTTP_TIMEOUT should be a valid duration")
	} else {
		cfg.Timeout = timeout
	}

	if tokenPath, exist := os.LookupEnv("TOKEN_PATH"); !exist {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate home directory: %w", err)
		}
		cfg.TokenPath = filepath.Join(home, ".quill-blog", "token")
	} else {
		cfg.TokenPath = tokenPath
	}

	return &cfg, nil
}
