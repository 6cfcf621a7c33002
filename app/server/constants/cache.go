package constants

import "time"

const (
	CacheKeyArticle = "blog:article:%d"
)

const (
	CacheExpireArticle = 12 * time.Hour
)
