package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quill-blog-engine/app/server/constants"
)

// 单篇文章的读取缓存。缓存任何一步失败都只记日志并回落到数据库，
// 不会影响请求本身。未配置缓存（例如测试环境）时整体跳过。

func (a *App) articleCacheGet(rctx context.Context, id uint) (*ArticleRow, bool) {
	if a.rdb == nil {
		return nil, false
	}

	cacheKey := fmt.Sprintf(constants.CacheKeyArticle, id)
	cacheBytes, err := a.rdb.Get(rctx, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.l.Error("failed to query cache for article", zap.Uint("id", id), zap.Error(err))
		}
		return nil, false
	}

	var row ArticleRow
	if err = json.Unmarshal(cacheBytes, &row); err != nil {
		a.l.Error("failed to unmarshal cached article", zap.Uint("id", id), zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
		// 可能是无效的缓存，清理掉
		a.rdb.Del(rctx, cacheKey)
		return nil, false
	}

	return &row, true
}

func (a *App) articleCacheFill(rctx context.Context, row *ArticleRow) {
	if a.rdb == nil {
		return
	}

	cacheBytes, err := json.Marshal(row)
	if err != nil {
		a.l.Error("failed to marshal article for cache", zap.Uint("id", row.ID), zap.Error(err))
		return
	}

	a.rdb.Set(rctx, fmt.Sprintf(constants.CacheKeyArticle, row.ID), cacheBytes, constants.CacheExpireArticle)
}

func (a *App) articleCacheDrop(rctx context.Context, id uint) {
	if a.rdb == nil {
		return
	}

	a.rdb.Del(rctx, fmt.Sprintf(constants.CacheKeyArticle, id))
}
