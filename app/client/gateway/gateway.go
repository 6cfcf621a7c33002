// Package gateway 是客户端与 Article API 之间的数据网关：
// 负责发请求、翻译线上字段名和客户端字段名。每次调用都是一次
// 独立的请求往返，失败只向调用方上抛一次，不做自动重试。
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"quill-blog-engine/app/client/models"
	"quill-blog-engine/app/client/tokenstore"
)

type Config struct {
	BaseURL string        // API 基础地址，例如 http://localhost:3001/api
	Timeout time.Duration // 单次请求超时，零值时用传输层默认
}

type Gateway struct {
	cfg    Config
	l      *zap.Logger
	hc     *http.Client
	tokens tokenstore.Store
}

// New 构造网关。配置是显式传入的对象，不依赖任何包级全局状态。
func New(cfg Config, l *zap.Logger, tokens tokenstore.Store) *Gateway {
	return &Gateway{
		cfg:    cfg,
		l:      l,
		hc:     &http.Client{Timeout: cfg.Timeout},
		tokens: tokens,
	}
}

// FetchAll 拉取全部文章，服务端保证按发布时间倒序
func (g *Gateway) FetchAll(ctx context.Context) ([]models.Article, error) {
	var rows []articleRow
	if err := g.do(ctx, http.MethodGet, "/articles", nil, http.StatusOK, &rows); err != nil {
		return nil, err
	}

	articles := make([]models.Article, 0, len(rows))
	for i := range rows {
		articles = append(articles, *toModel(&rows[i]))
	}

	return articles, nil
}

// FetchByID 按 id 取单篇文章，不存在时返回 nil 而不是错误
func (g *Gateway) FetchByID(ctx context.Context, id uint) (*models.Article, error) {
	articles, err := g.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range articles {
		if articles[i].ID == id {
			return &articles[i], nil
		}
	}

	return nil, nil
}

// Save 保存文章：没有 id 时创建（ POST ），有 id 时更新（ PUT ）。
// 返回的是服务端落库后的权威版本。
func (g *Gateway) Save(ctx context.Context, article *models.Article) (*models.Article, error) {
	method := http.MethodPost
	path := "/articles"
	wantStatus := http.StatusCreated
	if article.ID != 0 {
		method = http.MethodPut
		path = fmt.Sprintf("/articles/%d", article.ID)
		wantStatus = http.StatusOK
	}

	var row articleRow
	if err := g.do(ctx, method, path, toBody(article), wantStatus, &row); err != nil {
		return nil, err
	}

	return toModel(&row), nil
}

// Delete 按 id 删除文章
func (g *Gateway) Delete(ctx context.Context, id uint) error {
	return g.do(ctx, http.MethodDelete, fmt.Sprintf("/articles/%d", id), nil, http.StatusNoContent, nil)
}

// Register 注册新用户，成功后把令牌写入本地存储
func (g *Gateway) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	return g.auth(ctx, "/register", username, password, http.StatusCreated)
}

// Login 登录，成功后把令牌写入本地存储
func (g *Gateway) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	return g.auth(ctx, "/login", username, password, http.StatusOK)
}

func (g *Gateway) auth(ctx context.Context, path, username, password string, wantStatus int) (*AuthResult, error) {
	var res AuthResult
	if err := g.do(ctx, http.MethodPost, path, &authBody{Username: username, Password: password}, wantStatus, &res); err != nil {
		return nil, err
	}

	if res.Token != "" {
		if err := g.tokens.Save(res.Token); err != nil {
			return nil, fmt.Errorf("failed to persist token: %w", err)
		}
	}

	return &res, nil
}

// do 一次请求往返。状态码不符时把服务端的 message 包进错误上抛。
func (g *Gateway) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	reqURL, err := url.JoinPath(g.cfg.BaseURL, path)
	if err != nil {
		return fmt.Errorf("failed to join request url: %w", err)
	}

	var reqBody *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to prepare request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.hc.Do(req)
	if err != nil {
		g.l.Error("request failed", zap.String("method", method), zap.String("url", reqURL), zap.Error(err))
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != wantStatus {
		// 尽量带上服务端的提示信息
		var em errorMessage
		_ = json.NewDecoder(res.Body).Decode(&em)
		if em.Message == "" {
			em.Message = http.StatusText(res.StatusCode)
		}

		g.l.Debug("unexpected status",
			zap.String("method", method),
			zap.String("url", reqURL),
			zap.Int("status", res.StatusCode),
			zap.String("message", em.Message),
		)

		return fmt.Errorf("http error: status %d, message: %s", res.StatusCode, em.Message)
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
