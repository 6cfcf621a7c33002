package gateway

import (
	"time"

	"quill-blog-engine/app/client/models"
	"quill-blog-engine/delta"
)

// 线上格式只在这个包里出现。字段名和客户端模型不同
// （ publish_date / html_content / delta_content ），两个方向的
// 翻译都由 gateway 独自负责。

type articleRow struct {
	ID           uint          `json:"id"`
	Title        string        `json:"title"`
	Subtitle     string        `json:"subtitle"`
	Author       string        `json:"author"`
	PublishDate  time.Time     `json:"publish_date"`
	UpdatedAt    time.Time     `json:"updated_at"`
	HTMLContent  string        `json:"html_content"`
	DeltaContent delta.Content `json:"delta_content"`
}

type articleBody struct {
	Title        string        `json:"title"`
	Subtitle     string        `json:"subtitle"`
	HTMLContent  string        `json:"html_content"`
	DeltaContent delta.Content `json:"delta_content"`
	Author       string        `json:"author"`
}

type authBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthUser 认证响应里的用户信息
type AuthUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// AuthResult 注册 / 登录的结果
type AuthResult struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    AuthUser `json:"user"`
}

type errorMessage struct {
	Message string `json:"message"`
}

func toModel(row *articleRow) *models.Article {
	return &models.Article{
		ID:          row.ID,
		Title:       row.Title,
		Subtitle:    row.Subtitle,
		Author:      row.Author,
		PublishDate: row.PublishDate,
		UpdatedAt:   row.UpdatedAt,
		Content:     row.HTMLContent,
		Delta:       row.DeltaContent.Delta(),
	}
}

func toBody(article *models.Article) *articleBody {
	author := article.Author
	if author == "" {
		author = "Temporary Author" // 兜底署名，正常流程里登录用户名总是在的
	}

	return &articleBody{
		Title:        article.Title,
		Subtitle:     article.Subtitle,
		HTMLContent:  article.Content,
		DeltaContent: delta.Structured(article.Delta),
		Author:       author,
	}
}
