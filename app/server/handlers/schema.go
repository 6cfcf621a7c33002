package handlers

import (
	"time"

	"quill-blog-engine/app/server/models"
	"quill-blog-engine/delta"
)

// ArticleBody 创建 / 更新文章的请求体
type ArticleBody struct {
	Title        string        `json:"title"`
	Subtitle     string        `json:"subtitle"`
	HTMLContent  string        `json:"html_content"`
	DeltaContent delta.Content `json:"delta_content"`
	Author       string        `json:"author"`
}

// ArticleRow 文章在线格式。 delta_content 永远以结构化对象形态输出，
// 字符串形态在进入存储边界时就已经被归一化掉了。
type ArticleRow struct {
	ID           uint          `json:"id"`
	Title        string        `json:"title"`
	Subtitle     string        `json:"subtitle"`
	Author       string        `json:"author"`
	PublishDate  time.Time     `json:"publish_date"`
	UpdatedAt    time.Time     `json:"updated_at"`
	HTMLContent  string        `json:"html_content"`
	DeltaContent delta.Content `json:"delta_content"`
}

// AuthBody 注册 / 登录的请求体
type AuthBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    AuthUser `json:"user"`
}

func articleRow(article *models.Article) *ArticleRow {
	return &ArticleRow{
		ID:           article.ID,
		Title:        article.Title,
		Subtitle:     article.Subtitle,
		Author:       article.Author,
		PublishDate:  article.CreatedAt,
		UpdatedAt:    article.UpdatedAt,
		HTMLContent:  article.HTMLContent,
		DeltaContent: delta.FromStore(article.DeltaContent),
	}
}
