package models

import (
	"time"

	"quill-blog-engine/delta"
)

// Article 文章在客户端的表示。字段名和线上格式不同
// （ Content / Delta / PublishDate ），两种命名之间的翻译
// 全部收在 gateway 包里，别处不出现线上字段名。
type Article struct {
	ID          uint
	Title       string
	Subtitle    string
	Author      string
	PublishDate time.Time
	UpdatedAt   time.Time
	Content     string      // 渲染后的 HTML ，只读展示用
	Delta       delta.Delta // 结构化 delta ，编辑的权威表示
}

// SortTime 列表排序用的时间：更新时间优先，缺失时回落到发布时间
func (a *Article) SortTime() time.Time {
	if !a.UpdatedAt.IsZero() {
		return a.UpdatedAt
	}

	return a.PublishDate
}
