package models

import "gorm.io/gorm"

type Article struct {
	gorm.Model // CreatedAt 即发布时间，创建后不再变化； UpdatedAt 每次更新刷新

	// 基础信息
	Title    string `gorm:"column:title"`    // 标题
	Subtitle string `gorm:"column:subtitle"` // 副标题，可为空，展示层自带占位文案
	Author   string `gorm:"column:author"`   // 作者用户名。非外键，仅做字符串匹配，作者改名或注销后这里不会跟着变

	// 内容的两种表示
	HTMLContent  string `gorm:"column:html_content"`  // 渲染后的 HTML ，读取路径的派生表示
	DeltaContent string `gorm:"column:delta_content"` // 规范序列化的 delta ，编辑的权威表示
}
