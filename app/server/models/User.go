package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	// 基础信息
	Username string `gorm:"column:username;uniqueIndex"` // 用户名，全局唯一

	// 登录认证相关
	Password string `gorm:"column:password"` // 密码，使用 bcrypt 加盐散列储存
}
