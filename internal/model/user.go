// Package model 包含了应用的数据模型定义。
package model

import "time"

// User 代表一个注册用户（销售代理的使用者）。
// Google 相关字段存储日历授权的 OAuth 令牌，未连接时为空。
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     string `gorm:"size:32;not null;default:USER" json:"role"`

	GoogleAccessToken  string     `gorm:"type:text" json:"-"`
	GoogleRefreshToken string     `gorm:"type:text" json:"-"`
	GoogleTokenExpiry  *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// GoogleConnected 报告用户是否已完成 Google 日历授权。
func (u *User) GoogleConnected() bool {
	return u.GoogleAccessToken != "" && u.GoogleRefreshToken != ""
}
