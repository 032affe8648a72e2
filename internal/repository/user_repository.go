// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"

	"ai-sales-go/internal/model"
	"ai-sales-go/pkg/calendar"

	"gorm.io/gorm"
)

// UserRepository 接口定义了用户相关的数据持久化操作。
// 它同时实现了 calendar.TokenStore，为日历集成提供令牌存取。
type UserRepository interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id uint) (*model.User, error)
	Update(user *model.User) error

	GetGoogleTokens(ctx context.Context, userID uint) (*calendar.Tokens, error)
	SaveGoogleTokens(ctx context.Context, userID uint, tokens *calendar.Tokens) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建一个新的 UserRepository 实例。
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 在数据库中创建一个新用户。
func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// FindByEmail 根据邮箱检索用户。
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID 根据 ID 检索用户。
func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update 保存用户的全部字段。
func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// GetGoogleTokens 读取用户档案中的 Google OAuth 令牌。
func (r *userRepository) GetGoogleTokens(ctx context.Context, userID uint) (*calendar.Tokens, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	if !user.GoogleConnected() {
		return nil, nil
	}
	return &calendar.Tokens{
		AccessToken:  user.GoogleAccessToken,
		RefreshToken: user.GoogleRefreshToken,
		Expiry:       user.GoogleTokenExpiry,
	}, nil
}

// SaveGoogleTokens 将刷新或新换取的令牌写回用户档案。
func (r *userRepository) SaveGoogleTokens(ctx context.Context, userID uint, tokens *calendar.Tokens) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"google_access_token":  tokens.AccessToken,
		"google_refresh_token": tokens.RefreshToken,
		"google_token_expiry":  tokens.Expiry,
	}).Error
}
