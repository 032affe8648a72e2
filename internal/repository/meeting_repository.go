// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"

	"ai-sales-go/internal/model"

	"gorm.io/gorm"
)

// MeetingRepository 定义了会议记录的操作接口。
type MeetingRepository interface {
	Create(ctx context.Context, meeting *model.Meeting) error
	FindByUserID(ctx context.Context, userID uint) ([]model.Meeting, error)
}

type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository 创建一个新的 MeetingRepository 实例。
func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &meetingRepository{db: db}
}

// Create 持久化一条会议记录。
func (r *meetingRepository) Create(ctx context.Context, meeting *model.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByUserID 按会议日期和时间升序返回某个用户的全部会议。
func (r *meetingRepository) FindByUserID(ctx context.Context, userID uint) ([]model.Meeting, error) {
	var meetings []model.Meeting
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("meeting_date ASC").
		Order("meeting_time ASC").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}
