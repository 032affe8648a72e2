// Package model 包含了应用的数据模型定义。
package model

import "time"

// 会议状态
const (
	MeetingStatusScheduled = "scheduled"
)

// Meeting 代表一次用户主动预约的跟进会议。
// GoogleCalendarEventID 在日历集成不可用或远端调用失败时为 nil，
// 会议记录本身的持久化不受日历结果影响。
type Meeting struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"index;not null" json:"userId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	// MeetingDate 格式 "2006-01-02"，MeetingTime 格式 "15:04"
	MeetingDate           string    `gorm:"size:10;not null;index:idx_meetings_when" json:"meetingDate"`
	MeetingTime           string    `gorm:"size:5;not null;index:idx_meetings_when" json:"meetingTime"`
	GoogleCalendarEventID *string   `gorm:"size:255" json:"googleCalendarEventId"`
	Status                string    `gorm:"size:32;not null" json:"status"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Meeting) TableName() string {
	return "meetings"
}
