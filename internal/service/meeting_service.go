// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"fmt"

	"ai-sales-go/internal/model"
	"ai-sales-go/internal/repository"
	"ai-sales-go/pkg/calendar"
	"ai-sales-go/pkg/log"
)

// CalendarClient 抽象了日历集成，便于在测试中替换。
type CalendarClient interface {
	CreateEvent(ctx context.Context, userID uint, ev calendar.Event) (string, error)
}

// MeetingService 定义了会议预约的业务接口。
type MeetingService interface {
	// ScheduleMeeting 持久化一条会议记录，并尽力在用户的 Google 日历上
	// 创建对应事件。日历失败不阻塞会议落库（部分成功策略）。
	ScheduleMeeting(ctx context.Context, userID uint, title, description, date, timeStr string) (*model.Meeting, error)
	GetMeetings(ctx context.Context, userID uint) ([]model.Meeting, error)
}

type meetingService struct {
	repo           repository.MeetingRepository
	calendarClient CalendarClient
}

// NewMeetingService 创建一个新的 MeetingService 实例。
// calendarClient 允许为 nil（未配置日历集成时）。
func NewMeetingService(repo repository.MeetingRepository, calendarClient CalendarClient) MeetingService {
	return &meetingService{
		repo:           repo,
		calendarClient: calendarClient,
	}
}

// ScheduleMeeting 先尝试创建日历事件，再持久化会议记录。
// 日历的任一失败（未授权、刷新失败、远端错误）只降级为空事件引用。
func (s *meetingService) ScheduleMeeting(ctx context.Context, userID uint, title, description, date, timeStr string) (*model.Meeting, error) {
	var eventID *string
	if s.calendarClient != nil {
		id, err := s.calendarClient.CreateEvent(ctx, userID, calendar.Event{
			Title:       title,
			Description: description,
			Date:        date,
			Time:        timeStr,
		})
		if err != nil {
			log.Warnf("创建 Google 日历事件失败，会议仍将落库: userId=%d, error: %v", userID, err)
		} else {
			eventID = &id
		}
	}

	meeting := &model.Meeting{
		UserID:                userID,
		Title:                 title,
		Description:           description,
		MeetingDate:           date,
		MeetingTime:           timeStr,
		GoogleCalendarEventID: eventID,
		Status:                model.MeetingStatusScheduled,
	}
	if err := s.repo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return meeting, nil
}

// GetMeetings 按日期和时间升序返回用户的全部会议。
func (s *meetingService) GetMeetings(ctx context.Context, userID uint) ([]model.Meeting, error) {
	return s.repo.FindByUserID(ctx, userID)
}
