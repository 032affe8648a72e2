// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"

	"ai-sales-go/internal/model"
	"ai-sales-go/internal/service"
	"ai-sales-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// MeetingHandler 负责处理会议预约相关的 API 请求。
type MeetingHandler struct {
	meetingService service.MeetingService
}

// NewMeetingHandler 创建一个新的 MeetingHandler。
func NewMeetingHandler(meetingService service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

// ScheduleMeetingRequest 定义了预约会议 API 的请求体结构。
type ScheduleMeetingRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	MeetingDate string `json:"meeting_date" binding:"required"`
	MeetingTime string `json:"meeting_time" binding:"required"`
}

// ScheduleMeeting 处理预约会议的请求。
// 日历事件创建失败不阻塞会议落库。
func (h *MeetingHandler) ScheduleMeeting(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	var req ScheduleMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, date, and time are required to schedule a meeting."})
		return
	}

	meeting, err := h.meetingService.ScheduleMeeting(c.Request.Context(), user.ID, req.Title, req.Description, req.MeetingDate, req.MeetingTime)
	if err != nil {
		log.Errorf("预约会议失败: userId=%d, error: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule meeting."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Meeting scheduled successfully!",
		"meeting": meeting,
	})
}

// GetMeetings 返回当前用户的全部会议，按日期和时间升序。
func (h *MeetingHandler) GetMeetings(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	meetings, err := h.meetingService.GetMeetings(c.Request.Context(), user.ID)
	if err != nil {
		log.Errorf("查询会议失败: userId=%d, error: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve meetings."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    meetings,
	})
}
