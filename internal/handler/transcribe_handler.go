package handler

import (
	"errors"
	"net/http"
	"strconv"

	"ai-sales-go/internal/model"
	"ai-sales-go/internal/service"
	"ai-sales-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// TranscribeHandler 负责接收语音留言并返回转写文本。
type TranscribeHandler struct {
	transcribeService service.TranscribeService
}

// NewTranscribeHandler 创建一个新的 TranscribeHandler 实例。
func NewTranscribeHandler(transcribeService service.TranscribeService) *TranscribeHandler {
	return &TranscribeHandler{transcribeService: transcribeService}
}

// Transcribe 处理 multipart 语音上传，归档音频并转写为文本。
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少音频文件"})
		return
	}

	channel := c.PostForm("channel")
	userID, _ := strconv.ParseUint(c.PostForm("userId"), 10, 64)

	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("打开上传音频失败: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "无法读取音频文件"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	transcript, err := h.transcribeService.TranscribeVoiceNote(
		c.Request.Context(), uint(userID), channel, fileHeader.Filename, file, contentType)
	if err != nil {
		if errors.Is(err, service.ErrStore) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "转写结果保存失败"})
			return
		}
		log.Errorf("语音转写失败: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "语音转写服务暂不可用"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Success",
		"data":    gin.H{"text": transcript.Content, "transcriptId": transcript.ID},
	})
}

// GetTranscripts 返回当前用户的全部转写记录，按创建时间倒序。
func (h *TranscribeHandler) GetTranscripts(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	transcripts, err := h.transcribeService.GetTranscripts(c.Request.Context(), user.ID)
	if err != nil {
		log.Errorf("查询转写记录失败: userId=%d, error: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transcripts."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    transcripts,
	})
}
