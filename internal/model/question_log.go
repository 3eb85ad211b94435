package model

import (
	"time"
)

// 问答日志状态
const (
	LogStatusSuccess = "success"
	LogStatusError   = "error"
)

// QuestionLog 记录一次课程问答请求，成功或失败各写一行，仅追加不修改
type QuestionLog struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"userId"`
	CourseID       uint      `gorm:"index;not null" json:"courseId"`
	Question       string    `gorm:"type:text;not null" json:"question"`
	Answer         *string   `gorm:"type:text" json:"answer,omitempty"`
	ResponseTimeMs *int64    `json:"responseTimeMs,omitempty"`
	Status         string    `gorm:"size:10;not null;index" json:"status"` // success 或 error
	ErrorMessage   *string   `gorm:"size:500" json:"errorMessage,omitempty"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
}

func (QuestionLog) TableName() string {
	return "assistant_question_logs"
}
