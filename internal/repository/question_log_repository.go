package repository

import (
	"course_assistant_backend/internal/model"

	"gorm.io/gorm"
)

// QuestionLogRepository 问答日志仅追加，不提供更新和删除
type QuestionLogRepository struct {
	DB *gorm.DB
}

func NewQuestionLogRepository(db *gorm.DB) *QuestionLogRepository {
	return &QuestionLogRepository{DB: db}
}

func (r *QuestionLogRepository) Create(log *model.QuestionLog) error {
	return r.DB.Create(log).Error
}

// ListByCourse 按时间倒序分页，courseID为0时返回全部课程
func (r *QuestionLogRepository) ListByCourse(courseID uint, page, limit int) ([]model.QuestionLog, int64, error) {
	var logs []model.QuestionLog
	var total int64

	db := r.DB.Model(&model.QuestionLog{})
	if courseID > 0 {
		db = db.Where("course_id = ?", courseID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	err := db.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error

	return logs, total, err
}
