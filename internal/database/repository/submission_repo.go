// Package repository 投稿数据仓库
package repository

import (
	"github.com/smysle/sakura-giveaway-go/internal/database"
	"github.com/smysle/sakura-giveaway-go/internal/database/models"
	"gorm.io/gorm"
)

// SubmissionRepository 投稿仓库
type SubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository 创建投稿仓库
func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{db: database.GetDB()}
}

// Create 创建投稿记录
func (r *SubmissionRepository) Create(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

// GetByUUID 根据 UUID 获取投稿
func (r *SubmissionRepository) GetByUUID(uuid string) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.Where("uuid = ?", uuid).First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// SetMessageID 回填话题消息 ID
func (r *SubmissionRepository) SetMessageID(uuid string, messageID int) error {
	return r.db.Model(&models.Submission{}).
		Where("uuid = ?", uuid).
		Update("message_id", messageID).Error
}

// ListByType 按类型获取投稿
func (r *SubmissionRepository) ListByType(subType string, limit int) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.Where("type = ?", subType).
		Order("created_at DESC").
		Limit(limit).
		Find(&submissions).Error
	return submissions, err
}

// Count 投稿总数
func (r *SubmissionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Submission{}).Count(&count).Error
	return count, err
}
