// Package repository 抽奖数据仓库
package repository

import (
	"errors"
	"time"

	"github.com/smysle/sakura-giveaway-go/internal/database"
	"github.com/smysle/sakura-giveaway-go/internal/database/models"
	"gorm.io/gorm"
)

// ErrGiveawayNotFound 抽奖记录不存在
var ErrGiveawayNotFound = errors.New("抽奖不存在")

// GiveawayRepository 抽奖仓库
type GiveawayRepository struct {
	db *gorm.DB
}

// NewGiveawayRepository 创建抽奖仓库
func NewGiveawayRepository() *GiveawayRepository {
	return &GiveawayRepository{db: database.GetDB()}
}

// Create 创建抽奖
func (r *GiveawayRepository) Create(giveaway *models.Giveaway) error {
	return r.db.Create(giveaway).Error
}

// GetByUUID 根据 UUID 获取抽奖
func (r *GiveawayRepository) GetByUUID(uuid string) (*models.Giveaway, error) {
	var giveaway models.Giveaway
	err := r.db.Where("uuid = ?", uuid).First(&giveaway).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGiveawayNotFound
		}
		return nil, err
	}
	return &giveaway, nil
}

// Save 整条记录回写
func (r *GiveawayRepository) Save(giveaway *models.Giveaway) error {
	return r.db.Save(giveaway).Error
}

// GetActive 获取所有进行中的抽奖
func (r *GiveawayRepository) GetActive() ([]models.Giveaway, error) {
	var giveaways []models.Giveaway
	err := r.db.Where("status = ?", models.GiveawayStatusActive).
		Order("ends_at ASC").
		Find(&giveaways).Error
	return giveaways, err
}

// GetExpired 获取已到开奖时间但仍是 active 的抽奖
func (r *GiveawayRepository) GetExpired(now time.Time) ([]models.Giveaway, error) {
	var giveaways []models.Giveaway
	err := r.db.Where("status = ? AND ends_at <= ?", models.GiveawayStatusActive, now).
		Find(&giveaways).Error
	return giveaways, err
}

// CountByStatus 按状态统计数量
func (r *GiveawayRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Giveaway{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// ListRecent 获取最近的抽奖（Web API 用）
func (r *GiveawayRepository) ListRecent(status string, limit int) ([]models.Giveaway, error) {
	query := r.db.Model(&models.Giveaway{}).Order("created_at DESC").Limit(limit)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var giveaways []models.Giveaway
	err := query.Find(&giveaways).Error
	return giveaways, err
}
