// Package models 抽奖数据模型
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/smysle/sakura-giveaway-go/pkg/logger"
)

// 抽奖状态
const (
	GiveawayStatusActive    = "active"    // 进行中
	GiveawayStatusEnded     = "ended"     // 已开奖
	GiveawayStatusCancelled = "cancelled" // 已取消
)

// IDList 用户 ID 列表，以 JSON 存储
// 数据损坏时记录日志并回退为空列表，不让进程崩溃
type IDList []int64

// Scan 实现 sql.Scanner
func (l *IDList) Scan(value interface{}) error {
	if value == nil {
		*l = IDList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		logger.Warn().Interface("value", value).Msg("IDList 列类型异常，回退为空列表")
		*l = IDList{}
		return nil
	}

	if len(data) == 0 {
		*l = IDList{}
		return nil
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		logger.Warn().Err(err).Str("raw", string(data)).Msg("IDList 数据损坏，回退为空列表")
		*l = IDList{}
		return nil
	}

	*l = ids
	return nil
}

// Value 实现 driver.Valuer
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	data, err := json.Marshal([]int64(l))
	if err != nil {
		return nil, fmt.Errorf("序列化 IDList 失败: %w", err)
	}
	return string(data), nil
}

// Contains 检查 ID 是否在列表中
func (l IDList) Contains(id int64) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Giveaway 抽奖表
type Giveaway struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID         string     `gorm:"column:uuid;size:36;uniqueIndex" json:"uuid"`            // 抽奖唯一标识
	Title        string     `gorm:"column:title;size:100" json:"title"`                     // 标题
	Prize        string     `gorm:"column:prize;size:200" json:"prize"`                     // 奖品
	Description  string     `gorm:"column:description;size:1000" json:"description"`        // 描述（可选）
	WinnerCount  int        `gorm:"column:winner_count;default:1" json:"winner_count"`      // 中奖人数
	Duration     int        `gorm:"column:duration" json:"duration"`                        // 持续时间（分钟）
	HostTG       int64      `gorm:"column:host_tg;index" json:"host_tg"`                    // 发起人 TG ID
	HostName     string     `gorm:"column:host_name;size:255" json:"host_name"`             // 发起人名称
	ChatID       int64      `gorm:"column:chat_id" json:"chat_id"`                          // 所在群组 ID
	MessageID    int        `gorm:"column:message_id" json:"message_id"`                    // 公告消息 ID，发布后回填
	Participants IDList     `gorm:"column:participants;type:text" json:"participants"`     // 参与者列表
	Winners      IDList     `gorm:"column:winners;type:text" json:"winners"`                // 中奖者列表（有序）
	Status       string     `gorm:"column:status;size:20;default:'active'" json:"status"`   // 状态: active, ended, cancelled
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	EndsAt       time.Time  `gorm:"column:ends_at;index" json:"ends_at"`
	EndedAt      *time.Time `gorm:"column:ended_at" json:"ended_at,omitempty"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
	RerolledAt   *time.Time `gorm:"column:rerolled_at" json:"rerolled_at,omitempty"`
	RerolledBy   *int64     `gorm:"column:rerolled_by" json:"rerolled_by,omitempty"` // 重抽操作者
}

// TableName 表名
func (Giveaway) TableName() string {
	return "giveaways"
}

// IsActive 是否进行中
func (g *Giveaway) IsActive() bool {
	return g.Status == GiveawayStatusActive
}

// IsExpired 是否已到开奖时间
func (g *Giveaway) IsExpired(now time.Time) bool {
	return !now.Before(g.EndsAt)
}

// HasParticipant 用户是否已参与
func (g *Giveaway) HasParticipant(tgID int64) bool {
	return g.Participants.Contains(tgID)
}
