// Package models 投稿数据模型
package models

import (
	"time"
)

// 投稿类型
const (
	SubmissionTypeCheat    = "cheat"
	SubmissionTypeMacro    = "macro"
	SubmissionTypeLegit    = "legit"
	SubmissionTypeCoinShop = "coinshop"
	SubmissionTypeOther    = "other"
)

// Submission 投稿记录表
type Submission struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID          string    `gorm:"column:uuid;size:36;uniqueIndex" json:"uuid"`      // 投稿唯一标识
	Type          string    `gorm:"column:type;size:20;index" json:"type"`            // 投稿类型
	Name          string    `gorm:"column:name;size:100" json:"name"`                 // 名称
	Version       string    `gorm:"column:version;size:10" json:"version"`            // 适用版本
	IsFree        bool      `gorm:"column:is_free" json:"is_free"`                    // 是否免费
	InviteLink    string    `gorm:"column:invite_link;size:200" json:"invite_link"`   // 群组邀请链接
	WebsiteLink   string    `gorm:"column:website_link;size:200" json:"website_link"` // 网站/GitHub 链接
	SubmitterTG   int64     `gorm:"column:submitter_tg;index" json:"submitter_tg"`    // 投稿人 TG ID
	SubmitterName string    `gorm:"column:submitter_name;size:255" json:"submitter_name"`
	TopicID       int       `gorm:"column:topic_id" json:"topic_id"`     // 发布到的话题 ID
	MessageID     int       `gorm:"column:message_id" json:"message_id"` // 话题内消息 ID
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName 表名
func (Submission) TableName() string {
	return "submissions"
}

// IsVersioned 该类型是否区分版本
func IsVersionedType(t string) bool {
	switch t {
	case SubmissionTypeCheat, SubmissionTypeMacro, SubmissionTypeLegit:
		return true
	}
	return false
}
