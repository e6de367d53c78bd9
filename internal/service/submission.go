// Package service 投稿服务
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smysle/sakura-giveaway-go/internal/config"
	"github.com/smysle/sakura-giveaway-go/internal/database/models"
	"github.com/smysle/sakura-giveaway-go/pkg/logger"
	"github.com/smysle/sakura-giveaway-go/pkg/utils"
)

var (
	ErrSubmissionDisabled    = errors.New("投稿功能已关闭")
	ErrInvalidSubmissionType = errors.New("无效的投稿类型")
	ErrInvalidVersion        = errors.New("无效的版本，支持 1.8.9 或 1.21.5")
	ErrNameRequired          = errors.New("名称不能为空")
	ErrNoTopicConfigured     = errors.New("该类型未配置话题")
)

// SubmissionStore 投稿持久化接口，由 repository.SubmissionRepository 实现
type SubmissionStore interface {
	Create(submission *models.Submission) error
	SetMessageID(uuid string, messageID int) error
}

// SubmissionService 投稿服务
type SubmissionService struct {
	store SubmissionStore
	cfg   *config.Config
}

// NewSubmissionService 创建投稿服务
func NewSubmissionService(store SubmissionStore, cfg *config.Config) *SubmissionService {
	return &SubmissionService{
		store: store,
		cfg:   cfg,
	}
}

// SubmitRequest 投稿请求
type SubmitRequest struct {
	Type          string
	Name          string
	Version       string
	IsFree        bool
	InviteLink    string
	WebsiteLink   string
	SubmitterTG   int64
	SubmitterName string
}

// SubmitResult 投稿结果
type SubmitResult struct {
	Submission *models.Submission
	TopicID    int
}

// Submit 校验并保存投稿，返回目标话题
// 投稿消息由调用方发布到话题后用 SetMessageID 回填
func (s *SubmissionService) Submit(req *SubmitRequest) (*SubmitResult, error) {
	if s.cfg != nil && !s.cfg.Submission.Enabled {
		return nil, ErrSubmissionDisabled
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	switch req.Type {
	case models.SubmissionTypeCheat, models.SubmissionTypeMacro, models.SubmissionTypeLegit,
		models.SubmissionTypeCoinShop, models.SubmissionTypeOther:
	default:
		return nil, ErrInvalidSubmissionType
	}

	if models.IsVersionedType(req.Type) && req.Version != "1.8.9" && req.Version != "1.21.5" {
		return nil, ErrInvalidVersion
	}

	topicID, err := s.topicFor(req.Type, req.Version)
	if err != nil {
		return nil, err
	}

	inviteLink := utils.FormatInviteLink(req.InviteLink)
	websiteLink := utils.FormatWebsiteLink(req.WebsiteLink)

	// 可达性探测开启时丢弃探测失败的链接
	if websiteLink != "" && s.cfg != nil && s.cfg.Submission.ProbeLinks {
		if !utils.ProbeLink(websiteLink) {
			logger.Warn().Str("link", websiteLink).Msg("投稿链接探测失败，已丢弃")
			websiteLink = ""
		}
	}

	submission := &models.Submission{
		UUID:          uuid.New().String(),
		Type:          req.Type,
		Name:          strings.TrimSpace(req.Name),
		Version:       req.Version,
		IsFree:        req.IsFree,
		InviteLink:    inviteLink,
		WebsiteLink:   websiteLink,
		SubmitterTG:   req.SubmitterTG,
		SubmitterName: req.SubmitterName,
		TopicID:       topicID,
		CreatedAt:     time.Now(),
	}

	if err := s.store.Create(submission); err != nil {
		return nil, fmt.Errorf("保存投稿失败: %w", err)
	}

	logger.Info().
		Str("uuid", submission.UUID).
		Str("type", submission.Type).
		Str("name", submission.Name).
		Int64("submitter", submission.SubmitterTG).
		Msg("投稿已保存")

	return &SubmitResult{
		Submission: submission,
		TopicID:    topicID,
	}, nil
}

// SetMessageID 话题消息发布后回填消息 ID
func (s *SubmissionService) SetMessageID(submissionUUID string, messageID int) error {
	return s.store.SetMessageID(submissionUUID, messageID)
}

// topicFor 根据类型和版本确定目标话题
func (s *SubmissionService) topicFor(subType, version string) (int, error) {
	if s.cfg == nil {
		return 0, ErrNoTopicConfigured
	}

	key := subType
	if models.IsVersionedType(subType) {
		if version == "1.8.9" {
			key = subType + "_189"
		} else {
			key = subType + "_1215"
		}
	}

	topicID, ok := s.cfg.Submission.Topics[key]
	if !ok || topicID == 0 {
		return 0, ErrNoTopicConfigured
	}
	return topicID, nil
}
