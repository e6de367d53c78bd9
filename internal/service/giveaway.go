// Package service 抽奖生命周期服务
package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smysle/sakura-giveaway-go/internal/config"
	"github.com/smysle/sakura-giveaway-go/internal/database/models"
	"github.com/smysle/sakura-giveaway-go/pkg/logger"
)

var (
	ErrGiveawayDisabled   = errors.New("抽奖功能已关闭")
	ErrGiveawayNotFound   = errors.New("抽奖不存在")
	ErrGiveawayNotActive  = errors.New("抽奖不在进行中")
	ErrGiveawayNotEnded   = errors.New("抽奖尚未开奖")
	ErrGiveawayExpired    = errors.New("抽奖已截止")
	ErrAlreadyJoined      = errors.New("您已参与此抽奖")
	ErrNoParticipants     = errors.New("没有参与者，无法重抽")
	ErrTitleRequired      = errors.New("标题不能为空")
	ErrPrizeRequired      = errors.New("奖品不能为空")
	ErrInvalidWinnerCount = errors.New("无效的中奖人数")
	ErrInvalidDuration    = errors.New("无效的持续时间")
)

// 校验范围默认值，配置缺省时兜底
const (
	defaultMaxWinners  = 20
	defaultMaxDuration = 10080 // 一周（分钟）
)

// GiveawayStore 抽奖持久化接口，由 repository.GiveawayRepository 实现
type GiveawayStore interface {
	Create(giveaway *models.Giveaway) error
	GetByUUID(uuid string) (*models.Giveaway, error)
	Save(giveaway *models.Giveaway) error
	GetActive() ([]models.Giveaway, error)
	GetExpired(now time.Time) ([]models.Giveaway, error)
}

// GiveawayService 抽奖服务
// 所有变更操作持锁串行执行，避免两次并发参与互相覆盖
// （读改写不是原子的，低并发下单把锁足够）
type GiveawayService struct {
	store  GiveawayStore
	cfg    *config.Config
	timers *TimerTable
	mu     sync.Mutex
}

// NewGiveawayService 创建抽奖服务
func NewGiveawayService(store GiveawayStore, cfg *config.Config) *GiveawayService {
	return &GiveawayService{
		store: store,
		cfg:   cfg,
	}
}

// SetTimerTable 注入定时器表，创建/结束/取消时同步维护定时器
func (s *GiveawayService) SetTimerTable(timers *TimerTable) {
	s.timers = timers
}

// CreateGiveawayRequest 创建抽奖请求
type CreateGiveawayRequest struct {
	Title       string
	Prize       string
	Description string
	WinnerCount int // 0 表示默认 1
	Duration    int // 分钟
	HostTG      int64
	HostName    string
	ChatID      int64
}

// EndResult 开奖结果
type EndResult struct {
	Giveaway         *models.Giveaway
	Winners          []int64
	ParticipantCount int
}

// RerollResult 重抽结果
type RerollResult struct {
	Giveaway *models.Giveaway
	Winners  []int64
}

// Create 创建抽奖
// 校验通过后立即持久化，返回前记录已落库
func (s *GiveawayService) Create(req *CreateGiveawayRequest) (*models.Giveaway, error) {
	if s.cfg != nil && !s.cfg.Giveaway.Enabled {
		return nil, ErrGiveawayDisabled
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Prize) == "" {
		return nil, ErrPrizeRequired
	}

	winnerCount := req.WinnerCount
	if winnerCount == 0 {
		winnerCount = 1
	}
	if winnerCount < 1 || winnerCount > s.maxWinners() {
		return nil, ErrInvalidWinnerCount
	}

	if req.Duration < 1 || req.Duration > s.maxDuration() {
		return nil, ErrInvalidDuration
	}

	now := time.Now()
	giveaway := &models.Giveaway{
		UUID:         uuid.New().String(),
		Title:        strings.TrimSpace(req.Title),
		Prize:        strings.TrimSpace(req.Prize),
		Description:  strings.TrimSpace(req.Description),
		WinnerCount:  winnerCount,
		Duration:     req.Duration,
		HostTG:       req.HostTG,
		HostName:     req.HostName,
		ChatID:       req.ChatID,
		Participants: models.IDList{},
		Winners:      models.IDList{},
		Status:       models.GiveawayStatusActive,
		CreatedAt:    now,
		EndsAt:       now.Add(time.Duration(req.Duration) * time.Minute),
	}

	if err := s.store.Create(giveaway); err != nil {
		return nil, fmt.Errorf("创建抽奖失败: %w", err)
	}

	if s.timers != nil {
		s.timers.Schedule(giveaway.UUID, giveaway.EndsAt)
	}

	logger.Info().
		Str("uuid", giveaway.UUID).
		Int64("host", giveaway.HostTG).
		Str("title", giveaway.Title).
		Int("duration", giveaway.Duration).
		Int("winners", giveaway.WinnerCount).
		Msg("抽奖创建成功")

	return giveaway, nil
}

// Join 参与抽奖
// 状态和截止时间双重检查：扫描间隔内过期但未开奖的抽奖也拒绝参与
func (s *GiveawayService) Join(giveawayUUID string, userTG int64) (*models.Giveaway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	giveaway, err := s.store.GetByUUID(giveawayUUID)
	if err != nil {
		return nil, ErrGiveawayNotFound
	}

	if !giveaway.IsActive() {
		return nil, ErrGiveawayNotActive
	}
	if giveaway.IsExpired(time.Now()) {
		return nil, ErrGiveawayExpired
	}
	if giveaway.HasParticipant(userTG) {
		return nil, ErrAlreadyJoined
	}

	giveaway.Participants = append(giveaway.Participants, userTG)
	if err := s.store.Save(giveaway); err != nil {
		return nil, fmt.Errorf("保存参与记录失败: %w", err)
	}

	logger.Debug().
		Str("uuid", giveawayUUID).
		Int64("user", userTG).
		Int("participants", len(giveaway.Participants)).
		Msg("用户参与抽奖")

	return giveaway, nil
}

// End 开奖
// 定时器、定时扫描和手动提前开奖都走这里；status 保护使二次调用
// 返回 ErrGiveawayNotActive 而不会改写首次结果。没有参与者时
// 正常开奖，中奖者为空。
func (s *GiveawayService) End(giveawayUUID string) (*EndResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	giveaway, err := s.store.GetByUUID(giveawayUUID)
	if err != nil {
		return nil, ErrGiveawayNotFound
	}

	if !giveaway.IsActive() {
		return nil, ErrGiveawayNotActive
	}

	winners := SelectWinners(giveaway.Participants, giveaway.WinnerCount)
	now := time.Now()

	giveaway.Status = models.GiveawayStatusEnded
	giveaway.Winners = winners
	giveaway.EndedAt = &now

	if err := s.store.Save(giveaway); err != nil {
		return nil, fmt.Errorf("保存开奖结果失败: %w", err)
	}

	if s.timers != nil {
		s.timers.Cancel(giveawayUUID)
	}

	logger.Info().
		Str("uuid", giveawayUUID).
		Int("participants", len(giveaway.Participants)).
		Int("winners", len(winners)).
		Msg("抽奖已开奖")

	return &EndResult{
		Giveaway:         giveaway,
		Winners:          winners,
		ParticipantCount: len(giveaway.Participants),
	}, nil
}

// Cancel 取消抽奖，不抽取中奖者
func (s *GiveawayService) Cancel(giveawayUUID string) (*models.Giveaway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	giveaway, err := s.store.GetByUUID(giveawayUUID)
	if err != nil {
		return nil, ErrGiveawayNotFound
	}

	if !giveaway.IsActive() {
		return nil, ErrGiveawayNotActive
	}

	now := time.Now()
	giveaway.Status = models.GiveawayStatusCancelled
	giveaway.CancelledAt = &now

	if err := s.store.Save(giveaway); err != nil {
		return nil, fmt.Errorf("保存取消状态失败: %w", err)
	}

	if s.timers != nil {
		s.timers.Cancel(giveawayUUID)
	}

	logger.Info().Str("uuid", giveawayUUID).Msg("抽奖已取消")
	return giveaway, nil
}

// Reroll 重抽中奖者
// 只允许对已开奖的抽奖操作；全新独立抽取，不排除上一轮中奖者，
// 截止时间不变。count 为 0 时沿用原中奖人数。
func (s *GiveawayService) Reroll(giveawayUUID string, count int, actorTG int64) (*RerollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	giveaway, err := s.store.GetByUUID(giveawayUUID)
	if err != nil {
		return nil, ErrGiveawayNotFound
	}

	if giveaway.Status != models.GiveawayStatusEnded {
		return nil, ErrGiveawayNotEnded
	}
	if len(giveaway.Participants) == 0 {
		return nil, ErrNoParticipants
	}

	if count == 0 {
		count = giveaway.WinnerCount
	}
	if count < 1 || count > s.maxWinners() {
		return nil, ErrInvalidWinnerCount
	}

	winners := SelectWinners(giveaway.Participants, count)
	now := time.Now()

	giveaway.Winners = winners
	giveaway.RerolledAt = &now
	giveaway.RerolledBy = &actorTG

	if err := s.store.Save(giveaway); err != nil {
		return nil, fmt.Errorf("保存重抽结果失败: %w", err)
	}

	logger.Info().
		Str("uuid", giveawayUUID).
		Int64("actor", actorTG).
		Int("winners", len(winners)).
		Msg("抽奖已重抽")

	return &RerollResult{
		Giveaway: giveaway,
		Winners:  winners,
	}, nil
}

// Get 获取抽奖
func (s *GiveawayService) Get(giveawayUUID string) (*models.Giveaway, error) {
	giveaway, err := s.store.GetByUUID(giveawayUUID)
	if err != nil {
		return nil, ErrGiveawayNotFound
	}
	return giveaway, nil
}

// ListActive 获取所有进行中的抽奖
func (s *GiveawayService) ListActive() ([]models.Giveaway, error) {
	return s.store.GetActive()
}

// ListExpired 获取已到开奖时间但仍是 active 的抽奖（定时扫描用）
func (s *GiveawayService) ListExpired() ([]models.Giveaway, error) {
	return s.store.GetExpired(time.Now())
}

// SetMessageID 公告发布后回填消息 ID，只允许设置一次
func (s *GiveawayService) SetMessageID(giveawayUUID string, messageID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	giveaway, err := s.store.GetByUUID(giveawayUUID)
	if err != nil {
		return ErrGiveawayNotFound
	}

	if giveaway.MessageID != 0 {
		return nil
	}

	giveaway.MessageID = messageID
	if err := s.store.Save(giveaway); err != nil {
		return fmt.Errorf("回填消息 ID 失败: %w", err)
	}
	return nil
}

func (s *GiveawayService) maxWinners() int {
	if s.cfg != nil && s.cfg.Giveaway.MaxWinners > 0 {
		return s.cfg.Giveaway.MaxWinners
	}
	return defaultMaxWinners
}

func (s *GiveawayService) maxDuration() int {
	if s.cfg != nil && s.cfg.Giveaway.MaxDurationMinutes > 0 {
		return s.cfg.Giveaway.MaxDurationMinutes
	}
	return defaultMaxDuration
}
