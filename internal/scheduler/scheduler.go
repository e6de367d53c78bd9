// Package scheduler 定时任务调度
package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	tele "gopkg.in/telebot.v3"

	"github.com/smysle/sakura-giveaway-go/internal/bot/handlers"
	"github.com/smysle/sakura-giveaway-go/internal/config"
	"github.com/smysle/sakura-giveaway-go/pkg/logger"
)

// Scheduler 定时任务调度器
type Scheduler struct {
	cron *gocron.Scheduler
	cfg  *config.Config
	bot  *tele.Bot
}

var instance *Scheduler

// New 创建调度器
func New(cfg *config.Config) *Scheduler {
	loc, _ := time.LoadLocation("Asia/Shanghai")
	s := gocron.NewScheduler(loc)
	s.SetMaxConcurrentJobs(5, gocron.RescheduleMode)

	instance = &Scheduler{
		cron: s,
		cfg:  cfg,
	}

	return instance
}

// Get 获取调度器实例
func Get() *Scheduler {
	return instance
}

// SetBot 设置 Bot 实例（用于发送消息）
func (s *Scheduler) SetBot(bot *tele.Bot) {
	s.bot = bot
}

// Start 启动调度器
func (s *Scheduler) Start() {
	logger.Info().Msg("启动定时任务调度器")

	s.registerJobs()

	s.cron.StartAsync()
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	logger.Info().Msg("停止定时任务调度器")
	s.cron.Stop()
}

// registerJobs 注册所有定时任务
func (s *Scheduler) registerJobs() {
	cfg := s.cfg.Scheduler

	// 过期抽奖扫描，定时器失效时的开奖兜底
	if cfg.SweepExpired {
		minutes := s.cfg.Giveaway.SweepMinutes
		if minutes <= 0 {
			minutes = 5
		}
		s.cron.Every(minutes).Minutes().Do(s.sweepExpiredGiveaways)
		logger.Info().Int("minutes", minutes).Msg("已注册: 过期抽奖扫描任务")
	}

	// 每日统计报告 - 每天晚上 22 点
	if cfg.DailyStats {
		s.cron.Every(1).Day().At("22:00").Do(s.sendDailyStats)
		logger.Info().Msg("已注册: 每日统计任务 (每天 22:00)")
	}
}

// AddJob 添加自定义任务
func (s *Scheduler) AddJob(cronExpr string, job func()) error {
	_, err := s.cron.Cron(cronExpr).Do(job)
	return err
}

// sweepExpiredGiveaways 扫描并开奖到期的抽奖
func (s *Scheduler) sweepExpiredGiveaways() {
	handlers.SweepExpiredGiveaways()
}

// sendDailyStats 向 Owner 发送每日统计报告
func (s *Scheduler) sendDailyStats() {
	logger.Info().Msg("执行定时任务: 每日统计")

	if s.bot == nil || s.cfg.Owner == 0 {
		return
	}

	chat := &tele.Chat{ID: s.cfg.Owner}
	if _, err := s.bot.Send(chat, handlers.DailyStatsReport(), tele.ModeMarkdown); err != nil {
		logger.Warn().Err(err).Msg("发送每日统计失败")
	}
}
