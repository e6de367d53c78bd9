// Package handlers 管理员命令处理器
package handlers

import (
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/sakura-giveaway-go/internal/config"
	"github.com/smysle/sakura-giveaway-go/internal/database/models"
	"github.com/smysle/sakura-giveaway-go/internal/database/repository"
	"github.com/smysle/sakura-giveaway-go/pkg/logger"
	"github.com/smysle/sakura-giveaway-go/pkg/utils"
)

// AddAdmin /addadmin 添加管理员（仅 Owner）
// 用法: /addadmin <用户ID> 或回复目标用户的消息
func AddAdmin(c tele.Context) error {
	target, err := resolveAdminTarget(c)
	if err != nil {
		return c.Send("用法: `/addadmin <用户ID>` 或回复目标用户的消息", tele.ModeMarkdown)
	}

	cfg := config.Get()
	if !cfg.AddAdmin(target) {
		return c.Send("⚠️ 该用户已经是管理员")
	}

	if err := cfg.Save(""); err != nil {
		logger.Error().Err(err).Msg("保存配置失败")
		return c.Send("⚠️ 管理员已添加但配置保存失败")
	}

	logger.Info().Int64("target", target).Int64("owner", c.Sender().ID).Msg("添加管理员")
	return c.Send(fmt.Sprintf("✅ 已添加管理员 `%d`", target), tele.ModeMarkdown)
}

// DelAdmin /deladmin 移除管理员（仅 Owner）
func DelAdmin(c tele.Context) error {
	target, err := resolveAdminTarget(c)
	if err != nil {
		return c.Send("用法: `/deladmin <用户ID>` 或回复目标用户的消息", tele.ModeMarkdown)
	}

	cfg := config.Get()
	if !cfg.RemoveAdmin(target) {
		return c.Send("⚠️ 该用户不是管理员")
	}

	if err := cfg.Save(""); err != nil {
		logger.Error().Err(err).Msg("保存配置失败")
		return c.Send("⚠️ 管理员已移除但配置保存失败")
	}

	logger.Info().Int64("target", target).Int64("owner", c.Sender().ID).Msg("移除管理员")
	return c.Send(fmt.Sprintf("✅ 已移除管理员 `%d`", target), tele.ModeMarkdown)
}

// resolveAdminTarget 从参数或被回复消息解析目标用户 ID
func resolveAdminTarget(c tele.Context) (int64, error) {
	if args := c.Args(); len(args) > 0 {
		return strconv.ParseInt(args[0], 10, 64)
	}
	if target := targetFromReply(c); target != nil {
		return target.ID, nil
	}
	return 0, fmt.Errorf("未指定目标用户")
}

// Stats /stats 统计命令（管理员）
func Stats(c tele.Context) error {
	return c.Send(buildStatsText(), tele.ModeMarkdown)
}

// DailyStatsReport 每日统计报告文案（定时任务用）
func DailyStatsReport() string {
	return fmt.Sprintf("📅 **每日报告** %s\n\n%s",
		utils.TimeNowCST().Format("2006-01-02"), buildStatsText())
}

// buildStatsText 汇总抽奖和投稿的统计文案
func buildStatsText() string {
	gRepo := repository.NewGiveawayRepository()
	sRepo := repository.NewSubmissionRepository()

	active, _ := gRepo.CountByStatus(models.GiveawayStatusActive)
	ended, _ := gRepo.CountByStatus(models.GiveawayStatusEnded)
	cancelled, _ := gRepo.CountByStatus(models.GiveawayStatusCancelled)
	submissions, _ := sRepo.Count()

	return fmt.Sprintf(
		"📊 **系统统计**\n\n"+
			"🎉 抽奖:\n"+
			"- 进行中: %d\n"+
			"- 已开奖: %d\n"+
			"- 已取消: %d\n\n"+
			"📝 投稿总数: %d",
		active, ended, cancelled, submissions,
	)
}
