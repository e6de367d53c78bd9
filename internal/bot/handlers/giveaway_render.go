// Package handlers 抽奖消息渲染
package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/sakura-giveaway-go/internal/bot/keyboards"
	"github.com/smysle/sakura-giveaway-go/internal/config"
	"github.com/smysle/sakura-giveaway-go/internal/database/models"
	"github.com/smysle/sakura-giveaway-go/pkg/imggen"
	"github.com/smysle/sakura-giveaway-go/pkg/logger"
	"github.com/smysle/sakura-giveaway-go/pkg/utils"
)

// renderAnnouncementText 进行中抽奖的公告文案
func renderAnnouncementText(g *models.Giveaway) string {
	var sb strings.Builder

	sb.WriteString("🎉 **抽奖进行中** 🎉\n\n")
	sb.WriteString(fmt.Sprintf("🎁 **%s**\n", g.Title))
	sb.WriteString(fmt.Sprintf("🏆 奖品: %s\n", g.Prize))
	sb.WriteString(fmt.Sprintf("👑 发起人: [%s](tg://user?id=%d)\n", hostDisplayName(g), g.HostTG))
	sb.WriteString(fmt.Sprintf("👥 中奖名额: %d 人\n", g.WinnerCount))
	sb.WriteString(fmt.Sprintf("⏰ 剩余时间: %s\n", utils.FormatCountdown(g.EndsAt, time.Now())))
	sb.WriteString(fmt.Sprintf("📅 开奖时间: %s\n", utils.FormatTimeCST(g.EndsAt, "2006-01-02 15:04")))

	if g.Description != "" {
		sb.WriteString(fmt.Sprintf("\n📃 %s\n", g.Description))
	}

	sb.WriteString("\n点击下方按钮参与 👇")
	return sb.String()
}

// renderResultText 开奖结果文案
func renderResultText(g *models.Giveaway, winners []int64, participantCount int) string {
	var sb strings.Builder

	sb.WriteString("🎊 **开奖啦** 🎊\n\n")
	sb.WriteString(fmt.Sprintf("🎁 **%s**\n", g.Title))
	sb.WriteString(fmt.Sprintf("🏆 奖品: %s\n", g.Prize))
	sb.WriteString(fmt.Sprintf("👥 参与人数: %d\n\n", participantCount))

	if len(winners) == 0 {
		sb.WriteString("😢 无人参与，本次抽奖没有中奖者")
	} else {
		sb.WriteString("🥳 **中奖者:**\n")
		sb.WriteString(mentionList(winners))
		sb.WriteString("\n请中奖者联系发起人领取奖品~")
	}

	return sb.String()
}

// renderEndedAnnouncementText 开奖后公告的最终形态
func renderEndedAnnouncementText(g *models.Giveaway, winners []int64) string {
	var sb strings.Builder

	sb.WriteString("🏁 **抽奖已结束** 🏁\n\n")
	sb.WriteString(fmt.Sprintf("🎁 **%s**\n", g.Title))
	sb.WriteString(fmt.Sprintf("🏆 奖品: %s\n", g.Prize))
	sb.WriteString(fmt.Sprintf("👥 参与人数: %d\n", len(g.Participants)))

	if len(winners) == 0 {
		sb.WriteString("\n😢 无人参与，没有中奖者")
	} else {
		sb.WriteString("\n🥳 中奖者:\n")
		sb.WriteString(mentionList(winners))
	}

	return sb.String()
}

// renderCancelledAnnouncementText 取消后公告的最终形态
func renderCancelledAnnouncementText(g *models.Giveaway) string {
	return fmt.Sprintf(
		"🚫 **抽奖已取消** 🚫\n\n"+
			"🎁 **%s**\n"+
			"🏆 奖品: %s\n\n"+
			"本次抽奖已被取消，感谢大家的参与",
		g.Title, g.Prize,
	)
}

// mentionList 中奖者提及列表，每行一个
func mentionList(ids []int64) string {
	var sb strings.Builder
	for i, id := range ids {
		sb.WriteString(fmt.Sprintf("%d. [中奖者](tg://user?id=%d)\n", i+1, id))
	}
	return sb.String()
}

func hostDisplayName(g *models.Giveaway) string {
	if g.HostName != "" {
		return g.HostName
	}
	return "发起人"
}

// storedAnnouncement 公告消息引用，用于跨上下文编辑
func storedAnnouncement(g *models.Giveaway) tele.StoredMessage {
	return tele.StoredMessage{
		MessageID: strconv.Itoa(g.MessageID),
		ChatID:    g.ChatID,
	}
}

// editAnnouncement 编辑群内公告消息
func editAnnouncement(b *tele.Bot, g *models.Giveaway, text string, markup *tele.ReplyMarkup) {
	if b == nil || g.MessageID == 0 {
		return
	}

	var err error
	if markup != nil {
		_, err = b.Edit(storedAnnouncement(g), text, markup, tele.ModeMarkdown)
	} else {
		_, err = b.Edit(storedAnnouncement(g), text, tele.ModeMarkdown)
	}
	if err != nil {
		logger.Debug().Err(err).Str("uuid", g.UUID).Msg("编辑抽奖公告失败")
	}
}

// refreshAnnouncementThrottled 节流刷新公告的参与人数
// 参与高峰时避免每次点击都触发一次 editMessage
func refreshAnnouncementThrottled(b *tele.Bot, g *models.Giveaway) {
	cfg := config.Get()
	throttle := 3 * time.Second
	if cfg != nil && cfg.Giveaway.EditThrottleSeconds > 0 {
		throttle = time.Duration(cfg.Giveaway.EditThrottleSeconds) * time.Second
	}

	key := "gw_edit:" + g.UUID
	if _, found := utils.CacheGet(key); found {
		return
	}
	utils.CacheSet(key, struct{}{}, throttle)

	editAnnouncement(b, g,
		renderAnnouncementText(g),
		keyboards.JoinGiveawayKeyboard(g.UUID, len(g.Participants)),
	)
}

// sendWinnerCard 开奖时生成并发送中奖卡片图
func sendWinnerCard(b *tele.Bot, g *models.Giveaway, winners []int64) {
	cfg := config.Get()
	if b == nil || cfg == nil || !cfg.Giveaway.WinnerCard || len(winners) == 0 {
		return
	}

	imgPath, err := imggen.GenerateWinnerCard(g.Title, g.Prize, len(winners), len(g.Participants))
	if err != nil {
		logger.Warn().Err(err).Str("uuid", g.UUID).Msg("生成中奖卡片失败")
		return
	}

	photo := &tele.Photo{File: tele.FromDisk(imgPath)}
	if _, err := b.Send(&tele.Chat{ID: g.ChatID}, photo); err != nil {
		logger.Debug().Err(err).Str("uuid", g.UUID).Msg("发送中奖卡片失败")
	}
}
