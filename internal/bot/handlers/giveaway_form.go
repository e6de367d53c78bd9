// Package handlers 抽奖创建向导（私聊会话流程）
package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/sakura-giveaway-go/internal/bot/keyboards"
	"github.com/smysle/sakura-giveaway-go/internal/bot/session"
	"github.com/smysle/sakura-giveaway-go/internal/config"
	"github.com/smysle/sakura-giveaway-go/internal/service"
)

// startGiveawayWizard 进入创建向导
// 公告发布到配置的主群组，仅管理员可用
func startGiveawayWizard(c tele.Context) error {
	cfg := config.Get()
	if cfg == nil || !cfg.IsAdmin(c.Sender().ID) {
		return c.Send("❌ 只有管理员可以发起抽奖")
	}

	if len(cfg.Groups) == 0 {
		return c.Send("❌ 未配置目标群组，无法发布抽奖")
	}

	if !cfg.Giveaway.Enabled {
		return c.Send("❌ 抽奖功能已关闭")
	}

	sessionMgr := session.GetManager()
	sessionMgr.ClearSession(c.Sender().ID)
	sessionMgr.SetState(c.Sender().ID, session.StateGiveawayTitle)

	return c.Send(
		"🎉 **创建抽奖** (1/5)\n\n"+
			"请输入抽奖标题\n\n"+
			"_发送 /cancel 取消操作_",
		tele.ModeMarkdown,
	)
}

// handleGiveawayFormInput 向导的文本输入路由
func handleGiveawayFormInput(c tele.Context, state session.State) error {
	sessionMgr := session.GetManager()
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	switch state {
	case session.StateGiveawayTitle:
		if text == "" {
			return c.Send("❌ 标题不能为空，请重新输入")
		}
		sessionMgr.SetData(userID, "gw_title", text)
		sessionMgr.SetState(userID, session.StateGiveawayPrize)
		return c.Send("🎉 **创建抽奖** (2/5)\n\n请输入奖品内容", tele.ModeMarkdown)

	case session.StateGiveawayPrize:
		if text == "" {
			return c.Send("❌ 奖品不能为空，请重新输入")
		}
		sessionMgr.SetData(userID, "gw_prize", text)
		sessionMgr.SetState(userID, session.StateGiveawayWinners)
		return c.Send("🎉 **创建抽奖** (3/5)\n\n请输入中奖人数 (1-20)", tele.ModeMarkdown)

	case session.StateGiveawayWinners:
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > 20 {
			return c.Send("❌ 请输入 1-20 之间的数字")
		}
		sessionMgr.SetData(userID, "gw_winners", n)
		sessionMgr.SetState(userID, session.StateGiveawayDuration)
		return c.Send(
			"🎉 **创建抽奖** (4/5)\n\n"+
				"请输入持续时间（分钟，1-10080）\n"+
				"例如: `60` 表示 1 小时，`1440` 表示 1 天",
			tele.ModeMarkdown,
		)

	case session.StateGiveawayDuration:
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > 10080 {
			return c.Send("❌ 请输入 1-10080 之间的分钟数（最长一周）")
		}
		sessionMgr.SetData(userID, "gw_duration", n)
		sessionMgr.SetState(userID, session.StateGiveawayDesc)
		return c.Send(
			"🎉 **创建抽奖** (5/5)\n\n请输入活动描述，或点击跳过",
			keyboards.SkipKeyboard("gw_skip_desc"),
			tele.ModeMarkdown,
		)

	case session.StateGiveawayDesc:
		sessionMgr.SetData(userID, "gw_desc", text)
		return confirmGiveawayWizard(c)
	}

	return nil
}

// handleGiveawaySkipDesc 跳过描述回调
func handleGiveawaySkipDesc(c tele.Context) error {
	sessionMgr := session.GetManager()
	if sessionMgr.GetState(c.Sender().ID) != session.StateGiveawayDesc {
		return c.Respond(&tele.CallbackResponse{Text: "会话已过期，请重新开始"})
	}

	c.Respond()
	sessionMgr.SetData(c.Sender().ID, "gw_desc", "")
	return confirmGiveawayWizard(c)
}

// confirmGiveawayWizard 展示确认面板
func confirmGiveawayWizard(c tele.Context) error {
	sessionMgr := session.GetManager()
	userID := c.Sender().ID

	title := sessionMgr.GetString(userID, "gw_title")
	prize := sessionMgr.GetString(userID, "gw_prize")
	winners := sessionMgr.GetInt(userID, "gw_winners")
	duration := sessionMgr.GetInt(userID, "gw_duration")
	desc := sessionMgr.GetString(userID, "gw_desc")

	sessionMgr.SetState(userID, session.StateNone)

	descLine := ""
	if desc != "" {
		descLine = fmt.Sprintf("📃 描述: %s\n", desc)
	}

	text := fmt.Sprintf(
		"📋 **确认发布抽奖？**\n\n"+
			"🎁 标题: %s\n"+
			"🏆 奖品: %s\n"+
			"👥 中奖人数: %d\n"+
			"⏰ 持续时间: %d 分钟\n"+
			"%s",
		title, prize, winners, duration, descLine,
	)

	return c.Send(text, keyboards.ConfirmKeyboard("gw_pub_ok", "gw_pub_abort"), tele.ModeMarkdown)
}

// handleGiveawayPublish 确认发布回调
func handleGiveawayPublish(c tele.Context) error {
	cfg := config.Get()
	sessionMgr := session.GetManager()
	userID := c.Sender().ID

	title := sessionMgr.GetString(userID, "gw_title")
	if title == "" {
		return c.Respond(&tele.CallbackResponse{Text: "会话已过期，请重新开始", ShowAlert: true})
	}

	req := &service.CreateGiveawayRequest{
		Title:       title,
		Prize:       sessionMgr.GetString(userID, "gw_prize"),
		Description: sessionMgr.GetString(userID, "gw_desc"),
		WinnerCount: sessionMgr.GetInt(userID, "gw_winners"),
		Duration:    sessionMgr.GetInt(userID, "gw_duration"),
		HostTG:      userID,
		HostName:    c.Sender().FirstName,
		ChatID:      cfg.Groups[0],
	}

	sessionMgr.ClearSession(userID)
	c.Respond(&tele.CallbackResponse{Text: "🚀 发布中..."})
	c.Delete()

	return publishGiveaway(c.Bot(), req, c)
}

// handleGiveawayAbort 放弃发布回调
func handleGiveawayAbort(c tele.Context) error {
	session.GetManager().ClearSession(c.Sender().ID)
	c.Respond(&tele.CallbackResponse{Text: "已取消"})
	return c.Edit("❎ 已取消创建抽奖")
}
