// Package handlers Bot 命令处理器
package handlers

import (
	"fmt"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/sakura-giveaway-go/internal/bot/keyboards"
	"github.com/smysle/sakura-giveaway-go/internal/bot/session"
	botutils "github.com/smysle/sakura-giveaway-go/internal/bot/utils"
	"github.com/smysle/sakura-giveaway-go/internal/config"
)

// Start /start 命令处理器
func Start(c tele.Context) error {
	cfg := config.Get()
	user := c.Sender()

	if c.Chat().Type != tele.ChatPrivate {
		// 群内提示定时删除，避免刷屏
		return botutils.SendAndDelete(c,
			fmt.Sprintf("🤖 亲爱的 [%s](tg://user?id=%d) 请私聊我使用功能面板~", user.FirstName, user.ID),
			30,
			tele.ModeMarkdown,
		)
	}

	isAdmin := cfg.IsAdmin(user.ID)

	text := fmt.Sprintf(
		"**✨ %s 为您服务**\n\n"+
			"🍉__你好鸭 [%s](tg://user?id=%d) 请选择功能__👇\n\n"+
			"🎉 抽奖、📝 投稿，一应俱全~",
		cfg.BotName,
		user.FirstName, user.ID,
	)

	return c.Send(text, keyboards.StartPanelKeyboard(isAdmin), tele.ModeMarkdown)
}

// Help /help 命令处理器
func Help(c tele.Context) error {
	cfg := config.Get()

	text := "📖 **命令列表**\n\n" +
		"**抽奖**\n" +
		"- `/gnew` 发起抽奖（管理员）\n" +
		"- `/glist` 进行中的抽奖\n" +
		"- `/gend <ID>` 提前开奖\n" +
		"- `/gcancel <ID>` 取消抽奖\n" +
		"- `/greroll <ID> [人数]` 重抽中奖者\n\n" +
		"**投稿**\n" +
		"- `/submit` 私聊投稿\n\n" +
		"**通用**\n" +
		"- `/cancel` 取消当前操作\n"

	if cfg != nil && cfg.IsAdmin(c.Sender().ID) {
		text += "\n**群管理（需回复目标消息）**\n" +
			"- `/ban` 封禁\n" +
			"- `/unban` 解封\n" +
			"- `/kick` 踢出\n" +
			"- `/mute [分钟]` 禁言\n" +
			"- `/unmute` 解除禁言\n"
	}

	return c.Send(text, tele.ModeMarkdown)
}

// CancelSession /cancel 命令处理器，退出当前会话流程
func CancelSession(c tele.Context) error {
	sessionMgr := session.GetManager()

	if sessionMgr.GetState(c.Sender().ID) == session.StateNone {
		return c.Send("🤷 当前没有进行中的操作")
	}

	sessionMgr.ClearSession(c.Sender().ID)
	return c.Send("❎ 已取消当前操作")
}
