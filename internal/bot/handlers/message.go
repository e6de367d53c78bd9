// Package handlers 文本消息路由
package handlers

import (
	tele "gopkg.in/telebot.v3"

	"github.com/smysle/sakura-giveaway-go/internal/bot/session"
)

// OnText 文本消息处理器
// 私聊中按会话状态分发到对应的向导流程
func OnText(c tele.Context) error {
	if c.Chat().Type != tele.ChatPrivate {
		return nil
	}

	state := session.GetManager().GetState(c.Sender().ID)
	if state == session.StateNone {
		return nil
	}

	switch state {
	case session.StateGiveawayTitle, session.StateGiveawayPrize,
		session.StateGiveawayWinners, session.StateGiveawayDuration,
		session.StateGiveawayDesc:
		return handleGiveawayFormInput(c, state)

	case session.StateSubmitName, session.StateSubmitInvite, session.StateSubmitWebsite:
		return handleSubmissionInput(c, state)
	}

	return nil
}
