// Package handlers 群管理处理器
package handlers

import (
	"fmt"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/sakura-giveaway-go/pkg/logger"
	"github.com/smysle/sakura-giveaway-go/pkg/utils"
)

// targetFromReply 从被回复的消息中取目标用户
func targetFromReply(c tele.Context) *tele.User {
	msg := c.Message()
	if msg == nil || msg.ReplyTo == nil {
		return nil
	}
	return msg.ReplyTo.Sender
}

// Ban /ban 封禁命令，需回复目标用户的消息
func Ban(c tele.Context) error {
	target := targetFromReply(c)
	if target == nil {
		return c.Send("用法: 回复目标用户的消息并发送 `/ban`", tele.ModeMarkdown)
	}

	if err := c.Bot().Ban(c.Chat(), &tele.ChatMember{User: target}); err != nil {
		logger.Warn().Err(err).Int64("target", target.ID).Msg("封禁用户失败")
		return c.Send("❌ 封禁失败，请检查 Bot 权限")
	}

	logger.Info().
		Int64("target", target.ID).
		Int64("admin", c.Sender().ID).
		Int64("chat", c.Chat().ID).
		Msg("用户已封禁")

	return c.Send(fmt.Sprintf(
		"🚫 [%s](tg://user?id=%d) 已被封禁",
		target.FirstName, target.ID,
	), tele.ModeMarkdown)
}

// Unban /unban 解封命令，需回复目标用户的消息
func Unban(c tele.Context) error {
	target := targetFromReply(c)
	if target == nil {
		return c.Send("用法: 回复目标用户的消息并发送 `/unban`", tele.ModeMarkdown)
	}

	if err := c.Bot().Unban(c.Chat(), target); err != nil {
		logger.Warn().Err(err).Int64("target", target.ID).Msg("解封用户失败")
		return c.Send("❌ 解封失败，请检查 Bot 权限")
	}

	return c.Send(fmt.Sprintf(
		"✅ [%s](tg://user?id=%d) 已解除封禁",
		target.FirstName, target.ID,
	), tele.ModeMarkdown)
}

// Kick /kick 踢出命令（踢出后可重新加入）
func Kick(c tele.Context) error {
	target := targetFromReply(c)
	if target == nil {
		return c.Send("用法: 回复目标用户的消息并发送 `/kick`", tele.ModeMarkdown)
	}

	// 先封禁再解封，等效于踢出
	if err := c.Bot().Ban(c.Chat(), &tele.ChatMember{User: target}); err != nil {
		logger.Warn().Err(err).Int64("target", target.ID).Msg("踢出用户失败")
		return c.Send("❌ 踢出失败，请检查 Bot 权限")
	}
	if err := c.Bot().Unban(c.Chat(), target); err != nil {
		logger.Debug().Err(err).Int64("target", target.ID).Msg("踢出后解封失败")
	}

	return c.Send(fmt.Sprintf(
		"👢 [%s](tg://user?id=%d) 已被踢出",
		target.FirstName, target.ID,
	), tele.ModeMarkdown)
}

// Mute /mute 禁言命令
// 用法: 回复目标消息 /mute [分钟]，缺省 60 分钟
func Mute(c tele.Context) error {
	target := targetFromReply(c)
	if target == nil {
		return c.Send("用法: 回复目标用户的消息并发送 `/mute [分钟]`", tele.ModeMarkdown)
	}

	minutes := 60
	if args := c.Args(); len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return c.Send("❌ 无效的分钟数")
		}
		minutes = n
	}

	member := &tele.ChatMember{
		User:            target,
		Rights:          tele.NoRights(),
		RestrictedUntil: time.Now().Add(time.Duration(minutes) * time.Minute).Unix(),
	}
	if err := c.Bot().Restrict(c.Chat(), member); err != nil {
		logger.Warn().Err(err).Int64("target", target.ID).Msg("禁言用户失败")
		return c.Send("❌ 禁言失败，请检查 Bot 权限")
	}

	return c.Send(fmt.Sprintf(
		"🤐 [%s](tg://user?id=%d) 已被禁言 %s",
		target.FirstName, target.ID, utils.FormatMinutes(minutes),
	), tele.ModeMarkdown)
}

// Unmute /unmute 解除禁言命令
func Unmute(c tele.Context) error {
	target := targetFromReply(c)
	if target == nil {
		return c.Send("用法: 回复目标用户的消息并发送 `/unmute`", tele.ModeMarkdown)
	}

	member := &tele.ChatMember{
		User:   target,
		Rights: tele.NoRestrictions(),
	}
	if err := c.Bot().Restrict(c.Chat(), member); err != nil {
		logger.Warn().Err(err).Int64("target", target.ID).Msg("解除禁言失败")
		return c.Send("❌ 解除禁言失败，请检查 Bot 权限")
	}

	return c.Send(fmt.Sprintf(
		"🗣️ [%s](tg://user?id=%d) 已解除禁言",
		target.FirstName, target.ID,
	), tele.ModeMarkdown)
}
