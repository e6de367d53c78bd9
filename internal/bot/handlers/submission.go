// Package handlers 投稿处理器（私聊会话流程）
package handlers

import (
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/sakura-giveaway-go/internal/bot/keyboards"
	"github.com/smysle/sakura-giveaway-go/internal/bot/session"
	"github.com/smysle/sakura-giveaway-go/internal/config"
	"github.com/smysle/sakura-giveaway-go/internal/database/models"
	"github.com/smysle/sakura-giveaway-go/internal/service"
	"github.com/smysle/sakura-giveaway-go/pkg/logger"
)

// submissionTypeNames 投稿类型显示名
var submissionTypeNames = map[string]string{
	models.SubmissionTypeCheat:    "辅助",
	models.SubmissionTypeMacro:    "宏",
	models.SubmissionTypeLegit:    "纯净",
	models.SubmissionTypeCoinShop: "币商",
	models.SubmissionTypeOther:    "其他",
}

// Submit /submit 投稿命令，进入投稿向导
func Submit(c tele.Context) error {
	cfg := config.Get()
	if cfg == nil || !cfg.Submission.Enabled {
		return c.Send("❌ 投稿功能已关闭")
	}

	if c.Chat().Type != tele.ChatPrivate {
		return c.Send("📝 请私聊我使用 /submit 进行投稿")
	}

	sessionMgr := session.GetManager()
	sessionMgr.ClearSession(c.Sender().ID)
	sessionMgr.SetState(c.Sender().ID, session.StateSubmitType)

	return c.Send(
		"📝 **投稿**\n\n请选择投稿类型:",
		keyboards.SubmissionTypeKeyboard(),
		tele.ModeMarkdown,
	)
}

// handleSubmitType 类型选择回调 sub_type|{type}
func handleSubmitType(c tele.Context, subType string) error {
	if _, ok := submissionTypeNames[subType]; !ok {
		return c.Respond(&tele.CallbackResponse{Text: "无效的类型"})
	}

	sessionMgr := session.GetManager()
	userID := c.Sender().ID
	sessionMgr.SetData(userID, "sub_type", subType)

	c.Respond()

	if models.IsVersionedType(subType) {
		sessionMgr.SetState(userID, session.StateSubmitVersion)
		return c.Edit(
			fmt.Sprintf("📝 类型: **%s**\n\n请选择游戏版本:", submissionTypeNames[subType]),
			keyboards.SubmissionVersionKeyboard(),
			tele.ModeMarkdown,
		)
	}

	sessionMgr.SetState(userID, session.StateSubmitName)
	return c.Edit(
		fmt.Sprintf("📝 类型: **%s**\n\n请输入名称:", submissionTypeNames[subType]),
		tele.ModeMarkdown,
	)
}

// handleSubmitVersion 版本选择回调 sub_ver|{version}
func handleSubmitVersion(c tele.Context, version string) error {
	if version != "1.8.9" && version != "1.21.5" {
		return c.Respond(&tele.CallbackResponse{Text: "无效的版本"})
	}

	sessionMgr := session.GetManager()
	userID := c.Sender().ID
	if sessionMgr.GetState(userID) != session.StateSubmitVersion {
		return c.Respond(&tele.CallbackResponse{Text: "会话已过期，请重新 /submit"})
	}

	sessionMgr.SetData(userID, "sub_version", version)
	sessionMgr.SetState(userID, session.StateSubmitName)

	c.Respond()
	return c.Edit(fmt.Sprintf("📝 版本: **%s**\n\n请输入名称:", version), tele.ModeMarkdown)
}

// handleSubmitFree 免费/付费选择回调 sub_free|{yes|no}
func handleSubmitFree(c tele.Context, choice string) error {
	sessionMgr := session.GetManager()
	userID := c.Sender().ID
	if sessionMgr.GetState(userID) != session.StateSubmitFree {
		return c.Respond(&tele.CallbackResponse{Text: "会话已过期，请重新 /submit"})
	}

	sessionMgr.SetData(userID, "sub_free", choice == "yes")
	sessionMgr.SetState(userID, session.StateSubmitInvite)

	c.Respond()
	return c.Edit(
		"📝 请输入群组/频道邀请链接，或点击跳过",
		keyboards.SkipKeyboard("sub_skip_invite"),
	)
}

// handleSubmitSkipInvite 跳过邀请链接回调
func handleSubmitSkipInvite(c tele.Context) error {
	sessionMgr := session.GetManager()
	userID := c.Sender().ID
	if sessionMgr.GetState(userID) != session.StateSubmitInvite {
		return c.Respond(&tele.CallbackResponse{Text: "会话已过期"})
	}

	c.Respond()
	sessionMgr.SetData(userID, "sub_invite", "")
	sessionMgr.SetState(userID, session.StateSubmitWebsite)
	return c.Edit(
		"📝 请输入官网/下载链接，或点击跳过",
		keyboards.SkipKeyboard("sub_skip_website"),
	)
}

// handleSubmitSkipWebsite 跳过官网链接回调
func handleSubmitSkipWebsite(c tele.Context) error {
	sessionMgr := session.GetManager()
	userID := c.Sender().ID
	if sessionMgr.GetState(userID) != session.StateSubmitWebsite {
		return c.Respond(&tele.CallbackResponse{Text: "会话已过期"})
	}

	c.Respond()
	sessionMgr.SetData(userID, "sub_website", "")
	return finalizeSubmission(c)
}

// handleSubmitAbort 放弃投稿回调
func handleSubmitAbort(c tele.Context) error {
	session.GetManager().ClearSession(c.Sender().ID)
	c.Respond(&tele.CallbackResponse{Text: "已取消"})
	return c.Edit("❎ 已取消投稿")
}

// handleSubmissionInput 投稿向导的文本输入路由
func handleSubmissionInput(c tele.Context, state session.State) error {
	sessionMgr := session.GetManager()
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	switch state {
	case session.StateSubmitName:
		if text == "" {
			return c.Send("❌ 名称不能为空，请重新输入")
		}
		sessionMgr.SetData(userID, "sub_name", text)

		subType := sessionMgr.GetString(userID, "sub_type")
		if models.IsVersionedType(subType) {
			sessionMgr.SetState(userID, session.StateSubmitFree)
			return c.Send("📝 是否免费?", keyboards.SubmissionFreeKeyboard())
		}

		sessionMgr.SetState(userID, session.StateSubmitInvite)
		return c.Send(
			"📝 请输入群组/频道邀请链接，或点击跳过",
			keyboards.SkipKeyboard("sub_skip_invite"),
		)

	case session.StateSubmitInvite:
		sessionMgr.SetData(userID, "sub_invite", text)
		sessionMgr.SetState(userID, session.StateSubmitWebsite)
		return c.Send(
			"📝 请输入官网/下载链接，或点击跳过",
			keyboards.SkipKeyboard("sub_skip_website"),
		)

	case session.StateSubmitWebsite:
		sessionMgr.SetData(userID, "sub_website", text)
		return finalizeSubmission(c)
	}

	return nil
}

// finalizeSubmission 保存投稿并发布到话题群
func finalizeSubmission(c tele.Context) error {
	sessionMgr := session.GetManager()
	userID := c.Sender().ID

	req := &service.SubmitRequest{
		Type:          sessionMgr.GetString(userID, "sub_type"),
		Name:          sessionMgr.GetString(userID, "sub_name"),
		Version:       sessionMgr.GetString(userID, "sub_version"),
		IsFree:        sessionMgr.GetBool(userID, "sub_free"),
		InviteLink:    sessionMgr.GetString(userID, "sub_invite"),
		WebsiteLink:   sessionMgr.GetString(userID, "sub_website"),
		SubmitterTG:   userID,
		SubmitterName: c.Sender().FirstName,
	}

	sessionMgr.ClearSession(userID)

	result, err := submissionSvc.Submit(req)
	if err != nil {
		return c.Send("❌ " + submissionErrorText(err))
	}

	if err := postSubmissionToTopic(c.Bot(), result); err != nil {
		logger.Error().Err(err).Str("uuid", result.Submission.UUID).Msg("发布投稿到话题失败")
		return c.Send("⚠️ 投稿已保存但发布失败，管理员会稍后处理")
	}

	return c.Send(
		fmt.Sprintf("✅ **投稿成功！**\n\n您的投稿「%s」已发布，感谢分享~", result.Submission.Name),
		tele.ModeMarkdown,
	)
}

// postSubmissionToTopic 将投稿发布到话题群的对应话题
func postSubmissionToTopic(b *tele.Bot, result *service.SubmitResult) error {
	cfg := config.Get()
	if cfg.Submission.ForumGroupID == 0 {
		return errors.New("未配置话题群组")
	}

	sub := result.Submission

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📦 **%s**\n\n", sub.Name))
	sb.WriteString(fmt.Sprintf("🏷️ 类型: %s\n", submissionTypeNames[sub.Type]))
	if sub.Version != "" {
		sb.WriteString(fmt.Sprintf("🎮 版本: %s\n", sub.Version))
	}
	if models.IsVersionedType(sub.Type) {
		if sub.IsFree {
			sb.WriteString("💰 价格: 免费\n")
		} else {
			sb.WriteString("💰 价格: 付费\n")
		}
	}
	if sub.InviteLink != "" {
		sb.WriteString(fmt.Sprintf("🔗 群组: %s\n", sub.InviteLink))
	}
	if sub.WebsiteLink != "" {
		sb.WriteString(fmt.Sprintf("🌐 官网: %s\n", sub.WebsiteLink))
	}
	sb.WriteString(fmt.Sprintf("\n👤 投稿人: [%s](tg://user?id=%d)", sub.SubmitterName, sub.SubmitterTG))

	msg, err := b.Send(
		&tele.Chat{ID: cfg.Submission.ForumGroupID},
		sb.String(),
		&tele.SendOptions{
			ThreadID:  result.TopicID,
			ParseMode: tele.ModeMarkdown,
		},
	)
	if err != nil {
		return err
	}

	return submissionSvc.SetMessageID(sub.UUID, msg.ID)
}

// submissionErrorText 投稿服务错误转用户提示
func submissionErrorText(err error) string {
	switch {
	case errors.Is(err, service.ErrSubmissionDisabled):
		return "投稿功能已关闭"
	case errors.Is(err, service.ErrInvalidSubmissionType):
		return "无效的投稿类型"
	case errors.Is(err, service.ErrInvalidVersion):
		return "无效的版本，支持 1.8.9 或 1.21.5"
	case errors.Is(err, service.ErrNameRequired):
		return "名称不能为空"
	case errors.Is(err, service.ErrNoTopicConfigured):
		return "该类型未配置话题，请联系管理员"
	default:
		return err.Error()
	}
}
