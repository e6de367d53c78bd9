// Package handlers 回调处理器
package handlers

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/sakura-giveaway-go/internal/bot/keyboards"
	"github.com/smysle/sakura-giveaway-go/internal/config"
	"github.com/smysle/sakura-giveaway-go/pkg/logger"
)

// editOrReply 编辑消息或发送新消息
// 回调消息可能是媒体消息，编辑失败时退化为发送新消息
func editOrReply(c tele.Context, text string, opts ...interface{}) error {
	msg := c.Message()
	if msg == nil {
		return c.Send(text, opts...)
	}

	if msg.Photo != nil || msg.Video != nil || msg.Document != nil {
		if _, err := c.Bot().EditCaption(msg, text, opts...); err != nil {
			logger.Debug().Err(err).Msg("EditCaption 失败，改为发送新消息")
			return c.Send(text, opts...)
		}
		return nil
	}

	if err := c.Edit(text, opts...); err != nil {
		logger.Debug().Err(err).Msg("Edit 失败，改为发送新消息")
		return c.Send(text, opts...)
	}
	return nil
}

// OnCallback 回调查询处理器
func OnCallback(c tele.Context) error {
	data := c.Callback().Data

	// telebot v3 的 Data() 生成的回调格式是 "\f{unique}|{data}"
	if len(data) > 0 && data[0] == '\f' {
		data = data[1:]
	}

	parts := strings.Split(data, "|")
	action := parts[0]

	logger.Debug().Str("action", action).Msg("收到回调")

	switch action {
	case "gw_join":
		if len(parts) >= 2 {
			return HandleJoinGiveaway(c, parts[1])
		}
		return c.Respond(&tele.CallbackResponse{Text: "无效的抽奖"})
	case "gw_page":
		if len(parts) >= 2 {
			return HandleGiveawayPage(c, parts[1])
		}
		return c.Respond(&tele.CallbackResponse{Text: "无效的页码"})
	case "gw_end":
		if len(parts) >= 2 {
			return handleEndCallback(c, parts[1])
		}
		return c.Respond(&tele.CallbackResponse{Text: "无效操作"})
	case "gw_cancel":
		if len(parts) >= 2 {
			return handleCancelCallback(c, parts[1])
		}
		return c.Respond(&tele.CallbackResponse{Text: "无效操作"})
	case "gw_new":
		return handleNewGiveawayCallback(c)
	case "gw_list":
		c.Respond()
		return sendGiveawayList(c, 1, true)
	case "gw_skip_desc":
		return handleGiveawaySkipDesc(c)
	case "gw_pub_ok":
		return handleGiveawayPublish(c)
	case "gw_pub_abort":
		return handleGiveawayAbort(c)
	case "submit_start":
		c.Respond()
		return Submit(c)
	case "submit_abort":
		return handleSubmitAbort(c)
	case "sub_type":
		if len(parts) >= 2 {
			return handleSubmitType(c, parts[1])
		}
		return c.Respond(&tele.CallbackResponse{Text: "无效的类型"})
	case "sub_ver":
		if len(parts) >= 2 {
			return handleSubmitVersion(c, parts[1])
		}
		return c.Respond(&tele.CallbackResponse{Text: "无效的版本"})
	case "sub_free":
		if len(parts) >= 2 {
			return handleSubmitFree(c, parts[1])
		}
		return c.Respond(&tele.CallbackResponse{Text: "无效操作"})
	case "sub_skip_invite":
		return handleSubmitSkipInvite(c)
	case "sub_skip_website":
		return handleSubmitSkipWebsite(c)
	case "admin_panel":
		return handleAdminPanel(c)
	case "admin_stats":
		return handleAdminStats(c)
	case "owner_admins":
		return handleOwnerAdmins(c)
	case "back_start":
		return handleBackStart(c)
	case "close":
		return c.Delete()
	case "noop":
		return c.Respond()
	default:
		logger.Debug().Str("data", data).Msg("未知回调")
		return c.Respond(&tele.CallbackResponse{Text: "未知操作"})
	}
}

// handleNewGiveawayCallback 面板上的发起抽奖按钮
func handleNewGiveawayCallback(c tele.Context) error {
	cfg := config.Get()
	if !cfg.IsAdmin(c.Sender().ID) {
		return c.Respond(&tele.CallbackResponse{
			Text:      "❌ 只有管理员可以发起抽奖",
			ShowAlert: true,
		})
	}

	c.Respond()
	return startGiveawayWizard(c)
}

// handleEndCallback 管理键盘上的提前开奖按钮
func handleEndCallback(c tele.Context, giveawayUUID string) error {
	g, err := giveawaySvc.Get(giveawayUUID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ " + giveawayErrorText(err), ShowAlert: true})
	}

	if !canManageGiveaway(c.Sender().ID, g) {
		return c.Respond(&tele.CallbackResponse{Text: "❌ 您没有权限", ShowAlert: true})
	}

	result, err := giveawaySvc.End(giveawayUUID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ " + giveawayErrorText(err), ShowAlert: true})
	}

	announceResult(c.Bot(), result)
	c.Respond(&tele.CallbackResponse{Text: "✅ 已开奖"})
	return editOrReply(c, "✅ 已开奖")
}

// handleCancelCallback 管理键盘上的取消抽奖按钮
func handleCancelCallback(c tele.Context, giveawayUUID string) error {
	g, err := giveawaySvc.Get(giveawayUUID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ " + giveawayErrorText(err), ShowAlert: true})
	}

	if !canManageGiveaway(c.Sender().ID, g) {
		return c.Respond(&tele.CallbackResponse{Text: "❌ 您没有权限", ShowAlert: true})
	}

	cancelled, err := giveawaySvc.Cancel(giveawayUUID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ " + giveawayErrorText(err), ShowAlert: true})
	}

	editAnnouncement(c.Bot(), cancelled, renderCancelledAnnouncementText(cancelled), nil)
	c.Respond(&tele.CallbackResponse{Text: "✅ 已取消"})
	return editOrReply(c, "✅ 抽奖已取消")
}

// handleAdminPanel 管理面板回调
func handleAdminPanel(c tele.Context) error {
	cfg := config.Get()
	if !cfg.IsAdmin(c.Sender().ID) {
		return c.Respond(&tele.CallbackResponse{Text: "❌ 您没有权限", ShowAlert: true})
	}

	c.Respond()
	isOwner := cfg.IsOwner(c.Sender().ID)
	return editOrReply(c, "⚙️ **管理面板**\n\n请选择操作:", keyboards.AdminPanelKeyboard(isOwner), tele.ModeMarkdown)
}

// handleAdminStats 统计信息回调
func handleAdminStats(c tele.Context) error {
	cfg := config.Get()
	if !cfg.IsAdmin(c.Sender().ID) {
		return c.Respond(&tele.CallbackResponse{Text: "❌ 您没有权限", ShowAlert: true})
	}

	c.Respond(&tele.CallbackResponse{Text: "📊 统计信息"})
	return editOrReply(c, buildStatsText(), keyboards.BackKeyboard("admin_panel"), tele.ModeMarkdown)
}

// handleOwnerAdmins 管理员管理回调（仅 Owner）
func handleOwnerAdmins(c tele.Context) error {
	cfg := config.Get()
	if !cfg.IsOwner(c.Sender().ID) {
		return c.Respond(&tele.CallbackResponse{Text: "❌ 仅 Owner 可用", ShowAlert: true})
	}

	c.Respond()

	text := "👥 **管理员管理**\n\n当前管理员:\n"
	if len(cfg.Admins) == 0 {
		text += "_暂无管理员_\n"
	} else {
		for _, id := range cfg.Admins {
			text += "- `" + intToStr(id) + "`\n"
		}
	}
	text += "\n使用命令管理:\n" +
		"- `/addadmin <用户ID>` 添加管理员\n" +
		"- `/deladmin <用户ID>` 移除管理员"

	return editOrReply(c, text, keyboards.BackKeyboard("admin_panel"), tele.ModeMarkdown)
}

// handleBackStart 返回开始面板回调
func handleBackStart(c tele.Context) error {
	c.Respond()

	cfg := config.Get()
	user := c.Sender()

	text := "**✨ " + cfg.BotName + " 为您服务**\n\n" +
		"🍉__你好鸭 [" + user.FirstName + "](tg://user?id=" + intToStr(user.ID) + ") 请选择功能__👇"

	return editOrReply(c, text, keyboards.StartPanelKeyboard(cfg.IsAdmin(user.ID)), tele.ModeMarkdown)
}

func intToStr(n int64) string {
	return strconv.FormatInt(n, 10)
}
