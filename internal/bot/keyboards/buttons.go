// Package keyboards 键盘按钮
package keyboards

import (
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// JoinGiveawayKeyboard 抽奖公告的参与按钮
func JoinGiveawayKeyboard(giveawayUUID string, participantCount int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	markup.Inline(
		markup.Row(
			markup.Data(
				fmt.Sprintf("🎉 参与抽奖 (%d)", participantCount),
				fmt.Sprintf("gw_join|%s", giveawayUUID),
			),
		),
	)
	return markup
}

// GiveawayManageKeyboard 抽奖管理键盘（发起人/管理员私聊查看用）
func GiveawayManageKeyboard(giveawayUUID string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	markup.Inline(
		markup.Row(
			markup.Data("⏰ 提前开奖", fmt.Sprintf("gw_end|%s", giveawayUUID)),
			markup.Data("🚫 取消抽奖", fmt.Sprintf("gw_cancel|%s", giveawayUUID)),
		),
		markup.Row(
			markup.Data("❌ 关闭", "close"),
		),
	)
	return markup
}

// StartPanelKeyboard 开始面板键盘
func StartPanelKeyboard(isAdmin bool) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	var rows []tele.Row

	rows = append(rows, markup.Row(
		markup.Data("🎉 发起抽奖", "gw_new"),
		markup.Data("📋 抽奖列表", "gw_list"),
	))

	rows = append(rows, markup.Row(
		markup.Data("📝 我要投稿", "submit_start"),
	))

	if isAdmin {
		rows = append(rows, markup.Row(
			markup.Data("⚙️ 管理面板", "admin_panel"),
		))
	}

	markup.Inline(rows...)
	return markup
}

// AdminPanelKeyboard 管理面板键盘
func AdminPanelKeyboard(isOwner bool) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	var rows []tele.Row

	rows = append(rows, markup.Row(
		markup.Data("🎉 进行中的抽奖", "gw_list"),
		markup.Data("📊 统计信息", "admin_stats"),
	))

	if isOwner {
		rows = append(rows, markup.Row(
			markup.Data("👥 管理员管理", "owner_admins"),
		))
	}

	rows = append(rows, markup.Row(
		markup.Data("« 返回", "back_start"),
	))

	markup.Inline(rows...)
	return markup
}

// SubmissionTypeKeyboard 投稿类型选择键盘
func SubmissionTypeKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	markup.Inline(
		markup.Row(
			markup.Data("⚔️ 辅助", "sub_type|cheat"),
			markup.Data("⌨️ 宏", "sub_type|macro"),
		),
		markup.Row(
			markup.Data("🛡️ 纯净", "sub_type|legit"),
			markup.Data("💰 币商", "sub_type|coinshop"),
		),
		markup.Row(
			markup.Data("📦 其他", "sub_type|other"),
		),
		markup.Row(
			markup.Data("❌ 取消", "submit_abort"),
		),
	)
	return markup
}

// SubmissionVersionKeyboard 投稿版本选择键盘
func SubmissionVersionKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	markup.Inline(
		markup.Row(
			markup.Data("1.8.9", "sub_ver|1.8.9"),
			markup.Data("1.21.5", "sub_ver|1.21.5"),
		),
		markup.Row(
			markup.Data("❌ 取消", "submit_abort"),
		),
	)
	return markup
}

// SubmissionFreeKeyboard 投稿免费/付费选择键盘
func SubmissionFreeKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	markup.Inline(
		markup.Row(
			markup.Data("🆓 免费", "sub_free|yes"),
			markup.Data("💴 付费", "sub_free|no"),
		),
		markup.Row(
			markup.Data("❌ 取消", "submit_abort"),
		),
	)
	return markup
}

// SkipKeyboard 可选输入的跳过键盘
func SkipKeyboard(skipData string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	markup.Inline(
		markup.Row(
			markup.Data("⏭️ 跳过", skipData),
		),
	)
	return markup
}

// ConfirmKeyboard 确认操作键盘
func ConfirmKeyboard(confirmData, cancelData string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	markup.Inline(
		markup.Row(
			markup.Data("✅ 确认", confirmData),
			markup.Data("❌ 取消", cancelData),
		),
	)
	return markup
}

// BackKeyboard 返回键盘
func BackKeyboard(backData string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	markup.Inline(
		markup.Row(
			markup.Data("« 返回", backData),
		),
	)
	return markup
}

// CloseKeyboard 关闭键盘
func CloseKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	markup.Inline(
		markup.Row(
			markup.Data("❌ 关闭", "close"),
		),
	)
	return markup
}
