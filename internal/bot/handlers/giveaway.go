// Package handlers 抽奖处理器
package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/sakura-giveaway-go/internal/bot/keyboards"
	botutils "github.com/smysle/sakura-giveaway-go/internal/bot/utils"
	"github.com/smysle/sakura-giveaway-go/internal/config"
	"github.com/smysle/sakura-giveaway-go/internal/database/models"
	"github.com/smysle/sakura-giveaway-go/internal/service"
	"github.com/smysle/sakura-giveaway-go/pkg/logger"
	"github.com/smysle/sakura-giveaway-go/pkg/utils"
)

var (
	giveawaySvc   *service.GiveawayService
	submissionSvc *service.SubmissionService
	botRef        *tele.Bot
)

// Init 注入共享服务实例，必须在注册处理器前调用
func Init(gSvc *service.GiveawayService, sSvc *service.SubmissionService) {
	giveawaySvc = gSvc
	submissionSvc = sSvc
}

// SetBot 注入 Bot 实例，定时开奖等无上下文场景使用
func SetBot(b *tele.Bot) {
	botRef = b
}

const giveawayListPageSize = 5

// NewGiveaway /gnew 发起抽奖命令
// 群组内: /gnew 标题 | 奖品 | 中奖人数 | 分钟数 [| 描述]
// 私聊内: 无参数进入创建向导
func NewGiveaway(c tele.Context) error {
	args := c.Args()

	if c.Chat().Type == tele.ChatPrivate {
		return startGiveawayWizard(c)
	}

	if len(args) == 0 {
		// 用法提示定时删除，保持群内整洁
		return botutils.SendAndDelete(c,
			"🎉 **发起抽奖**\n\n"+
				"用法: `/gnew 标题 | 奖品 | 中奖人数 | 分钟数 [| 描述]`\n\n"+
				"示例:\n"+
				"- `/gnew 周年庆抽奖 | 一个月会员 | 3 | 60`\n"+
				"- `/gnew 新春活动 | 红包 | 5 | 1440 | 参与即有机会`\n\n"+
				"也可以私聊我使用创建向导",
			60,
			tele.ModeMarkdown,
		)
	}

	req, err := parseGiveawayArgs(strings.Join(args, " "))
	if err != nil {
		return botutils.SendAndDelete(c, "❌ "+err.Error(), 30)
	}

	req.HostTG = c.Sender().ID
	req.HostName = c.Sender().FirstName
	req.ChatID = c.Chat().ID

	// 删除原命令消息
	botutils.DeleteOriginalMessage(c)

	return publishGiveaway(c.Bot(), req, c)
}

// parseGiveawayArgs 解析竖线分隔的创建参数
func parseGiveawayArgs(raw string) (*service.CreateGiveawayRequest, error) {
	parts := strings.Split(raw, "|")
	if len(parts) < 4 {
		return nil, errors.New("参数不足，格式: 标题 | 奖品 | 中奖人数 | 分钟数 [| 描述]")
	}

	winnerCount, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil, errors.New("无效的中奖人数")
	}

	duration, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		return nil, errors.New("无效的分钟数")
	}

	req := &service.CreateGiveawayRequest{
		Title:       strings.TrimSpace(parts[0]),
		Prize:       strings.TrimSpace(parts[1]),
		WinnerCount: winnerCount,
		Duration:    duration,
	}
	if len(parts) > 4 {
		req.Description = strings.TrimSpace(strings.Join(parts[4:], "|"))
	}
	return req, nil
}

// publishGiveaway 创建抽奖并在目标群发布公告
// c 可为 nil（向导路径下错误通过私聊反馈）
func publishGiveaway(b *tele.Bot, req *service.CreateGiveawayRequest, c tele.Context) error {
	g, err := giveawaySvc.Create(req)
	if err != nil {
		if c != nil {
			return c.Send("❌ " + giveawayErrorText(err))
		}
		return err
	}

	msg, err := b.Send(
		&tele.Chat{ID: g.ChatID},
		renderAnnouncementText(g),
		keyboards.JoinGiveawayKeyboard(g.UUID, 0),
		tele.ModeMarkdown,
	)
	if err != nil {
		logger.Error().Err(err).Str("uuid", g.UUID).Msg("发布抽奖公告失败")
		if c != nil {
			return c.Send("⚠️ 抽奖已创建但公告发送失败，请检查 Bot 群组权限")
		}
		return err
	}

	if err := giveawaySvc.SetMessageID(g.UUID, msg.ID); err != nil {
		logger.Warn().Err(err).Str("uuid", g.UUID).Msg("回填公告消息 ID 失败")
	}

	if c != nil && c.Chat().Type == tele.ChatPrivate {
		return c.Send(
			fmt.Sprintf("✅ 抽奖已发布！\n\n🆔 抽奖 ID: `%s`\n\n也可以用命令管理:\n- `/gend %s` 提前开奖\n- `/gcancel %s` 取消抽奖",
				g.UUID, g.UUID, g.UUID),
			keyboards.GiveawayManageKeyboard(g.UUID),
			tele.ModeMarkdown,
		)
	}
	return nil
}

// HandleJoinGiveaway 参与抽奖回调 gw_join|{uuid}
func HandleJoinGiveaway(c tele.Context, giveawayUUID string) error {
	g, err := giveawaySvc.Join(giveawayUUID, c.Sender().ID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{
			Text:      "❌ " + giveawayErrorText(err),
			ShowAlert: true,
		})
	}

	c.Respond(&tele.CallbackResponse{
		Text: fmt.Sprintf("🎉 参与成功！当前 %d 人参与，开奖时见~", len(g.Participants)),
	})

	refreshAnnouncementThrottled(c.Bot(), g)
	return nil
}

// EndGiveaway /gend 提前开奖命令
func EndGiveaway(c tele.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Send("用法: `/gend <抽奖ID>`", tele.ModeMarkdown)
	}

	giveawayUUID := args[0]
	g, err := giveawaySvc.Get(giveawayUUID)
	if err != nil {
		return c.Send("❌ " + giveawayErrorText(err))
	}

	if !canManageGiveaway(c.Sender().ID, g) {
		return c.Send("❌ 只有发起人或管理员可以操作此抽奖")
	}

	result, err := giveawaySvc.End(giveawayUUID)
	if err != nil {
		return c.Send("❌ " + giveawayErrorText(err))
	}

	announceResult(c.Bot(), result)
	return c.Send("✅ 已开奖")
}

// CancelGiveaway /gcancel 取消抽奖命令
func CancelGiveaway(c tele.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Send("用法: `/gcancel <抽奖ID>`", tele.ModeMarkdown)
	}

	giveawayUUID := args[0]
	g, err := giveawaySvc.Get(giveawayUUID)
	if err != nil {
		return c.Send("❌ " + giveawayErrorText(err))
	}

	if !canManageGiveaway(c.Sender().ID, g) {
		return c.Send("❌ 只有发起人或管理员可以操作此抽奖")
	}

	cancelled, err := giveawaySvc.Cancel(giveawayUUID)
	if err != nil {
		return c.Send("❌ " + giveawayErrorText(err))
	}

	editAnnouncement(c.Bot(), cancelled, renderCancelledAnnouncementText(cancelled), nil)
	return c.Send("✅ 抽奖已取消")
}

// RerollGiveaway /greroll 重抽命令
// 用法: /greroll <抽奖ID> [人数]，人数缺省时沿用原中奖名额
func RerollGiveaway(c tele.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Send("用法: `/greroll <抽奖ID> [人数]`", tele.ModeMarkdown)
	}

	giveawayUUID := args[0]
	count := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return c.Send("❌ 无效的人数")
		}
		count = n
	}

	g, err := giveawaySvc.Get(giveawayUUID)
	if err != nil {
		return c.Send("❌ " + giveawayErrorText(err))
	}

	if !canManageGiveaway(c.Sender().ID, g) {
		return c.Send("❌ 只有发起人或管理员可以操作此抽奖")
	}

	result, err := giveawaySvc.Reroll(giveawayUUID, count, c.Sender().ID)
	if err != nil {
		return c.Send("❌ " + giveawayErrorText(err))
	}

	text := fmt.Sprintf(
		"🔄 **重新开奖** 🔄\n\n"+
			"🎁 **%s**\n"+
			"🏆 奖品: %s\n\n"+
			"🥳 **新的中奖者:**\n%s",
		result.Giveaway.Title,
		result.Giveaway.Prize,
		mentionList(result.Winners),
	)

	if _, err := c.Bot().Send(&tele.Chat{ID: result.Giveaway.ChatID}, text, tele.ModeMarkdown); err != nil {
		logger.Warn().Err(err).Str("uuid", giveawayUUID).Msg("发送重抽结果失败")
	}

	editAnnouncement(c.Bot(), result.Giveaway,
		renderEndedAnnouncementText(result.Giveaway, result.Winners), nil)

	return c.Send("✅ 已重新开奖")
}

// ListGiveaways /glist 进行中的抽奖列表
func ListGiveaways(c tele.Context) error {
	return sendGiveawayList(c, 1, false)
}

// HandleGiveawayPage 抽奖列表翻页回调 gw_page|{page}
func HandleGiveawayPage(c tele.Context, pageStr string) error {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return c.Respond(&tele.CallbackResponse{Text: "无效的页码"})
	}
	c.Respond()
	return sendGiveawayList(c, page, true)
}

// sendGiveawayList 渲染进行中抽奖的分页列表
func sendGiveawayList(c tele.Context, page int, edit bool) error {
	giveaways, err := giveawaySvc.ListActive()
	if err != nil {
		logger.Error().Err(err).Msg("获取抽奖列表失败")
		return c.Send("❌ 获取抽奖列表失败")
	}

	if len(giveaways) == 0 {
		text := "📋 当前没有进行中的抽奖"
		if edit {
			return c.Edit(text, keyboards.CloseKeyboard())
		}
		return c.Send(text, keyboards.CloseKeyboard())
	}

	totalPages := (len(giveaways) + giveawayListPageSize - 1) / giveawayListPageSize
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * giveawayListPageSize
	end := start + giveawayListPageSize
	if end > len(giveaways) {
		end = len(giveaways)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 **进行中的抽奖** (共 %d 个)\n\n", len(giveaways)))
	for i, g := range giveaways[start:end] {
		sb.WriteString(fmt.Sprintf(
			"%d. **%s**\n"+
				"   🏆 %s | 👥 %d 人参与 | 🎯 %d 个名额\n"+
				"   ⏰ %s后开奖\n"+
				"   🆔 `%s`\n\n",
			start+i+1,
			g.Title,
			g.Prize, len(g.Participants), g.WinnerCount,
			formatRemaining(&g),
			g.UUID,
		))
	}

	markup := keyboards.GiveawayListPagination(page, totalPages)
	if edit {
		return c.Edit(sb.String(), markup, tele.ModeMarkdown)
	}
	return c.Send(sb.String(), markup, tele.ModeMarkdown)
}

// AutoEndGiveaway 到期自动开奖
// 定时器到点和定时扫描兜底都汇聚到这里；抽奖已被提前开奖或
// 取消时静默跳过
func AutoEndGiveaway(giveawayUUID string) {
	result, err := giveawaySvc.End(giveawayUUID)
	if err != nil {
		if errors.Is(err, service.ErrGiveawayNotActive) || errors.Is(err, service.ErrGiveawayNotFound) {
			return
		}
		logger.Error().Err(err).Str("uuid", giveawayUUID).Msg("自动开奖失败")
		return
	}

	announceResult(botRef, result)
}

// SweepExpiredGiveaways 扫描并开奖所有到期的抽奖
// 定时器失效（如进程重启窗口）时的权威兜底
func SweepExpiredGiveaways() {
	expired, err := giveawaySvc.ListExpired()
	if err != nil {
		logger.Error().Err(err).Msg("扫描过期抽奖失败")
		return
	}

	if len(expired) == 0 {
		return
	}

	logger.Info().Int("count", len(expired)).Msg("发现到期未开奖的抽奖")
	for _, g := range expired {
		AutoEndGiveaway(g.UUID)
	}
}

// announceResult 发布开奖结果：更新公告并发送结果消息
func announceResult(b *tele.Bot, result *service.EndResult) {
	if b == nil {
		logger.Warn().Str("uuid", result.Giveaway.UUID).Msg("Bot 未注入，跳过开奖公告")
		return
	}

	g := result.Giveaway

	// 抽奖已结束，清理参与刷新的节流标记
	utils.CacheDelete("gw_edit:" + g.UUID)

	editAnnouncement(b, g, renderEndedAnnouncementText(g, result.Winners), nil)

	text := renderResultText(g, result.Winners, result.ParticipantCount)
	if _, err := b.Send(&tele.Chat{ID: g.ChatID}, text, tele.ModeMarkdown); err != nil {
		logger.Warn().Err(err).Str("uuid", g.UUID).Msg("发送开奖结果失败")
	}

	sendWinnerCard(b, g, result.Winners)
}

// canManageGiveaway 发起人或管理员可以管理抽奖
func canManageGiveaway(userID int64, g *models.Giveaway) bool {
	if g.HostTG == userID {
		return true
	}
	cfg := config.Get()
	return cfg != nil && cfg.IsAdmin(userID)
}

// formatRemaining 列表项的剩余时间
func formatRemaining(g *models.Giveaway) string {
	return utils.FormatCountdown(g.EndsAt, time.Now())
}

// giveawayErrorText 服务层错误转用户提示
func giveawayErrorText(err error) string {
	switch {
	case errors.Is(err, service.ErrGiveawayDisabled):
		return "抽奖功能已关闭"
	case errors.Is(err, service.ErrGiveawayNotFound):
		return "抽奖不存在"
	case errors.Is(err, service.ErrGiveawayNotActive):
		return "抽奖已结束或已取消"
	case errors.Is(err, service.ErrGiveawayExpired):
		return "抽奖已截止，等待开奖中"
	case errors.Is(err, service.ErrAlreadyJoined):
		return "您已参与过此抽奖啦~"
	case errors.Is(err, service.ErrGiveawayNotEnded):
		return "只能对已开奖的抽奖重抽"
	case errors.Is(err, service.ErrNoParticipants):
		return "没有参与者，无法重抽"
	case errors.Is(err, service.ErrTitleRequired):
		return "标题不能为空"
	case errors.Is(err, service.ErrPrizeRequired):
		return "奖品不能为空"
	case errors.Is(err, service.ErrInvalidWinnerCount):
		return "无效的中奖人数（1-20）"
	case errors.Is(err, service.ErrInvalidDuration):
		return "无效的持续时间（1分钟-1周）"
	default:
		return err.Error()
	}
}
