// Package bot Telegram Bot 核心
package bot

import (
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/sakura-giveaway-go/internal/bot/handlers"
	"github.com/smysle/sakura-giveaway-go/internal/bot/middleware"
	"github.com/smysle/sakura-giveaway-go/internal/config"
	"github.com/smysle/sakura-giveaway-go/pkg/logger"
)

// Bot Telegram Bot 实例
type Bot struct {
	*tele.Bot
	cfg *config.Config
}

var instance *Bot

// New 创建新的 Bot 实例
func New(cfg *config.Config) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error().Err(err).Msg("Bot 错误")
		},
	}

	// 代理通过 HTTP_PROXY 环境变量配置
	if cfg.Proxy.Scheme != "" {
		logger.Info().
			Str("scheme", cfg.Proxy.Scheme).
			Str("host", cfg.Proxy.Host).
			Msg("检测到代理配置，请确保已设置 HTTP_PROXY 环境变量")
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		Bot: b,
		cfg: cfg,
	}

	bot.registerMiddleware()
	bot.registerHandlers()
	bot.setCommands()

	instance = bot
	return bot, nil
}

// Get 获取 Bot 单例
func Get() *Bot {
	return instance
}

// registerMiddleware 注册中间件
func (b *Bot) registerMiddleware() {
	b.Use(middleware.Logger())
	b.Use(middleware.Recover())
	b.Use(middleware.RateLimit(30))
}

// registerHandlers 注册所有处理器
func (b *Bot) registerHandlers() {
	// 用户命令
	b.Handle("/start", handlers.Start)
	b.Handle("/help", handlers.Help)
	b.Handle("/glist", handlers.ListGiveaways)
	b.Handle("/submit", handlers.Submit)
	b.Handle("/cancel", handlers.CancelSession)

	// 抽奖管理命令（发起人或管理员，处理器内部再校验归属）
	b.Handle("/gend", handlers.EndGiveaway)
	b.Handle("/gcancel", handlers.CancelGiveaway)
	b.Handle("/greroll", handlers.RerollGiveaway)

	// 管理员命令
	adminGroup := b.Group()
	adminGroup.Use(middleware.AdminOnly())

	adminGroup.Handle("/gnew", handlers.NewGiveaway)
	adminGroup.Handle("/stats", handlers.Stats)

	// 群管理命令（仅群组内）
	modGroup := b.Group()
	modGroup.Use(middleware.AdminOnly(), middleware.GroupOnly())

	modGroup.Handle("/ban", handlers.Ban)
	modGroup.Handle("/unban", handlers.Unban)
	modGroup.Handle("/kick", handlers.Kick)
	modGroup.Handle("/mute", handlers.Mute)
	modGroup.Handle("/unmute", handlers.Unmute)

	// Owner 命令（仅私聊）
	ownerGroup := b.Group()
	ownerGroup.Use(middleware.OwnerOnly(), middleware.PrivateOnly())

	ownerGroup.Handle("/addadmin", handlers.AddAdmin)
	ownerGroup.Handle("/deladmin", handlers.DelAdmin)

	// 回调查询，按钮连点限频
	b.Handle(tele.OnCallback, handlers.OnCallback, middleware.AntiFlood(2))

	// 文本消息处理（用于会话状态）
	b.Handle(tele.OnText, handlers.OnText)
}

// setCommands 设置命令列表
func (b *Bot) setCommands() {
	// 用户命令
	userCmds := []tele.Command{
		{Text: "start", Description: "[私聊] 打开功能面板"},
		{Text: "glist", Description: "[用户] 进行中的抽奖"},
		{Text: "submit", Description: "[私聊] 投稿"},
		{Text: "help", Description: "[用户] 命令帮助"},
		{Text: "cancel", Description: "[用户] 取消当前操作"},
	}

	// 管理员命令
	adminCmds := append(userCmds, []tele.Command{
		{Text: "gnew", Description: "发起抽奖 [管理]"},
		{Text: "gend", Description: "提前开奖 [管理]"},
		{Text: "gcancel", Description: "取消抽奖 [管理]"},
		{Text: "greroll", Description: "重抽中奖者 [管理]"},
		{Text: "stats", Description: "系统统计 [管理]"},
		{Text: "ban", Description: "封禁用户 [管理]"},
		{Text: "unban", Description: "解封用户 [管理]"},
		{Text: "kick", Description: "踢出用户 [管理]"},
		{Text: "mute", Description: "禁言用户 [管理]"},
		{Text: "unmute", Description: "解除禁言 [管理]"},
	}...)

	// Owner 命令
	ownerCmds := append(adminCmds, []tele.Command{
		{Text: "addadmin", Description: "添加bot管理 [owner]"},
		{Text: "deladmin", Description: "移除bot管理 [owner]"},
	}...)

	b.SetCommands(userCmds)

	for _, adminID := range b.cfg.Admins {
		b.SetCommands(adminCmds, tele.CommandScope{
			Type:   tele.CommandScopeChat,
			ChatID: adminID,
		})
	}

	b.SetCommands(ownerCmds, tele.CommandScope{
		Type:   tele.CommandScopeChat,
		ChatID: b.cfg.Owner,
	})
}

// Run 运行 Bot
func (b *Bot) Run() {
	logger.Info().Str("bot", b.cfg.BotName).Msg("Bot 启动中...")
	b.Start()
}

// Stop 停止 Bot
func (b *Bot) Stop() {
	logger.Info().Msg("Bot 停止中...")
	b.Bot.Stop()
}
