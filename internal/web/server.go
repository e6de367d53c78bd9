// Package web Web API 服务
package web

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/smysle/sakura-giveaway-go/internal/config"
	"github.com/smysle/sakura-giveaway-go/internal/database"
	"github.com/smysle/sakura-giveaway-go/internal/database/models"
	"github.com/smysle/sakura-giveaway-go/internal/database/repository"
	pkglogger "github.com/smysle/sakura-giveaway-go/pkg/logger"
	"github.com/smysle/sakura-giveaway-go/pkg/utils"
)

// Server Web 服务器，提供只读的抽奖查询接口
type Server struct {
	app       *fiber.App
	cfg       *config.APIConfig
	startTime time.Time
}

// New 创建 Web 服务器
func New(cfg *config.APIConfig) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// 中间件
	app.Use(recover.New())
	app.Use(logger.New())

	allowOrigins := "*"
	if len(cfg.AllowOrigins) > 0 {
		allowOrigins = strings.Join(cfg.AllowOrigins, ",")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	server := &Server{
		app:       app,
		cfg:       cfg,
		startTime: time.Now(),
	}

	server.registerRoutes()

	return server
}

// registerRoutes 注册路由
func (s *Server) registerRoutes() {
	s.app.Get("/health", s.healthCheck)
	s.app.Get("/", s.healthCheck)
	s.app.Get("/status", s.detailedStatus)

	v1 := s.app.Group("/api/v1")
	v1.Get("/giveaways", s.listGiveaways)
	v1.Get("/giveaways/:uuid", s.getGiveaway)
	v1.Get("/submissions", s.listSubmissions)
	v1.Get("/stats", s.getStats)
}

// Start 启动服务器
func (s *Server) Start() error {
	if !s.cfg.Enabled {
		pkglogger.Info().Msg("【API服务】未启用，跳过...")
		return nil
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	pkglogger.Info().Str("addr", addr).Msg("【API服务】启动中...")

	return s.app.Listen(addr)
}

// Stop 停止服务器
func (s *Server) Stop() error {
	return s.app.Shutdown()
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

// healthCheck 健康检查
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
	})
}

// StatusResponse 详细状态响应
type StatusResponse struct {
	Status   string         `json:"status"`
	Version  string         `json:"version"`
	Uptime   string         `json:"uptime"`
	System   SystemInfo     `json:"system"`
	Database DatabaseStatus `json:"database"`
}

// SystemInfo 系统信息
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     string `json:"mem_alloc"`
}

// DatabaseStatus 数据库状态
type DatabaseStatus struct {
	Connected     bool  `json:"connected"`
	ActiveCount   int64 `json:"active_giveaways"`
	GiveawayTotal int64 `json:"giveaway_total"`
}

// detailedStatus 详细状态
func (s *Server) detailedStatus(c *fiber.Ctx) error {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	dbConnected := false
	var active, ended, cancelled int64
	if db := database.GetDB(); db != nil {
		sqlDB, err := db.DB()
		if err == nil && sqlDB.Ping() == nil {
			dbConnected = true
			repo := repository.NewGiveawayRepository()
			active, _ = repo.CountByStatus(models.GiveawayStatusActive)
			ended, _ = repo.CountByStatus(models.GiveawayStatusEnded)
			cancelled, _ = repo.CountByStatus(models.GiveawayStatusCancelled)
		}
	}

	return c.JSON(StatusResponse{
		Status:  "ok",
		Version: "1.0.0",
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
		System: SystemInfo{
			GoVersion:    runtime.Version(),
			NumCPU:       runtime.NumCPU(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAlloc:     fmt.Sprintf("%.2f MB", float64(memStats.Alloc)/1024/1024),
		},
		Database: DatabaseStatus{
			Connected:     dbConnected,
			ActiveCount:   active,
			GiveawayTotal: active + ended + cancelled,
		},
	})
}

// GiveawayResponse 抽奖响应
// 不暴露参与者和中奖者的用户 ID
type GiveawayResponse struct {
	UUID             string  `json:"uuid"`
	Title            string  `json:"title"`
	Prize            string  `json:"prize"`
	Description      string  `json:"description,omitempty"`
	WinnerCount      int     `json:"winner_count"`
	ParticipantCount int     `json:"participant_count"`
	SelectedWinners  int     `json:"selected_winners"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at"`
	EndsAt           string  `json:"ends_at"`
	EndedAt          *string `json:"ended_at,omitempty"`
}

func toGiveawayResponse(g *models.Giveaway) GiveawayResponse {
	resp := GiveawayResponse{
		UUID:             g.UUID,
		Title:            g.Title,
		Prize:            g.Prize,
		Description:      g.Description,
		WinnerCount:      g.WinnerCount,
		ParticipantCount: len(g.Participants),
		SelectedWinners:  len(g.Winners),
		Status:           g.Status,
		CreatedAt:        g.CreatedAt.Format(time.RFC3339),
		EndsAt:           g.EndsAt.Format(time.RFC3339),
	}
	if g.EndedAt != nil {
		t := g.EndedAt.Format(time.RFC3339)
		resp.EndedAt = &t
	}
	return resp
}

// listGiveaways 抽奖列表，支持 ?status= 和 ?limit= 过滤
func (s *Server) listGiveaways(c *fiber.Ctx) error {
	status := c.Query("status")
	switch status {
	case "", models.GiveawayStatusActive, models.GiveawayStatusEnded, models.GiveawayStatusCancelled:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "无效的状态",
		})
	}

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 || n > 200 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "无效的 limit",
			})
		}
		limit = n
	}

	repo := repository.NewGiveawayRepository()
	giveaways, err := repo.ListRecent(status, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "获取抽奖列表失败",
		})
	}

	resp := make([]GiveawayResponse, 0, len(giveaways))
	for i := range giveaways {
		resp = append(resp, toGiveawayResponse(&giveaways[i]))
	}

	return c.JSON(fiber.Map{
		"count":     len(resp),
		"giveaways": resp,
	})
}

// getGiveaway 获取单个抽奖
func (s *Server) getGiveaway(c *fiber.Ctx) error {
	repo := repository.NewGiveawayRepository()
	g, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "抽奖不存在",
		})
	}

	return c.JSON(toGiveawayResponse(g))
}

// SubmissionResponse 投稿响应
// 不暴露投稿人的用户 ID
type SubmissionResponse struct {
	UUID        string `json:"uuid"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	IsFree      bool   `json:"is_free"`
	InviteLink  string `json:"invite_link,omitempty"`
	WebsiteLink string `json:"website_link,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// listSubmissions 按类型获取投稿列表，?type= 必填
func (s *Server) listSubmissions(c *fiber.Ctx) error {
	subType := c.Query("type")
	switch subType {
	case models.SubmissionTypeCheat, models.SubmissionTypeMacro, models.SubmissionTypeLegit,
		models.SubmissionTypeCoinShop, models.SubmissionTypeOther:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "无效的类型",
		})
	}

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 || n > 200 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "无效的 limit",
			})
		}
		limit = n
	}

	repo := repository.NewSubmissionRepository()
	submissions, err := repo.ListByType(subType, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "获取投稿列表失败",
		})
	}

	resp := make([]SubmissionResponse, 0, len(submissions))
	for _, sub := range submissions {
		resp = append(resp, SubmissionResponse{
			UUID:        sub.UUID,
			Type:        sub.Type,
			Name:        sub.Name,
			Version:     sub.Version,
			IsFree:      sub.IsFree,
			InviteLink:  sub.InviteLink,
			WebsiteLink: sub.WebsiteLink,
			CreatedAt:   sub.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(fiber.Map{
		"count":       len(resp),
		"submissions": resp,
	})
}

// StatsResponse 统计响应
type StatsResponse struct {
	ActiveGiveaways    int64 `json:"active_giveaways"`
	EndedGiveaways     int64 `json:"ended_giveaways"`
	CancelledGiveaways int64 `json:"cancelled_giveaways"`
	Submissions        int64 `json:"submissions"`
}

// getStats 获取统计，结果短暂缓存降低数据库压力
func (s *Server) getStats(c *fiber.Ctx) error {
	stats, err := utils.CacheGetOrSet("api_stats", 30*time.Second, func() (interface{}, error) {
		gRepo := repository.NewGiveawayRepository()
		sRepo := repository.NewSubmissionRepository()

		active, err := gRepo.CountByStatus(models.GiveawayStatusActive)
		if err != nil {
			return nil, err
		}
		ended, _ := gRepo.CountByStatus(models.GiveawayStatusEnded)
		cancelled, _ := gRepo.CountByStatus(models.GiveawayStatusCancelled)
		submissions, _ := sRepo.Count()

		return StatsResponse{
			ActiveGiveaways:    active,
			EndedGiveaways:     ended,
			CancelledGiveaways: cancelled,
			Submissions:        submissions,
		}, nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "获取统计失败",
		})
	}

	return c.JSON(stats)
}
