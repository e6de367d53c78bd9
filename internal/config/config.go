// Package config 配置管理模块
package config

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// Config 全局配置结构
type Config struct {
	BotName  string  `json:"bot_name"`
	BotToken string  `json:"bot_token"`
	Owner    int64   `json:"owner"`
	Groups   []int64 `json:"group"`
	Admins   []int64 `json:"admins"`

	Giveaway   GiveawayConfig   `json:"giveaway"`
	Submission SubmissionConfig `json:"submission"`
	Database   DatabaseConfig   `json:"database"`
	Scheduler  SchedulerConfig  `json:"scheduler"`
	API        APIConfig        `json:"api"`
	Proxy      ProxyConfig      `json:"proxy"`
}

// GiveawayConfig 抽奖配置
type GiveawayConfig struct {
	Enabled             bool `json:"enabled"`
	MaxWinners          int  `json:"max_winners"`           // 单次抽奖最大中奖人数
	MaxDurationMinutes  int  `json:"max_duration_minutes"`  // 最长持续时间（分钟）
	SweepMinutes        int  `json:"sweep_minutes"`         // 过期扫描间隔（分钟）
	WinnerCard          bool `json:"winner_card"`           // 开奖时生成中奖卡片图
	EditThrottleSeconds int  `json:"edit_throttle_seconds"` // 参与人数刷新节流
}

// SubmissionConfig 投稿配置
type SubmissionConfig struct {
	Enabled      bool           `json:"enabled"`
	ForumGroupID int64          `json:"forum_group_id"` // 话题群组 ID
	Topics       map[string]int `json:"topics"`         // 投稿类型 -> 话题 ID
	ProbeLinks   bool           `json:"probe_links"`    // 投稿链接可达性探测
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SchedulerConfig 定时任务配置
type SchedulerConfig struct {
	SweepExpired bool `json:"sweep_expired"` // 过期抽奖扫描
	DailyStats   bool `json:"daily_stats"`   // 每日统计报告
}

// APIConfig Web API 配置
type APIConfig struct {
	Enabled      bool     `json:"enabled"`
	Host         string   `json:"host"`
	Port         int      `json:"port"`
	AllowOrigins []string `json:"allow_origins"`
}

// ProxyConfig 代理配置
type ProxyConfig struct {
	Scheme   string `json:"scheme"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

var (
	cfg        *Config
	cfgLock    sync.RWMutex
	configPath string
)

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// 设置默认值
	config.setDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	cfgLock.Lock()
	cfg = &config
	cfgLock.Unlock()

	return &config, nil
}

// Get 获取全局配置（线程安全）
func Get() *Config {
	cfgLock.RLock()
	defer cfgLock.RUnlock()
	return cfg
}

// SetConfigPath 保存配置文件路径，用于热保存
func SetConfigPath(path string) {
	configPath = path
}

// Save 保存配置到文件
func (c *Config) Save(path string) error {
	if path == "" {
		path = configPath
	}
	if path == "" {
		return errors.New("未设置配置文件路径")
	}

	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// setDefaults 设置默认值
func (c *Config) setDefaults() {
	if c.BotName == "" {
		c.BotName = "GiveawayBot"
	}
	if c.Giveaway.MaxWinners <= 0 {
		c.Giveaway.MaxWinners = 20
	}
	if c.Giveaway.MaxDurationMinutes <= 0 {
		c.Giveaway.MaxDurationMinutes = 10080 // 一周
	}
	if c.Giveaway.SweepMinutes <= 0 {
		c.Giveaway.SweepMinutes = 5
	}
	if c.Giveaway.EditThrottleSeconds <= 0 {
		c.Giveaway.EditThrottleSeconds = 3
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.API.Host == "" {
		c.API.Host = "0.0.0.0"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
}

// Validate 校验必填配置
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return errors.New("bot_token 未配置")
	}
	if c.Owner == 0 {
		return errors.New("owner 未配置")
	}
	return nil
}

// IsOwner 检查是否是 Owner
func (c *Config) IsOwner(userID int64) bool {
	return userID == c.Owner
}

// IsAdmin 检查是否是管理员（Owner 视为管理员）
func (c *Config) IsAdmin(userID int64) bool {
	if c.IsOwner(userID) {
		return true
	}
	for _, id := range c.Admins {
		if id == userID {
			return true
		}
	}
	return false
}

// AddAdmin 添加管理员，已存在返回 false
func (c *Config) AddAdmin(userID int64) bool {
	for _, id := range c.Admins {
		if id == userID {
			return false
		}
	}
	c.Admins = append(c.Admins, userID)
	return true
}

// RemoveAdmin 移除管理员，不存在返回 false
func (c *Config) RemoveAdmin(userID int64) bool {
	for i, id := range c.Admins {
		if id == userID {
			c.Admins = append(c.Admins[:i], c.Admins[i+1:]...)
			return true
		}
	}
	return false
}

// InGroups 检查群组是否在配置列表中
func (c *Config) InGroups(chatID int64) bool {
	for _, id := range c.Groups {
		if id == chatID {
			return true
		}
	}
	return false
}
