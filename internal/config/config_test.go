// Package config 配置模块测试
package config

import (
	"testing"
)

func TestConfig_IsAdmin(t *testing.T) {
	cfg := &Config{
		Owner:  12345,
		Admins: []int64{11111, 22222},
	}

	tests := []struct {
		name     string
		userID   int64
		expected bool
	}{
		{"Owner 是管理员", 12345, true},
		{"Admin 是管理员", 11111, true},
		{"Admin2 是管理员", 22222, true},
		{"普通用户不是管理员", 99999, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.IsAdmin(tt.userID); got != tt.expected {
				t.Errorf("IsAdmin(%d) = %v, want %v", tt.userID, got, tt.expected)
			}
		})
	}
}

func TestConfig_IsOwner(t *testing.T) {
	cfg := &Config{
		Owner: 12345,
	}

	if !cfg.IsOwner(12345) {
		t.Error("IsOwner(12345) 应该返回 true")
	}

	if cfg.IsOwner(99999) {
		t.Error("IsOwner(99999) 应该返回 false")
	}
}

func TestConfig_AddRemoveAdmin(t *testing.T) {
	cfg := &Config{
		Admins: []int64{11111},
	}

	// 添加新管理员
	if !cfg.AddAdmin(22222) {
		t.Error("AddAdmin(22222) 应该返回 true")
	}

	if len(cfg.Admins) != 2 {
		t.Errorf("管理员数量应该是 2，实际是 %d", len(cfg.Admins))
	}

	// 重复添加
	if cfg.AddAdmin(22222) {
		t.Error("AddAdmin(22222) 重复添加应该返回 false")
	}

	// 移除存在的管理员
	if !cfg.RemoveAdmin(11111) {
		t.Error("RemoveAdmin(11111) 应该返回 true")
	}

	// 移除不存在的管理员
	if cfg.RemoveAdmin(33333) {
		t.Error("RemoveAdmin(33333) 应该返回 false")
	}
}

func TestConfig_SetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.setDefaults()

	if cfg.Giveaway.MaxWinners != 20 {
		t.Errorf("MaxWinners 默认值应该是 20，实际是 %d", cfg.Giveaway.MaxWinners)
	}
	if cfg.Giveaway.MaxDurationMinutes != 10080 {
		t.Errorf("MaxDurationMinutes 默认值应该是 10080，实际是 %d", cfg.Giveaway.MaxDurationMinutes)
	}
	if cfg.Giveaway.SweepMinutes != 5 {
		t.Errorf("SweepMinutes 默认值应该是 5，实际是 %d", cfg.Giveaway.SweepMinutes)
	}
	if cfg.Database.Port != 3306 {
		t.Errorf("数据库端口默认值应该是 3306，实际是 %d", cfg.Database.Port)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"缺少 token", &Config{Owner: 1}, true},
		{"缺少 owner", &Config{BotToken: "abc"}, true},
		{"完整配置", &Config{BotToken: "abc", Owner: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_InGroups(t *testing.T) {
	cfg := &Config{
		Groups: []int64{-100123, -100456},
	}

	if !cfg.InGroups(-100123) {
		t.Error("InGroups(-100123) 应该返回 true")
	}
	if cfg.InGroups(-100999) {
		t.Error("InGroups(-100999) 应该返回 false")
	}
}
