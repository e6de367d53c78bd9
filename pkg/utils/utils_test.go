package utils

import (
	"testing"
	"time"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    string
	}{
		{"不足一小时", 45, "45分钟"},
		{"整小时", 60, "1小时"},
		{"小时加分钟", 90, "1小时30分钟"},
		{"整天", 1440, "1天"},
		{"天加小时", 1500, "1天1小时"},
		{"一周", 10080, "7天"},
		{"一分钟", 1, "1分钟"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMinutes(tt.minutes); got != tt.want {
				t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestFormatCountdown(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("还有一小时", func(t *testing.T) {
		got := FormatCountdown(now.Add(time.Hour), now)
		if got != "1小时" {
			t.Errorf("FormatCountdown = %q, want %q", got, "1小时")
		}
	})

	t.Run("已过期", func(t *testing.T) {
		got := FormatCountdown(now.Add(-time.Minute), now)
		if got != "已结束" {
			t.Errorf("FormatCountdown = %q, want %q", got, "已结束")
		}
	})

	t.Run("刚好到期", func(t *testing.T) {
		got := FormatCountdown(now, now)
		if got != "已结束" {
			t.Errorf("FormatCountdown = %q, want %q", got, "已结束")
		}
	})

	t.Run("不足一分钟向上取整", func(t *testing.T) {
		got := FormatCountdown(now.Add(30*time.Second), now)
		if got != "1分钟" {
			t.Errorf("FormatCountdown = %q, want %q", got, "1分钟")
		}
	})
}
