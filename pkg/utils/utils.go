// Package utils 工具函数
package utils

import (
	"fmt"
	"time"
)

// FormatMinutes 格式化分钟数为可读时长
// 60 -> "1小时"，1500 -> "1天1小时"，45 -> "45分钟"
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d分钟", minutes)
	}

	hours := minutes / 60
	mins := minutes % 60

	if hours < 24 {
		if mins == 0 {
			return fmt.Sprintf("%d小时", hours)
		}
		return fmt.Sprintf("%d小时%d分钟", hours, mins)
	}

	days := hours / 24
	remainHours := hours % 24

	if remainHours == 0 {
		return fmt.Sprintf("%d天", days)
	}
	return fmt.Sprintf("%d天%d小时", days, remainHours)
}

// FormatCountdown 格式化剩余时间
// 已过期返回 "已结束"
func FormatCountdown(endsAt, now time.Time) string {
	if !endsAt.After(now) {
		return "已结束"
	}
	remain := int(endsAt.Sub(now).Minutes())
	if remain < 1 {
		remain = 1
	}
	return FormatMinutes(remain)
}

// TimeNowCST 获取当前北京时间
func TimeNowCST() time.Time {
	loc, _ := time.LoadLocation("Asia/Shanghai")
	return time.Now().In(loc)
}

// FormatTimeCST 格式化时间为北京时间字符串
func FormatTimeCST(t time.Time, layout string) string {
	loc, _ := time.LoadLocation("Asia/Shanghai")
	return t.In(loc).Format(layout)
}
