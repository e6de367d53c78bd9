// Package utils 链接处理工具
package utils

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var invitePrefixRe = regexp.MustCompile(`(?i)^(https?://)?(discord\.gg/|discord\.com/invite/|t\.me/)`)

// probeClient 链接探测客户端
var probeClient = resty.New().
	SetTimeout(10 * time.Second).
	SetRetryCount(1).
	SetRetryWaitTime(2 * time.Second)

// IsValidURL 检查字符串是否是合法 URL
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// FormatInviteLink 格式化群组邀请链接
// 去掉已有前缀后统一为 https://t.me/ 形式，空串返回 ""
func FormatInviteLink(invite string) string {
	invite = strings.TrimSpace(invite)
	if invite == "" {
		return ""
	}

	clean := invitePrefixRe.ReplaceAllString(invite, "")
	return "https://t.me/" + clean
}

// FormatWebsiteLink 校验并格式化网站/GitHub 链接
// 非法链接返回 ""
func FormatWebsiteLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}

	// 未指定协议时补全 https://
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		link = "https://" + link
	}

	if !IsValidURL(link) {
		return ""
	}
	return link
}

// ProbeLink 探测链接是否可达
// 仅发 HEAD 请求，网络错误视为不可达
func ProbeLink(link string) bool {
	if link == "" {
		return false
	}

	resp, err := probeClient.R().Head(link)
	if err != nil {
		return false
	}
	return resp.StatusCode() < 400
}
