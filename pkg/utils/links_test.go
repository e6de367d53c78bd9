package utils

import "testing"

func TestFormatInviteLink(t *testing.T) {
	tests := []struct {
		name   string
		invite string
		want   string
	}{
		{"空串", "", ""},
		{"纯邀请码", "abcdef", "https://t.me/abcdef"},
		{"已带前缀", "https://t.me/abcdef", "https://t.me/abcdef"},
		{"无协议前缀", "t.me/abcdef", "https://t.me/abcdef"},
		{"带空白", "  abcdef  ", "https://t.me/abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatInviteLink(tt.invite); got != tt.want {
				t.Errorf("FormatInviteLink(%q) = %q, want %q", tt.invite, got, tt.want)
			}
		})
	}
}

func TestFormatWebsiteLink(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{"空串", "", ""},
		{"完整链接", "https://example.com/page", "https://example.com/page"},
		{"补全协议", "example.com", "https://example.com"},
		{"http保留", "http://example.com", "http://example.com"},
		{"非法链接", "https://", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWebsiteLink(tt.link); got != tt.want {
				t.Errorf("FormatWebsiteLink(%q) = %q, want %q", tt.link, got, tt.want)
			}
		})
	}
}

func TestIsValidURL(t *testing.T) {
	if !IsValidURL("https://example.com") {
		t.Error("https://example.com 应该是合法 URL")
	}
	if IsValidURL("not a url") {
		t.Error("纯文本不应该是合法 URL")
	}
	if IsValidURL("/relative/path") {
		t.Error("相对路径不应该是合法 URL")
	}
}
