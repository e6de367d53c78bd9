// Package models 数据模型测试
package models

import (
	"testing"
	"time"
)

func TestIDList_Scan(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected int
	}{
		{"正常 JSON", []byte(`[1,2,3]`), 3},
		{"字符串 JSON", `[10,20]`, 2},
		{"空数组", []byte(`[]`), 0},
		{"nil 值", nil, 0},
		{"空字节", []byte(``), 0},
		{"损坏数据回退为空", []byte(`{not json`), 0},
		{"类型异常回退为空", 12345, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l IDList
			if err := l.Scan(tt.value); err != nil {
				t.Fatalf("Scan() 不应该返回错误: %v", err)
			}
			if len(l) != tt.expected {
				t.Errorf("Scan() 长度 = %d, want %d", len(l), tt.expected)
			}
		})
	}
}

func TestIDList_Value(t *testing.T) {
	tests := []struct {
		name     string
		list     IDList
		expected string
	}{
		{"普通列表", IDList{1, 2, 3}, "[1,2,3]"},
		{"空列表", IDList{}, "[]"},
		{"nil 列表", nil, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.list.Value()
			if err != nil {
				t.Fatalf("Value() 错误: %v", err)
			}
			if v.(string) != tt.expected {
				t.Errorf("Value() = %q, want %q", v, tt.expected)
			}
		})
	}
}

func TestIDList_Contains(t *testing.T) {
	l := IDList{111, 222, 333}

	if !l.Contains(222) {
		t.Error("Contains(222) 应该返回 true")
	}
	if l.Contains(999) {
		t.Error("Contains(999) 应该返回 false")
	}
}

func TestGiveaway_IsExpired(t *testing.T) {
	now := time.Date(2026, 1, 16, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		endsAt   time.Time
		expected bool
	}{
		{"未到期", now.Add(time.Hour), false},
		{"刚好到期", now, true},
		{"已过期", now.Add(-time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Giveaway{EndsAt: tt.endsAt}
			if got := g.IsExpired(now); got != tt.expected {
				t.Errorf("IsExpired() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGiveaway_HasParticipant(t *testing.T) {
	g := &Giveaway{Participants: IDList{100, 200}}

	if !g.HasParticipant(100) {
		t.Error("HasParticipant(100) 应该返回 true")
	}
	if g.HasParticipant(300) {
		t.Error("HasParticipant(300) 应该返回 false")
	}
}

func TestIsVersionedType(t *testing.T) {
	tests := []struct {
		subType  string
		expected bool
	}{
		{SubmissionTypeCheat, true},
		{SubmissionTypeMacro, true},
		{SubmissionTypeLegit, true},
		{SubmissionTypeCoinShop, false},
		{SubmissionTypeOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.subType, func(t *testing.T) {
			if got := IsVersionedType(tt.subType); got != tt.expected {
				t.Errorf("IsVersionedType(%s) = %v, want %v", tt.subType, got, tt.expected)
			}
		})
	}
}
