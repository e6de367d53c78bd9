// Package session 会话状态管理
package session

import (
	"sync"
	"time"
)

// State 会话状态类型
type State string

const (
	StateNone State = ""

	// 抽奖创建向导状态
	StateGiveawayTitle    State = "giveaway_title"    // 等待输入标题
	StateGiveawayPrize    State = "giveaway_prize"    // 等待输入奖品
	StateGiveawayWinners  State = "giveaway_winners"  // 等待输入中奖人数
	StateGiveawayDuration State = "giveaway_duration" // 等待输入持续时间
	StateGiveawayDesc     State = "giveaway_desc"     // 等待输入描述（可跳过）

	// 投稿向导状态
	StateSubmitType    State = "submit_type"    // 等待选择投稿类型
	StateSubmitName    State = "submit_name"    // 等待输入名称
	StateSubmitVersion State = "submit_version" // 等待选择版本
	StateSubmitFree    State = "submit_free"    // 等待选择免费/付费
	StateSubmitInvite  State = "submit_invite"  // 等待输入邀请链接（可跳过）
	StateSubmitWebsite State = "submit_website" // 等待输入官网链接（可跳过）
)

// UserSession 用户会话
type UserSession struct {
	State     State
	Data      map[string]interface{}
	UpdatedAt time.Time
}

// Manager 会话管理器
type Manager struct {
	sessions map[int64]*UserSession
	mu       sync.RWMutex
	ttl      time.Duration
}

var (
	instance *Manager
	once     sync.Once
)

// GetManager 获取会话管理器单例
func GetManager() *Manager {
	once.Do(func() {
		instance = &Manager{
			sessions: make(map[int64]*UserSession),
			ttl:      10 * time.Minute, // 会话超时时间
		}

		// 启动清理协程
		go instance.cleanup()
	})
	return instance
}

// SetState 设置用户状态
func (m *Manager) SetState(userID int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[userID]; ok {
		session.State = state
		session.UpdatedAt = time.Now()
	} else {
		m.sessions[userID] = &UserSession{
			State:     state,
			Data:      make(map[string]interface{}),
			UpdatedAt: time.Now(),
		}
	}
}

// GetState 获取用户状态
func (m *Manager) GetState(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if session, ok := m.sessions[userID]; ok {
		return session.State
	}
	return StateNone
}

// SetData 设置会话数据
func (m *Manager) SetData(userID int64, key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[userID]; ok {
		session.Data[key] = value
		session.UpdatedAt = time.Now()
	} else {
		m.sessions[userID] = &UserSession{
			State:     StateNone,
			Data:      map[string]interface{}{key: value},
			UpdatedAt: time.Now(),
		}
	}
}

// GetData 获取会话数据
func (m *Manager) GetData(userID int64, key string) (interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if session, ok := m.sessions[userID]; ok {
		val, exists := session.Data[key]
		return val, exists
	}
	return nil, false
}

// GetString 获取字符串类型的会话数据，不存在时返回空串
func (m *Manager) GetString(userID int64, key string) string {
	if val, ok := m.GetData(userID, key); ok {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt 获取整数类型的会话数据，不存在时返回 0
func (m *Manager) GetInt(userID int64, key string) int {
	if val, ok := m.GetData(userID, key); ok {
		if n, ok := val.(int); ok {
			return n
		}
	}
	return 0
}

// GetBool 获取布尔类型的会话数据，不存在时返回 false
func (m *Manager) GetBool(userID int64, key string) bool {
	if val, ok := m.GetData(userID, key); ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

// ClearSession 清除用户会话
func (m *Manager) ClearSession(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// cleanup 定期清理过期会话
func (m *Manager) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()
		for userID, session := range m.sessions {
			if now.Sub(session.UpdatedAt) > m.ttl {
				delete(m.sessions, userID)
			}
		}
		m.mu.Unlock()
	}
}
