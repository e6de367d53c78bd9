// Package service 抽奖定时器
package service

import (
	"sync"
	"time"

	"github.com/smysle/sakura-giveaway-go/internal/database/models"
	"github.com/smysle/sakura-giveaway-go/pkg/logger"
)

// TimerTable 每个抽奖一个可取消的到期定时器
// 定时器只是降低开奖延迟的优化，正确性由定时扫描兜底，
// 进程重启后由 RescheduleActive 重建。
type TimerTable struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	fire   func(uuid string)
}

// NewTimerTable 创建定时器表，fire 为到期回调
func NewTimerTable(fire func(uuid string)) *TimerTable {
	return &TimerTable{
		timers: make(map[string]*time.Timer),
		fire:   fire,
	}
}

// Schedule 为抽奖安排到期定时器，已存在则替换
func (t *TimerTable) Schedule(uuid string, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if old, ok := t.timers[uuid]; ok {
		old.Stop()
	}

	d := time.Until(at)
	if d < 0 {
		d = 0
	}

	t.timers[uuid] = time.AfterFunc(d, func() {
		t.remove(uuid)
		t.fire(uuid)
	})

	logger.Debug().Str("uuid", uuid).Time("at", at).Msg("已安排开奖定时器")
}

// Cancel 取消抽奖的定时器（提前开奖/取消时调用）
func (t *TimerTable) Cancel(uuid string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.timers[uuid]; ok {
		timer.Stop()
		delete(t.timers, uuid)
		logger.Debug().Str("uuid", uuid).Msg("已取消开奖定时器")
	}
}

// RescheduleActive 启动时为所有进行中的抽奖重建定时器
func (t *TimerTable) RescheduleActive(giveaways []models.Giveaway) {
	for _, g := range giveaways {
		t.Schedule(g.UUID, g.EndsAt)
	}

	if len(giveaways) > 0 {
		logger.Info().Int("count", len(giveaways)).Msg("已重建进行中抽奖的定时器")
	}
}

// Len 当前定时器数量
func (t *TimerTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}

func (t *TimerTable) remove(uuid string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.timers, uuid)
}
