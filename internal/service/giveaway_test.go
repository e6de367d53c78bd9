// Package service 抽奖服务测试
package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/smysle/sakura-giveaway-go/internal/config"
	"github.com/smysle/sakura-giveaway-go/internal/database/models"
)

// fakeGiveawayStore 内存实现，模拟数据库的按值存取
type fakeGiveawayStore struct {
	mu        sync.Mutex
	giveaways map[string]*models.Giveaway
}

var errFakeNotFound = errors.New("记录不存在")

func newFakeGiveawayStore() *fakeGiveawayStore {
	return &fakeGiveawayStore{giveaways: make(map[string]*models.Giveaway)}
}

func copyGiveaway(g *models.Giveaway) *models.Giveaway {
	cp := *g
	cp.Participants = append(models.IDList{}, g.Participants...)
	cp.Winners = append(models.IDList{}, g.Winners...)
	return &cp
}

func (f *fakeGiveawayStore) Create(g *models.Giveaway) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.giveaways[g.UUID] = copyGiveaway(g)
	return nil
}

func (f *fakeGiveawayStore) GetByUUID(uuid string) (*models.Giveaway, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.giveaways[uuid]
	if !ok {
		return nil, errFakeNotFound
	}
	return copyGiveaway(g), nil
}

func (f *fakeGiveawayStore) Save(g *models.Giveaway) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.giveaways[g.UUID] = copyGiveaway(g)
	return nil
}

func (f *fakeGiveawayStore) GetActive() ([]models.Giveaway, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Giveaway
	for _, g := range f.giveaways {
		if g.Status == models.GiveawayStatusActive {
			result = append(result, *copyGiveaway(g))
		}
	}
	return result, nil
}

func (f *fakeGiveawayStore) GetExpired(now time.Time) ([]models.Giveaway, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Giveaway
	for _, g := range f.giveaways {
		if g.Status == models.GiveawayStatusActive && !g.EndsAt.After(now) {
			result = append(result, *copyGiveaway(g))
		}
	}
	return result, nil
}

// setEndsAt 直接改写存储中的截止时间，模拟时间流逝
func (f *fakeGiveawayStore) setEndsAt(uuid string, endsAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.giveaways[uuid]; ok {
		g.EndsAt = endsAt
	}
}

func newTestService() (*GiveawayService, *fakeGiveawayStore) {
	store := newFakeGiveawayStore()
	cfg := &config.Config{
		Giveaway: config.GiveawayConfig{
			Enabled:            true,
			MaxWinners:         20,
			MaxDurationMinutes: 10080,
		},
	}
	return NewGiveawayService(store, cfg), store
}

func mustCreate(t *testing.T, svc *GiveawayService, req *CreateGiveawayRequest) *models.Giveaway {
	t.Helper()
	g, err := svc.Create(req)
	if err != nil {
		t.Fatalf("Create() 错误: %v", err)
	}
	return g
}

func TestGiveawayService_Create(t *testing.T) {
	svc, _ := newTestService()

	g := mustCreate(t, svc, &CreateGiveawayRequest{
		Title:    "Nitro 抽奖",
		Prize:    "1 个月会员",
		Duration: 60,
		HostTG:   100,
		HostName: "Host",
		ChatID:   -100123,
	})

	got, err := svc.Get(g.UUID)
	if err != nil {
		t.Fatalf("Get() 错误: %v", err)
	}

	if got.Status != models.GiveawayStatusActive {
		t.Errorf("新建抽奖状态应该是 active，实际是 %s", got.Status)
	}
	if len(got.Participants) != 0 {
		t.Errorf("新建抽奖参与者应该为空，实际有 %d 个", len(got.Participants))
	}
	if len(got.Winners) != 0 {
		t.Errorf("新建抽奖中奖者应该为空，实际有 %d 个", len(got.Winners))
	}
	if got.WinnerCount != 1 {
		t.Errorf("未指定中奖人数应该默认为 1，实际是 %d", got.WinnerCount)
	}
	if want := got.CreatedAt.Add(60 * time.Minute); !got.EndsAt.Equal(want) {
		t.Errorf("EndsAt = %v, want %v", got.EndsAt, want)
	}
}

func TestGiveawayService_CreateValidation(t *testing.T) {
	svc, _ := newTestService()

	base := CreateGiveawayRequest{
		Title:    "标题",
		Prize:    "奖品",
		Duration: 60,
		HostTG:   100,
	}

	tests := []struct {
		name    string
		modify  func(req *CreateGiveawayRequest)
		wantErr error
	}{
		{"标题为空", func(r *CreateGiveawayRequest) { r.Title = "  " }, ErrTitleRequired},
		{"奖品为空", func(r *CreateGiveawayRequest) { r.Prize = "" }, ErrPrizeRequired},
		{"中奖人数超上限", func(r *CreateGiveawayRequest) { r.WinnerCount = 21 }, ErrInvalidWinnerCount},
		{"中奖人数为负", func(r *CreateGiveawayRequest) { r.WinnerCount = -1 }, ErrInvalidWinnerCount},
		{"持续时间为 0", func(r *CreateGiveawayRequest) { r.Duration = 0 }, ErrInvalidDuration},
		{"持续时间超一周", func(r *CreateGiveawayRequest) { r.Duration = 10081 }, ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.modify(&req)
			_, err := svc.Create(&req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() 错误 = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGiveawayService_Join(t *testing.T) {
	svc, _ := newTestService()
	g := mustCreate(t, svc, &CreateGiveawayRequest{
		Title: "T", Prize: "P", Duration: 60, HostTG: 100,
	})

	users := []int64{201, 202, 203}
	for _, u := range users {
		if _, err := svc.Join(g.UUID, u); err != nil {
			t.Fatalf("Join(%d) 错误: %v", u, err)
		}
	}

	got, _ := svc.Get(g.UUID)
	if len(got.Participants) != 3 {
		t.Errorf("参与者数量应该是 3，实际是 %d", len(got.Participants))
	}
	for _, u := range users {
		if !got.HasParticipant(u) {
			t.Errorf("参与者列表应该包含 %d", u)
		}
	}

	// 重复参与
	if _, err := svc.Join(g.UUID, 201); !errors.Is(err, ErrAlreadyJoined) {
		t.Errorf("重复参与错误 = %v, want ErrAlreadyJoined", err)
	}
	got, _ = svc.Get(g.UUID)
	if len(got.Participants) != 3 {
		t.Errorf("重复参与后数量仍应该是 3，实际是 %d", len(got.Participants))
	}

	// 未知 ID
	if _, err := svc.Join("no-such-id", 201); !errors.Is(err, ErrGiveawayNotFound) {
		t.Errorf("未知 ID 错误 = %v, want ErrGiveawayNotFound", err)
	}
}

func TestGiveawayService_JoinExpired(t *testing.T) {
	svc, store := newTestService()
	g := mustCreate(t, svc, &CreateGiveawayRequest{
		Title: "T", Prize: "P", Duration: 60, HostTG: 100,
	})

	// 截止时间已过但扫描尚未开奖，仍应拒绝参与
	store.setEndsAt(g.UUID, time.Now().Add(-time.Minute))

	if _, err := svc.Join(g.UUID, 201); !errors.Is(err, ErrGiveawayExpired) {
		t.Errorf("过期参与错误 = %v, want ErrGiveawayExpired", err)
	}
}

func TestGiveawayService_End(t *testing.T) {
	svc, _ := newTestService()
	g := mustCreate(t, svc, &CreateGiveawayRequest{
		Title: "Nitro", Prize: "1 Month", Duration: 60, HostTG: 100,
	})
	svc.Join(g.UUID, 201)
	svc.Join(g.UUID, 202)

	result, err := svc.End(g.UUID)
	if err != nil {
		t.Fatalf("End() 错误: %v", err)
	}

	if result.ParticipantCount != 2 {
		t.Errorf("参与人数应该是 2，实际是 %d", result.ParticipantCount)
	}
	if len(result.Winners) != 1 {
		t.Fatalf("中奖人数应该是 1，实际是 %d", len(result.Winners))
	}
	if result.Winners[0] != 201 && result.Winners[0] != 202 {
		t.Errorf("中奖者 %d 应该来自参与者", result.Winners[0])
	}

	got, _ := svc.Get(g.UUID)
	if got.Status != models.GiveawayStatusEnded {
		t.Errorf("开奖后状态应该是 ended，实际是 %s", got.Status)
	}
	if got.EndedAt == nil {
		t.Error("开奖后 EndedAt 应该被设置")
	}

	// 二次开奖是被守卫的空操作，首次结果不变
	firstWinners := append([]int64{}, got.Winners...)
	if _, err := svc.End(g.UUID); !errors.Is(err, ErrGiveawayNotActive) {
		t.Errorf("二次开奖错误 = %v, want ErrGiveawayNotActive", err)
	}
	got, _ = svc.Get(g.UUID)
	if len(got.Winners) != len(firstWinners) || got.Winners[0] != firstWinners[0] {
		t.Errorf("二次开奖不应该改写中奖者: %v -> %v", firstWinners, got.Winners)
	}
}

func TestGiveawayService_EndNoParticipants(t *testing.T) {
	svc, _ := newTestService()
	g := mustCreate(t, svc, &CreateGiveawayRequest{
		Title: "T", Prize: "P", WinnerCount: 3, Duration: 1, HostTG: 100,
	})

	// 无人参与也正常开奖，中奖者为空
	result, err := svc.End(g.UUID)
	if err != nil {
		t.Fatalf("End() 错误: %v", err)
	}
	if len(result.Winners) != 0 {
		t.Errorf("无人参与中奖者应该为空，实际有 %d 个", len(result.Winners))
	}
	if result.ParticipantCount != 0 {
		t.Errorf("参与人数应该是 0，实际是 %d", result.ParticipantCount)
	}

	got, _ := svc.Get(g.UUID)
	if got.Status != models.GiveawayStatusEnded {
		t.Errorf("状态应该是 ended，实际是 %s", got.Status)
	}
}

func TestGiveawayService_Cancel(t *testing.T) {
	svc, _ := newTestService()
	g := mustCreate(t, svc, &CreateGiveawayRequest{
		Title: "T", Prize: "P", Duration: 60, HostTG: 100,
	})
	svc.Join(g.UUID, 201)

	if _, err := svc.Cancel(g.UUID); err != nil {
		t.Fatalf("Cancel() 错误: %v", err)
	}

	got, _ := svc.Get(g.UUID)
	if got.Status != models.GiveawayStatusCancelled {
		t.Errorf("取消后状态应该是 cancelled，实际是 %s", got.Status)
	}
	if len(got.Winners) != 0 {
		t.Errorf("取消不应该抽取中奖者，实际有 %d 个", len(got.Winners))
	}
	if got.CancelledAt == nil {
		t.Error("取消后 CancelledAt 应该被设置")
	}

	// 取消后的抽奖不能再开奖/重抽/参与
	if _, err := svc.End(g.UUID); !errors.Is(err, ErrGiveawayNotActive) {
		t.Errorf("取消后开奖错误 = %v, want ErrGiveawayNotActive", err)
	}
	if _, err := svc.Reroll(g.UUID, 0, 100); !errors.Is(err, ErrGiveawayNotEnded) {
		t.Errorf("取消后重抽错误 = %v, want ErrGiveawayNotEnded", err)
	}
	if _, err := svc.Join(g.UUID, 202); !errors.Is(err, ErrGiveawayNotActive) {
		t.Errorf("取消后参与错误 = %v, want ErrGiveawayNotActive", err)
	}
}

func TestGiveawayService_Reroll(t *testing.T) {
	svc, _ := newTestService()
	g := mustCreate(t, svc, &CreateGiveawayRequest{
		Title: "T", Prize: "P", Duration: 60, HostTG: 100,
	})
	participants := map[int64]bool{201: true, 202: true, 203: true}
	for u := range participants {
		svc.Join(g.UUID, u)
	}

	// 进行中的抽奖不能重抽
	if _, err := svc.Reroll(g.UUID, 0, 100); !errors.Is(err, ErrGiveawayNotEnded) {
		t.Errorf("进行中重抽错误 = %v, want ErrGiveawayNotEnded", err)
	}

	svc.End(g.UUID)
	endsAtBefore, _ := svc.Get(g.UUID)

	result, err := svc.Reroll(g.UUID, 2, 999)
	if err != nil {
		t.Fatalf("Reroll() 错误: %v", err)
	}

	if len(result.Winners) != 2 {
		t.Fatalf("重抽中奖人数应该是 2，实际是 %d", len(result.Winners))
	}
	if result.Winners[0] == result.Winners[1] {
		t.Error("重抽中奖者不应该重复")
	}
	for _, w := range result.Winners {
		if !participants[w] {
			t.Errorf("中奖者 %d 应该来自参与者", w)
		}
	}

	got, _ := svc.Get(g.UUID)
	if got.Status != models.GiveawayStatusEnded {
		t.Errorf("重抽后状态仍应该是 ended，实际是 %s", got.Status)
	}
	if got.RerolledAt == nil {
		t.Error("重抽后 RerolledAt 应该被设置")
	}
	if got.RerolledBy == nil || *got.RerolledBy != 999 {
		t.Error("重抽后 RerolledBy 应该记录操作者")
	}
	if !got.EndsAt.Equal(endsAtBefore.EndsAt) {
		t.Error("重抽不应该改变截止时间")
	}
}

func TestGiveawayService_RerollNoParticipants(t *testing.T) {
	svc, _ := newTestService()
	g := mustCreate(t, svc, &CreateGiveawayRequest{
		Title: "T", Prize: "P", Duration: 1, HostTG: 100,
	})
	svc.End(g.UUID)

	if _, err := svc.Reroll(g.UUID, 0, 100); !errors.Is(err, ErrNoParticipants) {
		t.Errorf("无参与者重抽错误 = %v, want ErrNoParticipants", err)
	}
}

func TestGiveawayService_SetMessageID(t *testing.T) {
	svc, _ := newTestService()
	g := mustCreate(t, svc, &CreateGiveawayRequest{
		Title: "T", Prize: "P", Duration: 60, HostTG: 100,
	})

	if err := svc.SetMessageID(g.UUID, 555); err != nil {
		t.Fatalf("SetMessageID() 错误: %v", err)
	}

	got, _ := svc.Get(g.UUID)
	if got.MessageID != 555 {
		t.Errorf("MessageID 应该是 555，实际是 %d", got.MessageID)
	}

	// 只允许回填一次
	svc.SetMessageID(g.UUID, 777)
	got, _ = svc.Get(g.UUID)
	if got.MessageID != 555 {
		t.Errorf("MessageID 不应该被覆盖，实际是 %d", got.MessageID)
	}
}

func TestGiveawayService_ListExpired(t *testing.T) {
	svc, store := newTestService()

	g1 := mustCreate(t, svc, &CreateGiveawayRequest{
		Title: "过期", Prize: "P", Duration: 60, HostTG: 100,
	})
	mustCreate(t, svc, &CreateGiveawayRequest{
		Title: "未过期", Prize: "P", Duration: 60, HostTG: 100,
	})

	store.setEndsAt(g1.UUID, time.Now().Add(-time.Minute))

	expired, err := svc.ListExpired()
	if err != nil {
		t.Fatalf("ListExpired() 错误: %v", err)
	}
	if len(expired) != 1 {
		t.Fatalf("过期抽奖数量应该是 1，实际是 %d", len(expired))
	}
	if expired[0].UUID != g1.UUID {
		t.Errorf("过期抽奖应该是 %s，实际是 %s", g1.UUID, expired[0].UUID)
	}

	// 开奖后不再出现在过期列表中
	svc.End(g1.UUID)
	expired, _ = svc.ListExpired()
	if len(expired) != 0 {
		t.Errorf("开奖后过期列表应该为空，实际有 %d 个", len(expired))
	}
}
