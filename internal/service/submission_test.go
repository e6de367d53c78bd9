package service

import (
	"errors"
	"testing"

	"github.com/smysle/sakura-giveaway-go/internal/config"
	"github.com/smysle/sakura-giveaway-go/internal/database/models"
)

type fakeSubmissionStore struct {
	submissions map[string]*models.Submission
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{submissions: make(map[string]*models.Submission)}
}

func (f *fakeSubmissionStore) Create(s *models.Submission) error {
	f.submissions[s.UUID] = s
	return nil
}

func (f *fakeSubmissionStore) SetMessageID(uuid string, messageID int) error {
	if s, ok := f.submissions[uuid]; ok {
		s.MessageID = messageID
	}
	return nil
}

func newTestSubmissionService() (*SubmissionService, *fakeSubmissionStore) {
	store := newFakeSubmissionStore()
	cfg := &config.Config{
		Submission: config.SubmissionConfig{
			Enabled:      true,
			ForumGroupID: -100999,
			Topics: map[string]int{
				"cheat_189":  11,
				"cheat_1215": 12,
				"macro_189":  21,
				"coinshop":   31,
				"other":      41,
			},
		},
	}
	return NewSubmissionService(store, cfg), store
}

func TestSubmissionService_Submit(t *testing.T) {
	svc, store := newTestSubmissionService()

	result, err := svc.Submit(&SubmitRequest{
		Type:        models.SubmissionTypeCheat,
		Name:        "TestClient",
		Version:     "1.8.9",
		IsFree:      true,
		InviteLink:  "t.me/testclient",
		SubmitterTG: 100,
	})
	if err != nil {
		t.Fatalf("Submit() 错误: %v", err)
	}

	if result.TopicID != 11 {
		t.Errorf("1.8.9 辅助应该发往话题 11，实际是 %d", result.TopicID)
	}
	if result.Submission.InviteLink != "https://t.me/testclient" {
		t.Errorf("邀请链接应该被规范化，实际是 %s", result.Submission.InviteLink)
	}
	if _, ok := store.submissions[result.Submission.UUID]; !ok {
		t.Error("投稿应该被持久化")
	}
}

func TestSubmissionService_SubmitValidation(t *testing.T) {
	svc, _ := newTestSubmissionService()

	tests := []struct {
		name    string
		req     SubmitRequest
		wantErr error
	}{
		{
			"名称为空",
			SubmitRequest{Type: models.SubmissionTypeCheat, Name: " ", Version: "1.8.9"},
			ErrNameRequired,
		},
		{
			"无效类型",
			SubmitRequest{Type: "unknown", Name: "X"},
			ErrInvalidSubmissionType,
		},
		{
			"无效版本",
			SubmitRequest{Type: models.SubmissionTypeCheat, Name: "X", Version: "1.12.2"},
			ErrInvalidVersion,
		},
		{
			"未配置话题",
			SubmitRequest{Type: models.SubmissionTypeLegit, Name: "X", Version: "1.8.9"},
			ErrNoTopicConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(&tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() 错误 = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubmissionService_TopicRouting(t *testing.T) {
	svc, _ := newTestSubmissionService()

	tests := []struct {
		name    string
		subType string
		version string
		want    int
	}{
		{"1.8.9 辅助", models.SubmissionTypeCheat, "1.8.9", 11},
		{"1.21.5 辅助", models.SubmissionTypeCheat, "1.21.5", 12},
		{"1.8.9 宏", models.SubmissionTypeMacro, "1.8.9", 21},
		{"币商无版本", models.SubmissionTypeCoinShop, "", 31},
		{"其他无版本", models.SubmissionTypeOther, "", 41},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Submit(&SubmitRequest{
				Type:    tt.subType,
				Name:    "X",
				Version: tt.version,
			})
			if err != nil {
				t.Fatalf("Submit() 错误: %v", err)
			}
			if result.TopicID != tt.want {
				t.Errorf("话题 = %d, want %d", result.TopicID, tt.want)
			}
		})
	}
}

func TestSubmissionService_Disabled(t *testing.T) {
	store := newFakeSubmissionStore()
	cfg := &config.Config{Submission: config.SubmissionConfig{Enabled: false}}
	svc := NewSubmissionService(store, cfg)

	_, err := svc.Submit(&SubmitRequest{Type: models.SubmissionTypeOther, Name: "X"})
	if !errors.Is(err, ErrSubmissionDisabled) {
		t.Errorf("Submit() 错误 = %v, want ErrSubmissionDisabled", err)
	}
}
