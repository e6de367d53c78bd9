package service

import (
	"testing"
)

func TestSelectWinners(t *testing.T) {
	participants := []int64{101, 102, 103, 104, 105}

	tests := []struct {
		name         string
		participants []int64
		count        int
		wantLen      int
	}{
		{"正常抽取", participants, 3, 3},
		{"人数不足时全员中奖", []int64{101, 102}, 5, 2},
		{"抽取 0 个", participants, 0, 0},
		{"负数按 0 处理", participants, -1, 0},
		{"参与者为空", []int64{}, 3, 0},
		{"参与者为 nil", nil, 3, 0},
		{"全员抽取", participants, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winners := SelectWinners(tt.participants, tt.count)

			if winners == nil {
				t.Fatal("SelectWinners() 不应该返回 nil")
			}
			if len(winners) != tt.wantLen {
				t.Fatalf("中奖人数 = %d, want %d", len(winners), tt.wantLen)
			}

			pool := make(map[int64]bool, len(tt.participants))
			for _, p := range tt.participants {
				pool[p] = true
			}
			seen := make(map[int64]bool, len(winners))
			for _, w := range winners {
				if !pool[w] {
					t.Errorf("中奖者 %d 不在参与者中", w)
				}
				if seen[w] {
					t.Errorf("中奖者 %d 重复", w)
				}
				seen[w] = true
			}
		})
	}
}

func TestSelectWinnersDoesNotMutateInput(t *testing.T) {
	participants := []int64{101, 102, 103, 104, 105}
	original := append([]int64{}, participants...)

	for i := 0; i < 20; i++ {
		SelectWinners(participants, 3)
	}

	for i := range participants {
		if participants[i] != original[i] {
			t.Fatalf("参与者列表被修改: %v -> %v", original, participants)
		}
	}
}
