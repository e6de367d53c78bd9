// Package service 中奖者抽取
package service

import (
	"math/rand"
)

// SelectWinners 从参与者中随机抽取中奖者
// 返回长度为 min(count, len(participants)) 的无重复序列，
// 参与者为空时返回空序列。每次调用都是独立的全新抽取，
// 开奖和重抽共用此函数。
func SelectWinners(participants []int64, count int) []int64 {
	if len(participants) == 0 {
		return []int64{}
	}

	shuffled := make([]int64, len(participants))
	copy(shuffled, participants)

	// Fisher-Yates 洗牌
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	if count < 0 {
		count = 0
	}
	if count > len(shuffled) {
		count = len(shuffled)
	}

	return shuffled[:count]
}
