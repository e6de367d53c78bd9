// Package keyboards 分页组件
package keyboards

import (
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// Paginator 分页器配置
type Paginator struct {
	Total        int    // 总页数
	Current      int    // 当前页码
	CallbackFmt  string // 回调格式，如 "gw_page|%d"
	ShowQuickNav bool   // 是否显示快速翻页按钮 (+5/-5)
	QuickStep    int    // 快速翻页步长，默认5
	MaxButtons   int    // 最大页码按钮数（不含导航按钮）
}

// NewPaginator 创建分页器
func NewPaginator(total, current int, callbackFmt string) *Paginator {
	return &Paginator{
		Total:        total,
		Current:      current,
		CallbackFmt:  callbackFmt,
		ShowQuickNav: true,
		QuickStep:    5,
		MaxButtons:   5,
	}
}

// BuildKeyboard 构建分页键盘
func (p *Paginator) BuildKeyboard() *tele.ReplyMarkup {
	return p.BuildKeyboardWithExtra()
}

// BuildKeyboardWithExtra 构建带额外按钮的分页键盘
func (p *Paginator) BuildKeyboardWithExtra(extraRows ...tele.Row) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	var allRows []tele.Row

	if p.Total > 1 {
		var navRow []tele.Btn
		var pageRow []tele.Btn

		// 快速后退
		if p.ShowQuickNav && p.Current > p.QuickStep {
			navRow = append(navRow, markup.Data("⏮️-5", fmt.Sprintf(p.CallbackFmt, p.Current-p.QuickStep)))
		}

		// 上一页
		if p.Current > 1 {
			navRow = append(navRow, markup.Data("◀️", fmt.Sprintf(p.CallbackFmt, p.Current-1)))
		}

		// 页码
		start, end := p.calculatePageRange()
		for i := start; i <= end; i++ {
			if i == p.Current {
				pageRow = append(pageRow, markup.Data(fmt.Sprintf("·%d·", i), "noop"))
			} else {
				pageRow = append(pageRow, markup.Data(fmt.Sprintf("%d", i), fmt.Sprintf(p.CallbackFmt, i)))
			}
		}

		// 下一页
		if p.Current < p.Total {
			navRow = append(navRow, markup.Data("▶️", fmt.Sprintf(p.CallbackFmt, p.Current+1)))
		}

		// 快速前进
		if p.ShowQuickNav && p.Current+p.QuickStep <= p.Total {
			navRow = append(navRow, markup.Data("⏭️+5", fmt.Sprintf(p.CallbackFmt, p.Current+p.QuickStep)))
		}

		if len(pageRow) > 0 {
			allRows = append(allRows, markup.Row(pageRow...))
		}
		if len(navRow) > 0 {
			allRows = append(allRows, markup.Row(navRow...))
		}
	}

	allRows = append(allRows, extraRows...)

	markup.Inline(allRows...)
	return markup
}

// calculatePageRange 计算页码范围
func (p *Paginator) calculatePageRange() (start, end int) {
	maxButtons := p.MaxButtons
	if maxButtons <= 0 {
		maxButtons = 5
	}

	half := maxButtons / 2

	start = p.Current - half
	end = p.Current + half

	// 边界调整
	if start < 1 {
		end += (1 - start)
		start = 1
	}

	if end > p.Total {
		start -= (end - p.Total)
		end = p.Total
	}

	if start < 1 {
		start = 1
	}

	return
}

// GiveawayListPagination 抽奖列表分页键盘
func GiveawayListPagination(page, total int) *tele.ReplyMarkup {
	p := NewPaginator(total, page, "gw_page|%d")
	return p.BuildKeyboardWithExtra(
		tele.Row{tele.Btn{Text: "❌ 关闭", Data: "close"}},
	)
}
