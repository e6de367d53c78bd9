// Package imggen 图片生成模块
package imggen

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
)

// 颜色定义
var (
	bgTopColor   = color.RGBA{30, 60, 114, 255}   // 渐变起始
	bgColor      = color.RGBA{25, 25, 35, 255}    // 深色背景
	cardColor    = color.RGBA{35, 35, 50, 255}    // 卡片背景
	goldColor    = color.RGBA{255, 215, 0, 255}   // 金色
	textColor    = color.RGBA{255, 255, 255, 255} // 白色文字
	subTextColor = color.RGBA{180, 180, 180, 255} // 灰色文字
	accentColor  = color.RGBA{138, 43, 226, 255}  // 紫色强调
)

// GenerateWinnerCard 生成开奖结果卡片图，返回生成的文件路径
func GenerateWinnerCard(title, prize string, winnerCount, participantCount int) (string, error) {
	width := 600
	height := 320

	dc := gg.NewContext(width, height)

	drawBackground(dc, width, height)

	// 标题区域
	dc.SetColor(goldColor)
	dc.DrawStringAnchored("🎊 开奖啦 🎊", float64(width)/2, 50, 0.5, 0.5)

	dc.SetColor(accentColor)
	dc.SetLineWidth(2)
	dc.DrawLine(50, 80, float64(width-50), 80)
	dc.Stroke()

	// 内容卡片
	cardX, cardY := 30.0, 100.0
	cardW, cardH := float64(width-60), 150.0
	dc.SetColor(color.RGBA{cardColor.R, cardColor.G, cardColor.B, 200})
	dc.DrawRoundedRectangle(cardX, cardY, cardW, cardH, 12)
	dc.Fill()

	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(width)/2, cardY+35, 0.5, 0.5)

	dc.SetColor(goldColor)
	dc.DrawStringAnchored(fmt.Sprintf("🏆 %s", prize), float64(width)/2, cardY+75, 0.5, 0.5)

	dc.SetColor(subTextColor)
	stats := fmt.Sprintf("%d 人参与 | %d 人中奖", participantCount, winnerCount)
	dc.DrawStringAnchored(stats, float64(width)/2, cardY+115, 0.5, 0.5)

	// 底部信息
	dc.SetColor(subTextColor)
	footer := fmt.Sprintf("开奖于 %s | Sakura Giveaway", time.Now().Format("2006-01-02 15:04"))
	dc.DrawStringAnchored(footer, float64(width)/2, float64(height-25), 0.5, 0.5)

	return savePNG(dc)
}

// drawBackground 绘制渐变背景
func drawBackground(dc *gg.Context, width, height int) {
	for y := 0; y < height; y++ {
		t := float64(y) / float64(height)
		r := uint8(float64(bgTopColor.R)*(1-t) + float64(bgColor.R)*t)
		g := uint8(float64(bgTopColor.G)*(1-t) + float64(bgColor.G)*t)
		b := uint8(float64(bgTopColor.B)*(1-t) + float64(bgColor.B)*t)
		dc.SetColor(color.RGBA{r, g, b, 255})
		dc.DrawRectangle(0, float64(y), float64(width), 1)
		dc.Fill()
	}
}

// savePNG 编码并写入临时文件
func savePNG(dc *gg.Context) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return "", fmt.Errorf("编码 PNG 失败: %w", err)
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("wincard_%d.png", time.Now().UnixNano()))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("写入图片失败: %w", err)
	}
	return path, nil
}
