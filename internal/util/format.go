package util

import "fmt"

// FormatPercent 格式化百分比（value 已是百分数）
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// FormatFTE FTE 保留两位小数
func FormatFTE(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// FormatMinutes 分钟数格式化为 "h 小时 m 分"
func FormatMinutes(minutes float64) string {
	if minutes < 0 {
		return "-" + FormatMinutes(-minutes)
	}
	total := int(minutes + 0.5)
	return fmt.Sprintf("%dh%02dm", total/60, total%60)
}
