package parser

import (
	"strconv"
	"strings"
)

// NormalizeText 文本机械规范化：大写、去首尾空白、不间断空格转普通空格、压缩连续空白
// 空输入返回空串
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	s := strings.ToUpper(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeColumnName 规范化列名（仅去首尾空白，列名区分大小写）
func NormalizeColumnName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "\u00a0", " "))
}

// NormalizeResolver 处理人姓名规范化（大写 + 去首尾空白）
func NormalizeResolver(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ParseNumber 解析数值单元格，允许千分位逗号
func ParseNumber(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0, false
	}
	val = strings.ReplaceAll(val, ",", "")
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseMonth 解析 1-12 的月份，"7" / "7.0" / "07" 均可
func ParseMonth(val string) (int, bool) {
	f, ok := ParseNumber(val)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	m := int(f)
	if m < 1 || m > 12 {
		return 0, false
	}
	return m, true
}
