package calendar

import (
	"maps"
	"strings"
	"time"
)

// BusinessDaysInMonth 当月周一至周五的天数（不含节假日）
func BusinessDaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := 0
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		}
		days++
	}
	return days
}

// Directory 员工代码 -> 标准姓名
type Directory struct {
	codes map[string]string
}

// NewDirectory 创建员工目录（代码表会被复制）
func NewDirectory(codes map[string]string) *Directory {
	return &Directory{codes: maps.Clone(codes)}
}

// Lookup 按代码查姓名，未登记的代码返回 false
func (d *Directory) Lookup(code string) (string, bool) {
	name, ok := d.codes[strings.TrimSpace(code)]
	return name, ok
}

// Names 全部标准姓名
func (d *Directory) Names() []string {
	out := make([]string, 0, len(d.codes))
	for _, name := range d.codes {
		out = append(out, name)
	}
	return out
}
