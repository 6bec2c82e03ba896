package calculator

import (
	"slices"

	"github.com/Matiiass08/FTE-App/internal/config"
)

// Profile 单个员工的日开销与工时
type Profile struct {
	MeetingMinutesPerDay float64 `json:"meetingMinutesPerDay"`
	ChatMinutesPerDay    float64 `json:"chatMinutesPerDay"`
	HoursPerDay          float64 `json:"hoursPerDay"`
}

// Overhead 固定开销模型：标准值 + 按员工身份的例外表 + 指定月份的一次性会议加时
type Overhead struct {
	meetingPerDay float64
	chatPerDay    float64
	bonusMonths   []int
	bonusMinutes  float64
	overrides     map[string]config.EmployeeOverride
}

// NewOverhead 根据配置创建开销模型
func NewOverhead(cfg config.OverheadConfig, overrides []config.EmployeeOverride) *Overhead {
	weekly := 0.0
	for _, m := range cfg.WeeklyMeetings {
		weekly += m
	}
	days := cfg.WorkingDaysPerWeek
	if days <= 0 {
		days = 5
	}

	o := &Overhead{
		meetingPerDay: weekly / float64(days),
		chatPerDay:    cfg.ChatMinutesPerDay,
		bonusMonths:   slices.Clone(cfg.BonusMonths),
		bonusMinutes:  cfg.BonusMinutes,
		overrides:     make(map[string]config.EmployeeOverride, len(overrides)),
	}
	for _, ov := range overrides {
		o.overrides[ov.Name] = ov
	}
	return o
}

// MeetingMinutesPerDay 标准日会议分钟数
func (o *Overhead) MeetingMinutesPerDay() float64 {
	return o.meetingPerDay
}

// ChatMinutesPerDay 标准日聊天支持分钟数
func (o *Overhead) ChatMinutesPerDay() float64 {
	return o.chatPerDay
}

// ChatOverrides 聊天分钟数例外（姓名 -> 分钟/日）
func (o *Overhead) ChatOverrides() map[string]float64 {
	out := make(map[string]float64)
	for name, ov := range o.overrides {
		if ov.ChatMinutesPerDay != nil {
			out[name] = *ov.ChatMinutesPerDay
		}
	}
	return out
}

// Profile 查员工的日开销与工时；baseHours 为本次计算的合同日工时
func (o *Overhead) Profile(resolver string, baseHours float64) Profile {
	p := Profile{
		MeetingMinutesPerDay: o.meetingPerDay,
		ChatMinutesPerDay:    o.chatPerDay,
		HoursPerDay:          baseHours,
	}
	if ov, ok := o.overrides[resolver]; ok {
		if ov.ChatMinutesPerDay != nil {
			p.ChatMinutesPerDay = *ov.ChatMinutesPerDay
		}
		p.HoursPerDay += ov.HoursDelta
	}
	return p
}

// IsBonusMonth 是否为会议加时月份
func (o *Overhead) IsBonusMonth(month int) bool {
	return slices.Contains(o.bonusMonths, month)
}

// MonthMeetingMinutes 月会议分钟数：天数 × 日会议分钟；加时月份且有出勤时一次性加 bonusMinutes
func (o *Overhead) MonthMeetingMinutes(p Profile, month int, days float64, withBonus bool) float64 {
	minutes := days * p.MeetingMinutesPerDay
	if withBonus && days > 0 && o.IsBonusMonth(month) {
		minutes += o.bonusMinutes
	}
	return minutes
}

// MonthChatMinutes 月聊天支持分钟数
func (o *Overhead) MonthChatMinutes(p Profile, days float64) float64 {
	return days * p.ChatMinutesPerDay
}
