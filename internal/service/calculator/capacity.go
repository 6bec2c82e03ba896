package calculator

import (
	"cmp"
	"slices"

	"github.com/Matiiass08/FTE-App/internal/model"
)

// Capacity 出勤明细：人员 × 月份出勤天数与每月实际可用人力
// 年份列缺失（Year == 0）的记录不做年份过滤
func (e *Engine) Capacity(attendance []model.AttendanceRecord, year int) (*model.CapacityResult, error) {
	days := make(map[model.PersonMonthKey]float64)
	for _, a := range attendance {
		if a.Year != 0 && a.Year != year {
			continue
		}
		days[model.PersonMonthKey{Resolver: a.Resolver, Month: a.Month}] += a.DaysWorked
	}
	if len(days) == 0 {
		return nil, &model.NoRowsForYearError{Table: string(model.TableAttendance), Year: year}
	}

	res := &model.CapacityResult{
		Year:                 year,
		MeetingMinutesPerDay: e.overhead.MeetingMinutesPerDay(),
		ChatMinutesPerDay:    e.overhead.ChatMinutesPerDay(),
		ChatOverrides:        e.overhead.ChatOverrides(),
	}

	byMonth := make(map[int]*model.CapacityRow)
	for k, d := range days {
		res.Days = append(res.Days, model.PersonMonthDays{Resolver: k.Resolver, Month: k.Month, DaysWorked: d})
		if d <= 0 {
			continue
		}
		row, ok := byMonth[k.Month]
		if !ok {
			row = &model.CapacityRow{Month: k.Month}
			byMonth[k.Month] = row
		}
		row.TotalDays += d
		row.MaxDays = max(row.MaxDays, d)
		row.ActivePersons++
	}

	slices.SortFunc(res.Days, func(a, b model.PersonMonthDays) int {
		return cmp.Or(cmp.Compare(a.Resolver, b.Resolver), cmp.Compare(a.Month, b.Month))
	})
	for _, row := range byMonth {
		if row.MaxDays > 0 {
			row.AvailablePersons = row.TotalDays / row.MaxDays
		}
		res.Months = append(res.Months, *row)
	}
	slices.SortFunc(res.Months, func(a, b model.CapacityRow) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return res, nil
}
