package calculator

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Matiiass08/FTE-App/internal/model"
	"github.com/Matiiass08/FTE-App/internal/service/calendar"
)

// capacityUnit 产能分母的时间单位
type capacityUnit int

const (
	unitAttendance   capacityUnit = iota // 实际出勤天数
	unitBusinessDays                     // 当月工作日数
	unitDay                              // 单日
)

// policy 各口径的开销与产能规则
type policy struct {
	overhead bool
	bonus    bool
	unit     capacityUnit
}

var policies = map[model.Variant]policy{
	model.VariantMonthly:     {overhead: true, bonus: true, unit: unitAttendance},
	model.VariantDaily:       {overhead: true, bonus: false, unit: unitDay},
	model.VariantIdealDemand: {overhead: true, bonus: true, unit: unitBusinessDays},
	model.VariantContingency: {overhead: false, bonus: false, unit: unitBusinessDays},
}

// Engine FTE 计算引擎
type Engine struct {
	overhead *Overhead
	roster   map[string]struct{}
}

// NewEngine 创建计算引擎，roster 为参与计算的人员名单
func NewEngine(overhead *Overhead, roster []string) *Engine {
	set := make(map[string]struct{}, len(roster))
	for _, name := range roster {
		set[name] = struct{}{}
	}
	return &Engine{overhead: overhead, roster: set}
}

// Overhead 开销模型
func (e *Engine) Overhead() *Overhead {
	return e.overhead
}

// InRoster 是否在人员名单内
func (e *Engine) InRoster(resolver string) bool {
	_, ok := e.roster[resolver]
	return ok
}

// FilterRequests 按年份与人员名单过滤工单；年份过滤后为空返回 NoRowsForYearError
func (e *Engine) FilterRequests(records []model.RequestRecord, year int) ([]model.RequestRecord, error) {
	byYear := make([]model.RequestRecord, 0, len(records))
	for _, r := range records {
		if r.Year == year {
			byYear = append(byYear, r)
		}
	}
	if len(byYear) == 0 {
		return nil, &model.NoRowsForYearError{Table: string(model.TableTickets), Year: year}
	}

	out := byYear[:0:0]
	for _, r := range byYear {
		if e.InRoster(r.Resolver) {
			out = append(out, r)
		}
	}
	return out, nil
}

// AggregateScores 按人员-月份汇总分值
func AggregateScores(records []model.RequestRecord) map[model.PersonMonthKey]decimal.Decimal {
	sums := make(map[model.PersonMonthKey]decimal.Decimal)
	for _, r := range records {
		k := model.PersonMonthKey{Resolver: r.Resolver, Year: r.Year, Month: r.Month}
		sums[k] = sums[k].Add(r.Score)
	}
	return sums
}

// KeepRoster 丢弃名单外人员的汇总
func (e *Engine) KeepRoster(sums map[model.PersonMonthKey]decimal.Decimal) map[model.PersonMonthKey]decimal.Decimal {
	out := make(map[model.PersonMonthKey]decimal.Decimal, len(sums))
	for k, v := range sums {
		if e.InRoster(k.Resolver) {
			out[k] = v
		}
	}
	return out
}

// Headcount 团队 FTE 合计按折算系数放大后向上取整；shrinkage <= 0 视为不折算
func Headcount(ftes []float64, shrinkage float64) (float64, int) {
	total := decimal.Zero
	for _, f := range ftes {
		total = total.Add(decimal.NewFromFloat(f))
	}
	required := total
	if shrinkage > 0 && shrinkage != 1 {
		required = total.Div(decimal.NewFromFloat(shrinkage))
	}
	return total.InexactFloat64(), int(required.Ceil().IntPart())
}

// personMonth 按口径规则计算单个人员-月份
func (e *Engine) personMonth(pol policy, k model.PersonMonthKey, score decimal.Decimal, days float64, p Params) model.PersonMonth {
	prof := e.overhead.Profile(k.Resolver, p.HoursPerDay)
	business := calendar.BusinessDaysInMonth(k.Year, k.Month)

	units := days
	switch pol.unit {
	case unitBusinessDays:
		units = float64(business)
	case unitDay:
		units = 1
	}

	pm := model.PersonMonth{
		Year:         k.Year,
		Month:        k.Month,
		Resolver:     k.Resolver,
		ScoreSum:     score,
		DaysWorked:   days,
		BusinessDays: business,
		HoursPerDay:  prof.HoursPerDay,
	}
	if pol.overhead {
		pm.MeetingMinutes = e.overhead.MonthMeetingMinutes(prof, k.Month, units, pol.bonus)
		pm.ChatMinutes = e.overhead.MonthChatMinutes(prof, units)
	}

	pm.CapacityMinutes = prof.HoursPerDay * 60 * units * p.OLE
	pm.FTE, pm.NoCapacity = ratio(score.InexactFloat64()+pm.OverheadMinutes(), pm.CapacityMinutes)
	return pm
}

// ratio 分母非正时按约定返回 0 并标记
func ratio(load, capacity float64) (float64, bool) {
	if capacity <= 0 {
		return 0, true
	}
	return load / capacity, false
}

// Monthly 月度口径：人员 × 出勤月份网格，分母为实际出勤天数
func (e *Engine) Monthly(records []model.RequestRecord, attendance []model.AttendanceRecord, p Params) (*model.MonthlyResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	days := make(map[model.PersonMonthKey]float64)
	persons := make(map[string]struct{})
	months := make(map[int]struct{})
	for _, a := range attendance {
		if a.Year != 0 && a.Year != p.Year {
			continue
		}
		k := model.PersonMonthKey{Resolver: a.Resolver, Year: p.Year, Month: a.Month}
		days[k] += a.DaysWorked
		persons[a.Resolver] = struct{}{}
		months[a.Month] = struct{}{}
	}
	if len(days) == 0 {
		return nil, &model.NoRowsForYearError{Table: string(model.TableAttendance), Year: p.Year}
	}

	scores := AggregateScores(records)
	pol := policies[model.VariantMonthly]

	rows := make([]model.PersonMonth, 0, len(persons)*len(months))
	for person := range persons {
		for month := range months {
			k := model.PersonMonthKey{Resolver: person, Year: p.Year, Month: month}
			score := scores[k]
			d := days[k]
			if d == 0 && score.IsZero() {
				continue
			}
			rows = append(rows, e.personMonth(pol, k, score, d, p))
		}
	}
	sortPersonMonths(rows)

	return &model.MonthlyResult{
		Variant: model.VariantMonthly,
		Year:    p.Year,
		Rows:    rows,
		Summary: summarize(rows, 1, true),
	}, nil
}

// IdealDemand 理想需求口径：分母为当月工作日数，不依赖出勤表
func (e *Engine) IdealDemand(records []model.RequestRecord, p Params) (*model.MonthlyResult, error) {
	return e.demand(model.VariantIdealDemand, records, p)
}

// Contingency 应急口径：不计任何开销，分母为当月工作日数
func (e *Engine) Contingency(records []model.RequestRecord, p Params) (*model.MonthlyResult, error) {
	return e.demand(model.VariantContingency, records, p)
}

func (e *Engine) demand(v model.Variant, records []model.RequestRecord, p Params) (*model.MonthlyResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	pol := policies[v]
	scores := AggregateScores(records)
	rows := make([]model.PersonMonth, 0, len(scores))
	for k, score := range scores {
		if k.Year != p.Year {
			continue
		}
		rows = append(rows, e.personMonth(pol, k, score, 0, p))
	}
	sortPersonMonths(rows)

	shrinkage := p.Shrinkage
	if shrinkage == 0 {
		shrinkage = 1
	}
	return &model.MonthlyResult{
		Variant: v,
		Year:    p.Year,
		Rows:    rows,
		Summary: summarize(rows, shrinkage, false),
	}, nil
}

// summarize 月度汇总
func summarize(rows []model.PersonMonth, shrinkage float64, withReal bool) []model.MonthSummary {
	type acc struct {
		ftes    []float64
		sumDays float64
		maxDays float64
	}
	byMonth := make(map[int]*acc)
	order := make([]int, 0, 12)
	for _, r := range rows {
		a, ok := byMonth[r.Month]
		if !ok {
			a = &acc{}
			byMonth[r.Month] = a
			order = append(order, r.Month)
		}
		a.ftes = append(a.ftes, r.FTE)
		if r.DaysWorked > 0 {
			a.sumDays += r.DaysWorked
			a.maxDays = max(a.maxDays, r.DaysWorked)
		}
	}
	slices.Sort(order)

	year := 0
	if len(rows) > 0 {
		year = rows[0].Year
	}

	out := make([]model.MonthSummary, 0, len(order))
	for _, m := range order {
		a := byMonth[m]
		total, hc := Headcount(a.ftes, shrinkage)
		s := model.MonthSummary{
			Year:      year,
			Month:     m,
			FTE:       total,
			Shrinkage: shrinkage,
			Headcount: hc,
		}
		if withReal && a.maxDays > 0 {
			s.RealCapacity = a.sumDays / a.maxDays
		}
		out = append(out, s)
	}
	return out
}

func sortPersonMonths(rows []model.PersonMonth) {
	slices.SortFunc(rows, func(a, b model.PersonMonth) int {
		return cmp.Or(
			cmp.Compare(a.Month, b.Month),
			cmp.Compare(a.Resolver, b.Resolver),
		)
	})
}

// Daily 日口径：每个有工单的日期视为完整工作日，单日开销不含加时
func (e *Engine) Daily(records []model.RequestRecord, p Params) (*model.DailyResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	type dayKey struct {
		resolver string
		date     time.Time
	}
	sums := make(map[dayKey]decimal.Decimal)
	for _, r := range records {
		if r.CompletionDate == nil || r.Year != p.Year {
			continue
		}
		k := dayKey{resolver: r.Resolver, date: r.Day()}
		sums[k] = sums[k].Add(r.Score)
	}

	pol := policies[model.VariantDaily]
	rows := make([]model.PersonDay, 0, len(sums))
	for k, score := range sums {
		prof := e.overhead.Profile(k.resolver, p.HoursPerDay)
		row := model.PersonDay{
			Date:     k.date,
			Resolver: k.resolver,
			ScoreSum: score,
		}
		if pol.overhead {
			row.MeetingMinutes = e.overhead.MonthMeetingMinutes(prof, int(k.date.Month()), 1, pol.bonus)
			row.ChatMinutes = e.overhead.MonthChatMinutes(prof, 1)
		}
		row.LoadMinutes = score.InexactFloat64() + row.MeetingMinutes + row.ChatMinutes
		row.CapacityMinutes = prof.HoursPerDay * 60 * p.OLE
		row.FTE, row.NoCapacity = ratio(row.LoadMinutes, row.CapacityMinutes)
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b model.PersonDay) int {
		return cmp.Or(a.Date.Compare(b.Date), cmp.Compare(a.Resolver, b.Resolver))
	})

	return &model.DailyResult{
		Year: p.Year,
		Rows: rows,
		Team: e.teamDays(rows, p),
	}, nil
}

// teamDays 团队日汇总，分母使用标准日工时
func (e *Engine) teamDays(rows []model.PersonDay, p Params) []model.DaySummary {
	capacity := p.HoursPerDay * 60 * p.OLE
	out := make([]model.DaySummary, 0)
	for i := 0; i < len(rows); {
		j := i
		load := 0.0
		for j < len(rows) && rows[j].Date.Equal(rows[i].Date) {
			load += rows[j].LoadMinutes
			j++
		}
		fte, _ := ratio(load, capacity)
		_, hc := Headcount([]float64{fte}, 1)
		out = append(out, model.DaySummary{
			Date:        rows[i].Date,
			LoadMinutes: load,
			FTE:         fte,
			Headcount:   hc,
		})
		i = j
	}
	return out
}
