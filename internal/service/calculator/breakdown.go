package calculator

import (
	"slices"

	"github.com/Matiiass08/FTE-App/internal/config"
	"github.com/Matiiass08/FTE-App/internal/model"
)

// 固定分桶名称
const (
	BucketOperation = "operation"
	BucketMeetings  = "meetings"
	BucketFree      = "free_capacity"
)

// Breakdown 将月度口径的理论产能分摊到作业、会议、各项宽放与剩余空闲
// 理论产能 = 日工时 × 60 × 出勤天数（不乘 OLE）；months 为空表示全年
func Breakdown(rows []model.PersonMonth, allowances []config.AllowanceConfig, months []int) *model.BreakdownResult {
	res := &model.BreakdownResult{Months: slices.Clone(months)}

	for _, pm := range rows {
		if len(months) > 0 && !slices.Contains(months, pm.Month) {
			continue
		}
		res.Year = pm.Year

		row := model.BreakdownRow{
			Year:            pm.Year,
			Month:           pm.Month,
			Resolver:        pm.Resolver,
			DaysWorked:      pm.DaysWorked,
			CapacityMinutes: pm.HoursPerDay * 60 * pm.DaysWorked,
		}
		row.Buckets = append(row.Buckets,
			model.BucketMinutes{Name: BucketOperation, Minutes: pm.ScoreSum.InexactFloat64() + pm.ChatMinutes},
			model.BucketMinutes{Name: BucketMeetings, Minutes: pm.MeetingMinutes},
		)
		for _, a := range allowances {
			row.Buckets = append(row.Buckets, model.BucketMinutes{Name: a.Name, Minutes: pm.DaysWorked * a.MinutesPerDay})
		}

		used := 0.0
		for _, b := range row.Buckets {
			used += b.Minutes
		}
		row.FreeCapacity = max(0, row.CapacityMinutes-used)
		row.Overtime = used > row.CapacityMinutes
		res.Rows = append(res.Rows, row)
	}

	res.Shares = shares(res.Rows)
	return res
}

// shares 团队层面各分桶占比（含空闲产能）
func shares(rows []model.BreakdownRow) []model.BucketShare {
	var out []model.BucketShare
	index := make(map[string]int)
	add := func(name string, minutes float64) {
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, model.BucketShare{Name: name})
		}
		out[i].Minutes += minutes
	}

	for _, r := range rows {
		for _, b := range r.Buckets {
			add(b.Name, b.Minutes)
		}
		add(BucketFree, r.FreeCapacity)
	}

	total := 0.0
	for _, s := range out {
		total += s.Minutes
	}
	if total > 0 {
		for i := range out {
			out[i].Percent = 100 * out[i].Minutes / total
		}
	}
	return out
}
