package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant FTE 计算口径
type Variant string

const (
	VariantMonthly     Variant = "monthly"
	VariantDaily       Variant = "daily"
	VariantIdealDemand Variant = "ideal"
	VariantContingency Variant = "contingency"
)

// ResultKind 缓存/导出的结果类型
type ResultKind string

const (
	KindValidation  ResultKind = "validation"
	KindMonthly     ResultKind = "monthly"
	KindDaily       ResultKind = "daily"
	KindIdealDemand ResultKind = "ideal"
	KindContingency ResultKind = "contingency"
	KindBreakdown   ResultKind = "breakdown"
	KindCapacity    ResultKind = "capacity"
)

// ResultKinds 全部结果类型
var ResultKinds = []ResultKind{
	KindValidation, KindMonthly, KindDaily, KindIdealDemand,
	KindContingency, KindBreakdown, KindCapacity,
}

// ParseResultKind 解析结果类型
func ParseResultKind(s string) (ResultKind, bool) {
	for _, k := range ResultKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// PersonMonth 人员-月份聚合（核心派生实体）
type PersonMonth struct {
	Year            int             `json:"year"`
	Month           int             `json:"month"`
	Resolver        string          `json:"resolver"`
	ScoreSum        decimal.Decimal `json:"scoreSum"`
	DaysWorked      float64         `json:"daysWorked"`
	BusinessDays    int             `json:"businessDays"`
	MeetingMinutes  float64         `json:"meetingMinutes"`
	ChatMinutes     float64         `json:"chatMinutes"`
	HoursPerDay     float64         `json:"hoursPerDay"`
	CapacityMinutes float64         `json:"capacityMinutes"`
	FTE             float64         `json:"fte"`
	NoCapacity      bool            `json:"noCapacity"` // 分母为 0，FTE 按约定记 0
}

// OverheadMinutes 会议 + 聊天开销
func (p PersonMonth) OverheadMinutes() float64 {
	return p.MeetingMinutes + p.ChatMinutes
}

// PersonMonthKey 人员-月份键
type PersonMonthKey struct {
	Resolver string
	Year     int
	Month    int
}

// MonthSummary 月度团队汇总
type MonthSummary struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	FTE          float64 `json:"fte"`
	Shrinkage    float64 `json:"shrinkage"` // 1 表示不折算
	Headcount    int     `json:"headcount"` // ceil(FTE / Shrinkage)
	RealCapacity float64 `json:"realCapacity"`
}

// MonthlyResult 月度口径结果（Monthly / IdealDemand / Contingency）
type MonthlyResult struct {
	RunID       string         `json:"runId"`
	Variant     Variant        `json:"variant"`
	Year        int            `json:"year"`
	Rows        []PersonMonth  `json:"rows"`
	Summary     []MonthSummary `json:"summary"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// PersonDay 人员-日聚合
type PersonDay struct {
	Date            time.Time       `json:"date"`
	Resolver        string          `json:"resolver"`
	ScoreSum        decimal.Decimal `json:"scoreSum"`
	MeetingMinutes  float64         `json:"meetingMinutes"`
	ChatMinutes     float64         `json:"chatMinutes"`
	LoadMinutes     float64         `json:"loadMinutes"`
	CapacityMinutes float64         `json:"capacityMinutes"`
	FTE             float64         `json:"fte"`
	NoCapacity      bool            `json:"noCapacity"`
}

// DaySummary 团队日汇总
type DaySummary struct {
	Date        time.Time `json:"date"`
	LoadMinutes float64   `json:"loadMinutes"`
	FTE         float64   `json:"fte"`
	Headcount   int       `json:"headcount"`
}

// DailyResult 日口径结果
type DailyResult struct {
	RunID       string       `json:"runId"`
	Year        int          `json:"year"`
	Rows        []PersonDay  `json:"rows"`
	Team        []DaySummary `json:"team"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

// MissingWeight 未命中权重的工单类型
type MissingWeight struct {
	RequestType string `json:"requestType"`
	Count       int    `json:"count"`
}

// ValidationResult 权重校验结果
type ValidationResult struct {
	RunID               string          `json:"runId"`
	TotalRows           int             `json:"totalRows"`
	ResolverColumnFound bool            `json:"resolverColumnFound"`
	Missing             []MissingWeight `json:"missing"`
	MissingRows         int             `json:"missingRows"`
	Complete            bool            `json:"complete"`
	Headers             []string        `json:"headers"`
	Scored              []RequestRecord `json:"scored"` // 仅在全部命中时填充
	ScoredCells         [][]string      `json:"-"`
	GeneratedAt         time.Time       `json:"generatedAt"`
}

// BucketMinutes 时间分解中的单个分桶
type BucketMinutes struct {
	Name    string  `json:"name"`
	Minutes float64 `json:"minutes"`
}

// BreakdownRow 人员-月份时间分解
type BreakdownRow struct {
	Year            int             `json:"year"`
	Month           int             `json:"month"`
	Resolver        string          `json:"resolver"`
	DaysWorked      float64         `json:"daysWorked"`
	CapacityMinutes float64         `json:"capacityMinutes"`
	Buckets         []BucketMinutes `json:"buckets"` // 作业、会议、各项宽放（不含空闲）
	FreeCapacity    float64         `json:"freeCapacity"`
	Overtime        bool            `json:"overtime"` // 分桶合计超过理论产能
}

// Bucket 按名称取分桶分钟数
func (r BreakdownRow) Bucket(name string) float64 {
	for _, b := range r.Buckets {
		if b.Name == name {
			return b.Minutes
		}
	}
	return 0
}

// BucketShare 团队层面的分桶占比
type BucketShare struct {
	Name    string  `json:"name"`
	Minutes float64 `json:"minutes"`
	Percent float64 `json:"percent"`
}

// BreakdownResult 时间分解结果
type BreakdownResult struct {
	RunID       string         `json:"runId"`
	Year        int            `json:"year"`
	Months      []int          `json:"months"` // 为空表示全年
	Rows        []BreakdownRow `json:"rows"`
	Shares      []BucketShare  `json:"shares"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// PersonMonthDays 人员-月份出勤天数
type PersonMonthDays struct {
	Resolver   string  `json:"resolver"`
	Month      int     `json:"month"`
	DaysWorked float64 `json:"daysWorked"`
}

// CapacityRow 月度实际可用人力
type CapacityRow struct {
	Month            int     `json:"month"`
	TotalDays        float64 `json:"totalDays"`
	MaxDays          float64 `json:"maxDays"`
	ActivePersons    int     `json:"activePersons"`
	AvailablePersons float64 `json:"availablePersons"` // TotalDays / MaxDays
}

// CapacityResult 出勤明细结果
type CapacityResult struct {
	RunID                string             `json:"runId"`
	Year                 int                `json:"year"`
	YearColumnFound      bool               `json:"yearColumnFound"`
	Days                 []PersonMonthDays  `json:"days"`
	Months               []CapacityRow      `json:"months"`
	MeetingMinutesPerDay float64            `json:"meetingMinutesPerDay"`
	ChatMinutesPerDay    float64            `json:"chatMinutesPerDay"`
	ChatOverrides        map[string]float64 `json:"chatOverrides"`
	GeneratedAt          time.Time          `json:"generatedAt"`
}
