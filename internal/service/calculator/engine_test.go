package calculator

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Matiiass08/FTE-App/internal/config"
	"github.com/Matiiass08/FTE-App/internal/model"
)

const (
	brenda    = "BRENDA OLGUIN QUIROZ"
	stephanie = "STEPHANIE CIFUENTES LUENGO"
	jessica   = "JESSICA ACUNA VELASQUEZ"
	diana     = "DIANA CARRASCO HERRERA"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestEngine() *Engine {
	cfg := config.DefaultConfig()
	return NewEngine(NewOverhead(cfg.Overhead, cfg.Reference.Overrides), cfg.Reference.Roster)
}

func request(resolver string, year, month, day int, score float64) model.RequestRecord {
	d := time.Date(year, time.Month(month), day, 10, 30, 0, 0, time.UTC)
	return model.RequestRecord{
		Resolver:       resolver,
		CompletionDate: &d,
		Year:           year,
		Month:          month,
		Score:          decimal.NewFromFloat(score),
	}
}

func attendance(resolver string, year, month int, days float64) model.AttendanceRecord {
	return model.AttendanceRecord{Resolver: resolver, Year: year, Month: month, DaysWorked: days}
}

func monthlyParams() Params {
	return Params{Year: 2025, OLE: 0.66, HoursPerDay: 7.9}
}

func findRow(rows []model.PersonMonth, resolver string, month int) (model.PersonMonth, bool) {
	for _, r := range rows {
		if r.Resolver == resolver && r.Month == month {
			return r, true
		}
	}
	return model.PersonMonth{}, false
}

func TestMonthlyFormula(t *testing.T) {
	// 10 分钟/日会议，2.35 分钟/日聊天，20 天 => 会议 200、聊天 47
	overhead := NewOverhead(config.OverheadConfig{
		WeeklyMeetings:     []float64{50},
		WorkingDaysPerWeek: 5,
		ChatMinutesPerDay:  2.35,
	}, nil)
	e := NewEngine(overhead, []string{jessica})

	res, err := e.Monthly(
		[]model.RequestRecord{request(jessica, 2025, 3, 4, 60), request(jessica, 2025, 3, 5, 40)},
		[]model.AttendanceRecord{attendance(jessica, 2025, 3, 20)},
		monthlyParams(),
	)
	if err != nil {
		t.Fatalf("Monthly() error: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(res.Rows))
	}

	row := res.Rows[0]
	if !almostEqual(row.MeetingMinutes, 200) || !almostEqual(row.ChatMinutes, 47) {
		t.Fatalf("overhead = %v + %v, want 200 + 47", row.MeetingMinutes, row.ChatMinutes)
	}
	want := (100.0 + 200 + 47) / (7.9 * 60 * 20 * 0.66)
	if !almostEqual(row.FTE, want) {
		t.Errorf("FTE = %v, want %v", row.FTE, want)
	}
	if row.BusinessDays != 21 {
		t.Errorf("BusinessDays = %d, want 21", row.BusinessDays)
	}
}

func TestMonthlyBonusMonth(t *testing.T) {
	e := newTestEngine()
	res, err := e.Monthly(nil, []model.AttendanceRecord{
		attendance(jessica, 2025, 1, 20),
		attendance(jessica, 2025, 2, 20),
	}, monthlyParams())
	if err != nil {
		t.Fatalf("Monthly() error: %v", err)
	}

	jan, _ := findRow(res.Rows, jessica, 1)
	feb, _ := findRow(res.Rows, jessica, 2)
	if !almostEqual(jan.MeetingMinutes, 20*32+60) {
		t.Errorf("January meetings = %v, want 700", jan.MeetingMinutes)
	}
	if !almostEqual(feb.MeetingMinutes, 20*32) {
		t.Errorf("February meetings = %v, want 640", feb.MeetingMinutes)
	}
}

func TestMonthlyGridAndNoCapacity(t *testing.T) {
	e := newTestEngine()
	records := []model.RequestRecord{
		request(jessica, 2025, 2, 3, 120),
		request(diana, 2025, 5, 3, 50), // 出勤表中没有 5 月，丢弃
	}
	att := []model.AttendanceRecord{
		attendance(jessica, 2025, 1, 18),
		attendance(jessica, 2025, 2, 0),
		attendance(diana, 2025, 1, 20),
		attendance(diana, 2024, 2, 15), // 其他年份
	}

	res, err := e.Monthly(records, att, monthlyParams())
	if err != nil {
		t.Fatalf("Monthly() error: %v", err)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(res.Rows), res.Rows)
	}
	if res.Rows[0].Month != 1 || res.Rows[0].Resolver != diana {
		t.Errorf("rows not sorted by month then resolver: %+v", res.Rows[0])
	}

	feb, ok := findRow(res.Rows, jessica, 2)
	if !ok {
		t.Fatalf("expected February row for %s", jessica)
	}
	if feb.FTE != 0 || !feb.NoCapacity {
		t.Errorf("zero-day row: FTE=%v NoCapacity=%v", feb.FTE, feb.NoCapacity)
	}
	if _, ok := findRow(res.Rows, diana, 2); ok {
		t.Error("row with zero days and zero score should be dropped")
	}

	if len(res.Summary) != 2 {
		t.Fatalf("expected 2 summary months, got %d", len(res.Summary))
	}
	if !almostEqual(res.Summary[0].RealCapacity, 38.0/20) {
		t.Errorf("RealCapacity = %v, want 1.9", res.Summary[0].RealCapacity)
	}
}

func TestMonthlyNoAttendanceForYear(t *testing.T) {
	e := newTestEngine()
	_, err := e.Monthly(nil, []model.AttendanceRecord{attendance(jessica, 2024, 1, 20)}, monthlyParams())
	if !errors.Is(err, model.ErrNoRowsForYear) {
		t.Fatalf("want ErrNoRowsForYear, got %v", err)
	}
}

func TestStephanieShorterDay(t *testing.T) {
	e := newTestEngine()
	records := []model.RequestRecord{
		request(stephanie, 2025, 3, 3, 900),
		request(jessica, 2025, 3, 3, 900),
	}
	att := []model.AttendanceRecord{
		attendance(stephanie, 2025, 3, 20),
		attendance(jessica, 2025, 3, 20),
	}

	res, err := e.Monthly(records, att, monthlyParams())
	if err != nil {
		t.Fatalf("Monthly() error: %v", err)
	}
	s, _ := findRow(res.Rows, stephanie, 3)
	j, _ := findRow(res.Rows, jessica, 3)
	if !almostEqual(s.HoursPerDay, 6.9) {
		t.Errorf("Stephanie hours = %v, want 6.9", s.HoursPerDay)
	}
	if s.FTE <= j.FTE {
		t.Errorf("Stephanie FTE %v should exceed peer FTE %v", s.FTE, j.FTE)
	}
}

func TestBrendaChatOverride(t *testing.T) {
	e := newTestEngine()
	att := []model.AttendanceRecord{
		attendance(brenda, 2025, 4, 18),
		attendance(diana, 2025, 4, 18),
	}

	res, err := e.Monthly(nil, att, monthlyParams())
	if err != nil {
		t.Fatalf("Monthly() error: %v", err)
	}
	b, _ := findRow(res.Rows, brenda, 4)
	d, _ := findRow(res.Rows, diana, 4)
	if !almostEqual(b.ChatMinutes, 18*90) || !almostEqual(d.ChatMinutes, 18*47) {
		t.Errorf("chat minutes: brenda=%v diana=%v", b.ChatMinutes, d.ChatMinutes)
	}
	if b.MeetingMinutes != d.MeetingMinutes {
		t.Errorf("meeting minutes should match: %v vs %v", b.MeetingMinutes, d.MeetingMinutes)
	}
}

func TestHeadcount(t *testing.T) {
	tests := []struct {
		name      string
		ftes      []float64
		shrinkage float64
		want      int
	}{
		{"just over", []float64{1.5, 1.51}, 1, 4},
		{"exact", []float64{1, 2}, 1, 3},
		{"no shrinkage", []float64{3.01}, 0, 4},
		{"shrinkage exact", []float64{3.2}, 0.8, 4},
		{"shrinkage up", []float64{3.4}, 0.85, 4},
		{"empty", nil, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := Headcount(tt.ftes, tt.shrinkage)
			if got != tt.want {
				t.Errorf("Headcount(%v, %v) = %d, want %d", tt.ftes, tt.shrinkage, got, tt.want)
			}
		})
	}
}

func TestIdealDemandUsesBusinessDays(t *testing.T) {
	e := newTestEngine()
	p := Params{Year: 2025, OLE: 0.66, HoursPerDay: 7.95, Shrinkage: 0.8}
	res, err := e.IdealDemand([]model.RequestRecord{
		request(jessica, 2025, 1, 10, 300),
		request(diana, 2025, 2, 10, 300),
	}, p)
	if err != nil {
		t.Fatalf("IdealDemand() error: %v", err)
	}
	if res.Variant != model.VariantIdealDemand || len(res.Rows) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}

	jan := res.Rows[0]
	if jan.BusinessDays != 23 {
		t.Fatalf("January business days = %d, want 23", jan.BusinessDays)
	}
	if !almostEqual(jan.MeetingMinutes, 23*32+60) || !almostEqual(jan.ChatMinutes, 23*47) {
		t.Errorf("overhead = %v + %v", jan.MeetingMinutes, jan.ChatMinutes)
	}
	want := (300 + 23*32 + 60 + 23*47) / (7.95 * 60 * 23 * 0.66)
	if !almostEqual(jan.FTE, want) {
		t.Errorf("FTE = %v, want %v", jan.FTE, want)
	}
	if res.Summary[0].Shrinkage != 0.8 {
		t.Errorf("Shrinkage = %v, want 0.8", res.Summary[0].Shrinkage)
	}
}

func TestContingencyHasNoOverhead(t *testing.T) {
	e := newTestEngine()
	p := Params{Year: 2025, OLE: 0.66, HoursPerDay: 7.95, Shrinkage: 0.85}
	records := []model.RequestRecord{
		request(brenda, 2025, 1, 2, 500),
		request(stephanie, 2025, 7, 2, 500),
		request(jessica, 2025, 2, 2, 500),
	}

	res, err := e.Contingency(records, p)
	if err != nil {
		t.Fatalf("Contingency() error: %v", err)
	}
	for _, r := range res.Rows {
		if r.OverheadMinutes() != 0 {
			t.Errorf("%s/%d overhead = %v, want 0", r.Resolver, r.Month, r.OverheadMinutes())
		}
		want := 500 / (r.HoursPerDay * 60 * float64(r.BusinessDays) * 0.66)
		if !almostEqual(r.FTE, want) {
			t.Errorf("%s FTE = %v, want %v", r.Resolver, r.FTE, want)
		}
	}
}

func TestFilterRequests(t *testing.T) {
	e := newTestEngine()
	records := []model.RequestRecord{
		request(jessica, 2025, 1, 2, 10),
		request("OUTSIDER", 2025, 1, 2, 10),
		request(diana, 2024, 1, 2, 10),
	}

	got, err := e.FilterRequests(records, 2025)
	if err != nil {
		t.Fatalf("FilterRequests() error: %v", err)
	}
	if len(got) != 1 || got[0].Resolver != jessica {
		t.Fatalf("unexpected filter result: %+v", got)
	}

	if _, err := e.FilterRequests(records, 2026); !errors.Is(err, model.ErrNoRowsForYear) {
		t.Fatalf("want ErrNoRowsForYear, got %v", err)
	}
}

func TestFilterAggregateCommute(t *testing.T) {
	e := newTestEngine()
	records := []model.RequestRecord{
		request(jessica, 2025, 1, 2, 10.5),
		request(jessica, 2025, 1, 3, 2.5),
		request("OUTSIDER", 2025, 1, 2, 99),
		request(brenda, 2025, 2, 2, 7),
		request("OTRO", 2025, 2, 9, 1),
		request(diana, 2025, 3, 2, 4.25),
	}

	filtered, err := e.FilterRequests(records, 2025)
	if err != nil {
		t.Fatalf("FilterRequests() error: %v", err)
	}
	first := AggregateScores(filtered)
	second := e.KeepRoster(AggregateScores(records))

	if len(first) != len(second) {
		t.Fatalf("aggregate sizes differ: %d vs %d", len(first), len(second))
	}
	for k, v := range first {
		if !v.Equal(second[k]) {
			t.Errorf("%+v: %s vs %s", k, v, second[k])
		}
	}
	if !reflect.DeepEqual(keys(first), keys(second)) {
		t.Error("key sets differ")
	}
}

func keys(m map[model.PersonMonthKey]decimal.Decimal) map[model.PersonMonthKey]bool {
	out := make(map[model.PersonMonthKey]bool, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}

func TestDaily(t *testing.T) {
	e := newTestEngine()
	p := Params{Year: 2025, OLE: 0.66, HoursPerDay: 7.9}
	records := []model.RequestRecord{
		request(jessica, 2025, 1, 6, 20),
		request(jessica, 2025, 1, 6, 30),
		request(brenda, 2025, 1, 6, 10),
		request(stephanie, 2025, 1, 7, 40),
		{Resolver: diana, Year: 2025, Month: 1, Score: decimal.NewFromInt(5)}, // 无日期
	}

	res, err := e.Daily(records, p)
	if err != nil {
		t.Fatalf("Daily() error: %v", err)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("expected 3 person-days, got %d", len(res.Rows))
	}

	b := res.Rows[0]
	if b.Resolver != brenda || !almostEqual(b.LoadMinutes, 10+32+90) {
		t.Errorf("brenda row = %+v", b)
	}
	j := res.Rows[1]
	if !almostEqual(j.LoadMinutes, 50+32+47) {
		t.Errorf("jessica load = %v, want 129", j.LoadMinutes)
	}
	if !almostEqual(j.FTE, 129/(7.9*60*0.66)) {
		t.Errorf("jessica FTE = %v", j.FTE)
	}
	s := res.Rows[2]
	if !almostEqual(s.FTE, (40+32+47)/(6.9*60*0.66)) {
		t.Errorf("stephanie FTE = %v", s.FTE)
	}

	if len(res.Team) != 2 {
		t.Fatalf("expected 2 team days, got %d", len(res.Team))
	}
	team := res.Team[0]
	if !almostEqual(team.LoadMinutes, 132+129) {
		t.Errorf("team load = %v", team.LoadMinutes)
	}
	if !almostEqual(team.FTE, 261/(7.9*60*0.66)) || team.Headcount != 1 {
		t.Errorf("team FTE = %v headcount = %d", team.FTE, team.Headcount)
	}
}

func TestInvalidParams(t *testing.T) {
	e := newTestEngine()
	_, err := e.IdealDemand(nil, Params{Year: 2025, OLE: 2, HoursPerDay: 7.95})
	if !errors.Is(err, model.ErrInvalidParams) {
		t.Fatalf("want ErrInvalidParams, got %v", err)
	}
}
