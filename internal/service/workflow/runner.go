package workflow

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Matiiass08/FTE-App/internal/config"
	"github.com/Matiiass08/FTE-App/internal/metrics"
	"github.com/Matiiass08/FTE-App/internal/model"
	"github.com/Matiiass08/FTE-App/internal/parser"
	"github.com/Matiiass08/FTE-App/internal/service/calculator"
	"github.com/Matiiass08/FTE-App/internal/service/calendar"
	"github.com/Matiiass08/FTE-App/internal/service/scoring"
	"github.com/Matiiass08/FTE-App/internal/service/store"
)

// Runner 工作流编排：读取输入、打分、调用计算引擎、缓存结果
type Runner struct {
	cfg        *config.AppConfig
	normalizer *parser.Normalizer
	directory  *calendar.Directory
	engine     *calculator.Engine
	store      *store.MemoryStore
	logger     zerolog.Logger

	// Progress 进度回调，可为 nil
	Progress func(ProgressEvent)
}

// NewRunner 创建工作流；参考数据在此注入到各组件，st 为 nil 时不缓存结果
func NewRunner(cfg *config.AppConfig, st *store.MemoryStore) *Runner {
	ref := cfg.Reference.Clone()
	overhead := calculator.NewOverhead(cfg.Overhead, ref.Overrides)
	return &Runner{
		cfg:        cfg,
		normalizer: parser.NewNormalizer(ref.Aliases),
		directory:  calendar.NewDirectory(ref.EmployeeCodes),
		engine:     calculator.NewEngine(overhead, ref.Roster),
		store:      st,
		logger:     log.With().Str("component", "workflow").Logger(),
	}
}

// Config 当前配置
func (r *Runner) Config() *config.AppConfig {
	return r.cfg
}

// Store 结果缓存
func (r *Runner) Store() *store.MemoryStore {
	return r.store
}

// Directory 员工目录
func (r *Runner) Directory() *calendar.Directory {
	return r.directory
}

// Defaults 各口径的默认参数
func (r *Runner) Defaults(kind model.ResultKind) calculator.Params {
	c := r.cfg.Calc
	p := calculator.Params{Year: c.TargetYear, OLE: c.OLE}
	switch kind {
	case model.KindMonthly:
		p.HoursPerDay = c.Hours.Monthly
	case model.KindDaily:
		p.HoursPerDay = c.Hours.Daily
	case model.KindIdealDemand:
		p.HoursPerDay = c.Hours.Ideal
		p.Shrinkage = c.ShrinkageIdeal
	case model.KindContingency:
		p.HoursPerDay = c.Hours.Contingency
		p.Shrinkage = c.ShrinkageContingency
	case model.KindBreakdown:
		p.HoursPerDay = c.Hours.Breakdown
	default:
		p.HoursPerDay = c.Hours.Monthly
	}
	return p
}

// WithDefaults 零值字段取默认值
func (r *Runner) WithDefaults(kind model.ResultKind, p calculator.Params) calculator.Params {
	d := r.Defaults(kind)
	if p.Year == 0 {
		p.Year = d.Year
	}
	if p.OLE == 0 {
		p.OLE = d.OLE
	}
	if p.HoursPerDay == 0 {
		p.HoursPerDay = d.HoursPerDay
	}
	if p.Shrinkage == 0 {
		p.Shrinkage = d.Shrinkage
	}
	return p
}

// Validate 权重校验工作流
func (r *Runner) Validate(ctx context.Context, in *Inputs) (*model.ValidationResult, error) {
	return run(ctx, r, model.KindValidation, func() (*model.ValidationResult, error) {
		if err := in.Require(model.TableTickets, model.TableWeights); err != nil {
			return nil, err
		}
		reportProgress(r.Progress, string(model.KindValidation), 30, "scoring")
		resolver := scoring.NewResolver(r.normalizer, in.Weights, r.cfg.Calc.ScoreConstant)
		res := scoring.Validate(in.Tickets, resolver, r.cfg.Reference.Roster)
		metrics.UnresolvedRequestTypes.Set(float64(len(res.Missing)))
		if !res.ResolverColumnFound {
			r.logger.Warn().Msg("resolver column not found, roster filter skipped")
		}
		if !res.Complete {
			r.logger.Warn().
				Int("types", len(res.Missing)).
				Int("rows", res.MissingRows).
				Msg("request types without weight")
		}
		return res, nil
	}, func(res *model.ValidationResult, id string, at time.Time) {
		res.RunID, res.GeneratedAt = id, at
	})
}

// Monthly 月度口径
func (r *Runner) Monthly(ctx context.Context, in *Inputs, p calculator.Params) (*model.MonthlyResult, error) {
	p = r.WithDefaults(model.KindMonthly, p)
	return run(ctx, r, model.KindMonthly, func() (*model.MonthlyResult, error) {
		if err := in.Require(model.Tables...); err != nil {
			return nil, err
		}
		records, err := r.requests(model.KindMonthly, in, p.Year)
		if err != nil {
			return nil, err
		}
		reportProgress(r.Progress, string(model.KindMonthly), 60, "overhead")
		return r.engine.Monthly(records, in.Attendance.Records, p)
	}, stampMonthly)
}

// IdealDemand 理想需求口径
func (r *Runner) IdealDemand(ctx context.Context, in *Inputs, p calculator.Params) (*model.MonthlyResult, error) {
	p = r.WithDefaults(model.KindIdealDemand, p)
	return run(ctx, r, model.KindIdealDemand, func() (*model.MonthlyResult, error) {
		if err := in.Require(model.TableTickets, model.TableWeights); err != nil {
			return nil, err
		}
		records, err := r.requests(model.KindIdealDemand, in, p.Year)
		if err != nil {
			return nil, err
		}
		return r.engine.IdealDemand(records, p)
	}, stampMonthly)
}

// Contingency 应急口径
func (r *Runner) Contingency(ctx context.Context, in *Inputs, p calculator.Params) (*model.MonthlyResult, error) {
	p = r.WithDefaults(model.KindContingency, p)
	return run(ctx, r, model.KindContingency, func() (*model.MonthlyResult, error) {
		if err := in.Require(model.TableTickets, model.TableWeights); err != nil {
			return nil, err
		}
		records, err := r.requests(model.KindContingency, in, p.Year)
		if err != nil {
			return nil, err
		}
		return r.engine.Contingency(records, p)
	}, stampMonthly)
}

// Daily 日口径
func (r *Runner) Daily(ctx context.Context, in *Inputs, p calculator.Params) (*model.DailyResult, error) {
	p = r.WithDefaults(model.KindDaily, p)
	return run(ctx, r, model.KindDaily, func() (*model.DailyResult, error) {
		if err := in.Require(model.TableTickets, model.TableWeights); err != nil {
			return nil, err
		}
		records, err := r.requests(model.KindDaily, in, p.Year)
		if err != nil {
			return nil, err
		}
		reportProgress(r.Progress, string(model.KindDaily), 50, "daily load")
		return r.engine.Daily(records, p)
	}, func(res *model.DailyResult, id string, at time.Time) {
		res.RunID, res.GeneratedAt = id, at
	})
}

// Breakdown 时间分解：以月度口径为基础（工时取分解口径默认值）
func (r *Runner) Breakdown(ctx context.Context, in *Inputs, p calculator.Params) (*model.BreakdownResult, error) {
	p = r.WithDefaults(model.KindBreakdown, p)
	return run(ctx, r, model.KindBreakdown, func() (*model.BreakdownResult, error) {
		if err := in.Require(model.Tables...); err != nil {
			return nil, err
		}
		records, err := r.requests(model.KindBreakdown, in, p.Year)
		if err != nil {
			return nil, err
		}
		monthly, err := r.engine.Monthly(records, in.Attendance.Records, p)
		if err != nil {
			return nil, err
		}
		reportProgress(r.Progress, string(model.KindBreakdown), 85, "allocating buckets")
		res := calculator.Breakdown(monthly.Rows, r.cfg.Allowances, p.Months)
		res.Year = p.Year
		return res, nil
	}, func(res *model.BreakdownResult, id string, at time.Time) {
		res.RunID, res.GeneratedAt = id, at
	})
}

// Capacity 出勤明细
func (r *Runner) Capacity(ctx context.Context, in *Inputs, year int) (*model.CapacityResult, error) {
	if year == 0 {
		year = r.cfg.Calc.TargetYear
	}
	return run(ctx, r, model.KindCapacity, func() (*model.CapacityResult, error) {
		if err := in.Require(model.TableAttendance); err != nil {
			return nil, err
		}
		if !in.Attendance.YearColumnFound {
			r.logger.Warn().Msg("attendance has no year column, showing all rows")
		}
		res, err := r.engine.Capacity(in.Attendance.Records, year)
		if err != nil {
			return nil, err
		}
		res.YearColumnFound = in.Attendance.YearColumnFound
		return res, nil
	}, func(res *model.CapacityResult, id string, at time.Time) {
		res.RunID, res.GeneratedAt = id, at
	})
}

// requests 打分并按年份、名单过滤；日期列与处理人列在此成为必需
func (r *Runner) requests(kind model.ResultKind, in *Inputs, year int) ([]model.RequestRecord, error) {
	if in.Tickets.DateColumn == "" {
		return nil, &model.ColumnNotFoundError{Table: string(model.TableTickets), Column: parser.DateColumn.Logical}
	}
	if in.Tickets.ResolverColumn == "" {
		return nil, &model.ColumnNotFoundError{Table: string(model.TableTickets), Column: parser.ResolverColumn.Logical}
	}

	reportProgress(r.Progress, string(kind), 30, "scoring")
	resolver := scoring.NewResolver(r.normalizer, in.Weights, r.cfg.Calc.ScoreConstant)
	records := resolver.Score(in.Tickets.Rows)

	missing := scoring.Diagnostics(records)
	metrics.UnresolvedRequestTypes.Set(float64(len(missing)))
	if len(missing) > 0 {
		r.logger.Warn().
			Str("kind", string(kind)).
			Int("types", len(missing)).
			Msg("request types without weight scored with constant only")
	}

	return r.engine.FilterRequests(records, year)
}

func stampMonthly(res *model.MonthlyResult, id string, at time.Time) {
	res.RunID, res.GeneratedAt = id, at
}

// run 统一的执行包装：计时、日志、指标、缓存；失败时不覆盖已缓存结果
func run[T any](ctx context.Context, r *Runner, kind model.ResultKind, fn func() (T, error), stamp func(T, string, time.Time)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	start := time.Now()
	reportProgress(r.Progress, string(kind), 10, "start")

	res, err := fn()
	elapsed := time.Since(start)
	metrics.RunDurationSeconds.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
	if err != nil {
		metrics.RunsTotal.WithLabelValues(string(kind), "error").Inc()
		r.logger.Error().Err(err).Str("kind", string(kind)).Msg("workflow failed")
		var zero T
		return zero, fmt.Errorf("%s: %w", kind, err)
	}

	id := uuid.New().String()
	stamp(res, id, time.Now())
	metrics.RunsTotal.WithLabelValues(string(kind), "ok").Inc()
	recordHeadcount(kind, res)
	if r.store != nil {
		r.store.SetResult(kind, res)
	}

	reportProgress(r.Progress, string(kind), 100, "done")
	r.logger.Info().
		Str("kind", string(kind)).
		Str("run_id", id).
		Dur("duration", elapsed).
		Msg("workflow finished")
	return res, nil
}

func recordHeadcount(kind model.ResultKind, res any) {
	m, ok := res.(*model.MonthlyResult)
	if !ok {
		return
	}
	for _, s := range m.Summary {
		metrics.HeadcountRequired.WithLabelValues(string(kind), strconv.Itoa(s.Month)).Set(float64(s.Headcount))
	}
}
