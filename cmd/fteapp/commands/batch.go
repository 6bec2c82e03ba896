package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Matiiass08/FTE-App/internal/model"
	"github.com/Matiiass08/FTE-App/internal/service/calculator"
	"github.com/Matiiass08/FTE-App/internal/service/excel"
	"github.com/Matiiass08/FTE-App/internal/service/store"
	"github.com/Matiiass08/FTE-App/internal/service/workflow"
	"github.com/Matiiass08/FTE-App/internal/util"
)

// batchFlags 批量计算参数
type batchFlags struct {
	tickets    string
	weights    string
	attendance string
	year       int
	ole        float64
	hours      float64
	shrinkage  float64
	months     []int
	out        string
}

func (f *batchFlags) paths() map[model.Table]string {
	paths := make(map[model.Table]string)
	if f.tickets != "" {
		paths[model.TableTickets] = f.tickets
	}
	if f.weights != "" {
		paths[model.TableWeights] = f.weights
	}
	if f.attendance != "" {
		paths[model.TableAttendance] = f.attendance
	}
	return paths
}

func (f *batchFlags) params() calculator.Params {
	return calculator.Params{
		Year:        f.year,
		OLE:         f.ole,
		HoursPerDay: f.hours,
		Shrinkage:   f.shrinkage,
		Months:      f.months,
	}
}

func init() {
	cmds := []struct {
		kind  model.ResultKind
		short string
	}{
		{model.KindValidation, "校验工单类型权重并导出打分明细"},
		{model.KindMonthly, "月度 FTE（分母为实际出勤天数）"},
		{model.KindDaily, "日 FTE"},
		{model.KindIdealDemand, "理想需求 FTE（分母为当月工作日）"},
		{model.KindContingency, "应急 FTE（不计开销）"},
		{model.KindBreakdown, "时间分解"},
		{model.KindCapacity, "出勤天数与实际可用人力"},
	}
	for _, c := range cmds {
		rootCmd.AddCommand(newBatchCmd(c.kind, c.short))
	}
}

func newBatchCmd(kind model.ResultKind, short string) *cobra.Command {
	flags := &batchFlags{}
	cmd := &cobra.Command{
		Use:   string(kind),
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runBatch(ctx, cmd.OutOrStdout(), kind, flags)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&flags.tickets, "tickets", "", "工单明细 Excel")
	fs.StringVar(&flags.weights, "weights", "", "工单类型权重 Excel")
	fs.StringVar(&flags.attendance, "attendance", "", "出勤天数 Excel")
	fs.IntVar(&flags.year, "year", 0, "目标年份（默认取配置）")
	fs.StringVarP(&flags.out, "out", "o", ".", "导出目录")
	if kind != model.KindValidation && kind != model.KindCapacity {
		fs.Float64Var(&flags.ole, "ole", 0, "效率系数 OLE（默认取配置）")
		fs.Float64Var(&flags.hours, "hours", 0, "合同日工时（默认取配置）")
		fs.Float64Var(&flags.shrinkage, "shrinkage", 0, "人数折算系数（默认取配置）")
	}
	if kind == model.KindBreakdown {
		fs.IntSliceVar(&flags.months, "months", nil, "只统计指定月份，如 --months 1,2,3")
	}
	return cmd
}

func runBatch(ctx context.Context, out io.Writer, kind model.ResultKind, flags *batchFlags) error {
	runner := workflow.NewRunner(cfg, store.NewMemoryStore())

	in, err := runner.LoadInputs(ctx, flags.paths())
	if err != nil {
		return err
	}

	var res any
	p := flags.params()
	switch kind {
	case model.KindValidation:
		res, err = runner.Validate(ctx, in)
	case model.KindMonthly:
		res, err = runner.Monthly(ctx, in, p)
	case model.KindDaily:
		res, err = runner.Daily(ctx, in, p)
	case model.KindIdealDemand:
		res, err = runner.IdealDemand(ctx, in, p)
	case model.KindContingency:
		res, err = runner.Contingency(ctx, in, p)
	case model.KindBreakdown:
		res, err = runner.Breakdown(ctx, in, p)
	case model.KindCapacity:
		res, err = runner.Capacity(ctx, in, flags.year)
	}
	if err != nil {
		return err
	}

	if err := printSummary(out, res); err != nil {
		return err
	}

	f, name, err := excel.NewExporter().Export(kind, res)
	if err != nil {
		// 校验未全部命中时没有可导出的明细
		if kind == model.KindValidation {
			log.Warn().Err(err).Msg("skip export")
			return nil
		}
		return err
	}
	defer f.Close()

	if err := os.MkdirAll(flags.out, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(flags.out, name)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	fmt.Fprintf(out, "\n已导出: %s\n", path)
	return nil
}

// printSummary 控制台摘要
func printSummary(out io.Writer, res any) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	switch r := res.(type) {
	case *model.ValidationResult:
		fmt.Fprintf(w, "工单行数\t%d\n", r.TotalRows)
		if !r.ResolverColumnFound {
			fmt.Fprintln(w, "未找到处理人列，未按名单过滤")
		}
		if r.Complete {
			fmt.Fprintln(w, "全部工单类型均已匹配权重")
			break
		}
		fmt.Fprintf(w, "未匹配行数\t%d\n\n", r.MissingRows)
		fmt.Fprintln(w, "工单类型\t行数")
		for _, m := range r.Missing {
			fmt.Fprintf(w, "%s\t%d\n", m.RequestType, m.Count)
		}
	case *model.MonthlyResult:
		fmt.Fprintf(w, "%s %d\n", r.Variant, r.Year)
		fmt.Fprintln(w, "月份\tFTE\t折算系数\t所需人数\t实际可用人力")
		for _, s := range r.Summary {
			fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\t%.2f\n", s.Month, util.FormatFTE(s.FTE), s.Shrinkage, s.Headcount, s.RealCapacity)
		}
	case *model.DailyResult:
		fmt.Fprintf(w, "daily %d\n", r.Year)
		fmt.Fprintln(w, "日期\t负荷\tFTE\t所需人数")
		for _, d := range r.Team {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", d.Date.Format("2006-01-02"), util.FormatMinutes(d.LoadMinutes), util.FormatFTE(d.FTE), d.Headcount)
		}
	case *model.BreakdownResult:
		fmt.Fprintf(w, "breakdown %d\n", r.Year)
		fmt.Fprintln(w, "分桶\t时长\t占比")
		for _, s := range r.Shares {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, util.FormatMinutes(s.Minutes), util.FormatPercent(s.Percent))
		}
	case *model.CapacityResult:
		fmt.Fprintf(w, "capacity %d\n", r.Year)
		if !r.YearColumnFound {
			fmt.Fprintln(w, "出勤表无年份列，已统计全部行")
		}
		fmt.Fprintln(w, "月份\t出勤人数\t总天数\t最大天数\t实际可用人力")
		for _, m := range r.Months {
			fmt.Fprintf(w, "%d\t%d\t%.1f\t%.1f\t%.2f\n", m.Month, m.ActivePersons, m.TotalDays, m.MaxDays, m.AvailablePersons)
		}
	}

	return w.Flush()
}
