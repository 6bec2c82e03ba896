package workflow

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Matiiass08/FTE-App/internal/metrics"
	"github.com/Matiiass08/FTE-App/internal/model"
	"github.com/Matiiass08/FTE-App/internal/service/excel"
)

// Inputs 已解析的输入表，未加载的表为 nil
type Inputs struct {
	Tickets    *model.TicketLog
	Weights    []model.WeightEntry
	Attendance *model.AttendanceTable
}

// Has 是否已加载某张表
func (in *Inputs) Has(t model.Table) bool {
	switch t {
	case model.TableTickets:
		return in.Tickets != nil
	case model.TableWeights:
		return in.Weights != nil
	case model.TableAttendance:
		return in.Attendance != nil
	}
	return false
}

// Require 检查必需输入，缺失时返回 ErrMissingInput
func (in *Inputs) Require(tables ...model.Table) error {
	for _, t := range tables {
		if in == nil || !in.Has(t) {
			return fmt.Errorf("%w: %s", model.ErrMissingInput, t)
		}
	}
	return nil
}

// LoadInputs 并发打开并解析输入文件（表 -> 路径），任一失败即返回
func (r *Runner) LoadInputs(ctx context.Context, paths map[model.Table]string) (*Inputs, error) {
	in := &Inputs{}
	g, ctx := errgroup.WithContext(ctx)

	for table, path := range paths {
		if path == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			wb, err := excel.OpenFile(path)
			if err != nil {
				return err
			}
			defer wb.Close()

			switch table {
			case model.TableTickets:
				log, err := excel.ReadTickets(wb)
				if err != nil {
					return err
				}
				in.Tickets = log
				metrics.RowsLoaded.WithLabelValues(string(table)).Set(float64(len(log.Rows)))
			case model.TableWeights:
				entries, err := excel.ReadWeights(wb)
				if err != nil {
					return err
				}
				in.Weights = entries
				metrics.RowsLoaded.WithLabelValues(string(table)).Set(float64(len(entries)))
			case model.TableAttendance:
				att, err := excel.ReadAttendance(wb, r.directory)
				if err != nil {
					return err
				}
				in.Attendance = att
				metrics.RowsLoaded.WithLabelValues(string(table)).Set(float64(len(att.Records)))
				metrics.UnmappedEmployeeCodes.Set(float64(len(att.UnmappedCodes)))
				if len(att.UnmappedCodes) > 0 {
					r.logger.Debug().
						Strs("codes", att.UnmappedCodes).
						Msg("attendance rows with unmapped employee codes dropped")
				}
			default:
				return fmt.Errorf("unknown table %q", table)
			}

			r.logger.Info().
				Str("table", string(table)).
				Str("file", wb.Filename()).
				Msg("workbook loaded")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}
