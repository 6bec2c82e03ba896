package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Matiiass08/FTE-App/internal/model"
)

// 导出工作表名称
const (
	SheetScored         = "Solicitudes_Scores"
	SheetMonthlyDetail  = "Detalle_FTE"
	SheetMonthlySummary = "Resumen_Mes"
	SheetDailyDetail    = "FTE_Diario_Detalle"
	SheetDailyTeam      = "FTE_Diario_Equipo"
	SheetBreakdown      = "Desglose_Tiempo"
	SheetBreakdownShare = "Distribucion"
	SheetDays           = "Dias_Trabajados"
	SheetCapacity       = "Capacidad_Real"
)

// Exporter Excel导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// FileName 导出文件名
func FileName(kind model.ResultKind, year int) string {
	switch kind {
	case model.KindValidation:
		return "Solicitudes_Scores.xlsx"
	case model.KindMonthly:
		return fmt.Sprintf("Reporte_FTE_%d.xlsx", year)
	case model.KindDaily:
		return fmt.Sprintf("FTE_Diario_%d.xlsx", year)
	case model.KindIdealDemand:
		return fmt.Sprintf("Demanda_Ideal_%d.xlsx", year)
	case model.KindContingency:
		return fmt.Sprintf("Contingencia_%d.xlsx", year)
	case model.KindBreakdown:
		return fmt.Sprintf("Desglose_Tiempo_%d.xlsx", year)
	case model.KindCapacity:
		return fmt.Sprintf("Dias_Trabajados_%d.xlsx", year)
	}
	return "export.xlsx"
}

// Export 按结果类型导出，返回工作簿与文件名
func (e *Exporter) Export(kind model.ResultKind, result any) (*excelize.File, string, error) {
	var (
		f    *excelize.File
		year int
		err  error
	)
	switch r := result.(type) {
	case *model.ValidationResult:
		f, err = e.Validation(r)
	case *model.MonthlyResult:
		f, err = e.Monthly(r)
		year = r.Year
	case *model.DailyResult:
		f, err = e.Daily(r)
		year = r.Year
	case *model.BreakdownResult:
		f, err = e.Breakdown(r)
		year = r.Year
	case *model.CapacityResult:
		f, err = e.Capacity(r)
		year = r.Year
	default:
		return nil, "", fmt.Errorf("unsupported result type %T", result)
	}
	if err != nil {
		return nil, "", err
	}
	return f, FileName(kind, year), nil
}

// Validation 导出打分后的工单明细（仅在全部命中时可导出）
func (e *Exporter) Validation(res *model.ValidationResult) (*excelize.File, error) {
	if !res.Complete {
		return nil, fmt.Errorf("%w: %d rows without weight", model.ErrNoResult, res.MissingRows)
	}

	f, err := newBook(SheetScored)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(res.ScoredCells))
	for _, cells := range res.ScoredCells {
		row := make([]any, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		// 分值列写数值
		n := len(row)
		if n >= 2 {
			row[n-2] = res.Scored[len(rows)].Weight.InexactFloat64()
			row[n-1] = res.Scored[len(rows)].Score.InexactFloat64()
		}
		rows = append(rows, row)
	}
	if err := writeSheet(f, SheetScored, res.Headers, rows); err != nil {
		return nil, err
	}
	return f, nil
}

// Monthly 导出月度口径明细与月度汇总
func (e *Exporter) Monthly(res *model.MonthlyResult) (*excelize.File, error) {
	f, err := newBook(SheetMonthlyDetail)
	if err != nil {
		return nil, err
	}

	detail := make([][]any, 0, len(res.Rows))
	for _, r := range res.Rows {
		detail = append(detail, []any{
			r.Year, r.Resolver, r.Month, r.MeetingMinutes, r.ScoreSum.InexactFloat64(),
			r.DaysWorked, r.BusinessDays, r.ChatMinutes, r.HoursPerDay, r.CapacityMinutes,
			r.FTE, r.NoCapacity,
		})
	}
	err = writeSheet(f, SheetMonthlyDetail, []string{
		"Año", "Resolutor", "Mes_Num", "Minutos_Reunion", "Score_Unitario",
		"Dias_Trabajados", "Dias_Habiles", "Minutos_Chat", "Horas_Dia", "Capacidad_Minutos",
		"FTE", "Sin_Capacidad",
	}, detail)
	if err != nil {
		return nil, err
	}

	summary := make([][]any, 0, len(res.Summary))
	for _, s := range res.Summary {
		summary = append(summary, []any{s.Year, s.Month, s.FTE, s.Shrinkage, s.Headcount, s.RealCapacity})
	}
	err = writeSheet(f, SheetMonthlySummary, []string{
		"Año", "Mes_Num", "FTE", "Factor_Shrinkage", "Capacidad_Minima_Personas", "Personas_Reales_Disponibles",
	}, summary)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Daily 导出日口径明细与团队日汇总
func (e *Exporter) Daily(res *model.DailyResult) (*excelize.File, error) {
	f, err := newBook(SheetDailyDetail)
	if err != nil {
		return nil, err
	}

	detail := make([][]any, 0, len(res.Rows))
	for _, r := range res.Rows {
		detail = append(detail, []any{
			r.Resolver, r.Date.Format("2006-01-02"), r.ScoreSum.InexactFloat64(),
			r.MeetingMinutes, r.ChatMinutes, r.LoadMinutes, r.CapacityMinutes, r.FTE,
		})
	}
	err = writeSheet(f, SheetDailyDetail, []string{
		"Resolutor", "Fecha", "Score_Unitario", "Minutos_Reunion", "Minutos_Chat",
		"Carga_Minutos", "Capacidad_Minutos", "FTE_Diario",
	}, detail)
	if err != nil {
		return nil, err
	}

	team := make([][]any, 0, len(res.Team))
	for _, d := range res.Team {
		team = append(team, []any{d.Date.Format("2006-01-02"), d.LoadMinutes, d.FTE, d.Headcount})
	}
	err = writeSheet(f, SheetDailyTeam, []string{
		"Fecha", "Carga_Minutos", "FTE_Requerido", "Personas_Requeridas",
	}, team)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Breakdown 导出时间分解明细与团队占比
func (e *Exporter) Breakdown(res *model.BreakdownResult) (*excelize.File, error) {
	f, err := newBook(SheetBreakdown)
	if err != nil {
		return nil, err
	}

	headers := []string{"Año", "Mes_Num", "Resolutor", "Dias_Trabajados", "Capacidad_Teorica"}
	if len(res.Rows) > 0 {
		for _, b := range res.Rows[0].Buckets {
			headers = append(headers, b.Name)
		}
	}
	headers = append(headers, "Capacidad_Libre", "Sobretiempo")

	detail := make([][]any, 0, len(res.Rows))
	for _, r := range res.Rows {
		row := []any{r.Year, r.Month, r.Resolver, r.DaysWorked, r.CapacityMinutes}
		for _, b := range r.Buckets {
			row = append(row, b.Minutes)
		}
		row = append(row, r.FreeCapacity, r.Overtime)
		detail = append(detail, row)
	}
	if err := writeSheet(f, SheetBreakdown, headers, detail); err != nil {
		return nil, err
	}

	shares := make([][]any, 0, len(res.Shares))
	for _, s := range res.Shares {
		shares = append(shares, []any{s.Name, s.Minutes, s.Percent})
	}
	if err := writeSheet(f, SheetBreakdownShare, []string{"Categoria", "Minutos", "Porcentaje"}, shares); err != nil {
		return nil, err
	}
	return f, nil
}

// Capacity 导出出勤天数与实际可用人力
func (e *Exporter) Capacity(res *model.CapacityResult) (*excelize.File, error) {
	f, err := newBook(SheetDays)
	if err != nil {
		return nil, err
	}

	days := make([][]any, 0, len(res.Days))
	for _, d := range res.Days {
		days = append(days, []any{d.Resolver, d.Month, d.DaysWorked})
	}
	if err := writeSheet(f, SheetDays, []string{"Resolutor", "Número Mes", "Dias Trabajados"}, days); err != nil {
		return nil, err
	}

	months := make([][]any, 0, len(res.Months))
	for _, m := range res.Months {
		months = append(months, []any{m.Month, m.TotalDays, m.MaxDays, m.ActivePersons, m.AvailablePersons})
	}
	err = writeSheet(f, SheetCapacity, []string{
		"Número Mes", "Dias_Totales_Trabajados", "Dias_Habiles_Mes", "Personas_Activas", "Personas_Reales_Disponibles",
	}, months)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// newBook 新建工作簿并把默认工作表重命名为 first
func newBook(first string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", first); err != nil {
		return nil, err
	}
	return f, nil
}

// writeSheet 写表头（加粗、浅灰底）与数据行
func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if len(headers) > 0 {
		last, _ := excelize.ColumnNumberToName(len(headers))
		_ = f.SetColWidth(sheet, "A", last, 18)
	}
	return nil
}
