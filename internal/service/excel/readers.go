package excel

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Matiiass08/FTE-App/internal/model"
	"github.com/Matiiass08/FTE-App/internal/parser"
	"github.com/Matiiass08/FTE-App/internal/service/calendar"
)

// AttendanceSheet 出勤表的首选工作表
const AttendanceSheet = "HorasTotales"

// ReadTickets 读取工单表（第一个工作表）
// 仅「Tipo de Pedido」为必需列；日期列与处理人列缺失时对应字段为空，由调用方决定是否致命
func ReadTickets(w *Workbook) (*model.TicketLog, error) {
	sheet, err := w.sheetOrFirst("")
	if err != nil {
		return nil, err
	}
	headers, rows, err := w.table(sheet)
	if err != nil {
		return nil, err
	}

	typeIdx, err := parser.RequestTypeColumn.Require(model.TableTickets, headers)
	if err != nil {
		return nil, err
	}
	dateIdx, dateCol, hasDate := parser.DateColumn.Find(headers)
	resIdx, resCol, hasRes := parser.ResolverColumn.Find(headers)

	log := &model.TicketLog{
		SourceID: w.ID(),
		Headers:  headers,
		Rows:     make([]model.TicketRow, 0, len(rows)),
	}
	if hasDate {
		log.DateColumn = dateCol
	}
	if hasRes {
		log.ResolverColumn = resCol
	}

	for _, cells := range rows {
		row := model.TicketRow{
			RequestTypeRaw: cells[typeIdx],
			Cells:          cells,
		}
		if hasDate {
			row.RawDate = cells[dateIdx]
			row.CompletionDate = ParseDate(row.RawDate)
		}
		if hasRes {
			row.Resolver = parser.NormalizeResolver(cells[resIdx])
		}
		log.Rows = append(log.Rows, row)
	}
	return log, nil
}

// ReadWeights 读取权重表（第一个工作表）；分值无法解析的行视为未登记
func ReadWeights(w *Workbook) ([]model.WeightEntry, error) {
	sheet, err := w.sheetOrFirst("")
	if err != nil {
		return nil, err
	}
	headers, rows, err := w.table(sheet)
	if err != nil {
		return nil, err
	}

	typeIdx, err := parser.WeightTypeColumn.Require(model.TableWeights, headers)
	if err != nil {
		return nil, err
	}
	scoreIdx, err := parser.WeightScoreColumn.Require(model.TableWeights, headers)
	if err != nil {
		return nil, err
	}

	entries := make([]model.WeightEntry, 0, len(rows))
	for _, cells := range rows {
		if parser.NormalizeText(cells[typeIdx]) == "" {
			continue
		}
		v, ok := parser.ParseNumber(cells[scoreIdx])
		if !ok {
			continue
		}
		entries = append(entries, model.WeightEntry{
			RequestType: cells[typeIdx],
			Score:       decimal.NewFromFloat(v),
		})
	}
	return entries, nil
}

// ReadAttendance 读取出勤表：优先 HorasTotales 工作表，否则第一个
// 员工代码经目录映射为姓名，未登记的代码被丢弃并记入 UnmappedCodes
// 存在年份列时，年份无法解析的行被丢弃；不存在时 Year 为 0
func ReadAttendance(w *Workbook, dir *calendar.Directory) (*model.AttendanceTable, error) {
	sheet, err := w.sheetOrFirst(AttendanceSheet)
	if err != nil {
		return nil, err
	}
	headers, rows, err := w.table(sheet)
	if err != nil {
		return nil, err
	}

	codeIdx, err := parser.AttendanceCodeColumn.Require(model.TableAttendance, headers)
	if err != nil {
		return nil, err
	}
	monthIdx, err := parser.AttendanceMonthColumn.Require(model.TableAttendance, headers)
	if err != nil {
		return nil, err
	}
	daysIdx, err := parser.AttendanceDaysColumn.Require(model.TableAttendance, headers)
	if err != nil {
		return nil, err
	}
	yearIdx, _, hasYear := parser.AttendanceYearColumn.Find(headers)

	table := &model.AttendanceTable{
		SourceID:        w.ID(),
		Sheet:           sheet,
		YearColumnFound: hasYear,
		Records:         make([]model.AttendanceRecord, 0, len(rows)),
	}

	for _, cells := range rows {
		code := cells[codeIdx]
		name, ok := dir.Lookup(code)
		if !ok {
			if code != "" && !slices.Contains(table.UnmappedCodes, code) {
				table.UnmappedCodes = append(table.UnmappedCodes, code)
			}
			continue
		}

		month, ok := parser.ParseMonth(cells[monthIdx])
		if !ok {
			continue
		}

		rec := model.AttendanceRecord{
			EmployeeCode: code,
			Resolver:     name,
			Month:        month,
		}
		if hasYear {
			y, ok := parser.ParseNumber(cells[yearIdx])
			if !ok {
				continue
			}
			rec.Year = int(y)
		}
		if d, ok := parser.ParseNumber(cells[daysIdx]); ok {
			rec.DaysWorked = d
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}
