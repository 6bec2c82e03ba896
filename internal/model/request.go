package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table 输入表类型
type Table string

const (
	TableTickets    Table = "tickets"
	TableWeights    Table = "weights"
	TableAttendance Table = "attendance"
)

// Tables 全部输入表（按上传顺序）
var Tables = []Table{TableTickets, TableWeights, TableAttendance}

// RequestRecord 工单记录（已规范化、已打分）
type RequestRecord struct {
	Resolver       string          `json:"resolver"`
	RequestTypeRaw string          `json:"requestTypeRaw"`
	RequestType    string          `json:"requestType"` // 规范化后的类型
	CompletionDate *time.Time      `json:"completionDate"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	Weight         decimal.Decimal `json:"weight"`   // 权重表中的分值，未命中为 0
	Resolved       bool            `json:"resolved"` // 权重表是否命中
	Score          decimal.Decimal `json:"score"`    // Weight + 固定常数
}

// Day 完成日期（截断到当天零点）
func (r RequestRecord) Day() time.Time {
	if r.CompletionDate == nil {
		return time.Time{}
	}
	d := *r.CompletionDate
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// WeightEntry 权重表条目
type WeightEntry struct {
	RequestType string          `json:"requestType"`
	Score       decimal.Decimal `json:"score"`
}

// AttendanceRecord 出勤记录
type AttendanceRecord struct {
	EmployeeCode string  `json:"employeeCode"`
	Resolver     string  `json:"resolver"`
	Year         int     `json:"year"` // 无年份列时为 0
	Month        int     `json:"month"`
	DaysWorked   float64 `json:"daysWorked"`
}

// TicketLog 工单表解析结果
type TicketLog struct {
	SourceID       string      `json:"sourceId"`
	DateColumn     string      `json:"dateColumn"`
	ResolverColumn string      `json:"resolverColumn"`
	Headers        []string    `json:"headers"`
	Rows           []TicketRow `json:"-"`
}

// TicketRow 打分前的工单行（无处理人列时 Resolver 为空）
type TicketRow struct {
	Resolver       string
	RequestTypeRaw string
	RawDate        string
	CompletionDate *time.Time
	Cells          []string // 原始单元格，按 Headers 顺序
}

// AttendanceTable 出勤表解析结果
type AttendanceTable struct {
	SourceID        string             `json:"sourceId"`
	Sheet           string             `json:"sheet"`
	YearColumnFound bool               `json:"yearColumnFound"`
	Records         []AttendanceRecord `json:"records"`
	UnmappedCodes   []string           `json:"-"`
}
