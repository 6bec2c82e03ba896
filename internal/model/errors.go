package model

import (
	"errors"
	"fmt"
)

// 工作流错误
var (
	ErrFileUnreadable = errors.New("file unreadable")
	ErrColumnNotFound = errors.New("column not found")
	ErrNoRowsForYear  = errors.New("no rows for year")
	ErrMissingInput   = errors.New("missing input")
	ErrInvalidParams  = errors.New("invalid params")
	ErrNoResult       = errors.New("no result")
)

// ColumnNotFoundError 必需列缺失（Column 为逻辑列名）
type ColumnNotFoundError struct {
	Table  string
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("%s: column %q not found", e.Table, e.Column)
}

func (e *ColumnNotFoundError) Unwrap() error {
	return ErrColumnNotFound
}

// NoRowsForYearError 按年份过滤后无数据
type NoRowsForYearError struct {
	Table string
	Year  int
}

func (e *NoRowsForYearError) Error() string {
	return fmt.Sprintf("%s: no rows for year %d", e.Table, e.Year)
}

func (e *NoRowsForYearError) Unwrap() error {
	return ErrNoRowsForYear
}
