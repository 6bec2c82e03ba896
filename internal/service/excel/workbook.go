package excel

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/Matiiass08/FTE-App/internal/model"
	"github.com/Matiiass08/FTE-App/internal/parser"
)

// Workbook 已加载的 Excel 工作簿
type Workbook struct {
	file     *excelize.File
	id       string
	filename string
}

// Open 从 reader 加载工作簿，无法解析时返回 ErrFileUnreadable
func Open(reader io.Reader, filename string) (*Workbook, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrFileUnreadable, filename, err)
	}
	return FromFile(file, filename), nil
}

// OpenFile 按路径加载工作簿
func OpenFile(path string) (*Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrFileUnreadable, err)
	}
	defer f.Close()
	return Open(f, filepath.Base(path))
}

// FromFile 包装已打开的 excelize 文件
func FromFile(file *excelize.File, filename string) *Workbook {
	return &Workbook{
		file:     file,
		id:       uuid.New().String(),
		filename: filename,
	}
}

// ID 工作簿 ID
func (w *Workbook) ID() string {
	return w.id
}

// Filename 原始文件名
func (w *Workbook) Filename() string {
	return w.filename
}

// File 返回底层工作簿对象（只读使用）
func (w *Workbook) File() *excelize.File {
	return w.file
}

// Close 关闭工作簿
func (w *Workbook) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}

// GetSheets 获取工作表列表
func (w *Workbook) GetSheets() ([]model.SheetInfo, error) {
	if w.file == nil {
		return nil, errors.New("no file loaded")
	}

	sheets := w.file.GetSheetList()
	result := make([]model.SheetInfo, 0, len(sheets))
	for _, name := range sheets {
		rows, err := w.file.GetRows(name)
		if err != nil {
			continue
		}
		result = append(result, model.SheetInfo{
			Name:     name,
			RowCount: len(rows),
		})
	}
	return result, nil
}

// sheetOrFirst 优先使用指定工作表，不存在时退回第一个
func (w *Workbook) sheetOrFirst(preferred string) (string, error) {
	sheets := w.file.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("%w: %s: no sheets", model.ErrFileUnreadable, w.filename)
	}
	if preferred != "" {
		if idx, err := w.file.GetSheetIndex(preferred); err == nil && idx >= 0 {
			return preferred, nil
		}
	}
	return sheets[0], nil
}

// table 读取整张表：首行为表头，其余行补齐到表头长度，跳过全空行
func (w *Workbook) table(sheet string) ([]string, [][]string, error) {
	if w.file == nil {
		return nil, nil, errors.New("no file loaded")
	}

	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", model.ErrFileUnreadable, w.filename, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = parser.NormalizeColumnName(h)
	}

	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		cells := make([]string, len(headers))
		copy(cells, row)
		body = append(body, cells)
	}
	return headers, body, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
