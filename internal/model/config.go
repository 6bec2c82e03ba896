package model

import "time"

// SheetInfo 工作表信息
type SheetInfo struct {
	Name     string `json:"name"`
	RowCount int    `json:"rowCount"`
}

// UploadInfo 上传文件信息
type UploadInfo struct {
	ID         string      `json:"id"`
	Table      Table       `json:"table"`
	Filename   string      `json:"filename"`
	Path       string      `json:"-"`
	Size       int64       `json:"size"`
	Sheets     []SheetInfo `json:"sheets"`
	UploadedAt time.Time   `json:"uploadedAt"`
}
