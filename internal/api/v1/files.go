package v1

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Matiiass08/FTE-App/internal/model"
	"github.com/Matiiass08/FTE-App/internal/service/excel"
	"github.com/Matiiass08/FTE-App/internal/service/workflow"
)

// UploadFile 上传输入表（同一张表后者覆盖前者）
// POST /api/files/:table  multipart 字段 file
func (h *Handler) UploadFile(c *gin.Context) {
	table := model.Table(c.Param("table"))
	if !slices.Contains(model.Tables, table) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("未知的输入表: %s", table)})
		return
	}

	uploaded, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建上传目录失败"})
		return
	}

	id := uuid.New().String()
	path := filepath.Join(h.uploadDir, id+filepath.Ext(uploaded.Filename))
	if err := c.SaveUploadedFile(uploaded, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}

	// 先按对应的表解析一遍，列缺失或文件损坏时直接拒绝
	info, err := h.inspect(c, table, path)
	if err != nil {
		_ = os.Remove(path)
		abortWithError(c, err)
		return
	}
	info.ID = id
	info.Filename = uploaded.Filename
	info.Size = uploaded.Size

	if prev, replaced := h.store.SetUpload(info); replaced && prev.Path != "" {
		_ = os.Remove(prev.Path)
	}

	log.Info().
		Str("table", string(table)).
		Str("file", uploaded.Filename).
		Int64("size", uploaded.Size).
		Msg("input uploaded")

	c.JSON(http.StatusOK, info)
}

func (h *Handler) inspect(c *gin.Context, table model.Table, path string) (model.UploadInfo, error) {
	info := model.UploadInfo{Table: table, Path: path, UploadedAt: time.Now()}

	wb, err := excel.OpenFile(path)
	if err != nil {
		return info, err
	}
	sheets, err := wb.GetSheets()
	_ = wb.Close()
	if err != nil {
		return info, fmt.Errorf("%w: %v", model.ErrFileUnreadable, err)
	}
	info.Sheets = sheets

	if _, err := h.runner.LoadInputs(c.Request.Context(), map[model.Table]string{table: path}); err != nil {
		return info, err
	}
	return info, nil
}

// loadInputs 读取当前已上传的全部输入表
func (h *Handler) loadInputs(c *gin.Context) (*workflow.Inputs, error) {
	paths := make(map[model.Table]string)
	for _, info := range h.store.Uploads() {
		paths[info.Table] = info.Path
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: 请先上传输入文件", model.ErrMissingInput)
	}
	return h.runner.LoadInputs(c.Request.Context(), paths)
}

// Reset 清空已上传文件与结果
// POST /api/reset
func (h *Handler) Reset(c *gin.Context) {
	for _, info := range h.store.Uploads() {
		_ = os.Remove(info.Path)
	}
	h.store.Clear()
	log.Info().Msg("session reset")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
