package v1

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/Matiiass08/FTE-App/internal/model"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	downloadTTL     = 10 * time.Minute
)

// build 按最近一次结果生成导出工作簿
func (h *Handler) build(c *gin.Context) (*excelize.File, string, bool) {
	kind, ok := model.ParseResultKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "未知的结果类型"})
		return nil, "", false
	}
	res, err := h.store.GetResult(kind)
	if err != nil {
		abortWithError(c, err)
		return nil, "", false
	}
	f, name, err := h.exporter.Export(kind, res)
	if err != nil {
		abortWithError(c, err)
		return nil, "", false
	}
	return f, name, true
}

// Export 生成导出文件并返回一次性下载地址
// POST /api/export/:kind
func (h *Handler) Export(c *gin.Context) {
	f, name, ok := h.build(c)
	if !ok {
		return
	}
	defer f.Close()

	if err := os.MkdirAll(h.exportDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建导出目录失败"})
		return
	}
	path := filepath.Join(h.exportDir, fmt.Sprintf("fteapp_export_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))
	if err := f.SaveAs(path); err != nil {
		_ = os.Remove(path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败: " + err.Error()})
		return
	}

	token := h.downloads.issue(path, name, downloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"fileName":    name,
		"downloadUrl": "/api/export/download/" + token,
		"expiresIn":   int(downloadTTL.Seconds()),
	})
}

// ExportDirect 直接下载导出文件
// GET /api/export/:kind
func (h *Handler) ExportDirect(c *gin.Context) {
	f, name, ok := h.build(c)
	if !ok {
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", contentDisposition(name))
	c.Header("Content-Type", xlsxContentType)
	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Str("file", name).Msg("write export failed")
	}
}

// DownloadExport 下载导出的 Excel 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.take(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}
	defer os.Remove(item.path)

	if _, err := os.Stat(item.path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", contentDisposition(item.name))
	c.Header("Content-Type", xlsxContentType)
	c.File(item.path)
}

func contentDisposition(name string) string {
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", name, url.PathEscape(name))
}
