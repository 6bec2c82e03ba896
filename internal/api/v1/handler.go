package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Matiiass08/FTE-App/internal/service/excel"
	"github.com/Matiiass08/FTE-App/internal/service/store"
	"github.com/Matiiass08/FTE-App/internal/service/workflow"
)

// Handler V1 API 处理器
type Handler struct {
	runner    *workflow.Runner
	store     *store.MemoryStore
	exporter  *excel.Exporter
	uploadDir string
	exportDir string
	downloads *downloadTokens
}

// NewHandler 创建 V1 API 处理器；runner 必须带有结果缓存
func NewHandler(runner *workflow.Runner, uploadDir, exportDir string) *Handler {
	return &Handler{
		runner:    runner,
		store:     runner.Store(),
		exporter:  excel.NewExporter(),
		uploadDir: uploadDir,
		exportDir: exportDir,
		downloads: newDownloadTokens(),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	// 配置
	router.GET("/config", h.GetConfig)

	// 输入文件
	router.POST("/files/:table", h.UploadFile)
	router.POST("/reset", h.Reset)

	// 计算
	router.POST("/validate", h.Validate)
	router.POST("/fte/:variant", h.ComputeFTE)
	router.GET("/capacity", h.Capacity)

	// 结果查询
	router.GET("/results/:kind", h.GetResult)

	// 导出
	router.POST("/export/:kind", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
	router.GET("/export/:kind", h.ExportDirect)
}
