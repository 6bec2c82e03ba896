package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Matiiass08/FTE-App/internal/model"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Ready   bool               `json:"ready"`   // 三张输入表是否齐全
	Uploads []model.UploadInfo `json:"uploads"` // 已上传文件
	Missing []model.Table      `json:"missing"` // 尚未上传的表
	Results []model.ResultKind `json:"results"` // 已有结果
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Uploads: h.store.Uploads(),
		Missing: []model.Table{},
		Results: h.store.ResultKinds(),
	}
	for _, t := range model.Tables {
		if _, ok := h.store.GetUpload(t); !ok {
			resp.Missing = append(resp.Missing, t)
		}
	}
	resp.Ready = len(resp.Missing) == 0

	c.JSON(http.StatusOK, resp)
}
