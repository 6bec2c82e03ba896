package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Matiiass08/FTE-App/internal/model"
	"github.com/Matiiass08/FTE-App/internal/service/calculator"
)

// Validate 权重校验
// POST /api/validate
func (h *Handler) Validate(c *gin.Context) {
	in, err := h.loadInputs(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	res, err := h.runner.Validate(c.Request.Context(), in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ComputeFTE 计算 FTE；请求体为计算参数，零值字段取配置默认值
// POST /api/fte/:variant  (monthly|daily|ideal|contingency|breakdown)
func (h *Handler) ComputeFTE(c *gin.Context) {
	kind, ok := model.ParseResultKind(c.Param("variant"))
	if !ok || kind == model.KindValidation || kind == model.KindCapacity {
		c.JSON(http.StatusNotFound, gin.H{"error": "未知的计算口径"})
		return
	}

	var p calculator.Params
	if err := c.ShouldBindJSON(&p); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	in, err := h.loadInputs(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	var res any
	switch kind {
	case model.KindMonthly:
		res, err = h.runner.Monthly(ctx, in, p)
	case model.KindDaily:
		res, err = h.runner.Daily(ctx, in, p)
	case model.KindIdealDemand:
		res, err = h.runner.IdealDemand(ctx, in, p)
	case model.KindContingency:
		res, err = h.runner.Contingency(ctx, in, p)
	case model.KindBreakdown:
		res, err = h.runner.Breakdown(ctx, in, p)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Capacity 出勤明细
// GET /api/capacity?year=2025
func (h *Handler) Capacity(c *gin.Context) {
	year := 0
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的年份"})
			return
		}
		year = y
	}

	in, err := h.loadInputs(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	res, err := h.runner.Capacity(c.Request.Context(), in, year)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetResult 获取最近一次结果
// GET /api/results/:kind
func (h *Handler) GetResult(c *gin.Context) {
	kind, ok := model.ParseResultKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "未知的结果类型"})
		return
	}
	res, err := h.store.GetResult(kind)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
