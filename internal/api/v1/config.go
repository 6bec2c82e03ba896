package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Matiiass08/FTE-App/internal/config"
	"github.com/Matiiass08/FTE-App/internal/model"
	"github.com/Matiiass08/FTE-App/internal/service/calculator"
)

// ConfigResponse 配置响应
type ConfigResponse struct {
	Calc       config.CalcConfig                      `json:"calc"`
	Overhead   config.OverheadConfig                  `json:"overhead"`
	Allowances []config.AllowanceConfig               `json:"allowances"`
	Roster     []string                               `json:"roster"`
	Overrides  []config.EmployeeOverride              `json:"overrides"`
	AliasCount int                                    `json:"aliasCount"`
	Defaults   map[model.ResultKind]calculator.Params `json:"defaults"` // 各口径默认参数
	Bounds     map[string][2]float64                  `json:"bounds"`
}

// GetConfig 获取计算配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	cfg := h.runner.Config()

	defaults := make(map[model.ResultKind]calculator.Params)
	for _, k := range []model.ResultKind{
		model.KindMonthly, model.KindDaily, model.KindIdealDemand,
		model.KindContingency, model.KindBreakdown,
	} {
		defaults[k] = h.runner.Defaults(k)
	}

	c.JSON(http.StatusOK, ConfigResponse{
		Calc:       cfg.Calc,
		Overhead:   cfg.Overhead,
		Allowances: cfg.Allowances,
		Roster:     cfg.Reference.Roster,
		Overrides:  cfg.Reference.Overrides,
		AliasCount: len(cfg.Reference.Aliases),
		Defaults:   defaults,
		Bounds: map[string][2]float64{
			"ole":  {calculator.MinOLE, calculator.MaxOLE},
			"year": {calculator.MinYear, calculator.MaxYear},
		},
	})
}
