package calculator

import (
	"fmt"
	"strings"

	"github.com/Matiiass08/FTE-App/internal/model"
)

// 参数取值范围
const (
	MinOLE  = 0.1
	MaxOLE  = 1.0
	MinYear = 2023
	MaxYear = 2030
)

// Params 单次计算参数
type Params struct {
	Year        int     `json:"year"`
	OLE         float64 `json:"ole"`         // 效率系数
	HoursPerDay float64 `json:"hoursPerDay"` // 合同日工时
	Shrinkage   float64 `json:"shrinkage"`   // 人数折算系数，0 表示不折算
	Months      []int   `json:"months"`      // 时间分解的月份过滤，空表示全年
}

// ValidateParams 校验计算参数，返回违规说明
func ValidateParams(p Params) []string {
	errs := make([]string, 0, 4)

	if p.OLE < MinOLE || p.OLE > MaxOLE {
		errs = append(errs, fmt.Sprintf("OLE 须在 [%.1f, %.1f] 之间", MinOLE, MaxOLE))
	}
	if p.Year < MinYear || p.Year > MaxYear {
		errs = append(errs, fmt.Sprintf("年份须在 [%d, %d] 之间", MinYear, MaxYear))
	}
	if p.HoursPerDay <= 0 || p.HoursPerDay > 24 {
		errs = append(errs, "日工时须在 (0, 24] 之间")
	}
	if p.Shrinkage < 0 || p.Shrinkage > 1 {
		errs = append(errs, "折算系数须在 (0, 1] 之间")
	}
	for _, m := range p.Months {
		if m < 1 || m > 12 {
			errs = append(errs, fmt.Sprintf("非法月份: %d", m))
			break
		}
	}

	return errs
}

// Validate 校验参数，违规时返回 ErrInvalidParams
func (p Params) Validate() error {
	if errs := ValidateParams(p); len(errs) > 0 {
		return fmt.Errorf("%w: %s", model.ErrInvalidParams, strings.Join(errs, "; "))
	}
	return nil
}
