package scoring

import (
	"slices"

	"github.com/Matiiass08/FTE-App/internal/model"
	"github.com/Matiiass08/FTE-App/internal/parser"
)

// 导出时追加的列
const (
	ColumnNormalizedType = "Tipo de Pedido Normalizado"
	ColumnWeightFound    = "Score_Encontrado"
	ColumnFinalScore     = "Score_Final"
	columnResolver       = "Resolutor"
)

// Validate 权重校验：按名单过滤（找不到处理人列时跳过过滤），统计未命中的类型
// 全部命中时附带打分后的工单明细
func Validate(log *model.TicketLog, r *Resolver, roster []string) *model.ValidationResult {
	res := &model.ValidationResult{}

	idx, _, found := parser.ValidationResolverColumn.Find(log.Headers)
	res.ResolverColumnFound = found

	kept := make([]model.TicketRow, 0, len(log.Rows))
	for _, row := range log.Rows {
		if found {
			name := parser.NormalizeResolver(cell(row.Cells, idx))
			if !slices.Contains(roster, name) {
				continue
			}
			row.Resolver = name
			if idx < len(row.Cells) {
				row.Cells = slices.Clone(row.Cells)
				row.Cells[idx] = name
			}
		}
		kept = append(kept, row)
	}

	records := r.Score(kept)
	res.TotalRows = len(records)
	res.Missing = Diagnostics(records)
	for _, m := range res.Missing {
		res.MissingRows += m.Count
	}
	res.Complete = res.MissingRows == 0
	if !res.Complete {
		return res
	}

	res.Headers = slices.Clone(log.Headers)
	if found {
		res.Headers[idx] = columnResolver
	}
	res.Headers = append(res.Headers, ColumnNormalizedType, ColumnWeightFound, ColumnFinalScore)
	res.Scored = records
	res.ScoredCells = make([][]string, 0, len(records))
	for i, rec := range records {
		cells := make([]string, len(log.Headers), len(log.Headers)+3)
		copy(cells, kept[i].Cells)
		cells = append(cells, rec.RequestType, rec.Weight.String(), rec.Score.String())
		res.ScoredCells = append(res.ScoredCells, cells)
	}
	return res
}

func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
