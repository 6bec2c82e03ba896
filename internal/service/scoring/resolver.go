package scoring

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Matiiass08/FTE-App/internal/model"
	"github.com/Matiiass08/FTE-App/internal/parser"
)

// Resolver 工单类型 -> 分值；命中与未命中都加固定常数
type Resolver struct {
	normalizer *parser.Normalizer
	weights    map[string]decimal.Decimal
	constant   decimal.Decimal
}

// NewResolver 创建分值解析器，权重表的类型列按同样规则规范化，重复键以后者为准
func NewResolver(normalizer *parser.Normalizer, entries []model.WeightEntry, constant float64) *Resolver {
	weights := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		weights[normalizer.Normalize(e.RequestType)] = e.Score
	}
	return &Resolver{
		normalizer: normalizer,
		weights:    weights,
		constant:   decimal.NewFromFloat(constant),
	}
}

// Len 权重表条目数
func (r *Resolver) Len() int {
	return len(r.weights)
}

// Normalize 规范化工单类型
func (r *Resolver) Normalize(raw string) string {
	return r.normalizer.Normalize(raw)
}

// Resolve 查分值，返回 (权重, 最终分值, 是否命中)；未命中时权重为 0
func (r *Resolver) Resolve(normalized string) (decimal.Decimal, decimal.Decimal, bool) {
	w, ok := r.weights[normalized]
	if !ok {
		w = decimal.Zero
	}
	return w, w.Add(r.constant), ok
}

// Score 规范化并打分，年月取自完成日期（无日期时为 0）
func (r *Resolver) Score(rows []model.TicketRow) []model.RequestRecord {
	out := make([]model.RequestRecord, 0, len(rows))
	for _, row := range rows {
		rec := model.RequestRecord{
			Resolver:       row.Resolver,
			RequestTypeRaw: row.RequestTypeRaw,
			RequestType:    r.Normalize(row.RequestTypeRaw),
			CompletionDate: row.CompletionDate,
		}
		if row.CompletionDate != nil {
			rec.Year = row.CompletionDate.Year()
			rec.Month = int(row.CompletionDate.Month())
		}
		rec.Weight, rec.Score, rec.Resolved = r.Resolve(rec.RequestType)
		out = append(out, rec)
	}
	return out
}

// Diagnostics 未命中权重的类型及出现次数，按次数降序、类型名升序
func Diagnostics(records []model.RequestRecord) []model.MissingWeight {
	counts := make(map[string]int)
	for _, rec := range records {
		if !rec.Resolved {
			counts[rec.RequestType]++
		}
	}

	out := make([]model.MissingWeight, 0, len(counts))
	for t, n := range counts {
		out = append(out, model.MissingWeight{RequestType: t, Count: n})
	}
	slices.SortFunc(out, func(a, b model.MissingWeight) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.RequestType, b.RequestType))
	})
	return out
}
