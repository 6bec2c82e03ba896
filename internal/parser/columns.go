package parser

import (
	"slices"
	"strings"

	"github.com/Matiiass08/FTE-App/internal/model"
)

// ColumnMatcher 列名匹配规则
type ColumnMatcher struct {
	Key   string
	Match func(header string) bool
}

// Exact 完全相等（区分大小写）
func Exact(name string) ColumnMatcher {
	return ColumnMatcher{
		Key:   name,
		Match: func(h string) bool { return h == name },
	}
}

// Contains 包含任一子串（区分大小写）
func Contains(subs ...string) ColumnMatcher {
	return ColumnMatcher{
		Key:   strings.Join(subs, "|"),
		Match: func(h string) bool { return ContainsAny(h, subs) },
	}
}

// ContainsFold 包含子串（不区分大小写）
func ContainsFold(sub string) ColumnMatcher {
	lower := strings.ToLower(sub)
	return ColumnMatcher{
		Key:   sub,
		Match: func(h string) bool { return strings.Contains(strings.ToLower(h), lower) },
	}
}

// OneOfFold 去空白、转小写后等于任一候选
func OneOfFold(names ...string) ColumnMatcher {
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}
	return ColumnMatcher{
		Key: strings.Join(names, "|"),
		Match: func(h string) bool {
			return slices.Contains(lowered, strings.ToLower(strings.TrimSpace(h)))
		},
	}
}

// ColumnFinder 按规则优先级依次扫描表头，返回第一个命中的列
type ColumnFinder struct {
	Logical  string
	Matchers []ColumnMatcher
}

// NewColumnFinder 创建列查找器
func NewColumnFinder(logical string, matchers ...ColumnMatcher) ColumnFinder {
	return ColumnFinder{Logical: logical, Matchers: matchers}
}

// Find 查找列，返回列下标和原始列名
func (f ColumnFinder) Find(headers []string) (int, string, bool) {
	for _, m := range f.Matchers {
		for i, h := range headers {
			if m.Match(h) {
				return i, h, true
			}
		}
	}
	return -1, "", false
}

// Require 查找必需列，未命中返回 ColumnNotFoundError
func (f ColumnFinder) Require(table model.Table, headers []string) (int, error) {
	idx, _, ok := f.Find(headers)
	if !ok {
		return -1, &model.ColumnNotFoundError{Table: string(table), Column: f.Logical}
	}
	return idx, nil
}

// With 追加匹配规则（返回新查找器）
func (f ColumnFinder) With(matchers ...ColumnMatcher) ColumnFinder {
	out := ColumnFinder{Logical: f.Logical, Matchers: slices.Clone(f.Matchers)}
	out.Matchers = append(out.Matchers, matchers...)
	return out
}

// 各输入表的列发现规则
var (
	RequestTypeColumn = NewColumnFinder("Tipo de Pedido", Exact("Tipo de Pedido"))
	DateColumn        = NewColumnFinder("Fin Real",
		ContainsFold("fin real"),
		ContainsFold("fecha de creación"),
	)
	ResolverColumn           = NewColumnFinder("Resolutor", Contains("Resolutor", "Técnico"))
	ValidationResolverColumn = NewColumnFinder("Resolutor",
		Exact("Resolutor"),
		Exact("RESOLUTOR"),
		Exact("Nombre Resolutor"),
		Exact("Nombre Técnico"),
	)

	WeightTypeColumn  = NewColumnFinder("TIPO DE PEDIDO", Exact("TIPO DE PEDIDO"))
	WeightScoreColumn = NewColumnFinder("Score", Exact("Score"))

	AttendanceCodeColumn  = NewColumnFinder("Nombre Técnico", Exact("Nombre Técnico"))
	AttendanceMonthColumn = NewColumnFinder("Número Mes", Exact("Número Mes"))
	AttendanceDaysColumn  = NewColumnFinder("Dias Trabajados", Exact("Dias Trabajados"))
	AttendanceYearColumn  = NewColumnFinder("Año", OneOfFold("año", "anio", "year", "ano"))
)
