package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry 应用专用注册表
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// RunsTotal 工作流执行次数（按结果类型与状态）
var RunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fteapp",
	Name:      "runs_total",
	Help:      "Workflow runs by result kind and status",
}, []string{"kind", "status"})

// RunDurationSeconds 工作流耗时
var RunDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "fteapp",
	Name:      "run_duration_seconds",
	Help:      "Time taken by a workflow run",
	Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
}, []string{"kind"})

// RowsLoaded 最近一次读取的输入行数
var RowsLoaded = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "fteapp",
	Name:      "rows_loaded",
	Help:      "Rows read from the most recent upload of each input table",
}, []string{"table"})

// UnresolvedRequestTypes 最近一次校验中未命中权重的类型数
var UnresolvedRequestTypes = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "fteapp",
	Name:      "unresolved_request_types",
	Help:      "Distinct request types without a weight in the most recent run",
})

// UnmappedEmployeeCodes 最近一次读取出勤表时未登记的员工代码数
var UnmappedEmployeeCodes = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "fteapp",
	Name:      "unmapped_employee_codes",
	Help:      "Distinct attendance codes missing from the employee directory",
})

// HeadcountRequired 最近一次计算的各月所需人数
var HeadcountRequired = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "fteapp",
	Name:      "headcount_required",
	Help:      "Required headcount per month for the most recent run of each variant",
}, []string{"variant", "month"})

// Handler /metrics 处理器
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
