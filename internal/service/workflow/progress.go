package workflow

// ProgressEvent 计算进度事件（用于 UI/CLI 展示）
type ProgressEvent struct {
	Kind    string `json:"kind"`
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
}

func reportProgress(progress func(ProgressEvent), kind string, percent int, stage string) {
	if progress == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	progress(ProgressEvent{
		Kind:    kind,
		Percent: percent,
		Stage:   stage,
	})
}
