package excel_test

import (
	"testing"

	"github.com/Matiiass08/FTE-App/internal/service/excel"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"45658", "2025-01-01"},
		{"45672.75", "2025-01-15"},
		{"2025-03-04", "2025-03-04"},
		{"2025-03-04 17:20:00", "2025-03-04"},
		{"04/03/2025", "2025-03-04"},
		{"04/03/2025 08:15", "2025-03-04"},
		{"", ""},
		{"n/a", ""},
		{"-3", ""},
	}
	for _, tt := range tests {
		got := excel.ParseDate(tt.raw)
		if tt.want == "" {
			if got != nil {
				t.Errorf("ParseDate(%q) = %v, want nil", tt.raw, got)
			}
			continue
		}
		if got == nil || got.Format("2006-01-02") != tt.want {
			t.Errorf("ParseDate(%q) = %v, want %s", tt.raw, got, tt.want)
		}
	}
}
