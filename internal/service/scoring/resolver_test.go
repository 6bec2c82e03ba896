package scoring_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Matiiass08/FTE-App/internal/config"
	"github.com/Matiiass08/FTE-App/internal/model"
	"github.com/Matiiass08/FTE-App/internal/parser"
	"github.com/Matiiass08/FTE-App/internal/service/scoring"
)

func newResolver(entries ...model.WeightEntry) *scoring.Resolver {
	n := parser.NewNormalizer(config.DefaultReference().Aliases)
	return scoring.NewResolver(n, entries, 2.5)
}

func weight(t string, score float64) model.WeightEntry {
	return model.WeightEntry{RequestType: t, Score: decimal.NewFromFloat(score)}
}

func TestResolveAddsConstant(t *testing.T) {
	t.Parallel()

	r := newResolver(weight("certificado de saldos", 12), weight("PAGO HONORARIOS", 0))

	w, score, ok := r.Resolve("CERTIFICADO DE SALDOS")
	if !ok || !w.Equal(decimal.NewFromInt(12)) || !score.Equal(decimal.NewFromFloat(14.5)) {
		t.Fatalf("resolved: w=%s score=%s ok=%v", w, score, ok)
	}

	w, score, ok = r.Resolve("DESCONOCIDO")
	if ok || !w.IsZero() || !score.Equal(decimal.NewFromFloat(2.5)) {
		t.Fatalf("unresolved: w=%s score=%s ok=%v", w, score, ok)
	}

	_, score, ok = r.Resolve("PAGO HONORARIOS")
	if !ok || !score.Equal(decimal.NewFromFloat(2.5)) {
		t.Fatalf("zero weight: score=%s ok=%v", score, ok)
	}
}

func TestWeightTableLastWins(t *testing.T) {
	t.Parallel()

	r := newResolver(weight("Simulación de Crédito", 3), weight(" SIMULACIÓN  DE CRÉDITO", 8))
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	_, score, _ := r.Resolve("SIMULACIÓN DE CRÉDITO")
	if !score.Equal(decimal.NewFromFloat(10.5)) {
		t.Fatalf("score = %s, want 10.5", score)
	}
}

func TestScoreAppliesAliases(t *testing.T) {
	t.Parallel()

	r := newResolver(weight("SIMULACIÓN DE CRÉDITO", 4))
	d := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	records := r.Score([]model.TicketRow{
		{Resolver: "A", RequestTypeRaw: "simulación de créditos", CompletionDate: &d},
		{Resolver: "A", RequestTypeRaw: "otro"},
	})

	if records[0].RequestType != "SIMULACIÓN DE CRÉDITO" || !records[0].Resolved {
		t.Fatalf("alias not applied: %+v", records[0])
	}
	if records[0].Year != 2025 || records[0].Month != 3 {
		t.Fatalf("year/month = %d/%d", records[0].Year, records[0].Month)
	}
	if records[1].Resolved || records[1].Year != 0 || !records[1].Score.Equal(decimal.NewFromFloat(2.5)) {
		t.Fatalf("unexpected unresolved record: %+v", records[1])
	}
}

func TestDiagnosticsOrder(t *testing.T) {
	t.Parallel()

	records := []model.RequestRecord{
		{RequestType: "B"}, {RequestType: "A"}, {RequestType: "C"},
		{RequestType: "C"}, {RequestType: "OK", Resolved: true},
	}
	got := scoring.Diagnostics(records)
	want := []model.MissingWeight{
		{RequestType: "C", Count: 2},
		{RequestType: "A", Count: 1},
		{RequestType: "B", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
