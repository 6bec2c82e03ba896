package workflow_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Matiiass08/FTE-App/internal/config"
	"github.com/Matiiass08/FTE-App/internal/model"
	"github.com/Matiiass08/FTE-App/internal/service/calculator"
	"github.com/Matiiass08/FTE-App/internal/service/store"
	"github.com/Matiiass08/FTE-App/internal/service/workflow"
)

func writeBook(t *testing.T, dir, name, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("SetSheetName failed: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	return path
}

func fixturePaths(t *testing.T) map[model.Table]string {
	t.Helper()
	dir := t.TempDir()

	return map[model.Table]string{
		model.TableTickets: writeBook(t, dir, "solicitudes.xlsx", "Hoja1", [][]any{
			{"Tipo de Pedido", "Fin Real", "Resolutor"},
			{"Pago de honorarios", "06/01/2025", "JESSICA ACUNA VELASQUEZ"},
			{"Pago de honorarios", "06/01/2025", "JESSICA ACUNA VELASQUEZ"},
			{"Certificado de saldo", "07/01/2025", "BRENDA OLGUIN QUIROZ"},
			{"Nuevo tramite", "10/02/2025", "BRENDA OLGUIN QUIROZ"},
			{"Pago de honorarios", "10/02/2025", "OUTSIDER"},
			{"Pago de honorarios", "10/02/2024", "JESSICA ACUNA VELASQUEZ"},
		}),
		model.TableWeights: writeBook(t, dir, "pesos.xlsx", "Pesos", [][]any{
			{"TIPO DE PEDIDO", "Score"},
			{"PAGO HONORARIOS", 30},
			{"CERTIFICADO DE SALDOS", 12.5},
		}),
		model.TableAttendance: writeBook(t, dir, "dias.xlsx", "HorasTotales", [][]any{
			{"Nombre Técnico", "Número Mes", "Dias Trabajados", "Año"},
			{"JACUNVE", 1, 20, 2025},
			{"BOLGUIQ", 1, 19, 2025},
			{"BOLGUIQ", 2, 18, 2025},
			{"XXXX", 2, 18, 2025},
		}),
	}
}

func newRunner() (*workflow.Runner, *store.MemoryStore) {
	st := store.NewMemoryStore()
	return workflow.NewRunner(config.DefaultConfig(), st), st
}

func TestMonthlyEndToEnd(t *testing.T) {
	r, st := newRunner()
	ctx := context.Background()

	var events []workflow.ProgressEvent
	r.Progress = func(e workflow.ProgressEvent) { events = append(events, e) }

	in, err := r.LoadInputs(ctx, fixturePaths(t))
	if err != nil {
		t.Fatalf("LoadInputs failed: %v", err)
	}
	if len(in.Attendance.UnmappedCodes) != 1 {
		t.Fatalf("unmapped codes = %v", in.Attendance.UnmappedCodes)
	}

	res, err := r.Monthly(ctx, in, calculator.Params{})
	if err != nil {
		t.Fatalf("Monthly failed: %v", err)
	}
	if res.RunID == "" || res.Year != 2025 {
		t.Fatalf("unexpected result header: %+v", res)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("expected 3 person-months, got %d", len(res.Rows))
	}

	// 1 月 JESSICA：2 × (30 + 2.5) = 65
	for _, row := range res.Rows {
		if row.Month == 1 && row.Resolver == "JESSICA ACUNA VELASQUEZ" {
			if row.ScoreSum.String() != "65" {
				t.Fatalf("score sum = %s, want 65", row.ScoreSum)
			}
			if row.MeetingMinutes != 20*32+60 {
				t.Fatalf("meeting minutes = %v", row.MeetingMinutes)
			}
		}
	}

	cached, err := st.GetResult(model.KindMonthly)
	if err != nil || cached.(*model.MonthlyResult).RunID != res.RunID {
		t.Fatalf("result not cached: %v", err)
	}
	if len(events) == 0 || events[len(events)-1].Percent != 100 {
		t.Fatalf("progress events = %+v", events)
	}
}

func TestValidateWorkflow(t *testing.T) {
	r, _ := newRunner()
	ctx := context.Background()

	paths := fixturePaths(t)
	delete(paths, model.TableAttendance)
	in, err := r.LoadInputs(ctx, paths)
	if err != nil {
		t.Fatalf("LoadInputs failed: %v", err)
	}

	res, err := r.Validate(ctx, in)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if res.Complete || len(res.Missing) != 1 || res.Missing[0].RequestType != "NUEVO TRAMITE" {
		t.Fatalf("unexpected validation: %+v", res.Missing)
	}
	// OUTSIDER 被名单过滤
	if res.TotalRows != 5 {
		t.Fatalf("TotalRows = %d, want 5", res.TotalRows)
	}
}

func TestMissingInputs(t *testing.T) {
	r, _ := newRunner()
	_, err := r.Monthly(context.Background(), &workflow.Inputs{}, calculator.Params{})
	if !errors.Is(err, model.ErrMissingInput) {
		t.Fatalf("want ErrMissingInput, got %v", err)
	}
}

func TestFailedRunKeepsPreviousResult(t *testing.T) {
	r, st := newRunner()
	ctx := context.Background()

	in, err := r.LoadInputs(ctx, fixturePaths(t))
	if err != nil {
		t.Fatalf("LoadInputs failed: %v", err)
	}
	first, err := r.IdealDemand(ctx, in, calculator.Params{})
	if err != nil {
		t.Fatalf("IdealDemand failed: %v", err)
	}
	if first.Summary[0].Shrinkage != 0.8 {
		t.Fatalf("default shrinkage = %v", first.Summary[0].Shrinkage)
	}

	_, err = r.IdealDemand(ctx, in, calculator.Params{Year: 2027})
	if !errors.Is(err, model.ErrNoRowsForYear) {
		t.Fatalf("want ErrNoRowsForYear, got %v", err)
	}
	cached, _ := st.GetResult(model.KindIdealDemand)
	if cached.(*model.MonthlyResult).RunID != first.RunID {
		t.Fatal("failed run replaced cached result")
	}
}

func TestMissingDateColumn(t *testing.T) {
	r, _ := newRunner()
	dir := t.TempDir()
	paths := map[model.Table]string{
		model.TableTickets: writeBook(t, dir, "s.xlsx", "S", [][]any{
			{"Tipo de Pedido", "Resolutor"},
			{"Pago de honorarios", "JESSICA ACUNA VELASQUEZ"},
		}),
		model.TableWeights: fixturePaths(t)[model.TableWeights],
	}
	in, err := r.LoadInputs(context.Background(), paths)
	if err != nil {
		t.Fatalf("LoadInputs failed: %v", err)
	}

	_, err = r.Daily(context.Background(), in, calculator.Params{})
	var colErr *model.ColumnNotFoundError
	if !errors.As(err, &colErr) || colErr.Column != "Fin Real" {
		t.Fatalf("want ColumnNotFoundError, got %v", err)
	}
}

func TestLoadInputsUnreadable(t *testing.T) {
	r, _ := newRunner()
	_, err := r.LoadInputs(context.Background(), map[model.Table]string{
		model.TableWeights: filepath.Join(t.TempDir(), "missing.xlsx"),
	})
	if !errors.Is(err, model.ErrFileUnreadable) {
		t.Fatalf("want ErrFileUnreadable, got %v", err)
	}
}
