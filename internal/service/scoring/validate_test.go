package scoring_test

import (
	"testing"

	"github.com/Matiiass08/FTE-App/internal/config"
	"github.com/Matiiass08/FTE-App/internal/model"
	"github.com/Matiiass08/FTE-App/internal/service/scoring"
)

func ticketLog(resolverHeader string, rows ...[2]string) *model.TicketLog {
	log := &model.TicketLog{Headers: []string{"ID", resolverHeader, "Tipo de Pedido"}}
	for i, r := range rows {
		log.Rows = append(log.Rows, model.TicketRow{
			RequestTypeRaw: r[1],
			Cells:          []string{string(rune('1' + i)), r[0], r[1]},
		})
	}
	return log
}

func TestValidateReportsMissing(t *testing.T) {
	t.Parallel()

	roster := config.DefaultReference().Roster
	log := ticketLog("Nombre Resolutor",
		[2]string{" jessica acuna velasquez ", "Pago de honorarios"},
		[2]string{"JESSICA ACUNA VELASQUEZ", "Tramite nuevo"},
		[2]string{"DIANA CARRASCO HERRERA", "tramite nuevo"},
		[2]string{"OUTSIDER", "Otro"},
	)
	res := scoring.Validate(log, newResolver(weight("PAGO HONORARIOS", 5)), roster)

	if !res.ResolverColumnFound {
		t.Fatal("resolver column should be found")
	}
	if res.TotalRows != 3 {
		t.Fatalf("TotalRows = %d, want 3", res.TotalRows)
	}
	if res.Complete || res.MissingRows != 2 {
		t.Fatalf("Complete=%v MissingRows=%d", res.Complete, res.MissingRows)
	}
	if len(res.Missing) != 1 || res.Missing[0].RequestType != "TRAMITE NUEVO" || res.Missing[0].Count != 2 {
		t.Fatalf("Missing = %+v", res.Missing)
	}
	if res.Scored != nil || res.ScoredCells != nil {
		t.Fatal("scored export must be empty when weights are missing")
	}
}

func TestValidateCompleteExport(t *testing.T) {
	t.Parallel()

	roster := config.DefaultReference().Roster
	log := ticketLog("Resolutor",
		[2]string{"brenda olguin quiroz", "Pago de honorarios"},
	)
	res := scoring.Validate(log, newResolver(weight("PAGO HONORARIOS", 5)), roster)

	if !res.Complete {
		t.Fatalf("expected complete result: %+v", res.Missing)
	}
	if got := res.Headers[len(res.Headers)-1]; got != scoring.ColumnFinalScore {
		t.Fatalf("last header = %q", got)
	}
	row := res.ScoredCells[0]
	if row[1] != "BRENDA OLGUIN QUIROZ" || row[3] != "PAGO HONORARIOS" || row[4] != "5" || row[5] != "7.5" {
		t.Fatalf("scored row = %v", row)
	}
}

func TestValidateWithoutResolverColumn(t *testing.T) {
	t.Parallel()

	log := ticketLog("Responsable",
		[2]string{"OUTSIDER", "Pago de honorarios"},
		[2]string{"OTRO", "Pago de honorarios"},
	)
	res := scoring.Validate(log, newResolver(weight("PAGO HONORARIOS", 5)), config.DefaultReference().Roster)

	if res.ResolverColumnFound {
		t.Fatal("resolver column should not be found")
	}
	if res.TotalRows != 2 || !res.Complete {
		t.Fatalf("TotalRows=%d Complete=%v", res.TotalRows, res.Complete)
	}
	if res.Headers[1] != "Responsable" {
		t.Fatalf("headers = %v", res.Headers)
	}
}
