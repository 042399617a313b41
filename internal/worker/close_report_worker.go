package worker

// close_report_worker.go
// Processes close-report jobs from QueueCloseReport: recomputes the
// reconciliation of a just-closed drawer, renders the PDF report in memory
// and mails it to the configured supervisor address.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/infra"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/model"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/reconcile"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/repository"
)

type CloseReportWorker struct {
	drawerRepo   repository.DrawerRepository
	saleRepo     repository.SaleRepository
	movementRepo repository.MovementRepository
	mailer       *infra.Mailer
	reportEmail  string
}

func NewCloseReportWorker(
	drawerRepo repository.DrawerRepository,
	saleRepo repository.SaleRepository,
	movementRepo repository.MovementRepository,
	mailer *infra.Mailer,
	reportEmail string,
) *CloseReportWorker {
	return &CloseReportWorker{
		drawerRepo:   drawerRepo,
		saleRepo:     saleRepo,
		movementRepo: movementRepo,
		mailer:       mailer,
		reportEmail:  reportEmail,
	}
}

// Process builds and mails the reconciliation report for a closed drawer.
// Returning an error makes the pool retry and eventually park the job.
func (w *CloseReportWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload CloseReportPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("close_report_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}
	if w.reportEmail == "" {
		return nil // delivery disabled
	}

	drawerID, err := uuid.Parse(payload.DrawerID)
	if err != nil {
		log.Error().Str("drawer_id", payload.DrawerID).Msg("close_report_worker: invalid drawer id")
		return nil
	}

	drawer, err := w.drawerRepo.FindByID(ctx, drawerID)
	if err != nil {
		return fmt.Errorf("close_report_worker: load drawer: %w", err)
	}
	if drawer.Status != model.DrawerStatusClosed {
		log.Warn().Str("drawer_id", payload.DrawerID).Msg("close_report_worker: drawer not closed — skipping")
		return nil
	}

	sales, err := w.saleRepo.ListByDrawer(ctx, drawer.ID)
	if err != nil {
		return fmt.Errorf("close_report_worker: load sales: %w", err)
	}
	movements, err := w.movementRepo.ListByDrawer(ctx, drawer.ID)
	if err != nil {
		return fmt.Errorf("close_report_worker: load movements: %w", err)
	}

	summary := reconcile.Compute(drawer.OpeningAmount, sales, movements)
	pdf, err := infra.GenerateCloseReportPDF(drawer, summary)
	if err != nil {
		return fmt.Errorf("close_report_worker: render pdf: %w", err)
	}

	subject := fmt.Sprintf("Cierre de caja — %s", drawer.OperatorName)
	body := fmt.Sprintf("Reporte de cierre de caja del %s.", drawer.OpenedAt.Format("02/01/2006"))
	filename := fmt.Sprintf("cierre_%s.pdf", drawer.ID)

	if err := w.mailer.SendReport(w.reportEmail, subject, body, pdf, filename); err != nil {
		return fmt.Errorf("close_report_worker: send mail: %w", err)
	}

	log.Info().Str("drawer_id", payload.DrawerID).Str("to", w.reportEmail).Msg("close report sent")
	return nil
}
