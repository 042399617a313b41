package infra

// pdf.go — reconciliation report rendering using go-pdf/fpdf.
// The report summarizes a closed drawer: opening amount, per-method sale
// totals, manual outflows, expected vs counted cash and the difference.
// Output goes to an in-memory buffer; delivery is the mailer's job.

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/model"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/reconcile"
)

// GenerateCloseReportPDF renders the close-of-drawer reconciliation report.
func GenerateCloseReportPDF(drawer *model.CashDrawer, summary reconcile.Summary) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Maxikiosco — Cierre de Caja", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Operador: %s", drawer.OperatorName), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Apertura: %s", drawer.OpenedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	if drawer.ClosedAt != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Cierre:   %s", drawer.ClosedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Totals table ──────────────────────────────────────────────────────────
	labelW := contentW * 0.6
	valueW := contentW * 0.4

	row := func(label string, amount decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(labelW, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, "$"+amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	row("Monto de apertura", summary.OpeningAmount, false)
	row(fmt.Sprintf("Ventas en efectivo (%d ventas)", summary.SalesCount), summary.SalesCash, false)
	row("Ventas con tarjeta", summary.SalesCard, false)
	row("Ventas por transferencia", summary.SalesTransfer, false)
	row(fmt.Sprintf("Egresos manuales (%d)", summary.MovementsCount), summary.TotalMovements.Neg(), false)
	pdf.Ln(2)
	row("Efectivo esperado", summary.ExpectedAmount, true)

	if drawer.ClosingAmount != nil {
		row("Efectivo declarado", *drawer.ClosingAmount, true)
	}
	if drawer.Difference != nil {
		row("Diferencia", *drawer.Difference, true)
	}

	// ── Notes ────────────────────────────────────────────────────────────────
	if drawer.Notes != nil && *drawer.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 4, "Notas: "+*drawer.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render report: %w", err)
	}
	return buf.Bytes(), nil
}
