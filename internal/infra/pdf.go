package infra

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"cosspos/internal/model"
)

// GenerarReporteCierre renders the shift-close reconciliation as a PDF for
// printing or archiving.
func GenerarReporteCierre(turno *model.Turno, gastos []model.Gasto) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Cierre de Caja"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Turno: %s", turno.ID), "", 1, "C", false, 0, "")
	if turno.ClosedAt != nil {
		pdf.CellFormat(0, 6, turno.ClosedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	fila := func(etiqueta, valor string) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(110, 7, tr(etiqueta), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, valor, "", 1, "R", false, 0, "")
	}

	fila("Monto inicial", "S/ "+turno.MontoInicial.String())
	fila("Ventas en efectivo", "S/ "+turno.VentasEfectivo.String())
	fila("Ventas digitales", "S/ "+turno.VentasDigital.String())
	fila("Ventas con tarjeta", "S/ "+turno.VentasTarjeta.String())
	fila("Ventas por banco", "S/ "+turno.VentasBanco.String())
	fila("Otras ventas", "S/ "+turno.VentasOtros.String())
	fila("Total de ventas", "S/ "+turno.TotalVentas.String())
	fila("Items vendidos", fmt.Sprintf("%d", turno.ItemsVendidos))
	fila("Gastos", "S/ "+turno.TotalGastos.String())

	pdf.Ln(2)
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(2)

	if turno.EfectivoEsperado != nil {
		fila("Efectivo esperado", "S/ "+turno.EfectivoEsperado.String())
	}
	if turno.EfectivoContado != nil {
		fila("Efectivo contado", "S/ "+turno.EfectivoContado.String())
	}
	if turno.Diferencia != nil {
		fila("Diferencia", "S/ "+turno.Diferencia.String())
	}
	if turno.NotasCierre != nil && *turno.NotasCierre != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, tr("Notas: "+*turno.NotasCierre), "", "L", false)
	}

	if len(gastos) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Gastos del turno", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, g := range gastos {
			pdf.CellFormat(140, 6, tr(g.Descripcion), "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 6, "S/ "+g.Monto.String(), "", 1, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generando pdf de cierre: %w", err)
	}
	return buf.Bytes(), nil
}
