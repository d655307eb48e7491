package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/rumbos-envios/internal/model"
)

const fontName = "Helvetica"

// Generator renders route sheets with the core Helvetica font. Text is
// translated to cp1252, which covers Spanish.
type Generator struct {
	compress bool
}

func NewGenerator() *Generator {
	return &Generator{compress: true}
}

var stopColumns = []struct {
	title string
	width float64
}{
	{"#", 10},
	{"Tipo", 32},
	{"Dirección", 78},
	{"Contacto", 40},
	{"Teléfono", 28},
	{"Tracking", 38},
	{"Estado", 30},
	{"Hora est.", 21},
}

func (g *Generator) RunSheet(run model.DeliveryRun) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetCompression(g.compress)
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	title := "Hoja de ruta"
	if run.Name != nil && strings.TrimSpace(*run.Name) != "" {
		title += " - " + strings.TrimSpace(*run.Name)
	}
	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 9, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(fontName, "", 10)
	driver := "-"
	if run.Driver != nil {
		driver = run.Driver.Name
	}
	lines := []string{
		fmt.Sprintf("Fecha: %s    Estado: %s", formatDate(run.Date.Time), run.Status),
		fmt.Sprintf("Repartidor: %s    Vehículo: %s", driver, safeValue(run.Vehicle)),
		fmt.Sprintf("Horario estimado: %s - %s    Distancia estimada: %s", safeValue(run.EstimatedStart), safeValue(run.EstimatedEnd), formatKm(run.EstimatedDistanceKm)),
	}
	if run.Notes != nil && strings.TrimSpace(*run.Notes) != "" {
		lines = append(lines, "Notas: "+strings.TrimSpace(*run.Notes))
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	pdf.Ln(3)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Paradas (%d)", len(run.Stops))), "", 1, "L", false, 0, "")

	header := make([]string, len(stopColumns))
	for i, col := range stopColumns {
		header[i] = col.title
	}
	drawRow(pdf, tr, header, true)
	for _, stop := range run.Stops {
		drawRow(pdf, tr, stopRow(stop), false)
	}

	pdf.Ln(6)
	pdf.SetFont(fontName, "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Firma del repartidor: ______________________ /%s/", driver)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func stopRow(stop model.Stop) []string {
	address := stop.Address
	if stop.Reference != nil && strings.TrimSpace(*stop.Reference) != "" {
		address += " (" + strings.TrimSpace(*stop.Reference) + ")"
	}
	tracking := ""
	if stop.Shipment != nil {
		tracking = stop.Shipment.TrackingNumber
	}
	return []string{
		fmt.Sprintf("%d", stop.Sequence),
		stopTypeLabel(stop.Type),
		address,
		safeValue(stop.ContactName),
		safeValue(stop.ContactPhone),
		tracking,
		string(stop.Status),
		safeValue(stop.EstimatedArrival),
	}
}

func drawRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		width := stopColumns[i].width
		pdf.CellFormat(width, 7, fit(pdf, tr(col), width-2), "1", 0, "L", header, 0, "")
	}
	pdf.Ln(-1)
}

// fit shortens text until it fits in width, marking the cut with "...".
func fit(pdf *gofpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"...") > width {
		text = text[:len(text)-1]
	}
	return text + "..."
}

func stopTypeLabel(t model.StopType) string {
	switch t {
	case model.StopTypeCompanyPickup:
		return "Recolección"
	case model.StopTypeClientDelivery:
		return "Entrega"
	case model.StopTypeLogisticsPoint:
		return "Punto logístico"
	case model.StopTypeReturnToOrigin:
		return "Devolución"
	default:
		return string(t)
	}
}

func safeValue(value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return "-"
	}
	return *value
}

func formatKm(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f km", *value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}
