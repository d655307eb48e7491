package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/rumbos-envios/internal/model"
)

const shipmentsSheet = "Envíos"

var shipmentHeaders = []string{
	"Tracking",
	"Fecha solicitud",
	"Cliente",
	"Empresa origen",
	"Dirección origen",
	"Dirección destino",
	"Tipo de servicio",
	"Estado",
	"Repartidor",
	"Paquetes",
	"Peso (kg)",
	"Cobro en destino",
	"Costo total",
	"Fecha entrega",
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Shipments writes one header row and one row per shipment.
func (g *Generator) Shipments(rows []model.Shipment) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", shipmentsSheet); err != nil {
		return nil, err
	}

	set := func(col, row int, value interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return file.SetCellValue(shipmentsSheet, cell, value)
	}

	for i, header := range shipmentHeaders {
		if err := set(i+1, 1, header); err != nil {
			return nil, err
		}
	}
	headerStyle, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(shipmentHeaders), 1)
	if err := file.SetCellStyle(shipmentsSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	for i, shipment := range rows {
		values := shipmentRow(shipment)
		for col, value := range values {
			if err := set(col+1, i+2, value); err != nil {
				return nil, err
			}
		}
	}

	_ = file.SetColWidth(shipmentsSheet, "A", "A", 22)
	_ = file.SetColWidth(shipmentsSheet, "B", "B", 18)
	_ = file.SetColWidth(shipmentsSheet, "C", "D", 28)
	_ = file.SetColWidth(shipmentsSheet, "E", "F", 40)
	_ = file.SetColWidth(shipmentsSheet, "G", "I", 20)
	_ = file.SetColWidth(shipmentsSheet, "J", "N", 14)
	_ = file.SetPanes(shipmentsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func shipmentRow(s model.Shipment) []interface{} {
	collect := "No"
	if s.CollectOnDelivery {
		collect = "Sí"
		if s.CollectAmount != nil {
			collect = fmt.Sprintf("Sí (%.2f)", *s.CollectAmount)
		}
	}
	return []interface{}{
		s.TrackingNumber,
		formatDateTime(s.RequestedAt),
		refName(s.Client),
		refName(s.OriginCompany),
		s.OriginAddress,
		s.DestinationAddress,
		refName(s.ServiceType),
		string(s.Status),
		refName(s.AssignedDriver),
		s.PackageCount,
		formatFloat(s.EstimatedWeightKg),
		collect,
		formatFloat(s.TotalCost),
		formatTimePtr(s.DeliveredAt),
	}
}

func refName(ref *model.Ref) string {
	if ref == nil {
		return ""
	}
	return ref.Name
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDateTime(*t)
}

func formatFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *value)
}
