package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/rumbos-envios/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestRunSheet(t *testing.T) {
	run := model.DeliveryRun{
		ID:     uuid.New(),
		Name:   ptr("Lote Distribuidora Sur"),
		Date:   model.NewDate(time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)),
		Status: model.StatusPendingPickup,
		Driver: &model.Ref{Name: "Mario Ruiz"},
		Stops: []model.Stop{
			{Sequence: 1, Type: model.StopTypeCompanyPickup, Address: "Av. Independencia 2100", Status: model.StatusPendingPickup},
			{
				Sequence: 2, Type: model.StopTypeClientDelivery,
				Address:  "Calle " + strings.Repeat("Muy Larga ", 20),
				Status:   model.StatusPendingPickup,
				Shipment: &model.StopShipment{TrackingNumber: "RUM12345678ABCDE"},
			},
		},
	}

	content, err := (&Generator{}).RunSheet(run)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
	assert.Contains(t, string(content), "Hoja de ruta - Lote Distribuidora Sur")
	assert.Contains(t, string(content), "RUM12345678ABCDE")
	assert.Contains(t, string(content), "Mario Ruiz")

	_, err = NewGenerator().RunSheet(run)
	require.NoError(t, err)
}

func TestRunSheetWithoutStops(t *testing.T) {
	content, err := NewGenerator().RunSheet(model.DeliveryRun{ID: uuid.New()})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}
