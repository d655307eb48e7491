package model

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryRun struct {
	ID                  uuid.UUID      `gorm:"column:id;primaryKey" json:"id"`
	Name                *string        `gorm:"column:nombre_reparto" json:"nombre_reparto" validate:"omitempty,min=3"`
	DriverID            uuid.UUID      `gorm:"column:repartidor_id" json:"repartidor_id" validate:"required"`
	Date                Date           `gorm:"column:fecha_reparto" json:"fecha_reparto" validate:"required"`
	Status              ShipmentStatus `gorm:"column:estatus" json:"estatus" validate:"required,run_status"`
	EstimatedStart      *string        `gorm:"column:hora_inicio_estimada" json:"hora_inicio_estimada" validate:"omitempty,hhmm"`
	EstimatedEnd        *string        `gorm:"column:hora_fin_estimada" json:"hora_fin_estimada" validate:"omitempty,hhmm"`
	EstimatedDistanceKm *float64       `gorm:"column:distancia_total_estimada_km" json:"distancia_total_estimada_km" validate:"omitempty,gt=0"`
	Vehicle             *string        `gorm:"column:vehiculo_utilizado" json:"vehiculo_utilizado"`
	Notes               *string        `gorm:"column:notas" json:"notas"`
	CreatedAt           time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Driver *Ref   `gorm:"-" json:"repartidor,omitempty"`
	Stops  []Stop `gorm:"-" json:"paradas_reparto,omitempty"`
}

func (DeliveryRun) TableName() string { return "repartos" }

type Stop struct {
	ID               uuid.UUID      `gorm:"column:id;primaryKey" json:"id"`
	RunID            uuid.UUID      `gorm:"column:reparto_id" json:"reparto_id" validate:"required"`
	ShipmentID       *uuid.UUID     `gorm:"column:envio_id" json:"envio_id"`
	Sequence         int            `gorm:"column:secuencia_parada" json:"secuencia_parada" validate:"gt=0"`
	Type             StopType       `gorm:"column:tipo_parada" json:"tipo_parada" validate:"required,oneof=recoleccion_empresa entrega_cliente punto_logistico devolucion_origen"`
	Address          string         `gorm:"column:direccion_parada" json:"direccion_parada" validate:"required,min=5"`
	Reference        *string        `gorm:"column:referencia_parada" json:"referencia_parada"`
	Lat              *float64       `gorm:"column:latitud_parada" json:"latitud_parada" validate:"omitempty,latitude"`
	Lng              *float64       `gorm:"column:longitud_parada" json:"longitud_parada" validate:"omitempty,longitude"`
	ContactName      *string        `gorm:"column:nombre_contacto_parada" json:"nombre_contacto_parada"`
	ContactPhone     *string        `gorm:"column:telefono_contacto_parada" json:"telefono_contacto_parada"`
	Notes            *string        `gorm:"column:notas_parada" json:"notas_parada"`
	EstimatedArrival *string        `gorm:"column:hora_estimada_llegada" json:"hora_estimada_llegada" validate:"omitempty,hhmm"`
	ArrivedAt        *time.Time     `gorm:"column:hora_real_llegada" json:"hora_real_llegada"`
	DepartedAt       *time.Time     `gorm:"column:hora_real_salida" json:"hora_real_salida"`
	Status           ShipmentStatus `gorm:"column:estatus_parada" json:"estatus_parada" validate:"required,stop_status"`
	DeliveryPhotoURL *string        `gorm:"column:foto_entrega_url" json:"foto_entrega_url" validate:"omitempty,url"`
	SignatureURL     *string        `gorm:"column:firma_receptor_url" json:"firma_receptor_url" validate:"omitempty,url"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Shipment *StopShipment `gorm:"-" json:"envio,omitempty"`
}

func (Stop) TableName() string { return "paradas_reparto" }

// StopShipment is the shipment projection joined into a run's stop list.
type StopShipment struct {
	ID                 uuid.UUID      `json:"id"`
	TrackingNumber     string         `json:"tracking_number"`
	DestinationAddress string         `json:"direccion_destino"`
	ClientID           uuid.UUID      `json:"cliente_id"`
	Status             ShipmentStatus `json:"estatus"`
	ClientName         *string        `json:"cliente_nombre,omitempty"`
}

// SequenceUpdate assigns a new sequence number to one stop.
type SequenceUpdate struct {
	StopID   uuid.UUID `json:"parada_id" validate:"required"`
	Sequence int       `json:"nueva_secuencia" validate:"gt=0"`
}

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)
