package model

import (
	"time"

	"github.com/google/uuid"
)

type PackageType struct {
	ID                    uuid.UUID `gorm:"column:id;primaryKey" json:"id"`
	Name                  string    `gorm:"column:nombre" json:"nombre" validate:"required,min=2"`
	Description           *string   `gorm:"column:descripcion" json:"descripcion"`
	MaxWeightKg           *float64  `gorm:"column:peso_max_kg" json:"peso_max_kg" validate:"omitempty,gt=0"`
	MaxLengthCm           *int      `gorm:"column:largo_max_cm" json:"largo_max_cm" validate:"omitempty,gt=0"`
	MaxWidthCm            *int      `gorm:"column:ancho_max_cm" json:"ancho_max_cm" validate:"omitempty,gt=0"`
	MaxHeightCm           *int      `gorm:"column:alto_max_cm" json:"alto_max_cm" validate:"omitempty,gt=0"`
	RequiresRefrigeration bool      `gorm:"column:requiere_refrigeracion" json:"requiere_refrigeracion"`
	Fragile               bool      `gorm:"column:es_fragil" json:"es_fragil"`
	Active                bool      `gorm:"column:activo" json:"activo"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PackageType) TableName() string { return "tipos_paquete" }

type ServiceType struct {
	ID                uuid.UUID `gorm:"column:id;primaryKey" json:"id"`
	Name              string    `gorm:"column:nombre" json:"nombre" validate:"required,min=2"`
	Description       *string   `gorm:"column:descripcion" json:"descripcion"`
	MinDeliveryHours  *int      `gorm:"column:tiempo_entrega_estimado_horas_min" json:"tiempo_entrega_estimado_horas_min" validate:"omitempty,gt=0"`
	MaxDeliveryHours  *int      `gorm:"column:tiempo_entrega_estimado_horas_max" json:"tiempo_entrega_estimado_horas_max" validate:"omitempty,gt=0"`
	AvailableWeekends bool      `gorm:"column:disponible_fin_semana" json:"disponible_fin_semana"`
	AvailableHolidays bool      `gorm:"column:disponible_feriados" json:"disponible_feriados"`
	Active            bool      `gorm:"column:activo" json:"activo"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ServiceType) TableName() string { return "tipos_servicio" }

// Rate is one distance band of a service calculator tariff.
type Rate struct {
	ID               uuid.UUID      `gorm:"column:id;primaryKey" json:"id"`
	ServiceTypeID    *uuid.UUID     `gorm:"column:tipo_servicio_id" json:"tipo_servicio_id"`
	CalculatorType   CalculatorType `gorm:"column:tipo_calculadora_servicio" json:"tipo_calculadora_servicio" validate:"required,oneof=express_moto express_auto programado_24h lowcost_72h personalizado"`
	Zone             *string        `gorm:"column:zona_geo" json:"zona_geo"`
	MinDistanceKm    float64        `gorm:"column:distancia_min_km" json:"distancia_min_km" validate:"gte=0"`
	MaxDistanceKm    float64        `gorm:"column:distancia_max_km" json:"distancia_max_km" validate:"gt=0"`
	BaseFare         float64        `gorm:"column:tarifa_base" json:"tarifa_base" validate:"gte=0"`
	ExtraKmFare      *float64       `gorm:"column:tarifa_km_adicional" json:"tarifa_km_adicional" validate:"omitempty,gte=0"`
	IncludedWeightKg *float64       `gorm:"column:peso_max_kg_adicional" json:"peso_max_kg_adicional" validate:"omitempty,gt=0"`
	ExtraKgFare      *float64       `gorm:"column:tarifa_kg_adicional" json:"tarifa_kg_adicional" validate:"omitempty,gte=0"`
	Active           bool           `gorm:"column:activo" json:"activo"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	ServiceType      *Ref           `gorm:"-" json:"tipo_servicio,omitempty"`
}

func (Rate) TableName() string { return "tarifas_distancia_calculadora" }

// Ref is the id+name projection used for joined lookups.
type Ref struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"nombre"`
}
