package model

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID            uuid.UUID `gorm:"column:id;primaryKey" json:"id"`
	Name          string    `gorm:"column:nombre" json:"nombre" validate:"required,min=2"`
	LegalName     *string   `gorm:"column:razon_social" json:"razon_social"`
	TaxID         *string   `gorm:"column:rfc" json:"rfc" validate:"omitempty,max=13"`
	FiscalAddress *string   `gorm:"column:direccion_fiscal" json:"direccion_fiscal"`
	Latitude      *float64  `gorm:"column:latitud" json:"latitud" validate:"omitempty,latitude"`
	Longitude     *float64  `gorm:"column:longitud" json:"longitud" validate:"omitempty,longitude"`
	ContactPhone  *string   `gorm:"column:telefono_contacto" json:"telefono_contacto"`
	ContactEmail  *string   `gorm:"column:email_contacto" json:"email_contacto" validate:"omitempty,email"`
	ContactPerson *string   `gorm:"column:nombre_responsable" json:"nombre_responsable"`
	Website       *string   `gorm:"column:sitio_web" json:"sitio_web" validate:"omitempty,url"`
	LogoURL       *string   `gorm:"column:logo_url" json:"logo_url" validate:"omitempty,url"`
	Active        bool      `gorm:"column:activa" json:"activa"`
	Notes         *string   `gorm:"column:notas" json:"notas"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Company) TableName() string { return "empresas" }

type Client struct {
	ID             uuid.UUID  `gorm:"column:id;primaryKey" json:"id"`
	FullName       string     `gorm:"column:nombre_completo" json:"nombre_completo" validate:"required,min=2"`
	Email          *string    `gorm:"column:email" json:"email" validate:"omitempty,email"`
	Phone          *string    `gorm:"column:telefono" json:"telefono"`
	DefaultAddress *string    `gorm:"column:direccion_predeterminada" json:"direccion_predeterminada"`
	DefaultLat     *float64   `gorm:"column:latitud_predeterminada" json:"latitud_predeterminada" validate:"omitempty,latitude"`
	DefaultLng     *float64   `gorm:"column:longitud_predeterminada" json:"longitud_predeterminada" validate:"omitempty,longitude"`
	CompanyID      *uuid.UUID `gorm:"column:empresa_id" json:"empresa_id"`
	BirthDate      *Date      `gorm:"column:fecha_nacimiento" json:"fecha_nacimiento"`
	InternalNotes  *string    `gorm:"column:notas_internas" json:"notas_internas"`
	Active         bool       `gorm:"column:activo" json:"activo"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string { return "clientes" }
