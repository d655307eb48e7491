package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Driver struct {
	ID               uuid.UUID    `gorm:"column:id;primaryKey" json:"id"`
	UserID           *uuid.UUID   `gorm:"column:user_id" json:"user_id"`
	FullName         string       `gorm:"column:nombre_completo" json:"nombre_completo" validate:"required,min=2"`
	Phone            string       `gorm:"column:telefono" json:"telefono" validate:"required,min=8,phone"`
	Email            *string      `gorm:"column:email" json:"email" validate:"omitempty,email"`
	BirthDate        *Date        `gorm:"column:fecha_nacimiento" json:"fecha_nacimiento"`
	Address          *string      `gorm:"column:direccion" json:"direccion"`
	VehicleType      *VehicleType `gorm:"column:tipo_vehiculo" json:"tipo_vehiculo" validate:"omitempty,oneof=moto auto bicicleta utilitario_pequeno utilitario_grande"`
	VehicleBrand     *string      `gorm:"column:marca_vehiculo" json:"marca_vehiculo"`
	VehicleModel     *string      `gorm:"column:modelo_vehiculo" json:"modelo_vehiculo"`
	VehicleYear      *int         `gorm:"column:anio_vehiculo" json:"anio_vehiculo" validate:"omitempty,min=1950,max=2100"`
	VehiclePlate     *string      `gorm:"column:placa_vehiculo" json:"placa_vehiculo"`
	LicenseNumber    *string      `gorm:"column:numero_licencia" json:"numero_licencia"`
	LicenseExpiresOn *Date        `gorm:"column:fecha_vencimiento_licencia" json:"fecha_vencimiento_licencia"`
	Status           DriverStatus `gorm:"column:estatus" json:"estatus" validate:"required,oneof=disponible en_ruta ocupado_otro inactivo en_mantenimiento"`
	ProfilePhotoURL  *string      `gorm:"column:foto_perfil_url" json:"foto_perfil_url" validate:"omitempty,url"`
	AverageRating    *float64     `gorm:"column:promedio_calificacion" json:"promedio_calificacion" validate:"omitempty,min=0,max=5"`
	Active           bool         `gorm:"column:activo" json:"activo"`
	CreatedAt        time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Driver) TableName() string { return "repartidores" }

// VehicleLabel joins the vehicle descriptors into a single display string.
func (d Driver) VehicleLabel() string {
	parts := make([]string, 0, 4)
	if d.VehicleType != nil {
		parts = append(parts, string(*d.VehicleType))
	}
	for _, part := range []*string{d.VehicleBrand, d.VehicleModel, d.VehiclePlate} {
		if part != nil && *part != "" {
			parts = append(parts, *part)
		}
	}
	return strings.Join(parts, " ")
}
