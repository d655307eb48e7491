package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (c *Company) BeforeCreate(*gorm.DB) error     { newID(&c.ID); return nil }
func (c *Client) BeforeCreate(*gorm.DB) error      { newID(&c.ID); return nil }
func (d *Driver) BeforeCreate(*gorm.DB) error      { newID(&d.ID); return nil }
func (p *PackageType) BeforeCreate(*gorm.DB) error { newID(&p.ID); return nil }
func (s *ServiceType) BeforeCreate(*gorm.DB) error { newID(&s.ID); return nil }
func (r *Rate) BeforeCreate(*gorm.DB) error        { newID(&r.ID); return nil }
func (s *Shipment) BeforeCreate(*gorm.DB) error    { newID(&s.ID); return nil }
func (r *DeliveryRun) BeforeCreate(*gorm.DB) error { newID(&r.ID); return nil }
func (s *Stop) BeforeCreate(*gorm.DB) error        { newID(&s.ID); return nil }
