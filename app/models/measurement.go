package models

import (
	"time"

	"gorm.io/gorm"
)

// Measurement is a set of body measurements for a customer, optionally
// tied to the order it was taken for. All dimensions are in inches.
type Measurement struct {
	gorm.Model
	CustomerID uint      `gorm:"not null;index" json:"customerId"`
	OrderID    *uint     `gorm:"index" json:"orderId,omitempty"`
	Type       string    `gorm:"size:100" json:"type"` // garment type the measurements were taken for
	TakenOn    time.Time `gorm:"not null" json:"takenOn"`
	Chest      float64   `json:"chest"`
	Waist      float64   `json:"waist"`
	Hip        float64   `json:"hip"`
	Shoulder   float64   `json:"shoulder"`
	ArmLength  float64   `json:"armLength"`
	Inseam     float64   `json:"inseam"`
	Neck       float64   `json:"neck"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
}
