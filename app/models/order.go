package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status is the position of an order in the production sequence.
type Status int

const (
	StatusPending Status = iota
	StatusConfirmed
	StatusCutting
	StatusStitching
	StatusFitting
	StatusFinishing
	StatusReady
	StatusDelivered
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusPending:   "Pending",
	StatusConfirmed: "Confirmed",
	StatusCutting:   "Cutting",
	StatusStitching: "Stitching",
	StatusFitting:   "Fitting",
	StatusFinishing: "Finishing",
	StatusReady:     "Ready",
	StatusDelivered: "Delivered",
	StatusCancelled: "Cancelled",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether the numeric code maps to a defined status.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo enforces the order lifecycle: one step forward through
// the production sequence, or Cancelled from any non-terminal state.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.Valid() || s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return next == s+1
}

// Order is a single tailoring job. OrderNumber is the human-readable
// identifier, distinct from the numeric primary key.
type Order struct {
	gorm.Model
	CustomerID          uint            `gorm:"not null;index" json:"customerId"`
	Customer            *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	OrderNumber         string          `gorm:"uniqueIndex;size:40;not null" json:"orderNumber"`
	GarmentType         string          `gorm:"size:100;not null" json:"garmentType"`
	FabricType          string          `gorm:"size:100" json:"fabricType"`
	StyleDetails        string          `gorm:"type:text" json:"styleDetails"`
	SpecialInstructions string          `gorm:"type:text" json:"specialInstructions"`
	OrderDate           time.Time       `gorm:"not null;index" json:"orderDate"`
	DueDate             time.Time       `gorm:"not null;index" json:"dueDate"`
	TotalAmount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	AdvancePaid         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"advancePaid"`
	Status              Status          `gorm:"not null;default:0;index" json:"status"`
	Priority            int             `gorm:"not null;default:2" json:"priority"` // 1 high .. 3 low

	Progress []OrderProgress `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"progress,omitempty"`
}

// Balance is the outstanding amount. Derived, never stored.
func (o *Order) Balance() decimal.Decimal {
	return o.TotalAmount.Sub(o.AdvancePaid)
}

// OrderProgress is one entry in an order's append-only status history.
type OrderProgress struct {
	gorm.Model
	OrderID uint   `gorm:"not null;index" json:"orderId"`
	Status  Status `gorm:"not null" json:"status"`
	Note    string `gorm:"type:text" json:"note,omitempty"`
}
