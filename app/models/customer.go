package models

import "gorm.io/gorm"

// Customer is a person or business receiving tailoring services.
// Created explicitly by an admin, or implicitly during registration and
// order creation.
type Customer struct {
	gorm.Model
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone     string `gorm:"size:30" json:"phone"`
	Address   string `gorm:"type:text" json:"address"`

	// Orders are financial records: deletion of a customer is restricted
	// while any exist (enforced in the service). Measurements cascade.
	Orders       []Order       `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
	Measurements []Measurement `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"measurements,omitempty"`
}

// DisplayName is the customer name shown in order listings.
func (c *Customer) DisplayName() string {
	return c.FirstName + " " + c.LastName
}
