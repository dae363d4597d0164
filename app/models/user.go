package models

import "gorm.io/gorm"

// Roles known to the system. Role is fixed at creation; there is no
// role-change flow.
const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
)

// User is an account that can authenticate. Username and email are
// unique case-insensitively: the service layer compares lower-cased
// values and the columns carry unique indexes as the last line of
// defence against concurrent registrations.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:512;not null" json:"-"` // salt:digest, never serialised
	Role         string `gorm:"size:50;not null;default:Customer" json:"role"`
	CustomerID   *uint  `gorm:"index" json:"customerId,omitempty"`
}
