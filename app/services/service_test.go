package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/priyadarshi/darzi/app/models"
	"github.com/priyadarshi/darzi/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testDB opens a per-test in-memory database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Order{},
		&models.OrderProgress{},
		&models.Measurement{},
	))
	return db
}

// seedCustomer inserts a customer directly, bypassing the service.
func seedCustomer(t *testing.T, db *gorm.DB, email string) models.Customer {
	t.Helper()

	c := models.Customer{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     email,
		Phone:     "9876543210",
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// seedOrder inserts an order directly, bypassing the service.
func seedOrder(t *testing.T, db *gorm.DB, customerID uint, status models.Status, due time.Time) models.Order {
	t.Helper()

	o := models.Order{
		CustomerID:  customerID,
		OrderNumber: newOrderNumber(time.Now()),
		GarmentType: "Sherwani",
		OrderDate:   time.Now(),
		DueDate:     due,
		TotalAmount: decimal.NewFromInt(500),
		AdvancePaid: decimal.NewFromInt(200),
		Status:      status,
		Priority:    2,
	}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}
