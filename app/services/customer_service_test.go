package services

import (
	"testing"
	"time"

	"github.com/priyadarshi/darzi/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCRUD(t *testing.T) {
	db := testDB(t)
	svc := NewCustomerService(db)

	created, err := svc.Create(CustomerInput{
		FirstName: "Noor",
		LastName:  "Ahmed",
		Email:     "Noor@Example.com",
		Phone:     "9800000000",
		Address:   "12 Tailor Lane",
	})
	require.NoError(t, err)
	assert.Equal(t, "noor@example.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Noor Ahmed", got.DisplayName())

	phone := "9811111111"
	updated, err := svc.Update(created.ID, CustomerUpdate{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "9811111111", updated.Phone)
	assert.Equal(t, "Noor", updated.FirstName)

	list, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.Get(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerCreateValidation(t *testing.T) {
	svc := NewCustomerService(testDB(t))

	_, err := svc.Create(CustomerInput{FirstName: "OnlyFirst"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "lastName")
	assert.Contains(t, vErr.Fields, "email")
}

func TestDeleteCustomerRestrictedWhileOrdersExist(t *testing.T) {
	db := testDB(t)
	svc := NewCustomerService(db)
	customer := seedCustomer(t, db, "asha@example.com")
	seedOrder(t, db, customer.ID, models.StatusPending, time.Now().AddDate(0, 0, 7))

	assert.ErrorIs(t, svc.Delete(customer.ID), ErrConflict)

	// Still there.
	_, err := svc.Get(customer.ID)
	assert.NoError(t, err)
}

func TestDeleteCustomerCascadesMeasurements(t *testing.T) {
	db := testDB(t)
	svc := NewCustomerService(db)
	customer := seedCustomer(t, db, "asha@example.com")

	m := models.Measurement{CustomerID: customer.ID, Type: "Kurta", TakenOn: time.Now(), Chest: 40}
	require.NoError(t, db.Create(&m).Error)

	require.NoError(t, svc.Delete(customer.ID))

	var count int64
	require.NoError(t, db.Model(&models.Measurement{}).Where("customer_id = ?", customer.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteAbsentCustomerIsNoOp(t *testing.T) {
	svc := NewCustomerService(testDB(t))
	assert.NoError(t, svc.Delete(9999))
}
