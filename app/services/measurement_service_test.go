package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasurementCRUD(t *testing.T) {
	db := testDB(t)
	svc := NewMeasurementService(db)
	customer := seedCustomer(t, db, "asha@example.com")

	created, err := svc.Create(MeasurementInput{
		CustomerID: customer.ID,
		Type:       "Sherwani",
		Chest:      40,
		Waist:      34,
	})
	require.NoError(t, err)
	assert.False(t, created.TakenOn.IsZero())

	chest := 41.5
	updated, err := svc.Update(created.ID, MeasurementUpdate{Chest: &chest})
	require.NoError(t, err)
	assert.Equal(t, 41.5, updated.Chest)
	assert.Equal(t, 34.0, updated.Waist)

	list, err := svc.ByCustomer(customer.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(created.ID))
	assert.ErrorIs(t, svc.Delete(created.ID), ErrNotFound)
}

func TestMeasurementValidation(t *testing.T) {
	db := testDB(t)
	svc := NewMeasurementService(db)
	customer := seedCustomer(t, db, "asha@example.com")

	var vErr *ValidationError

	// Out-of-range dimension.
	_, err := svc.Create(MeasurementInput{CustomerID: customer.ID, Chest: 900})
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "chest")

	// Unknown customer.
	_, err = svc.Create(MeasurementInput{CustomerID: 9999, Chest: 40})
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "customerId")

	_, err = svc.ByCustomer(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
