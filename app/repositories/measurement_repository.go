package repositories

import (
	"github.com/priyadarshi/darzi/app/models"
	"gorm.io/gorm"
)

// MeasurementRepository handles database operations for Measurement.
type MeasurementRepository struct {
	db *gorm.DB
}

func NewMeasurementRepository(db *gorm.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

// FindByID looks up a measurement by primary key.
func (r *MeasurementRepository) FindByID(id uint) (models.Measurement, error) {
	var m models.Measurement
	err := r.db.First(&m, id).Error
	return m, err
}

// ByCustomer returns all measurements for a customer, newest first.
func (r *MeasurementRepository) ByCustomer(customerID uint) ([]models.Measurement, error) {
	var ms []models.Measurement
	err := r.db.
		Where("customer_id = ?", customerID).
		Order("taken_on DESC").
		Find(&ms).Error
	return ms, err
}

// Create persists a new measurement record.
func (r *MeasurementRepository) Create(m *models.Measurement) error {
	return r.db.Create(m).Error
}

// Save persists changes to an existing measurement.
func (r *MeasurementRepository) Save(m *models.Measurement) error {
	return r.db.Save(m).Error
}

// Delete removes a measurement by primary key.
func (r *MeasurementRepository) Delete(id uint) error {
	return r.db.Delete(&models.Measurement{}, id).Error
}
