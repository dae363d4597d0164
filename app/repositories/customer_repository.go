package repositories

import (
	"strings"

	"github.com/priyadarshi/darzi/app/models"
	"gorm.io/gorm"
)

// CustomerRepository handles database operations for Customer.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// All returns every customer ordered by name.
func (r *CustomerRepository) All() ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Order("first_name, last_name").Find(&customers).Error
	return customers, err
}

// FindByID looks up a customer by primary key.
func (r *CustomerRepository) FindByID(id uint) (models.Customer, error) {
	var customer models.Customer
	err := r.db.First(&customer, id).Error
	return customer, err
}

// Create persists a new customer record.
func (r *CustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Save persists changes to an existing customer.
func (r *CustomerRepository) Save(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Delete removes a customer and, by cascade, their measurements.
func (r *CustomerRepository) Delete(id uint) error {
	return r.db.Select("Measurements").Delete(&models.Customer{Model: gorm.Model{ID: id}}).Error
}

// EmailExists reports whether a customer with the email already exists,
// case-insensitively.
func (r *CustomerRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Customer{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

// OrderCount returns the number of orders belonging to the customer.
func (r *CustomerRepository) OrderCount(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("customer_id = ?", id).Count(&count).Error
	return count, err
}
