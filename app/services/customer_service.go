package services

import (
	"errors"
	"strings"

	"github.com/priyadarshi/darzi/app/models"
	"github.com/priyadarshi/darzi/app/repositories"
	"github.com/priyadarshi/darzi/pkg/validate"
	"gorm.io/gorm"
)

// CustomerService handles the customer book.
type CustomerService struct {
	customers *repositories.CustomerRepository
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{customers: repositories.NewCustomerRepository(db)}
}

// CustomerInput is the create payload.
type CustomerInput struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone" validate:"nullable,max=30"`
	Address   string `json:"address" validate:"nullable,max=500"`
}

// CustomerUpdate carries only the fields present in the request body.
// Nil pointers leave the stored value untouched.
type CustomerUpdate struct {
	FirstName *string `json:"firstName" validate:"nullable,max=100"`
	LastName  *string `json:"lastName" validate:"nullable,max=100"`
	Email     *string `json:"email" validate:"nullable,email,max=255"`
	Phone     *string `json:"phone" validate:"nullable,max=30"`
	Address   *string `json:"address" validate:"nullable,max=500"`
}

// List returns every customer ordered by name.
func (s *CustomerService) List() ([]models.Customer, error) {
	return s.customers.All()
}

// Get returns one customer or ErrNotFound.
func (s *CustomerService) Get(id uint) (*models.Customer, error) {
	customer, err := s.customers.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create adds a customer to the book.
func (s *CustomerService) Create(in CustomerInput) (*models.Customer, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, &ValidationError{Fields: errs}
	}

	customer := models.Customer{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
	}
	if err := s.customers.Create(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update applies the fields present in the payload and returns the
// refreshed record.
func (s *CustomerService) Update(id uint, in CustomerUpdate) (*models.Customer, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, &ValidationError{Fields: errs}
	}

	customer, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		customer.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		customer.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		customer.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		customer.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		customer.Address = strings.TrimSpace(*in.Address)
	}

	if err := s.customers.Save(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer. Orders are financial records, so deletion is
// refused while any exist; measurements go with the customer. Deleting an
// absent customer succeeds as a no-op.
func (s *CustomerService) Delete(id uint) error {
	_, err := s.customers.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	count, err := s.customers.OrderCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}

	return s.customers.Delete(id)
}
