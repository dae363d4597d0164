package services

import (
	"errors"
	"time"

	"github.com/priyadarshi/darzi/app/models"
	"github.com/priyadarshi/darzi/app/repositories"
	"github.com/priyadarshi/darzi/pkg/validate"
	"gorm.io/gorm"
)

// MeasurementService manages body measurement records.
type MeasurementService struct {
	measurements *repositories.MeasurementRepository
	customers    *repositories.CustomerRepository
}

func NewMeasurementService(db *gorm.DB) *MeasurementService {
	return &MeasurementService{
		measurements: repositories.NewMeasurementRepository(db),
		customers:    repositories.NewCustomerRepository(db),
	}
}

// MeasurementInput is the create payload. Dimensions are inches; absent
// fields are stored as zero.
type MeasurementInput struct {
	CustomerID uint    `json:"customerId" validate:"required"`
	OrderID    *uint   `json:"orderId"`
	Type       string  `json:"type" validate:"nullable,max=100"`
	TakenOn    string  `json:"takenOn" validate:"nullable,date"`
	Chest      float64 `json:"chest" validate:"gte=0,lte=500"`
	Waist      float64 `json:"waist" validate:"gte=0,lte=500"`
	Hip        float64 `json:"hip" validate:"gte=0,lte=500"`
	Shoulder   float64 `json:"shoulder" validate:"gte=0,lte=500"`
	ArmLength  float64 `json:"armLength" validate:"gte=0,lte=500"`
	Inseam     float64 `json:"inseam" validate:"gte=0,lte=500"`
	Neck       float64 `json:"neck" validate:"gte=0,lte=500"`
	Notes      string  `json:"notes" validate:"nullable,max=1000"`
}

// MeasurementUpdate carries only the fields present in the request body.
type MeasurementUpdate struct {
	Type      *string  `json:"type" validate:"nullable,max=100"`
	TakenOn   *string  `json:"takenOn" validate:"nullable,date"`
	Chest     *float64 `json:"chest" validate:"nullable,gte=0,lte=500"`
	Waist     *float64 `json:"waist" validate:"nullable,gte=0,lte=500"`
	Hip       *float64 `json:"hip" validate:"nullable,gte=0,lte=500"`
	Shoulder  *float64 `json:"shoulder" validate:"nullable,gte=0,lte=500"`
	ArmLength *float64 `json:"armLength" validate:"nullable,gte=0,lte=500"`
	Inseam    *float64 `json:"inseam" validate:"nullable,gte=0,lte=500"`
	Neck      *float64 `json:"neck" validate:"nullable,gte=0,lte=500"`
	Notes     *string  `json:"notes" validate:"nullable,max=1000"`
}

// ByCustomer lists a customer's measurements, newest first.
func (s *MeasurementService) ByCustomer(customerID uint) ([]models.Measurement, error) {
	if _, err := s.customers.FindByID(customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.measurements.ByCustomer(customerID)
}

// Get returns one measurement or ErrNotFound.
func (s *MeasurementService) Get(id uint) (*models.Measurement, error) {
	m, err := s.measurements.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create records a new set of measurements for an existing customer.
func (s *MeasurementService) Create(in MeasurementInput) (*models.Measurement, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, &ValidationError{Fields: errs}
	}

	if _, err := s.customers.FindByID(in.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("customerId", "customer does not exist")
		}
		return nil, err
	}

	takenOn := time.Now()
	if in.TakenOn != "" {
		takenOn, _ = validate.ParseDate(in.TakenOn)
	}

	m := models.Measurement{
		CustomerID: in.CustomerID,
		OrderID:    in.OrderID,
		Type:       in.Type,
		TakenOn:    takenOn,
		Chest:      in.Chest,
		Waist:      in.Waist,
		Hip:        in.Hip,
		Shoulder:   in.Shoulder,
		ArmLength:  in.ArmLength,
		Inseam:     in.Inseam,
		Neck:       in.Neck,
		Notes:      in.Notes,
	}
	if err := s.measurements.Create(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Update applies the fields present in the payload.
func (s *MeasurementService) Update(id uint, in MeasurementUpdate) (*models.Measurement, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, &ValidationError{Fields: errs}
	}

	m, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Type != nil {
		m.Type = *in.Type
	}
	if in.TakenOn != nil {
		if t, err := validate.ParseDate(*in.TakenOn); err == nil {
			m.TakenOn = t
		}
	}
	if in.Chest != nil {
		m.Chest = *in.Chest
	}
	if in.Waist != nil {
		m.Waist = *in.Waist
	}
	if in.Hip != nil {
		m.Hip = *in.Hip
	}
	if in.Shoulder != nil {
		m.Shoulder = *in.Shoulder
	}
	if in.ArmLength != nil {
		m.ArmLength = *in.ArmLength
	}
	if in.Inseam != nil {
		m.Inseam = *in.Inseam
	}
	if in.Neck != nil {
		m.Neck = *in.Neck
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}

	if err := s.measurements.Save(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a measurement. Unknown ids return ErrNotFound.
func (s *MeasurementService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.measurements.Delete(id)
}
