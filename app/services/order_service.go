package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/priyadarshi/darzi/app/models"
	"github.com/priyadarshi/darzi/app/repositories"
	"github.com/priyadarshi/darzi/pkg/cache"
	"github.com/priyadarshi/darzi/pkg/event"
	"github.com/priyadarshi/darzi/pkg/metrics"
	"github.com/priyadarshi/darzi/pkg/validate"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EventOrderStatusChanged is fired after every successful status
// transition. Listeners feed the websocket channel and drop stale cache
// entries.
const EventOrderStatusChanged = "order.status_changed"

const pendingCacheKey = "orders:pending"
const pendingCacheTTL = 30 * time.Second

// StatusChange is the payload of EventOrderStatusChanged.
type StatusChange struct {
	OrderID     uint      `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Status      int       `json:"status"`
	StatusName  string    `json:"statusName"`
	Note        string    `json:"note,omitempty"`
	ChangedAt   time.Time `json:"changedAt"`
}

// OrderService implements the order lifecycle.
type OrderService struct {
	db        *gorm.DB
	orders    *repositories.OrderRepository
	customers *repositories.CustomerRepository
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:        db,
		orders:    repositories.NewOrderRepository(db),
		customers: repositories.NewCustomerRepository(db),
	}
}

// NewOrderCustomer is the inline customer block of OrderInput, used when
// the order is for someone not yet in the book.
type NewOrderCustomer struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone" validate:"nullable,max=30"`
}

// OrderInput is the create payload. Exactly one of CustomerID and
// Customer must be supplied. Any present measurement field triggers the
// creation of a measurement record alongside the order.
type OrderInput struct {
	CustomerID *uint             `json:"customerId"`
	Customer   *NewOrderCustomer `json:"customer"`

	GarmentType         string          `json:"garmentType" validate:"required,max=100"`
	FabricType          string          `json:"fabricType" validate:"nullable,max=100"`
	StyleDetails        string          `json:"styleDetails" validate:"nullable,max=2000"`
	SpecialInstructions string          `json:"specialInstructions" validate:"nullable,max=2000"`
	DueDate             string          `json:"dueDate" validate:"required,date"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	AdvancePaid         decimal.Decimal `json:"advancePaid"`
	Priority            int             `json:"priority" validate:"nullable,gte=1,lte=3"`

	Chest     *float64 `json:"chest" validate:"nullable,gte=0,lte=500"`
	Waist     *float64 `json:"waist" validate:"nullable,gte=0,lte=500"`
	Hip       *float64 `json:"hip" validate:"nullable,gte=0,lte=500"`
	Shoulder  *float64 `json:"shoulder" validate:"nullable,gte=0,lte=500"`
	ArmLength *float64 `json:"armLength" validate:"nullable,gte=0,lte=500"`
	Inseam    *float64 `json:"inseam" validate:"nullable,gte=0,lte=500"`
	Neck      *float64 `json:"neck" validate:"nullable,gte=0,lte=500"`
}

// OrderUpdate carries only the fields present in the request body.
// Nil pointers leave the stored value untouched.
type OrderUpdate struct {
	GarmentType         *string          `json:"garmentType" validate:"nullable,max=100"`
	FabricType          *string          `json:"fabricType" validate:"nullable,max=100"`
	StyleDetails        *string          `json:"styleDetails" validate:"nullable,max=2000"`
	SpecialInstructions *string          `json:"specialInstructions" validate:"nullable,max=2000"`
	DueDate             *string          `json:"dueDate" validate:"nullable,date"`
	TotalAmount         *decimal.Decimal `json:"totalAmount"`
	AdvancePaid         *decimal.Decimal `json:"advancePaid"`
	Priority            *int             `json:"priority" validate:"nullable,gte=1,lte=3"`
}

// OrderListItem is the flattened projection used by listings. Balance is
// derived, never stored.
type OrderListItem struct {
	ID           uint            `json:"id"`
	OrderNumber  string          `json:"orderNumber"`
	CustomerID   uint            `json:"customerId"`
	CustomerName string          `json:"customerName"`
	GarmentType  string          `json:"garmentType"`
	OrderDate    time.Time       `json:"orderDate"`
	DueDate      time.Time       `json:"dueDate"`
	Status       int             `json:"status"`
	StatusName   string          `json:"statusName"`
	Priority     int             `json:"priority"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	AdvancePaid  decimal.Decimal `json:"advancePaid"`
	Balance      decimal.Decimal `json:"balance"`
}

// OrderPage is one page of the listing plus pagination metadata.
type OrderPage struct {
	Items      []OrderListItem `json:"items"`
	TotalCount int64           `json:"totalCount"`
	PageNumber int             `json:"pageNumber"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

// Create places a new order. The order, its initial progress entry, a
// freshly created customer if one was supplied inline, and an optional
// measurement record are written in a single transaction.
func (s *OrderService) Create(in OrderInput) (*models.Order, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, &ValidationError{Fields: errs}
	}
	if err := validateOrderMoney(in.TotalAmount, in.AdvancePaid); err != nil {
		return nil, err
	}

	if (in.CustomerID == nil) == (in.Customer == nil) {
		return nil, NewValidationError("customerId", "supply either an existing customerId or new customer details, not both")
	}
	if in.Customer != nil {
		if errs := validate.Struct(*in.Customer); validate.HasErrors(errs) {
			return nil, &ValidationError{Fields: errs}
		}
	}

	dueDate, err := validate.ParseDate(in.DueDate)
	if err != nil {
		return nil, NewValidationError("dueDate", "is not a valid date")
	}
	if beforeToday(dueDate) {
		return nil, NewValidationError("dueDate", "must not be in the past")
	}

	priority := in.Priority
	if priority == 0 {
		priority = 2
	}

	now := time.Now()
	order := models.Order{
		OrderNumber:         newOrderNumber(now),
		GarmentType:         strings.TrimSpace(in.GarmentType),
		FabricType:          strings.TrimSpace(in.FabricType),
		StyleDetails:        in.StyleDetails,
		SpecialInstructions: in.SpecialInstructions,
		OrderDate:           now,
		DueDate:             dueDate,
		TotalAmount:         in.TotalAmount,
		AdvancePaid:         in.AdvancePaid,
		Status:              models.StatusPending,
		Priority:            priority,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		customerID, err := s.resolveCustomer(tx, in)
		if err != nil {
			return err
		}
		order.CustomerID = customerID

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		progress := models.OrderProgress{
			OrderID: order.ID,
			Status:  models.StatusPending,
			Note:    "Order placed",
		}
		if err := tx.Create(&progress).Error; err != nil {
			return err
		}

		if m := in.measurement(customerID, order.ID, now); m != nil {
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	cache.Del(pendingCacheKey)

	return s.Get(order.ID)
}

// resolveCustomer returns the id of the order's customer, creating the
// record when inline details were supplied.
func (s *OrderService) resolveCustomer(tx *gorm.DB, in OrderInput) (uint, error) {
	if in.CustomerID != nil {
		var customer models.Customer
		if err := tx.First(&customer, *in.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, NewValidationError("customerId", "customer does not exist")
			}
			return 0, err
		}
		return customer.ID, nil
	}

	customer := models.Customer{
		FirstName: strings.TrimSpace(in.Customer.FirstName),
		LastName:  strings.TrimSpace(in.Customer.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Customer.Email)),
		Phone:     strings.TrimSpace(in.Customer.Phone),
	}
	if err := tx.Create(&customer).Error; err != nil {
		return 0, err
	}
	return customer.ID, nil
}

// measurement builds the measurement record implied by the order payload,
// or nil when no measurement field was supplied.
func (in *OrderInput) measurement(customerID, orderID uint, takenOn time.Time) *models.Measurement {
	supplied := in.Chest != nil || in.Waist != nil || in.Hip != nil ||
		in.Shoulder != nil || in.ArmLength != nil || in.Inseam != nil || in.Neck != nil
	if !supplied {
		return nil
	}

	deref := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}

	return &models.Measurement{
		CustomerID: customerID,
		OrderID:    &orderID,
		Type:       in.GarmentType,
		TakenOn:    takenOn,
		Chest:      deref(in.Chest),
		Waist:      deref(in.Waist),
		Hip:        deref(in.Hip),
		Shoulder:   deref(in.Shoulder),
		ArmLength:  deref(in.ArmLength),
		Inseam:     deref(in.Inseam),
		Neck:       deref(in.Neck),
	}
}

// Get returns the order with its customer and full progress history.
func (s *OrderService) Get(id uint) (*models.Order, error) {
	order, err := s.orders.FindWithDetails(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Update applies the fields present in the payload and returns the
// refreshed record. Status changes go through UpdateStatus, never here.
func (s *OrderService) Update(id uint, in OrderUpdate) (*models.Order, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, &ValidationError{Fields: errs}
	}

	order, err := s.orders.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if in.GarmentType != nil {
		order.GarmentType = strings.TrimSpace(*in.GarmentType)
	}
	if in.FabricType != nil {
		order.FabricType = strings.TrimSpace(*in.FabricType)
	}
	if in.StyleDetails != nil {
		order.StyleDetails = *in.StyleDetails
	}
	if in.SpecialInstructions != nil {
		order.SpecialInstructions = *in.SpecialInstructions
	}
	if in.DueDate != nil {
		dueDate, err := validate.ParseDate(*in.DueDate)
		if err != nil {
			return nil, NewValidationError("dueDate", "is not a valid date")
		}
		order.DueDate = dueDate
	}
	if in.TotalAmount != nil {
		order.TotalAmount = *in.TotalAmount
	}
	if in.AdvancePaid != nil {
		order.AdvancePaid = *in.AdvancePaid
	}
	if err := validateOrderMoney(order.TotalAmount, order.AdvancePaid); err != nil {
		return nil, err
	}
	if in.Priority != nil {
		order.Priority = *in.Priority
	}

	if err := s.orders.Save(&order); err != nil {
		return nil, err
	}
	cache.Del(pendingCacheKey)

	return s.Get(order.ID)
}

// UpdateStatus moves the order one step forward through the production
// sequence, or cancels it. Every accepted transition appends a progress
// entry and notifies listeners.
func (s *OrderService) UpdateStatus(id uint, code int, note string) (*models.Order, error) {
	next := models.Status(code)
	if !next.Valid() {
		return nil, NewValidationError("status", fmt.Sprintf("%d is not a valid status code", code))
	}

	order, err := s.orders.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, NewValidationError("status",
			fmt.Sprintf("cannot move from %s to %s", order.Status, next))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", next).Error; err != nil {
			return err
		}
		progress := models.OrderProgress{OrderID: order.ID, Status: next, Note: note}
		return tx.Create(&progress).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(next.String()).Inc()
	cache.Del(pendingCacheKey)
	event.Fire(EventOrderStatusChanged, StatusChange{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      int(next),
		StatusName:  next.String(),
		Note:        note,
		ChangedAt:   time.Now(),
	})

	return s.Get(order.ID)
}

// Delete removes an order and its progress history.
func (s *OrderService) Delete(id uint) error {
	order, err := s.orders.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.orders.Delete(&order); err != nil {
		return err
	}
	cache.Del(pendingCacheKey)
	return nil
}

// List returns one page of the order book. Page numbers are 1-indexed;
// out-of-range parameters are clamped rather than rejected.
func (s *OrderService) List(page, pageSize int, customerID *uint, sortBy string) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	orders, total, err := s.orders.List(repositories.ListParams{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: customerID,
		SortBy:     sortBy,
	})
	if err != nil {
		return nil, err
	}

	return &OrderPage{
		Items:      project(orders),
		TotalCount: total,
		PageNumber: page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Pending returns every order still in production, soonest due first.
// The result is cached briefly; any order write drops the cache entry.
func (s *OrderService) Pending() ([]OrderListItem, error) {
	var items []OrderListItem
	if cache.Get(pendingCacheKey, &items) {
		return items, nil
	}

	orders, err := s.orders.Pending()
	if err != nil {
		return nil, err
	}

	items = project(orders)
	_ = cache.Set(pendingCacheKey, items, pendingCacheTTL)
	return items, nil
}

// ByCustomer lists a customer's orders, newest first.
func (s *OrderService) ByCustomer(customerID uint) ([]models.Order, error) {
	if _, err := s.customers.FindByID(customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.orders.ByCustomer(customerID)
}

// Progress returns the append-only status history of an order.
func (s *OrderService) Progress(id uint) ([]models.OrderProgress, error) {
	if _, err := s.orders.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.orders.ProgressFor(id)
}

func project(orders []models.Order) []OrderListItem {
	items := make([]OrderListItem, 0, len(orders))
	for i := range orders {
		o := &orders[i]

		name := "Unknown"
		if o.Customer != nil {
			name = o.Customer.DisplayName()
		}

		items = append(items, OrderListItem{
			ID:           o.ID,
			OrderNumber:  o.OrderNumber,
			CustomerID:   o.CustomerID,
			CustomerName: name,
			GarmentType:  o.GarmentType,
			OrderDate:    o.OrderDate,
			DueDate:      o.DueDate,
			Status:       int(o.Status),
			StatusName:   o.Status.String(),
			Priority:     o.Priority,
			TotalAmount:  o.TotalAmount,
			AdvancePaid:  o.AdvancePaid,
			Balance:      o.Balance(),
		})
	}
	return items
}

func validateOrderMoney(total, advance decimal.Decimal) error {
	if total.IsNegative() {
		return NewValidationError("totalAmount", "must not be negative")
	}
	if advance.IsNegative() {
		return NewValidationError("advancePaid", "must not be negative")
	}
	if advance.GreaterThan(total) {
		return NewValidationError("advancePaid", "must not exceed the total amount")
	}
	return nil
}

// newOrderNumber builds the human-readable identifier shown on receipts,
// e.g. ORD-20260901143020-a1b2c3d4.
func newOrderNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "ORD-" + now.Format("20060102150405") + "-" + suffix
}

// beforeToday compares calendar dates, each in its own location, so a
// date-only due date parsed as UTC midnight still counts as today. Due
// today is fine.
func beforeToday(t time.Time) bool {
	now := time.Now()
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return date.Before(today)
}
