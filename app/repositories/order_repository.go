package repositories

import (
	"time"

	"github.com/priyadarshi/darzi/app/models"
	"gorm.io/gorm"
)

// ListParams selects a page of orders.
type ListParams struct {
	Page       int
	PageSize   int
	CustomerID *uint  // optional filter
	SortBy     string // "priority" | "date" | "duedate" | "status"
}

// OrderRepository handles database operations for Order and its
// progress history.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindByID returns the order with its customer relation.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("Customer").First(&order, id).Error
	return order, err
}

// FindWithDetails returns the order with customer and full progress history.
func (r *OrderRepository) FindWithDetails(id uint) (models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Customer").
		Preload("Progress", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&order, id).Error
	return order, err
}

// Create persists a new order record.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// Save persists changes to an existing order.
func (r *OrderRepository) Save(order *models.Order) error {
	return r.db.Save(order).Error
}

// Delete removes an order; progress rows cascade.
func (r *OrderRepository) Delete(order *models.Order) error {
	return r.db.Select("Progress").Delete(order).Error
}

// List returns one page of orders plus the unpaginated total count.
// Page numbering is 1-indexed.
func (r *OrderRepository) List(p ListParams) ([]models.Order, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if p.CustomerID != nil {
			return db.Where("customer_id = ?", *p.CustomerID)
		}
		return db
	}

	var total int64
	if err := filter(r.db.Model(&models.Order{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := filter(r.db.Preload("Customer")).
		Order(sortClause(p.SortBy)).
		Offset((p.Page - 1) * p.PageSize).
		Limit(p.PageSize).
		Find(&orders).Error
	return orders, total, err
}

// sortClause maps a sort key to its ORDER BY clause. Unrecognized keys
// fall back to the priority ordering.
func sortClause(sortBy string) string {
	switch sortBy {
	case "date":
		return "order_date DESC"
	case "duedate":
		return "due_date ASC"
	case "status":
		return "status ASC"
	default: // "priority" and everything else
		return "priority ASC, order_date DESC"
	}
}

// Pending returns all orders that are neither delivered nor cancelled.
func (r *OrderRepository) Pending() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Customer").
		Where("status NOT IN ?", []models.Status{models.StatusDelivered, models.StatusCancelled}).
		Order("due_date ASC").
		Find(&orders).Error
	return orders, err
}

// ByCustomer returns all orders for one customer, newest first.
func (r *OrderRepository) ByCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Where("customer_id = ?", customerID).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

// DueWithin returns open orders whose due date falls on or before the
// cutoff. Used by the reminder job.
func (r *OrderRepository) DueWithin(cutoff time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Customer").
		Where("status NOT IN ?", []models.Status{models.StatusDelivered, models.StatusCancelled}).
		Where("due_date <= ?", cutoff).
		Order("due_date ASC").
		Find(&orders).Error
	return orders, err
}

// AddProgress appends a status-change record to the order's history.
func (r *OrderRepository) AddProgress(progress *models.OrderProgress) error {
	return r.db.Create(progress).Error
}

// ProgressFor returns the append-only status history for an order,
// oldest first.
func (r *OrderRepository) ProgressFor(orderID uint) ([]models.OrderProgress, error) {
	var progress []models.OrderProgress
	err := r.db.
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&progress).Error
	return progress, err
}
