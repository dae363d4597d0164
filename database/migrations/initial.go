package migrations

import (
	"github.com/priyadarshi/darzi/app/models"
	"github.com/priyadarshi/darzi/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("2026_01_10_000001_create_core_tables", createCoreTables{})
}

// createCoreTables creates the users, customers, orders, order_progresses,
// and measurements tables.
type createCoreTables struct{}

func (createCoreTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Order{},
		&models.OrderProgress{},
		&models.Measurement{},
	)
}

func (createCoreTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&models.Measurement{},
		&models.OrderProgress{},
		&models.Order{},
		&models.User{},
		&models.Customer{},
	)
}
