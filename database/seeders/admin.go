package seeders

import (
	"errors"

	"github.com/priyadarshi/darzi/app/models"
	"github.com/priyadarshi/darzi/config"
	"github.com/priyadarshi/darzi/pkg/hash"
	"gorm.io/gorm"
)

func init() {
	Register("admin_user", seedAdminUser)
}

// seedAdminUser creates the initial Admin account when none exists.
// Credentials come from ADMIN_USERNAME / ADMIN_PASSWORD; the defaults are
// for local development only.
func seedAdminUser(db *gorm.DB) error {
	username := config.Get("ADMIN_USERNAME", "admin")

	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := hash.Password(config.Get("ADMIN_PASSWORD", "admin@123"))
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     username,
		Email:        config.Get("ADMIN_EMAIL", "admin@darzi.local"),
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
	}
	return db.Create(&admin).Error
}
