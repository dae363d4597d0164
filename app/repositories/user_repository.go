package repositories

import (
	"strings"

	"github.com/priyadarshi/darzi/app/models"
	"gorm.io/gorm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByIdentifier looks up a user whose username or email matches the
// supplied identifier. Email comparison is case-insensitive.
func (r *UserRepository) FindByIdentifier(identifier string) (models.User, error) {
	lowered := strings.ToLower(strings.TrimSpace(identifier))

	var user models.User
	err := r.db.
		Where("LOWER(username) = ? OR LOWER(email) = ?", lowered, lowered).
		First(&user).Error
	return user, err
}

// FindByUsername looks up a user by exact username.
func (r *UserRepository) FindByUsername(username string) (models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	return user, err
}

// UsernameExists reports whether a user with the username already exists,
// case-insensitively.
func (r *UserRepository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		Count(&count).Error
	return count > 0, err
}

// EmailExists reports whether a user with the email already exists,
// case-insensitively.
func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}
