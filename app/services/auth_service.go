package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/priyadarshi/darzi/app/models"
	"github.com/priyadarshi/darzi/app/repositories"
	"github.com/priyadarshi/darzi/pkg/auth"
	"github.com/priyadarshi/darzi/pkg/hash"
	"github.com/priyadarshi/darzi/pkg/validate"
	"gorm.io/gorm"
)

// AuthService handles registration, login, and token echo.
type AuthService struct {
	db        *gorm.DB
	users     *repositories.UserRepository
	customers *repositories.CustomerRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		db:        db,
		users:     repositories.NewUserRepository(db),
		customers: repositories.NewCustomerRepository(db),
	}
}

// RegisterInput is the self-service registration payload.
type RegisterInput struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=128"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"nullable,max=30"`
}

// LoginInput accepts a username or an email as the identifier.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is the response body for both login and registration.
type AuthResult struct {
	Token      string    `json:"token"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	CustomerID string    `json:"customerId"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// Register creates the customer record and the linked user account in one
// transaction, then issues a token. Duplicate username or email aborts
// before anything is written.
func (s *AuthService) Register(in RegisterInput) (*AuthResult, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, &ValidationError{Fields: errs}
	}

	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if taken, err := s.users.UsernameExists(username); err != nil {
		return nil, err
	} else if taken {
		return nil, &DuplicateError{Field: "username"}
	}
	if taken, err := s.users.EmailExists(email); err != nil {
		return nil, err
	} else if taken {
		return nil, &DuplicateError{Field: "email"}
	}
	// The email may also be held by an admin-created customer with no
	// account yet; registration creates its own customer row, so that
	// collision must surface as a duplicate, not a unique-index failure.
	if taken, err := s.customers.EmailExists(email); err != nil {
		return nil, err
	} else if taken {
		return nil, &DuplicateError{Field: "email"}
	}

	hashed, err := hash.Password(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleCustomer,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		customer := models.Customer{
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Email:     email,
			Phone:     strings.TrimSpace(in.Phone),
		}
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}

		user.CustomerID = &customer.ID
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}

	return s.issue(&user)
}

// Login authenticates by username or email. Unknown identifier and wrong
// password both return ErrInvalidCredentials.
func (s *AuthService) Login(in LoginInput) (*AuthResult, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, &ValidationError{Fields: errs}
	}

	user, err := s.users.FindByIdentifier(in.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !hash.Verify(in.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(&user)
}

// TokenStatus echoes the identity carried by an already-verified token.
type TokenStatus struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Validate reports the claims of a verified token. The auth middleware has
// already rejected bad tokens before this is reached.
func (s *AuthService) Validate(claims *auth.Claims) TokenStatus {
	return TokenStatus{Valid: true, Username: claims.Name, Role: claims.Role}
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	customerID := ""
	if user.CustomerID != nil {
		customerID = strconv.FormatUint(uint64(*user.CustomerID), 10)
	}

	token, expiresAt, err := auth.GenerateToken(user.ID, user.Username, user.Email, user.Role, customerID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:      token,
		Username:   user.Username,
		Email:      user.Email,
		Role:       user.Role,
		CustomerID: customerID,
		ExpiresAt:  expiresAt,
	}, nil
}
