package services

import (
	"testing"

	"github.com/priyadarshi/darzi/app/models"
	"github.com/priyadarshi/darzi/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() RegisterInput {
	return RegisterInput{
		Username:  "meena",
		Email:     "Meena@Example.com",
		Password:  "stitch-in-time",
		FirstName: "Meena",
		LastName:  "Kapoor",
		Phone:     "9811111111",
	}
}

func TestRegisterCreatesUserAndCustomer(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db)

	result, err := svc.Register(validRegistration())
	require.NoError(t, err)

	assert.Equal(t, "meena", result.Username)
	assert.Equal(t, "meena@example.com", result.Email)
	assert.Equal(t, models.RoleCustomer, result.Role)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.CustomerID)

	claims, err := auth.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "meena", claims.Name)
	assert.Equal(t, models.RoleCustomer, claims.Role)

	var user models.User
	require.NoError(t, db.Where("username = ?", "meena").First(&user).Error)
	require.NotNil(t, user.CustomerID)

	var customer models.Customer
	require.NoError(t, db.First(&customer, *user.CustomerID).Error)
	assert.Equal(t, "Meena", customer.FirstName)
	assert.Equal(t, "meena@example.com", customer.Email)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(validRegistration())
	require.NoError(t, err)

	var dup *DuplicateError

	// Same username, different case still collides.
	in := validRegistration()
	in.Username = "MEENA"
	in.Email = "other@example.com"
	_, err = svc.Register(in)
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "username", dup.Field)

	// Same email, different username.
	in = validRegistration()
	in.Username = "someone-else"
	_, err = svc.Register(in)
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)
}

func TestRegisterRejectsEmailHeldByCustomer(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db)

	// Admin-created customer with no account yet.
	seedCustomer(t, db, "meena@example.com")

	_, err := svc.Register(validRegistration())

	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)

	// Nothing was written.
	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(testDB(t))

	in := validRegistration()
	in.Email = "not-an-email"
	in.Password = "x"

	_, err := svc.Register(in)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "email")
	assert.Contains(t, vErr.Fields, "password")
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(validRegistration())
	require.NoError(t, err)

	byUsername, err := svc.Login(LoginInput{Username: "meena", Password: "stitch-in-time"})
	require.NoError(t, err)
	assert.NotEmpty(t, byUsername.Token)

	byEmail, err := svc.Login(LoginInput{Username: "MEENA@example.com", Password: "stitch-in-time"})
	require.NoError(t, err)
	assert.Equal(t, "meena", byEmail.Username)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(validRegistration())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(LoginInput{Username: "meena", Password: "nope"})
	_, unknownUser := svc.Login(LoginInput{Username: "ghost", Password: "nope"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}
