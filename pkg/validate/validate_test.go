package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=10"`
	Phone    string `json:"phone" validate:"nullable,min=7"`
	Priority int    `json:"priority" validate:"nullable,gte=1,lte=3"`
	Role     string `json:"role" validate:"nullable,in=Admin,Customer"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(signup{
		Email:    "a@b.com",
		Username: "tailor",
		Priority: 2,
		Role:     "Admin",
	})
	assert.Empty(t, errs)
}

func TestRequired(t *testing.T) {
	errs := Struct(signup{Username: "tailor"})
	assert.Contains(t, errs, "email")
}

func TestEmailFormat(t *testing.T) {
	errs := Struct(signup{Email: "not-an-email", Username: "tailor"})
	assert.Contains(t, errs, "email")
}

func TestNullableSkipsWhenEmpty(t *testing.T) {
	errs := Struct(signup{Email: "a@b.com", Username: "tailor"})
	assert.NotContains(t, errs, "phone")
	assert.NotContains(t, errs, "priority")
}

func TestNullableStillValidatesWhenPresent(t *testing.T) {
	errs := Struct(signup{Email: "a@b.com", Username: "tailor", Phone: "123"})
	assert.Contains(t, errs, "phone")

	errs = Struct(signup{Email: "a@b.com", Username: "tailor", Priority: 9})
	assert.Contains(t, errs, "priority")
}

func TestStringLengthBounds(t *testing.T) {
	errs := Struct(signup{Email: "a@b.com", Username: "ab"})
	assert.Contains(t, errs, "username")

	errs = Struct(signup{Email: "a@b.com", Username: "waaaaaaytoolong"})
	assert.Contains(t, errs, "username")
}

func TestInList(t *testing.T) {
	errs := Struct(signup{Email: "a@b.com", Username: "tailor", Role: "Superuser"})
	assert.Contains(t, errs, "role")

	errs = Struct(signup{Email: "a@b.com", Username: "tailor", Role: "Customer"})
	assert.NotContains(t, errs, "role")
}

func TestPointerFields(t *testing.T) {
	type patch struct {
		Priority *int    `json:"priority" validate:"nullable,gte=1,lte=3"`
		Name     *string `json:"name" validate:"nullable,max=5"`
	}

	assert.Empty(t, Struct(patch{}))

	bad := 7
	errs := Struct(patch{Priority: &bad})
	assert.Contains(t, errs, "priority")

	long := "toolongname"
	errs = Struct(patch{Name: &long})
	assert.Contains(t, errs, "name")
}

func TestParseDate(t *testing.T) {
	for _, raw := range []string{"2026-09-15", "2026-09-15T10:00:00Z", "15/09/2026"} {
		_, err := ParseDate(raw)
		assert.NoError(t, err, raw)
	}

	_, err := ParseDate("next tuesday")
	assert.Error(t, err)
}
