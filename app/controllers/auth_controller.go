package controllers

import (
	"net/http"

	"github.com/priyadarshi/darzi/app/services"
	"github.com/priyadarshi/darzi/pkg/bind"
	"github.com/priyadarshi/darzi/pkg/middleware"
	"github.com/priyadarshi/darzi/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.auth.Register(in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, result)
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.auth.Login(in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, result)
}

// Validate handles GET /api/auth/validate. The auth middleware has
// already verified the token; this just echoes the identity.
func (c *AuthController) Validate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	response.Success(w, c.auth.Validate(claims))
}
