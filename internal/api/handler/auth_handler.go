package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gadgetlab/store-api/internal/core/domain"
	"github.com/gadgetlab/store-api/internal/core/ports"
)

// AuthHandler handles HTTP requests for account operations.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type addressRequest struct {
	Street          string `json:"street"            validate:"required"`
	Neighbourhood   string `json:"neighbourhood"     validate:"required"`
	City            string `json:"city"              validate:"required"`
	PostCode        string `json:"post_code"         validate:"required"`
	StateOrProvince string `json:"state_or_province" validate:"required"`
	Country         string `json:"country"           validate:"required"`
}

type signupRequest struct {
	Name        string         `json:"name"         validate:"required"`
	Email       string         `json:"email"        validate:"required,email"`
	Password    string         `json:"password"     validate:"required"`
	PhoneNumber string         `json:"phone_number" validate:"required"`
	Role        string         `json:"role"         validate:"omitempty,oneof=ADMIN CONSUMER"`
	Address     addressRequest `json:"address"      validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Name        string         `json:"name"         validate:"required"`
	PhoneNumber string         `json:"phone_number" validate:"required"`
	Address     addressRequest `json:"address"      validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Signup creates a new user account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
		Address:     toDomainAddress(req.Address),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// Profile returns the authenticated user's account.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update replaces the mutable profile fields of a user.
//
// @Summary      Update a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]string
// @Router       /user/{id} [put]
func (h *AuthHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateUser(c.Request().Context(), c.Param("id"), ports.UserUpdate{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Address:     toDomainAddress(req.Address),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user account.
//
// @Summary      Delete a user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /user/{id} [delete]
func (h *AuthHandler) Delete(c echo.Context) error {
	if err := h.authService.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	// By convention deletions respond with an empty object.
	return c.JSON(http.StatusOK, map[string]string{})
}

func toDomainAddress(a addressRequest) domain.Address {
	return domain.Address{
		Street:          a.Street,
		Neighbourhood:   a.Neighbourhood,
		City:            a.City,
		PostCode:        a.PostCode,
		StateOrProvince: a.StateOrProvince,
		Country:         a.Country,
	}
}
