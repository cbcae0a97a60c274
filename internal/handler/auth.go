package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/movierental/backend/internal/config"
	"github.com/movierental/backend/internal/middleware"
	"github.com/movierental/backend/internal/model"
	"github.com/movierental/backend/internal/repository"
	"github.com/movierental/backend/internal/utils"
)

// AuthHandler bundles dependencies for the register/login endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type registerReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // user | employee, defaults to user
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account. The password is bcrypt-hashed before
// it reaches the store; a duplicate username answers 400 to match the
// public API contract.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password are required"})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != model.RoleEmployee {
		role = model.RoleUser
	}

	uid, err := h.Users.Create(c.Request().Context(), req.Username, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "User already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error registering user"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"userId":  uid,
	})
}

// Login verifies credentials and issues a signed access token embedding
// the user's id, username and role.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password are required"})
	}

	u, err := h.Users.GetByUsername(c.Request().Context(), req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error logging in"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Username, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error logging in"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   access.Token,
	})
}

// Me returns the authenticated caller's identity as decoded from the
// access token; no database read is involved.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"userId":   id.UserID,
		"username": id.Username,
		"role":     id.Role,
	})
}
