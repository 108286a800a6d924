package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bedspace/backend/internal/config"
	"github.com/bedspace/backend/internal/middleware"
	"github.com/bedspace/backend/internal/model"
	"github.com/bedspace/backend/internal/repository"
	"github.com/bedspace/backend/internal/utils"
)

// AuthHandler bundles dependencies for registration, login and the admin
// user-management endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // Tenant | Landlord | Admin, any case
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. Tenant registration is open and yields a
// fresh tenant identifier. Landlord accounts always require an admin token
// presented from loopback. Admin accounts require the same, except for the
// very first admin, which may be created unauthenticated (bootstrap).
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email/password required"})
	}
	role, ok := model.NormalizeRole(req.Role)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if role == model.RoleAdmin || role == model.RoleLandlord {
		bootstrap := false
		if role == model.RoleAdmin {
			n, err := h.Users.CountAdmins(ctx)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
			}
			// First admin may be created without a token.
			bootstrap = n == 0
		}
		if !bootstrap {
			claims, err := middleware.DecodeBearer(c, h.Cfg.JWTSecret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": err.Error()})
			}
			if claims.Role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden"})
			}
			if !middleware.IsLoopback(c.RealIP()) {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Admin creation only allowed from localhost"})
			}
		}
	}

	var tenantID *string
	if role == model.RoleTenant {
		t := utils.NewTenantID()
		tenantID = &t
	}
	if _, err := h.Users.Create(ctx, req.Email, req.Password, role, tenantID, h.Cfg.BcryptCost); err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}

	resp := echo.Map{"message": "User registered"}
	if tenantID != nil {
		resp["tenantId"] = *tenantID
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and issues a signed access token. Unknown
// email and wrong password produce the identical response so the endpoint
// cannot be used to enumerate accounts.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.TokenTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": access.Token})
}
