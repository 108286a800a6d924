package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bedspace/backend/internal/model"
	"github.com/bedspace/backend/internal/repository"
	"github.com/bedspace/backend/internal/utils"
)

// Admin user management. All of these handlers sit behind
// JWTAuth + RequireRole(ADMIN) in the router.

// ListUsers handles GET /api/auth/users and returns every account. The
// password hash never leaves the repository query.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser handles POST /api/auth/users. Unlike Register there is no
// bootstrap exemption: the caller is already an authenticated admin.
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing fields"})
	}
	role, ok := model.NormalizeRole(req.Role)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid role"})
	}
	var tenantID *string
	if role == model.RoleTenant {
		t := utils.NewTenantID()
		tenantID = &t
	}
	if _, err := h.Users.Create(c.Request().Context(), req.Email, req.Password, role, tenantID, h.Cfg.BcryptCost); err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User created"})
}

type userUpdateReq struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// UpdateUser handles PUT /api/auth/users/:id. Only provided fields are
// changed; a provided password is re-hashed.
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req userUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.Role != nil {
		role, ok := model.NormalizeRole(*req.Role)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid role"})
		}
		req.Role = &role
	}
	ctx := c.Request().Context()
	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	if err := h.Users.Update(ctx, id, req.Email, req.Role, req.Password, h.Cfg.BcryptCost); err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	updated, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteUser handles DELETE /api/auth/users/:id.
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted"})
}

// UpdateTenant handles PUT /api/auth/users/tenant/:tenantId. It addresses
// the account by its tenant identifier and only touches TENANT accounts.
func (h *AuthHandler) UpdateTenant(c echo.Context) error {
	tenantID := c.Param("tenantId")
	var req userUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	ctx := c.Request().Context()
	u, err := h.Users.GetByTenantID(ctx, tenantID)
	if err != nil || u.Role != model.RoleTenant {
		if err == nil || err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Tenant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	if err := h.Users.UpdateTenant(ctx, tenantID, req.Email, req.Password, h.Cfg.BcryptCost); err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	updated, err := h.Users.GetByTenantID(ctx, tenantID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteTenant handles DELETE /api/auth/users/tenant/:tenantId.
func (h *AuthHandler) DeleteTenant(c echo.Context) error {
	tenantID := c.Param("tenantId")
	if err := h.Users.DeleteTenant(c.Request().Context(), tenantID); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Tenant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Tenant deleted"})
}
