package auth

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crmboard/internal/domain"
	"crmboard/internal/pkg/response"
)

// Handler manages the HTTP surface of registration and sessions.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.RegisterCompany)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/users/me", h.GetMe)
	protected.GET("/company", h.GetCompany)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	users := admin.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.InviteUser)
		users.PATCH("/:id/active", h.SetActive)
	}
}

func (h *Handler) RegisterCompany(c *gin.Context) {
	var req RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.RegisterCompany(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Internal(c, "Failed to register company")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":  publicUser(result.User),
		"token": result.Token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, ErrAccountDisabled):
			response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "This account is disabled")
		default:
			response.Internal(c, "Failed to log in")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  publicUser(result.User),
		"token": result.Token,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.Internal(c, "Failed to load user")
		return
	}

	response.Success(c, http.StatusOK, publicUser(user))
}

func (h *Handler) GetCompany(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	company, err := h.service.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			response.NotFound(c, "Company not found")
			return
		}
		response.Internal(c, "Failed to load company")
		return
	}

	response.Success(c, http.StatusOK, company)
}

func (h *Handler) ListUsers(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	users, err := h.service.ListUsers(c.Request.Context(), companyID)
	if err != nil {
		response.Internal(c, "Failed to list users")
		return
	}

	out := make([]UserPublic, 0, len(users))
	for i := range users {
		out = append(out, publicUser(&users[i]))
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) InviteUser(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	var req InviteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.InviteUser(c.Request.Context(), companyID, req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Internal(c, "Failed to create user")
		return
	}

	response.Success(c, http.StatusCreated, publicUser(user))
}

func (h *Handler) SetActive(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.SetUserActive(c.Request.Context(), companyID, userID, *req.Active); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.Internal(c, "Failed to update user")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": userID, "active": *req.Active})
}

func publicUser(u *domain.User) UserPublic {
	return UserPublic{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Active:    u.Active,
	}
}
