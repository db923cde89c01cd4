package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teaminfinity/expense_management/internal/core/domain"
	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/dto"
	"github.com/teaminfinity/expense_management/internal/middleware"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.POST("", h.createUser) // Admin only
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Creates a user in the acting admin's company, optionally with a reporting manager.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Acting user is not an admin"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create user request", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	createdUser, err := h.userService.CreateUser(c.Request.Context(), req, actingUserID)
	if err != nil {
		logger.Error("Failed to create user in service", slog.String("error", err.Error()))
		respondError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(createdUser))
}

// listUsers godoc
// @Summary List company users
// @Description Lists the users of the acting user's company, optionally filtered by role.
// @Tags users
// @Produce json
// @Param role query string false "Filter by role (ADMIN, MANAGER, EMPLOYEE)"
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var (
		users []domain.User
		err   error
	)
	if roleParam := c.Query("role"); roleParam != "" {
		role := domain.Role(roleParam)
		switch role {
		case domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee:
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid role filter"})
			return
		}
		users, err = h.userService.ListCompanyUsersByRole(c.Request.Context(), actingUserID, role)
	} else {
		users, err = h.userService.ListCompanyUsers(c.Request.Context(), actingUserID)
	}
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves a user of the acting user's company.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	targetUserID := c.Param("id")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	actor, err := h.userService.GetUserByID(c.Request.Context(), actingUserID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), targetUserID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}

	// Cross-tenant reads look like a missing resource.
	if user.CompanyID != actor.CompanyID {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
