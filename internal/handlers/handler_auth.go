package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/dto"
	"github.com/teaminfinity/expense_management/internal/middleware"
	"github.com/teaminfinity/expense_management/internal/platform/config"
)

const oauthStateCookieName = "oauth_state"

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	cfg         *config.Config
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(as portssvc.AuthSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		authService: as,
		cfg:         cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes, rate limited
// per IP.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService, cfg)

	rate, err := limiter.NewRateFromFormatted(cfg.AuthRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("20-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := rg.Group("/api/v1/auth", limitMiddleware)
	{
		auth.POST("/signup", h.signup)
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refresh)
		auth.GET("/google/url", h.googleAuthURL)
		auth.POST("/google/exchange", h.googleExchange)
	}
}

// signup godoc
// @Summary Register a new user
// @Description Registers a user; the first signup for a company name creates the company and makes the user its admin.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "Signup details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *authHandler) signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to sign up")
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	c.JSON(http.StatusCreated, resp)
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns an access/refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	c.JSON(http.StatusOK, resp)
}

// refresh godoc
// @Summary Refresh tokens
// @Description Exchanges a valid refresh token for a new token pair; the old refresh token is invalidated.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to refresh tokens")
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	c.JSON(http.StatusOK, resp)
}

// googleAuthURL godoc
// @Summary Google sign-in URL
// @Description Returns the Google consent screen URL to redirect the user to.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/google/url [get]
func (h *authHandler) googleAuthURL(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(oauthStateCookieName, state, 300, "/", "", h.cfg.IsProduction, true)
	c.JSON(http.StatusOK, gin.H{"url": h.authService.GoogleAuthCodeURL(state)})
}

// googleExchange godoc
// @Summary Google sign-in
// @Description Exchanges a Google authorization code for an access/refresh token pair. Only existing accounts can sign in this way.
// @Tags auth
// @Accept json
// @Produce json
// @Param exchange body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange [post]
func (h *authHandler) googleExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.authService.ExchangeGoogleCode(c.Request.Context(), req.Code)
	if err != nil {
		logger.Warn("Google code exchange rejected", slog.String("error", err.Error()))
		respondError(c, err, "Failed to sign in with Google")
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	c.JSON(http.StatusOK, resp)
}

// setRefreshCookie stores the refresh token in an httpOnly cookie alongside
// the response body, for browser clients that prefer cookie transport.
func (h *authHandler) setRefreshCookie(c *gin.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	maxAge := int(h.cfg.RefreshTokenExpiryDuration.Seconds())
	c.SetCookie(h.cfg.RefreshTokenCookieName, refreshToken, maxAge, "/api/v1/auth", "", h.cfg.IsProduction, true)
}
