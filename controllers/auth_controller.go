package controllers

import (
	"net/http"
	"time"

	"kuuslauk/middleware"
	"kuuslauk/models"
	"kuuslauk/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CookieConfig describes the admin session cookie.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

type AuthController struct {
	auth   services.AuthService
	cookie CookieConfig
	logger zerolog.Logger
}

func NewAuthController(auth services.AuthService, cookie CookieConfig, logger zerolog.Logger) *AuthController {
	return &AuthController{
		auth:   auth,
		cookie: cookie,
		logger: logger.With().Str("controller", "auth").Logger(),
	}
}

// @Summary Admin login
// @Description Verifies the credentials and sets the session cookie. The token is also returned for Bearer use.
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.Response{data=models.LoginResponse}
// @Failure 401 {object} models.ErrorResponse
// @Router /admin/auth [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	ctrl.setCookie(c, resp.Token, int(ctrl.cookie.MaxAge.Seconds()))
	respondOK(c, http.StatusOK, "Login successful", resp)
}

// @Summary Admin logout
// @Tags Admin - Auth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	ctrl.setCookie(c, "", -1)
	respondOK(c, http.StatusOK, "Logged out", nil)
}

func (ctrl *AuthController) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(ctrl.cookie.Name, value, maxAge, "/", "", ctrl.cookie.Secure, true)
}

// @Summary Current admin
// @Tags Admin - Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.AdminUser}
// @Failure 401 {object} models.ErrorResponse
// @Router /admin/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	claims, ok := middleware.AdminClaims(c)
	if !ok {
		respondError(c, ctrl.logger, models.ErrUnauthorized)
		return
	}

	admin, err := ctrl.auth.Me(c.Request.Context(), claims)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Admin retrieved", admin)
}

// @Summary Change password
// @Tags Admin - Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Passwords"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /admin/change-password [post]
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	adminID := c.GetInt64(middleware.ContextAdminID)
	if err := ctrl.auth.ChangePassword(c.Request.Context(), adminID, req); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Password changed", nil)
}

// @Summary Request password reset
// @Description Always answers 200 so the response does not reveal which emails have accounts.
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Param request body models.ForgotPasswordRequest true "Email"
// @Success 200 {object} models.Response
// @Router /admin/forgot-password [post]
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := ctrl.auth.ForgotPassword(c.Request.Context(), req); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "If the account exists, a reset link has been sent", nil)
}

// @Summary Reset password
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/reset-password [post]
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := ctrl.auth.ResetPassword(c.Request.Context(), req); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Password has been reset", nil)
}
