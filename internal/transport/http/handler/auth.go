package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"splitmate/internal/app"
	"splitmate/internal/transport/http/middleware"
	"splitmate/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
	devMode     bool
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=128"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Username string `json:"username" binding:"required,min=3,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=128"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(authService *app.AuthService, devMode bool) *AuthHandler {
	return &AuthHandler{authService: authService, devMode: devMode}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrEmailExists):
			response.Error(c, http.StatusConflict, err.Error())
		default:
			h.internalError(c, "registration failed", err)
		}
		return
	}

	response.Success(c, http.StatusCreated, "registration successful", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, err.Error())
		default:
			h.internalError(c, "login failed", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "login successful", gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "invalid token")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidUserID):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		default:
			h.internalError(c, "logout failed", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "logout successful", nil)
}

// internalError hides the underlying failure in production mode.
func (h *AuthHandler) internalError(c *gin.Context, message string, err error) {
	if h.devMode {
		response.ErrorDetail(c, http.StatusInternalServerError, message, err.Error())
		return
	}
	response.Error(c, http.StatusInternalServerError, message)
}
