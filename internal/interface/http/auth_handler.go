package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/ipdr-analysis/auth-server/internal/application"
	"github.com/ipdr-analysis/auth-server/internal/domain/entity"
	"github.com/ipdr-analysis/auth-server/internal/interface/middleware"
	"github.com/ipdr-analysis/auth-server/pkg/response"
	"github.com/ipdr-analysis/auth-server/pkg/validation"
)

const msgInternal = "Internal server error"

type AuthHandler struct {
	Service *app.AuthService
	Logger  *logrus.Logger
}

func NewAuthHandler(service *app.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Service: service, Logger: logger}
}

type registerRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	IPAddress string `json:"ipAddress"`
	Location  string `json:"location"`
}

type loginRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	IPAddress string `json:"ipAddress"`
	Location  string `json:"location"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authResponse struct {
	User         entity.PublicUser `json:"user"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
}

func toAuthResponse(res *app.AuthResult) authResponse {
	return authResponse{User: res.User, AccessToken: res.Tokens.AccessToken, RefreshToken: res.Tokens.RefreshToken}
}

func clientIP(c *gin.Context, reported string) string {
	if reported != "" {
		return reported
	}
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// bindFailure answers a request whose body could not be bound. requiredMsg is
// used when a required field is missing, matching the service's own wording.
func bindFailure(c *gin.Context, err error, requiredMsg string) {
	if validation.IsValidation(err) {
		response.Error(c, http.StatusBadRequest, requiredMsg, response.WithDetails(validation.ToDetails(err)))
		return
	}
	response.Error(c, http.StatusBadRequest, "Invalid request body", response.WithDetails(validation.ToDetails(err)))
}

// fail maps application errors onto HTTP statuses. Infrastructure faults are
// logged and hidden behind a generic 500.
func (h *AuthHandler) fail(c *gin.Context, op string, err error) {
	var fe *app.FieldError
	var we *app.WeakPasswordError
	switch {
	case errors.As(err, &fe):
		var opts []response.Option
		if fe.Field != "" {
			opts = append(opts, response.WithDetails(map[string]string{fe.Field: fe.Message}))
		}
		response.Error(c, http.StatusBadRequest, fe.Message, opts...)
	case errors.As(err, &we):
		response.Error(c, http.StatusBadRequest, "Password is too weak", response.WithFeedback(we.Strength.Feedback))
	case errors.Is(err, app.ErrConflict):
		response.Error(c, http.StatusConflict, "Username or email already exists")
	case errors.Is(err, app.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, app.ErrAccountLocked):
		response.Error(c, http.StatusForbidden, "Account is locked due to too many failed attempts")
	case errors.Is(err, app.ErrAccountDeactivated):
		response.Error(c, http.StatusForbidden, "Account is deactivated")
	case errors.Is(err, app.ErrInvalidToken):
		msg := "Invalid token"
		if op == "refresh" {
			msg = "Invalid refresh token"
		}
		response.Error(c, http.StatusUnauthorized, msg)
	default:
		h.Logger.WithError(err).WithFields(logrus.Fields{
			"op":         op,
			"request_id": c.GetString("request_id"),
		}).Error("auth request failed")
		response.Error(c, http.StatusInternalServerError, msgInternal)
	}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailure(c, err, "All fields are required")
		return
	}
	res, err := h.Service.Register(c.Request.Context(), app.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IPAddress: clientIP(c, req.IPAddress),
		Location:  req.Location,
	})
	if err != nil {
		h.fail(c, "register", err)
		return
	}
	response.Success(c, http.StatusCreated, toAuthResponse(res))
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailure(c, err, "Username and password are required")
		return
	}
	res, err := h.Service.Login(c.Request.Context(), app.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		IPAddress: clientIP(c, req.IPAddress),
		Location:  req.Location,
	})
	if err != nil {
		h.fail(c, "login", err)
		return
	}
	response.Success(c, http.StatusOK, toAuthResponse(res))
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken == "" {
		response.Error(c, http.StatusUnauthorized, "Refresh token is required")
		return
	}
	access, err := h.Service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.fail(c, "refresh", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"accessToken": access})
}

// Logout POST /api/auth/logout. Always succeeds; the refresh token is not revoked.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)
	h.Service.Logout(c.Request.Context(), req.RefreshToken, clientIP(c, ""))
	response.Success(c, http.StatusOK, gin.H{"message": "Logout successful"})
}

// Me GET /api/auth/me, behind middleware.BearerToken
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Service.Me(c.Request.Context(), c.GetString(middleware.CtxAccessTokenKey))
	if err != nil {
		h.fail(c, "me", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// Logs GET /api/auth/logs. Unauthenticated: the dashboard's login-history view reads it directly.
func (h *AuthHandler) Logs(c *gin.Context) {
	logs, err := h.Service.Logs(c.Request.Context())
	if err != nil {
		h.fail(c, "logs", err)
		return
	}
	if logs == nil {
		logs = []entity.LoginLog{}
	}
	response.Success(c, http.StatusOK, logs)
}
