package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-backoffice/middleware"
	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type AuthController struct {
	Users *services.UserService
	Audit *services.AuditService
}

func NewAuthController(users *services.UserService, audit *services.AuditService) *AuthController {
	return &AuthController{Users: users, Audit: audit}
}

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPayload struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPayload struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /api/auth/register
func (c *AuthController) Register(ctx *gin.Context) {
	var in services.UserInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	in.IsActive = nil
	user, err := c.Users.Create(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONMessage(ctx, http.StatusCreated, "User registered successfully", user)
}

// POST /api/auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var p loginPayload
	if !utils.BindJSON(ctx, &p) {
		return
	}
	token, user, err := c.Users.Login(ctx.Request.Context(), p.Email, p.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(ctx, http.StatusUnauthorized, "Invalid credentials")
		return
	case errors.Is(err, services.ErrAccountDisabled):
		utils.JSONError(ctx, http.StatusForbidden, "Account is disabled")
		return
	case err != nil:
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONMessage(ctx, http.StatusOK, "Login successful", gin.H{"token": token, "user": user})
}

// GET /api/auth/me
func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.Users.Get(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, user)
}

// POST /api/auth/forgot
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var p forgotPayload
	if !utils.BindJSON(ctx, &p) {
		return
	}
	if err := c.Users.ForgotPassword(ctx.Request.Context(), p.Email); err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONMessage(ctx, http.StatusOK, "If the account exists, a reset link has been sent", nil)
}

// POST /api/auth/reset
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var p resetPayload
	if !utils.BindJSON(ctx, &p) {
		return
	}
	if err := c.Users.ResetPassword(ctx.Request.Context(), p.Token, p.Password); err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONMessage(ctx, http.StatusOK, "Password updated", nil)
}

// ----------------------------------------------------
// users (ADMIN)
// ----------------------------------------------------

func (c *AuthController) ListUsers(ctx *gin.Context) {
	users, err := c.Users.List(ctx.Request.Context())
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, users)
}

func (c *AuthController) CreateUser(ctx *gin.Context) {
	var in services.UserInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	user, err := c.Users.Create(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "CREATE", "User", user.ID, nil, user)
	utils.JSONMessage(ctx, http.StatusCreated, "User created successfully", user)
}

func (c *AuthController) UpdateUser(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	var in services.UserInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	old, user, err := c.Users.Update(ctx.Request.Context(), id, in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "UPDATE", "User", user.ID, old, user)
	utils.JSONMessage(ctx, http.StatusOK, "User updated successfully", user)
}
