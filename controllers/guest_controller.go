package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type GuestController struct {
	GuestSvc *services.GuestService
	Audit    *services.AuditService
}

func NewGuestController(svc *services.GuestService, audit *services.AuditService) *GuestController {
	return &GuestController{GuestSvc: svc, Audit: audit}
}

// GET /api/guests?search=
func (c *GuestController) List(ctx *gin.Context) {
	guests, err := c.GuestSvc.List(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, guests)
}

func (c *GuestController) Get(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	guest, err := c.GuestSvc.Get(ctx.Request.Context(), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, guest)
}

func (c *GuestController) Create(ctx *gin.Context) {
	var in services.GuestInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	guest, err := c.GuestSvc.Create(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "CREATE", "Guest", guest.ID, nil, guest)
	utils.JSONMessage(ctx, http.StatusCreated, "Guest created successfully", guest)
}

func (c *GuestController) Update(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	var in services.GuestInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	old, guest, err := c.GuestSvc.Update(ctx.Request.Context(), id, in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "UPDATE", "Guest", guest.ID, old, guest)
	utils.JSONMessage(ctx, http.StatusOK, "Guest updated successfully", guest)
}
