package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type CheckInController struct {
	Stays *services.StayService
	Audit *services.AuditService
}

func NewCheckInController(stays *services.StayService, audit *services.AuditService) *CheckInController {
	return &CheckInController{Stays: stays, Audit: audit}
}

// GET /api/checkins?active=true
func (c *CheckInController) List(ctx *gin.Context) {
	stays, err := c.Stays.List(ctx.Request.Context(), ctx.Query("active") == "true")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, stays)
}

func (c *CheckInController) Get(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	stay, err := c.Stays.Get(ctx.Request.Context(), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, stay)
}

// POST /api/checkins
func (c *CheckInController) CheckIn(ctx *gin.Context) {
	var in services.CheckInInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	stay, err := c.Stays.CheckIn(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "CHECK_IN", "CheckIn", stay.ID, nil, stay)
	utils.JSONMessage(ctx, http.StatusCreated, "Guest checked in successfully", stay)
}

// PUT /api/checkins/:id/checkout
func (c *CheckInController) CheckOut(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	res, err := c.Stays.CheckOut(ctx.Request.Context(), id, c.Stays.Clock())
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "CHECK_OUT", "CheckIn", id, nil, res)
	utils.JSONMessage(ctx, http.StatusOK, "Guest checked out successfully", res)
}
