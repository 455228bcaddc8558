package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type SettingsController struct {
	Settings *services.SettingsService
	Audit    *services.AuditService
}

func NewSettingsController(settings *services.SettingsService, audit *services.AuditService) *SettingsController {
	return &SettingsController{Settings: settings, Audit: audit}
}

func (c *SettingsController) GetHotel(ctx *gin.Context) {
	hotel, err := c.Settings.Get(ctx.Request.Context())
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, hotel)
}

func (c *SettingsController) UpdateHotel(ctx *gin.Context) {
	var in services.SettingsInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	old, hotel, err := c.Settings.Update(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "UPDATE", "HotelSetting", hotel.ID, old, hotel)
	utils.JSONMessage(ctx, http.StatusOK, "Settings updated", hotel)
}
