package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type ReservationController struct {
	Reservations *services.ReservationService
	Audit        *services.AuditService
}

func NewReservationController(svc *services.ReservationService, audit *services.AuditService) *ReservationController {
	return &ReservationController{Reservations: svc, Audit: audit}
}

// GET /api/reservations?status=&guestId=
func (c *ReservationController) List(ctx *gin.Context) {
	list, err := c.Reservations.List(ctx.Request.Context(), ctx.Query("status"), utils.QueryID(ctx, "guestId"))
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, list)
}

func (c *ReservationController) Get(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	res, err := c.Reservations.Get(ctx.Request.Context(), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, res)
}

func (c *ReservationController) Create(ctx *gin.Context) {
	var in services.ReservationInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	res, err := c.Reservations.Create(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "CREATE", "Reservation", res.ID, nil, res)
	utils.JSONMessage(ctx, http.StatusCreated, "Reservation created successfully", res)
}

func (c *ReservationController) Update(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	var in services.ReservationUpdate
	if !utils.BindJSON(ctx, &in) {
		return
	}
	old, res, err := c.Reservations.Update(ctx.Request.Context(), id, in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "UPDATE", "Reservation", res.ID, old, res)
	utils.JSONMessage(ctx, http.StatusOK, "Reservation updated successfully", res)
}
