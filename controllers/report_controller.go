package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type ReportController struct {
	Reports *services.ReportService
	Clock   func() time.Time
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports, Clock: time.Now}
}

// GET /api/reports?type=daily|weekly|monthly|overall|occupancy&date=YYYY-MM-DD
func (c *ReportController) Get(ctx *gin.Context) {
	day, ok := queryDay(ctx, "date")
	if !ok {
		return
	}
	now := c.Clock()
	if day == nil {
		day = &now
	}

	rctx := ctx.Request.Context()
	var (
		data interface{}
		err  error
	)
	switch kind := ctx.DefaultQuery("type", "daily"); kind {
	case "daily":
		data, err = c.Reports.Daily(rctx, *day)
	case "monthly":
		data, err = c.Reports.Monthly(rctx, *day)
	case "overall":
		data, err = c.Reports.Overall(rctx)
	case "occupancy":
		data, err = c.Reports.Occupancy(rctx, now)
	case "weekly":
		data, err = c.Reports.Weekly(rctx, *day)
	default:
		utils.JSONError(ctx, http.StatusBadRequest, "Invalid report type "+kind)
		return
	}
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, data)
}
