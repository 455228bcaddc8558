package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-backoffice/middleware"
	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type AuditController struct {
	Audit *services.AuditService
}

func NewAuditController(audit *services.AuditService) *AuditController {
	return &AuditController{Audit: audit}
}

// record writes an audit row for the authenticated caller.
func record(ctx *gin.Context, audit *services.AuditService, action, entity string, id uint, oldValue, newValue interface{}) {
	if audit == nil {
		return
	}
	audit.Record(ctx.Request.Context(), middleware.CurrentUserID(ctx), action, entity, id, oldValue, newValue)
}

// GET /api/audit-logs?entityType=&limit=
func (c *AuditController) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))
	logs, err := c.Audit.List(ctx.Request.Context(), ctx.Query("entityType"), limit)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, logs)
}
