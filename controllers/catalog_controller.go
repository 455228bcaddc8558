package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type CatalogController struct {
	Catalog *services.CatalogService
	Audit   *services.AuditService
}

func NewCatalogController(catalog *services.CatalogService, audit *services.AuditService) *CatalogController {
	return &CatalogController{Catalog: catalog, Audit: audit}
}

// GET /api/food?categoryId=
func (c *CatalogController) FoodMenu(ctx *gin.Context) {
	items, cats, err := c.Catalog.FoodMenu(ctx.Request.Context(), utils.QueryID(ctx, "categoryId"))
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, gin.H{"items": items, "categories": cats})
}

type foodCategoryPayload struct {
	Name string `json:"name" binding:"required"`
}

func (c *CatalogController) CreateFoodCategory(ctx *gin.Context) {
	var p foodCategoryPayload
	if !utils.BindJSON(ctx, &p) {
		return
	}
	cat, err := c.Catalog.CreateFoodCategory(ctx.Request.Context(), p.Name)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "CREATE", "FoodCategory", cat.ID, nil, cat)
	utils.JSONMessage(ctx, http.StatusCreated, "Food category created successfully", cat)
}

func (c *CatalogController) CreateFood(ctx *gin.Context) {
	var in services.CatalogItemInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	item, err := c.Catalog.CreateFoodItem(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "CREATE", "FoodMenuItem", item.ID, nil, item)
	utils.JSONMessage(ctx, http.StatusCreated, "Food item created successfully", item)
}

func (c *CatalogController) UpdateFood(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	var in services.CatalogItemInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	item, err := c.Catalog.UpdateFoodItem(ctx.Request.Context(), id, in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "UPDATE", "FoodMenuItem", item.ID, nil, item)
	utils.JSONMessage(ctx, http.StatusOK, "Food item updated successfully", item)
}

// GET /api/services
func (c *CatalogController) Services(ctx *gin.Context) {
	list, err := c.Catalog.Services(ctx.Request.Context())
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, list)
}

func (c *CatalogController) CreateService(ctx *gin.Context) {
	var in services.CatalogItemInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	svc, err := c.Catalog.CreateService(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "CREATE", "ExtraService", svc.ID, nil, svc)
	utils.JSONMessage(ctx, http.StatusCreated, "Service created successfully", svc)
}

func (c *CatalogController) UpdateService(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	var in services.CatalogItemInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	svc, err := c.Catalog.UpdateService(ctx.Request.Context(), id, in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "UPDATE", "ExtraService", svc.ID, nil, svc)
	utils.JSONMessage(ctx, http.StatusOK, "Service updated successfully", svc)
}
