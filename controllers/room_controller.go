package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type RoomController struct {
	Rooms *services.RoomService
	Audit *services.AuditService
}

func NewRoomController(rooms *services.RoomService, audit *services.AuditService) *RoomController {
	return &RoomController{Rooms: rooms, Audit: audit}
}

// ----------------------------------------------------
// categories
// ----------------------------------------------------

func (c *RoomController) ListCategories(ctx *gin.Context) {
	cats, err := c.Rooms.ListCategories(ctx.Request.Context())
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, cats)
}

func (c *RoomController) CreateCategory(ctx *gin.Context) {
	var in services.CategoryInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	cat, err := c.Rooms.CreateCategory(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "CREATE", "RoomCategory", cat.ID, nil, cat)
	utils.JSONMessage(ctx, http.StatusCreated, "Category created successfully", cat)
}

func (c *RoomController) UpdateCategory(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	var in services.CategoryInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	old, cat, err := c.Rooms.UpdateCategory(ctx.Request.Context(), id, in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "UPDATE", "RoomCategory", cat.ID, old, cat)
	utils.JSONMessage(ctx, http.StatusOK, "Category updated successfully", cat)
}

// ----------------------------------------------------
// rooms
// ----------------------------------------------------

// GET /api/rooms?status=&categoryId=
func (c *RoomController) List(ctx *gin.Context) {
	rooms, err := c.Rooms.List(ctx.Request.Context(), ctx.Query("status"), utils.QueryID(ctx, "categoryId"))
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, rooms)
}

func (c *RoomController) Get(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	room, err := c.Rooms.Get(ctx.Request.Context(), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, room)
}

func (c *RoomController) Create(ctx *gin.Context) {
	var in services.RoomInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	room, err := c.Rooms.Create(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "CREATE", "Room", room.ID, nil, room)
	utils.JSONMessage(ctx, http.StatusCreated, "Room created successfully", room)
}

func (c *RoomController) Update(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	var in services.RoomInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	old, room, err := c.Rooms.Update(ctx.Request.Context(), id, in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "UPDATE", "Room", room.ID, old, room)
	utils.JSONMessage(ctx, http.StatusOK, "Room updated successfully", room)
}

// GET /api/rooms/availability
func (c *RoomController) Availability(ctx *gin.Context) {
	av, err := c.Rooms.Availability(ctx.Request.Context())
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, av)
}
