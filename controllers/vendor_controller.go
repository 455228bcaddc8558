package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type VendorController struct {
	Vendors *services.VendorService
	Audit   *services.AuditService
}

func NewVendorController(vendors *services.VendorService, audit *services.AuditService) *VendorController {
	return &VendorController{Vendors: vendors, Audit: audit}
}

// queryDay parses ?<name>=YYYY-MM-DD in local time. A missing value yields nil.
func queryDay(ctx *gin.Context, name string) (*time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "Invalid "+name+", expected YYYY-MM-DD")
		return nil, false
	}
	return &day, true
}

func (c *VendorController) List(ctx *gin.Context) {
	vendors, err := c.Vendors.List(ctx.Request.Context())
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, vendors)
}

func (c *VendorController) Create(ctx *gin.Context) {
	var in services.VendorInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	v, err := c.Vendors.Create(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "CREATE", "Vendor", v.ID, nil, v)
	utils.JSONMessage(ctx, http.StatusCreated, "Vendor created successfully", v)
}

func (c *VendorController) Update(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	var in services.VendorInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	old, v, err := c.Vendors.Update(ctx.Request.Context(), id, in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "UPDATE", "Vendor", v.ID, old, v)
	utils.JSONMessage(ctx, http.StatusOK, "Vendor updated successfully", v)
}

// GET /api/vendors/transactions?vendorId=
func (c *VendorController) Transactions(ctx *gin.Context) {
	list, err := c.Vendors.Transactions(ctx.Request.Context(), utils.QueryID(ctx, "vendorId"))
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, list)
}

func (c *VendorController) CreateTransaction(ctx *gin.Context) {
	var in services.VendorTransactionInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	tx, err := c.Vendors.CreateTransaction(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "CREATE", "VendorTransaction", tx.ID, nil, tx)
	utils.JSONMessage(ctx, http.StatusCreated, "Transaction recorded successfully", tx)
}

type transactionStatusPayload struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

// PUT /api/vendors/transactions/:id
func (c *VendorController) SetTransactionStatus(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	var p transactionStatusPayload
	if !utils.BindJSON(ctx, &p) {
		return
	}
	tx, err := c.Vendors.SetTransactionStatus(ctx.Request.Context(), id, p.PaymentStatus)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "UPDATE", "VendorTransaction", tx.ID, nil, tx)
	utils.JSONMessage(ctx, http.StatusOK, "Transaction updated successfully", tx)
}

// ----------------------------------------------------
// expenses
// ----------------------------------------------------

// GET /api/expenses?date=YYYY-MM-DD
func (c *VendorController) Expenses(ctx *gin.Context) {
	day, ok := queryDay(ctx, "date")
	if !ok {
		return
	}
	list, err := c.Vendors.Expenses(ctx.Request.Context(), day)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, list)
}

func (c *VendorController) CreateExpense(ctx *gin.Context) {
	var in services.ExpenseInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	e, err := c.Vendors.CreateExpense(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "CREATE", "Expense", e.ID, nil, e)
	utils.JSONMessage(ctx, http.StatusCreated, "Expense recorded successfully", e)
}

func (c *VendorController) DeleteExpense(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	if err := c.Vendors.DeleteExpense(ctx.Request.Context(), id); err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "DELETE", "Expense", id, nil, nil)
	utils.JSONMessage(ctx, http.StatusOK, "Expense deleted successfully", nil)
}
