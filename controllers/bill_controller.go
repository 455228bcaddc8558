package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"
)

type BillController struct {
	Bills    *services.BillService
	Invoices *services.InvoiceService
	Audit    *services.AuditService
}

func NewBillController(bills *services.BillService, invoices *services.InvoiceService, audit *services.AuditService) *BillController {
	return &BillController{Bills: bills, Invoices: invoices, Audit: audit}
}

// GET /api/bills?id=&guestId=&billNumber=&status=
func (c *BillController) List(ctx *gin.Context) {
	bills, err := c.Bills.List(ctx.Request.Context(), services.BillFilter{
		ID:         utils.QueryID(ctx, "id"),
		GuestID:    utils.QueryID(ctx, "guestId"),
		BillNumber: ctx.Query("billNumber"),
		Status:     ctx.Query("status"),
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, bills)
}

func (c *BillController) Get(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	bill, err := c.Bills.Get(ctx.Request.Context(), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, bill)
}

// POST /api/bills
func (c *BillController) Generate(ctx *gin.Context) {
	var in services.GenerateBillInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	bill, err := c.Bills.Generate(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "CREATE", "Bill", bill.ID, nil, bill)
	utils.JSONMessage(ctx, http.StatusCreated, "Bill generated successfully", bill)
}

// POST /api/bills/:id/items
func (c *BillController) AddItem(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	var in services.BillItemInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	bill, err := c.Bills.AddItem(ctx.Request.Context(), id, in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "ADD_ITEM", "Bill", bill.ID, nil, in)
	utils.JSONMessage(ctx, http.StatusCreated, "Item added successfully", bill)
}

// POST /api/bills/:id/recalculate
func (c *BillController) Recalculate(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	bill, err := c.Bills.Recalculate(ctx.Request.Context(), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, bill)
}

type emailPayload struct {
	Email string `json:"email" binding:"omitempty,email"`
}

// POST /api/bills/:id/email
func (c *BillController) Email(ctx *gin.Context) {
	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		return
	}
	var p emailPayload
	if ctx.Request.ContentLength > 0 && !utils.BindJSON(ctx, &p) {
		return
	}
	to, err := c.Invoices.Send(ctx.Request.Context(), id, p.Email)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "EMAIL_INVOICE", "Bill", id, nil, gin.H{"to": to})
	utils.JSONMessage(ctx, http.StatusOK, "Invoice sent", gin.H{"to": to})
}

// ----------------------------------------------------
// payments
// ----------------------------------------------------

// POST /api/payments
func (c *BillController) RecordPayment(ctx *gin.Context) {
	var in services.PaymentInput
	if !utils.BindJSON(ctx, &in) {
		return
	}
	receipt, err := c.Bills.RecordPayment(ctx.Request.Context(), in)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	record(ctx, c.Audit, "PAYMENT", "Bill", in.BillID, nil, receipt.Payment)
	utils.JSONMessage(ctx, http.StatusCreated, "Payment recorded successfully", receipt)
}

// GET /api/payments?billId=
func (c *BillController) Payments(ctx *gin.Context) {
	billID := utils.QueryID(ctx, "billId")
	if billID == 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "billId is required")
		return
	}
	summary, err := c.Bills.Payments(ctx.Request.Context(), billID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, summary)
}
