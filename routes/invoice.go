package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/TungTV17/HostelFinder-sub001/models"
	"github.com/TungTV17/HostelFinder-sub001/services"
	"github.com/TungTV17/HostelFinder-sub001/storage"
	"github.com/TungTV17/HostelFinder-sub001/utils"

	"github.com/kataras/iris/v12"
)

var bgContext = context.Background()

type GenerateInvoiceInput struct {
	RoomID       uint `json:"roomID" validate:"required"`
	BillingMonth int  `json:"billingMonth" validate:"required,min=1,max=12"`
	BillingYear  int  `json:"billingYear" validate:"required,min=2020"`
}

func GenerateInvoice(ctx iris.Context) {
	var input GenerateInvoiceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	billing := services.NewInvoiceService(storage.DB)
	invoice, err := billing.GenerateInvoice(input.RoomID, input.BillingMonth, input.BillingYear)
	if err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}

	utils.Audit(ctx, "generate_invoice", "invoice", invoice.ID, nil, invoice)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(invoice)
}

func GetInvoice(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid invoice ID")
		return
	}

	billing := services.NewInvoiceService(storage.DB)
	invoice, err := billing.Get(uint(id))
	if err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}
	ctx.JSON(invoice)
}

func ListRoomInvoices(ctx iris.Context) {
	roomID, err := strconv.ParseUint(ctx.Params().Get("roomID"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid room ID")
		return
	}

	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)

	query := storage.DB.Model(&models.Invoice{}).Where("room_id = ?", roomID)

	var total int64
	query.Count(&total)

	var invoices []models.Invoice
	if err := query.Preload("Details").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("billing_year DESC, billing_month DESC").
		Find(&invoices).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "internal", "Failed to list invoices")
		return
	}

	utils.JSONPage(ctx, invoices, page, perPage, total)
}

type CollectPaymentInput struct {
	AmountPaid     *float64 `json:"amountPaid"` // nil = full payment
	TransferMethod string   `json:"transferMethod" validate:"required,oneof=cash bank_transfer e_wallet"`
}

func CollectPayment(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid invoice ID")
		return
	}

	var input CollectPaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	billing := services.NewInvoiceService(storage.DB)
	invoice, err := billing.CollectPayment(uint(id), input.AmountPaid, input.TransferMethod, time.Now())
	if err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}

	utils.Audit(ctx, "collect_payment", "invoice", invoice.ID, nil, invoice)
	ctx.JSON(invoice)
}

func DeleteInvoice(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid invoice ID")
		return
	}

	billing := services.NewInvoiceService(storage.DB)
	if err := billing.Delete(uint(id)); err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}

	utils.Audit(ctx, "delete_invoice", "invoice", uint(id), nil, nil)
	ctx.StatusCode(iris.StatusNoContent)
}

// RevenueSummary serves the landlord dashboard. The aggregate is cached
// in Redis for a few minutes; a cold or unreachable cache just means a
// direct query.
func RevenueSummary(ctx iris.Context) {
	propertyID, err := strconv.ParseUint(ctx.Params().Get("propertyID"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid property ID")
		return
	}
	year := ctx.URLParamIntDefault("year", time.Now().Year())

	cacheKey := fmt.Sprintf("revenue:%d:%d", propertyID, year)
	if storage.Redis != nil {
		if cached, err := storage.Redis.Get(bgContext, cacheKey).Result(); err == nil {
			var summary []services.MonthlyRevenue
			if json.Unmarshal([]byte(cached), &summary) == nil {
				ctx.JSON(iris.Map{"year": year, "months": summary, "cached": true})
				return
			}
		}
	}

	billing := services.NewInvoiceService(storage.DB)
	summary, err := billing.RevenueSummary(uint(propertyID), year)
	if err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}

	if storage.Redis != nil {
		if raw, err := json.Marshal(summary); err == nil {
			storage.Redis.Set(bgContext, cacheKey, raw, 5*time.Minute)
		}
	}

	ctx.JSON(iris.Map{"year": year, "months": summary, "cached": false})
}
