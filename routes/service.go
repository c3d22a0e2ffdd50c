package routes

import (
	"strconv"
	"time"

	"github.com/TungTV17/HostelFinder-sub001/models"
	"github.com/TungTV17/HostelFinder-sub001/services"
	"github.com/TungTV17/HostelFinder-sub001/storage"
	"github.com/TungTV17/HostelFinder-sub001/utils"

	"github.com/kataras/iris/v12"
)

type CreateServiceInput struct {
	Name           string `json:"name" validate:"required,max=128"`
	Description    string `json:"description"`
	ChargingMethod string `json:"chargingMethod" validate:"required,oneof=free flat_fee per_person per_usage_unit"`
}

func CreateService(ctx iris.Context) {
	var input CreateServiceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	service := models.Service{
		Name:           input.Name,
		Description:    input.Description,
		ChargingMethod: models.ChargingMethod(input.ChargingMethod),
	}
	if err := storage.DB.Create(&service).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "internal", "Failed to create service")
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(service)
}

func ListServices(ctx iris.Context) {
	var catalog []models.Service
	if err := storage.DB.Order("id").Find(&catalog).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "internal", "Failed to list services")
		return
	}
	ctx.JSON(catalog)
}

type SetServicePriceInput struct {
	PropertyID    uint      `json:"propertyID" validate:"required"`
	ServiceID     uint      `json:"serviceID" validate:"required"`
	UnitCost      float64   `json:"unitCost" validate:"min=0"`
	Unit          string    `json:"unit" validate:"max=20"`
	EffectiveFrom time.Time `json:"effectiveFrom" validate:"required"`
}

func SetServicePrice(ctx iris.Context) {
	var input SetServicePriceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	pricing := services.NewPricingService(storage.DB)
	price, err := pricing.SetPrice(input.PropertyID, input.ServiceID, input.UnitCost, input.Unit, input.EffectiveFrom)
	if err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}

	utils.Audit(ctx, "set_price", "service_price", price.ID, nil, price)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(price)
}

// GetActivePrices returns the property's price list for a date, default
// today. This is the same set invoice generation bills from.
func GetActivePrices(ctx iris.Context) {
	propertyID, err := strconv.ParseUint(ctx.Params().Get("propertyID"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid property ID")
		return
	}

	date := time.Now()
	if raw := ctx.URLParam("date"); raw != "" {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid date format, want YYYY-MM-DD")
			return
		}
	}

	pricing := services.NewPricingService(storage.DB)
	prices, err := pricing.PricesActiveOn(uint(propertyID), date)
	if err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}
	ctx.JSON(prices)
}
