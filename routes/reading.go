package routes

import (
	"strconv"

	"github.com/TungTV17/HostelFinder-sub001/models"
	"github.com/TungTV17/HostelFinder-sub001/services"
	"github.com/TungTV17/HostelFinder-sub001/storage"
	"github.com/TungTV17/HostelFinder-sub001/utils"

	"github.com/kataras/iris/v12"
)

type RecordReadingInput struct {
	RoomID       uint     `json:"roomID" validate:"required"`
	ServiceID    uint     `json:"serviceID" validate:"required"`
	BillingMonth int      `json:"billingMonth" validate:"required,min=1,max=12"`
	BillingYear  int      `json:"billingYear" validate:"required,min=2020"`
	Reading      float64  `json:"reading" validate:"min=0"`
	Previous     *float64 `json:"previous"` // optional baseline when no earlier reading exists
}

func RecordReading(ctx iris.Context) {
	var input RecordReadingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	meter := services.NewMeterService(storage.DB)
	reading, err := meter.RecordReading(input.RoomID, input.ServiceID, input.BillingMonth, input.BillingYear, input.Reading, input.Previous)
	if err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(reading)
}

type UpdateReadingInput struct {
	Reading float64 `json:"reading" validate:"min=0"`
}

func UpdateReading(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid reading ID")
		return
	}

	var input UpdateReadingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	meter := services.NewMeterService(storage.DB)
	reading, err := meter.UpdateReading(uint(id), input.Reading)
	if err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}

	utils.Audit(ctx, "update_reading", "meter_reading", reading.ID, nil, reading)
	ctx.JSON(reading)
}

func ListRoomReadings(ctx iris.Context) {
	roomID, err := strconv.ParseUint(ctx.Params().Get("roomID"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid room ID")
		return
	}

	query := storage.DB.Where("room_id = ?", roomID)
	if serviceID := ctx.URLParamIntDefault("serviceID", 0); serviceID > 0 {
		query = query.Where("service_id = ?", serviceID)
	}

	var readings []models.MeterReading
	if err := query.Preload("Service").
		Order("billing_year, billing_month").
		Find(&readings).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "internal", "Failed to list readings")
		return
	}
	ctx.JSON(readings)
}
