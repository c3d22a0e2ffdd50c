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

type CreateRoomInput struct {
	PropertyID      uint    `json:"propertyID" validate:"required"`
	Name            string  `json:"name" validate:"required,max=128"`
	Floor           int     `json:"floor"`
	Area            float32 `json:"area" validate:"min=0"`
	MaxRenters      int     `json:"maxRenters" validate:"required,min=1"`
	MonthlyRentCost float64 `json:"monthlyRentCost" validate:"required,min=0"`
}

// CreateRoom adds a room to a property. New rooms start available; the
// flag is owned by the contract lifecycle from then on.
func CreateRoom(ctx iris.Context) {
	var input CreateRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, input.PropertyID).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "not_found", "Property not found")
		return
	}

	room := models.Room{
		PropertyID:      input.PropertyID,
		Name:            input.Name,
		Floor:           input.Floor,
		Area:            input.Area,
		MaxRenters:      input.MaxRenters,
		MonthlyRentCost: input.MonthlyRentCost,
		IsAvailable:     true,
	}
	if err := storage.DB.Create(&room).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "internal", "Failed to create room")
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(room)
}

func GetRoom(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid room ID")
		return
	}

	var room models.Room
	if err := storage.DB.Preload("Tenancies.Tenant").First(&room, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "not_found", "Room not found")
		return
	}

	occupancy := services.NewOccupancyService(storage.DB)
	count, err := occupancy.CurrentCount(room.ID)
	if err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}

	view := iris.Map{
		"room":          room,
		"occupantCount": count,
	}
	if contract, err := services.NewContractService(storage.DB).ActiveContract(room.ID); err == nil && contract != nil {
		view["activeContract"] = contract
		view["contractStatus"] = contract.StatusAt(time.Now())
	}

	ctx.JSON(view)
}

func ListRooms(ctx iris.Context) {
	propertyID, err := strconv.ParseUint(ctx.Params().Get("propertyID"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid property ID")
		return
	}

	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)

	query := storage.DB.Model(&models.Room{}).Where("property_id = ?", propertyID)
	if ctx.URLParamExists("available") {
		query = query.Where("is_available = ?", ctx.URLParamBoolDefault("available", true))
	}

	var total int64
	query.Count(&total)

	var rooms []models.Room
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Order("id").Find(&rooms).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "internal", "Failed to list rooms")
		return
	}

	utils.JSONPage(ctx, rooms, page, perPage, total)
}
