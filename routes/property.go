package routes

import (
	"strconv"

	"github.com/TungTV17/HostelFinder-sub001/models"
	"github.com/TungTV17/HostelFinder-sub001/storage"
	"github.com/TungTV17/HostelFinder-sub001/utils"

	"github.com/kataras/iris/v12"
)

type CreatePropertyInput struct {
	LandlordID   uint   `json:"landlordID" validate:"required"`
	Name         string `json:"name" validate:"required,max=256"`
	Description  string `json:"description"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2"`
	Ward         string `json:"ward"`
	District     string `json:"district"`
	City         string `json:"city" validate:"required"`
	Country      string `json:"country"`
}

func CreateProperty(ctx iris.Context) {
	var input CreatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property := models.Property{
		LandlordID:   input.LandlordID,
		Name:         input.Name,
		Description:  input.Description,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		Ward:         input.Ward,
		District:     input.District,
		City:         input.City,
		Country:      input.Country,
	}
	if err := storage.DB.Create(&property).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "internal", "Failed to create property")
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(property)
}

func GetProperty(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid property ID")
		return
	}

	var property models.Property
	if err := storage.DB.Preload("Rooms").First(&property, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "not_found", "Property not found")
		return
	}
	ctx.JSON(property)
}

func ListProperties(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)

	var total int64
	storage.DB.Model(&models.Property{}).Count(&total)

	var properties []models.Property
	if err := storage.DB.
		Offset((page - 1) * perPage).Limit(perPage).
		Order("id").
		Find(&properties).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "internal", "Failed to list properties")
		return
	}

	utils.JSONPage(ctx, properties, page, perPage, total)
}
