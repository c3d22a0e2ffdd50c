package routes

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/TungTV17/HostelFinder-sub001/models"
	"github.com/TungTV17/HostelFinder-sub001/services"
	"github.com/TungTV17/HostelFinder-sub001/storage"
	"github.com/TungTV17/HostelFinder-sub001/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

type TenantInput struct {
	FullName           string     `json:"fullName" validate:"required,max=128"`
	Email              string     `json:"email" validate:"omitempty,email"`
	Phone              string     `json:"phone"`
	IdentityCardNumber string     `json:"identityCardNumber" validate:"max=32"`
	DateOfBirth        *time.Time `json:"dateOfBirth"`
	EmergencyContact   string     `json:"emergencyContact"`
}

type CreateContractInput struct {
	RoomID           uint              `json:"roomID" validate:"required"`
	Tenant           TenantInput       `json:"tenant" validate:"required"`
	StartDate        time.Time         `json:"startDate" validate:"required"`
	EndDate          *time.Time        `json:"endDate"`
	MonthlyRent      float64           `json:"monthlyRent" validate:"required,min=0"`
	DepositAmount    float64           `json:"depositAmount" validate:"min=0"`
	PaymentCycleDays int               `json:"paymentCycleDays" validate:"min=0"`
	Terms            map[string]string `json:"terms"`
}

func CreateContract(ctx iris.Context) {
	var input CreateContractInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Tenant.Phone != "" && !utils.ValidatePhoneNumber(input.Tenant.Phone) {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid phone number")
		return
	}

	var terms datatypes.JSON
	if input.Terms != nil {
		raw, _ := json.Marshal(input.Terms)
		terms = datatypes.JSON(raw)
	}

	lifecycle := services.NewContractService(storage.DB)
	contract, err := lifecycle.CreateContract(services.NewContractInput{
		RoomID: input.RoomID,
		Tenant: services.NewTenantInput{
			FullName:           input.Tenant.FullName,
			Email:              input.Tenant.Email,
			Phone:              utils.NormalizePhoneNumber(input.Tenant.Phone),
			IdentityCardNumber: input.Tenant.IdentityCardNumber,
			DateOfBirth:        input.Tenant.DateOfBirth,
			EmergencyContact:   input.Tenant.EmergencyContact,
		},
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		MonthlyRent:      input.MonthlyRent,
		DepositAmount:    input.DepositAmount,
		PaymentCycleDays: input.PaymentCycleDays,
		Terms:            terms,
	})
	if err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}

	utils.Audit(ctx, "create_contract", "rental_contract", contract.ID, nil, contract)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(contractView(contract))
}

func GetContract(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid contract ID")
		return
	}

	var contract models.RentalContract
	if err := storage.DB.Preload("Room").Preload("Tenant").First(&contract, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "not_found", "Contract not found")
		return
	}
	ctx.JSON(contractView(&contract))
}

type AddRoommateInput struct {
	RoomID     uint        `json:"roomID" validate:"required"`
	Tenant     TenantInput `json:"tenant" validate:"required"`
	MoveInDate time.Time   `json:"moveInDate" validate:"required"`
}

func AddRoommate(ctx iris.Context) {
	var input AddRoommateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	lifecycle := services.NewContractService(storage.DB)
	tenancy, err := lifecycle.AddRoommate(input.RoomID, services.NewTenantInput{
		FullName:           input.Tenant.FullName,
		Email:              input.Tenant.Email,
		Phone:              utils.NormalizePhoneNumber(input.Tenant.Phone),
		IdentityCardNumber: input.Tenant.IdentityCardNumber,
		DateOfBirth:        input.Tenant.DateOfBirth,
		EmergencyContact:   input.Tenant.EmergencyContact,
	}, input.MoveInDate)
	if err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}

	utils.Audit(ctx, "add_roommate", "room_tenancy", tenancy.ID, nil, tenancy)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(tenancy)
}

func TerminateContract(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid contract ID")
		return
	}

	lifecycle := services.NewContractService(storage.DB)
	contract, err := lifecycle.Terminate(uint(id))
	if err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}

	utils.Audit(ctx, "terminate_contract", "rental_contract", contract.ID, nil, contract)
	ctx.JSON(contractView(contract))
}

type ExtendContractInput struct {
	NewEndDate time.Time `json:"newEndDate" validate:"required"`
}

func ExtendContract(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid contract ID")
		return
	}

	var input ExtendContractInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	lifecycle := services.NewContractService(storage.DB)
	contract, err := lifecycle.Extend(uint(id), input.NewEndDate)
	if err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}

	utils.Audit(ctx, "extend_contract", "rental_contract", contract.ID, nil, contract)
	ctx.JSON(contractView(contract))
}

func MoveOutTenant(ctx iris.Context) {
	tenantID, err := strconv.ParseUint(ctx.Params().Get("tenantID"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid tenant ID")
		return
	}
	roomID, err := strconv.ParseUint(ctx.Params().Get("roomID"), 10, 32)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "Invalid room ID")
		return
	}

	lifecycle := services.NewContractService(storage.DB)
	if err := lifecycle.MoveOutTenant(uint(tenantID), uint(roomID)); err != nil {
		utils.HandleDomainError(ctx, err)
		return
	}

	utils.Audit(ctx, "move_out_tenant", "room_tenancy", uint(tenantID), nil, nil)
	ctx.StatusCode(iris.StatusNoContent)
}

// contractView decorates a contract with its derived display status.
func contractView(contract *models.RentalContract) iris.Map {
	return iris.Map{
		"contract": contract,
		"status":   contract.StatusAt(time.Now()),
	}
}
