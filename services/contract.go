package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/TungTV17/HostelFinder-sub001/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContractService is the sole writer of Room.IsAvailable,
// RentalContract.EndDate and RoomTenancy.MoveOutDate. Keeping all three
// behind one component is what holds the availability/contract/tenancy
// invariants together, so no route or other service mutates them directly.
type ContractService struct {
	db *gorm.DB
}

func NewContractService(db *gorm.DB) *ContractService {
	return &ContractService{db: db}
}

type NewTenantInput struct {
	FullName           string
	Email              string
	Phone              string
	IdentityCardNumber string
	DateOfBirth        *time.Time
	EmergencyContact   string
}

type NewContractInput struct {
	RoomID           uint
	Tenant           NewTenantInput
	StartDate        time.Time
	EndDate          *time.Time // nil = open-ended
	MonthlyRent      float64
	DepositAmount    float64
	PaymentCycleDays int
	Terms            datatypes.JSON
}

// CreateContract signs a new lease for a room: creates the tenant record,
// the contract and the primary tenancy, and flips the room unavailable
// when the contract window covers the current date. Open-ended contracts
// are treated as running forever for the overlap check.
func (s *ContractService) CreateContract(input NewContractInput) (*models.RentalContract, error) {
	if input.EndDate != nil && !input.EndDate.After(input.StartDate) {
		return nil, fmt.Errorf("%w: end date %s is not after start date %s", ErrInvalidDate,
			input.EndDate.Format("2006-01-02"), input.StartDate.Format("2006-01-02"))
	}

	var created *models.RentalContract
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, input.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %d", ErrNotFound, input.RoomID)
			}
			return err
		}

		overlap, err := overlappingContract(tx, input.RoomID, input.StartDate, input.EndDate)
		if err != nil {
			return err
		}
		if overlap != nil {
			return fmt.Errorf("%w: room %q, contract %d starting %s", ErrOverlappingContract,
				room.Name, overlap.ID, overlap.StartDate.Format("2006-01-02"))
		}

		// Overlap already ruled out a contract holding the room, so an
		// unavailable flag here means an external block (maintenance etc).
		if !room.IsAvailable {
			return fmt.Errorf("%w: room %q is blocked", ErrRoomNotAvailable, room.Name)
		}

		count, err := currentOccupantCount(tx, room.ID, time.Now())
		if err != nil {
			return err
		}
		if count >= room.MaxRenters {
			return fmt.Errorf("%w: room %q has %d of %d renters", ErrRoomFull, room.Name, count, room.MaxRenters)
		}

		tenant, err := createTenant(tx, input.Tenant)
		if err != nil {
			return err
		}

		contract := models.RentalContract{
			RoomID:           room.ID,
			TenantID:         tenant.ID,
			StartDate:        input.StartDate,
			EndDate:          input.EndDate,
			MonthlyRent:      input.MonthlyRent,
			DepositAmount:    input.DepositAmount,
			PaymentCycleDays: input.PaymentCycleDays,
			Terms:            input.Terms,
		}
		if err := tx.Create(&contract).Error; err != nil {
			return err
		}

		tenancy := models.RoomTenancy{
			RoomID:      room.ID,
			TenantID:    tenant.ID,
			ContractID:  contract.ID,
			MoveInDate:  input.StartDate,
			MoveOutDate: input.EndDate,
		}
		if err := tx.Create(&tenancy).Error; err != nil {
			return err
		}

		if contract.CoversNow(time.Now()) {
			if err := tx.Model(&room).Update("is_available", false).Error; err != nil {
				return err
			}
		}

		created = &contract
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AddRoommate moves an extra tenant into a room under its active
// contract. The new tenancy inherits the contract's end date as its
// move-out date.
func (s *ContractService) AddRoommate(roomID uint, tenantInput NewTenantInput, moveInDate time.Time) (*models.RoomTenancy, error) {
	var created *models.RoomTenancy
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %d", ErrNotFound, roomID)
			}
			return err
		}

		contract, err := activeContract(tx, roomID, time.Now())
		if err != nil {
			return err
		}
		if contract == nil {
			return fmt.Errorf("%w: room %q", ErrNoActiveContract, room.Name)
		}

		count, err := currentOccupantCount(tx, roomID, time.Now())
		if err != nil {
			return err
		}
		if count >= room.MaxRenters {
			return fmt.Errorf("%w: room %q has %d of %d renters", ErrRoomFull, room.Name, count, room.MaxRenters)
		}

		tenant, err := createTenant(tx, tenantInput)
		if err != nil {
			return err
		}

		tenancy := models.RoomTenancy{
			RoomID:      roomID,
			TenantID:    tenant.ID,
			ContractID:  contract.ID,
			MoveInDate:  moveInDate,
			MoveOutDate: contract.EndDate,
		}
		if err := tx.Create(&tenancy).Error; err != nil {
			return err
		}
		created = &tenancy
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Terminate ends a contract now: end date set to the current time, the
// room released, and every tenancy still open for the room moved out.
func (s *ContractService) Terminate(contractID uint) (*models.RentalContract, error) {
	var terminated *models.RentalContract
	err := s.db.Transaction(func(tx *gorm.DB) error {
		contract, err := terminateContract(tx, contractID)
		if err != nil {
			return err
		}
		terminated = contract
		return nil
	})
	if err != nil {
		return nil, err
	}
	return terminated, nil
}

func terminateContract(tx *gorm.DB, contractID uint) (*models.RentalContract, error) {
	var contract models.RentalContract
	if err := tx.First(&contract, contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: contract %d", ErrNotFound, contractID)
		}
		return nil, err
	}

	now := time.Now()
	if contract.EndDate != nil && contract.EndDate.Before(now) {
		return nil, fmt.Errorf("%w: contract %d ended %s", ErrAlreadyTerminated,
			contract.ID, contract.EndDate.Format("2006-01-02"))
	}

	if err := tx.Model(&contract).Update("end_date", now).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&models.Room{}).Where("id = ?", contract.RoomID).
		Update("is_available", true).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&models.RoomTenancy{}).
		Where("room_id = ? AND (move_out_date IS NULL OR move_out_date > ?)", contract.RoomID, now).
		Update("move_out_date", now).Error; err != nil {
		return nil, err
	}

	contract.EndDate = &now
	return &contract, nil
}

// Extend pushes the contract's end date forward and carries the tenancies
// that ran to the old end date along with it.
func (s *ContractService) Extend(contractID uint, newEndDate time.Time) (*models.RentalContract, error) {
	var extended *models.RentalContract
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var contract models.RentalContract
		if err := tx.First(&contract, contractID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: contract %d", ErrNotFound, contractID)
			}
			return err
		}

		now := time.Now()
		if !newEndDate.After(now) {
			return fmt.Errorf("%w: new end date %s is not in the future", ErrInvalidDate, newEndDate.Format("2006-01-02"))
		}
		if contract.EndDate == nil {
			return fmt.Errorf("%w: contract %d is open-ended", ErrInvalidDate, contract.ID)
		}
		if !newEndDate.After(*contract.EndDate) {
			return fmt.Errorf("%w: new end date %s is not after current end date %s", ErrInvalidDate,
				newEndDate.Format("2006-01-02"), contract.EndDate.Format("2006-01-02"))
		}

		oldEnd := *contract.EndDate
		if err := tx.Model(&contract).Update("end_date", newEndDate).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.RoomTenancy{}).
			Where("contract_id = ? AND move_in_date >= ? AND move_out_date = ?", contract.ID, contract.StartDate, oldEnd).
			Update("move_out_date", newEndDate).Error; err != nil {
			return err
		}

		contract.EndDate = &newEndDate
		extended = &contract
		return nil
	})
	if err != nil {
		return nil, err
	}
	return extended, nil
}

// MoveOutTenant removes one tenant from a room. Moving out the primary
// tenant (the room's earliest tenancy) ends the whole lease, exactly like
// Terminate; a roommate leaving only closes their own tenancy.
func (s *ContractService) MoveOutTenant(tenantID, roomID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var tenancy models.RoomTenancy
		err := tx.Where("tenant_id = ? AND room_id = ?", tenantID, roomID).
			Order("move_in_date DESC").First(&tenancy).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no tenancy for tenant %d in room %d", ErrNotFound, tenantID, roomID)
			}
			return err
		}

		now := time.Now()
		if tenancy.MoveOutDate != nil && tenancy.MoveOutDate.Before(now) {
			return fmt.Errorf("%w: tenant %d left on %s", ErrAlreadyMovedOut,
				tenantID, tenancy.MoveOutDate.Format("2006-01-02"))
		}

		var primary models.RoomTenancy
		if err := tx.Where("contract_id = ?", tenancy.ContractID).
			Order("move_in_date, id").First(&primary).Error; err != nil {
			return err
		}

		if primary.ID == tenancy.ID {
			// the primary signatory leaving ends the whole lease
			_, err := terminateContract(tx, tenancy.ContractID)
			return err
		}

		return tx.Model(&tenancy).Update("move_out_date", now).Error
	})
}

// ActiveContract returns the contract covering "now" for the room, or nil.
func (s *ContractService) ActiveContract(roomID uint) (*models.RentalContract, error) {
	return activeContract(s.db, roomID, time.Now())
}

func activeContract(db *gorm.DB, roomID uint, now time.Time) (*models.RentalContract, error) {
	var contract models.RentalContract
	err := db.Where("room_id = ? AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)", roomID, now, now).
		First(&contract).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func overlappingContract(db *gorm.DB, roomID uint, start time.Time, end *time.Time) (*models.RentalContract, error) {
	query := db.Where("room_id = ? AND (end_date IS NULL OR end_date >= ?)", roomID, start)
	if end != nil {
		query = query.Where("start_date <= ?", *end)
	}
	var contract models.RentalContract
	err := query.First(&contract).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func createTenant(tx *gorm.DB, input NewTenantInput) (*models.Tenant, error) {
	if input.IdentityCardNumber != "" {
		var count int64
		err := tx.Model(&models.Tenant{}).
			Where("identity_card_number = ?", input.IdentityCardNumber).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIdentityDocument, input.IdentityCardNumber)
		}
	}

	tenant := models.Tenant{
		FullName:           input.FullName,
		Email:              input.Email,
		Phone:              input.Phone,
		IdentityCardNumber: input.IdentityCardNumber,
		DateOfBirth:        input.DateOfBirth,
		EmergencyContact:   input.EmergencyContact,
	}
	if err := tx.Create(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}
