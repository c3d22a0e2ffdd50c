package models

type Room struct {
	AuditedModel
	PropertyID      uint    `json:"propertyID" gorm:"index"`
	Name            string  `json:"name"`
	Floor           int     `json:"floor"`
	Area            float32 `json:"area"` // square meters
	MaxRenters      int     `json:"maxRenters"`
	MonthlyRentCost float64 `json:"monthlyRentCost"`

	// IsAvailable is maintained by the contract lifecycle only. It is never
	// settable through the API while a contract covers the current date.
	IsAvailable bool `json:"isAvailable" gorm:"default:true"`

	Property  *Property     `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Tenancies []RoomTenancy `json:"tenancies,omitempty" gorm:"foreignKey:RoomID"`
}
