package models

type Property struct {
	AuditedModel
	LandlordID   uint   `json:"landlordID" gorm:"index"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	Ward         string `json:"ward"`
	District     string `json:"district"`
	City         string `json:"city"`
	Country      string `json:"country"`

	Rooms         []Room         `json:"rooms,omitempty" gorm:"foreignKey:PropertyID"`
	ServicePrices []ServicePrice `json:"servicePrices,omitempty" gorm:"foreignKey:PropertyID"`
}
