package models

// ChargingMethod decides how a service's cost is computed on an invoice.
type ChargingMethod string

const (
	ChargeFree         ChargingMethod = "free"
	ChargeFlatFee      ChargingMethod = "flat_fee"
	ChargePerPerson    ChargingMethod = "per_person"
	ChargePerUsageUnit ChargingMethod = "per_usage_unit"
)

// Service is a catalog entry (electricity, water, internet ...). Once a
// service appears on a historical invoice its line items keep their own
// snapshot, so catalog edits never rewrite old bills.
type Service struct {
	AuditedModel
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	ChargingMethod ChargingMethod `json:"chargingMethod" gorm:"size:32;index"`
}
