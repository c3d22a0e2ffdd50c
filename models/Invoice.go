package models

import "time"

type Invoice struct {
	AuditedModel
	RoomID         uint       `json:"roomID" gorm:"index:idx_invoice_period"`
	BillingMonth   int        `json:"billingMonth" gorm:"index:idx_invoice_period"`
	BillingYear    int        `json:"billingYear" gorm:"index:idx_invoice_period"`
	TotalAmount    float64    `json:"totalAmount"`
	IsPaid         bool       `json:"isPaid" gorm:"default:false"`
	AmountPaid     float64    `json:"amountPaid"`
	FormOfTransfer string     `json:"formOfTransfer" gorm:"size:32"` // cash, bank_transfer, ...
	PaidAt         *time.Time `json:"paidAt"`
	ReceiptNumber  string     `json:"receiptNumber" gorm:"size:40"`

	Room    *Room           `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Details []InvoiceDetail `json:"details,omitempty" gorm:"foreignKey:InvoiceID"`
}

// InvoiceDetail is one line item. ServiceID is nil for the rent line
// (IsRentRoom = true). ServiceName and UnitCost are snapshots taken at
// generation time so later catalog or price edits never change a bill.
type InvoiceDetail struct {
	AuditedModel
	InvoiceID        uint    `json:"invoiceID" gorm:"index"`
	ServiceID        *uint   `json:"serviceID"`
	ServiceName      string  `json:"serviceName"`
	UnitCost         float64 `json:"unitCost"`
	ActualCost       float64 `json:"actualCost"`
	NumberOfCustomer *int    `json:"numberOfCustomer"`
	PreviousReading  float64 `json:"previousReading"`
	CurrentReading   float64 `json:"currentReading"`
	IsRentRoom       bool    `json:"isRentRoom" gorm:"default:false"`
}
