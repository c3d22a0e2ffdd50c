package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/TungTV17/HostelFinder-sub001/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceService turns a (room, month, year) billing period into an
// invoice: one line per service priced for the property on the 1st of the
// month, computed by that service's charging method, plus the rent line.
// Generation is all-or-nothing; a failed line aborts the transaction and
// nothing persists.
type InvoiceService struct {
	db       *gorm.DB
	notifier InvoiceNotifier
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db, notifier: logNotifier{}}
}

// WithNotifier swaps the post-payment notifier; used by the HTTP layer to
// plug in the real mailer.
func (s *InvoiceService) WithNotifier(n InvoiceNotifier) *InvoiceService {
	s.notifier = n
	return s
}

// GenerateInvoice builds and persists the invoice for one billing period.
func (s *InvoiceService) GenerateInvoice(roomID uint, billingMonth, billingYear int) (*models.Invoice, error) {
	if billingMonth < 1 || billingMonth > 12 {
		return nil, fmt.Errorf("%w: billing month %d", ErrInvalidDate, billingMonth)
	}

	var invoice *models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %d", ErrNotFound, roomID)
			}
			return err
		}

		// A vacant room has nothing to bill.
		if room.IsAvailable {
			return fmt.Errorf("%w: room %q is vacant", ErrRoomNotAvailable, room.Name)
		}

		var existing int64
		err := tx.Model(&models.Invoice{}).
			Where("room_id = ? AND billing_month = ? AND billing_year = ?", roomID, billingMonth, billingYear).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: room %q, %04d-%02d", ErrInvoiceAlreadyExists, room.Name, billingYear, billingMonth)
		}

		billingDate := time.Date(billingYear, time.Month(billingMonth), 1, 0, 0, 0, 0, time.UTC)
		prices, err := activePrices(tx, room.PropertyID, billingDate)
		if err != nil {
			return err
		}

		details := make([]models.InvoiceDetail, 0, len(prices)+1)
		for _, price := range prices {
			detail, err := buildServiceLine(tx, &room, price, billingMonth, billingYear)
			if err != nil {
				return err
			}
			details = append(details, *detail)
		}

		// Rent is always the last line.
		renters := room.MaxRenters
		details = append(details, models.InvoiceDetail{
			ServiceName:      "room rent",
			UnitCost:         room.MonthlyRentCost,
			ActualCost:       room.MonthlyRentCost,
			NumberOfCustomer: &renters,
			IsRentRoom:       true,
		})

		total := 0.0
		for _, d := range details {
			total += d.ActualCost
		}

		record := models.Invoice{
			RoomID:       roomID,
			BillingMonth: billingMonth,
			BillingYear:  billingYear,
			TotalAmount:  total,
			Details:      details,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		invoice = &record
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.InvoiceGenerated(invoice)
	return invoice, nil
}

func buildServiceLine(tx *gorm.DB, room *models.Room, price models.ServicePrice, month, year int) (*models.InvoiceDetail, error) {
	service := price.Service
	if service == nil {
		return nil, fmt.Errorf("%w: price %d has no service", ErrNotFound, price.ID)
	}

	detail := models.InvoiceDetail{
		ServiceID:   &price.ServiceID,
		ServiceName: service.Name,
		UnitCost:    price.UnitCost,
	}

	switch service.ChargingMethod {
	case models.ChargePerUsageUnit:
		previous, err := previousReading(tx, room.ID, price.ServiceID, month, year)
		if err != nil {
			return nil, err
		}
		if previous == nil {
			return nil, fmt.Errorf("%w: no previous reading for %q in room %q", ErrMissingReading, service.Name, room.Name)
		}
		current, err := currentReading(tx, room.ID, price.ServiceID, month, year)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, fmt.Errorf("%w: no reading for %q in room %q for %04d-%02d", ErrMissingReading, service.Name, room.Name, year, month)
		}
		if current.Reading < previous.Reading {
			return nil, fmt.Errorf("%w: %q in room %q: %.2f < %.2f", ErrNonMonotonicReading,
				service.Name, room.Name, current.Reading, previous.Reading)
		}
		detail.PreviousReading = previous.Reading
		detail.CurrentReading = current.Reading
		detail.ActualCost = price.UnitCost * (current.Reading - previous.Reading)

	case models.ChargePerPerson:
		count, err := occupantCountForMonth(tx, room.ID, month, year)
		if err != nil {
			return nil, err
		}
		detail.NumberOfCustomer = &count
		detail.ActualCost = price.UnitCost * float64(count)

	case models.ChargeFlatFee:
		zero := 0
		detail.NumberOfCustomer = &zero
		detail.ActualCost = price.UnitCost

	case models.ChargeFree:
		zero := 0
		detail.NumberOfCustomer = &zero
		detail.ActualCost = 0

	default:
		return nil, fmt.Errorf("%w: %q uses %q", ErrUnsupportedCharging, service.Name, service.ChargingMethod)
	}

	return &detail, nil
}

// CollectPayment marks an invoice paid. A nil amount means full payment.
// Payment freezes the invoice's line items and the meter readings behind
// them.
func (s *InvoiceService) CollectPayment(invoiceID uint, amountPaid *float64, transferMethod string, paidAt time.Time) (*models.Invoice, error) {
	var paid *models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: invoice %d", ErrNotFound, invoiceID)
			}
			return err
		}
		if invoice.IsPaid {
			return fmt.Errorf("%w: invoice %d, receipt %s", ErrAlreadyPaid, invoice.ID, invoice.ReceiptNumber)
		}

		amount := invoice.TotalAmount
		if amountPaid != nil {
			if *amountPaid < 0 {
				return fmt.Errorf("%w: %.2f", ErrInvalidAmount, *amountPaid)
			}
			amount = *amountPaid
		}

		updates := map[string]interface{}{
			"is_paid":          true,
			"amount_paid":      amount,
			"form_of_transfer": transferMethod,
			"paid_at":          paidAt,
			"receipt_number":   uuid.NewString(),
		}
		if err := tx.Model(&invoice).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			return err
		}
		paid = &invoice
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.PaymentCollected(paid)
	return paid, nil
}

// Delete soft-deletes an unpaid invoice together with its line items.
func (s *InvoiceService) Delete(invoiceID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: invoice %d", ErrNotFound, invoiceID)
			}
			return err
		}
		if invoice.IsPaid {
			return fmt.Errorf("%w: invoice %d", ErrCannotDeletePaid, invoice.ID)
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})
}

// Get loads an invoice with its line items.
func (s *InvoiceService) Get(invoiceID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Preload("Details").Preload("Room").First(&invoice, invoiceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invoice %d", ErrNotFound, invoiceID)
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// MonthlyRevenue is one row of a property's revenue summary.
type MonthlyRevenue struct {
	Month  int     `json:"month"`
	Billed float64 `json:"billed"`
	Paid   float64 `json:"paid"`
}

// RevenueSummary aggregates billed and collected totals per month across
// all rooms of a property for one year.
func (s *InvoiceService) RevenueSummary(propertyID uint, year int) ([]MonthlyRevenue, error) {
	var invoices []models.Invoice
	err := s.db.
		Joins("JOIN rooms ON rooms.id = invoices.room_id").
		Where("rooms.property_id = ? AND invoices.billing_year = ?", propertyID, year).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}

	summary := make([]MonthlyRevenue, 12)
	for i := range summary {
		summary[i].Month = i + 1
	}
	for _, inv := range invoices {
		row := &summary[inv.BillingMonth-1]
		row.Billed += inv.TotalAmount
		if inv.IsPaid {
			row.Paid += inv.AmountPaid
		}
	}
	return summary, nil
}
