package services

import (
	"fmt"
	"log"

	"github.com/TungTV17/HostelFinder-sub001/models"
)

// InvoiceNotifier is the seam to the external notification system. The
// engine never blocks on it; delivery failures are logged and dropped.
type InvoiceNotifier interface {
	InvoiceGenerated(invoice *models.Invoice)
	PaymentCollected(invoice *models.Invoice)
}

// logNotifier is the default: it only writes to the server log. The real
// email delivery lives outside this service and is plugged in at wiring
// time.
type logNotifier struct{}

func (logNotifier) InvoiceGenerated(invoice *models.Invoice) {
	log.Printf("📄 INVOICE: generated invoice %d for room %d, period %04d-%02d, total %.2f",
		invoice.ID, invoice.RoomID, invoice.BillingYear, invoice.BillingMonth, invoice.TotalAmount)
}

func (logNotifier) PaymentCollected(invoice *models.Invoice) {
	log.Printf("💰 PAYMENT: invoice %d paid %.2f via %s, receipt %s",
		invoice.ID, invoice.AmountPaid, invoice.FormOfTransfer, invoice.ReceiptNumber)
}

// MailNotifier forwards invoice events to an external mailer (the email
// service is an external collaborator; only its interface lives here).
type Mailer interface {
	Send(to, subject, body string) error
}

type MailNotifier struct {
	mailer Mailer
	to     string
}

func NewMailNotifier(mailer Mailer, to string) *MailNotifier {
	return &MailNotifier{mailer: mailer, to: to}
}

func (n *MailNotifier) InvoiceGenerated(invoice *models.Invoice) {
	subject := "New invoice ready"
	body := invoiceSummary(invoice)
	if err := n.mailer.Send(n.to, subject, body); err != nil {
		log.Printf("❌ MAIL: could not send invoice %d notification: %v", invoice.ID, err)
	}
}

func (n *MailNotifier) PaymentCollected(invoice *models.Invoice) {
	subject := "Payment received"
	body := invoiceSummary(invoice)
	if err := n.mailer.Send(n.to, subject, body); err != nil {
		log.Printf("❌ MAIL: could not send payment %d notification: %v", invoice.ID, err)
	}
}

func invoiceSummary(invoice *models.Invoice) string {
	status := "unpaid"
	if invoice.IsPaid {
		status = "paid"
	}
	return fmt.Sprintf("Invoice for period %04d-%02d: total %.2f (%s)",
		invoice.BillingYear, invoice.BillingMonth, invoice.TotalAmount, status)
}
