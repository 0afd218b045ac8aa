// services/mail_service.go
package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"notprofi-backend/models"

	"gopkg.in/gomail.v2"
)

// ErrNoRecipient means the target has no email address on file.
var ErrNoRecipient = errors.New("no recipient email found")

func smtpDialer() (*gomail.Dialer, string, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, "", errors.New("SMTP_HOST not set")
	}
	port := 587
	if env := os.Getenv("SMTP_PORT"); env != "" {
		if p, err := strconv.Atoi(env); err == nil {
			port = p
		}
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "Notprofi24.at <noreply@notprofi24.at>"
	}
	return gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS")), from, nil
}

func sendWithAttachment(to, subject, body, filename string, attachment []byte) error {
	dialer, from, err := smtpDialer()
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(attachment)
		return err
	}))

	return dialer.DialAndSend(m)
}

// SendInvoiceEmail mails the invoice PDF to the partner company.
// Delivery is a side channel: a failure here never rolls back invoice
// or line-item state.
func SendInvoiceEmail(invoice *models.Invoice, pdf []byte) error {
	if invoice.Company.Email == "" {
		return ErrNoRecipient
	}
	subject := fmt.Sprintf("Rechnung %s - %s", invoice.MonthYear, invoice.InvoiceNumber)
	body := fmt.Sprintf("Sehr geehrte Damen und Herren,\n\nanbei erhalten Sie die Abrechnung fuer %s.\n\nMit freundlichen Gruessen,\nIhr Notprofi24.at Team", invoice.MonthYear)
	return sendWithAttachment(invoice.Company.Email, subject, body,
		fmt.Sprintf("invoice-%s.pdf", invoice.InvoiceNumber), pdf)
}

// SendJobReportEmail mails the job report PDF to the referring customer.
func SendJobReportEmail(job *models.Job, pdf []byte) error {
	var recipient string
	if job.PropertyManager != nil {
		recipient = job.PropertyManager.Email
	} else if job.PrivateCustomer != nil {
		recipient = job.PrivateCustomer.Email
	}
	if recipient == "" {
		return ErrNoRecipient
	}
	subject := fmt.Sprintf("Einsatzbericht #%d", job.JobNumber)
	body := fmt.Sprintf("Sehr geehrte Damen und Herren,\n\nanbei erhalten Sie den Einsatzbericht fuer den Auftrag #%d.\n\nMit freundlichen Gruessen,\nIhr Notprofi24.at Team", job.JobNumber)
	return sendWithAttachment(recipient, subject, body,
		fmt.Sprintf("job-%d.pdf", job.JobNumber), pdf)
}
