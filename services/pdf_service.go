// services/pdf_service.go
package services

import (
	"bytes"
	"fmt"
	"time"

	"notprofi-backend/models"

	"github.com/jung-kurt/gofpdf/v2"
)

// GenerateInvoicePDF renders one commission invoice: header, recipient
// block, one table row per billed job and a net/VAT/gross totals block.
// Pure formatter, no billing logic.
func GenerateInvoicePDF(invoice *models.Invoice, totals InvoiceTotals) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(180, 10, "Abrechnung / Commission Invoice", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(180, 6, fmt.Sprintf("Rechnungsnummer: %s", invoice.InvoiceNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 6, fmt.Sprintf("Zeitraum: %s", invoice.MonthYear), "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 6, fmt.Sprintf("Erstellt: %s", invoice.CreatedAt.Format("02.01.2006")), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Recipient
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(180, 8, "Empfaenger / Recipient", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(180, 7, invoice.Company.CompanyName, "LR", 1, "L", false, 0, "")
	pdf.CellFormat(180, 7, invoice.Company.Address, "LR", 1, "L", false, 0, "")
	pdf.CellFormat(180, 7, invoice.Company.Email, "LRB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Line items
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(25, 7, "Einsatz #", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Datum", "1", 0, "C", true, 0, "")
	pdf.CellFormat(95, 7, "Einsatzort", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Netto", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.Items {
		address := item.Job.ServiceAddress
		if len(address) > 55 {
			address = address[:52] + "..."
		}
		pdf.CellFormat(25, 7, fmt.Sprintf("#%d", item.Job.JobNumber), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, item.Job.DateTime.Format("02.01.2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(95, 7, address, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("EUR %s", item.Amount.StringFixed(2)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Totals
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(150, 7, "Summe Netto", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("EUR %s", totals.Net.StringFixed(2)), "1", 1, "R", false, 0, "")
	pdf.CellFormat(150, 7, "USt.", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("EUR %s", totals.VAT.StringFixed(2)), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(150, 7, "Gesamt Brutto", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("EUR %s", totals.Gross.StringFixed(2)), "1", 1, "R", false, 0, "")

	// Footer
	pdf.SetY(-25)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(180, 5, "Notprofi24.at", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateJobPDF renders a single job report (Einsatzbericht).
func GenerateJobPDF(job *models.Job) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(180, 10, "Einsatzbericht / Job Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(180, 6, fmt.Sprintf("Einsatz #%d", job.JobNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 6, fmt.Sprintf("Datum: %s", job.DateTime.Format("02.01.2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Customer block
	name, address, phone := customerContact(job)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(180, 8, "Kunde / Customer", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(180, 6, fmt.Sprintf("Name: %s", name), "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 6, fmt.Sprintf("Adresse: %s", address), "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 6, fmt.Sprintf("Tel: %s", phone), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(180, 8, "Einsatzort / Service Address", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(180, 6, job.ServiceAddress, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(180, 8, "Ausfuehrender Betrieb / Service Provider", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(180, 6, job.Company.CompanyName, "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 6, fmt.Sprintf("Kontakt: %s", job.Company.ContactName), "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 6, fmt.Sprintf("Tel: %s", job.Company.Phone), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(180, 8, "Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(180, 6, fmt.Sprintf("Gewerk: %s", job.Trade), "", 1, "L", false, 0, "")
	pdf.MultiCell(180, 6, fmt.Sprintf("Taetigkeit: %s", job.Activity), "", "L", false)
	pdf.CellFormat(180, 6, fmt.Sprintf("Status: %s", models.CanonicalStatus(job.Status)), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(180, 8, "Bericht / Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	if job.ReportText != "" {
		pdf.MultiCell(180, 6, job.ReportText, "", "L", false)
	} else {
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(180, 6, "(Kein Bericht / No report text)", "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.SetY(-25)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(180, 5, fmt.Sprintf("Notprofi24.at - %s", time.Now().Format("02.01.2006")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func customerContact(job *models.Job) (name, address, phone string) {
	if job.PropertyManager != nil {
		return job.PropertyManager.Name, job.PropertyManager.Address, job.PropertyManager.Phone
	}
	if job.PrivateCustomer != nil {
		return job.PrivateCustomer.Name, job.PrivateCustomer.Address, job.PrivateCustomer.Phone
	}
	return "Unknown", "", ""
}
