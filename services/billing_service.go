// services/billing_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"notprofi-backend/models"
	"notprofi-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInvalidMonthYear is returned before any store access when the
// period key does not match "YYYY-MM".
var ErrInvalidMonthYear = errors.New("monthYear must match YYYY-MM")

// BillingPolicy is the explicit configuration point for which job
// statuses get billed. Cancelled jobs are billed at the cancellation
// fee, everything else at the standard (or per-job override) fee.
type BillingPolicy struct {
	BillOpen      bool
	BillDone      bool
	BillCancelled bool
}

// DefaultBillingPolicy bills open, done and cancelled jobs.
var DefaultBillingPolicy = BillingPolicy{BillOpen: true, BillDone: true, BillCancelled: true}

func (p BillingPolicy) IsBillable(status string) bool {
	switch {
	case models.IsCancelledStatus(status):
		return p.BillCancelled
	case models.IsDoneStatus(status):
		return p.BillDone
	case models.IsOpenStatus(status):
		return p.BillOpen
	}
	return false
}

// GenerateResult reports what one generation run touched.
type GenerateResult struct {
	GeneratedCount int    `json:"generatedCount"`
	JobsBilled     int    `json:"jobsBilled"`
	Message        string `json:"message"`
}

// InvoiceTotals holds the derived amounts of one invoice.
type InvoiceTotals struct {
	Net   decimal.Decimal `json:"net"`
	VAT   decimal.Decimal `json:"vat"`
	Gross decimal.Decimal `json:"gross"`
	Count int             `json:"count"`
}

// Generation runs are serialized process-wide. Two admins clicking
// "Generate" at once would otherwise race the unbilled check; the merge
// step would still converge the result, but there is no reason to let
// the race happen in the first place.
var generateMu sync.Mutex

// BillingService owns monthly invoice generation and reconciliation:
// selecting billable jobs, merging duplicate invoices for the same
// company and month, and recomputing totals from line items.
type BillingService struct {
	db     *gorm.DB
	policy BillingPolicy
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{db: db, policy: DefaultBillingPolicy}
}

// NewBillingServiceWithPolicy allows overriding the billable-status set.
func NewBillingServiceWithPolicy(db *gorm.DB, policy BillingPolicy) *BillingService {
	return &BillingService{db: db, policy: policy}
}

// Settings loads the billing settings row, seeding the defaults if the
// table is still empty.
func (s *BillingService) Settings() (models.BillingSettings, error) {
	var settings models.BillingSettings
	err := s.db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultBillingSettings()
		if err := s.db.Create(&settings).Error; err != nil {
			return settings, err
		}
		return settings, nil
	}
	return settings, err
}

// UpdateSettings persists new fee/VAT values. Already-billed items keep
// the amounts captured when they were created.
func (s *BillingService) UpdateSettings(standardFee, cancellationFee, vatRate decimal.Decimal) (models.BillingSettings, error) {
	settings, err := s.Settings()
	if err != nil {
		return settings, err
	}
	settings.StandardFee = standardFee
	settings.CancellationFee = cancellationFee
	settings.VATRate = vatRate
	if err := s.db.Save(&settings).Error; err != nil {
		return settings, err
	}
	return settings, nil
}

// feeForJob picks the net amount for one job: cancellation fee for
// cancelled jobs, otherwise the per-job override or the standard fee.
func feeForJob(job models.Job, settings models.BillingSettings) decimal.Decimal {
	if models.IsCancelledStatus(job.Status) {
		return settings.CancellationFee
	}
	if job.ReferralFee != nil {
		return *job.ReferralFee
	}
	return settings.StandardFee
}

// round2 rounds half-up to two decimal places. Applied after each
// derivation step (net sum, VAT, gross) so many line items cannot
// accumulate cent drift.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// GenerateInvoices runs one billing pass for the given "YYYY-MM" month:
// it selects billable jobs, drops anything already billed, merges
// duplicate invoices per company, creates missing master invoices,
// appends new line items and recomputes totals. Calling it again with
// no new jobs changes nothing.
func (s *BillingService) GenerateInvoices(monthYear string) (GenerateResult, error) {
	if !utils.ValidateMonthYear(monthYear) {
		return GenerateResult{}, ErrInvalidMonthYear
	}

	generateMu.Lock()
	defer generateMu.Unlock()

	settings, err := s.Settings()
	if err != nil {
		return GenerateResult{}, err
	}

	start, end, err := utils.MonthBounds(monthYear)
	if err != nil {
		return GenerateResult{}, ErrInvalidMonthYear
	}

	var result GenerateResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// 1) Jobs in the calendar month with a billable status
		var monthJobs []models.Job
		if err := tx.Where("date_time >= ? AND date_time < ?", start, end).Find(&monthJobs).Error; err != nil {
			return err
		}
		var billable []models.Job
		for _, job := range monthJobs {
			if s.policy.IsBillable(job.Status) {
				billable = append(billable, job)
			}
		}

		// 2) Drop jobs that already sit on any invoice, ever
		var billedIDs []uint
		if err := tx.Model(&models.InvoiceItem{}).Pluck("job_id", &billedIDs).Error; err != nil {
			return err
		}
		alreadyBilled := make(map[uint]bool, len(billedIDs))
		for _, id := range billedIDs {
			alreadyBilled[id] = true
		}

		byCompany := make(map[uint][]models.Job)
		for _, job := range billable {
			if alreadyBilled[job.ID] {
				continue
			}
			byCompany[job.CompanyID] = append(byCompany[job.CompanyID], job)
		}

		// 3) Companies to visit: anything with billable jobs this month,
		// plus anything that already has invoices for the month (their
		// duplicates still need merging even when nothing new is billed)
		companySet := make(map[uint]bool)
		for _, job := range billable {
			companySet[job.CompanyID] = true
		}
		var invoiceCompanyIDs []uint
		if err := tx.Model(&models.Invoice{}).Where("month_year = ?", monthYear).
			Distinct("company_id").Pluck("company_id", &invoiceCompanyIDs).Error; err != nil {
			return err
		}
		for _, id := range invoiceCompanyIDs {
			companySet[id] = true
		}

		if len(companySet) == 0 {
			result = GenerateResult{Message: "No billable jobs found for this month"}
			return nil
		}

		companyIDs := make([]uint, 0, len(companySet))
		for id := range companySet {
			companyIDs = append(companyIDs, id)
		}
		sort.Slice(companyIDs, func(i, j int) bool { return companyIDs[i] < companyIDs[j] })

		touched := 0
		jobsBilled := 0

		for _, companyID := range companyIDs {
			// 4) Merge duplicates before anything is appended
			master, merged, err := s.mergeDuplicateInvoices(tx, companyID, monthYear, settings.VATRate)
			if err != nil {
				return err
			}

			newJobs := byCompany[companyID]
			if len(newJobs) == 0 {
				if merged {
					touched++
				}
				// Nothing new to bill and no duplicates: never create an
				// empty invoice
				continue
			}

			// 5) Get-or-create the master invoice for (company, month)
			if master == nil {
				master, err = s.createInvoice(tx, companyID, monthYear)
				if err != nil {
					return err
				}
			}

			// 6) Append one item per job, net amount captured now
			for _, job := range newJobs {
				item := models.InvoiceItem{
					InvoiceID: master.ID,
					JobID:     job.ID,
					Amount:    round2(feeForJob(job, settings)),
				}
				if err := tx.Create(&item).Error; err != nil {
					if errors.Is(err, gorm.ErrDuplicatedKey) {
						// A concurrent run billed this job first; the
						// unique index on job_id makes the retry a no-op
						continue
					}
					return err
				}
				jobsBilled++
			}

			// 7) Totals are always re-derived from the current items
			if _, err := s.recalcInvoiceTotals(tx, master.ID, settings.VATRate); err != nil {
				return err
			}
			touched++
		}

		if touched == 0 {
			result = GenerateResult{Message: "No new jobs to invoice. Duplicates (if any) were merged."}
			return nil
		}
		result = GenerateResult{
			GeneratedCount: touched,
			JobsBilled:     jobsBilled,
			Message:        fmt.Sprintf("Updated/created %d invoices", touched),
		}
		return nil
	})
	if err != nil {
		return GenerateResult{}, err
	}
	return result, nil
}

// mergeDuplicateInvoices enforces the one-invoice-per-company-per-month
// invariant: the newest invoice becomes the master, items of every
// older duplicate are re-pointed to it and the emptied duplicates are
// deleted. No item is created or destroyed, so re-running the merge is
// harmless. Returns the master (nil if none exists yet) and whether any
// duplicate was actually folded in.
func (s *BillingService) mergeDuplicateInvoices(tx *gorm.DB, companyID uint, monthYear string, vatRate decimal.Decimal) (*models.Invoice, bool, error) {
	var list []models.Invoice
	err := tx.Where("company_id = ? AND month_year = ?", companyID, monthYear).
		Order("created_at DESC, id DESC").Find(&list).Error
	if err != nil {
		return nil, false, err
	}

	if len(list) == 0 {
		return nil, false, nil
	}
	master := list[0]
	if len(list) == 1 {
		return &master, false, nil
	}

	for _, dup := range list[1:] {
		if err := tx.Model(&models.InvoiceItem{}).
			Where("invoice_id = ?", dup.ID).
			Update("invoice_id", master.ID).Error; err != nil {
			return nil, false, err
		}
		if err := tx.Delete(&models.Invoice{}, dup.ID).Error; err != nil {
			return nil, false, err
		}
	}

	if _, err := s.recalcInvoiceTotals(tx, master.ID, vatRate); err != nil {
		return nil, false, err
	}
	return &master, true, nil
}

// createInvoice inserts a fresh unpaid invoice with a zero total. The
// invoice number is a display identifier, not a key: month + company
// plus a short random token, retried a few times if the token collides.
func (s *BillingService) createInvoice(tx *gorm.DB, companyID uint, monthYear string) (*models.Invoice, error) {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		invoice := models.Invoice{
			InvoiceNumber: fmt.Sprintf("%s-%d-%s", strings.ReplaceAll(monthYear, "-", ""), companyID, utils.GenerateRandomString(4)),
			MonthYear:     monthYear,
			CompanyID:     companyID,
			Status:        models.InvoiceStatusUnpaid,
			TotalAmount:   decimal.Zero,
		}
		err := tx.Create(&invoice).Error
		if err == nil {
			return &invoice, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("could not allocate a unique invoice number: %w", lastErr)
}

// recalcInvoiceTotals overwrites the stored gross with the aggregate of
// the invoice's current items: net = round2(sum), vat = round2(net*rate),
// gross = round2(net+vat). Summing and overwriting makes the step
// naturally idempotent.
func (s *BillingService) recalcInvoiceTotals(tx *gorm.DB, invoiceID uint, vatRate decimal.Decimal) (InvoiceTotals, error) {
	var items []models.InvoiceItem
	if err := tx.Where("invoice_id = ?", invoiceID).Find(&items).Error; err != nil {
		return InvoiceTotals{}, err
	}

	net := decimal.Zero
	for _, item := range items {
		net = net.Add(item.Amount)
	}
	net = round2(net)
	vat := round2(net.Mul(vatRate))
	gross := round2(net.Add(vat))

	err := tx.Model(&models.Invoice{}).Where("id = ?", invoiceID).
		Update("total_amount", gross).Error
	if err != nil {
		return InvoiceTotals{}, err
	}

	return InvoiceTotals{Net: net, VAT: vat, Gross: gross, Count: len(items)}, nil
}

// Totals re-derives the presentation amounts of a loaded invoice from
// its items; the persisted gross always matches Gross after a
// generation run.
func (s *BillingService) Totals(invoice *models.Invoice) (InvoiceTotals, error) {
	settings, err := s.Settings()
	if err != nil {
		return InvoiceTotals{}, err
	}
	net := decimal.Zero
	for _, item := range invoice.Items {
		net = net.Add(item.Amount)
	}
	net = round2(net)
	vat := round2(net.Mul(settings.VATRate))
	return InvoiceTotals{Net: net, VAT: vat, Gross: round2(net.Add(vat)), Count: len(invoice.Items)}, nil
}

// GetInvoice loads one invoice with company and items (each joined with
// its job) eagerly attached.
func (s *BillingService) GetInvoice(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Preload("Company").Preload("Items.Job").First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListInvoices returns every invoice, newest first, with company and
// items eagerly attached.
func (s *BillingService) ListInvoices() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.Preload("Company").Preload("Items.Job").
		Order("id DESC").Find(&invoices).Error
	return invoices, err
}

// MarkPaid sets status=paid and stamps paidAt.
func (s *BillingService) MarkPaid(id uint) (*models.Invoice, error) {
	invoice, err := s.GetInvoice(id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	err = s.db.Model(&models.Invoice{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": models.InvoiceStatusPaid, "paid_at": &now}).Error
	if err != nil {
		return nil, err
	}
	invoice.Status = models.InvoiceStatusPaid
	invoice.PaidAt = &now
	return invoice, nil
}

// MarkSent stamps sentAt after a successful delivery. It never touches
// payment status or line items.
func (s *BillingService) MarkSent(id uint) error {
	now := time.Now()
	return s.db.Model(&models.Invoice{}).Where("id = ?", id).
		Update("sent_at", &now).Error
}
