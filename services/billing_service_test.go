package services

import (
	"testing"
	"time"

	"notprofi-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Company{},
		&models.PropertyManager{},
		&models.PrivateCustomer{},
		&models.Job{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.BillingSettings{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestCompany(t *testing.T, db *gorm.DB, name string) models.Company {
	t.Helper()
	company := models.Company{
		CompanyName: name,
		ContactName: "Max Mustermann",
		Address:     "Teststrasse 1, 1010 Wien",
		Phone:       "+431234567",
		Email:       name + "@example.at",
		Trades:      models.StringArray{"Installateur"},
		IsActive:    true,
	}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("failed to create company: %v", err)
	}
	return company
}

func createTestJob(t *testing.T, db *gorm.DB, companyID uint, dateTime time.Time, status string, fee *decimal.Decimal) models.Job {
	t.Helper()
	job := models.Job{
		DateTime:       dateTime,
		CustomerType:   models.CustomerTypePrivateCustomer,
		ServiceAddress: "Einsatzort 5, 1020 Wien",
		CompanyID:      companyID,
		Trade:          "Installateur",
		Activity:       "Rohrbruch",
		Status:         status,
		ReferralFee:    fee,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
	return job
}

func assertDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if got.StringFixed(2) != want {
		t.Errorf("got %s, want %s", got.StringFixed(2), want)
	}
}

func TestGenerateInvoicesIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)
	company := createTestCompany(t, db, "klempner-gmbh")

	june := time.Date(2024, 6, 10, 14, 0, 0, 0, time.Local)
	createTestJob(t, db, company.ID, june, models.JobStatusDone, nil)
	createTestJob(t, db, company.ID, june.AddDate(0, 0, 5), models.JobStatusDone, nil)

	result, err := svc.GenerateInvoices("2024-06")
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if result.GeneratedCount != 1 {
		t.Errorf("first run touched %d invoices, want 1", result.GeneratedCount)
	}
	if result.JobsBilled != 2 {
		t.Errorf("first run billed %d jobs, want 2", result.JobsBilled)
	}

	var firstTotal decimal.Decimal
	var invoice models.Invoice
	if err := db.First(&invoice).Error; err != nil {
		t.Fatalf("no invoice created: %v", err)
	}
	firstTotal = invoice.TotalAmount

	// Second run with no new jobs must change nothing
	result, err = svc.GenerateInvoices("2024-06")
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if result.GeneratedCount != 0 {
		t.Errorf("second run touched %d invoices, want 0", result.GeneratedCount)
	}

	var invoiceCount, itemCount int64
	db.Model(&models.Invoice{}).Count(&invoiceCount)
	db.Model(&models.InvoiceItem{}).Count(&itemCount)
	if invoiceCount != 1 {
		t.Errorf("invoice count after rerun = %d, want 1", invoiceCount)
	}
	if itemCount != 2 {
		t.Errorf("item count after rerun = %d, want 2", itemCount)
	}

	db.First(&invoice)
	if !invoice.TotalAmount.Equal(firstTotal) {
		t.Errorf("total changed on rerun: %s -> %s", firstTotal, invoice.TotalAmount)
	}
}

func TestGenerateAppendsOnlyNewJobs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)
	company := createTestCompany(t, db, "elektro-huber")

	june := time.Date(2024, 6, 3, 9, 0, 0, 0, time.Local)
	createTestJob(t, db, company.ID, june, models.JobStatusDone, nil)

	if _, err := svc.GenerateInvoices("2024-06"); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// A late job lands in the already-billed month
	lateJob := createTestJob(t, db, company.ID, june.AddDate(0, 0, 20), models.JobStatusDone, nil)

	result, err := svc.GenerateInvoices("2024-06")
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if result.JobsBilled != 1 {
		t.Errorf("second run billed %d jobs, want 1", result.JobsBilled)
	}

	var invoiceCount int64
	db.Model(&models.Invoice{}).Count(&invoiceCount)
	if invoiceCount != 1 {
		t.Errorf("invoice count = %d, want 1", invoiceCount)
	}

	// No job may ever be billed twice
	var items []models.InvoiceItem
	db.Find(&items)
	seen := make(map[uint]int)
	for _, item := range items {
		seen[item.JobID]++
	}
	for jobID, n := range seen {
		if n != 1 {
			t.Errorf("job %d billed %d times", jobID, n)
		}
	}
	if seen[lateJob.ID] != 1 {
		t.Errorf("late job was not billed")
	}
}

func TestGenerateMergesDuplicateInvoices(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)
	company := createTestCompany(t, db, "dachdecker-meier")

	june := time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)
	jobA := createTestJob(t, db, company.ID, june, models.JobStatusDone, nil)
	jobB := createTestJob(t, db, company.ID, june.AddDate(0, 0, 1), models.JobStatusDone, nil)
	jobC := createTestJob(t, db, company.ID, june.AddDate(0, 0, 2), models.JobStatusDone, nil)

	// Legacy state: two invoices for the same company and month, items
	// split {a,b} / {c}
	fee := decimal.NewFromFloat(49)
	inv1 := models.Invoice{InvoiceNumber: "202406-1-aaaa", MonthYear: "2024-06", CompanyID: company.ID, Status: models.InvoiceStatusUnpaid, TotalAmount: decimal.Zero}
	inv2 := models.Invoice{InvoiceNumber: "202406-1-bbbb", MonthYear: "2024-06", CompanyID: company.ID, Status: models.InvoiceStatusUnpaid, TotalAmount: decimal.Zero}
	if err := db.Create(&inv1).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&inv2).Error; err != nil {
		t.Fatal(err)
	}
	for _, item := range []models.InvoiceItem{
		{InvoiceID: inv1.ID, JobID: jobA.ID, Amount: fee},
		{InvoiceID: inv1.ID, JobID: jobB.ID, Amount: fee},
		{InvoiceID: inv2.ID, JobID: jobC.ID, Amount: fee},
	} {
		if err := db.Create(&item).Error; err != nil {
			t.Fatal(err)
		}
	}

	if _, err := svc.GenerateInvoices("2024-06"); err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	var invoices []models.Invoice
	db.Where("company_id = ? AND month_year = ?", company.ID, "2024-06").Find(&invoices)
	if len(invoices) != 1 {
		t.Fatalf("invoice count after merge = %d, want 1", len(invoices))
	}

	var items []models.InvoiceItem
	db.Where("invoice_id = ?", invoices[0].ID).Find(&items)
	if len(items) != 3 {
		t.Errorf("merged invoice has %d items, want 3", len(items))
	}

	// 3 x 49 = 147 net, 29.40 VAT, 176.40 gross
	assertDecimal(t, invoices[0].TotalAmount, "176.40")
}

func TestTotalsRounding(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)

	tests := []struct {
		name   string
		status string
		net    string
		vat    string
		gross  string
	}{
		{"standard fee", models.JobStatusDone, "49.00", "9.80", "58.80"},
		{"cancellation fee", models.JobStatusCancelled, "14.90", "2.98", "17.88"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			company := createTestCompany(t, db, tt.name)
			month := time.Date(2024, time.Month(i+1), 15, 12, 0, 0, 0, time.Local)
			createTestJob(t, db, company.ID, month, tt.status, nil)

			monthYear := month.Format("2006-01")
			if _, err := svc.GenerateInvoices(monthYear); err != nil {
				t.Fatalf("generation failed: %v", err)
			}

			var invoice models.Invoice
			if err := db.Preload("Items").Where("company_id = ?", company.ID).First(&invoice).Error; err != nil {
				t.Fatalf("no invoice: %v", err)
			}

			totals, err := svc.Totals(&invoice)
			if err != nil {
				t.Fatal(err)
			}
			assertDecimal(t, totals.Net, tt.net)
			assertDecimal(t, totals.VAT, tt.vat)
			assertDecimal(t, totals.Gross, tt.gross)
			assertDecimal(t, invoice.TotalAmount, tt.gross)
		})
	}
}

func TestReferralFeeOverride(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)
	company := createTestCompany(t, db, "override-gmbh")

	override := decimal.NewFromFloat(75.50)
	createTestJob(t, db, company.ID, time.Date(2024, 6, 5, 10, 0, 0, 0, time.Local), models.JobStatusDone, &override)

	if _, err := svc.GenerateInvoices("2024-06"); err != nil {
		t.Fatal(err)
	}

	var item models.InvoiceItem
	if err := db.First(&item).Error; err != nil {
		t.Fatalf("no item: %v", err)
	}
	assertDecimal(t, item.Amount, "75.50")
}

func TestAmountsCapturedAtBillingTime(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)
	company := createTestCompany(t, db, "capture-gmbh")

	createTestJob(t, db, company.ID, time.Date(2024, 6, 5, 10, 0, 0, 0, time.Local), models.JobStatusDone, nil)
	if _, err := svc.GenerateInvoices("2024-06"); err != nil {
		t.Fatal(err)
	}

	// Raising the standard fee must not touch the already-billed item
	_, err := svc.UpdateSettings(decimal.NewFromFloat(99), decimal.NewFromFloat(20), decimal.NewFromFloat(0.20))
	if err != nil {
		t.Fatal(err)
	}

	createTestJob(t, db, company.ID, time.Date(2024, 7, 5, 10, 0, 0, 0, time.Local), models.JobStatusDone, nil)
	if _, err := svc.GenerateInvoices("2024-07"); err != nil {
		t.Fatal(err)
	}

	var items []models.InvoiceItem
	db.Order("id ASC").Find(&items)
	if len(items) != 2 {
		t.Fatalf("item count = %d, want 2", len(items))
	}
	assertDecimal(t, items[0].Amount, "49.00")
	assertDecimal(t, items[1].Amount, "99.00")
}

func TestMonthBoundaries(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)
	company := createTestCompany(t, db, "boundary-gmbh")

	// Last instant of June is in, first instant of July is out
	lastInstant := time.Date(2024, 6, 30, 23, 59, 59, 999999999, time.Local)
	nextMonth := time.Date(2024, 7, 1, 0, 0, 0, 0, time.Local)
	inJob := createTestJob(t, db, company.ID, lastInstant, models.JobStatusDone, nil)
	createTestJob(t, db, company.ID, nextMonth, models.JobStatusDone, nil)

	if _, err := svc.GenerateInvoices("2024-06"); err != nil {
		t.Fatal(err)
	}

	var items []models.InvoiceItem
	db.Find(&items)
	if len(items) != 1 {
		t.Fatalf("item count = %d, want 1", len(items))
	}
	if items[0].JobID != inJob.ID {
		t.Errorf("billed job %d, want %d", items[0].JobID, inJob.ID)
	}
}

func TestGenerateWithNoBillableJobs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)
	createTestCompany(t, db, "idle-gmbh")

	result, err := svc.GenerateInvoices("2024-06")
	if err != nil {
		t.Fatal(err)
	}
	if result.GeneratedCount != 0 {
		t.Errorf("touched %d invoices, want 0", result.GeneratedCount)
	}
	if result.Message != "No billable jobs found for this month" {
		t.Errorf("unexpected message: %q", result.Message)
	}

	var count int64
	db.Model(&models.Invoice{}).Count(&count)
	if count != 0 {
		t.Errorf("empty invoice was created")
	}
}

func TestGenerateRejectsInvalidMonthYear(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)

	for _, bad := range []string{"", "2024", "2024-13", "2024-1", "06-2024", "2024/06"} {
		if _, err := svc.GenerateInvoices(bad); err != ErrInvalidMonthYear {
			t.Errorf("GenerateInvoices(%q) err = %v, want ErrInvalidMonthYear", bad, err)
		}
	}

	var count int64
	db.Model(&models.Invoice{}).Count(&count)
	if count != 0 {
		t.Errorf("invalid input touched the store")
	}
}

func TestGermanStatusVariantsAreBilled(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)
	company := createTestCompany(t, db, "variant-gmbh")

	june := time.Date(2024, 6, 10, 10, 0, 0, 0, time.Local)
	createTestJob(t, db, company.ID, june, "erledigt", nil)
	createTestJob(t, db, company.ID, june.AddDate(0, 0, 1), "storniert", nil)

	result, err := svc.GenerateInvoices("2024-06")
	if err != nil {
		t.Fatal(err)
	}
	if result.JobsBilled != 2 {
		t.Fatalf("billed %d jobs, want 2", result.JobsBilled)
	}

	// erledigt -> standard fee, storniert -> cancellation fee
	var invoice models.Invoice
	db.First(&invoice)
	// 49 + 14.90 = 63.90 net, 12.78 VAT, 76.68 gross
	assertDecimal(t, invoice.TotalAmount, "76.68")
}

func TestPolicyExcludesOpenJobs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingServiceWithPolicy(db, BillingPolicy{BillDone: true, BillCancelled: true})
	company := createTestCompany(t, db, "policy-gmbh")

	june := time.Date(2024, 6, 10, 10, 0, 0, 0, time.Local)
	createTestJob(t, db, company.ID, june, models.JobStatusOpen, nil)
	doneJob := createTestJob(t, db, company.ID, june.AddDate(0, 0, 1), models.JobStatusDone, nil)

	result, err := svc.GenerateInvoices("2024-06")
	if err != nil {
		t.Fatal(err)
	}
	if result.JobsBilled != 1 {
		t.Fatalf("billed %d jobs, want 1", result.JobsBilled)
	}

	var item models.InvoiceItem
	db.First(&item)
	if item.JobID != doneJob.ID {
		t.Errorf("billed job %d, want %d", item.JobID, doneJob.ID)
	}
}

func TestMergeKeepsNewestInvoiceAsMaster(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)
	company := createTestCompany(t, db, "paid-merge-gmbh")

	june := time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)
	jobA := createTestJob(t, db, company.ID, june, models.JobStatusDone, nil)
	jobB := createTestJob(t, db, company.ID, june.AddDate(0, 0, 1), models.JobStatusDone, nil)

	fee := decimal.NewFromFloat(49)
	older := models.Invoice{InvoiceNumber: "202406-9-old1", MonthYear: "2024-06", CompanyID: company.ID, Status: models.InvoiceStatusUnpaid, TotalAmount: decimal.Zero, CreatedAt: time.Now().Add(-2 * time.Hour)}
	newer := models.Invoice{InvoiceNumber: "202406-9-new1", MonthYear: "2024-06", CompanyID: company.ID, Status: models.InvoiceStatusUnpaid, TotalAmount: decimal.Zero, CreatedAt: time.Now().Add(-1 * time.Hour)}
	if err := db.Create(&older).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&newer).Error; err != nil {
		t.Fatal(err)
	}
	db.Create(&models.InvoiceItem{InvoiceID: older.ID, JobID: jobA.ID, Amount: fee})
	db.Create(&models.InvoiceItem{InvoiceID: newer.ID, JobID: jobB.ID, Amount: fee})

	if _, err := svc.GenerateInvoices("2024-06"); err != nil {
		t.Fatal(err)
	}

	// The newest invoice survives as master
	var survivors []models.Invoice
	db.Where("month_year = ?", "2024-06").Find(&survivors)
	if len(survivors) != 1 {
		t.Fatalf("survivor count = %d, want 1", len(survivors))
	}
	if survivors[0].ID != newer.ID {
		t.Errorf("master = invoice %d, want newest %d", survivors[0].ID, newer.ID)
	}

	var itemCount int64
	db.Model(&models.InvoiceItem{}).Where("invoice_id = ?", newer.ID).Count(&itemCount)
	if itemCount != 2 {
		t.Errorf("master holds %d items, want 2", itemCount)
	}
}

func TestMarkPaidAndMarkSent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBillingService(db)
	company := createTestCompany(t, db, "paid-gmbh")

	createTestJob(t, db, company.ID, time.Date(2024, 6, 5, 10, 0, 0, 0, time.Local), models.JobStatusDone, nil)
	if _, err := svc.GenerateInvoices("2024-06"); err != nil {
		t.Fatal(err)
	}

	var invoice models.Invoice
	db.First(&invoice)
	if invoice.Status != models.InvoiceStatusUnpaid {
		t.Fatalf("fresh invoice status = %q, want unpaid", invoice.Status)
	}

	if err := svc.MarkSent(invoice.ID); err != nil {
		t.Fatal(err)
	}
	paid, err := svc.MarkPaid(invoice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if paid.Status != models.InvoiceStatusPaid || paid.PaidAt == nil {
		t.Errorf("invoice not marked paid: status=%q paidAt=%v", paid.Status, paid.PaidAt)
	}

	db.First(&invoice)
	if invoice.SentAt == nil {
		t.Errorf("sentAt not stamped")
	}
	if invoice.Status != models.InvoiceStatusPaid {
		t.Errorf("persisted status = %q, want paid", invoice.Status)
	}
}
