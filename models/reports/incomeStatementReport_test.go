package reports_test

import (
	"testing"

	"bitbucket.org/mmdatafocus/property_backend/models"
	"bitbucket.org/mmdatafocus/property_backend/models/reports"
	"github.com/shopspring/decimal"
)

func txn(id int, txnType models.TransactionType, amount int64, categoryId *int, subtype string) *models.Transaction {
	return &models.Transaction{
		ID:            id,
		PropertyId:    1,
		CategoryId:    categoryId,
		Type:          txnType,
		Subtype:       subtype,
		CurrentStatus: models.TransactionStatusPaid,
		Amount:        decimal.NewFromInt(amount),
	}
}

func TestBuildIncomeStatementClassification(t *testing.T) {
	categories := map[int]string{
		1: "Rent",
		2: "Parking",
		3: "Maintenance & Repairs",
		4: "Utilities",
		5: "Insurance",
		6: "Property Management",
		7: "Legal & Professional Fees",
	}

	result := reports.BuildIncomeStatement([]*models.Transaction{
		txn(1, models.TransactionTypeIncome, 1000, intPtr(1), ""),
		txn(2, models.TransactionTypeIncome, 150, intPtr(2), ""),
		txn(3, models.TransactionTypeIncome, 800, nil, "payment"),
		txn(4, models.TransactionTypeExpense, 200, intPtr(3), ""),
		txn(5, models.TransactionTypeExpense, 120, intPtr(4), ""),
		txn(6, models.TransactionTypeExpense, 90, intPtr(5), ""),
		txn(7, models.TransactionTypeExpense, 80, intPtr(6), ""),
		txn(8, models.TransactionTypeExpense, 60, intPtr(7), ""),
	}, categories)

	if !result.RentalIncome.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("got rental income %s, want 1800", result.RentalIncome)
	}
	if !result.OtherIncome.Equal(decimal.NewFromInt(150)) {
		t.Errorf("got other income %s, want 150", result.OtherIncome)
	}
	if !result.Maintenance.Equal(decimal.NewFromInt(200)) {
		t.Errorf("got maintenance %s, want 200", result.Maintenance)
	}
	if !result.Utilities.Equal(decimal.NewFromInt(120)) {
		t.Errorf("got utilities %s, want 120", result.Utilities)
	}
	if !result.Insurance.Equal(decimal.NewFromInt(90)) {
		t.Errorf("got insurance %s, want 90", result.Insurance)
	}
	if !result.PropertyManagement.Equal(decimal.NewFromInt(80)) {
		t.Errorf("got property management %s, want 80", result.PropertyManagement)
	}
	if !result.OtherExpenses.Equal(decimal.NewFromInt(60)) {
		t.Errorf("got other expenses %s, want 60", result.OtherExpenses)
	}
	if !result.TotalIncome.Equal(result.RentalIncome.Add(result.OtherIncome)) {
		t.Error("total income != rental + other")
	}
	expenseSum := result.Maintenance.
		Add(result.Utilities).
		Add(result.Insurance).
		Add(result.PropertyManagement).
		Add(result.OtherExpenses)
	if !result.TotalExpenses.Equal(expenseSum) {
		t.Error("total expenses != sum of expense buckets")
	}
	if !result.NetIncome.Equal(result.TotalIncome.Sub(result.TotalExpenses)) {
		t.Error("net income != total income - total expenses")
	}
}

func TestBuildIncomeStatementMaintenanceCountedOnce(t *testing.T) {
	// "Maintenance" belongs in maintenance only, never also in other_expenses
	categories := map[int]string{1: "Maintenance"}

	result := reports.BuildIncomeStatement([]*models.Transaction{
		txn(1, models.TransactionTypeExpense, 300, intPtr(1), ""),
	}, categories)

	if !result.Maintenance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("got maintenance %s, want 300", result.Maintenance)
	}
	if !result.OtherExpenses.IsZero() {
		t.Errorf("got other expenses %s, want 0", result.OtherExpenses)
	}
	if !result.TotalExpenses.Equal(decimal.NewFromInt(300)) {
		t.Errorf("got total expenses %s, want 300 (no double count)", result.TotalExpenses)
	}
}

func TestBuildIncomeStatementFirstMatchWins(t *testing.T) {
	// matches both the maintenance and management keyword sets; the earlier
	// rule takes it
	categories := map[int]string{1: "Maintenance Management"}

	result := reports.BuildIncomeStatement([]*models.Transaction{
		txn(1, models.TransactionTypeExpense, 100, intPtr(1), ""),
	}, categories)

	if !result.Maintenance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("got maintenance %s, want 100", result.Maintenance)
	}
	if !result.PropertyManagement.IsZero() {
		t.Errorf("got property management %s, want 0", result.PropertyManagement)
	}
}

func TestBuildIncomeStatementNetIncome(t *testing.T) {
	categories := map[int]string{1: "Rent", 2: "Utilities"}

	result := reports.BuildIncomeStatement([]*models.Transaction{
		txn(1, models.TransactionTypeIncome, 1000, intPtr(1), ""),
		txn(2, models.TransactionTypeIncome, 1000, intPtr(1), ""),
		txn(3, models.TransactionTypeIncome, 1000, intPtr(1), ""),
		txn(4, models.TransactionTypeExpense, 300, intPtr(2), ""),
		txn(5, models.TransactionTypeExpense, 300, intPtr(2), ""),
	}, categories)

	if !result.NetIncome.Equal(decimal.NewFromInt(2400)) {
		t.Errorf("got net income %s, want 2400", result.NetIncome)
	}
}

func TestBuildIncomeStatementSkipsCancelled(t *testing.T) {
	categories := map[int]string{1: "Rent"}
	cancelled := txn(1, models.TransactionTypeIncome, 9999, intPtr(1), "")
	cancelled.CurrentStatus = models.TransactionStatusCancelled

	result := reports.BuildIncomeStatement([]*models.Transaction{cancelled}, categories)
	if !result.TotalIncome.IsZero() {
		t.Errorf("got total income %s, want 0 (cancelled excluded)", result.TotalIncome)
	}
}
