package reports_test

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/models"
	"bitbucket.org/mmdatafocus/property_backend/models/reports"
	"github.com/shopspring/decimal"
)

func decPtr(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func ledgerTxn(txnType models.TransactionType, status models.TransactionStatus, amount int64) *models.Transaction {
	return &models.Transaction{
		PropertyId:    1,
		Type:          txnType,
		CurrentStatus: status,
		Amount:        decimal.NewFromInt(amount),
	}
}

func TestBuildBalanceSheetCashAndNetIncome(t *testing.T) {
	txns := []*models.Transaction{
		ledgerTxn(models.TransactionTypeIncome, models.TransactionStatusPaid, 1000),
		ledgerTxn(models.TransactionTypeIncome, models.TransactionStatusPaid, 1000),
		ledgerTxn(models.TransactionTypeIncome, models.TransactionStatusPaid, 1000),
		ledgerTxn(models.TransactionTypeExpense, models.TransactionStatusPaid, 300),
		ledgerTxn(models.TransactionTypeExpense, models.TransactionStatusPaid, 300),
	}

	sheet := reports.BuildBalanceSheet(txns, nil, reports.BalanceSheetConfig{}, time.Now())

	if !sheet.Assets.CurrentAssets.Cash.Equal(decimal.NewFromInt(2400)) {
		t.Errorf("got cash %s, want 2400", sheet.Assets.CurrentAssets.Cash)
	}
	if !sheet.Equity.RetainedEarnings.Equal(decimal.NewFromInt(2400)) {
		t.Errorf("got retained earnings %s, want 2400", sheet.Equity.RetainedEarnings)
	}
}

func TestBuildBalanceSheetIdentity(t *testing.T) {
	cfg := reports.BalanceSheetConfig{
		SecurityDeposits:     decimal.NewFromInt(5000),
		TenantDeposits:       decimal.NewFromInt(4500),
		Equipment:            decimal.NewFromInt(12000),
		AccruedExpenses:      decimal.NewFromInt(800),
		OtherLoans:           decimal.NewFromInt(20000),
		LoanToValueRatio:     decimal.NewFromFloat(0.7),
		DefaultPropertyValue: decimal.NewFromInt(150000),
	}
	txns := []*models.Transaction{
		ledgerTxn(models.TransactionTypeIncome, models.TransactionStatusPaid, 9000),
		ledgerTxn(models.TransactionTypeIncome, models.TransactionStatusPending, 1200),
		ledgerTxn(models.TransactionTypeExpense, models.TransactionStatusPaid, 3500),
		ledgerTxn(models.TransactionTypeExpense, models.TransactionStatusPending, 700),
	}
	properties := []*models.Property{
		{ID: 1, Name: "Elm Street", PurchasePrice: decPtr(250000)},
		{ID: 2, Name: "Oak Court"}, // no purchase price, uses the default
	}

	sheet := reports.BuildBalanceSheet(txns, properties, cfg, time.Now())

	if !sheet.Assets.FixedAssets.PropertyValue.Equal(decimal.NewFromInt(400000)) {
		t.Errorf("got property value %s, want 400000", sheet.Assets.FixedAssets.PropertyValue)
	}
	if !sheet.Liabilities.LongTermLiabilities.Mortgages.Equal(decimal.NewFromInt(280000)) {
		t.Errorf("got mortgages %s, want 280000", sheet.Liabilities.LongTermLiabilities.Mortgages)
	}
	if !sheet.Assets.CurrentAssets.AccountsReceivable.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("got receivable %s, want 1200", sheet.Assets.CurrentAssets.AccountsReceivable)
	}
	if !sheet.Liabilities.CurrentLiabilities.AccountsPayable.Equal(decimal.NewFromInt(700)) {
		t.Errorf("got payable %s, want 700", sheet.Liabilities.CurrentLiabilities.AccountsPayable)
	}

	// owner equity is a plug, so this must hold exactly
	rhs := sheet.Liabilities.TotalLiabilities.Add(sheet.Equity.TotalEquity)
	if !sheet.Assets.TotalAssets.Equal(rhs) {
		t.Errorf("assets %s != liabilities + equity %s", sheet.Assets.TotalAssets, rhs)
	}
}

func TestBuildBalanceSheetIdentityHoldsOnEmptyLedger(t *testing.T) {
	sheet := reports.BuildBalanceSheet(nil, nil, reports.BalanceSheetConfig{}, time.Now())
	rhs := sheet.Liabilities.TotalLiabilities.Add(sheet.Equity.TotalEquity)
	if !sheet.Assets.TotalAssets.Equal(rhs) {
		t.Errorf("assets %s != liabilities + equity %s", sheet.Assets.TotalAssets, rhs)
	}
}
