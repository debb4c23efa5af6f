package reports_test

import (
	"encoding/json"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/models"
	"bitbucket.org/mmdatafocus/property_backend/models/reports"
	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyAgingBucketBoundaries(t *testing.T) {
	today := day(2026, time.June, 30)

	cases := []struct {
		daysOverdue int
		wantBucket  reports.AgingBucket
		wantCurrent bool
	}{
		{-5, reports.AgingBucket0to30, true},
		{0, reports.AgingBucket0to30, true},
		{1, reports.AgingBucket0to30, false},
		{30, reports.AgingBucket0to30, false},
		{31, reports.AgingBucket31to60, false},
		{60, reports.AgingBucket31to60, false},
		{61, reports.AgingBucket61to90, false},
		{90, reports.AgingBucket61to90, false},
		{91, reports.AgingBucket90plus, false},
	}

	for _, tc := range cases {
		dueDate := today.AddDate(0, 0, -tc.daysOverdue)
		got := reports.ClassifyAging(dueDate, today)
		if got.DaysOverdue != tc.daysOverdue {
			t.Errorf("days=%d: got DaysOverdue %d", tc.daysOverdue, got.DaysOverdue)
		}
		if got.Bucket != tc.wantBucket {
			t.Errorf("days=%d: got bucket %q, want %q", tc.daysOverdue, got.Bucket, tc.wantBucket)
		}
		if got.IsCurrent != tc.wantCurrent {
			t.Errorf("days=%d: got IsCurrent %v, want %v", tc.daysOverdue, got.IsCurrent, tc.wantCurrent)
		}
	}
}

func TestClassifyAgingIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2026, time.June, 30, 1, 0, 0, 0, time.UTC)
	dueDate := time.Date(2026, time.June, 29, 23, 59, 59, 0, time.UTC)

	got := reports.ClassifyAging(dueDate, today)
	if got.DaysOverdue != 1 {
		t.Fatalf("got DaysOverdue %d, want 1", got.DaysOverdue)
	}
}

func intPtr(n int) *int { return &n }

func pendingIncome(id int, amount int64, dueDate time.Time) *models.Transaction {
	return &models.Transaction{
		ID:            id,
		PropertyId:    1,
		TenantId:      intPtr(10),
		Type:          models.TransactionTypeIncome,
		CurrentStatus: models.TransactionStatusPending,
		Amount:        decimal.NewFromInt(amount),
		DueDate:       &dueDate,
		CreatedAt:     dueDate.AddDate(0, 0, -14),
	}
}

func TestBuildAgingReportScenario(t *testing.T) {
	today := day(2026, time.June, 30)
	txns := []*models.Transaction{
		pendingIncome(1, 500, today.AddDate(0, 0, -45)),
	}

	report, err := reports.BuildAgingReport(txns, today)
	if err != nil {
		t.Fatalf("BuildAgingReport: %v", err)
	}
	if len(report.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(report.Entries))
	}

	entry := report.Entries[0]
	if entry.DaysOverdue != 45 {
		t.Errorf("got DaysOverdue %d, want 45", entry.DaysOverdue)
	}
	if entry.Bucket != reports.AgingBucket31to60 {
		t.Errorf("got bucket %q, want %q", entry.Bucket, reports.AgingBucket31to60)
	}
	if entry.IsCurrent {
		t.Error("entry should be overdue")
	}
	if !report.Totals.Overdue.Equal(decimal.NewFromInt(500)) {
		t.Errorf("got overdue total %s, want 500", report.Totals.Overdue)
	}
	if !report.Totals.B31to60.Equal(decimal.NewFromInt(500)) {
		t.Errorf("got 31-60 total %s, want 500", report.Totals.B31to60)
	}
	if !report.Totals.Current.IsZero() {
		t.Errorf("got current total %s, want 0", report.Totals.Current)
	}
}

func TestBuildAgingReportTotalIdentities(t *testing.T) {
	today := day(2026, time.June, 30)
	txns := []*models.Transaction{
		pendingIncome(1, 100, today.AddDate(0, 0, 10)),  // current
		pendingIncome(2, 200, today.AddDate(0, 0, -5)),  // 0-30
		pendingIncome(3, 300, today.AddDate(0, 0, -40)), // 31-60
		pendingIncome(4, 400, today.AddDate(0, 0, -70)), // 61-90
		pendingIncome(5, 500, today.AddDate(0, 0, -120)), // 90+
	}

	report, err := reports.BuildAgingReport(txns, today)
	if err != nil {
		t.Fatalf("BuildAgingReport: %v", err)
	}

	totals := report.Totals
	if !totals.Total.Equal(totals.Current.Add(totals.Overdue)) {
		t.Errorf("total %s != current %s + overdue %s", totals.Total, totals.Current, totals.Overdue)
	}
	bucketSum := totals.B0to30.Add(totals.B31to60).Add(totals.B61to90).Add(totals.B90plus)
	if !totals.Total.Equal(bucketSum) {
		t.Errorf("total %s != bucket sum %s", totals.Total, bucketSum)
	}
	if !totals.Total.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("got total %s, want 1500", totals.Total)
	}
}

func TestBuildAgingReportDueDateFallback(t *testing.T) {
	today := day(2026, time.June, 30)
	createdAt := today.AddDate(0, 0, -35)
	txns := []*models.Transaction{
		{
			ID:            7,
			PropertyId:    1,
			Type:          models.TransactionTypeIncome,
			CurrentStatus: models.TransactionStatusPending,
			Amount:        decimal.NewFromInt(250),
			CreatedAt:     createdAt,
		},
	}

	report, err := reports.BuildAgingReport(txns, today)
	if err != nil {
		t.Fatalf("BuildAgingReport: %v", err)
	}
	if report.Entries[0].DaysOverdue != 35 {
		t.Errorf("got DaysOverdue %d, want 35 (aged from created_at)", report.Entries[0].DaysOverdue)
	}
	if report.Entries[0].Bucket != reports.AgingBucket31to60 {
		t.Errorf("got bucket %q, want %q", report.Entries[0].Bucket, reports.AgingBucket31to60)
	}
}

func TestBuildAgingReportMissingDate(t *testing.T) {
	txns := []*models.Transaction{
		{
			ID:            8,
			PropertyId:    1,
			Type:          models.TransactionTypeIncome,
			CurrentStatus: models.TransactionStatusPending,
			Amount:        decimal.NewFromInt(100),
		},
	}

	_, err := reports.BuildAgingReport(txns, day(2026, time.June, 30))
	if err == nil {
		t.Fatal("expected error for transaction without any date")
	}
}

func TestBuildAgingReportIdempotent(t *testing.T) {
	today := day(2026, time.June, 30)
	txns := []*models.Transaction{
		pendingIncome(1, 100, today.AddDate(0, 0, -10)),
		pendingIncome(2, 200, today.AddDate(0, 0, -50)),
	}

	first, err := reports.BuildAgingReport(txns, today)
	if err != nil {
		t.Fatalf("BuildAgingReport: %v", err)
	}
	second, err := reports.BuildAgingReport(txns, today)
	if err != nil {
		t.Fatalf("BuildAgingReport: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Error("same input produced different output")
	}
}
