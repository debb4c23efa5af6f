package models

import (
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func dryRunSession(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("open dry-run session: %v", err)
	}
	return db
}

// A ledger row entered without a due date ages from its entry date. The date
// bounds must coalesce to created_at, otherwise NULL due_date rows never
// match either comparison and vanish from every date-bounded report.
func TestTransactionDateFilterKeepsRowsWithoutDueDate(t *testing.T) {
	db := dryRunSession(t)

	from := MyDateString(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	to := MyDateString(time.Date(2026, time.June, 30, 23, 59, 59, 0, time.UTC))
	filter := &TransactionFilter{FromDate: &from, ToDate: &to}

	var rows []*Transaction
	stmt := applyTransactionFilter(db.Model(&Transaction{}), filter).Find(&rows).Statement

	sql := stmt.SQL.String()
	if got := strings.Count(sql, "COALESCE(due_date, created_at)"); got != 2 {
		t.Fatalf("expected both date bounds to fall back to created_at, found %d in %q", got, sql)
	}
	if strings.Contains(sql, "due_date >=") || strings.Contains(sql, "due_date <=") {
		t.Fatalf("raw due_date comparison drops rows with no due date: %q", sql)
	}
	if len(stmt.Vars) != 2 {
		t.Fatalf("expected two bound date values, got %d: %v", len(stmt.Vars), stmt.Vars)
	}
}

func TestTransactionFilterSingleBound(t *testing.T) {
	db := dryRunSession(t)

	to := MyDateString(time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC))
	filter := &TransactionFilter{ToDate: &to}

	var rows []*Transaction
	stmt := applyTransactionFilter(db.Model(&Transaction{}), filter).Find(&rows).Statement

	sql := stmt.SQL.String()
	if got := strings.Count(sql, "COALESCE(due_date, created_at)"); got != 1 {
		t.Fatalf("expected one coalesced bound, found %d in %q", got, sql)
	}
	if len(stmt.Vars) != 1 {
		t.Fatalf("expected one bound date value, got %d: %v", len(stmt.Vars), stmt.Vars)
	}
}

func TestTransactionFilterCombinesConditions(t *testing.T) {
	db := dryRunSession(t)

	incomeType := TransactionTypeIncome
	filter := &TransactionFilter{
		PropertyId: 7,
		Type:       &incomeType,
		Statuses:   []TransactionStatus{TransactionStatusPending, TransactionStatusOverdue},
	}

	var rows []*Transaction
	stmt := applyTransactionFilter(db.Model(&Transaction{}), filter).Find(&rows).Statement

	sql := stmt.SQL.String()
	for _, want := range []string{"property_id", "type", "current_status IN"} {
		if !strings.Contains(sql, want) {
			t.Fatalf("expected %q in generated filter, got %q", want, sql)
		}
	}
}
