package reports_test

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/models"
	"bitbucket.org/mmdatafocus/property_backend/models/reports"
	"github.com/shopspring/decimal"
)

func activeLease(id int, endDate time.Time) *models.Lease {
	return &models.Lease{
		ID:            id,
		PropertyId:    1,
		UnitId:        id,
		TenantId:      id,
		StartDate:     endDate.AddDate(-1, 0, 0),
		EndDate:       endDate,
		RentAmount:    decimal.NewFromInt(1200),
		CurrentStatus: models.LeaseStatusActive,
	}
}

func TestClassifyRenewalUrgency(t *testing.T) {
	cases := []struct {
		daysRemaining int
		want          reports.RenewalUrgency
	}{
		{-10, reports.RenewalUrgencyExpired},
		{-1, reports.RenewalUrgencyExpired},
		{0, reports.RenewalUrgencyCritical},
		{30, reports.RenewalUrgencyCritical},
		{31, reports.RenewalUrgencyUpcoming},
		{90, reports.RenewalUrgencyUpcoming},
	}
	for _, tc := range cases {
		if got := reports.ClassifyRenewalUrgency(tc.daysRemaining); got != tc.want {
			t.Errorf("days=%d: got %q, want %q", tc.daysRemaining, got, tc.want)
		}
	}
}

func TestBuildLeaseRenewalReport(t *testing.T) {
	today := day(2026, time.June, 30)
	leases := []*models.Lease{
		activeLease(1, today.AddDate(0, 0, -10)), // expired
		activeLease(2, today.AddDate(0, 0, 15)),  // critical
		activeLease(3, today.AddDate(0, 0, 75)),  // upcoming
		activeLease(4, today.AddDate(0, 0, 200)), // beyond horizon
	}
	terminated := activeLease(5, today.AddDate(0, 0, 5))
	terminated.CurrentStatus = models.LeaseStatusTerminated
	leases = append(leases, terminated)

	report := reports.BuildLeaseRenewalReport(leases, today, 90)

	if len(report.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(report.Rows))
	}
	// most urgent first
	if report.Rows[0].LeaseId != 1 || report.Rows[0].Urgency != reports.RenewalUrgencyExpired {
		t.Errorf("row 0: got lease %d urgency %q", report.Rows[0].LeaseId, report.Rows[0].Urgency)
	}
	if report.Rows[1].LeaseId != 2 || report.Rows[1].Urgency != reports.RenewalUrgencyCritical {
		t.Errorf("row 1: got lease %d urgency %q", report.Rows[1].LeaseId, report.Rows[1].Urgency)
	}
	if report.Rows[2].LeaseId != 3 || report.Rows[2].Urgency != reports.RenewalUrgencyUpcoming {
		t.Errorf("row 2: got lease %d urgency %q", report.Rows[2].LeaseId, report.Rows[2].Urgency)
	}
	if report.Rows[1].DaysRemaining != 15 {
		t.Errorf("got days remaining %d, want 15", report.Rows[1].DaysRemaining)
	}
}

func TestBuildLeaseRenewalReportDeterministic(t *testing.T) {
	today := day(2026, time.June, 30)
	leases := []*models.Lease{
		activeLease(1, today.AddDate(0, 0, 20)),
		activeLease(2, today.AddDate(0, 0, 20)),
	}

	first := reports.BuildLeaseRenewalReport(leases, today, 90)
	second := reports.BuildLeaseRenewalReport(leases, today, 90)

	for i := range first.Rows {
		if first.Rows[i].LeaseId != second.Rows[i].LeaseId ||
			first.Rows[i].Urgency != second.Rows[i].Urgency {
			t.Fatal("same input produced different row order")
		}
	}
}
