package reports_test

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/models"
	"bitbucket.org/mmdatafocus/property_backend/models/reports"
	"github.com/shopspring/decimal"
)

func TestBuildVacancyLossReport(t *testing.T) {
	properties := []*models.Property{
		{ID: 1, Name: "Elm Street"},
		{ID: 2, Name: "Oak Court"},
	}
	units := []*models.Unit{
		{ID: 1, PropertyId: 1, CurrentStatus: models.UnitStatusVacant, MarketRent: decimal.NewFromInt(1000)},
		{ID: 2, PropertyId: 1, CurrentStatus: models.UnitStatusOccupied, MarketRent: decimal.NewFromInt(1200)},
		{ID: 3, PropertyId: 2, CurrentStatus: models.UnitStatusVacant, MarketRent: decimal.NewFromInt(800)},
		{ID: 4, PropertyId: 2, CurrentStatus: models.UnitStatusMaintenance, MarketRent: decimal.NewFromInt(900)},
	}

	// 30-day window: one month of loss
	from := day(2026, time.June, 1)
	to := day(2026, time.June, 30)
	report := reports.BuildVacancyLossReport(properties, units, from, to)

	if len(report.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(report.Rows))
	}

	elm := report.Rows[0]
	if elm.PropertyName != "Elm Street" || elm.TotalUnits != 2 || elm.VacantUnits != 1 {
		t.Errorf("unexpected first row: %+v", elm)
	}
	if !elm.MonthlyMarketRent.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("got monthly rent %s, want 1000", elm.MonthlyMarketRent)
	}
	if !elm.EstimatedLoss.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("got estimated loss %s, want 1000", elm.EstimatedLoss)
	}

	wantTotal := decimal.NewFromInt(1800)
	if !report.TotalEstimatedLoss.Equal(wantTotal) {
		t.Errorf("got total loss %s, want %s", report.TotalEstimatedLoss, wantTotal)
	}
}

func TestBuildVacancyLossReportEmptyWindow(t *testing.T) {
	report := reports.BuildVacancyLossReport(nil, nil, day(2026, time.June, 1), day(2026, time.June, 30))
	if len(report.Rows) != 0 {
		t.Fatalf("got %d rows, want 0", len(report.Rows))
	}
	if !report.TotalEstimatedLoss.IsZero() {
		t.Errorf("got total loss %s, want 0", report.TotalEstimatedLoss)
	}
}
