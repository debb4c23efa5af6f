package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/models"
	"bitbucket.org/mmdatafocus/property_backend/utils"
	"github.com/shopspring/decimal"
)

type VacancyLossRow struct {
	PropertyId        int             `json:"property_id"`
	PropertyName      string          `json:"property_name"`
	TotalUnits        int             `json:"total_units"`
	VacantUnits       int             `json:"vacant_units"`
	MonthlyMarketRent decimal.Decimal `json:"monthly_market_rent"`
	EstimatedLoss     decimal.Decimal `json:"estimated_loss"`
}

type VacancyLossResponse struct {
	FromDate           time.Time        `json:"from_date"`
	ToDate             time.Time        `json:"to_date"`
	Rows               []VacancyLossRow `json:"rows"`
	TotalEstimatedLoss decimal.Decimal  `json:"total_estimated_loss"`
}

var daysPerMonth = decimal.NewFromInt(30)

// BuildVacancyLossReport estimates rent lost to vacancy: for each property,
// the market rent of its vacant units prorated over the report window at 30
// days per month. Pure over its inputs.
func BuildVacancyLossReport(properties []*models.Property, units []*models.Unit, fromDate, toDate time.Time) *VacancyLossResponse {

	days := int(truncateDay(toDate).Sub(truncateDay(fromDate)).Hours()/24) + 1
	if days < 0 {
		days = 0
	}
	months := decimal.NewFromInt(int64(days)).Div(daysPerMonth)

	names := make(map[int]string, len(properties))
	for _, p := range properties {
		names[p.ID] = p.Name
	}

	byProperty := make(map[int]*VacancyLossRow)
	for _, unit := range units {
		row, ok := byProperty[unit.PropertyId]
		if !ok {
			row = &VacancyLossRow{
				PropertyId:   unit.PropertyId,
				PropertyName: names[unit.PropertyId],
			}
			byProperty[unit.PropertyId] = row
		}
		row.TotalUnits++
		if unit.CurrentStatus == models.UnitStatusVacant {
			row.VacantUnits++
			row.MonthlyMarketRent = row.MonthlyMarketRent.Add(unit.MarketRent)
		}
	}

	response := VacancyLossResponse{
		FromDate: fromDate,
		ToDate:   toDate,
		Rows:     make([]VacancyLossRow, 0, len(byProperty)),
	}
	for _, row := range byProperty {
		row.EstimatedLoss = row.MonthlyMarketRent.Mul(months)
		response.TotalEstimatedLoss = response.TotalEstimatedLoss.Add(row.EstimatedLoss)
		response.Rows = append(response.Rows, *row)
	}
	sort.Slice(response.Rows, func(i, j int) bool {
		return response.Rows[i].PropertyId < response.Rows[j].PropertyId
	})

	return &response
}

func GetVacancyLossReport(ctx context.Context, fromDate, toDate models.MyDateString, propertyId *int) (*VacancyLossResponse, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	cacheKey := fmt.Sprintf("Report:VacancyLoss:%s:%d:%s:%s",
		businessId, utils.DereferencePtr(propertyId, 0),
		time.Time(fromDate).Format("2006-01-02"), time.Time(toDate).Format("2006-01-02"))
	var cached VacancyLossResponse
	if hit, _ := cacheGet(cacheKey, &cached); hit {
		return &cached, nil
	}
	started := time.Now()

	business, err := models.GetBusiness(ctx)
	if err != nil {
		return nil, err
	}
	if err := fromDate.StartOfDayUTCTime(business.Timezone); err != nil {
		return nil, err
	}
	if err := toDate.EndOfDayUTCTime(business.Timezone); err != nil {
		return nil, err
	}

	properties, err := models.GetProperties(ctx)
	if err != nil {
		return nil, err
	}
	units, err := models.GetUnits(ctx, propertyId)
	if err != nil {
		return nil, err
	}

	result := BuildVacancyLossReport(properties, units, time.Time(fromDate), time.Time(toDate))

	_ = cacheSet(cacheKey, result, reportCacheTTL())
	logSlowReport(ctx, "vacancy_loss", started, map[string]any{"units": len(units)})
	return result, nil
}
