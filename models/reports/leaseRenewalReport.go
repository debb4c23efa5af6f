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

type RenewalUrgency string

const (
	RenewalUrgencyExpired  RenewalUrgency = "Expired"
	RenewalUrgencyCritical RenewalUrgency = "Critical"
	RenewalUrgencyUpcoming RenewalUrgency = "Upcoming"
)

type LeaseRenewalRow struct {
	LeaseId       int             `json:"lease_id"`
	PropertyId    int             `json:"property_id"`
	UnitId        int             `json:"unit_id"`
	TenantId      int             `json:"tenant_id"`
	EndDate       time.Time       `json:"end_date"`
	DaysRemaining int             `json:"days_remaining"`
	RentAmount    decimal.Decimal `json:"rent_amount"`
	Urgency       RenewalUrgency  `json:"urgency"`
}

type LeaseRenewalResponse struct {
	AsOf        time.Time         `json:"as_of"`
	HorizonDays int               `json:"horizon_days"`
	Rows        []LeaseRenewalRow `json:"rows"`
}

// ClassifyRenewalUrgency maps remaining lease days to an urgency level.
// Deterministic in the days remaining: already past end date is Expired,
// within 30 days Critical, anything further out Upcoming.
func ClassifyRenewalUrgency(daysRemaining int) RenewalUrgency {
	switch {
	case daysRemaining < 0:
		return RenewalUrgencyExpired
	case daysRemaining <= 30:
		return RenewalUrgencyCritical
	default:
		return RenewalUrgencyUpcoming
	}
}

// BuildLeaseRenewalReport lists active leases ending within horizonDays of
// today, most urgent first. Pure over its inputs.
func BuildLeaseRenewalReport(leases []*models.Lease, today time.Time, horizonDays int) *LeaseRenewalResponse {

	response := LeaseRenewalResponse{
		AsOf:        today,
		HorizonDays: horizonDays,
		Rows:        make([]LeaseRenewalRow, 0, len(leases)),
	}

	for _, lease := range leases {
		if lease.CurrentStatus != models.LeaseStatusActive {
			continue
		}
		daysRemaining := int(truncateDay(lease.EndDate).Sub(truncateDay(today)).Hours() / 24)
		if daysRemaining > horizonDays {
			continue
		}
		response.Rows = append(response.Rows, LeaseRenewalRow{
			LeaseId:       lease.ID,
			PropertyId:    lease.PropertyId,
			UnitId:        lease.UnitId,
			TenantId:      lease.TenantId,
			EndDate:       lease.EndDate,
			DaysRemaining: daysRemaining,
			RentAmount:    lease.RentAmount,
			Urgency:       ClassifyRenewalUrgency(daysRemaining),
		})
	}

	sort.SliceStable(response.Rows, func(i, j int) bool {
		if response.Rows[i].DaysRemaining != response.Rows[j].DaysRemaining {
			return response.Rows[i].DaysRemaining < response.Rows[j].DaysRemaining
		}
		return response.Rows[i].LeaseId < response.Rows[j].LeaseId
	})

	return &response
}

func GetLeaseRenewalReport(ctx context.Context, currentDate models.MyDateString, horizonDays int, propertyId *int) (*LeaseRenewalResponse, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if horizonDays <= 0 {
		horizonDays = 90
	}

	cacheKey := fmt.Sprintf("Report:LeaseRenewal:%s:%d:%d:%s",
		businessId, utils.DereferencePtr(propertyId, 0), horizonDays,
		time.Time(currentDate).Format("2006-01-02"))
	var cached LeaseRenewalResponse
	if hit, _ := cacheGet(cacheKey, &cached); hit {
		return &cached, nil
	}
	started := time.Now()

	business, err := models.GetBusiness(ctx)
	if err != nil {
		return nil, err
	}
	if err := currentDate.UTCTime(business.Timezone); err != nil {
		return nil, err
	}

	status := models.LeaseStatusActive
	leases, err := models.GetLeases(ctx, propertyId, &status)
	if err != nil {
		return nil, err
	}

	result := BuildLeaseRenewalReport(leases, time.Time(currentDate), horizonDays)

	_ = cacheSet(cacheKey, result, reportCacheTTL())
	logSlowReport(ctx, "lease_renewal", started, map[string]any{"leases": len(leases)})
	return result, nil
}
