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

// ErrMissingDate means a transaction had neither due date nor created date.
// The ledger always sets created_at, so hitting this indicates corrupt data;
// the report fails loudly instead of silently aging the row from today.
var ErrMissingDate = errors.New("transaction has no due date or created date")

type AgingEntry struct {
	TransactionId int             `json:"transaction_id"`
	PropertyId    int             `json:"property_id"`
	TenantId      *int            `json:"tenant_id,omitempty"`
	VendorId      *int            `json:"vendor_id,omitempty"`
	Description   string          `json:"description"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	DueDate       time.Time       `json:"due_date"`
	DaysOverdue   int             `json:"days_overdue"`
	Bucket        AgingBucket     `json:"bucket"`
	IsCurrent     bool            `json:"is_current"`
}

type AgingTotals struct {
	Total   decimal.Decimal `json:"total"`
	Current decimal.Decimal `json:"current"`
	Overdue decimal.Decimal `json:"overdue"`
	B0to30  decimal.Decimal `json:"0-30"`
	B31to60 decimal.Decimal `json:"31-60"`
	B61to90 decimal.Decimal `json:"61-90"`
	B90plus decimal.Decimal `json:"90+"`
}

type AgingReportResponse struct {
	AsOf    time.Time    `json:"as_of"`
	Entries []AgingEntry `json:"entries"`
	Totals  AgingTotals  `json:"totals"`
}

func (t *AgingTotals) addToBucket(bucket AgingBucket, amount decimal.Decimal) {
	switch bucket {
	case AgingBucket0to30:
		t.B0to30 = t.B0to30.Add(amount)
	case AgingBucket31to60:
		t.B31to60 = t.B31to60.Add(amount)
	case AgingBucket61to90:
		t.B61to90 = t.B61to90.Add(amount)
	case AgingBucket90plus:
		t.B90plus = t.B90plus.Add(amount)
	}
}

// BuildAgingReport classifies outstanding transactions into aging buckets.
// Pure over its inputs: same transactions and date produce identical output.
// Callers pre-filter to one type and outstanding statuses; the amount due is
// the full transaction amount (no partial-payment tracking).
func BuildAgingReport(transactions []*models.Transaction, today time.Time) (*AgingReportResponse, error) {

	report := AgingReportResponse{
		AsOf:    today,
		Entries: make([]AgingEntry, 0, len(transactions)),
	}

	for _, txn := range transactions {
		dueDate := txn.DueDate
		if dueDate == nil {
			if txn.CreatedAt.IsZero() {
				return nil, fmt.Errorf("transaction %d: %w", txn.ID, ErrMissingDate)
			}
			dueDate = &txn.CreatedAt
		}

		aging := ClassifyAging(*dueDate, today)

		report.Entries = append(report.Entries, AgingEntry{
			TransactionId: txn.ID,
			PropertyId:    txn.PropertyId,
			TenantId:      txn.TenantId,
			VendorId:      txn.VendorId,
			Description:   txn.Description,
			AmountDue:     txn.Amount,
			DueDate:       *dueDate,
			DaysOverdue:   aging.DaysOverdue,
			Bucket:        aging.Bucket,
			IsCurrent:     aging.IsCurrent,
		})

		report.Totals.Total = report.Totals.Total.Add(txn.Amount)
		report.Totals.addToBucket(aging.Bucket, txn.Amount)
		if aging.IsCurrent {
			report.Totals.Current = report.Totals.Current.Add(txn.Amount)
		} else {
			report.Totals.Overdue = report.Totals.Overdue.Add(txn.Amount)
		}
	}

	return &report, nil
}

func outstandingStatuses() []models.TransactionStatus {
	return []models.TransactionStatus{
		models.TransactionStatusPending,
		models.TransactionStatusOverdue,
	}
}

// GetReceivableAgingReport ages money owed to the owner: pending and overdue
// income transactions. Entries come back in due-date order, soonest first.
func GetReceivableAgingReport(ctx context.Context, currentDate models.MyDateString, propertyId *int) (*AgingReportResponse, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	cacheKey := fmt.Sprintf("Report:ReceivableAging:%s:%d:%s",
		businessId, utils.DereferencePtr(propertyId, 0), time.Time(currentDate).Format("2006-01-02"))
	var cached AgingReportResponse
	if hit, _ := cacheGet(cacheKey, &cached); hit {
		return &cached, nil
	}
	started := time.Now()

	business, err := models.GetBusiness(ctx)
	if err != nil {
		return nil, err
	}
	if err := currentDate.EndOfDayUTCTime(business.Timezone); err != nil {
		return nil, err
	}
	today := time.Time(currentDate)

	incomeType := models.TransactionTypeIncome
	transactions, err := models.ListTransactions(ctx, &models.TransactionFilter{
		PropertyId: utils.DereferencePtr(propertyId, 0),
		Type:       &incomeType,
		Statuses:   outstandingStatuses(),
	})
	if err != nil {
		return nil, err
	}

	report, err := BuildAgingReport(transactions, today)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].DueDate.Before(report.Entries[j].DueDate)
	})

	_ = cacheSet(cacheKey, report, reportCacheTTL())
	logSlowReport(ctx, "receivable_aging", started, map[string]any{"entries": len(report.Entries)})
	return report, nil
}

// GetPayableAgingReport ages money the owner owes: pending and overdue
// expense transactions. Entries come back most overdue first.
func GetPayableAgingReport(ctx context.Context, currentDate models.MyDateString, propertyId *int) (*AgingReportResponse, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	cacheKey := fmt.Sprintf("Report:PayableAging:%s:%d:%s",
		businessId, utils.DereferencePtr(propertyId, 0), time.Time(currentDate).Format("2006-01-02"))
	var cached AgingReportResponse
	if hit, _ := cacheGet(cacheKey, &cached); hit {
		return &cached, nil
	}
	started := time.Now()

	business, err := models.GetBusiness(ctx)
	if err != nil {
		return nil, err
	}
	if err := currentDate.EndOfDayUTCTime(business.Timezone); err != nil {
		return nil, err
	}
	today := time.Time(currentDate)

	expenseType := models.TransactionTypeExpense
	transactions, err := models.ListTransactions(ctx, &models.TransactionFilter{
		PropertyId: utils.DereferencePtr(propertyId, 0),
		Type:       &expenseType,
		Statuses:   outstandingStatuses(),
	})
	if err != nil {
		return nil, err
	}

	report, err := BuildAgingReport(transactions, today)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].DaysOverdue > report.Entries[j].DaysOverdue
	})

	_ = cacheSet(cacheKey, report, reportCacheTTL())
	logSlowReport(ctx, "payable_aging", started, map[string]any{"entries": len(report.Entries)})
	return report, nil
}
