package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/models"
	"bitbucket.org/mmdatafocus/property_backend/utils"
	"github.com/shopspring/decimal"
)

type IncomeStatementResponse struct {
	RentalIncome       decimal.Decimal `json:"rental_income"`
	OtherIncome        decimal.Decimal `json:"other_income"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	Maintenance        decimal.Decimal `json:"maintenance"`
	Utilities          decimal.Decimal `json:"utilities"`
	Insurance          decimal.Decimal `json:"insurance"`
	PropertyManagement decimal.Decimal `json:"property_management"`
	OtherExpenses      decimal.Decimal `json:"other_expenses"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	NetIncome          decimal.Decimal `json:"net_income"`
}

type expenseRule struct {
	bucket   string
	keywords []string
}

// Ordered rules, first match wins. A category matching several keyword sets
// lands only in the earliest bucket, never in more than one.
var expenseRules = []expenseRule{
	{"maintenance", []string{"maintenance", "repair"}},
	{"utilities", []string{"utility", "utilities", "electric", "water", "gas"}},
	{"insurance", []string{"insurance"}},
	{"property_management", []string{"management", "admin"}},
}

func classifyExpenseCategory(categoryName string) string {
	name := strings.ToLower(categoryName)
	for _, rule := range expenseRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(name, keyword) {
				return rule.bucket
			}
		}
	}
	return "other_expenses"
}

func isRentalIncome(categoryName, subtype string) bool {
	return strings.Contains(strings.ToLower(categoryName), "rent") || subtype == "payment"
}

// BuildIncomeStatement classifies a filtered transaction set into the income
// statement buckets. categoryNames maps category id to name; transactions
// without a category fall into the catch-all buckets. Pure over its inputs.
func BuildIncomeStatement(transactions []*models.Transaction, categoryNames map[int]string) *IncomeStatementResponse {

	var result IncomeStatementResponse

	for _, txn := range transactions {
		if txn.CurrentStatus == models.TransactionStatusCancelled {
			continue
		}

		categoryName := ""
		if txn.CategoryId != nil {
			categoryName = categoryNames[*txn.CategoryId]
		}

		switch txn.Type {
		case models.TransactionTypeIncome:
			if isRentalIncome(categoryName, txn.Subtype) {
				result.RentalIncome = result.RentalIncome.Add(txn.Amount)
			} else {
				result.OtherIncome = result.OtherIncome.Add(txn.Amount)
			}
		case models.TransactionTypeExpense:
			switch classifyExpenseCategory(categoryName) {
			case "maintenance":
				result.Maintenance = result.Maintenance.Add(txn.Amount)
			case "utilities":
				result.Utilities = result.Utilities.Add(txn.Amount)
			case "insurance":
				result.Insurance = result.Insurance.Add(txn.Amount)
			case "property_management":
				result.PropertyManagement = result.PropertyManagement.Add(txn.Amount)
			default:
				result.OtherExpenses = result.OtherExpenses.Add(txn.Amount)
			}
		}
	}

	result.TotalIncome = result.RentalIncome.Add(result.OtherIncome)
	result.TotalExpenses = result.Maintenance.
		Add(result.Utilities).
		Add(result.Insurance).
		Add(result.PropertyManagement).
		Add(result.OtherExpenses)
	result.NetIncome = result.TotalIncome.Sub(result.TotalExpenses)

	return &result
}

func categoryNameMap(ctx context.Context) (map[int]string, error) {
	categories, err := models.GetTransactionCategories(ctx, nil)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

func GetIncomeStatementReport(ctx context.Context, fromDate, toDate models.MyDateString, propertyId *int) (*IncomeStatementResponse, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	cacheKey := fmt.Sprintf("Report:IncomeStatement:%s:%d:%s:%s",
		businessId, utils.DereferencePtr(propertyId, 0),
		time.Time(fromDate).Format("2006-01-02"), time.Time(toDate).Format("2006-01-02"))
	var cached IncomeStatementResponse
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

	transactions, err := models.ListTransactions(ctx, &models.TransactionFilter{
		PropertyId: utils.DereferencePtr(propertyId, 0),
		FromDate:   &fromDate,
		ToDate:     &toDate,
	})
	if err != nil {
		return nil, err
	}

	names, err := categoryNameMap(ctx)
	if err != nil {
		return nil, err
	}

	result := BuildIncomeStatement(transactions, names)

	_ = cacheSet(cacheKey, result, reportCacheTTL())
	logSlowReport(ctx, "income_statement", started, map[string]any{"transactions": len(transactions)})
	return result, nil
}
