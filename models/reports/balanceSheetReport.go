package reports

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/models"
	"bitbucket.org/mmdatafocus/property_backend/utils"
	"github.com/shopspring/decimal"
)

// BalanceSheetConfig carries the figures that are not derivable from the
// ledger. Until deposits and loan balances are tracked as real records these
// come from configuration; LoadBalanceSheetConfig documents the defaults.
type BalanceSheetConfig struct {
	SecurityDeposits     decimal.Decimal `json:"security_deposits"`
	TenantDeposits       decimal.Decimal `json:"tenant_deposits"`
	Equipment            decimal.Decimal `json:"equipment"`
	AccruedExpenses      decimal.Decimal `json:"accrued_expenses"`
	OtherLoans           decimal.Decimal `json:"other_loans"`
	LoanToValueRatio     decimal.Decimal `json:"loan_to_value_ratio"`
	DefaultPropertyValue decimal.Decimal `json:"default_property_value"`
}

func decimalFromEnv(key string, fallback decimal.Decimal) decimal.Decimal {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return fallback
	}
	return d
}

// LoadBalanceSheetConfig reads the static balance sheet inputs.
//
//	BS_SECURITY_DEPOSITS      (default 0)
//	BS_TENANT_DEPOSITS        (default 0)
//	BS_EQUIPMENT              (default 0)
//	BS_ACCRUED_EXPENSES       (default 0)
//	BS_OTHER_LOANS            (default 0)
//	BS_LOAN_TO_VALUE_RATIO    (default 0.7)
//	BS_DEFAULT_PROPERTY_VALUE (default 0, used when purchase price is unset)
func LoadBalanceSheetConfig() BalanceSheetConfig {
	return BalanceSheetConfig{
		SecurityDeposits:     decimalFromEnv("BS_SECURITY_DEPOSITS", decimal.Zero),
		TenantDeposits:       decimalFromEnv("BS_TENANT_DEPOSITS", decimal.Zero),
		Equipment:            decimalFromEnv("BS_EQUIPMENT", decimal.Zero),
		AccruedExpenses:      decimalFromEnv("BS_ACCRUED_EXPENSES", decimal.Zero),
		OtherLoans:           decimalFromEnv("BS_OTHER_LOANS", decimal.Zero),
		LoanToValueRatio:     decimalFromEnv("BS_LOAN_TO_VALUE_RATIO", decimal.NewFromFloat(0.7)),
		DefaultPropertyValue: decimalFromEnv("BS_DEFAULT_PROPERTY_VALUE", decimal.Zero),
	}
}

type CurrentAssets struct {
	Cash               decimal.Decimal `json:"cash"`
	AccountsReceivable decimal.Decimal `json:"accounts_receivable"`
	SecurityDeposits   decimal.Decimal `json:"security_deposits"`
	Total              decimal.Decimal `json:"total"`
}

type FixedAssets struct {
	PropertyValue decimal.Decimal `json:"property_value"`
	Equipment     decimal.Decimal `json:"equipment"`
	Total         decimal.Decimal `json:"total"`
}

type Assets struct {
	CurrentAssets CurrentAssets   `json:"current_assets"`
	FixedAssets   FixedAssets     `json:"fixed_assets"`
	TotalAssets   decimal.Decimal `json:"total_assets"`
}

type CurrentLiabilities struct {
	AccountsPayable decimal.Decimal `json:"accounts_payable"`
	TenantDeposits  decimal.Decimal `json:"tenant_deposits"`
	AccruedExpenses decimal.Decimal `json:"accrued_expenses"`
	Total           decimal.Decimal `json:"total"`
}

type LongTermLiabilities struct {
	Mortgages decimal.Decimal `json:"mortgages"`
	Loans     decimal.Decimal `json:"loans"`
	Total     decimal.Decimal `json:"total"`
}

type Liabilities struct {
	CurrentLiabilities  CurrentLiabilities  `json:"current_liabilities"`
	LongTermLiabilities LongTermLiabilities `json:"long_term_liabilities"`
	TotalLiabilities    decimal.Decimal     `json:"total_liabilities"`
}

type Equity struct {
	OwnerEquity      decimal.Decimal `json:"owner_equity"`
	RetainedEarnings decimal.Decimal `json:"retained_earnings"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
}

type BalanceSheetResponse struct {
	AsOf        time.Time   `json:"as_of"`
	Assets      Assets      `json:"assets"`
	Liabilities Liabilities `json:"liabilities"`
	Equity      Equity      `json:"equity"`
}

// BuildBalanceSheet derives a point-in-time balance sheet from the ledger and
// the static config inputs. Owner equity is a balancing plug, so
// total_assets == total_liabilities + total_equity holds by construction.
func BuildBalanceSheet(transactions []*models.Transaction, properties []*models.Property, cfg BalanceSheetConfig, asOf time.Time) *BalanceSheetResponse {

	var incomePaid, expensePaid, receivable, payable decimal.Decimal
	for _, txn := range transactions {
		switch {
		case txn.Type == models.TransactionTypeIncome && txn.CurrentStatus == models.TransactionStatusPaid:
			incomePaid = incomePaid.Add(txn.Amount)
		case txn.Type == models.TransactionTypeExpense && txn.CurrentStatus == models.TransactionStatusPaid:
			expensePaid = expensePaid.Add(txn.Amount)
		case txn.Type == models.TransactionTypeIncome && txn.CurrentStatus == models.TransactionStatusPending:
			receivable = receivable.Add(txn.Amount)
		case txn.Type == models.TransactionTypeExpense && txn.CurrentStatus == models.TransactionStatusPending:
			payable = payable.Add(txn.Amount)
		}
	}
	cash := incomePaid.Sub(expensePaid)

	var propertyValue decimal.Decimal
	for _, p := range properties {
		if p.PurchasePrice != nil {
			propertyValue = propertyValue.Add(*p.PurchasePrice)
		} else {
			propertyValue = propertyValue.Add(cfg.DefaultPropertyValue)
		}
	}
	mortgages := propertyValue.Mul(cfg.LoanToValueRatio)

	assets := Assets{
		CurrentAssets: CurrentAssets{
			Cash:               cash,
			AccountsReceivable: receivable,
			SecurityDeposits:   cfg.SecurityDeposits,
		},
		FixedAssets: FixedAssets{
			PropertyValue: propertyValue,
			Equipment:     cfg.Equipment,
		},
	}
	assets.CurrentAssets.Total = cash.Add(receivable).Add(cfg.SecurityDeposits)
	assets.FixedAssets.Total = propertyValue.Add(cfg.Equipment)
	assets.TotalAssets = assets.CurrentAssets.Total.Add(assets.FixedAssets.Total)

	liabilities := Liabilities{
		CurrentLiabilities: CurrentLiabilities{
			AccountsPayable: payable,
			TenantDeposits:  cfg.TenantDeposits,
			AccruedExpenses: cfg.AccruedExpenses,
		},
		LongTermLiabilities: LongTermLiabilities{
			Mortgages: mortgages,
			Loans:     cfg.OtherLoans,
		},
	}
	liabilities.CurrentLiabilities.Total = payable.Add(cfg.TenantDeposits).Add(cfg.AccruedExpenses)
	liabilities.LongTermLiabilities.Total = mortgages.Add(cfg.OtherLoans)
	liabilities.TotalLiabilities = liabilities.CurrentLiabilities.Total.Add(liabilities.LongTermLiabilities.Total)

	retainedEarnings := incomePaid.Sub(expensePaid)
	ownerEquity := assets.TotalAssets.Sub(liabilities.TotalLiabilities).Sub(retainedEarnings)

	return &BalanceSheetResponse{
		AsOf:        asOf,
		Assets:      assets,
		Liabilities: liabilities,
		Equity: Equity{
			OwnerEquity:      ownerEquity,
			RetainedEarnings: retainedEarnings,
			TotalEquity:      ownerEquity.Add(retainedEarnings),
		},
	}
}

func GetBalanceSheetReport(ctx context.Context, currentDate models.MyDateString, propertyId *int) (*BalanceSheetResponse, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	cacheKey := fmt.Sprintf("Report:BalanceSheet:%s:%d:%s",
		businessId, utils.DereferencePtr(propertyId, 0), time.Time(currentDate).Format("2006-01-02"))
	var cached BalanceSheetResponse
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
	asOf := time.Time(currentDate)

	// only ledger activity up to the as-of date belongs on the sheet
	transactions, err := models.ListTransactions(ctx, &models.TransactionFilter{
		PropertyId: utils.DereferencePtr(propertyId, 0),
		ToDate:     &currentDate,
	})
	if err != nil {
		return nil, err
	}

	properties, err := models.GetProperties(ctx)
	if err != nil {
		return nil, err
	}
	if propertyId != nil && *propertyId > 0 {
		filtered := make([]*models.Property, 0, 1)
		for _, p := range properties {
			if p.ID == *propertyId {
				filtered = append(filtered, p)
			}
		}
		properties = filtered
	}

	result := BuildBalanceSheet(transactions, properties, LoadBalanceSheetConfig(), asOf)

	_ = cacheSet(cacheKey, result, reportCacheTTL())
	logSlowReport(ctx, "balance_sheet", started, map[string]any{"transactions": len(transactions)})
	return result, nil
}
