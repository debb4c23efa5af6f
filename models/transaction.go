package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/config"
	"bitbucket.org/mmdatafocus/property_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Transaction struct {
	ID            int               `gorm:"primary_key" json:"id"`
	BusinessId    string            `gorm:"index;not null" json:"business_id"`
	PropertyId    int               `gorm:"index;not null" json:"property_id" binding:"required"`
	UnitId        *int              `gorm:"index" json:"unit_id"`
	TenantId      *int              `gorm:"index" json:"tenant_id"`
	VendorId      *int              `gorm:"index" json:"vendor_id"`
	CategoryId    *int              `gorm:"index" json:"category_id"`
	Type          TransactionType   `gorm:"type:enum('Income', 'Expense');not null" json:"type" binding:"required"`
	Subtype       string            `gorm:"size:50" json:"subtype"`
	CurrentStatus TransactionStatus `gorm:"type:enum('Pending', 'Paid', 'Overdue', 'Cancelled');default:Pending" json:"current_status"`
	Amount        decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"amount"`
	DueDate       *time.Time        `gorm:"index" json:"due_date"`
	PaidDate      *time.Time        `json:"paid_date"`
	Description   string            `gorm:"type:text" json:"description"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTransaction struct {
	PropertyId  int               `json:"property_id" binding:"required"`
	UnitId      *int              `json:"unit_id"`
	TenantId    *int              `json:"tenant_id"`
	VendorId    *int              `json:"vendor_id"`
	CategoryId  *int              `json:"category_id"`
	Type        TransactionType   `json:"type" binding:"required"`
	Subtype     string            `json:"subtype"`
	Status      TransactionStatus `json:"status"`
	Amount      decimal.Decimal   `json:"amount"`
	DueDate     *MyDateString     `json:"due_date"`
	PaidDate    *MyDateString     `json:"paid_date"`
	Description string            `json:"description"`
}

// TransactionFilter narrows the ledger query. Zero values mean "no filter".
type TransactionFilter struct {
	PropertyId int                 `json:"property_id" form:"property_id"`
	UnitId     int                 `json:"unit_id" form:"unit_id"`
	TenantId   int                 `json:"tenant_id" form:"tenant_id"`
	VendorId   int                 `json:"vendor_id" form:"vendor_id"`
	CategoryId int                 `json:"category_id" form:"category_id"`
	Type       *TransactionType    `json:"type" form:"type"`
	Statuses   []TransactionStatus `json:"statuses" form:"statuses"`
	FromDate   *MyDateString       `json:"from_date" form:"from_date"`
	ToDate     *MyDateString       `json:"to_date" form:"to_date"`
}

func (obj Transaction) GetId() int {
	return obj.ID
}

func (obj Transaction) GetBusinessId() string {
	return obj.BusinessId
}

func (obj Transaction) GetCursor() string {
	return obj.CreatedAt.Format("2006-01-02 15:04:05")
}

// validate input for both create & update. (id = 0 for create)
func (input *NewTransaction) validate(ctx context.Context, businessId string, id int) error {
	if input.Amount.IsNegative() {
		return errors.New("amount must not be negative")
	}
	// exists property
	if err := utils.ValidateResourceId[Property](ctx, businessId, input.PropertyId); err != nil {
		return errors.New("property not found")
	}
	if input.UnitId != nil {
		count, err := utils.ResourceCountWhere[Unit](ctx, businessId, "id = ? AND property_id = ?", *input.UnitId, input.PropertyId)
		if err != nil {
			return err
		}
		if count == 0 {
			return errors.New("unit not found")
		}
	}
	if input.TenantId != nil {
		if err := utils.ValidateResourceId[Tenant](ctx, businessId, *input.TenantId); err != nil {
			return errors.New("tenant not found")
		}
	}
	if input.VendorId != nil {
		if err := utils.ValidateResourceId[Vendor](ctx, businessId, *input.VendorId); err != nil {
			return errors.New("vendor not found")
		}
	}
	if input.CategoryId != nil {
		// category type must match the transaction type
		count, err := utils.ResourceCountWhere[TransactionCategory](ctx, businessId, "id = ? AND type = ?", *input.CategoryId, input.Type)
		if err != nil {
			return err
		}
		if count == 0 {
			return errors.New("category not found")
		}
	}
	if input.Status == TransactionStatusPaid && input.PaidDate == nil {
		return errors.New("paid date is required for paid transactions")
	}
	return nil
}

func (input *NewTransaction) normalizeDates(timezone string) error {
	if err := input.DueDate.EndOfDayUTCTime(timezone); err != nil {
		return err
	}
	return input.PaidDate.UTCTime(timezone)
}

func datePtr(t *MyDateString) *time.Time {
	if t == nil {
		return nil
	}
	tt := time.Time(*t)
	return &tt
}

func CreateTransaction(ctx context.Context, input *NewTransaction) (*Transaction, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId, 0); err != nil {
		return nil, err
	}

	business, err := GetBusinessById(ctx, businessId)
	if err != nil {
		return nil, err
	}
	if err := input.normalizeDates(business.Timezone); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = TransactionStatusPending
	}

	transaction := Transaction{
		BusinessId:    businessId,
		PropertyId:    input.PropertyId,
		UnitId:        input.UnitId,
		TenantId:      input.TenantId,
		VendorId:      input.VendorId,
		CategoryId:    input.CategoryId,
		Type:          input.Type,
		Subtype:       input.Subtype,
		CurrentStatus: status,
		Amount:        input.Amount,
		DueDate:       datePtr(input.DueDate),
		PaidDate:      datePtr(input.PaidDate),
		Description:   input.Description,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&transaction).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &transaction, nil
}

func UpdateTransaction(ctx context.Context, id int, input *NewTransaction) (*Transaction, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	before, err := utils.FetchModel[Transaction](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if before.CurrentStatus == TransactionStatusCancelled {
		return nil, errors.New("transaction is cancelled")
	}
	// paid transactions are part of the financial record; under strict mode
	// they must be cancelled and re-entered instead of edited
	if config.StrictTransactionImmutability() && before.CurrentStatus == TransactionStatusPaid {
		return nil, errors.New("paid transaction cannot be edited")
	}
	if err := input.validate(ctx, businessId, id); err != nil {
		return nil, err
	}

	business, err := GetBusinessById(ctx, businessId)
	if err != nil {
		return nil, err
	}
	if err := input.normalizeDates(business.Timezone); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = before.CurrentStatus
	}

	update := Transaction{ID: id, BusinessId: businessId}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(&update).Updates(map[string]interface{}{
		"PropertyId":    input.PropertyId,
		"UnitId":        input.UnitId,
		"TenantId":      input.TenantId,
		"VendorId":      input.VendorId,
		"CategoryId":    input.CategoryId,
		"Type":          input.Type,
		"Subtype":       input.Subtype,
		"CurrentStatus": status,
		"Amount":        input.Amount,
		"DueDate":       datePtr(input.DueDate),
		"PaidDate":      datePtr(input.PaidDate),
		"Description":   input.Description,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[Transaction](ctx, businessId, id)
}

func DeleteTransaction(ctx context.Context, id int) (*Transaction, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	result, err := utils.FetchModel[Transaction](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if config.StrictTransactionImmutability() && result.CurrentStatus == TransactionStatusPaid {
		return nil, errors.New("paid transaction cannot be deleted")
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Delete(&result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return result, nil
}

// MarkTransactionPaid settles a pending or overdue transaction.
func MarkTransactionPaid(ctx context.Context, id int, paidDate *MyDateString) (*Transaction, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	result, err := utils.FetchModel[Transaction](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if result.CurrentStatus != TransactionStatusPending && result.CurrentStatus != TransactionStatusOverdue {
		return nil, errors.New("transaction is not payable")
	}

	business, err := GetBusinessById(ctx, businessId)
	if err != nil {
		return nil, err
	}
	paidDate = paidDate.SetDefaultNowIfNil()
	if err := paidDate.UTCTime(business.Timezone); err != nil {
		return nil, err
	}
	paidAt := time.Time(*paidDate)

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(result).Updates(map[string]interface{}{
		"CurrentStatus": TransactionStatusPaid,
		"PaidDate":      paidAt,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	result.CurrentStatus = TransactionStatusPaid
	result.PaidDate = &paidAt
	return result, nil
}

// CancelTransaction voids a transaction. Cancelled rows stay in the ledger but
// are excluded from every report.
func CancelTransaction(ctx context.Context, id int) (*Transaction, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	result, err := utils.FetchModel[Transaction](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if result.CurrentStatus == TransactionStatusCancelled {
		return nil, errors.New("transaction is cancelled")
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Model(result).
		UpdateColumn("CurrentStatus", TransactionStatusCancelled).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	result.CurrentStatus = TransactionStatusCancelled
	return result, nil
}

// MarkOverdueTransactions flips pending transactions past their due date to
// overdue. Returns the number of rows changed.
func MarkOverdueTransactions(ctx context.Context, asOf time.Time) (int64, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return 0, errors.New("business id is required")
	}

	db := config.GetDB()
	result := db.WithContext(ctx).Model(&Transaction{}).
		Where("business_id = ? AND current_status = ? AND due_date IS NOT NULL AND due_date < ?",
			businessId, TransactionStatusPending, asOf).
		UpdateColumn("CurrentStatus", TransactionStatusOverdue)
	return result.RowsAffected, result.Error
}

func GetTransaction(ctx context.Context, id int) (*Transaction, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return utils.FetchModel[Transaction](ctx, businessId, id)
}

// ListTransactions is the ledger gateway every report reads through. All
// filters are applied in SQL so report builders never scan the full ledger.
func ListTransactions(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("business_id = ?", businessId)
	if filter != nil {
		dbCtx = applyTransactionFilter(dbCtx, filter)
	}

	var results []*Transaction
	if err := dbCtx.Order("COALESCE(due_date, created_at), id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func applyTransactionFilter(dbCtx *gorm.DB, filter *TransactionFilter) *gorm.DB {
	if filter.PropertyId > 0 {
		dbCtx = dbCtx.Where("property_id = ?", filter.PropertyId)
	}
	if filter.UnitId > 0 {
		dbCtx = dbCtx.Where("unit_id = ?", filter.UnitId)
	}
	if filter.TenantId > 0 {
		dbCtx = dbCtx.Where("tenant_id = ?", filter.TenantId)
	}
	if filter.VendorId > 0 {
		dbCtx = dbCtx.Where("vendor_id = ?", filter.VendorId)
	}
	if filter.CategoryId > 0 {
		dbCtx = dbCtx.Where("category_id = ?", filter.CategoryId)
	}
	if filter.Type != nil {
		dbCtx = dbCtx.Where("type = ?", *filter.Type)
	}
	if len(filter.Statuses) > 0 {
		dbCtx = dbCtx.Where("current_status IN ?", filter.Statuses)
	}
	// the effective date of a transaction without a due date is its entry
	// date; a NULL due_date must not drop the row from date-bounded reads
	if filter.FromDate != nil {
		dbCtx = dbCtx.Where("COALESCE(due_date, created_at) >= ?", time.Time(*filter.FromDate))
	}
	if filter.ToDate != nil {
		dbCtx = dbCtx.Where("COALESCE(due_date, created_at) <= ?", time.Time(*filter.ToDate))
	}
	return dbCtx
}

// PaginateTransaction pages the ledger newest first with a composite cursor.
func PaginateTransaction(ctx context.Context, filter *TransactionFilter, limit int, after *string) ([]Edge[Transaction], *PageInfo, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, nil, errors.New("business id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&Transaction{}).Where("business_id = ?", businessId)
	if filter != nil {
		dbCtx = applyTransactionFilter(dbCtx, filter)
	}

	return FetchPageCompositeCursor[Transaction](dbCtx, limit, after, "created_at", "<")
}
