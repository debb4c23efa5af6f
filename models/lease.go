package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/config"
	"bitbucket.org/mmdatafocus/property_backend/utils"
	"github.com/shopspring/decimal"
)

type Lease struct {
	ID            int             `gorm:"primary_key" json:"id"`
	BusinessId    string          `gorm:"index;not null" json:"business_id"`
	PropertyId    int             `gorm:"index;not null" json:"property_id" binding:"required"`
	UnitId        int             `gorm:"index;not null" json:"unit_id" binding:"required"`
	TenantId      int             `gorm:"index;not null" json:"tenant_id" binding:"required"`
	StartDate     time.Time       `gorm:"not null" json:"start_date" binding:"required"`
	EndDate       time.Time       `gorm:"not null" json:"end_date" binding:"required"`
	RentAmount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rent_amount"`
	DepositAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"deposit_amount"`
	CurrentStatus LeaseStatus     `gorm:"type:enum('Active', 'Expired', 'Terminated');default:Active" json:"current_status"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewLease struct {
	PropertyId    int             `json:"property_id" binding:"required"`
	UnitId        int             `json:"unit_id" binding:"required"`
	TenantId      int             `json:"tenant_id" binding:"required"`
	StartDate     time.Time       `json:"start_date" binding:"required"`
	EndDate       time.Time       `json:"end_date" binding:"required"`
	RentAmount    decimal.Decimal `json:"rent_amount"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	Notes         string          `json:"notes"`
}

func (obj Lease) GetId() int {
	return obj.ID
}

func (obj Lease) GetBusinessId() string {
	return obj.BusinessId
}

// validate input for both create & update. (id = 0 for create)
func (input *NewLease) validate(ctx context.Context, businessId string, id int) error {
	// exists property
	if err := utils.ValidateResourceId[Property](ctx, businessId, input.PropertyId); err != nil {
		return errors.New("property not found")
	}
	// unit belongs to the property
	count, err := utils.ResourceCountWhere[Unit](ctx, businessId, "id = ? AND property_id = ?", input.UnitId, input.PropertyId)
	if err != nil {
		return err
	}
	if count == 0 {
		return errors.New("unit not found")
	}
	// exists tenant
	if err := utils.ValidateResourceId[Tenant](ctx, businessId, input.TenantId); err != nil {
		return errors.New("tenant not found")
	}
	if !input.EndDate.After(input.StartDate) {
		return errors.New("end date must be after start date")
	}
	if input.RentAmount.IsNegative() || input.DepositAmount.IsNegative() {
		return errors.New("amounts must not be negative")
	}
	// only one active lease per unit
	count, err = utils.ResourceCountWhere[Lease](ctx, businessId,
		"unit_id = ? AND current_status = ? AND NOT id = ?", input.UnitId, LeaseStatusActive, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("unit already has an active lease")
	}
	return nil
}

func CreateLease(ctx context.Context, input *NewLease) (*Lease, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId, 0); err != nil {
		return nil, err
	}

	lease := Lease{
		BusinessId:    businessId,
		PropertyId:    input.PropertyId,
		UnitId:        input.UnitId,
		TenantId:      input.TenantId,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		RentAmount:    input.RentAmount,
		DepositAmount: input.DepositAmount,
		CurrentStatus: LeaseStatusActive,
		Notes:         input.Notes,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&lease).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	// an active lease occupies the unit
	if err := tx.WithContext(ctx).Model(&Unit{ID: input.UnitId, BusinessId: businessId}).
		UpdateColumn("CurrentStatus", UnitStatusOccupied).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisItem[Unit](input.UnitId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisList[Unit](businessId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &lease, nil
}

func UpdateLease(ctx context.Context, id int, input *NewLease) (*Lease, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	if _, err := utils.FetchModel[Lease](ctx, businessId, id); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, businessId, id); err != nil {
		return nil, err
	}

	update := Lease{ID: id, BusinessId: businessId}

	db := config.GetDB()
	tx := db.Begin()
	err := tx.WithContext(ctx).Model(&update).Updates(map[string]interface{}{
		"PropertyId":    input.PropertyId,
		"UnitId":        input.UnitId,
		"TenantId":      input.TenantId,
		"StartDate":     input.StartDate,
		"EndDate":       input.EndDate,
		"RentAmount":    input.RentAmount,
		"DepositAmount": input.DepositAmount,
		"Notes":         input.Notes,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[Lease](ctx, businessId, id)
}

// TerminateLease ends a lease early and frees its unit.
func TerminateLease(ctx context.Context, id int) (*Lease, error) {
	return closeLease(ctx, id, LeaseStatusTerminated)
}

// ExpireLease marks a lease that ran to its end date and frees its unit.
func ExpireLease(ctx context.Context, id int) (*Lease, error) {
	return closeLease(ctx, id, LeaseStatusExpired)
}

func closeLease(ctx context.Context, id int, status LeaseStatus) (*Lease, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	result, err := utils.FetchModel[Lease](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if result.CurrentStatus != LeaseStatusActive {
		return nil, errors.New("lease is not active")
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Model(result).
		UpdateColumn("CurrentStatus", status).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Model(&Unit{ID: result.UnitId, BusinessId: businessId}).
		UpdateColumn("CurrentStatus", UnitStatusVacant).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisItem[Unit](result.UnitId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisList[Unit](businessId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	result.CurrentStatus = status
	return result, nil
}

// RenewLease closes the current lease and opens a follow-on lease starting the
// day after the old end date.
func RenewLease(ctx context.Context, id int, newEndDate time.Time, newRentAmount *decimal.Decimal) (*Lease, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	current, err := utils.FetchModel[Lease](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if current.CurrentStatus != LeaseStatusActive {
		return nil, errors.New("lease is not active")
	}
	if !newEndDate.After(current.EndDate) {
		return nil, errors.New("new end date must be after current end date")
	}

	rent := current.RentAmount
	if newRentAmount != nil {
		if newRentAmount.IsNegative() {
			return nil, errors.New("amounts must not be negative")
		}
		rent = *newRentAmount
	}

	renewal := Lease{
		BusinessId:    businessId,
		PropertyId:    current.PropertyId,
		UnitId:        current.UnitId,
		TenantId:      current.TenantId,
		StartDate:     current.EndDate.AddDate(0, 0, 1),
		EndDate:       newEndDate,
		RentAmount:    rent,
		DepositAmount: current.DepositAmount,
		CurrentStatus: LeaseStatusActive,
		Notes:         current.Notes,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Model(current).
		UpdateColumn("CurrentStatus", LeaseStatusExpired).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Create(&renewal).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &renewal, nil
}

func GetLease(ctx context.Context, id int) (*Lease, error) {
	return GetResource[Lease](ctx, id)
}

func GetLeases(ctx context.Context, propertyId *int, status *LeaseStatus) ([]*Lease, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("business_id = ?", businessId)
	if propertyId != nil && *propertyId > 0 {
		dbCtx = dbCtx.Where("property_id = ?", *propertyId)
	}
	if status != nil {
		dbCtx = dbCtx.Where("current_status = ?", *status)
	}

	var results []*Lease
	if err := dbCtx.Order("end_date").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
