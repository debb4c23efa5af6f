package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/config"
	"bitbucket.org/mmdatafocus/property_backend/utils"
	"github.com/shopspring/decimal"
)

type Unit struct {
	ID            int             `gorm:"primary_key" json:"id"`
	BusinessId    string          `gorm:"index;not null" json:"business_id"`
	PropertyId    int             `gorm:"index;not null" json:"property_id" binding:"required"`
	Name          string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Bedrooms      int             `json:"bedrooms"`
	Bathrooms     int             `json:"bathrooms"`
	SquareFeet    int             `json:"square_feet"`
	MarketRent    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"market_rent"`
	CurrentStatus UnitStatus      `gorm:"type:enum('Vacant', 'Occupied', 'Maintenance');default:Vacant" json:"current_status"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUnit struct {
	PropertyId int             `json:"property_id" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	Bedrooms   int             `json:"bedrooms"`
	Bathrooms  int             `json:"bathrooms"`
	SquareFeet int             `json:"square_feet"`
	MarketRent decimal.Decimal `json:"market_rent"`
	Notes      string          `json:"notes"`
}

func (obj Unit) GetId() int {
	return obj.ID
}

func (obj Unit) GetBusinessId() string {
	return obj.BusinessId
}

// validate input for both create & update. (id = 0 for create)
func (input *NewUnit) validate(ctx context.Context, businessId string, id int) error {
	// exists property
	if err := utils.ValidateResourceId[Property](ctx, businessId, input.PropertyId); err != nil {
		return errors.New("property not found")
	}
	// unit name unique within property
	count, err := utils.ResourceCountWhere[Unit](ctx, businessId, "property_id = ? AND name = ? AND NOT id = ?",
		input.PropertyId, input.Name, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("duplicate unit name")
	}
	if input.MarketRent.IsNegative() {
		return errors.New("market rent must not be negative")
	}
	return nil
}

func CreateUnit(ctx context.Context, input *NewUnit) (*Unit, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId, 0); err != nil {
		return nil, err
	}

	unit := Unit{
		BusinessId:    businessId,
		PropertyId:    input.PropertyId,
		Name:          input.Name,
		Bedrooms:      input.Bedrooms,
		Bathrooms:     input.Bathrooms,
		SquareFeet:    input.SquareFeet,
		MarketRent:    input.MarketRent,
		CurrentStatus: UnitStatusVacant,
		Notes:         input.Notes,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&unit).Error; err != nil {
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

	return &unit, nil
}

func UpdateUnit(ctx context.Context, id int, input *NewUnit) (*Unit, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	if _, err := utils.FetchModel[Unit](ctx, businessId, id); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, businessId, id); err != nil {
		return nil, err
	}

	update := Unit{ID: id, BusinessId: businessId}

	db := config.GetDB()
	tx := db.Begin()
	err := tx.WithContext(ctx).Model(&update).Updates(map[string]interface{}{
		"PropertyId": input.PropertyId,
		"Name":       input.Name,
		"Bedrooms":   input.Bedrooms,
		"Bathrooms":  input.Bathrooms,
		"SquareFeet": input.SquareFeet,
		"MarketRent": input.MarketRent,
		"Notes":      input.Notes,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisItem[Unit](id); err != nil {
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

	return utils.FetchModel[Unit](ctx, businessId, id)
}

// SetUnitStatus transitions a unit's occupancy status.
func SetUnitStatus(ctx context.Context, id int, status UnitStatus) (*Unit, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	result, err := utils.FetchModel[Unit](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Model(result).
		UpdateColumn("CurrentStatus", status).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisItem[Unit](id); err != nil {
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

func DeleteUnit(ctx context.Context, id int) (*Unit, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	result, err := utils.FetchModel[Unit](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[Lease](ctx, businessId, "unit_id = ? AND current_status = ?", id, LeaseStatusActive)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("unit has an active lease")
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Delete(&result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisItem[Unit](id); err != nil {
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

	return result, nil
}

func GetUnit(ctx context.Context, id int) (*Unit, error) {
	return GetResource[Unit](ctx, id)
}

func GetUnits(ctx context.Context, propertyId *int) ([]*Unit, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("business_id = ?", businessId)
	if propertyId != nil && *propertyId > 0 {
		dbCtx = dbCtx.Where("property_id = ?", *propertyId)
	}

	var results []*Unit
	if err := dbCtx.Order("property_id, name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
