package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/config"
	"bitbucket.org/mmdatafocus/property_backend/utils"
	"github.com/shopspring/decimal"
)

type Property struct {
	ID            int              `gorm:"primary_key" json:"id"`
	BusinessId    string           `gorm:"index;not null" json:"business_id"`
	Name          string           `gorm:"size:255;not null" json:"name" binding:"required"`
	Address       string           `gorm:"type:text" json:"address"`
	City          string           `gorm:"size:100" json:"city"`
	State         string           `gorm:"size:100" json:"state"`
	PostalCode    string           `gorm:"size:20" json:"postal_code"`
	PropertyType  string           `gorm:"size:50" json:"property_type"`
	PurchasePrice *decimal.Decimal `gorm:"type:decimal(20,4);default:null" json:"purchase_price"`
	PurchaseDate  *time.Time       `json:"purchase_date"`
	Notes         string           `gorm:"type:text" json:"notes"`
	IsActive      *bool            `gorm:"not null;default:true" json:"is_active"`
	Units         []*Unit          `json:"units,omitempty"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProperty struct {
	Name          string           `json:"name" binding:"required"`
	Address       string           `json:"address"`
	City          string           `json:"city"`
	State         string           `json:"state"`
	PostalCode    string           `json:"postal_code"`
	PropertyType  string           `json:"property_type"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	PurchaseDate  *time.Time       `json:"purchase_date"`
	Notes         string           `json:"notes"`
}

func (obj Property) GetId() int {
	return obj.ID
}

func (obj Property) GetBusinessId() string {
	return obj.BusinessId
}

// validate input for both create & update. (id = 0 for create)
func (input *NewProperty) validate(ctx context.Context, businessId string, id int) error {
	// name must be unique per business
	if err := utils.ValidateUnique[Property](ctx, businessId, "name", input.Name, id); err != nil {
		return err
	}
	if input.PurchasePrice != nil && input.PurchasePrice.IsNegative() {
		return errors.New("purchase price must not be negative")
	}
	return nil
}

func CreateProperty(ctx context.Context, input *NewProperty) (*Property, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId, 0); err != nil {
		return nil, err
	}

	property := Property{
		BusinessId:    businessId,
		Name:          input.Name,
		Address:       input.Address,
		City:          input.City,
		State:         input.State,
		PostalCode:    input.PostalCode,
		PropertyType:  input.PropertyType,
		PurchasePrice: input.PurchasePrice,
		PurchaseDate:  input.PurchaseDate,
		Notes:         input.Notes,
		IsActive:      utils.NewTrue(),
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&property).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisList[Property](businessId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &property, nil
}

func UpdateProperty(ctx context.Context, id int, input *NewProperty) (*Property, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	// id exists
	if _, err := utils.FetchModel[Property](ctx, businessId, id); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, businessId, id); err != nil {
		return nil, err
	}

	update := Property{ID: id, BusinessId: businessId}

	db := config.GetDB()
	tx := db.Begin()
	err := tx.WithContext(ctx).Model(&update).Updates(map[string]interface{}{
		"Name":          input.Name,
		"Address":       input.Address,
		"City":          input.City,
		"State":         input.State,
		"PostalCode":    input.PostalCode,
		"PropertyType":  input.PropertyType,
		"PurchasePrice": input.PurchasePrice,
		"PurchaseDate":  input.PurchaseDate,
		"Notes":         input.Notes,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisItem[Property](id); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisList[Property](businessId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[Property](ctx, businessId, id)
}

func DeleteProperty(ctx context.Context, id int) (*Property, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	result, err := utils.FetchModel[Property](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	// block deleting properties that still carry units or transactions
	count, err := utils.ResourceCountWhere[Unit](ctx, businessId, "property_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("property has units")
	}
	count, err = utils.ResourceCountWhere[Transaction](ctx, businessId, "property_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("property has transactions")
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Delete(&result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisItem[Property](id); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisList[Property](businessId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return result, nil
}

func GetProperty(ctx context.Context, id int) (*Property, error) {
	return GetResource[Property](ctx, id)
}

func GetProperties(ctx context.Context) ([]*Property, error) {
	return ListAllResource[Property, Property](ctx, "name")
}

func ToggleActiveProperty(ctx context.Context, id int, isActive bool) (*Property, error) {
	return ToggleActiveModel[Property](ctx, id, isActive)
}
