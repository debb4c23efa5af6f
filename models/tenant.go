package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/config"
	"bitbucket.org/mmdatafocus/property_backend/utils"
)

type Tenant struct {
	ID         int       `gorm:"primary_key" json:"id"`
	BusinessId string    `gorm:"index;not null" json:"business_id"`
	Name       string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email      *string   `gorm:"size:100" json:"email"`
	Phone      string    `gorm:"size:20" json:"phone"`
	Notes      string    `gorm:"type:text" json:"notes"`
	IsActive   *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTenant struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

func (obj Tenant) GetId() int {
	return obj.ID
}

func (obj Tenant) GetBusinessId() string {
	return obj.BusinessId
}

// validate input for both create & update. (id = 0 for create)
func (input *NewTenant) validate(ctx context.Context, businessId string, id int) error {
	if input.Email != "" {
		if !utils.IsValidEmail(input.Email) {
			return errors.New("invalid email")
		}
		if err := utils.ValidateUnique[Tenant](ctx, businessId, "email", input.Email, id); err != nil {
			return err
		}
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.DefaultCountryCode()); err != nil {
			return errors.New("invalid phone number")
		}
	}
	return nil
}

func CreateTenant(ctx context.Context, input *NewTenant) (*Tenant, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId, 0); err != nil {
		return nil, err
	}

	tenant := Tenant{
		BusinessId: businessId,
		Name:       input.Name,
		Email:      utils.NilIfEmpty(input.Email),
		Phone:      input.Phone,
		Notes:      input.Notes,
		IsActive:   utils.NewTrue(),
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&tenant).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisList[Tenant](businessId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &tenant, nil
}

func UpdateTenant(ctx context.Context, id int, input *NewTenant) (*Tenant, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	if _, err := utils.FetchModel[Tenant](ctx, businessId, id); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, businessId, id); err != nil {
		return nil, err
	}

	update := Tenant{ID: id, BusinessId: businessId}

	db := config.GetDB()
	tx := db.Begin()
	err := tx.WithContext(ctx).Model(&update).Updates(map[string]interface{}{
		"Name":  input.Name,
		"Email": utils.NilIfEmpty(input.Email),
		"Phone": input.Phone,
		"Notes": input.Notes,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisItem[Tenant](id); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisList[Tenant](businessId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[Tenant](ctx, businessId, id)
}

func DeleteTenant(ctx context.Context, id int) (*Tenant, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	result, err := utils.FetchModel[Tenant](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[Lease](ctx, businessId, "tenant_id = ? AND current_status = ?", id, LeaseStatusActive)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("tenant has an active lease")
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Delete(&result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisItem[Tenant](id); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisList[Tenant](businessId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return result, nil
}

func GetTenant(ctx context.Context, id int) (*Tenant, error) {
	return GetResource[Tenant](ctx, id)
}

func GetTenants(ctx context.Context) ([]*Tenant, error) {
	return ListAllResource[Tenant, Tenant](ctx, "name")
}

func ToggleActiveTenant(ctx context.Context, id int, isActive bool) (*Tenant, error) {
	return ToggleActiveModel[Tenant](ctx, id, isActive)
}
