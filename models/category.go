package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/config"
	"bitbucket.org/mmdatafocus/property_backend/utils"
)

type TransactionCategory struct {
	ID          int             `gorm:"primary_key" json:"id"`
	BusinessId  string          `gorm:"index;not null" json:"business_id"`
	Name        string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Type        TransactionType `gorm:"type:enum('Income', 'Expense');not null" json:"type" binding:"required"`
	Description string          `gorm:"type:text" json:"description"`
	IsActive    *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTransactionCategory struct {
	Name        string          `json:"name" binding:"required"`
	Type        TransactionType `json:"type" binding:"required"`
	Description string          `json:"description"`
}

func (obj TransactionCategory) GetId() int {
	return obj.ID
}

func (obj TransactionCategory) GetBusinessId() string {
	return obj.BusinessId
}

// validate input for both create & update. (id = 0 for create)
func (input *NewTransactionCategory) validate(ctx context.Context, businessId string, id int) error {
	// category names are unique per business and type
	count, err := utils.ResourceCountWhere[TransactionCategory](ctx, businessId,
		"name = ? AND type = ? AND NOT id = ?", input.Name, input.Type, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("duplicate category name")
	}
	return nil
}

func CreateTransactionCategory(ctx context.Context, input *NewTransactionCategory) (*TransactionCategory, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if err := input.validate(ctx, businessId, 0); err != nil {
		return nil, err
	}

	category := TransactionCategory{
		BusinessId:  businessId,
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
		IsActive:    utils.NewTrue(),
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&category).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisList[TransactionCategory](businessId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &category, nil
}

func UpdateTransactionCategory(ctx context.Context, id int, input *NewTransactionCategory) (*TransactionCategory, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	before, err := utils.FetchModel[TransactionCategory](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, businessId, id); err != nil {
		return nil, err
	}
	// type changes would silently reclassify historic transactions
	if before.Type != input.Type {
		count, err := utils.ResourceCountWhere[Transaction](ctx, businessId, "category_id = ?", id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("cannot change type of category in use")
		}
	}

	update := TransactionCategory{ID: id, BusinessId: businessId}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(&update).Updates(map[string]interface{}{
		"Name":        input.Name,
		"Type":        input.Type,
		"Description": input.Description,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisItem[TransactionCategory](id); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisList[TransactionCategory](businessId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[TransactionCategory](ctx, businessId, id)
}

func DeleteTransactionCategory(ctx context.Context, id int) (*TransactionCategory, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	result, err := utils.FetchModel[TransactionCategory](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[Transaction](ctx, businessId, "category_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("category has transactions")
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Delete(&result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisItem[TransactionCategory](id); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := utils.RemoveRedisList[TransactionCategory](businessId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return result, nil
}

func GetTransactionCategory(ctx context.Context, id int) (*TransactionCategory, error) {
	return GetResource[TransactionCategory](ctx, id)
}

func GetTransactionCategories(ctx context.Context, categoryType *TransactionType) ([]*TransactionCategory, error) {

	results, err := ListAllResource[TransactionCategory, TransactionCategory](ctx, "type, name")
	if err != nil {
		return nil, err
	}
	if categoryType == nil {
		return results, nil
	}
	filtered := make([]*TransactionCategory, 0, len(results))
	for _, c := range results {
		if c.Type == *categoryType {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func ToggleActiveTransactionCategory(ctx context.Context, id int, isActive bool) (*TransactionCategory, error) {
	return ToggleActiveModel[TransactionCategory](ctx, id, isActive)
}
