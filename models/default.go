package models

import (
	"context"

	"bitbucket.org/mmdatafocus/property_backend/utils"
	"gorm.io/gorm"
)

type defaultCategory struct {
	Name string
	Type TransactionType
}

// default transaction categories created for a new business
var defaultCategories = []defaultCategory{
	{"Rent", TransactionTypeIncome},
	{"Late Fees", TransactionTypeIncome},
	{"Application Fees", TransactionTypeIncome},
	{"Parking", TransactionTypeIncome},
	{"Other Income", TransactionTypeIncome},
	{"Maintenance & Repairs", TransactionTypeExpense},
	{"Utilities", TransactionTypeExpense},
	{"Insurance", TransactionTypeExpense},
	{"Property Management", TransactionTypeExpense},
	{"Property Taxes", TransactionTypeExpense},
	{"Mortgage Interest", TransactionTypeExpense},
	{"HOA Fees", TransactionTypeExpense},
	{"Landscaping", TransactionTypeExpense},
	{"Cleaning & Turnover", TransactionTypeExpense},
	{"Advertising", TransactionTypeExpense},
	{"Legal & Professional Fees", TransactionTypeExpense},
}

func CreateDefaultCategories(tx *gorm.DB, ctx context.Context, businessId string) ([]TransactionCategory, error) {

	var categories []TransactionCategory
	for _, c := range defaultCategories {
		categories = append(categories, TransactionCategory{
			BusinessId: businessId,
			Name:       c.Name,
			Type:       c.Type,
			IsActive:   utils.NewTrue(),
		})
	}

	if err := tx.WithContext(ctx).Create(&categories).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	return categories, nil
}

func CreateDefaultOwner(tx *gorm.DB, ctx context.Context, businessId string, email string, name string) (*User, error) {

	hashedPassword, err := utils.HashPassword("default123")
	if err != nil {
		return &User{}, err
	}

	owner := User{
		BusinessId: businessId,
		Username:   email,
		Name:       name,
		Email:      &email,
		Password:   string(hashedPassword),
		IsActive:   utils.NewTrue(),
		Role:       UserRoleAdmin,
	}
	if err := tx.WithContext(ctx).Create(&owner).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	return &owner, nil
}
