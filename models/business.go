package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/config"
	"bitbucket.org/mmdatafocus/property_backend/utils"
	"github.com/google/uuid"
)

type Business struct {
	ID             uuid.UUID `gorm:"primary_key" json:"id"`
	LogoUrl        string    `json:"logo_url"`
	Name           string    `gorm:"index;size:100;not null" json:"name" binding:"required"`
	ContactName    string    `gorm:"size:100" json:"contact_name"`
	Email          string    `gorm:"size:255" json:"email"`
	Phone          string    `gorm:"size:20" json:"phone"`
	Website        string    `gorm:"size:255" json:"website"`
	About          string    `gorm:"type:text" json:"about"`
	Address        string    `gorm:"type:text" json:"address"`
	Country        string    `gorm:"size:100" json:"country"`
	City           string    `gorm:"size:100" json:"city"`
	CurrencyCode   string    `gorm:"size:10;default:USD" json:"currency_code"`
	FiscalYear     string    `gorm:"type:enum('Jan', 'Feb', 'Mar', 'Apr', 'May', 'Jun', 'Jul', 'Aug', 'Sep', 'Oct', 'Nov', 'Dec');default:Jan" json:"fiscal_year"`
	Timezone       string    `gorm:"size:50" json:"timezone"`
	IsActive       *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBusiness struct {
	LogoUrl      string `json:"logo_url"`
	Name         string `json:"name" binding:"required"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
	About        string `json:"about"`
	Address      string `json:"address"`
	Country      string `json:"country"`
	City         string `json:"city"`
	CurrencyCode string `json:"currency_code"`
	FiscalYear   string `json:"fiscal_year"`
	Timezone     string `json:"timezone"`
}

/*
caches:
	Business:$id
*/

func (business *Business) StoreRedis() error {
	return config.SetRedisObject("Business:"+fmt.Sprint(business.ID), business, 0)
}

func (business *Business) RemoveRedis() error {
	return config.RemoveRedisKey("Business:" + fmt.Sprint(business.ID))
}

func (input *NewBusiness) validate(ctx context.Context, id string) error {
	// name
	if err := utils.ValidateUnique[Business](ctx, "", "name", input.Name, id); err != nil {
		return err
	}
	// email
	if !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email")
	}
	if err := utils.ValidateUnique[Business](ctx, "", "email", input.Email, id); err != nil {
		return err
	}
	// phone
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.DefaultCountryCode()); err != nil {
			return errors.New("invalid phone number")
		}
	}
	// fiscal year
	if input.FiscalYear != "" {
		if _, err := utils.GetFiscalYearStartMonth(input.FiscalYear); err != nil {
			return err
		}
	}
	// timezone
	if input.Timezone != "" {
		if _, err := time.LoadLocation(input.Timezone); err != nil {
			return errors.New("invalid timezone")
		}
	}
	return nil
}

// CreateBusiness registers a business along with its owner account and the
// default transaction categories.
func CreateBusiness(ctx context.Context, input *NewBusiness, ownerName string) (*Business, error) {

	if err := input.validate(ctx, ""); err != nil {
		return nil, err
	}

	fiscalYear := input.FiscalYear
	if fiscalYear == "" {
		fiscalYear = "Jan"
	}
	currencyCode := input.CurrencyCode
	if currencyCode == "" {
		currencyCode = "USD"
	}

	business := Business{
		ID:           uuid.New(),
		LogoUrl:      input.LogoUrl,
		Name:         input.Name,
		ContactName:  input.ContactName,
		Email:        input.Email,
		Phone:        input.Phone,
		Website:      input.Website,
		About:        input.About,
		Address:      input.Address,
		Country:      input.Country,
		City:         input.City,
		CurrencyCode: currencyCode,
		FiscalYear:   fiscalYear,
		Timezone:     input.Timezone,
		IsActive:     utils.NewTrue(),
	}

	db := config.GetDB()
	tx := db.Begin()

	if err := tx.WithContext(ctx).Create(&business).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	businessId := business.ID.String()
	if _, err := CreateDefaultCategories(tx, ctx, businessId); err != nil {
		return nil, err
	}
	if _, err := CreateDefaultOwner(tx, ctx, businessId, input.Email, ownerName); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &business, nil
}

func UpdateBusiness(ctx context.Context, input *NewBusiness) (*Business, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	if err := input.validate(ctx, businessId); err != nil {
		return nil, err
	}

	business, err := GetBusinessById(ctx, businessId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(&Business{ID: business.ID}).Updates(map[string]interface{}{
		"LogoUrl":      input.LogoUrl,
		"Name":         input.Name,
		"ContactName":  input.ContactName,
		"Email":        input.Email,
		"Phone":        input.Phone,
		"Website":      input.Website,
		"About":        input.About,
		"Address":      input.Address,
		"Country":      input.Country,
		"City":         input.City,
		"CurrencyCode": input.CurrencyCode,
		"FiscalYear":   input.FiscalYear,
		"Timezone":     input.Timezone,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	// caching
	if err := business.RemoveRedis(); err != nil {
		tx.Rollback()
		return nil, err
	}
	return business, tx.Commit().Error
}

func GetBusinessById(ctx context.Context, id string) (*Business, error) {

	var result Business

	exists, err := config.GetRedisObject("Business:"+id, &result)
	if err != nil {
		return nil, err
	}

	if !exists {
		db := config.GetDB()
		// db query
		err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error
		if err != nil {
			return nil, utils.ErrorRecordNotFound
		}
		// caching
		if err := result.StoreRedis(); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

func GetBusiness(ctx context.Context) (*Business, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	return GetBusinessById(ctx, businessId)
}
