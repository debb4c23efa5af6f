package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/config"
	"bitbucket.org/mmdatafocus/property_backend/utils"
)

type Inspection struct {
	ID            int                `gorm:"primary_key" json:"id"`
	BusinessId    string             `gorm:"index;not null" json:"business_id"`
	PropertyId    int                `gorm:"index;not null" json:"property_id" binding:"required"`
	UnitId        *int               `gorm:"index" json:"unit_id"`
	ScheduledDate time.Time          `gorm:"not null" json:"scheduled_date" binding:"required"`
	CompletedDate *time.Time         `json:"completed_date"`
	CurrentStatus InspectionStatus   `gorm:"type:enum('Scheduled', 'Completed', 'Cancelled');default:Scheduled" json:"current_status"`
	Inspector     string             `gorm:"size:100" json:"inspector"`
	Summary       string             `gorm:"type:text" json:"summary"`
	Photos        []*InspectionPhoto `gorm:"foreignKey:InspectionId" json:"photos"`
	CreatedAt     time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

type InspectionPhoto struct {
	ID           int       `gorm:"primary_key" json:"id"`
	InspectionId int       `gorm:"index;not null" json:"inspection_id"`
	ImageUrl     string    `gorm:"size:255;not null" json:"image_url"`
	ThumbnailUrl string    `gorm:"size:255" json:"thumbnail_url"`
	Caption      string    `gorm:"size:255" json:"caption"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewInspection struct {
	PropertyId    int           `json:"property_id" binding:"required"`
	UnitId        *int          `json:"unit_id"`
	ScheduledDate *MyDateString `json:"scheduled_date" binding:"required"`
	Inspector     string        `json:"inspector"`
	Summary       string        `json:"summary"`
}

func (obj Inspection) GetId() int {
	return obj.ID
}

func (obj Inspection) GetBusinessId() string {
	return obj.BusinessId
}

func (input *NewInspection) validate(ctx context.Context, businessId string) error {
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
	if input.ScheduledDate == nil {
		return errors.New("scheduled date is required")
	}
	return nil
}

func CreateInspection(ctx context.Context, input *NewInspection) (*Inspection, error) {

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
	if err := input.ScheduledDate.UTCTime(business.Timezone); err != nil {
		return nil, err
	}

	inspection := Inspection{
		BusinessId:    businessId,
		PropertyId:    input.PropertyId,
		UnitId:        input.UnitId,
		ScheduledDate: time.Time(*input.ScheduledDate),
		CurrentStatus: InspectionStatusScheduled,
		Inspector:     input.Inspector,
		Summary:       input.Summary,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&inspection).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &inspection, nil
}

func UpdateInspection(ctx context.Context, id int, input *NewInspection) (*Inspection, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	before, err := utils.FetchModel[Inspection](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if before.CurrentStatus != InspectionStatusScheduled {
		return nil, errors.New("inspection is not editable")
	}
	if err := input.validate(ctx, businessId); err != nil {
		return nil, err
	}

	business, err := GetBusinessById(ctx, businessId)
	if err != nil {
		return nil, err
	}
	if err := input.ScheduledDate.UTCTime(business.Timezone); err != nil {
		return nil, err
	}

	update := Inspection{ID: id, BusinessId: businessId}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(&update).Updates(map[string]interface{}{
		"PropertyId":    input.PropertyId,
		"UnitId":        input.UnitId,
		"ScheduledDate": time.Time(*input.ScheduledDate),
		"Inspector":     input.Inspector,
		"Summary":       input.Summary,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[Inspection](ctx, businessId, id)
}

// CompleteInspection records the outcome of a scheduled inspection.
func CompleteInspection(ctx context.Context, id int, summary string) (*Inspection, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	result, err := utils.FetchModel[Inspection](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if result.CurrentStatus != InspectionStatusScheduled {
		return nil, errors.New("inspection is not scheduled")
	}

	now := time.Now().UTC()

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(result).Updates(map[string]interface{}{
		"CurrentStatus": InspectionStatusCompleted,
		"CompletedDate": now,
		"Summary":       summary,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	result.CurrentStatus = InspectionStatusCompleted
	result.CompletedDate = &now
	result.Summary = summary
	return result, nil
}

func CancelInspection(ctx context.Context, id int) (*Inspection, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	result, err := utils.FetchModel[Inspection](ctx, businessId, id)
	if err != nil {
		return nil, err
	}
	if result.CurrentStatus != InspectionStatusScheduled {
		return nil, errors.New("inspection is not scheduled")
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Model(result).
		UpdateColumn("CurrentStatus", InspectionStatusCancelled).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	result.CurrentStatus = InspectionStatusCancelled
	return result, nil
}

func GetInspection(ctx context.Context, id int) (*Inspection, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	var result Inspection
	err := db.WithContext(ctx).Preload("Photos").
		Where("business_id = ?", businessId).Take(&result, id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func GetInspections(ctx context.Context, propertyId *int, status *InspectionStatus) ([]*Inspection, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Photos").Where("business_id = ?", businessId)
	if propertyId != nil && *propertyId > 0 {
		dbCtx = dbCtx.Where("property_id = ?", *propertyId)
	}
	if status != nil {
		dbCtx = dbCtx.Where("current_status = ?", *status)
	}

	var results []*Inspection
	if err := dbCtx.Order("scheduled_date DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// AddInspectionPhoto attaches an uploaded image to an inspection.
func AddInspectionPhoto(ctx context.Context, inspectionId int, imageUrl, thumbnailUrl, caption string) (*InspectionPhoto, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	if _, err := utils.FetchModel[Inspection](ctx, businessId, inspectionId); err != nil {
		return nil, err
	}

	photo := InspectionPhoto{
		InspectionId: inspectionId,
		ImageUrl:     imageUrl,
		ThumbnailUrl: thumbnailUrl,
		Caption:      caption,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func DeleteInspectionPhoto(ctx context.Context, inspectionId, photoId int) error {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return errors.New("business id is required")
	}

	if _, err := utils.FetchModel[Inspection](ctx, businessId, inspectionId); err != nil {
		return err
	}

	db := config.GetDB()
	var photo InspectionPhoto
	if err := db.WithContext(ctx).
		Where("inspection_id = ?", inspectionId).
		First(&photo, photoId).Error; err != nil {
		return utils.ErrorRecordNotFound
	}

	if err := db.WithContext(ctx).Delete(&photo).Error; err != nil {
		return err
	}

	// best-effort cleanup of the stored objects
	for _, url := range []string{photo.ImageUrl, photo.ThumbnailUrl} {
		if key := utils.ExtractObjectKeyFromURL(url); key != "" {
			_ = utils.DeleteImageFromGCS(ctx, key)
		}
	}
	return nil
}
