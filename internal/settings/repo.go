package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lunakids/lunakids-backend/pkg/db/models"
	"github.com/lunakids/lunakids-backend/pkg/enums"
)

// Repository encapsulates settings persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a settings repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the settings row for the key.
func (r *Repository) Get(ctx context.Context, key enums.SettingKey) (*models.Setting, error) {
	var row models.Setting
	if err := r.db.WithContext(ctx).First(&row, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns the rows for the provided keys, or all rows when keys is empty.
func (r *Repository) List(ctx context.Context, keys ...enums.SettingKey) ([]models.Setting, error) {
	var rows []models.Setting
	query := r.db.WithContext(ctx).Model(&models.Setting{})
	if len(keys) > 0 {
		query = query.Where("key IN ?", keys)
	}
	if err := query.Order("key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert writes the value for the key, creating the row if needed.
func (r *Repository) Upsert(ctx context.Context, key enums.SettingKey, value string) error {
	row := models.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}
