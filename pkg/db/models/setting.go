package models

import (
	"time"

	"github.com/lunakids/lunakids-backend/pkg/enums"
)

// Setting is one admin-managed key/value row.
type Setting struct {
	Key       enums.SettingKey `gorm:"column:key;primaryKey"`
	Value     string           `gorm:"column:value;not null"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
