package entity

import (
	"time"

	"gorm.io/datatypes"
)

type Theme struct {
	ThemeID   uint           `gorm:"column:theme_id;primaryKey;autoIncrement"`
	ParentID  *uint          `gorm:"column:parent_id"`
	Name      string         `gorm:"column:name;type:varchar(128);not null"`
	Version   *string        `gorm:"column:version;type:varchar(32)"`
	Author    *string        `gorm:"column:author;type:varchar(128)"`
	URL       *string        `gorm:"column:url;type:varchar(255)"`
	IsDefault bool           `gorm:"column:is_default;not null;default:false"`
	IsActive  bool           `gorm:"column:is_active;not null;default:false"`
	Settings  datatypes.JSON `gorm:"column:settings"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Theme) TableName() string {
	return "forum_theme"
}
