package entity

import "time"

type Media struct {
	MediaID   uint      `gorm:"column:media_id;primaryKey;autoIncrement"`
	ThemeID   uint      `gorm:"column:theme_id;not null;index"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Type      string    `gorm:"column:type;type:varchar(64);not null"`
	Path      string    `gorm:"column:path;type:varchar(255);not null"`
	Size      int64     `gorm:"column:size;not null;default:0"`
	Width     int       `gorm:"column:width;not null;default:0"`
	Height    int       `gorm:"column:height;not null;default:0"`
	Thumbnail *string   `gorm:"column:thumbnail;type:varchar(255)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Media) TableName() string {
	return "forum_theme_media"
}
