package entity

import "time"

// Css is a theme stylesheet: either an editor-managed source (URL nil) or a
// link to a remote stylesheet (URL set).
type Css struct {
	CssID               uint      `gorm:"column:css_id;primaryKey;autoIncrement"`
	ThemeID             uint      `gorm:"column:theme_id;not null;index"`
	Name                string    `gorm:"column:name;type:varchar(255);not null"`
	URL                 *string   `gorm:"column:url;type:varchar(255)"`
	Source              string    `gorm:"column:source;type:mediumtext"`
	BuiltHash           *string   `gorm:"column:built_hash;type:varchar(64)"`
	Size                int64     `gorm:"column:size;not null;default:0"`
	SortOrder           int       `gorm:"column:sort_order;not null;default:0"`
	SourceNeedsBuilding bool      `gorm:"column:source_needs_building;not null;default:false"`
	ModifiedAt          time.Time `gorm:"column:modified_at;autoUpdateTime"`
}

func (Css) TableName() string {
	return "forum_theme_css"
}

// IsLink reports whether this stylesheet points at a remote URL instead of
// editor-managed source.
func (c *Css) IsLink() bool {
	return c.URL != nil && *c.URL != ""
}
