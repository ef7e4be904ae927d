package entity

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	UserID        uint           `gorm:"column:user_id;primaryKey;autoIncrement"`
	Username      string         `gorm:"column:username;type:varchar(40);not null"`
	Slug          string         `gorm:"column:slug;type:varchar(40);not null;uniqueIndex"`
	Email         string         `gorm:"column:email;type:varchar(128);not null"`
	EmailHash     string         `gorm:"column:email_hash;type:varchar(64);not null;uniqueIndex"`
	Password      string         `gorm:"column:password;type:varchar(128);not null"`
	IsActive      bool           `gorm:"column:is_active;not null;default:true"`
	IsModerator   bool           `gorm:"column:is_moderator;not null;default:false"`
	IsAdmin       bool           `gorm:"column:is_admin;not null;default:false"`
	Extra         datatypes.JSON `gorm:"column:extra"`
	JoinedAt      time.Time      `gorm:"column:joined_at;autoCreateTime"`
	LastLoginAt   *time.Time     `gorm:"column:last_login_at"`
}

func (User) TableName() string {
	return "forum_user"
}
