package user

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"gorm.io/gorm"

	entity "forum.GO/model/entity"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// EmailHash returns the lookup hash for an e-mail address (lowercased).
func EmailHash(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

// Slugify returns the unique slug form of a username.
func Slugify(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// FindByID returns an active user by ID.
func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	err := r.db.Where("user_id = ? AND is_active = ?", id, true).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByIdentifier returns an active user by username slug or e-mail.
func (r *UserRepository) FindByIdentifier(identifier string) (*entity.User, error) {
	var u entity.User
	query := r.db.Where("is_active = ?", true)
	if strings.Contains(identifier, "@") {
		query = query.Where("email_hash = ?", EmailHash(identifier))
	} else {
		query = query.Where("slug = ?", Slugify(identifier))
	}
	if err := query.First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user. Slug and e-mail hash are derived if unset.
func (r *UserRepository) Create(u *entity.User) error {
	if u.Slug == "" {
		u.Slug = Slugify(u.Username)
	}
	if u.EmailHash == "" {
		u.EmailHash = EmailHash(u.Email)
	}
	return r.db.Create(u).Error
}

// SlugTaken reports whether a username slug is already in use.
func (r *UserRepository) SlugTaken(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.User{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// EmailTaken reports whether an e-mail address is already in use.
func (r *UserRepository) EmailTaken(email string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.User{}).Where("email_hash = ?", EmailHash(email)).Count(&count).Error
	return count > 0, err
}

// TouchLastLogin stamps the user's last login time.
func (r *UserRepository) TouchLastLogin(id uint) error {
	return r.db.Model(&entity.User{}).Where("user_id = ?", id).
		Update("last_login_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
