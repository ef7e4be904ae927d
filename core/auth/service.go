package auth

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	entity "forum.GO/model/entity"
	userRepo "forum.GO/model/repository/user"
)

// DefaultTokenTTL is how long a user token stays valid.
const DefaultTokenTTL = 30 * 24 * time.Hour

// Service implements the un-extended behavior behind the auth hooks:
// credential verification, JWT user tokens, token payload lookups.
type Service struct {
	users    *userRepo.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewService(db *gorm.DB) *Service {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "forum-insecure-dev-secret"
	}
	return &Service{
		users:    userRepo.NewUserRepository(db),
		secret:   []byte(secret),
		tokenTTL: DefaultTokenTTL,
	}
}

// Users exposes the backing repository.
func (s *Service) Users() *userRepo.UserRepository {
	return s.users
}

// VerifyCredentials checks identifier (username or e-mail) and password.
// Returns nil without error when the credentials match no active user, per
// the authenticate-user contract: a failed login is "no user", not an error.
func (s *Service) VerifyCredentials(ctx context.Context, identifier, password string) (*entity.User, error) {
	u, err := s.users.FindByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, nil
	}
	return u, nil
}

// TokenPayload builds the claims mapping embedded in a user token.
func (s *Service) TokenPayload(u *entity.User) map[string]interface{} {
	return map[string]interface{}{
		"user_id": u.UserID,
		"name":    u.Username,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
}

// SignPayload signs a payload mapping into a JWT string.
func (s *Service) SignPayload(payload map[string]interface{}) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(payload))
	return token.SignedString(s.secret)
}

// ParseToken verifies a token string and returns its payload mapping.
// Returns nil without error for invalid or expired tokens.
func (s *Service) ParseToken(token string) (map[string]interface{}, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, nil
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil
	}
	return map[string]interface{}(claims), nil
}

// tokenClaims is the typed view of a token payload.
type tokenClaims struct {
	UserID uint   `mapstructure:"user_id"`
	Name   string `mapstructure:"name"`
}

// UserFromPayload resolves a token payload to its user. Returns nil without
// error when the payload carries no usable user ID or the user is gone.
func (s *Service) UserFromPayload(ctx context.Context, payload map[string]interface{}) (*entity.User, error) {
	if payload == nil {
		return nil, nil
	}
	var claims tokenClaims
	cfg := &mapstructure.DecoderConfig{
		Result:           &claims,
		WeaklyTypedInput: true, // JWT numbers decode as float64
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(payload); err != nil || claims.UserID == 0 {
		return nil, nil
	}
	u, err := s.users.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// HashPassword returns the bcrypt hash stored on user rows.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CreateUser inserts a new active user with a hashed password.
func (s *Service) CreateUser(ctx context.Context, username, email, password string) (*entity.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username: username,
		Email:    email,
		Password: hash,
		IsActive: true,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}
