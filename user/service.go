package user

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/dailyyoga/coinboard/auth"
)

// Service manages accounts on top of the database.
type Service struct {
	db *gorm.DB
}

// NewService creates an account service.
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	return &Service{db: db}, nil
}

// Register creates an account with a hashed password.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{Email: email, PasswordHash: hash}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateErr(err) {
			return nil, ErrEmailTaken
		}
		return nil, ErrQuery(err)
	}
	return u, nil
}

// Authenticate checks an email/password pair and returns the account.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, ErrQuery(err)
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// Get loads an account by id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, ErrQuery(err)
	}
	return &u, nil
}

// Preferences loads an account's dashboard preferences.
func (s *Service) Preferences(ctx context.Context, id string) (Preferences, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return Preferences{}, err
	}
	return u.DecodePreferences()
}

// UpdatePreferences replaces an account's dashboard preferences.
func (s *Service) UpdatePreferences(ctx context.Context, id string, prefs Preferences) error {
	raw, err := json.Marshal(prefs.withDefaults())
	if err != nil {
		return ErrEncodePreferences(err)
	}
	res := s.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("preferences", raw)
	if res.Error != nil {
		return ErrQuery(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// isDuplicateErr catches drivers that do not translate unique
// violations into gorm.ErrDuplicatedKey.
func isDuplicateErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
