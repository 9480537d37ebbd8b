package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mzhao28/commune/models"
	"github.com/mzhao28/commune/utils"
)

// IdentityStore handles account registration and credential verification.
type IdentityStore struct {
	DB *gorm.DB
}

// NewIdentityStore creates an IdentityStore bound to db.
func NewIdentityStore(db *gorm.DB) *IdentityStore {
	return &IdentityStore{DB: db}
}

// Register creates a new account. Email matching is exact and case-sensitive;
// a taken email fails with ErrDuplicateEmail.
func (s *IdentityStore) Register(email, name, password string) (*models.User, error) {
	var existing models.User
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		// A concurrent registration of the same email slipped past the
		// check; the unique index on users.email rejected it.
		if isDuplicateKey(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies credentials. Unknown email and wrong password return
// the same ErrInvalidLogin so responses do not enumerate accounts; an
// inactive account fails distinctly.
func (s *IdentityStore) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidLogin
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}
	return &user, nil
}

// GetUser loads a user by ID.
func (s *IdentityStore) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
