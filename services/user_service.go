package services

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cafesys/cafe-backend/auth"
	"github.com/cafesys/cafe-backend/models"
)

// UserService owns user records and roles. Registration always produces a
// customer; only a manager can change a role afterwards. Users are never
// deleted.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Register(login, password, phone string) (*models.User, error) {
	if strings.TrimSpace(login) == "" || password == "" {
		return nil, fmt.Errorf("%w: login and password are required", ErrInvalidInput)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	user := models.User{
		Login:    login,
		Password: string(hashed),
		PhoneNum: phone,
		Type:     string(auth.RoleCustomer),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, classify(err)
	}
	return &user, nil
}

// Authenticate resolves an acting identity from credentials. Unknown login
// and wrong password report the same error.
func (s *UserService) Authenticate(login, password string) (auth.Identity, error) {
	var user models.User
	if err := s.db.Where("login = ?", login).First(&user).Error; err != nil {
		return auth.Identity{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return auth.Identity{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	role, ok := auth.ParseRole(user.Type)
	if !ok {
		return auth.Identity{}, fmt.Errorf("%w: user %s has unknown role %q", ErrStore, login, user.Type)
	}
	return auth.Identity{Login: user.Login, Role: role}, nil
}

func (s *UserService) GetUser(id auth.Identity, login string) (*models.User, error) {
	if err := auth.Authorize(id, auth.ActionEditProfile, auth.ProfileTarget{Login: login}); err != nil {
		return nil, classify(err)
	}
	var user models.User
	if err := s.db.Where("login = ?", login).First(&user).Error; err != nil {
		return nil, classify(err)
	}
	return &user, nil
}

func (s *UserService) GetRole(login string) (auth.Role, error) {
	var user models.User
	if err := s.db.Where("login = ?", login).First(&user).Error; err != nil {
		return "", classify(err)
	}
	role, ok := auth.ParseRole(user.Type)
	if !ok {
		return "", fmt.Errorf("%w: user %s has unknown role %q", ErrStore, login, user.Type)
	}
	return role, nil
}

// SetRole changes a user's role. Manager only.
func (s *UserService) SetRole(id auth.Identity, login string, role auth.Role) error {
	if err := auth.Authorize(id, auth.ActionManageUsers, nil); err != nil {
		return classify(err)
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	current, err := s.GetRole(login)
	if err != nil {
		return err
	}
	if current == role {
		return nil
	}
	err = s.db.Model(&models.User{}).Where("login = ?", login).
		Update("type", string(role)).Error
	return classify(err)
}

// SetPassword rehashes and stores a new credential for the user. Self or
// manager.
func (s *UserService) SetPassword(id auth.Identity, login, password string) error {
	if err := auth.Authorize(id, auth.ActionEditProfile, auth.ProfileTarget{Login: login}); err != nil {
		return classify(err)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	res := s.db.Model(&models.User{}).Where("login = ?", login).
		Update("password", string(hashed))
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserService) SetPhone(id auth.Identity, login, phone string) error {
	return s.setProfileField(id, login, "phoneNum", phone, func(u *models.User) bool {
		return u.PhoneNum == phone
	})
}

func (s *UserService) SetFavItems(id auth.Identity, login, favItems string) error {
	return s.setProfileField(id, login, "favItems", favItems, func(u *models.User) bool {
		return u.FavItems == favItems
	})
}

func (s *UserService) setProfileField(id auth.Identity, login, column string, value any, unchanged func(*models.User) bool) error {
	if err := auth.Authorize(id, auth.ActionEditProfile, auth.ProfileTarget{Login: login}); err != nil {
		return classify(err)
	}
	var user models.User
	if err := s.db.Where("login = ?", login).First(&user).Error; err != nil {
		return classify(err)
	}
	if unchanged(&user) {
		return nil
	}
	err := s.db.Model(&models.User{}).Where("login = ?", login).
		Update(column, value).Error
	return classify(err)
}

// ListUsers returns every user record. Manager only.
func (s *UserService) ListUsers(id auth.Identity) ([]models.User, error) {
	if err := auth.Authorize(id, auth.ActionManageUsers, nil); err != nil {
		return nil, classify(err)
	}
	var users []models.User
	if err := s.db.Order("login asc").Find(&users).Error; err != nil {
		return nil, classify(err)
	}
	return users, nil
}
