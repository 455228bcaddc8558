package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotel-backoffice/billing"
	"hotel-backoffice/models"
	"hotel-backoffice/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
)

const (
	minPasswordLength = 6
	resetTokenTTL     = time.Hour
)

// UserService manages back-office accounts and issues JWTs.
type UserService struct {
	DB          *gorm.DB
	Secret      []byte
	Mailer      *utils.Mailer
	FrontendURL string
	Clock       func() time.Time
	Log         *logrus.Entry
}

func NewUserService(db *gorm.DB, secret []byte, mailer *utils.Mailer, frontendURL string, log *logrus.Entry) *UserService {
	return &UserService{DB: db, Secret: secret, Mailer: mailer, FrontendURL: frontendURL, Clock: time.Now, Log: log}
}

type UserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive *bool  `json:"isActive"`
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (s *UserService) Get(ctx context.Context, id uint) (models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return u, notFoundOr("users.get", "user", id, err)
	}
	return u, nil
}

// Create registers an account; role defaults to FRONTDESK.
func (s *UserService) Create(ctx context.Context, in UserInput) (models.User, error) {
	const op = "users.create"
	u := models.User{
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Name:     strings.TrimSpace(in.Name),
		Role:     strings.ToUpper(strings.TrimSpace(in.Role)),
		IsActive: true,
	}
	if u.Email == "" || in.Password == "" || u.Name == "" {
		return u, billing.Validation(op, "email, password, and name are required")
	}
	if len(in.Password) < minPasswordLength {
		return u, billing.Validation(op, "password must be at least %d characters", minPasswordLength)
	}
	if u.Role == "" {
		u.Role = models.RoleFrontDesk
	}
	if !models.ValidRole(u.Role) {
		return u, billing.Validation(op, "invalid role %q", u.Role)
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}

	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", u.Email).Count(&n).Error; err != nil {
		return u, billing.Internal(op, err)
	}
	if n > 0 {
		return u, billing.Conflict(op, "user with this email already exists")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return u, billing.Internal(op, err)
	}
	u.Password = hash
	if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return u, billing.Conflict(op, "user with this email already exists")
		}
		return u, billing.Internal(op, err)
	}
	if !u.IsActive {
		// gorm skips zero values that have a column default
		s.DB.WithContext(ctx).Model(&u).Update("is_active", false)
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id uint, in UserInput) (models.User, models.User, error) {
	const op = "users.update"
	old, err := s.Get(ctx, id)
	if err != nil {
		return old, old, err
	}
	updates := map[string]interface{}{}
	if v := strings.TrimSpace(in.Name); v != "" {
		updates["name"] = v
	}
	if v := strings.ToLower(strings.TrimSpace(in.Email)); v != "" && v != old.Email {
		updates["email"] = v
	}
	if v := strings.ToUpper(strings.TrimSpace(in.Role)); v != "" {
		if !models.ValidRole(v) {
			return old, old, billing.Validation(op, "invalid role %q", v)
		}
		updates["role"] = v
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLength {
			return old, old, billing.Validation(op, "password must be at least %d characters", minPasswordLength)
		}
		hash, err := HashPassword(in.Password)
		if err != nil {
			return old, old, billing.Internal(op, err)
		}
		updates["password"] = hash
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if utils.IsDuplicateKey(err) {
				return old, old, billing.Conflict(op, "user with this email already exists")
			}
			return old, old, billing.Internal(op, err)
		}
	}
	u, err := s.Get(ctx, id)
	return old, u, err
}

// ----------------------------------------------------
// auth
// ----------------------------------------------------

// Login checks the password and returns a signed 7 day token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", models.User{}, billing.Validation("auth.login", "email and password are required")
	}
	var u models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", u, ErrInvalidCredentials
		}
		return "", u, billing.Internal("auth.login", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", u, ErrInvalidCredentials
	}
	if !u.IsActive {
		return "", u, ErrAccountDisabled
	}
	token, err := utils.GenerateToken(s.Secret, u.ID, u.Email, u.Role, s.Clock())
	if err != nil {
		return "", u, billing.Internal("auth.login", err)
	}
	return token, u, nil
}

// ForgotPassword stores a one hour reset token and mails the link. Unknown
// addresses succeed silently.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	const op = "auth.forgot_password"
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return billing.Validation(op, "email is required")
	}
	var u models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return billing.Internal(op, err)
	}
	token, err := utils.GenerateSecureToken(24)
	if err != nil {
		return billing.Internal(op, err)
	}
	expiry := s.Clock().Add(resetTokenTTL)
	err = s.DB.WithContext(ctx).Model(&u).Updates(map[string]interface{}{
		"reset_token":         token,
		"reset_token_expires": expiry,
	}).Error
	if err != nil {
		return billing.Internal(op, err)
	}
	link := strings.TrimRight(s.FrontendURL, "/") + "/reset-password?token=" + token
	if err := s.Mailer.SendPasswordReset(u.Email, u.Name, link); err != nil {
		s.Log.WithError(err).WithField("user_id", u.ID).Warn("password reset email failed")
	}
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, token, password string) error {
	const op = "auth.reset_password"
	token = strings.TrimSpace(token)
	if token == "" || len(password) < minPasswordLength {
		return billing.Validation(op, "token and a password of at least %d characters are required", minPasswordLength)
	}
	var u models.User
	err := s.DB.WithContext(ctx).
		Where("reset_token = ? AND reset_token_expires > ?", token, s.Clock()).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return billing.Validation(op, "reset token is invalid or expired")
		}
		return billing.Internal(op, err)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return billing.Internal(op, err)
	}
	err = s.DB.WithContext(ctx).Model(&u).Updates(map[string]interface{}{
		"password":            hash,
		"reset_token":         nil,
		"reset_token_expires": nil,
	}).Error
	if err != nil {
		return billing.Internal(op, err)
	}
	return nil
}
