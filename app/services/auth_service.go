package services

import (
	"context"
	"errors"
	"time"

	"github.com/shashiranjanraj/merchdesk/app/models"
	"github.com/shashiranjanraj/merchdesk/pkg/auth"
	"github.com/shashiranjanraj/merchdesk/pkg/logger"
	"gorm.io/gorm"
)

// AuthService signs dashboard operators in and out and keeps the audit
// trail in auth_logs.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type Session struct {
	Token string        `json:"token"`
	Admin *models.Admin `json:"admin"`
}

// SignIn verifies the credentials and returns a fresh session. An unknown
// email and a wrong password produce the same error so the response never
// reveals which half failed. The audit row is best effort: a failed insert
// is logged but does not block the signin.
func (s *AuthService) SignIn(ctx context.Context, email, password, ip string) (*Session, error) {
	var admin models.Admin
	err := s.db.Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(admin.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(admin.AdminID, admin.Email, admin.Name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.db.Create(&models.AuthLog{
		AdminID:    admin.AdminID,
		IPAddress:  ip,
		SigninDate: now,
		LogDate:    now,
	}).Error; err != nil {
		logger.WithCtx(ctx).Error("auth log insert failed", "admin_id", admin.AdminID, "error", err)
	}

	return &Session{Token: token, Admin: &admin}, nil
}

// SignOut stamps the signout date on the admin's most recent open session.
// Signing out twice, or with no open session, is a no-op.
func (s *AuthService) SignOut(ctx context.Context, adminID string) error {
	now := time.Now().UTC()
	return s.db.Exec(`
		UPDATE auth_logs SET signout_date = ?
		WHERE log_id = (
			SELECT log_id FROM auth_logs
			WHERE admin_id = ? AND signout_date IS NULL
			ORDER BY signin_date DESC, log_id DESC
			LIMIT 1
		)`, now, adminID,
	).Error
}

// AdminByID returns the admin record for a validated session, or nil when
// the account has been removed since the token was issued.
func (s *AuthService) AdminByID(adminID string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.Where("admin_id = ?", adminID).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
