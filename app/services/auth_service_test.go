package services_test

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/merchdesk/app/models"
	"github.com/shashiranjanraj/merchdesk/app/services"
	"github.com/shashiranjanraj/merchdesk/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAdmin(t *testing.T, db *gorm.DB, id, email, password string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Admin{
		AdminID:  id,
		Name:     "Operator",
		Email:    email,
		Password: hash,
	}).Error)
}

func TestSignInIssuesValidToken(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)
	seedAdmin(t, db, "ADM_1", "ops@merchdesk.local", "hunter2")

	session, err := svc.SignIn(context.Background(), "ops@merchdesk.local", "hunter2", "10.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "ADM_1", session.Admin.AdminID)

	claims, err := auth.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "ADM_1", claims.AdminID)
	assert.Equal(t, "ops@merchdesk.local", claims.Email)

	// Signin leaves an open audit row.
	var log models.AuthLog
	require.NoError(t, db.Where("admin_id = ?", "ADM_1").First(&log).Error)
	assert.Equal(t, "10.0.0.1", log.IPAddress)
	assert.Nil(t, log.SignoutDate)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)
	seedAdmin(t, db, "ADM_1", "ops@merchdesk.local", "hunter2")

	// Wrong password and unknown email fail identically.
	_, err := svc.SignIn(context.Background(), "ops@merchdesk.local", "wrong", "10.0.0.1")
	wrongPass := err
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.SignIn(context.Background(), "ghost@merchdesk.local", "hunter2", "10.0.0.1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), err.Error())

	// Failed attempts never write an audit row.
	var count int64
	require.NoError(t, db.Model(&models.AuthLog{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSignOutStampsLatestOpenSession(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)
	seedAdmin(t, db, "ADM_1", "ops@merchdesk.local", "hunter2")

	_, err := svc.SignIn(context.Background(), "ops@merchdesk.local", "hunter2", "10.0.0.1")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background(), "ADM_1"))

	var log models.AuthLog
	require.NoError(t, db.Where("admin_id = ?", "ADM_1").First(&log).Error)
	require.NotNil(t, log.SignoutDate)

	// A second signout has nothing left to stamp and stays a no-op.
	first := *log.SignoutDate
	require.NoError(t, svc.SignOut(context.Background(), "ADM_1"))
	require.NoError(t, db.Where("admin_id = ?", "ADM_1").First(&log).Error)
	assert.Equal(t, first, *log.SignoutDate)
}

func TestAdminByIDMissingAccount(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	admin, err := svc.AdminByID("GONE")
	require.NoError(t, err)
	assert.Nil(t, admin)
}
