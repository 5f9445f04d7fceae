package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pouriamv/art-market-api/internal/bootstrap"
	"github.com/pouriamv/art-market-api/internal/dto"
	"github.com/pouriamv/art-market-api/internal/repository"
	"github.com/pouriamv/art-market-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type captureMailer struct {
	toEmail    string
	resetToken string
}

func (m *captureMailer) SendResetPasswordEmail(toEmail, resetToken string) error {
	m.toEmail = toEmail
	m.resetToken = resetToken
	return nil
}

func newAuthFixture(t *testing.T) (service.AuthService, *captureMailer) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))
	require.NoError(t, bootstrap.SeedRoles(db))

	mail := &captureMailer{}
	svc := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewTokenRepository(db),
		mail,
		"test-secret",
		time.Hour,
		time.Hour,
	)
	return svc, mail
}

func TestPasswordResetFlow(t *testing.T) {
	svc, mail := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, dto.RegisterInput{
		Name:            "Pouria",
		Email:           "pouria@example.com",
		Password:        "oldpassword",
		ConfirmPassword: "oldpassword",
	}))

	require.NoError(t, svc.ForgotPassword(ctx, "pouria@example.com"))
	require.Equal(t, "pouria@example.com", mail.toEmail)
	require.NotEmpty(t, mail.resetToken)

	require.NoError(t, svc.ResetPassword(ctx, mail.resetToken, "newpassword"))

	// Old password no longer works, the new one does.
	_, err := svc.Login(ctx, dto.LoginInput{Email: "pouria@example.com", Password: "oldpassword"})
	assert.Error(t, err)

	token, err := svc.Login(ctx, dto.LoginInput{Email: "pouria@example.com", Password: "newpassword"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestResetPasswordRejectsAccessToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, dto.RegisterInput{
		Name:            "Pouria",
		Email:           "pouria@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}))

	// An access token is signed with the same secret but carries no reset
	// claim, so it must not open the reset door.
	accessToken, err := svc.Login(ctx, dto.LoginInput{Email: "pouria@example.com", Password: "password123"})
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, accessToken, "hijacked1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid or expired reset token")
}

func TestResetPasswordExpiredToken(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))
	require.NoError(t, bootstrap.SeedRoles(db))

	mail := &captureMailer{}
	svc := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewTokenRepository(db),
		mail,
		"test-secret",
		time.Hour,
		-time.Minute, // reset tokens are born expired
	)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, dto.RegisterInput{
		Name:            "Pouria",
		Email:           "pouria@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}))
	require.NoError(t, svc.ForgotPassword(ctx, "pouria@example.com"))

	err = svc.ResetPassword(ctx, mail.resetToken, "newpassword")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid or expired reset token")
}
