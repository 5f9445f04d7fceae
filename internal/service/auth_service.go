package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pouriamv/art-market-api/internal/dto"
	"github.com/pouriamv/art-market-api/internal/entity"
	"github.com/pouriamv/art-market-api/internal/repository"
	"github.com/pouriamv/art-market-api/pkg/apperror"
	"github.com/pouriamv/art-market-api/pkg/mailer"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) error
	Login(ctx context.Context, input dto.LoginInput) (string, error)
	Profile(ctx context.Context, userID uint) (*dto.ProfileResponse, error)
	Logout(ctx context.Context, jti string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	mail      mailer.Mailer
	secret    string
	tokenTTL  time.Duration
	resetTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, mail mailer.Mailer, secret string, tokenTTL, resetTTL time.Duration) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mail:      mail,
		secret:    secret,
		tokenTTL:  tokenTTL,
		resetTTL:  resetTTL,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) error {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if exists {
		return apperror.New(http.StatusConflict, "User already exists", apperror.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		RoleID:       entity.RoleUserID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Backstop for a concurrent register with the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.New(http.StatusConflict, "User already exists", apperror.ErrConflict)
		}
		return err
	}

	return nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperror.New(http.StatusUnauthorized, "Invalid credentials", apperror.ErrUnauthorized)
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return "", apperror.New(http.StatusUnauthorized, "Invalid credentials", apperror.ErrUnauthorized)
	}

	return s.generateToken(user)
}

func (s *authService) Profile(ctx context.Context, userID uint) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "User not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	return &dto.ProfileResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		RoleID: user.RoleID,
		Role:   user.Role.Name,
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string) error {
	return s.tokenRepo.Block(ctx, jti)
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "User not found", apperror.ErrNotFound)
		}
		return err
	}

	token, err := s.generateResetToken(user.ID)
	if err != nil {
		return err
	}

	if err := s.mail.SendResetPasswordEmail(user.Email, token); err != nil {
		log.Printf("failed to send reset email to %s: %v", user.Email, err)
		return apperror.New(http.StatusInternalServerError, "Failed to send reset email", apperror.ErrInternal)
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, ok := s.verifyResetToken(token)
	if !ok {
		return apperror.New(http.StatusNotFound, "Invalid or expired reset token", apperror.ErrNotFound)
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "User not found", apperror.ErrNotFound)
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// generateToken signs a time-bounded HS256 access token. The jti is what the
// logout blocklist keys on.
func (s *authService) generateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		ID:        uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *authService) generateResetToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"reset_password": strconv.FormatUint(uint64(userID), 10),
		"exp":            now.Add(s.resetTTL).Unix(),
		"iat":            now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// verifyResetToken returns the embedded user id, or false if the signature
// is invalid or the token expired.
func (s *authService) verifyResetToken(tokenString string) (uint, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	idStr, ok := claims["reset_password"].(string)
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, false
	}

	return uint(id), true
}
