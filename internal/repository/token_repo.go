package repository

import (
	"context"

	"github.com/pouriamv/art-market-api/internal/entity"
	"gorm.io/gorm"
)

// TokenRepository persists revoked token ids. Rows are never removed; a
// blocklisted jti stays invalid for the token's whole lifetime.
type TokenRepository interface {
	Block(ctx context.Context, jti string) error
	IsBlocked(ctx context.Context, jti string) (bool, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Block(ctx context.Context, jti string) error {
	return r.db.WithContext(ctx).Create(&entity.TokenBlocklist{JTI: jti}).Error
}

func (r *tokenRepository) IsBlocked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.TokenBlocklist{}).
		Where("jti = ?", jti).
		Count(&count).Error
	return count > 0, err
}
