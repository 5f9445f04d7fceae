package repository

import (
	"context"

	"github.com/pouriamv/art-market-api/internal/entity"
	"gorm.io/gorm"
)

type UpvoteRepository interface {
	Exists(ctx context.Context, userID uint, targetKind string, targetID uint) (bool, error)
	Create(ctx context.Context, upvote *entity.Upvote) error
	// Delete returns the number of rows removed so callers can tell a
	// successful removal from a missing upvote.
	Delete(ctx context.Context, userID uint, targetKind string, targetID uint) (int64, error)
	Count(ctx context.Context, targetKind string, targetID uint) (int64, error)
}

type upvoteRepository struct {
	db *gorm.DB
}

func NewUpvoteRepository(db *gorm.DB) UpvoteRepository {
	return &upvoteRepository{db: db}
}

func (r *upvoteRepository) Exists(ctx context.Context, userID uint, targetKind string, targetID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Upvote{}).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, targetKind, targetID).
		Count(&count).Error
	return count > 0, err
}

func (r *upvoteRepository) Create(ctx context.Context, upvote *entity.Upvote) error {
	return r.db.WithContext(ctx).Create(upvote).Error
}

func (r *upvoteRepository) Delete(ctx context.Context, userID uint, targetKind string, targetID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, targetKind, targetID).
		Delete(&entity.Upvote{})
	return result.RowsAffected, result.Error
}

func (r *upvoteRepository) Count(ctx context.Context, targetKind string, targetID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Upvote{}).
		Where("target_kind = ? AND target_id = ?", targetKind, targetID).
		Count(&count).Error
	return count, err
}
