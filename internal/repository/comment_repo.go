package repository

import (
	"context"

	"github.com/pouriamv/art-market-api/internal/entity"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id uint) (*entity.Comment, error)
	FindRootsByArtwork(ctx context.Context, artworkID uint) ([]*entity.Comment, error)
	FindReplies(ctx context.Context, parentID uint) ([]*entity.Comment, error)
	CountReplies(ctx context.Context, parentID uint) (int64, error)
	// DeleteTree removes the comment, every descendant reply, and the
	// upvotes pointing at any of them, in one transaction.
	DeleteTree(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uint) (*entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindRootsByArtwork(ctx context.Context, artworkID uint) ([]*entity.Comment, error) {
	var comments []*entity.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("artwork_id = ? AND parent_id IS NULL", artworkID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) FindReplies(ctx context.Context, parentID uint) ([]*entity.Comment, error) {
	var comments []*entity.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("parent_id = ?", parentID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) CountReplies(ctx context.Context, parentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Comment{}).
		Where("parent_id = ?", parentID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) DeleteTree(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Walk the reply tree level by level; no recursive CTE needed for
		// the shallow trees comments form in practice.
		all := []uint{id}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var next []uint
			if err := tx.Model(&entity.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &next).Error; err != nil {
				return err
			}
			all = append(all, next...)
			frontier = next
		}

		if err := tx.Where("target_kind = ? AND target_id IN ?", entity.TargetComment, all).
			Delete(&entity.Upvote{}).Error; err != nil {
			return err
		}

		return tx.Where("id IN ?", all).Delete(&entity.Comment{}).Error
	})
}
