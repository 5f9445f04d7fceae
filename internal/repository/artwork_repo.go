package repository

import (
	"context"

	"github.com/pouriamv/art-market-api/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArtworkRepository interface {
	Create(ctx context.Context, artwork *entity.Artwork) error
	FindByID(ctx context.Context, id uint) (*entity.Artwork, error)
	// FindByIDForArtist is the ownership-scoped lookup: it returns
	// gorm.ErrRecordNotFound when the artwork exists but belongs to
	// someone else, so callers can answer 404 without leaking existence.
	FindByIDForArtist(ctx context.Context, id, artistID uint) (*entity.Artwork, error)
	FindAll(ctx context.Context, search string, offset, limit int) ([]*entity.Artwork, int64, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*entity.Artwork, error)
	FindByArtist(ctx context.Context, artistID uint) ([]*entity.Artwork, error)
	Update(ctx context.Context, artwork *entity.Artwork, tags []entity.Tag) error
	UpdateImagePath(ctx context.Context, id uint, imagePath string) error
	Delete(ctx context.Context, id uint) error
}

type artworkRepository struct {
	db *gorm.DB
}

func NewArtworkRepository(db *gorm.DB) ArtworkRepository {
	return &artworkRepository{db: db}
}

func (r *artworkRepository) Create(ctx context.Context, artwork *entity.Artwork) error {
	return r.db.WithContext(ctx).Create(artwork).Error
}

func (r *artworkRepository) FindByID(ctx context.Context, id uint) (*entity.Artwork, error) {
	var artwork entity.Artwork
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Currency").
		Preload("Tags").
		Preload("Artist").
		First(&artwork, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &artwork, nil
}

func (r *artworkRepository) FindByIDForArtist(ctx context.Context, id, artistID uint) (*entity.Artwork, error) {
	var artwork entity.Artwork
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Currency").
		Preload("Tags").
		Where("id = ? AND artist_id = ?", id, artistID).
		First(&artwork).Error; err != nil {
		return nil, err
	}
	return &artwork, nil
}

func (r *artworkRepository) FindAll(ctx context.Context, search string, offset, limit int) ([]*entity.Artwork, int64, error) {
	var artworks []*entity.Artwork
	var total int64

	query := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Currency").
		Preload("Tags").
		Preload("Artist")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	if err := query.Model(&entity.Artwork{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&artworks).Error; err != nil {
		return nil, 0, err
	}

	return artworks, total, nil
}

func (r *artworkRepository) FindByIDs(ctx context.Context, ids []uint) ([]*entity.Artwork, error) {
	var artworks []*entity.Artwork
	if len(ids) == 0 {
		return artworks, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Currency").
		Preload("Tags").
		Preload("Artist").
		Where("id IN ?", ids).
		Find(&artworks).Error
	return artworks, err
}

func (r *artworkRepository) FindByArtist(ctx context.Context, artistID uint) ([]*entity.Artwork, error) {
	var artworks []*entity.Artwork
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Currency").
		Preload("Tags").
		Where("artist_id = ?", artistID).
		Order("created_at DESC").
		Find(&artworks).Error
	return artworks, err
}

// Update saves the artwork's scalar fields and replaces its tag set with
// exactly the given tags; old tags not in the new set are detached.
func (r *artworkRepository) Update(ctx context.Context, artwork *entity.Artwork, tags []entity.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(artwork).Error; err != nil {
			return err
		}
		return tx.Model(artwork).Association("Tags").Replace(tags)
	})
}

func (r *artworkRepository) UpdateImagePath(ctx context.Context, id uint, imagePath string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Artwork{}).
		Where("id = ?", id).
		Update("image_path", imagePath).Error
}

// Delete removes the artwork together with its comments (replies included),
// every upvote pointing at the artwork or those comments, and its tag links.
func (r *artworkRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&entity.Comment{}).
			Where("artwork_id = ?", id).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		if len(commentIDs) > 0 {
			if err := tx.Where("target_kind = ? AND target_id IN ?", entity.TargetComment, commentIDs).
				Delete(&entity.Upvote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("artwork_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("target_kind = ? AND target_id = ?", entity.TargetArtwork, id).
			Delete(&entity.Upvote{}).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM artwork_tags WHERE artwork_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&entity.Artwork{}, id).Error
	})
}
