package repository

import (
	"context"
	"strings"

	"github.com/pouriamv/art-market-api/internal/entity"
	"gorm.io/gorm"
)

// TaxonomyRepository covers the small lookup tables artworks hang off:
// categories and tags (created on demand during artwork writes) and the
// seeded currency set.
type TaxonomyRepository interface {
	FindOrCreateCategory(ctx context.Context, title string) (*entity.Category, error)
	FindOrCreateTag(ctx context.Context, title string) (*entity.Tag, error)
	FindCurrencyByID(ctx context.Context, id uint) (*entity.Currency, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	ListTags(ctx context.Context) ([]entity.Tag, error)
	ListCurrencies(ctx context.Context) ([]entity.Currency, error)
}

type taxonomyRepository struct {
	db *gorm.DB
}

func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) FindOrCreateCategory(ctx context.Context, title string) (*entity.Category, error) {
	category := entity.Category{Title: strings.TrimSpace(title)}
	if err := r.db.WithContext(ctx).
		Where("title = ?", category.Title).
		FirstOrCreate(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *taxonomyRepository) FindOrCreateTag(ctx context.Context, title string) (*entity.Tag, error) {
	tag := entity.Tag{Title: strings.TrimSpace(title)}
	if err := r.db.WithContext(ctx).
		Where("title = ?", tag.Title).
		FirstOrCreate(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *taxonomyRepository) FindCurrencyByID(ctx context.Context, id uint) (*entity.Currency, error) {
	var currency entity.Currency
	if err := r.db.WithContext(ctx).First(&currency, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &currency, nil
}

func (r *taxonomyRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).Order("title ASC").Find(&categories).Error
	return categories, err
}

func (r *taxonomyRepository) ListTags(ctx context.Context) ([]entity.Tag, error) {
	var tags []entity.Tag
	err := r.db.WithContext(ctx).Order("title ASC").Find(&tags).Error
	return tags, err
}

func (r *taxonomyRepository) ListCurrencies(ctx context.Context) ([]entity.Currency, error) {
	var currencies []entity.Currency
	err := r.db.WithContext(ctx).Order("id ASC").Find(&currencies).Error
	return currencies, err
}
