package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/pouriamv/art-market-api/internal/dto"
	"github.com/pouriamv/art-market-api/internal/entity"
	"github.com/pouriamv/art-market-api/internal/repository"
	"github.com/pouriamv/art-market-api/pkg/apperror"
	"github.com/pouriamv/art-market-api/pkg/storage"
	"gorm.io/gorm"
)

type ArtworkService interface {
	// Artist-scoped operations. All lookups are filtered by artist id and
	// answer not-found for artworks the caller does not own.
	CreateArtwork(ctx context.Context, artistID uint, req dto.ArtworkInput) (uint, error)
	GetArtistArtwork(ctx context.Context, artistID, artworkID uint) (*dto.ArtworkResponse, error)
	UpdateArtwork(ctx context.Context, artistID, artworkID uint, req dto.ArtworkInput) error
	DeleteArtwork(ctx context.Context, artistID, artworkID uint) error
	GetDashboard(ctx context.Context, artistID uint) ([]dto.ArtworkResponse, error)
	UploadArtworkImage(ctx context.Context, artistID, artworkID uint, r io.Reader, fileName string) (string, error)

	// Public store reads.
	ListArtworks(ctx context.Context, search string, page, limit int) (*dto.PaginatedArtworks, error)
	GetArtwork(ctx context.Context, artworkID uint) (*dto.ArtworkResponse, error)

	ListTags(ctx context.Context) ([]entity.Tag, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	ListCurrencies(ctx context.Context) ([]entity.Currency, error)
}

type artworkService struct {
	artworkRepo  repository.ArtworkRepository
	taxonomyRepo repository.TaxonomyRepository
	upvoteRepo   repository.UpvoteRepository
	search       SearchService
	imageStorage storage.ImageStorage
}

func NewArtworkService(
	artworkRepo repository.ArtworkRepository,
	taxonomyRepo repository.TaxonomyRepository,
	upvoteRepo repository.UpvoteRepository,
	search SearchService,
	imageStorage storage.ImageStorage,
) ArtworkService {
	return &artworkService{
		artworkRepo:  artworkRepo,
		taxonomyRepo: taxonomyRepo,
		upvoteRepo:   upvoteRepo,
		search:       search,
		imageStorage: imageStorage,
	}
}

func (s *artworkService) CreateArtwork(ctx context.Context, artistID uint, req dto.ArtworkInput) (uint, error) {
	if _, err := s.taxonomyRepo.FindCurrencyByID(ctx, req.CurrencyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperror.New(http.StatusNotFound, "Currency not found", apperror.ErrNotFound)
		}
		return 0, err
	}

	category, err := s.taxonomyRepo.FindOrCreateCategory(ctx, req.CategoryName)
	if err != nil {
		return 0, err
	}

	tags, err := s.resolveTags(ctx, req.TagNames)
	if err != nil {
		return 0, err
	}

	artwork := &entity.Artwork{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
		CurrencyID:  req.CurrencyID,
		CategoryID:  category.ID,
		ArtistID:    artistID,
		Tags:        tags,
	}

	if err := s.artworkRepo.Create(ctx, artwork); err != nil {
		return 0, err
	}

	s.syncSearchIndex(ctx, artwork.ID)

	return artwork.ID, nil
}

func (s *artworkService) GetArtistArtwork(ctx context.Context, artistID, artworkID uint) (*dto.ArtworkResponse, error) {
	artwork, err := s.artworkRepo.FindByIDForArtist(ctx, artworkID, artistID)
	if err != nil {
		return nil, s.mapArtworkErr(err)
	}
	return s.buildResponse(ctx, artwork), nil
}

func (s *artworkService) UpdateArtwork(ctx context.Context, artistID, artworkID uint, req dto.ArtworkInput) error {
	artwork, err := s.artworkRepo.FindByIDForArtist(ctx, artworkID, artistID)
	if err != nil {
		return s.mapArtworkErr(err)
	}

	if _, err := s.taxonomyRepo.FindCurrencyByID(ctx, req.CurrencyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "Currency not found", apperror.ErrNotFound)
		}
		return err
	}

	category, err := s.taxonomyRepo.FindOrCreateCategory(ctx, req.CategoryName)
	if err != nil {
		return err
	}

	tags, err := s.resolveTags(ctx, req.TagNames)
	if err != nil {
		return err
	}

	artwork.Title = req.Title
	artwork.Description = req.Description
	artwork.Price = *req.Price
	artwork.Stock = *req.Stock
	artwork.CurrencyID = req.CurrencyID
	artwork.CategoryID = category.ID

	if err := s.artworkRepo.Update(ctx, artwork, tags); err != nil {
		return err
	}

	s.syncSearchIndex(ctx, artwork.ID)

	return nil
}

func (s *artworkService) DeleteArtwork(ctx context.Context, artistID, artworkID uint) error {
	artwork, err := s.artworkRepo.FindByIDForArtist(ctx, artworkID, artistID)
	if err != nil {
		return s.mapArtworkErr(err)
	}

	if err := s.artworkRepo.Delete(ctx, artwork.ID); err != nil {
		return err
	}

	if s.search != nil {
		s.search.DeleteArtwork(artwork.ID)
	}
	if s.imageStorage != nil && artwork.ImagePath != "" {
		if err := s.imageStorage.DeleteImage(ctx, artwork.ImagePath); err != nil {
			log.Printf("failed to delete image for artwork %d: %v", artwork.ID, err)
		}
	}

	return nil
}

func (s *artworkService) GetDashboard(ctx context.Context, artistID uint) ([]dto.ArtworkResponse, error) {
	artworks, err := s.artworkRepo.FindByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ArtworkResponse, 0, len(artworks))
	for _, artwork := range artworks {
		responses = append(responses, *s.buildResponse(ctx, artwork))
	}
	return responses, nil
}

func (s *artworkService) UploadArtworkImage(ctx context.Context, artistID, artworkID uint, r io.Reader, fileName string) (string, error) {
	if s.imageStorage == nil {
		return "", apperror.New(http.StatusServiceUnavailable, "Image storage is not configured", apperror.ErrInternal)
	}

	artwork, err := s.artworkRepo.FindByIDForArtist(ctx, artworkID, artistID)
	if err != nil {
		return "", s.mapArtworkErr(err)
	}

	url, err := s.imageStorage.UploadImage(ctx, r, fileName)
	if err != nil {
		return "", err
	}

	if err := s.artworkRepo.UpdateImagePath(ctx, artwork.ID, url); err != nil {
		return "", err
	}

	// Replacing an image orphans the previous upload; clean it up.
	if artwork.ImagePath != "" {
		if err := s.imageStorage.DeleteImage(ctx, artwork.ImagePath); err != nil {
			log.Printf("failed to delete previous image for artwork %d: %v", artwork.ID, err)
		}
	}

	return url, nil
}

func (s *artworkService) ListArtworks(ctx context.Context, search string, page, limit int) (*dto.PaginatedArtworks, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	var (
		artworks []*entity.Artwork
		total    int64
		err      error
	)

	if search != "" && s.search != nil {
		artworks, total, err = s.searchViaIndex(ctx, search, offset, limit)
	} else {
		artworks, total, err = s.artworkRepo.FindAll(ctx, search, offset, limit)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.ArtworkResponse, 0, len(artworks))
	for _, artwork := range artworks {
		items = append(items, *s.buildResponse(ctx, artwork))
	}

	return &dto.PaginatedArtworks{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *artworkService) GetArtwork(ctx context.Context, artworkID uint) (*dto.ArtworkResponse, error) {
	artwork, err := s.artworkRepo.FindByID(ctx, artworkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound,
				fmt.Sprintf("Artwork with id %d not found", artworkID), apperror.ErrNotFound)
		}
		return nil, err
	}
	return s.buildResponse(ctx, artwork), nil
}

func (s *artworkService) ListTags(ctx context.Context) ([]entity.Tag, error) {
	return s.taxonomyRepo.ListTags(ctx)
}

func (s *artworkService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.taxonomyRepo.ListCategories(ctx)
}

func (s *artworkService) ListCurrencies(ctx context.Context) ([]entity.Currency, error) {
	return s.taxonomyRepo.ListCurrencies(ctx)
}

// searchViaIndex resolves search hits through Meilisearch, then loads the
// rows and restores the index's relevance ordering.
func (s *artworkService) searchViaIndex(ctx context.Context, query string, offset, limit int) ([]*entity.Artwork, int64, error) {
	ids, total, err := s.search.SearchArtworks(query, offset, limit)
	if err != nil {
		log.Printf("meilisearch query failed, falling back to database: %v", err)
		return s.artworkRepo.FindAll(ctx, query, offset, limit)
	}

	artworks, err := s.artworkRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	byID := make(map[uint]*entity.Artwork, len(artworks))
	for _, artwork := range artworks {
		byID[artwork.ID] = artwork
	}

	ordered := make([]*entity.Artwork, 0, len(ids))
	for _, id := range ids {
		if artwork, ok := byID[id]; ok {
			ordered = append(ordered, artwork)
		}
	}

	return ordered, total, nil
}

func (s *artworkService) resolveTags(ctx context.Context, tagNames []string) ([]entity.Tag, error) {
	tags := make([]entity.Tag, 0, len(tagNames))
	seen := make(map[string]bool, len(tagNames))
	for _, name := range tagNames {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := s.taxonomyRepo.FindOrCreateTag(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *artworkService) buildResponse(ctx context.Context, artwork *entity.Artwork) *dto.ArtworkResponse {
	tags := make([]string, 0, len(artwork.Tags))
	for _, tag := range artwork.Tags {
		tags = append(tags, tag.Title)
	}

	upvotes, err := s.upvoteRepo.Count(ctx, entity.TargetArtwork, artwork.ID)
	if err != nil {
		log.Printf("failed to count upvotes for artwork %d: %v", artwork.ID, err)
	}

	return &dto.ArtworkResponse{
		ID:          artwork.ID,
		Title:       artwork.Title,
		Description: artwork.Description,
		Price:       artwork.Price,
		Stock:       artwork.Stock,
		ImagePath:   artwork.ImagePath,
		Category:    artwork.Category,
		Currency:    artwork.Currency,
		Tags:        tags,
		ArtistID:    artwork.ArtistID,
		ArtistName:  artwork.Artist.Name,
		Upvotes:     upvotes,
		CreatedAt:   artwork.CreatedAt,
	}
}

func (s *artworkService) mapArtworkErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.New(http.StatusNotFound, "Artwork not found", apperror.ErrNotFound)
	}
	return err
}

// syncSearchIndex reloads the artwork with its associations and pushes it to
// the search index.
func (s *artworkService) syncSearchIndex(ctx context.Context, artworkID uint) {
	if s.search == nil {
		return
	}
	artwork, err := s.artworkRepo.FindByID(ctx, artworkID)
	if err != nil {
		log.Printf("failed to load artwork %d for indexing: %v", artworkID, err)
		return
	}
	s.search.IndexArtwork(artwork)
}
