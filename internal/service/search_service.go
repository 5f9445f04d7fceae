package service

import (
	"log"
	"strconv"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pouriamv/art-market-api/internal/entity"
)

// SearchService keeps an "artworks" Meilisearch index in sync with the
// catalog and answers store search queries. It is optional: callers hold a
// nil SearchService when no Meilisearch host is configured and fall back to
// SQL filtering.
type SearchService interface {
	IndexArtwork(artwork *entity.Artwork)
	DeleteArtwork(id uint)
	SearchArtworks(query string, offset, limit int) ([]uint, int64, error)
}

type meiliArtworkDoc struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	ArtistID    uint     `json:"artist_id"`
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(host, apiKey string) SearchService {
	if host == "" {
		return nil
	}

	client := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndex()
	return s
}

func (s *searchService) initIndex() {
	filterable := []interface{}{"category", "tags", "artist_id"}
	if _, err := s.client.Index("artworks").UpdateFilterableAttributes(&filterable); err != nil {
		log.Printf("meilisearch: failed to configure artworks index: %v", err)
	}
}

// IndexArtwork is best effort: a search index that lags behind the database
// must never fail a catalog write.
func (s *searchService) IndexArtwork(artwork *entity.Artwork) {
	doc := s.buildDoc(artwork)

	primaryKey := "id"
	if _, err := s.client.Index("artworks").AddDocuments([]meiliArtworkDoc{doc}, &primaryKey); err != nil {
		log.Printf("meilisearch: failed to index artwork %d: %v", artwork.ID, err)
	}
}

// buildDoc maps an artwork onto its index document. Title and description
// are user-authored; strip any markup before it reaches the index.
func (s *searchService) buildDoc(artwork *entity.Artwork) meiliArtworkDoc {
	tags := make([]string, 0, len(artwork.Tags))
	for _, tag := range artwork.Tags {
		tags = append(tags, tag.Title)
	}

	return meiliArtworkDoc{
		ID:          artwork.ID,
		Title:       s.sanitizer.Sanitize(artwork.Title),
		Description: s.sanitizer.Sanitize(artwork.Description),
		Category:    artwork.Category.Title,
		Tags:        tags,
		ArtistID:    artwork.ArtistID,
	}
}

func (s *searchService) DeleteArtwork(id uint) {
	if _, err := s.client.Index("artworks").DeleteDocument(strconv.FormatUint(uint64(id), 10)); err != nil {
		log.Printf("meilisearch: failed to delete artwork %d: %v", id, err)
	}
}

func (s *searchService) SearchArtworks(query string, offset, limit int) ([]uint, int64, error) {
	resp, err := s.client.Index("artworks").Search(query, &meilisearch.SearchRequest{
		Offset: int64(offset),
		Limit:  int64(limit),
	})
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		var doc meiliArtworkDoc
		if err := hit.Decode(&doc); err != nil {
			log.Printf("meilisearch: failed to decode hit: %v", err)
			continue
		}
		ids = append(ids, doc.ID)
	}

	return ids, resp.EstimatedTotalHits, nil
}
