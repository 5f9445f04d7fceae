package dto

import (
	"time"

	"github.com/pouriamv/art-market-api/internal/entity"
)

// ArtworkInput uses pointers for the numeric fields so that a legitimate
// zero (free artwork, zero stock) still satisfies the required binding.
type ArtworkInput struct {
	Title        string   `json:"title" binding:"required,max=255"`
	Price        *float64 `json:"price" binding:"required,gte=0"`
	CurrencyID   uint     `json:"currency_id" binding:"required"`
	Stock        *int     `json:"stock" binding:"required,gte=0"`
	Description  string   `json:"description" binding:"required"`
	CategoryName string   `json:"category_name" binding:"required"`
	TagNames     []string `json:"tag_names"`
}

type ArtworkResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Stock       int             `json:"stock"`
	ImagePath   string          `json:"image_path,omitempty"`
	Category    entity.Category `json:"category"`
	Currency    entity.Currency `json:"currency"`
	Tags        []string        `json:"tags"`
	ArtistID    uint            `json:"artist_id"`
	ArtistName  string          `json:"artist_name,omitempty"`
	Upvotes     int64           `json:"upvotes"`
	CreatedAt   time.Time       `json:"created_at"`
}

type PaginatedArtworks struct {
	Items []ArtworkResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
