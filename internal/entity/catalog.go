package entity

import "time"

type Currency struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"size:255;uniqueIndex;not null" json:"title"`
	Code   string `gorm:"size:10;uniqueIndex;not null" json:"code"`
	Symbol string `gorm:"size:10;uniqueIndex;not null" json:"symbol"`
}

type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:255;uniqueIndex;not null" json:"title"`
}

type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:255;uniqueIndex;not null" json:"title"`
}

type Artwork struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Stock       int       `gorm:"not null" json:"stock"`
	ImagePath   string    `gorm:"size:255" json:"image_path,omitempty"`
	CurrencyID  uint      `gorm:"not null" json:"currency_id"`
	Currency    Currency  `json:"currency"`
	CategoryID  uint      `gorm:"not null" json:"category_id"`
	Category    Category  `json:"category"`
	ArtistID    uint      `gorm:"not null;index" json:"artist_id"`
	Artist      User      `gorm:"foreignKey:ArtistID" json:"-"`
	Tags        []Tag     `gorm:"many2many:artwork_tags" json:"tags"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
