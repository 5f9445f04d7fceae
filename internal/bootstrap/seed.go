package bootstrap

import (
	"log"

	"github.com/pouriamv/art-market-api/internal/entity"
	"gorm.io/gorm"
)

// Migrate applies the schema for every entity the application owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.TokenBlocklist{},
		&entity.Currency{},
		&entity.Category{},
		&entity.Tag{},
		&entity.Artwork{},
		&entity.Comment{},
		&entity.Upvote{},
	)
}

// SeedRoles inserts the fixed role set. Role ids are stable because the
// access-control middleware and registration default depend on them.
func SeedRoles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Role{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	roles := []entity.Role{
		{ID: entity.RoleAdminID, Name: entity.RoleAdmin},
		{ID: entity.RoleArtistID, Name: entity.RoleArtist},
		{ID: entity.RoleUserID, Name: entity.RoleUser},
	}
	if err := db.Create(&roles).Error; err != nil {
		return err
	}
	log.Println("seeded roles")
	return nil
}

// SeedCurrencies inserts the starter currency set when the table is empty.
func SeedCurrencies(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Currency{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	currencies := []entity.Currency{
		{Title: "Euro", Code: "EUR", Symbol: "€"},
		{Title: "US Dollar", Code: "USD", Symbol: "$"},
		{Title: "Canadian Dollar", Code: "CAD", Symbol: "C$"},
		{Title: "Iranian Rial", Code: "IRR", Symbol: "﷼"},
	}
	if err := db.Create(&currencies).Error; err != nil {
		return err
	}
	log.Println("seeded currencies")
	return nil
}
