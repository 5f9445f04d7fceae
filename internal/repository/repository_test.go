package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pouriamv/art-market-api/internal/bootstrap"
	"github.com/pouriamv/art-market-api/internal/entity"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))
	require.NoError(t, bootstrap.SeedRoles(db))
	require.NoError(t, bootstrap.SeedCurrencies(db))
	return db
}

// seedArtwork inserts a user, a category, and one artwork owned by that user.
func seedArtwork(t *testing.T, db *gorm.DB) (*entity.User, *entity.Artwork) {
	t.Helper()

	user := &entity.User{Name: "Vera", Email: "vera@example.com", PasswordHash: "x", RoleID: entity.RoleArtistID}
	require.NoError(t, db.Create(user).Error)

	category := &entity.Category{Title: "Painting"}
	require.NoError(t, db.Create(category).Error)

	artwork := &entity.Artwork{
		Title:       "Sunset",
		Description: "test piece",
		Price:       100,
		Stock:       1,
		CurrencyID:  1,
		CategoryID:  category.ID,
		ArtistID:    user.ID,
	}
	require.NoError(t, db.Create(artwork).Error)
	return user, artwork
}

func seedComment(t *testing.T, db *gorm.DB, userID, artworkID uint, parentID *uint) *entity.Comment {
	t.Helper()
	comment := &entity.Comment{Content: "c", UserID: userID, ArtworkID: artworkID, ParentID: parentID}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

var ctx = context.Background()
