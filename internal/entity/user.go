package entity

import "time"

// Fixed role ids, seeded at startup.
const (
	RoleAdminID  uint = 1
	RoleArtistID uint = 2
	RoleUserID   uint = 3

	RoleAdmin  = "admin"
	RoleArtist = "artist"
	RoleUser   = "user"
)

type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:80;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:80;not null" json:"name"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	RoleID       uint      `gorm:"not null;default:3" json:"role_id"`
	Role         Role      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TokenBlocklist stores the jti of every revoked access token. A token whose
// jti appears here is rejected by the auth middleware for its whole lifetime.
type TokenBlocklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JTI       string    `gorm:"size:36;index;not null" json:"jti"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TokenBlocklist) TableName() string {
	return "token_blocklist"
}
