package entity

import "time"

// Target kinds an upvote can point at. The kind plus a numeric id form a
// tagged reference resolved by the engagement service; there is no foreign
// key from upvotes to either table.
const (
	TargetArtwork = "artwork"
	TargetComment = "comment"
)

// ValidTargetKind reports whether kind names an upvotable entity.
func ValidTargetKind(kind string) bool {
	return kind == TargetArtwork || kind == TargetComment
}

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `json:"-"`
	ArtworkID uint      `gorm:"not null;index" json:"artwork_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"`
	Replies   []Comment `gorm:"foreignKey:ParentID" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Upvote rows are keyed by (user, target kind, target id): the composite
// primary key is the at-most-one-upvote-per-user-per-target invariant.
type Upvote struct {
	UserID     uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	TargetKind string    `gorm:"size:20;primaryKey" json:"target_kind"`
	TargetID   uint      `gorm:"primaryKey;autoIncrement:false" json:"target_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
