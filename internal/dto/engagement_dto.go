package dto

import "time"

type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID         uint              `json:"id"`
	Content    string            `json:"content"`
	UserID     uint              `json:"user_id"`
	AuthorName string            `json:"author_name,omitempty"`
	ArtworkID  uint              `json:"artwork_id"`
	ParentID   *uint             `json:"parent_id,omitempty"`
	Upvotes    int64             `json:"upvotes"`
	ReplyCount int64             `json:"reply_count"`
	Replies    []CommentResponse `json:"replies,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}
