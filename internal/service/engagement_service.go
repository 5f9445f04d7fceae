package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/pouriamv/art-market-api/internal/dto"
	"github.com/pouriamv/art-market-api/internal/entity"
	"github.com/pouriamv/art-market-api/internal/repository"
	"github.com/pouriamv/art-market-api/pkg/apperror"
	"gorm.io/gorm"
)

type EngagementService interface {
	Upvote(ctx context.Context, userID uint, targetKind string, targetID uint) error
	RemoveUpvote(ctx context.Context, userID uint, targetKind string, targetID uint) error
	CountUpvotes(ctx context.Context, targetKind string, targetID uint) (int64, error)

	AddComment(ctx context.Context, userID, artworkID uint, content string) (uint, error)
	ListComments(ctx context.Context, artworkID uint) ([]dto.CommentResponse, error)
	GetComment(ctx context.Context, commentID uint) (*dto.CommentResponse, error)
	AddReply(ctx context.Context, userID, parentID uint, content string) (uint, error)
	DeleteComment(ctx context.Context, userID, commentID uint) error
}

type engagementService struct {
	upvoteRepo  repository.UpvoteRepository
	commentRepo repository.CommentRepository
	artworkRepo repository.ArtworkRepository
}

func NewEngagementService(
	upvoteRepo repository.UpvoteRepository,
	commentRepo repository.CommentRepository,
	artworkRepo repository.ArtworkRepository,
) EngagementService {
	return &engagementService{
		upvoteRepo:  upvoteRepo,
		commentRepo: commentRepo,
		artworkRepo: artworkRepo,
	}
}

// resolveTarget checks the tagged (kind, id) reference: bad request for an
// unknown kind, not found when no row of that kind has the id.
func (s *engagementService) resolveTarget(ctx context.Context, targetKind string, targetID uint) error {
	switch targetKind {
	case entity.TargetArtwork:
		if _, err := s.artworkRepo.FindByID(ctx, targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(http.StatusNotFound,
					fmt.Sprintf("Artwork with id %d not found", targetID), apperror.ErrNotFound)
			}
			return err
		}
	case entity.TargetComment:
		if _, err := s.commentRepo.FindByID(ctx, targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(http.StatusNotFound,
					fmt.Sprintf("Comment with id %d not found", targetID), apperror.ErrNotFound)
			}
			return err
		}
	default:
		return apperror.New(http.StatusBadRequest, "Invalid target type", apperror.ErrBadRequest)
	}
	return nil
}

func (s *engagementService) Upvote(ctx context.Context, userID uint, targetKind string, targetID uint) error {
	if err := s.resolveTarget(ctx, targetKind, targetID); err != nil {
		return err
	}

	exists, err := s.upvoteRepo.Exists(ctx, userID, targetKind, targetID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.New(http.StatusConflict,
			fmt.Sprintf("%s already upvoted", targetKind), apperror.ErrConflict)
	}

	upvote := &entity.Upvote{
		UserID:     userID,
		TargetKind: targetKind,
		TargetID:   targetID,
	}
	if err := s.upvoteRepo.Create(ctx, upvote); err != nil {
		// Two concurrent upvotes race past the existence check; the
		// composite primary key rejects the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.New(http.StatusConflict,
				fmt.Sprintf("%s already upvoted", targetKind), apperror.ErrConflict)
		}
		return err
	}

	return nil
}

func (s *engagementService) RemoveUpvote(ctx context.Context, userID uint, targetKind string, targetID uint) error {
	if err := s.resolveTarget(ctx, targetKind, targetID); err != nil {
		return err
	}

	removed, err := s.upvoteRepo.Delete(ctx, userID, targetKind, targetID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return apperror.New(http.StatusNotFound, "No upvote found", apperror.ErrNotFound)
	}

	return nil
}

func (s *engagementService) CountUpvotes(ctx context.Context, targetKind string, targetID uint) (int64, error) {
	if err := s.resolveTarget(ctx, targetKind, targetID); err != nil {
		return 0, err
	}
	return s.upvoteRepo.Count(ctx, targetKind, targetID)
}

func (s *engagementService) AddComment(ctx context.Context, userID, artworkID uint, content string) (uint, error) {
	if _, err := s.artworkRepo.FindByID(ctx, artworkID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperror.New(http.StatusNotFound,
				fmt.Sprintf("Artwork with id %d not found", artworkID), apperror.ErrNotFound)
		}
		return 0, err
	}

	comment := &entity.Comment{
		Content:   content,
		UserID:    userID,
		ArtworkID: artworkID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return 0, err
	}

	return comment.ID, nil
}

func (s *engagementService) ListComments(ctx context.Context, artworkID uint) ([]dto.CommentResponse, error) {
	if _, err := s.artworkRepo.FindByID(ctx, artworkID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound,
				fmt.Sprintf("Artwork with id %d not found", artworkID), apperror.ErrNotFound)
		}
		return nil, err
	}

	comments, err := s.commentRepo.FindRootsByArtwork(ctx, artworkID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, *s.buildResponse(ctx, comment, false))
	}
	return responses, nil
}

func (s *engagementService) GetComment(ctx context.Context, commentID uint) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound,
				fmt.Sprintf("Comment with id %d not found", commentID), apperror.ErrNotFound)
		}
		return nil, err
	}

	return s.buildResponse(ctx, comment, true), nil
}

// AddReply inserts a child comment; the reply lives on the same artwork as
// its parent.
func (s *engagementService) AddReply(ctx context.Context, userID, parentID uint, content string) (uint, error) {
	parent, err := s.commentRepo.FindByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperror.New(http.StatusNotFound,
				fmt.Sprintf("Comment with id %d not found", parentID), apperror.ErrNotFound)
		}
		return 0, err
	}

	reply := &entity.Comment{
		Content:   content,
		UserID:    userID,
		ArtworkID: parent.ArtworkID,
		ParentID:  &parent.ID,
	}
	if err := s.commentRepo.Create(ctx, reply); err != nil {
		return 0, err
	}

	return reply.ID, nil
}

func (s *engagementService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound,
				fmt.Sprintf("Comment with id %d not found", commentID), apperror.ErrNotFound)
		}
		return err
	}

	if comment.UserID != userID {
		return apperror.New(http.StatusForbidden, "You can only delete your own comments", apperror.ErrForbidden)
	}

	return s.commentRepo.DeleteTree(ctx, comment.ID)
}

func (s *engagementService) buildResponse(ctx context.Context, comment *entity.Comment, withReplies bool) *dto.CommentResponse {
	upvotes, err := s.upvoteRepo.Count(ctx, entity.TargetComment, comment.ID)
	if err != nil {
		log.Printf("failed to count upvotes for comment %d: %v", comment.ID, err)
	}

	replyCount, err := s.commentRepo.CountReplies(ctx, comment.ID)
	if err != nil {
		log.Printf("failed to count replies for comment %d: %v", comment.ID, err)
	}

	resp := &dto.CommentResponse{
		ID:         comment.ID,
		Content:    comment.Content,
		UserID:     comment.UserID,
		AuthorName: comment.User.Name,
		ArtworkID:  comment.ArtworkID,
		ParentID:   comment.ParentID,
		Upvotes:    upvotes,
		ReplyCount: replyCount,
		CreatedAt:  comment.CreatedAt,
	}

	if withReplies {
		replies, err := s.commentRepo.FindReplies(ctx, comment.ID)
		if err != nil {
			log.Printf("failed to load replies for comment %d: %v", comment.ID, err)
			return resp
		}
		for _, reply := range replies {
			resp.Replies = append(resp.Replies, *s.buildResponse(ctx, reply, false))
		}
	}

	return resp
}
