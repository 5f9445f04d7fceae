package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pouriamv/art-market-api/internal/dto"
	"github.com/pouriamv/art-market-api/internal/service"
	"github.com/pouriamv/art-market-api/pkg/response"
	"github.com/pouriamv/art-market-api/pkg/validator"
)

type StoreHandler struct {
	artworks   service.ArtworkService
	engagement service.EngagementService
}

func NewStoreHandler(artworks service.ArtworkService, engagement service.EngagementService) *StoreHandler {
	return &StoreHandler{artworks: artworks, engagement: engagement}
}

func (h *StoreHandler) ListArtworks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.artworks.ListArtworks(c.Request.Context(), c.Query("search"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   result.Items,
		"total":  result.Total,
		"page":   result.Page,
		"limit":  result.Limit,
	})
}

func (h *StoreHandler) GetArtwork(c *gin.Context) {
	artworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	artwork, err := h.artworks.GetArtwork(c.Request.Context(), artworkID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, artwork)
}

func (h *StoreHandler) Upvote(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	targetID, ok := parseIDParam(c, "target_id")
	if !ok {
		return
	}
	targetKind := c.Param("target_kind")

	if err := h.engagement.Upvote(c.Request.Context(), userID, targetKind, targetID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "Upvoted")
}

func (h *StoreHandler) RemoveUpvote(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	targetID, ok := parseIDParam(c, "target_id")
	if !ok {
		return
	}
	targetKind := c.Param("target_kind")

	if err := h.engagement.RemoveUpvote(c.Request.Context(), userID, targetKind, targetID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Upvote removed")
}

func (h *StoreHandler) CountUpvotes(c *gin.Context) {
	targetID, ok := parseIDParam(c, "target_id")
	if !ok {
		return
	}
	targetKind := c.Param("target_kind")

	count, err := h.engagement.CountUpvotes(c.Request.Context(), targetKind, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"upvotes": count})
}

func (h *StoreHandler) AddComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	artworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CommentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			gin.H{"status": "error", "message": validator.FormatValidationError(err)})
		return
	}

	commentID, err := h.engagement.AddComment(c.Request.Context(), userID, artworkID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"comment_id": commentID})
}

func (h *StoreHandler) ListComments(c *gin.Context) {
	artworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.engagement.ListComments(c.Request.Context(), artworkID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, comments)
}

func (h *StoreHandler) GetComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comment, err := h.engagement.GetComment(c.Request.Context(), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, comment)
}

func (h *StoreHandler) AddReply(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	parentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CommentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			gin.H{"status": "error", "message": validator.FormatValidationError(err)})
		return
	}

	replyID, err := h.engagement.AddReply(c.Request.Context(), userID, parentID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"comment_id": replyID})
}

func (h *StoreHandler) DeleteComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.engagement.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Comment deleted")
}
