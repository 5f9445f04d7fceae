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

type ArtistHandler struct {
	service service.ArtworkService
}

func NewArtistHandler(service service.ArtworkService) *ArtistHandler {
	return &ArtistHandler{service: service}
}

func (h *ArtistHandler) Dashboard(c *gin.Context) {
	artistID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	artworks, err := h.service.GetDashboard(c.Request.Context(), artistID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, artworks)
}

func (h *ArtistHandler) CreateArtwork(c *gin.Context) {
	artistID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ArtworkInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			gin.H{"status": "error", "message": validator.FormatValidationError(err)})
		return
	}

	artworkID, err := h.service.CreateArtwork(c.Request.Context(), artistID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Artwork created", "artwork_id": artworkID})
}

func (h *ArtistHandler) GetArtwork(c *gin.Context) {
	artistID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	artworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	artwork, err := h.service.GetArtistArtwork(c.Request.Context(), artistID, artworkID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, artwork)
}

func (h *ArtistHandler) UpdateArtwork(c *gin.Context) {
	artistID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	artworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ArtworkInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			gin.H{"status": "error", "message": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.UpdateArtwork(c.Request.Context(), artistID, artworkID, req); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Artwork updated", "artwork_id": artworkID})
}

func (h *ArtistHandler) DeleteArtwork(c *gin.Context) {
	artistID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	artworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteArtwork(c.Request.Context(), artistID, artworkID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Artwork deleted"})
}

func (h *ArtistHandler) UploadArtworkImage(c *gin.Context) {
	artistID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	artworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	url, err := h.service.UploadArtworkImage(c.Request.Context(), artistID, artworkID, file, fileHeader.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"image_path": url})
}

func (h *ArtistHandler) ListTags(c *gin.Context) {
	tags, err := h.service.ListTags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tags)
}

func (h *ArtistHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, categories)
}

func (h *ArtistHandler) ListCurrencies(c *gin.Context) {
	currencies, err := h.service.ListCurrencies(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, currencies)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
