package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListArtworksPagination(t *testing.T) {
	env := newTestEnv(t)
	artist := env.newArtist(t, "Vera", "vera@example.com")
	for i := 1; i <= 5; i++ {
		env.createArtwork(t, artist, fmt.Sprintf("Piece %d", i), nil)
	}

	w := env.request(t, http.MethodGet, "/store/artworks?page=1&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(5), body["total"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(2), body["limit"])
	assert.Len(t, body["data"].([]interface{}), 2)

	w = env.request(t, http.MethodGet, "/store/artworks?page=3&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"].([]interface{}), 1)
}

func TestListArtworksSearch(t *testing.T) {
	env := newTestEnv(t)
	artist := env.newArtist(t, "Vera", "vera@example.com")
	env.createArtwork(t, artist, "Sunset Over Water", nil)
	env.createArtwork(t, artist, "Morning Frost", nil)

	w := env.request(t, http.MethodGet, "/store/artworks?search=sunset", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	items := body["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Sunset Over Water", items[0].(map[string]interface{})["title"])
}

func TestGetArtworkPublic(t *testing.T) {
	env := newTestEnv(t)
	artist := env.newArtist(t, "Vera", "vera@example.com")
	id := env.createArtwork(t, artist, "Sunset", []string{"oil"})

	// No token required for the storefront view.
	w := env.request(t, http.MethodGet, fmt.Sprintf("/store/artworks/%d", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Sunset", data["title"])
	assert.Equal(t, float64(0), data["upvotes"])
}

func TestGetArtworkNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/store/artworks/42", "", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Artwork with id 42 not found", decodeBody(t, w)["message"])
}

func TestUpvoteRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	artist := env.newArtist(t, "Vera", "vera@example.com")
	id := env.createArtwork(t, artist, "Sunset", nil)

	w := env.request(t, http.MethodPost, fmt.Sprintf("/store/upvote/artwork/%d", id), "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpvoteArtworkLifecycle(t *testing.T) {
	env := newTestEnv(t)
	artist := env.newArtist(t, "Vera", "vera@example.com")
	fan := env.registerAndLogin(t, "Fan", "fan@example.com", "password123")
	id := env.createArtwork(t, artist, "Sunset", nil)

	path := fmt.Sprintf("/store/upvote/artwork/%d", id)

	w := env.request(t, http.MethodPost, path, fan, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Same user again is a conflict, not a second vote.
	w = env.request(t, http.MethodPost, path, fan, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "artwork already upvoted", decodeBody(t, w)["message"])

	w = env.request(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["data"].(map[string]interface{})["upvotes"])

	w = env.request(t, http.MethodDelete, path, fan, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodDelete, path, fan, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No upvote found", decodeBody(t, w)["message"])

	w = env.request(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["data"].(map[string]interface{})["upvotes"])
}

func TestUpvoteRemoveAlternation(t *testing.T) {
	env := newTestEnv(t)
	artist := env.newArtist(t, "Vera", "vera@example.com")
	fan := env.registerAndLogin(t, "Fan", "fan@example.com", "password123")
	id := env.createArtwork(t, artist, "Sunset", nil)

	path := fmt.Sprintf("/store/upvote/artwork/%d", id)

	// Alternating upvote and remove always lands on a count of exactly
	// one after the upvote and zero after the removal.
	for i := 0; i < 3; i++ {
		w := env.request(t, http.MethodPost, path, fan, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = env.request(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, float64(1), decodeBody(t, w)["data"].(map[string]interface{})["upvotes"])

		w = env.request(t, http.MethodDelete, path, fan, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = env.request(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, float64(0), decodeBody(t, w)["data"].(map[string]interface{})["upvotes"])
	}
}

func TestUpvotesAreIndependentPerUser(t *testing.T) {
	env := newTestEnv(t)
	artist := env.newArtist(t, "Vera", "vera@example.com")
	fanOne := env.registerAndLogin(t, "Fan One", "fan1@example.com", "password123")
	fanTwo := env.registerAndLogin(t, "Fan Two", "fan2@example.com", "password123")
	id := env.createArtwork(t, artist, "Sunset", nil)

	path := fmt.Sprintf("/store/upvote/artwork/%d", id)
	require.Equal(t, http.StatusCreated, env.request(t, http.MethodPost, path, fanOne, nil).Code)
	require.Equal(t, http.StatusCreated, env.request(t, http.MethodPost, path, fanTwo, nil).Code)

	w := env.request(t, http.MethodGet, path, "", nil)
	assert.Equal(t, float64(2), decodeBody(t, w)["data"].(map[string]interface{})["upvotes"])
}

func TestUpvoteInvalidTargetKind(t *testing.T) {
	env := newTestEnv(t)
	fan := env.registerAndLogin(t, "Fan", "fan@example.com", "password123")

	w := env.request(t, http.MethodPost, "/store/upvote/gallery/1", fan, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid target type", decodeBody(t, w)["message"])
}

func TestUpvoteMissingTarget(t *testing.T) {
	env := newTestEnv(t)
	fan := env.registerAndLogin(t, "Fan", "fan@example.com", "password123")

	w := env.request(t, http.MethodPost, "/store/upvote/artwork/99", fan, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Artwork with id 99 not found", decodeBody(t, w)["message"])

	w = env.request(t, http.MethodPost, "/store/upvote/comment/99", fan, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Comment with id 99 not found", decodeBody(t, w)["message"])
}

func TestCommentsAndReplies(t *testing.T) {
	env := newTestEnv(t)
	artist := env.newArtist(t, "Vera", "vera@example.com")
	fan := env.registerAndLogin(t, "Fan", "fan@example.com", "password123")
	artworkID := env.createArtwork(t, artist, "Sunset", nil)

	rootID := env.addComment(t, fan, artworkID, "Stunning colors")

	// Reply to the root comment.
	w := env.request(t, http.MethodPost, fmt.Sprintf("/store/comments/%d", rootID), artist,
		gin.H{"content": "Thank you!"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The listing carries roots only, with reply counts.
	w = env.request(t, http.MethodGet, fmt.Sprintf("/store/artworks/%d/comments", artworkID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	roots := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, roots, 1)
	root := roots[0].(map[string]interface{})
	assert.Equal(t, "Stunning colors", root["content"])
	assert.Equal(t, float64(1), root["reply_count"])

	// Fetching a single comment expands its replies.
	w = env.request(t, http.MethodGet, fmt.Sprintf("/store/comments/%d", rootID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	replies := data["replies"].([]interface{})
	require.Len(t, replies, 1)
	reply := replies[0].(map[string]interface{})
	assert.Equal(t, "Thank you!", reply["content"])
	assert.Equal(t, float64(rootID), reply["parent_id"])
	assert.Equal(t, data["artwork_id"], reply["artwork_id"])
}

func TestCommentOnMissingArtwork(t *testing.T) {
	env := newTestEnv(t)
	fan := env.registerAndLogin(t, "Fan", "fan@example.com", "password123")

	w := env.request(t, http.MethodPost, "/store/artworks/77/comments", fan,
		gin.H{"content": "hello"})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Artwork with id 77 not found", decodeBody(t, w)["message"])
}

func TestDeleteCommentOwnership(t *testing.T) {
	env := newTestEnv(t)
	artist := env.newArtist(t, "Vera", "vera@example.com")
	fan := env.registerAndLogin(t, "Fan", "fan@example.com", "password123")
	artworkID := env.createArtwork(t, artist, "Sunset", nil)
	commentID := env.addComment(t, fan, artworkID, "Stunning colors")

	// Someone else cannot delete it.
	w := env.request(t, http.MethodDelete, fmt.Sprintf("/store/comments/%d", commentID), artist, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You can only delete your own comments", decodeBody(t, w)["message"])

	// The author can.
	w = env.request(t, http.MethodDelete, fmt.Sprintf("/store/comments/%d", commentID), fan, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/store/comments/%d", commentID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCommentRemovesSubtree(t *testing.T) {
	env := newTestEnv(t)
	artist := env.newArtist(t, "Vera", "vera@example.com")
	fan := env.registerAndLogin(t, "Fan", "fan@example.com", "password123")
	artworkID := env.createArtwork(t, artist, "Sunset", nil)

	rootID := env.addComment(t, fan, artworkID, "root")

	w := env.request(t, http.MethodPost, fmt.Sprintf("/store/comments/%d", rootID), fan,
		gin.H{"content": "child"})
	require.Equal(t, http.StatusCreated, w.Code)
	childID := uint(decodeBody(t, w)["data"].(map[string]interface{})["comment_id"].(float64))

	w = env.request(t, http.MethodPost, fmt.Sprintf("/store/comments/%d", childID), fan,
		gin.H{"content": "grandchild"})
	require.Equal(t, http.StatusCreated, w.Code)
	grandchildID := uint(decodeBody(t, w)["data"].(map[string]interface{})["comment_id"].(float64))

	// Upvote a descendant so the cascade has something to clean up.
	w = env.request(t, http.MethodPost, fmt.Sprintf("/store/upvote/comment/%d", grandchildID), fan, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/store/comments/%d", rootID), fan, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, id := range []uint{rootID, childID, grandchildID} {
		w = env.request(t, http.MethodGet, fmt.Sprintf("/store/comments/%d", id), "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestDeleteArtworkCascades(t *testing.T) {
	env := newTestEnv(t)
	artist := env.newArtist(t, "Vera", "vera@example.com")
	fan := env.registerAndLogin(t, "Fan", "fan@example.com", "password123")
	artworkID := env.createArtwork(t, artist, "Sunset", []string{"oil"})

	commentID := env.addComment(t, fan, artworkID, "Stunning colors")
	require.Equal(t, http.StatusCreated,
		env.request(t, http.MethodPost, fmt.Sprintf("/store/upvote/artwork/%d", artworkID), fan, nil).Code)
	require.Equal(t, http.StatusCreated,
		env.request(t, http.MethodPost, fmt.Sprintf("/store/upvote/comment/%d", commentID), fan, nil).Code)

	w := env.request(t, http.MethodDelete, fmt.Sprintf("/artist/artwork/%d", artworkID), artist, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The artwork and its comments are gone.
	w = env.request(t, http.MethodGet, fmt.Sprintf("/store/artworks/%d", artworkID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.request(t, http.MethodGet, fmt.Sprintf("/store/comments/%d", commentID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
