package api

import (
	"net/http"

	"github.com/HerbHall/newsroom/internal/apperr"
	"github.com/HerbHall/newsroom/internal/listing"
	"github.com/HerbHall/newsroom/internal/server"
	"github.com/HerbHall/newsroom/internal/services"
	"github.com/HerbHall/newsroom/pkg/models"
)

type commentsResponse struct {
	Comments   []models.Comment `json:"comments"`
	TotalCount int              `json:"total_count"`
}

type commentResponse struct {
	Comment *models.Comment `json:"comment"`
}

// handleListComments returns a page of an article's comments.
//
//	@Summary		List article comments
//	@Tags			comments
//	@Produce		json
//	@Param			article_id path int true "Article ID"
//	@Param			sort_by query string false "created_at, votes, author or comment_id" default(created_at)
//	@Param			order query string false "asc or desc" default(desc)
//	@Param			limit query int false "Page size" default(10)
//	@Param			p query int false "Page number" default(1)
//	@Success		200 {object} commentsResponse
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Router			/articles/{article_id}/comments [get]
func (h *Handler) handleListComments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	c, err := listing.Validate(r.URL.Query(), services.CommentSorts)
	if err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	page, err := h.comments.ListByArticle(r.Context(), id, c)
	if err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	server.WriteJSON(w, http.StatusOK, commentsResponse{
		Comments:   page.Items,
		TotalCount: page.TotalCount,
	})
}

// handleCreateComment adds a comment to an article.
//
//	@Summary		Create comment
//	@Tags			comments
//	@Accept			json
//	@Produce		json
//	@Param			article_id path int true "Article ID"
//	@Param			body body services.NewComment true "Comment"
//	@Success		201 {object} commentResponse
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Router			/articles/{article_id}/comments [post]
func (h *Handler) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	var in services.NewComment
	if err := decodeBody(r, &in); err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	c, err := h.comments.Create(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	server.WriteJSON(w, http.StatusCreated, commentResponse{Comment: c})
}

// handleVoteComment applies inc_votes to a comment.
//
//	@Summary		Vote on comment
//	@Tags			comments
//	@Accept			json
//	@Produce		json
//	@Param			comment_id path int true "Comment ID"
//	@Param			body body voteRequest true "Vote delta"
//	@Success		201 {object} commentResponse
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Router			/comments/{comment_id} [patch]
func (h *Handler) handleVoteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "comment_id")
	if err != nil {
		h.fail(w, r, err, apperr.MsgCommentNotFound)
		return
	}
	delta, err := decodeVote(r)
	if err != nil {
		h.fail(w, r, err, apperr.MsgCommentNotFound)
		return
	}
	c, err := h.comments.IncrementVotes(r.Context(), id, delta)
	if err != nil {
		h.fail(w, r, err, apperr.MsgCommentNotFound)
		return
	}
	server.WriteJSON(w, http.StatusCreated, commentResponse{Comment: c})
}

// handleDeleteComment removes a comment.
//
//	@Summary		Delete comment
//	@Tags			comments
//	@Param			comment_id path int true "Comment ID"
//	@Success		204
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Router			/comments/{comment_id} [delete]
func (h *Handler) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "comment_id")
	if err != nil {
		h.fail(w, r, err, apperr.MsgCommentNotFound)
		return
	}
	if err := h.comments.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, apperr.MsgCommentNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
