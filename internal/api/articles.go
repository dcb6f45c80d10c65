package api

import (
	"net/http"

	"github.com/HerbHall/newsroom/internal/apperr"
	"github.com/HerbHall/newsroom/internal/listing"
	"github.com/HerbHall/newsroom/internal/server"
	"github.com/HerbHall/newsroom/internal/services"
	"github.com/HerbHall/newsroom/pkg/models"
)

type articlesResponse struct {
	Articles   []models.Article `json:"articles"`
	TotalCount int              `json:"total_count"`
}

type articleResponse struct {
	Article *models.Article `json:"article"`
}

// handleListArticles returns a sorted, filtered page of articles.
//
//	@Summary		List articles
//	@Description	Returns a page of articles with comment counts and the total matching the topic filter.
//	@Tags			articles
//	@Produce		json
//	@Param			topic query string false "Topic slug"
//	@Param			sort_by query string false "created_at, title, votes, author, topic, article_id or comment_count" default(created_at)
//	@Param			order query string false "asc or desc" default(desc)
//	@Param			limit query int false "Page size" default(10)
//	@Param			p query int false "Page number" default(1)
//	@Success		200 {object} articlesResponse
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Router			/articles [get]
func (h *Handler) handleListArticles(w http.ResponseWriter, r *http.Request) {
	c, err := listing.Validate(r.URL.Query(), services.ArticleSorts)
	if err != nil {
		h.fail(w, r, err, apperr.MsgTopicNotFound)
		return
	}
	page, err := h.articles.List(r.Context(), c)
	if err != nil {
		h.fail(w, r, err, apperr.MsgTopicNotFound)
		return
	}
	server.WriteJSON(w, http.StatusOK, articlesResponse{
		Articles:   page.Items,
		TotalCount: page.TotalCount,
	})
}

// handleCreateArticle adds an article.
//
//	@Summary		Create article
//	@Tags			articles
//	@Accept			json
//	@Produce		json
//	@Param			body body services.NewArticle true "Article"
//	@Success		201 {object} articleResponse
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Router			/articles [post]
func (h *Handler) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var in services.NewArticle
	if err := decodeBody(r, &in); err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	a, err := h.articles.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	server.WriteJSON(w, http.StatusCreated, articleResponse{Article: a})
}

// handleGetArticle returns one article with its comment count.
//
//	@Summary		Get article
//	@Tags			articles
//	@Produce		json
//	@Param			article_id path int true "Article ID"
//	@Success		200 {object} articleResponse
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Router			/articles/{article_id} [get]
func (h *Handler) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	a, err := h.articles.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	server.WriteJSON(w, http.StatusOK, articleResponse{Article: a})
}

// handleVoteArticle applies inc_votes to an article.
//
//	@Summary		Vote on article
//	@Tags			articles
//	@Accept			json
//	@Produce		json
//	@Param			article_id path int true "Article ID"
//	@Param			body body voteRequest true "Vote delta"
//	@Success		201 {object} articleResponse
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Router			/articles/{article_id} [patch]
func (h *Handler) handleVoteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	delta, err := decodeVote(r)
	if err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	a, err := h.articles.IncrementVotes(r.Context(), id, delta)
	if err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	server.WriteJSON(w, http.StatusCreated, articleResponse{Article: a})
}

// handleDeleteArticle removes an article and its comments.
//
//	@Summary		Delete article
//	@Tags			articles
//	@Param			article_id path int true "Article ID"
//	@Success		204
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Router			/articles/{article_id} [delete]
func (h *Handler) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	if err := h.articles.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, apperr.MsgArticleNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
