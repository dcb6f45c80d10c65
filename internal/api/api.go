// Package api implements the Newsroom REST handlers. Handlers parse input,
// call a repository and write JSON; every failure goes through the server's
// error translator.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/HerbHall/newsroom/internal/apperr"
	"github.com/HerbHall/newsroom/internal/server"
	"github.com/HerbHall/newsroom/internal/services"
	"github.com/HerbHall/newsroom/pkg/catalog"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Handler serves the /api resource routes.
type Handler struct {
	articles services.ArticleRepository
	comments services.CommentRepository
	topics   services.TopicRepository
	users    services.UserRepository
	catalog  *catalog.Catalog
	errors   *server.ErrorTranslator
	logger   *zap.Logger
}

// Repositories groups the data sources of the Handler.
type Repositories struct {
	Articles services.ArticleRepository
	Comments services.CommentRepository
	Topics   services.TopicRepository
	Users    services.UserRepository
}

// NewHandler creates the API handler.
func NewHandler(repos Repositories, cat *catalog.Catalog, logger *zap.Logger) *Handler {
	return &Handler{
		articles: repos.Articles,
		comments: repos.Comments,
		topics:   repos.Topics,
		users:    repos.Users,
		catalog:  cat,
		errors:   server.NewErrorTranslator(logger),
		logger:   logger,
	}
}

// Compile-time interface guard.
var _ server.SimpleRouteRegistrar = (*Handler)(nil)

// RegisterRoutes implements server.SimpleRouteRegistrar.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api", h.handleEndpoints)

	mux.HandleFunc("GET /api/topics", h.handleListTopics)
	mux.HandleFunc("POST /api/topics", h.handleCreateTopic)

	mux.HandleFunc("GET /api/articles", h.handleListArticles)
	mux.HandleFunc("POST /api/articles", h.handleCreateArticle)
	mux.HandleFunc("GET /api/articles/{article_id}", h.handleGetArticle)
	mux.HandleFunc("PATCH /api/articles/{article_id}", h.handleVoteArticle)
	mux.HandleFunc("DELETE /api/articles/{article_id}", h.handleDeleteArticle)

	mux.HandleFunc("GET /api/articles/{article_id}/comments", h.handleListComments)
	mux.HandleFunc("POST /api/articles/{article_id}/comments", h.handleCreateComment)
	mux.HandleFunc("PATCH /api/comments/{comment_id}", h.handleVoteComment)
	mux.HandleFunc("DELETE /api/comments/{comment_id}", h.handleDeleteComment)

	mux.HandleFunc("GET /api/users", h.handleListUsers)
	mux.HandleFunc("GET /api/users/{username}", h.handleGetUser)
}

// fail writes the response for err. A repository ErrNotFound becomes a
// not-found error carrying the resource's canonical message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	if errors.Is(err, services.ErrNotFound) {
		err = apperr.NotFound(notFound).Wrap(err)
	}
	h.errors.Write(w, r, err)
}

// pathID parses an integer path value. Anything but a positive integer is
// an invalid ID.
func pathID(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, apperr.Validation(apperr.MsgInvalidID)
	}
	return id, nil
}

// decodeBody decodes a JSON object body into dst.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation(apperr.MsgMissingColumns)
		}
		return apperr.Validation(apperr.MsgInvalidBody).Wrap(err)
	}
	return nil
}

// voteRequest is the JSON body of the vote endpoints.
type voteRequest struct {
	IncVotes *int `json:"inc_votes"`
}

func decodeVote(r *http.Request) (int, error) {
	var req voteRequest
	if err := decodeBody(r, &req); err != nil {
		if apperr.IsKind(err, apperr.KindValidation) {
			return 0, apperr.Validation(apperr.MsgInvalidIncVotes).Wrap(err)
		}
		return 0, err
	}
	if req.IncVotes == nil {
		return 0, apperr.Validation(apperr.MsgInvalidIncVotes)
	}
	// votes is a 64-bit column; bounding each delta to int32 keeps the sum
	// from ever leaving the integer range.
	if d := *req.IncVotes; d < math.MinInt32 || d > math.MaxInt32 {
		return 0, apperr.Validation(apperr.MsgInvalidIncVotes)
	}
	return *req.IncVotes, nil
}

// endpointsResponse is the body of GET /api.
type endpointsResponse struct {
	Endpoints map[string]catalog.Endpoint `json:"endpoints"`
}

// handleEndpoints serves the endpoint catalogue.
//
//	@Summary		List endpoints
//	@Description	Returns a description of every endpoint keyed by "METHOD /path".
//	@Tags			api
//	@Produce		json
//	@Success		200 {object} endpointsResponse
//	@Router			/ [get]
func (h *Handler) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	eps, err := h.catalog.ByKey()
	if err != nil {
		h.fail(w, r, err, apperr.MsgNotFound)
		return
	}
	server.WriteJSON(w, http.StatusOK, endpointsResponse{Endpoints: eps})
}
