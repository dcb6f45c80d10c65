package api

import (
	"net/http"

	"github.com/HerbHall/newsroom/internal/apperr"
	"github.com/HerbHall/newsroom/internal/listing"
	"github.com/HerbHall/newsroom/internal/server"
	"github.com/HerbHall/newsroom/internal/services"
	"github.com/HerbHall/newsroom/pkg/models"
)

type topicsResponse struct {
	Topics []models.Topic `json:"topics"`
}

type topicResponse struct {
	Topic *models.Topic `json:"topic"`
}

// handleListTopics returns every topic, or the one named by ?topic=.
//
//	@Summary		List topics
//	@Tags			topics
//	@Produce		json
//	@Param			topic query string false "Topic slug"
//	@Success		200 {object} topicsResponse
//	@Failure		404 {object} server.Problem
//	@Router			/topics [get]
func (h *Handler) handleListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topics.List(r.Context(), r.URL.Query().Get(listing.ParamTopic))
	if err != nil {
		h.fail(w, r, err, apperr.MsgTopicNotFound)
		return
	}
	server.WriteJSON(w, http.StatusOK, topicsResponse{Topics: topics})
}

// handleCreateTopic adds a topic.
//
//	@Summary		Create topic
//	@Tags			topics
//	@Accept			json
//	@Produce		json
//	@Param			body body services.NewTopic true "Topic"
//	@Success		201 {object} topicResponse
//	@Failure		400 {object} server.Problem
//	@Router			/topics [post]
func (h *Handler) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	var in services.NewTopic
	if err := decodeBody(r, &in); err != nil {
		h.fail(w, r, err, apperr.MsgTopicNotFound)
		return
	}
	t, err := h.topics.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, apperr.MsgTopicNotFound)
		return
	}
	server.WriteJSON(w, http.StatusCreated, topicResponse{Topic: t})
}
