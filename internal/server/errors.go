package server

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/HerbHall/newsroom/internal/apperr"
	"github.com/HerbHall/newsroom/internal/store"
)

// MsgPathNotFound is the body of every unmatched route.
const MsgPathNotFound = "Path not found"

// MsgTimeout is returned when a request outlives its deadline.
const MsgTimeout = "Request timed out"

// ErrorStage inspects err and, when it recognizes it, writes the response
// and reports true. A stage that reports false must not have written.
type ErrorStage func(w http.ResponseWriter, r *http.Request, err error) bool

// ErrorTranslator turns errors into responses by running its stages in
// order until one handles the error. The first response wins.
type ErrorTranslator struct {
	stages []ErrorStage
}

// NewErrorTranslator returns the standard chain: storage errors, then
// application errors, then a generic 500.
func NewErrorTranslator(logger *zap.Logger) *ErrorTranslator {
	return &ErrorTranslator{stages: []ErrorStage{
		StorageStage(logger),
		ApplicationStage(logger),
		FallbackStage(logger),
	}}
}

// Write sends the response for err.
func (t *ErrorTranslator) Write(w http.ResponseWriter, r *http.Request, err error) {
	for _, stage := range t.stages {
		if stage(w, r, err) {
			return
		}
	}
}

// StorageStage maps classified driver errors (bad key text, missing column,
// dangling reference, unknown identifier) to client errors.
func StorageStage(logger *zap.Logger) ErrorStage {
	return func(w http.ResponseWriter, r *http.Request, err error) bool {
		ae, ok := store.Translate(err)
		if !ok {
			return false
		}
		logger.Debug("storage error",
			zap.String("path", r.URL.Path),
			zap.String("kind", ae.Kind.String()),
			zap.Error(err),
		)
		WriteProblem(w, problemFor(ae.Status(), ae.Message, r.URL.Path))
		return true
	}
}

// ApplicationStage writes the status and message of an *apperr.Error
// verbatim. Internal errors fall through so their detail is never exposed.
func ApplicationStage(logger *zap.Logger) ErrorStage {
	return func(w http.ResponseWriter, r *http.Request, err error) bool {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("request timed out", zap.String("path", r.URL.Path))
			WriteProblem(w, problemFor(http.StatusServiceUnavailable, MsgTimeout, r.URL.Path))
			return true
		}
		ae, ok := apperr.As(err)
		if !ok || ae.Kind == apperr.KindInternal {
			return false
		}
		logger.Debug("client error",
			zap.String("path", r.URL.Path),
			zap.String("kind", ae.Kind.String()),
			zap.Error(err),
		)
		WriteProblem(w, problemFor(ae.Status(), ae.Message, r.URL.Path))
		return true
	}
}

// FallbackStage answers 500 with a generic message and logs the cause.
func FallbackStage(logger *zap.Logger) ErrorStage {
	return func(w http.ResponseWriter, r *http.Request, err error) bool {
		logger.Error("unhandled error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		InternalError(w, apperr.MsgInternal, r.URL.Path)
		return true
	}
}

// handleNotFound answers every request no route matched.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	NotFound(w, MsgPathNotFound, r.URL.Path)
}
