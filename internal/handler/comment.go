package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/cliphub/internal/service"
)

// CommentHandler serves the /comments routes.
type CommentHandler struct {
	comments *service.CommentService
	logger   *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(comments *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

// addCommentRequest is the body of PUT /comments/{clipId}. The fields are
// pointers because the validation distinguishes an absent field from an
// empty one ("No comment added." vs "No comment body included.").
type addCommentRequest struct {
	AuthorID *string `json:"authorId"`
	Comment  *string `json:"comment"`
}

// HandleAdd adds a comment to a clip.
//
// HTTP: PUT /comments/{clipId}, JSON body {"authorId": ..., "comment": ...}
// Success: 200 {} — failures follow the documented check order.
func (h *CommentHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	clipID := r.PathValue("clipId")

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid comment JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, StatusResponse{Status: "invalid JSON body"})
		return
	}

	if err := h.comments.Add(r.Context(), clipID, req.AuthorID, req.Comment); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

// HandleList returns a clip's comments, newest first.
//
// HTTP: GET /comments/{clipId}
// Success: 200 [{"author", "comment", "date", "authorId"}, ...]
// A clip with no comments gives []; a missing clip gives 404.
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	clipID := r.PathValue("clipId")

	views, err := h.comments.List(r.Context(), clipID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}
