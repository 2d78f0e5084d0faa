package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/cliphub/internal/service"
)

// maxUploadMemory caps how much of a multipart upload is held in memory;
// anything larger spills to temp files.
const maxUploadMemory = 32 << 20 // 32 MB

// ClipHandler serves the /clips routes and the per-author clip listing.
type ClipHandler struct {
	clips  *service.ClipService
	logger *slog.Logger
}

// NewClipHandler creates a ClipHandler.
func NewClipHandler(clips *service.ClipService, logger *slog.Logger) *ClipHandler {
	return &ClipHandler{clips: clips, logger: logger}
}

// HandleList returns every clip id, newest first.
//
// HTTP: GET /clips
// Success: 200 ["id1", "id2", ...] — an empty store gives [], never an error.
func (h *ClipHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ids, err := h.clips.ListIDs(r.Context())
	if err != nil {
		h.logger.Error("failed to list clips", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ids)
}

// HandleListByAuthor returns one author's clip ids, newest first.
//
// HTTP: GET /{authorId}/clips
// An unknown author id gives 200 [] — authorship is never validated.
func (h *ClipHandler) HandleListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID := r.PathValue("authorId")

	ids, err := h.clips.ListIDsByAuthor(r.Context(), authorID)
	if err != nil {
		h.logger.Error("failed to list clips for author",
			slog.String("authorId", authorID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ids)
}

// HandleUpload stores a new clip.
//
// HTTP: PUT /clips
// Multipart form: file (required, .mp4), authorId (required), title
// (required), description (optional, defaults to empty).
//
// The file-part check happens here — it's a property of the multipart
// request, and it must fail before any of the service's field checks —
// then the service owns the rest of the validation order.
func (h *ClipHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Status: "no file part added to the request"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Status: "no file part added to the request"})
		return
	}
	defer file.Close()

	clip, err := h.clips.Upload(
		r.Context(),
		file,
		header.Filename,
		r.FormValue("authorId"),
		r.FormValue("title"),
		r.FormValue("description"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, IDResponse{ID: clip.ID})
}

// HandleGetPayload streams the clip's mp4 bytes.
//
// HTTP: GET /clips/{clipId}
// Success: 200, Content-Type application/mp4, raw payload body.
func (h *ClipHandler) HandleGetPayload(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("clipId")

	rc, err := h.clips.Payload(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/mp4")
	if _, err := io.Copy(w, rc); err != nil {
		// The status line is already out; nothing to send but a log line.
		h.logger.Error("failed to stream clip payload",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
	}
}

// HandleGetInfo returns the clip's denormalized metadata.
//
// HTTP: GET /clips/info/{clipId}
// Success: 200 {"title", "description", "author", "date", "authorId"}.
func (h *ClipHandler) HandleGetInfo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("clipId")

	info, err := h.clips.Info(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// HandleDelete removes a clip, its comments, and its payload.
//
// HTTP: DELETE /clips/{clipId}
// Success: 200 {} — a second delete of the same id gets 404.
func (h *ClipHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("clipId")

	if err := h.clips.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}
