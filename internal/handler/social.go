package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/cliphub/internal/service"
)

// SocialHandler serves the follow graph routes: edge queries, profile
// lookups, and the personalized feed.
type SocialHandler struct {
	social *service.SocialService
	logger *slog.Logger
}

// NewSocialHandler creates a SocialHandler.
func NewSocialHandler(social *service.SocialService, logger *slog.Logger) *SocialHandler {
	return &SocialHandler{social: social, logger: logger}
}

// HandleIsFollowing reports whether follower→followee exists.
//
// HTTP: GET /follow/{followerId}/{followeeId}
// Success: 200 {"following": true|false}
func (h *SocialHandler) HandleIsFollowing(w http.ResponseWriter, r *http.Request) {
	following, err := h.social.IsFollowing(r.Context(), r.PathValue("followerId"), r.PathValue("followeeId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FollowingResponse{Following: following})
}

// HandleFollow creates the edge follower→followee (idempotent).
//
// HTTP: PUT /follow/{followerId}/{followeeId}
// Success: 200 {"following": true} — identical whether or not the edge
// already existed.
func (h *SocialHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	if err := h.social.Follow(r.Context(), r.PathValue("followerId"), r.PathValue("followeeId")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FollowingResponse{Following: true})
}

// HandleUnfollow removes the edge follower→followee (idempotent).
//
// HTTP: DELETE /follow/{followerId}/{followeeId}
// Success: 200 {"following": false}
func (h *SocialHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	if err := h.social.Unfollow(r.Context(), r.PathValue("followerId"), r.PathValue("followeeId")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FollowingResponse{Following: false})
}

// HandleGetUser returns a user's profile view.
//
// HTTP: GET /user/{userId}
// Success: 200 {"user": "<username>", "numClips": <count>}
func (h *SocialHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.social.GetProfile(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleFeed returns the user's personalized feed of clip ids.
//
// HTTP: GET /follow/clips/{userId}
// Success: 200 ["id1", ...] newest first; empty follow set gives [].
func (h *SocialHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	ids, err := h.social.Feed(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ids)
}
