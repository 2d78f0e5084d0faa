package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sakif/cliphub/internal/auth"
	"github.com/sakif/cliphub/internal/blob"
	"github.com/sakif/cliphub/internal/middleware"
	sqliteRepo "github.com/sakif/cliphub/internal/repository/sqlite"
	"github.com/sakif/cliphub/internal/service"
)

// newTestRouter wires the full stack (in-memory database, temp-dir blob
// store, services, handlers) behind the same route table the server
// registers, so tests exercise real route matching.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	db, err := sqliteRepo.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	blobs, err := blob.New(t.TempDir())
	require.NoError(t, err)

	// low bcrypt cost keeps register/login round-trips fast
	accountService := service.NewAccountService(db, auth.NewPasswordServiceForTest(4), logger)
	clipService := service.NewClipService(db, db, blobs, logger)
	commentService := service.NewCommentService(db, db, db, logger)
	socialService := service.NewSocialService(db, db, db, logger)

	accountHandler := NewAccountHandler(accountService, logger)
	clipHandler := NewClipHandler(clipService, logger)
	commentHandler := NewCommentHandler(commentService, logger)
	socialHandler := NewSocialHandler(socialService, logger)

	r := chi.NewRouter()
	r.Use(middleware.Logger(logger))

	r.Post("/login", accountHandler.HandleLogin)
	r.Post("/register", accountHandler.HandleRegister)

	r.Get("/clips", clipHandler.HandleList)
	r.Put("/clips", clipHandler.HandleUpload)
	r.Get("/clips/info/{clipId}", clipHandler.HandleGetInfo)
	r.Get("/clips/{clipId}", clipHandler.HandleGetPayload)
	r.Delete("/clips/{clipId}", clipHandler.HandleDelete)

	r.Get("/comments/{clipId}", commentHandler.HandleList)
	r.Put("/comments/{clipId}", commentHandler.HandleAdd)

	r.Get("/user/{userId}", socialHandler.HandleGetUser)
	r.Get("/follow/clips/{userId}", socialHandler.HandleFeed)
	r.Get("/follow/{followerId}/{followeeId}", socialHandler.HandleIsFollowing)
	r.Put("/follow/{followerId}/{followeeId}", socialHandler.HandleFollow)
	r.Delete("/follow/{followerId}/{followeeId}", socialHandler.HandleUnfollow)

	r.Get("/{authorId}/clips", clipHandler.HandleListByAuthor)

	return r
}

// doJSON sends a request with an optional JSON body and returns the
// recorded response.
func doJSON(t *testing.T, router *chi.Mux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded JSON body into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// registerUser registers a user through the API and returns the new id.
func registerUser(t *testing.T, router *chi.Mux, username string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"username": username,
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code, "register %s: %s", username, rec.Body.String())

	var resp IDResponse
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

// uploadForm describes one multipart upload; empty strings omit the field
// entirely so validation-order tests can distinguish absent from empty.
type uploadForm struct {
	filename string // name of the file part; empty = no file part
	payload  string
	authorID string
	title    string
	desc     string
}

// doUpload sends a multipart PUT /clips built from the form.
func doUpload(t *testing.T, router *chi.Mux, form uploadForm) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if form.filename != "" {
		part, err := mw.CreateFormFile("file", form.filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(form.payload))
		require.NoError(t, err)
	}
	if form.authorID != "" {
		require.NoError(t, mw.WriteField("authorId", form.authorID))
	}
	if form.title != "" {
		require.NoError(t, mw.WriteField("title", form.title))
	}
	if form.desc != "" {
		require.NoError(t, mw.WriteField("description", form.desc))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/clips", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// uploadClip uploads a valid clip and returns its id.
func uploadClip(t *testing.T, router *chi.Mux, authorID, title string) string {
	t.Helper()

	rec := doUpload(t, router, uploadForm{
		filename: "clip.mp4",
		payload:  "fake mp4 bytes",
		authorID: authorID,
		title:    title,
	})
	require.Equal(t, http.StatusOK, rec.Code, "upload: %s", rec.Body.String())

	var resp IDResponse
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.ID)
	return resp.ID
}
