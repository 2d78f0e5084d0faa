package model

import "time"

// Clip represents an uploaded video: a metadata row plus a binary payload
// stored on disk under BinaryHandle.
//
// BinaryHandle is an opaque token (a fresh UUID per upload, never reused)
// correlating this row to exactly one `{handle}.mp4` file in the blob store.
// The blob's lifecycle is 1:1 with the row — created together, deleted
// together.
//
// AuthorID is not checked against the users table at upload
// time; an unknown author simply produces a clip that no profile lists.
type Clip struct {
	ID           string    `json:"id"           db:"id"`
	BinaryHandle string    `json:"-"            db:"binary_handle"`
	AuthorID     string    `json:"authorId"     db:"author_id"`
	Title        string    `json:"title"        db:"title"`
	Description  string    `json:"description"  db:"description"`
	CreatedAt    time.Time `json:"createdAt"    db:"created_at"`
}

// ClipInfo is the denormalized read view returned by GET /clips/info/{id}:
// the clip's own fields joined with its author's username. Author is empty
// when the author id never matched a user.
type ClipInfo struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Date        time.Time `json:"date"`
	AuthorID    string    `json:"authorId"`
}
