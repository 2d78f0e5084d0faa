package model

import "time"

// Comment is a comment on a clip. Comments live and die with their clip:
// deleting a clip removes every comment referencing it.
type Comment struct {
	ID        string    `json:"id"        db:"id"`
	ClipID    string    `json:"clipId"    db:"clip_id"`
	AuthorID  string    `json:"authorId"  db:"author_id"`
	Body      string    `json:"body"      db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CommentView is the denormalized read view returned by GET /comments/{id}.
// The wire keys ("comment", not "body") are part of the public API.
type CommentView struct {
	Author   string    `json:"author"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
	AuthorID string    `json:"authorId"`
}
