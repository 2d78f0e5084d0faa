package model

import "time"

// Follow is a directed edge in the social graph: FollowerID receives
// FolloweeID's clips in their feed. At most one edge exists per ordered
// pair (enforced by a composite unique index), and self-edges are never
// persisted.
type Follow struct {
	ID         string    `json:"id"         db:"id"`
	FollowerID string    `json:"followerId" db:"follower_id"`
	FolloweeID string    `json:"followeeId" db:"followee_id"`
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`
}

// Profile is the read view returned by GET /user/{id}.
type Profile struct {
	User     string `json:"user"`
	NumClips int    `json:"numClips"`
}
