package model

import "time"

// Follow is a directed edge: follower follows followed.
type Follow struct {
	FollowerID int64     `db:"follower_id" json:"follower_id"`
	FollowedID int64     `db:"followed_id" json:"followed_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// FollowRequest names the user to follow or unfollow.
type FollowRequest struct {
	Username string `json:"username"`
}
