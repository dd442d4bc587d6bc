package models

import "time"

// Follow is a directed edge meaning "follower follows following". The edge set
// is the single source of truth for the relationship; the counter columns on
// User are derived from it.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following;not null"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowStatus is the post-toggle state of an ordered user pair.
type FollowStatus struct {
	IsFollowing bool `json:"is_following"`
	IsFriend    bool `json:"is_friend"`
}

// FollowListEntry is one row of a followers or following listing, annotated
// with the viewer's own relationship to the listed user when a viewer is known.
type FollowListEntry struct {
	UserID             uint      `json:"user_id"`
	Username           string    `json:"username"`
	AvatarURL          string    `json:"avatar_url,omitempty"`
	Bio                string    `json:"bio,omitempty"`
	IsVerified         bool      `json:"is_verified"`
	FollowerCount      int64     `json:"follower_count"`
	FollowingCount     int64     `json:"following_count"`
	FollowedAt         time.Time `json:"followed_at"`
	IsFollowedByViewer bool      `json:"is_followed_by_viewer"`
	IsFriend           bool      `json:"is_friend"`
}

// ToggleFollowRequest defines the request body for toggling a follow edge
type ToggleFollowRequest struct {
	FollowingID uint `json:"following_id" validate:"required"`
}
