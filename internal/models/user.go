package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is the identity record owned by the user directory. FollowerCount and
// FollowingCount are a denormalized cache of the follow edge degrees; they are
// written only inside the follow toggle transaction.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;size:50"`
	Email          string    `json:"email,omitempty" gorm:"uniqueIndex"`
	Bio            string    `json:"bio,omitempty"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	IsVerified     bool      `json:"is_verified"`
	FollowerCount  int64     `json:"follower_count" gorm:"not null;default:0"`
	FollowingCount int64     `json:"following_count" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserSearchResult is a user row annotated with the caller's relationship to it.
type UserSearchResult struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Bio            string `json:"bio,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	IsVerified     bool   `json:"is_verified"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
	IsFollowing    bool   `json:"is_following"`
	IsFriend       bool   `json:"is_friend"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}
